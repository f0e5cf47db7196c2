package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/canvas-arcade/internal/config"
	"github.com/vovakirdan/canvas-arcade/internal/platform/tui"
	"github.com/vovakirdan/canvas-arcade/internal/registry"
	"github.com/vovakirdan/canvas-arcade/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Controls:
  Arrows/WASD  - Move (Snake steers in four directions)
  Mouse drag   - Move the Breakout paddle
  Space        - Start, resume, fire
  Enter        - Start
  P/Esc        - Pause
  R            - Restart
  B            - Back (when not playing)
  Ctrl+S       - Save a PNG screenshot
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - More lives, wider paddle, slower snake, faster cannon
  normal - Defaults
  hard   - Fewer lives, narrower paddle, faster snake, slower cannon

Examples:
  arcade play breakout
  arcade play breakout_endless --difficulty hard
  arcade play snake --difficulty easy
  arcade play invaders --config ./my-invaders.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := args[0]

	// Check if game exists
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q (run 'arcade list' to see available games)", gameID)
	}

	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return err
	}
	cfg, err := runtimeConfig()
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(true)
	if err != nil {
		return err
	}
	defer closeLog()

	// Set config path and difficulty before creation
	if err := configureGame(gameID, flagConfig, preset); err != nil {
		return err
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}

	logger.Info("starting game", "game", gameID, "difficulty", preset, "theme", cfg.Theme.Name)
	if err := tui.Run(game, tui.Options{
		Store:   store,
		Runtime: cfg,
		Width:   width,
		Height:  height,
		Logger:  logger,
	}); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
