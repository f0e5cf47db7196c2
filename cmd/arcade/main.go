// arcade plays canvas arcade games (Breakout, Snake, Space Invaders) in the terminal.
//
// Usage:
//
//	arcade list              - List available games
//	arcade play <game>       - Play a game
//	arcade menu              - Start menu to pick games interactively
//	arcade serve             - Start SSH server for remote play
//	arcade scores [game]     - Show high scores
//	arcade simulate <game>   - Run a headless deterministic simulation
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.arcade/scores.db)
//	--theme <name>       - Color theme: dark, light, amber, green
//	--log-level <level>  - debug, info, warn, error
//	--log-file <path>    - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/canvas-arcade/internal/config"
	"github.com/vovakirdan/canvas-arcade/internal/core"
	"github.com/vovakirdan/canvas-arcade/internal/games/breakout"
	"github.com/vovakirdan/canvas-arcade/internal/games/invaders"
	"github.com/vovakirdan/canvas-arcade/internal/games/snake"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagTheme    string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "Canvas Arcade - Breakout, Snake and Space Invaders in your terminal",
	Long: `Canvas Arcade runs classic canvas games in the terminal.
Each game simulates on a fixed pixel canvas that is drawn with half-block
characters, so the physics are the same at any terminal size.

Available commands:
  list      - Show all available games
  play      - Play a specific game directly
  menu      - Interactive game picker menu
  serve     - Start SSH server for remote play
  scores    - View high scores
  simulate  - Headless deterministic run (prints summary and state hash)

Examples:
  arcade list
  arcade play breakout
  arcade menu --theme amber
  arcade serve --ssh :2222
  arcade simulate snake --seed 42 --frames 3600`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagTheme, "theme", "dark", "Color theme: "+strings.Join(core.ThemeNames(), ", "))
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Log file (default: stderr, or ~/.arcade/arcade.log while a game owns the terminal)")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simulateCmd)
}

// newLogger builds the process logger. When the terminal belongs to a
// Bubble Tea program, logs go to a file instead of stderr.
func newLogger(ownsTerminal bool) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	var w io.Writer = os.Stderr
	closeFn := func() {}

	path := flagLogFile
	if path == "" && ownsTerminal {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, nil, fmt.Errorf("cannot resolve home directory: %w", homeErr)
		}
		path = filepath.Join(home, ".arcade", "arcade.log")
	}
	if path != "" {
		if mkErr := os.MkdirAll(filepath.Dir(path), 0o755); mkErr != nil {
			return nil, nil, fmt.Errorf("cannot create log directory: %w", mkErr)
		}
		f, openErr := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if openErr != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", openErr)
		}
		w = f
		closeFn = func() { f.Close() }
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "arcade",
		Level:           level,
	})
	return logger, closeFn, nil
}

// runtimeConfig builds the mount configuration shared by every command.
func runtimeConfig() (core.RuntimeConfig, error) {
	theme, ok := core.LookupTheme(flagTheme)
	if !ok {
		return core.RuntimeConfig{}, fmt.Errorf("unknown theme %q (want %s)", flagTheme, strings.Join(core.ThemeNames(), ", "))
	}
	cfg := core.DefaultConfig()
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	cfg.Theme = theme
	return cfg, nil
}

// configureGame points a game package at its YAML file and difficulty preset
// before an instance is created. A custom file is loaded once here so a bad
// path or value is reported instead of silently replaced by defaults.
func configureGame(gameID, configPath string, preset config.DifficultyPreset) error {
	var err error
	switch gameID {
	case "breakout", "breakout_endless":
		if configPath != "" {
			_, err = config.LoadBreakout(configPath)
		}
		breakout.SetConfigPath(configPath)
		breakout.SetDifficultyPreset(preset)
	case "snake":
		if configPath != "" {
			_, err = config.LoadSnake(configPath)
		}
		snake.SetConfigPath(configPath)
		snake.SetDifficultyPreset(preset)
	case "invaders":
		if configPath != "" {
			_, err = config.LoadInvaders(configPath)
		}
		invaders.SetConfigPath(configPath)
		invaders.SetDifficultyPreset(preset)
	}
	return err
}
