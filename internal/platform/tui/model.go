package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/canvas-arcade/internal/core"
	"github.com/vovakirdan/canvas-arcade/internal/loop"
	"github.com/vovakirdan/canvas-arcade/internal/registry"
	"github.com/vovakirdan/canvas-arcade/internal/storage"
)

// Default terminal size before the first resize message arrives
const (
	defaultTermW = 80
	defaultTermH = 24
)

// Options configure a terminal play session.
type Options struct {
	Store         *storage.Store     // nil keeps scores in memory
	Runtime       core.RuntimeConfig // tick rate, seed, theme
	Width         int                // terminal columns
	Height        int                // terminal rows
	Logger        *log.Logger
	ScreenshotDir string // empty means ~/.arcade/screenshots
}

func (o Options) logger() *log.Logger {
	if o.Logger == nil {
		return log.Default()
	}
	return o.Logger
}

func (o Options) termSize() (int, int) {
	w, h := o.Width, o.Height
	if w <= 0 {
		w = defaultTermW
	}
	if h <= 0 {
		h = defaultTermH
	}
	return w, h
}

// GameModel is the Bubble Tea model for one mounted game.
// The loop driver owns the simulation; the model feeds it key, mouse and
// tick messages and presents its frame.
type GameModel struct {
	game       registry.Game
	driver     *loop.Driver
	store      *storage.Store
	opts       Options
	logger     *log.Logger
	screen     *core.Screen
	viewport   Viewport
	keyMapper  *KeyMapper
	interval   time.Duration
	status     string
	runSaved   bool
	standalone bool // back quits the program instead of returning to a menu
	quitting   bool
	backToMenu bool
}

// NewGameModel mounts the game and wraps it in a loop driver.
func NewGameModel(game registry.Game, opts Options) GameModel {
	cfg := opts.Runtime
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	logger := opts.logger().With("game", game.ID())
	if opts.Store != nil {
		cfg.Best = storage.NewHighScoreCell(opts.Store, game.ID(), logger)
	}
	game.Reset(cfg)

	driver := loop.New(game)
	driver.Subscribe(func(s core.GameState) {
		logger.Debug("state changed", "phase", s.Phase, "score", s.Score, "lives", s.Lives, "level", s.Level)
	})

	termW, termH := opts.termSize()
	canvasW, canvasH := game.CanvasSize()
	return GameModel{
		game:      game,
		driver:    driver,
		store:     opts.Store,
		opts:      opts,
		logger:    logger,
		screen:    core.NewScreen(termW, termH),
		viewport:  FitViewport(canvasW, canvasH, termW, termH),
		keyMapper: NewKeyMapper(),
		interval:  cfg.FrameInterval(),
	}
}

// Init does nothing: the game waits in the ready phase for a start command.
func (m GameModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		if m.driver.Tick(msg.Token, msg.Time) {
			return m, tickCmd(m.interval, msg.Token)
		}
		m.recordRun()
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, kind := m.keyMapper.MapKey(msg)
	now := time.Now()

	switch kind {
	case KeyQuit:
		m.driver.Close()
		m.quitting = true
		return m, tea.Quit

	case KeyBack:
		if m.driver.State().Phase == core.PhasePlaying {
			return m, nil
		}
		m.driver.Close()
		m.backToMenu = true
		if m.standalone {
			return m, tea.Quit
		}
		return m, nil

	case KeyHold:
		m.driver.Input().KeyDown(action, now)

	case KeyCommand:
		m.status = ""
		tok, started := m.driver.Command(action, now)
		m.recordRun()
		if started {
			return m, tickCmd(m.interval, tok)
		}

	case KeyScreenshot:
		path, err := m.saveScreenshot()
		if err != nil {
			m.logger.Warn("cannot save screenshot", "err", err)
			m.status = "Screenshot failed"
		} else {
			m.logger.Info("screenshot saved", "path", path)
			m.status = "Saved " + path
		}
	}

	return m, nil
}

// handleMouse turns left-button drags into an absolute pointer target.
func (m GameModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionPress, tea.MouseActionMotion:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if x, ok := m.viewport.CanvasX(msg.X); ok {
			m.driver.Input().PointerMove(x)
		}
	case tea.MouseActionRelease:
		m.driver.Input().PointerRelease()
	}
	return m, nil
}

// resize refits the canvas; the simulation keeps its logical size.
func (m *GameModel) resize(width, height int) {
	m.opts.Width, m.opts.Height = width, height
	termW, termH := m.opts.termSize()
	m.screen.Resize(termW, termH)
	canvasW, canvasH := m.game.CanvasSize()
	m.viewport = FitViewport(canvasW, canvasH, termW, termH)
}

// recordRun saves a finished run once. A new run re-arms it.
func (m *GameModel) recordRun() {
	s := m.driver.State()
	if !s.Phase.Finished() {
		m.runSaved = false
		return
	}
	if m.runSaved {
		return
	}
	m.runSaved = true

	if m.store == nil || s.Score == 0 {
		return
	}
	id, err := m.store.SaveRun(storage.Run{
		GameID:  m.game.ID(),
		Score:   s.Score,
		Level:   s.Level,
		Outcome: s.Phase.String(),
	})
	if err != nil {
		m.logger.Warn("cannot save run", "err", err)
		return
	}
	m.logger.Info("run saved", "run", id, "score", s.Score, "outcome", s.Phase)
}

// saveScreenshot writes the current frame as a PNG and returns its path.
func (m GameModel) saveScreenshot() (string, error) {
	dir := m.opts.ScreenshotDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot resolve home directory: %w", err)
		}
		dir = filepath.Join(home, ".arcade", "screenshots")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("cannot create screenshot directory: %w", err)
	}

	// Generate filename with timestamp
	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.png", m.game.ID(), timestamp))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("cannot create screenshot: %w", err)
	}
	defer f.Close()

	if err := m.driver.Frame().EncodePNG(f, nil); err != nil {
		return "", err
	}
	return path, nil
}

const gameHelp = "Arrows/WASD: Move  |  Space: Fire/Start  |  P: Pause  |  R: Restart  |  B: Menu  |  Q: Quit"

// View renders the current frame to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	frame := m.driver.Frame()
	Present(frame, m.viewport, m.screen)

	footer := m.status
	if footer == "" {
		footer = gameHelp
	}
	m.screen.DrawTextColored(
		max((m.screen.Width()-len([]rune(footer)))/2, 0),
		m.screen.Height()-footerRows,
		footer,
		frame.Theme().Muted,
	)

	return RenderScreen(m.screen)
}

// State returns the last published game summary.
func (m GameModel) State() core.GameState {
	return m.driver.State()
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Close tears down the driver; pending ticks become stale.
func (m GameModel) Close() {
	m.driver.Close()
}

// Run plays one game in the current terminal until the user quits or goes back.
func Run(game registry.Game, opts Options) error {
	model := NewGameModel(game, opts)
	model.standalone = true
	defer model.Close()

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Pointer drag steers the paddle
	)

	_, err := p.Run()
	return err
}
