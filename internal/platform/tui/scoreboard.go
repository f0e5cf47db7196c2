package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/canvas-arcade/internal/core"
	"github.com/vovakirdan/canvas-arcade/internal/registry"
	"github.com/vovakirdan/canvas-arcade/internal/storage"
)

const (
	minWidthForSidebar = 80 // below this the game list becomes tabs
	sidebarWidth       = 22
	maxScores          = 100
	runIDWidth         = 8
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextGame key.Binding
	PrevGame key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextGame, k.PrevGame, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextGame, k.PrevGame},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextGame: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab/l", "next game"),
		),
		PrevGame: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab/h", "prev game"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// scoreboardStyles derives every scoreboard style from the session theme.
type scoreboardStyles struct {
	title    lipgloss.Style
	frame    lipgloss.Style
	selected lipgloss.Style
	muted    lipgloss.Style
	stats    lipgloss.Style
}

func newScoreboardStyles(theme core.Theme) scoreboardStyles {
	fg := termColor(theme.Foreground)
	border := termColor(theme.Border)
	muted := termColor(theme.Muted)
	return scoreboardStyles{
		title:    lipgloss.NewStyle().Bold(true).Foreground(fg),
		frame:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(border).Padding(0, 1),
		selected: lipgloss.NewStyle().Bold(true).Foreground(fg),
		muted:    lipgloss.NewStyle().Foreground(muted),
		stats:    lipgloss.NewStyle().Foreground(muted).Italic(true),
	}
}

// ScoreboardModel lists recorded runs per game, with the persisted best
// and aggregate stats of the selected game.
type ScoreboardModel struct {
	games      []registry.GameInfo
	gameCursor int
	store      *storage.Store
	logger     *log.Logger
	theme      core.Theme
	styles     scoreboardStyles
	scores     []storage.ScoreEntry
	stats      *storage.GameStats
	best       int
	table      table.Model
	help       help.Model
	keys       ScoreboardKeyMap
	width      int
	height     int
	quitting   bool
	goingBack  bool
}

// NewScoreboardModel creates a scoreboard showing the first registered game.
func NewScoreboardModel(store *storage.Store, opts Options) ScoreboardModel {
	width, height := opts.termSize()
	theme := opts.Runtime.Theme.OrDefault()

	h := help.New()
	h.Width = width

	m := ScoreboardModel{
		games:  registry.List(),
		store:  store,
		logger: opts.logger(),
		theme:  theme,
		styles: newScoreboardStyles(theme),
		keys:   DefaultScoreboardKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	if len(m.games) > 0 {
		m.loadScores(m.games[0].ID)
	}
	return m
}

func (m ScoreboardModel) showSidebar() bool {
	return m.width >= minWidthForSidebar
}

// createTable sizes the columns to the space left beside the sidebar.
func (m *ScoreboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Score", Width: 8},
		{Title: "Level", Width: 5},
		{Title: "Result", Width: 9},
		{Title: "Run", Width: runIDWidth},
		{Title: "Date", Width: 12},
	}

	tableWidth := m.width - 6
	if m.showSidebar() {
		tableWidth -= sidebarWidth + 4
	}
	if tableWidth > 60 {
		columns[1].Width = 10
		columns[5].Width = min(tableWidth-47, 18)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(termColor(m.theme.Border)).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(termColor(m.theme.Background)).
		Background(termColor(m.theme.Foreground)).
		Bold(false)
	t.SetStyles(s)
	return t
}

// loadScores reads runs, stats and the best-score cell for gameID.
func (m *ScoreboardModel) loadScores(gameID string) {
	m.scores, m.stats, m.best = nil, nil, 0
	if m.store != nil {
		m.best = storage.NewHighScoreCell(m.store, gameID, m.logger).Load()

		scores, err := m.store.TopScores(gameID, maxScores)
		if err != nil {
			m.logger.Warn("cannot load scores", "game", gameID, "err", err)
		}
		m.scores = scores

		stats, err := m.store.GetGameStats(gameID)
		if err != nil {
			m.logger.Warn("cannot load stats", "game", gameID, "err", err)
		}
		m.stats = stats
	}
	m.updateTableRows()
}

func (m *ScoreboardModel) updateTableRows() {
	rows := make([]table.Row, len(m.scores))
	for i, s := range m.scores {
		level := "-"
		if s.Level > 0 {
			level = strconv.Itoa(s.Level)
		}
		outcome := s.Outcome
		if outcome == "" {
			outcome = "-"
		}
		run := s.RunID
		if len(run) > runIDWidth {
			run = run[:runIDWidth]
		}
		rows[i] = table.Row{
			"#" + strconv.Itoa(i+1),
			strconv.Itoa(s.Score),
			level,
			outcome,
			run,
			s.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextGame):
			m.selectGame(1)
			return m, nil

		case key.Matches(msg, m.keys.PrevGame):
			m.selectGame(-1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	// Scrolling and anything else goes to the table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// selectGame moves the game cursor by delta, wrapping around.
func (m *ScoreboardModel) selectGame(delta int) {
	n := len(m.games)
	if n == 0 {
		return
	}
	m.gameCursor = ((m.gameCursor+delta)%n + n) % n
	m.loadScores(m.games[m.gameCursor].ID)
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	title := "HIGH SCORES"
	if len(m.games) > 0 {
		title = "HIGH SCORES - " + m.games[m.gameCursor].Title
		if m.best > 0 {
			title += fmt.Sprintf("  (best %d)", m.best)
		}
	}
	b.WriteString("\n")
	b.WriteString(m.styles.title.Render(centerText(title, m.width)))
	b.WriteString("\n")
	b.WriteString(m.styles.stats.Render(centerText(m.statsLine(), m.width)))
	b.WriteString("\n\n")

	if m.showSidebar() {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	b.WriteString("\n")
	b.WriteString(m.styles.muted.Render(m.help.View(m.keys)))
	return b.String()
}

// statsLine summarizes every recorded run of the selected game.
func (m ScoreboardModel) statsLine() string {
	if m.stats == nil || m.stats.GamesCount == 0 {
		return "no runs recorded"
	}
	return fmt.Sprintf("%d runs  |  average %.0f  |  last played %s",
		m.stats.GamesCount, m.stats.AvgScore, m.stats.LastPlayed.Format("Jan 02 15:04"))
}

// renderWideLayout puts the game list in a sidebar next to the table.
func (m ScoreboardModel) renderWideLayout() string {
	var sidebar strings.Builder
	sidebar.WriteString(m.styles.title.Render("Games"))
	sidebar.WriteString("\n")
	sidebar.WriteString(m.styles.muted.Render(strings.Repeat("-", sidebarWidth-4)))
	sidebar.WriteString("\n")

	for i, g := range m.games {
		name := truncate(g.Title, sidebarWidth-6)
		if i == m.gameCursor {
			sidebar.WriteString(m.styles.selected.Render("> " + name))
		} else {
			sidebar.WriteString(m.styles.muted.Render("  " + name))
		}
		sidebar.WriteString("\n")
	}

	left := m.styles.frame.Width(sidebarWidth).Render(sidebar.String())
	right := m.styles.frame.Render(m.renderTableContent())
	return lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)
}

// renderNarrowLayout shows game tabs above the table.
func (m ScoreboardModel) renderNarrowLayout() string {
	tabs := make([]string, len(m.games))
	plain := 0
	for i, g := range m.games {
		name := truncate(g.Title, 10)
		plain += len(name) + 3
		if i == m.gameCursor {
			tabs[i] = m.styles.selected.Render("[" + name + "]")
		} else {
			tabs[i] = m.styles.muted.Render(" " + name + " ")
		}
	}

	tabLine := strings.Join(tabs, " ")
	if plain > m.width-4 && len(m.games) > 0 {
		tabLine = m.styles.selected.Render("< " + m.games[m.gameCursor].Title + " >")
	}

	var b strings.Builder
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, tabLine))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, m.styles.frame.Render(m.renderTableContent())))
	return b.String()
}

func (m ScoreboardModel) renderTableContent() string {
	if len(m.scores) == 0 {
		return m.styles.stats.Padding(2, 4).Render("No scores recorded yet.\nPlay a game to set a high score!")
	}
	return m.table.View()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "."
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, opts Options) (goBack bool, err error) {
	p := tea.NewProgram(
		NewScoreboardModel(store, opts),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
