package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/vovakirdan/kiwi/internal/game"
	"github.com/vovakirdan/kiwi/internal/storage"
)

// statsColumns are the board columns in display order. The level column
// takes whatever width is left.
var statsColumns = []table.Column{
	{Title: "Level", Width: 16},
	{Title: "Runs", Width: 6},
	{Title: "Best moves", Width: 11},
	{Title: "Best time", Width: 10},
	{Title: "Last played", Width: 13},
}

const maxLevelColumn = 32

// statsRows formats one row per level.
func statsRows(stats []storage.LevelStats) []table.Row {
	rows := make([]table.Row, len(stats))
	for i, s := range stats {
		rows[i] = table.Row{
			game.LevelName(s.LevelPath),
			fmt.Sprintf("%d", s.Completions),
			fmt.Sprintf("%d", s.BestMoves),
			formatDuration(s.BestDuration),
			s.LastPlayed.Local().Format("Jan 02 15:04"),
		}
	}
	return rows
}

// columnsFor widens the level column to fill width.
func columnsFor(width int) []table.Column {
	cols := make([]table.Column, len(statsColumns))
	copy(cols, statsColumns)

	fixed := 0
	for _, c := range cols[1:] {
		fixed += c.Width + 2
	}
	if free := width - fixed - 6; free > cols[0].Width {
		cols[0].Width = min(free, maxLevelColumn)
	}
	return cols
}

func formatDuration(d time.Duration) string {
	d = d.Round(100 * time.Millisecond)
	if d >= time.Hour {
		return d.Round(time.Second).String()
	}
	m := int(d / time.Minute)
	s := (d % time.Minute).Seconds()
	return fmt.Sprintf("%d:%04.1f", m, s)
}

// RenderStats renders the per-level progress as a plain table for printing
// outside the TUI.
func RenderStats(stats []storage.LevelStats, width int) string {
	if len(stats) == 0 {
		return "No levels completed yet.\n"
	}

	cols := columnsFor(width)
	headerStyle := lipgloss.NewStyle().Bold(true)

	var b strings.Builder
	writeRow := func(cells []string, style *lipgloss.Style) {
		parts := make([]string, len(cells))
		for i, c := range cells {
			parts[i] = runewidth.FillRight(runewidth.Truncate(c, cols[i].Width, "."), cols[i].Width)
		}
		line := strings.TrimRight(strings.Join(parts, "  "), " ")
		if style != nil {
			line = style.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	titles := make([]string, len(cols))
	for i, c := range cols {
		titles[i] = c.Title
	}
	writeRow(titles, &headerStyle)
	for _, r := range statsRows(stats) {
		writeRow(r, nil)
	}
	return b.String()
}

// StatsModel is the Bubble Tea model for the progress board.
type StatsModel struct {
	stats    []storage.LevelStats
	table    table.Model
	help     help.Model
	keys     StatsKeyMap
	width    int
	height   int
	quitting bool
	back     bool
}

// NewStatsModel creates a new progress board.
func NewStatsModel(stats []storage.LevelStats, width, height int) StatsModel {
	h := help.New()
	h.ShowAll = false
	h.Width = width

	m := StatsModel{
		stats:  stats,
		keys:   DefaultStatsKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	return m
}

// createTable creates a table sized to the terminal.
func (m *StatsModel) createTable() table.Model {
	t := table.New(
		table.WithColumns(columnsFor(m.width-4)),
		table.WithRows(statsRows(m.stats)),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// Init initializes the board.
func (m StatsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the board.
func (m StatsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.back = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the board.
func (m StatsModel) View() string {
	if m.quitting || m.back {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	b.WriteString("\n")
	b.WriteString(titleStyle.Render(centerText("PROGRESS", m.width)))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	if len(m.stats) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		b.WriteString(tableStyle.Render(emptyStyle.Render("No levels completed yet.\nFinish a level to see it here!")))
	} else {
		b.WriteString(tableStyle.Render(m.table.View()))
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// IsGoingBack returns true if user wants to go back to the picker.
func (m StatsModel) IsGoingBack() bool {
	return m.back
}

// IsQuitting returns true if user wants to quit entirely.
func (m StatsModel) IsQuitting() bool {
	return m.quitting
}

// RunStats runs the progress board.
// Returns true if user wants to go back to the picker, false if quitting.
func RunStats(stats []storage.LevelStats, width, height int) (goBack bool, err error) {
	model := NewStatsModel(stats, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(StatsModel)
	if !ok {
		return false, nil
	}

	return m.IsGoingBack(), nil
}
