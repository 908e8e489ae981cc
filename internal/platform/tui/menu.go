// Package tui provides the Bubble Tea screens that sit outside the game loop:
// the level picker and the progress board.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/vovakirdan/kiwi/internal/game"
	"github.com/vovakirdan/kiwi/internal/grid"
	"github.com/vovakirdan/kiwi/internal/storage"
)

// Picker layout constants
const (
	listWidth      = 24 // Width of the level list column
	minPreviewSize = 4  // Smallest preview box worth drawing
	chromeRows     = 8  // Title, subtitle, borders and help
)

// Loader reads a level file for the preview.
type Loader func(path string) (*grid.Grid, error)

// LevelItem is one entry of the level list.
type LevelItem struct {
	Path  string
	Stats *storage.LevelStats // nil if never completed
}

// Name returns the label shown in the list.
func (it LevelItem) Name() string {
	return game.LevelName(it.Path)
}

// PickerAction is what the user chose in the picker.
type PickerAction int

const (
	PickNone PickerAction = iota
	PickPlay
	PickEdit
	PickStats
	PickQuit
)

func (a PickerAction) String() string {
	switch a {
	case PickPlay:
		return "play"
	case PickEdit:
		return "edit"
	case PickStats:
		return "stats"
	case PickQuit:
		return "quit"
	default:
		return "none"
	}
}

type preview struct {
	grid *grid.Grid
	err  error
}

// PickerModel is the Bubble Tea model for the level picker.
type PickerModel struct {
	items    []LevelItem
	cursor   int
	width    int
	height   int
	load     Loader
	previews map[string]preview // Cache shared by model copies
	keys     PickerKeyMap
	help     help.Model
	action   PickerAction
}

// NewPickerModel creates a picker over items with the cursor on index
// cursor.
func NewPickerModel(items []LevelItem, load Loader, cursor, width, height int) PickerModel {
	h := help.New()
	h.ShowAll = false
	h.Width = width

	if cursor < 0 || cursor >= len(items) {
		cursor = 0
	}

	return PickerModel{
		items:    items,
		cursor:   cursor,
		width:    width,
		height:   height,
		load:     load,
		previews: make(map[string]preview),
		keys:     DefaultPickerKeyMap(),
		help:     h,
	}
}

// Init initializes the picker model.
func (m PickerModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the picker.
func (m PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for list navigation.
func (m PickerModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.action = PickQuit
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Play):
		if len(m.items) > 0 {
			m.action = PickPlay
			return m, tea.Quit
		}

	case key.Matches(msg, m.keys.Edit):
		if len(m.items) > 0 {
			m.action = PickEdit
			return m, tea.Quit
		}

	case key.Matches(msg, m.keys.Stats):
		m.action = PickStats
		return m, tea.Quit
	}

	return m, nil
}

// View renders the picker.
func (m PickerModel) View() string {
	if m.action != PickNone {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))

	b.WriteString("\n")
	b.WriteString(titleStyle.Render(centerText("  K I W I  ", m.width)))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select a level", m.width))
	b.WriteString("\n\n")

	if len(m.items) == 0 {
		b.WriteString(centerText("The level list is empty.", m.width))
		b.WriteString("\n")
	} else {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderList(), "  ", m.renderPreview()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderList renders the level names with the cursor and completion marks.
func (m PickerModel) renderList() string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(listWidth).
		Padding(0, 1)

	var list strings.Builder
	for i, it := range m.items {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.cursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		mark := " "
		if it.Stats != nil && it.Stats.Completions > 0 {
			mark = "*"
		}

		name := runewidth.Truncate(it.Name(), listWidth-8, ".")
		if i > 0 {
			list.WriteString("\n")
		}
		list.WriteString(style.Render(fmt.Sprintf("%s%2d %s%s", cursor, i+1, name, mark)))
	}

	return boxStyle.Render(list.String())
}

// renderPreview renders the selected level and its best result.
func (m PickerModel) renderPreview() string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240"))

	w := m.width - listWidth - 8
	h := m.height - chromeRows - 2
	if w < minPreviewSize || h < minPreviewSize {
		return ""
	}

	item := m.items[m.cursor]
	p := m.previewFor(item.Path)
	if p.err != nil {
		errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Width(w)
		return boxStyle.Render(errStyle.Render(p.err.Error()))
	}

	body := RenderLevel(p.grid, w, h)
	caption := fmt.Sprintf("%dx%d", p.grid.Width(), p.grid.Height())
	if item.Stats != nil && item.Stats.Completions > 0 {
		caption += fmt.Sprintf("  best: %d moves", item.Stats.BestMoves)
	}
	return lipgloss.JoinVertical(lipgloss.Left, boxStyle.Render(body), caption)
}

// previewFor loads a level once and caches the result, failures included.
func (m PickerModel) previewFor(path string) preview {
	if p, ok := m.previews[path]; ok {
		return p
	}
	var p preview
	if m.load == nil {
		p.err = fmt.Errorf("no preview for %s", path)
	} else {
		p.grid, p.err = m.load(path)
	}
	m.previews[path] = p
	return p
}

// Cursor returns the index of the highlighted level.
func (m PickerModel) Cursor() int {
	return m.cursor
}

// Action returns what the user chose, PickNone while the picker runs.
func (m PickerModel) Action() PickerAction {
	return m.action
}

// Size returns the last known terminal size.
func (m PickerModel) Size() (width, height int) {
	return m.width, m.height
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}

// PickResult holds the result of running the picker.
type PickResult struct {
	Index  int
	Action PickerAction
	Width  int
	Height int
}

// RunPicker runs the picker and returns the selection result.
func RunPicker(items []LevelItem, load Loader, cursor, width, height int) (PickResult, error) {
	model := NewPickerModel(items, load, cursor, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return PickResult{Action: PickQuit, Width: width, Height: height}, err
	}

	m, ok := finalModel.(PickerModel)
	if !ok {
		return PickResult{Action: PickQuit, Width: width, Height: height}, nil
	}

	result := PickResult{Index: m.Cursor(), Action: m.Action()}
	result.Width, result.Height = m.Size()
	if result.Action == PickNone {
		result.Action = PickQuit
	}
	return result, nil
}
