package game

import (
	"github.com/gdamore/tcell/v2"

	"github.com/vovakirdan/kiwi/internal/grid"
)

// Grays use the 16-color palette so they render on every terminal.
var terminalColors = map[grid.Color]tcell.Color{
	grid.Black:     tcell.ColorBlack,
	grid.White:     tcell.ColorWhite,
	grid.LightGray: tcell.ColorSilver,
	grid.DarkGray:  tcell.ColorGray,
}

// TerminalColor returns the tcell color for a grid color.
func TerminalColor(c grid.Color) tcell.Color {
	if tc, ok := terminalColors[c]; ok {
		return tc
	}
	return tcell.ColorDefault
}

// CellStyle returns the style a cell is drawn with.
func CellStyle(c grid.Cell) tcell.Style {
	return tcell.StyleDefault.
		Foreground(TerminalColor(c.Fg)).
		Background(TerminalColor(c.Bg))
}

// Overlay styles and glyphs.
var (
	frameStyle   = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorMaroon)
	statusStyle  = tcell.StyleDefault
	messageStyle = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	hudStyle     = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	noticeStyle  = tcell.StyleDefault.Foreground(tcell.ColorYellow)
)

const (
	actorGlyph   = '@'
	startGlyph   = '$'
	triggerGlyph = '?'
	selectGlyph  = '#'
)

// markerStyle draws a marker glyph in fg over the background of the cell
// underneath.
func markerStyle(under grid.Cell, fg tcell.Color) tcell.Style {
	return tcell.StyleDefault.Foreground(fg).Background(TerminalColor(under.Bg))
}
