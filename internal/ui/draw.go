package ui

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/vovakirdan/kiwi/internal/core"
)

// PutCell draws one glyph. A zero rune draws a blank. Cells outside the
// device are skipped.
func PutCell(d Device, p core.Vec, r rune, style tcell.Style) {
	w, h := d.Size()
	if p.X < 0 || p.Y < 0 || p.X >= w || p.Y >= h {
		return
	}
	if r == 0 {
		r = ' '
	}
	d.SetContent(p.X, p.Y, r, nil, style)
}

// DrawText draws s starting at p, clipped to the device width. Wide runes
// take two columns. Returns the number of columns written.
func DrawText(d Device, p core.Vec, s string, style tcell.Style) int {
	w, h := d.Size()
	if p.Y < 0 || p.Y >= h {
		return 0
	}
	x := p.X
	for _, r := range s {
		rw := runewidth.RuneWidth(r)
		if rw == 0 {
			continue
		}
		if x+rw > w {
			break
		}
		if x >= 0 {
			d.SetContent(x, p.Y, r, nil, style)
		}
		x += rw
	}
	return x - p.X
}

// FillRect fills every cell of r with ch.
func FillRect(d Device, r core.Rect, ch rune, style tcell.Style) {
	r = r.Normalized()
	for y := r.Top(); y <= r.Bottom(); y++ {
		for x := r.Left(); x <= r.Right(); x++ {
			PutCell(d, core.V(x, y), ch, style)
		}
	}
}

// DrawBox draws a single-line frame on the edge cells of r.
func DrawBox(d Device, r core.Rect, style tcell.Style) {
	r = r.Normalized()
	for x := r.Left() + 1; x < r.Right(); x++ {
		PutCell(d, core.V(x, r.Top()), tcell.RuneHLine, style)
		PutCell(d, core.V(x, r.Bottom()), tcell.RuneHLine, style)
	}
	for y := r.Top() + 1; y < r.Bottom(); y++ {
		PutCell(d, core.V(r.Left(), y), tcell.RuneVLine, style)
		PutCell(d, core.V(r.Right(), y), tcell.RuneVLine, style)
	}
	PutCell(d, r.Pos, tcell.RuneULCorner, style)
	PutCell(d, r.TopRight(), tcell.RuneURCorner, style)
	PutCell(d, r.BottomLeft(), tcell.RuneLLCorner, style)
	PutCell(d, r.BottomRight(), tcell.RuneLRCorner, style)
}

// ClearLine blanks row y across the full device width.
func ClearLine(d Device, y int, style tcell.Style) {
	w, _ := d.Size()
	FillRect(d, core.NewRect(0, y, w, 1), ' ', style)
}

// MessageBox draws msg centered in a framed box and returns the box.
// Long lines are clipped to the device width.
func MessageBox(d Device, msg string, style tcell.Style) core.Rect {
	w, h := d.Size()
	lines := strings.Split(msg, "\n")
	textW := 0
	for _, l := range lines {
		textW = core.Max(textW, runewidth.StringWidth(l))
	}

	boxW := core.Min(textW+4, w)
	boxH := core.Min(len(lines)+2, h)
	box := core.NewRect((w-boxW)/2, (h-boxH)/2, boxW, boxH)

	FillRect(d, box, ' ', style)
	DrawBox(d, box, style)
	for i, l := range lines {
		y := box.Top() + 1 + i
		if y >= box.Bottom() {
			break
		}
		DrawText(d, core.V(box.Left()+2, y), runewidth.Truncate(l, core.Max(boxW-4, 0), ""), style)
	}
	return box
}
