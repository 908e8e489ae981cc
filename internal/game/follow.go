package game

import "github.com/vovakirdan/kiwi/internal/core"

// Follow scrolls a view so pos stays at least margin cells away from its
// edges. corner is the view's top-left cell in level coordinates and size its
// extent. The margin shrinks on a small view so the inner area never
// vanishes. Reports whether the corner moved.
func Follow(corner *core.Vec, pos, size core.Vec, margin int) bool {
	x, movedX := followAxis(corner.X, pos.X, size.X, margin)
	y, movedY := followAxis(corner.Y, pos.Y, size.Y, margin)
	corner.X, corner.Y = x, y
	return movedX || movedY
}

func followAxis(corner, pos, size, margin int) (int, bool) {
	if size <= 0 {
		return corner, false
	}
	m := core.Clamp(margin, 0, (size-1)/2)
	lo := corner + m
	hi := corner + size - 1 - m
	switch {
	case pos < lo:
		return pos - m, true
	case pos > hi:
		return pos + m + 1 - size, true
	}
	return corner, false
}
