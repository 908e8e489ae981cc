package game

import (
	"testing"

	"github.com/vovakirdan/kiwi/internal/core"
)

func TestFollowExamples(t *testing.T) {
	tests := []struct {
		name       string
		corner     core.Vec
		pos        core.Vec
		size       core.Vec
		margin     int
		wantCorner core.Vec
		wantMoved  bool
	}{
		{"inside", core.V(0, 0), core.V(5, 5), core.V(10, 10), 2, core.V(0, 0), false},
		{"on inner edge", core.V(0, 0), core.V(7, 2), core.V(10, 10), 2, core.V(0, 0), false},
		{"past right", core.V(0, 0), core.V(8, 5), core.V(10, 10), 2, core.V(1, 0), true},
		{"far right", core.V(0, 0), core.V(30, 5), core.V(10, 10), 2, core.V(23, 0), true},
		{"past left", core.V(10, 0), core.V(11, 5), core.V(10, 10), 2, core.V(9, 0), true},
		{"both axes", core.V(0, 0), core.V(-1, 20), core.V(10, 10), 2, core.V(-3, 13), true},
		{"margin clamped", core.V(0, 0), core.V(5, 0), core.V(3, 3), 5, core.V(4, -1), true},
		{"empty view", core.V(4, 4), core.V(50, 50), core.V(0, 0), 2, core.V(4, 4), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			corner := tt.corner
			moved := Follow(&corner, tt.pos, tt.size, tt.margin)
			if moved != tt.wantMoved {
				t.Errorf("Follow() moved = %v, expected %v", moved, tt.wantMoved)
			}
			if corner != tt.wantCorner {
				t.Errorf("Follow() corner = %v, expected %v", corner, tt.wantCorner)
			}
		})
	}
}

// After Follow the position lies inside the view shrunk by the effective
// margin, and a second call changes nothing.
func TestFollowKeepsPositionInShrunkView(t *testing.T) {
	for size := 1; size <= 12; size++ {
		for margin := 0; margin <= 7; margin++ {
			for start := -5; start <= 5; start++ {
				for pos := -20; pos <= 20; pos++ {
					corner := core.V(start, start)
					p := core.V(pos, -pos)
					view := core.V(size, size)
					Follow(&corner, p, view, margin)

					m := core.Clamp(margin, 0, (size-1)/2)
					inner := core.Rect{Pos: corner, Size: view}.Grow(-m)
					if !inner.Contains(p) {
						t.Fatalf("size=%d margin=%d start=%d pos=%v: %v not in %+v",
							size, margin, start, p, p, inner)
					}
					if Follow(&corner, p, view, margin) {
						t.Fatalf("size=%d margin=%d start=%d pos=%v: second Follow moved", size, margin, start, p)
					}
				}
			}
		}
	}
}
