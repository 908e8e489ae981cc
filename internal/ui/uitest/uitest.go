// Package uitest provides a scripted input source and a simulated screen
// for driving widgets in tests.
package uitest

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"

	"github.com/vovakirdan/kiwi/internal/ui"
)

// Script replays inputs in batches. A poll with a timeout starts the next
// batch; a zero-timeout poll drains the current one. Once every batch is
// consumed the script sends ctrl+c so a run always ends.
type Script struct {
	batches [][]ui.Input
	current []ui.Input
	Polls   int // Number of Poll calls with a timeout
}

// NewScript creates a script. Each argument is one batch; an empty batch is
// an idle frame.
func NewScript(batches ...[]ui.Input) *Script {
	return &Script{batches: batches}
}

// Poll implements ui.InputSource.
func (s *Script) Poll(timeout time.Duration) (ui.Input, bool) {
	if timeout > 0 {
		s.Polls++
		if len(s.batches) == 0 {
			return ui.KeyCode(tcell.KeyCtrlC), true
		}
		s.current = s.batches[0]
		s.batches = s.batches[1:]
	}
	if len(s.current) == 0 {
		return nil, false
	}
	in := s.current[0]
	s.current = s.current[1:]
	return in, true
}

// Keys builds a batch from key names: single characters become rune keys,
// names like "enter", "esc", "up", "f8" and "shift+f8" become special keys.
func Keys(names ...string) []ui.Input {
	batch := make([]ui.Input, 0, len(names))
	for _, n := range names {
		batch = append(batch, Key(n))
	}
	return batch
}

var specialKeys = map[string]ui.Key{
	"up":        ui.KeyCode(tcell.KeyUp),
	"down":      ui.KeyCode(tcell.KeyDown),
	"left":      ui.KeyCode(tcell.KeyLeft),
	"right":     ui.KeyCode(tcell.KeyRight),
	"enter":     ui.KeyCode(tcell.KeyEnter),
	"esc":       ui.KeyCode(tcell.KeyEscape),
	"backspace": ui.KeyCode(tcell.KeyBackspace2),
	"tab":       ui.KeyCode(tcell.KeyTab),
	"ctrl+c":    ui.KeyCode(tcell.KeyCtrlC),
}

// Key converts a key name to a ui.Key.
func Key(name string) ui.Key {
	if k, ok := specialKeys[name]; ok {
		return k
	}
	if strings.HasPrefix(name, "shift+f") {
		if n := fnumber(name[len("shift+f"):]); n > 0 {
			return ui.Key{Code: tcell.KeyF1 + tcell.Key(n-1), Mod: tcell.ModShift}
		}
	}
	if strings.HasPrefix(name, "f") && len(name) > 1 {
		if n := fnumber(name[1:]); n > 0 {
			return ui.KeyCode(tcell.KeyF1 + tcell.Key(n-1))
		}
	}
	r := []rune(name)
	return ui.KeyRune(r[0])
}

func fnumber(s string) int {
	n := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0
		}
		n = n*10 + int(c-'0')
	}
	if n < 1 || n > 12 {
		return 0
	}
	return n
}

// NewScreen returns an initialized simulation screen of the given size.
// The caller should defer Fini.
func NewScreen(width, height int) tcell.SimulationScreen {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		panic(err)
	}
	screen.SetSize(width, height)
	return screen
}

// NewContext creates a context over screen and input with a silent logger
// and a short poll timeout.
func NewContext(screen tcell.Screen, input ui.InputSource) *ui.Context {
	var device ui.Device
	if screen != nil {
		device = screen
	}
	return ui.NewContext(device, input, log.New(io.Discard), ui.Options{
		PollTimeout: time.Millisecond,
		PollRetries: 2,
	})
}

// Row returns the primary runes of row y as a string, blanks as spaces.
func Row(screen tcell.Screen, y int) string {
	w, _ := screen.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := screen.GetContent(x, y)
		if r == 0 {
			r = ' '
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Contains reports whether any row of the screen contains text.
func Contains(screen tcell.Screen, text string) bool {
	_, h := screen.Size()
	for y := 0; y < h; y++ {
		if strings.Contains(Row(screen, y), text) {
			return true
		}
	}
	return false
}
