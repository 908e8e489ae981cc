package ui

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/vovakirdan/kiwi/internal/core"
)

// Input is a raw input delivered to the root widget: a Key or a Click.
type Input interface {
	isInput()
}

// Key is a key press.
type Key struct {
	Code tcell.Key // tcell.KeyRune for printable characters
	Rune rune
	Mod  tcell.ModMask
}

// Click is a left mouse button press at a terminal cell.
type Click struct {
	Pos core.Vec
	Mod tcell.ModMask
}

func (Key) isInput()   {}
func (Click) isInput() {}

// InputSource delivers raw inputs. Poll waits up to timeout for the next
// input; a zero timeout only returns inputs that are already queued.
type InputSource interface {
	Poll(timeout time.Duration) (Input, bool)
}

// KeyRune creates the key press for a printable character.
func KeyRune(r rune) Key {
	return Key{Code: tcell.KeyRune, Rune: r}
}

// KeyCode creates the key press for a special key.
func KeyCode(code tcell.Key) Key {
	return Key{Code: code}
}

// IsInterrupt reports whether in is ctrl+c.
func IsInterrupt(in Input) bool {
	k, ok := in.(Key)
	return ok && k.String() == "ctrl+c"
}

var keyNames = map[tcell.Key]string{
	tcell.KeyUp:         "up",
	tcell.KeyDown:       "down",
	tcell.KeyLeft:       "left",
	tcell.KeyRight:      "right",
	tcell.KeyEnter:      "enter",
	tcell.KeyEscape:     "esc",
	tcell.KeyBackspace:  "backspace",
	tcell.KeyBackspace2: "backspace",
	tcell.KeyTab:        "tab",
	tcell.KeyBacktab:    "shift+tab",
	tcell.KeyDelete:     "delete",
	tcell.KeyInsert:     "insert",
	tcell.KeyHome:       "home",
	tcell.KeyEnd:        "end",
	tcell.KeyPgUp:       "pgup",
	tcell.KeyPgDn:       "pgdown",
}

// String returns the normalized key name, matching the names used by
// bubbletea key messages ("up", "f8", "shift+f8", "ctrl+c", "a", " ").
func (k Key) String() string {
	if k.Code == tcell.KeyRune {
		r := k.Rune
		if k.Mod&tcell.ModShift != 0 && unicode.IsLower(r) {
			r = unicode.ToUpper(r)
		}
		if k.Mod&tcell.ModAlt != 0 {
			return "alt+" + string(r)
		}
		return string(r)
	}

	name, shifted := k.baseName()
	var prefix strings.Builder
	if k.Mod&tcell.ModAlt != 0 {
		prefix.WriteString("alt+")
	}
	if k.Mod&tcell.ModCtrl != 0 && !strings.HasPrefix(name, "ctrl+") {
		prefix.WriteString("ctrl+")
	}
	if (shifted || k.Mod&tcell.ModShift != 0) && !strings.HasPrefix(name, "shift+") {
		prefix.WriteString("shift+")
	}
	return prefix.String() + name
}

// baseName names the key without modifiers. F13-F24 are reported by
// terminals for shifted F1-F12, so they come back as shifted.
func (k Key) baseName() (string, bool) {
	if name, ok := keyNames[k.Code]; ok {
		return name, false
	}
	switch {
	case k.Code >= tcell.KeyF1 && k.Code <= tcell.KeyF12:
		return fmt.Sprintf("f%d", int(k.Code-tcell.KeyF1)+1), false
	case k.Code >= tcell.KeyF13 && k.Code <= tcell.KeyF24:
		return fmt.Sprintf("f%d", int(k.Code-tcell.KeyF13)+1), true
	case k.Code >= tcell.KeyCtrlA && k.Code <= tcell.KeyCtrlZ:
		return "ctrl+" + string(rune('a'+int(k.Code-tcell.KeyCtrlA))), false
	case k.Code == tcell.KeyCtrlSpace:
		return "ctrl+@", false
	}
	return fmt.Sprintf("key(%d)", int(k.Code)), false
}

// String returns a description of the click.
func (c Click) String() string {
	return "click" + c.Pos.String()
}

// convertEvent turns a tcell event into an Input. Events that carry no
// input (resize, focus, paste markers, mouse motion) are dropped.
func convertEvent(ev tcell.Event) (Input, bool) {
	switch e := ev.(type) {
	case *tcell.EventKey:
		return Key{Code: e.Key(), Rune: e.Rune(), Mod: e.Modifiers()}, true
	case *tcell.EventMouse:
		if e.Buttons()&tcell.Button1 == 0 {
			return nil, false
		}
		x, y := e.Position()
		return Click{Pos: core.V(x, y), Mod: e.Modifiers()}, true
	}
	return nil, false
}
