package ui

import (
	"unicode"

	"github.com/gdamore/tcell/v2"
)

// Key identifies the keys the history browser reacts to
type Key int

const (
	KeyOther Key = iota
	KeyRune
	KeyCtrl
	KeyEsc
	KeyEnter
	KeyUp
	KeyDown
	KeyPageUp
	KeyPageDown
)

// Event is an input event after translation from the terminal library.
type Event interface {
	event()
}

// KeyEvent is a key press. Rune is set for KeyRune and KeyCtrl, where it holds
// the lower-case letter pressed together with Ctrl.
type KeyEvent struct {
	Key  Key
	Rune rune
}

// ResizeEvent reports the new terminal size in cells.
type ResizeEvent struct {
	Width  int
	Height int
}

// UnsupportedEvent is anything else the terminal reported.
type UnsupportedEvent struct{}

func (KeyEvent) event()         {}
func (ResizeEvent) event()      {}
func (UnsupportedEvent) event() {}

// FromTcell converts a tcell event.
func FromTcell(ev tcell.Event) Event {
	switch e := ev.(type) {
	case *tcell.EventKey:
		return fromKey(e)
	case *tcell.EventResize:
		w, h := e.Size()
		return ResizeEvent{Width: w, Height: h}
	}
	return UnsupportedEvent{}
}

func fromKey(e *tcell.EventKey) Event {
	k := e.Key()
	switch k {
	case tcell.KeyEsc:
		return KeyEvent{Key: KeyEsc}
	case tcell.KeyEnter:
		return KeyEvent{Key: KeyEnter}
	case tcell.KeyUp:
		return KeyEvent{Key: KeyUp}
	case tcell.KeyDown:
		return KeyEvent{Key: KeyDown}
	case tcell.KeyPgUp:
		return KeyEvent{Key: KeyPageUp}
	case tcell.KeyPgDn:
		return KeyEvent{Key: KeyPageDown}
	case tcell.KeyRune:
		r := e.Rune()
		if e.Modifiers()&tcell.ModCtrl != 0 {
			return KeyEvent{Key: KeyCtrl, Rune: unicode.ToLower(r)}
		}
		return KeyEvent{Key: KeyRune, Rune: r}
	}

	if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		return KeyEvent{Key: KeyCtrl, Rune: rune('a' + (k - tcell.KeyCtrlA))}
	}
	return KeyEvent{Key: KeyOther}
}
