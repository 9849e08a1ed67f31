package ui

import (
	"github.com/audi70r/gitrewind/internal/navigation"
)

// Intent tells the app what to do after an event was applied to the controller.
type Intent int

const (
	IntentNone Intent = iota
	IntentRedraw
	IntentSelect
	IntentRestore
	IntentQuit
)

func (i Intent) String() string {
	switch i {
	case IntentRedraw:
		return "redraw"
	case IntentSelect:
		return "select"
	case IntentRestore:
		return "restore"
	case IntentQuit:
		return "quit"
	}
	return "none"
}

// Dispatch applies ev to nav. Cursor movement and resizes happen here; the
// side effects of select, restore and quit are left to the caller.
func Dispatch(nav *navigation.Controller, ev Event) Intent {
	switch e := ev.(type) {
	case ResizeEvent:
		nav.Resize(e.Height)
		return IntentRedraw
	case KeyEvent:
		return dispatchKey(nav, e)
	}
	return IntentNone
}

func dispatchKey(nav *navigation.Controller, e KeyEvent) Intent {
	switch e.Key {
	case KeyUp:
		nav.MoveUp()
		return IntentRedraw
	case KeyDown:
		nav.MoveDown()
		return IntentRedraw
	case KeyPageUp:
		nav.PageUp()
		return IntentRedraw
	case KeyPageDown:
		nav.PageDown()
		return IntentRedraw
	case KeyEnter:
		return IntentSelect
	case KeyEsc:
		return IntentQuit
	case KeyCtrl:
		switch e.Rune {
		case 'b':
			nav.PageUp()
			return IntentRedraw
		case 'f':
			nav.PageDown()
			return IntentRedraw
		case 'c':
			return IntentQuit
		}
	case KeyRune:
		switch e.Rune {
		case 'k':
			nav.MoveUp()
			return IntentRedraw
		case 'j':
			nav.MoveDown()
			return IntentRedraw
		case ' ':
			nav.PageDown()
			return IntentRedraw
		case 'u':
			return IntentRestore
		case 'q', 'Q':
			return IntentQuit
		}
	}
	return IntentNone
}
