package views

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// StatusView shows key help and the outcome of the last action
type StatusView struct {
	root     *tview.Flex
	message  *tview.TextView
	controls *tview.TextView
}

// NewStatusView creates a new status bar
func NewStatusView() *StatusView {
	s := &StatusView{}
	s.setup()
	return s
}

func (s *StatusView) setup() {
	s.message = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft)
	s.message.SetBackgroundColor(tcell.ColorDarkBlue)

	s.controls = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignRight)
	s.controls.SetBackgroundColor(tcell.ColorDarkBlue)

	s.root = tview.NewFlex().
		AddItem(s.message, 0, 1, false).
		AddItem(s.controls, 0, 1, false)

	s.SetControls(false)
}

// SetControls shows the key help, including restore while a stash is pending.
func (s *StatusView) SetControls(restorePending bool) {
	controls := "[yellow]↑↓/jk[-] Move  [yellow]PgUp/PgDn[-] Page  [yellow]Enter[-] Reset"
	if restorePending {
		controls += "  [yellow]u[-] Restore"
	}
	controls += "  [yellow]q[-] Quit"
	s.controls.SetText(controls)
}

// SetMessage shows an informational message
func (s *StatusView) SetMessage(msg string) {
	s.message.SetText("[white]" + tview.Escape(msg) + "[-]")
}

// SetError shows an error message in red
func (s *StatusView) SetError(msg string) {
	s.message.SetText("[red]" + tview.Escape(msg) + "[-]")
}

// Message returns the message text without color tags
func (s *StatusView) Message() string {
	return s.message.GetText(true)
}

// Controls returns the key help without color tags
func (s *StatusView) Controls() string {
	return s.controls.GetText(true)
}

// Root returns the root primitive
func (s *StatusView) Root() tview.Primitive {
	return s.root
}
