package views

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/audi70r/gitrewind/internal/git"
)

// CurrentMarker flags the row of the commit checked out right now.
const CurrentMarker = "●"

// CommitsView displays one page of history
type CommitsView struct {
	root    *tview.Flex
	table   *tview.Table
	columns []string
}

// NewCommitsView creates a new commits view
func NewCommitsView() *CommitsView {
	v := &CommitsView{
		columns: []string{" ", "Commit", "Author", "When", "Subject"},
	}
	v.setup()
	return v
}

func (v *CommitsView) setup() {
	v.table = tview.NewTable().
		SetSelectable(true, false).
		SetFixed(1, 0).
		SetSeparator(' ').
		SetSelectedStyle(tcell.StyleDefault.Background(tcell.ColorDarkCyan).Foreground(tcell.ColorWhite))

	v.table.SetBorder(true).SetTitle(" History ")

	v.root = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(v.table, 0, 1, true)

	v.renderHeader()
}

func (v *CommitsView) renderHeader() {
	for col, name := range v.columns {
		v.table.SetCell(0, col, tview.NewTableCell(name).
			SetTextColor(tcell.ColorYellow).
			SetSelectable(false).
			SetAttributes(tcell.AttrBold))
	}
}

// Refresh replaces the rows with records and selects the row under cursor.
// Rows for which isCurrent reports true get the current marker; isCurrent may be nil.
func (v *CommitsView) Refresh(records []git.Commit, cursor int, isCurrent func(git.Commit) bool) {
	v.table.Clear()
	v.renderHeader()

	if len(records) == 0 {
		v.table.SetCell(1, 1, tview.NewTableCell("No commits to show").
			SetTextColor(tcell.ColorDarkGray).
			SetSelectable(false))
		return
	}

	for i, c := range records {
		row := i + 1

		marker := ""
		hashColor := tcell.ColorYellow
		if isCurrent != nil && isCurrent(c) {
			marker = CurrentMarker
			hashColor = tcell.ColorGreen
		}

		v.table.SetCell(row, 0, tview.NewTableCell(marker).
			SetTextColor(tcell.ColorGreen))

		v.table.SetCell(row, 1, tview.NewTableCell(c.ShortHash).
			SetTextColor(hashColor))

		v.table.SetCell(row, 2, tview.NewTableCell(tview.Escape(c.Author)).
			SetMaxWidth(24))

		v.table.SetCell(row, 3, tview.NewTableCell(c.RelativeTime).
			SetTextColor(tcell.ColorDarkGray))

		v.table.SetCell(row, 4, tview.NewTableCell(tview.Escape(c.Subject)).
			SetExpansion(1))
	}

	cursor = max(0, min(cursor, len(records)-1))
	v.table.Select(cursor+1, 0)
}

// SetTitle sets the border title
func (v *CommitsView) SetTitle(title string) {
	v.table.SetTitle(" " + title + " ")
}

// Root returns the root primitive
func (v *CommitsView) Root() tview.Primitive {
	return v.root
}

// GetFocusable returns the focusable component
func (v *CommitsView) GetFocusable() tview.Primitive {
	return v.table
}
