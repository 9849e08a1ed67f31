// Package navigation tracks the cursor over a paged commit history.
package navigation

import (
	"github.com/cockroachdb/errors"

	"github.com/audi70r/gitrewind/internal/git"
)

var (
	// ErrNoSelection is returned when there is no record under the cursor.
	ErrNoSelection = errors.New("no commit under cursor")
	// ErrNothingToRestore is returned by Finish without a preceding successful select.
	ErrNothingToRestore = errors.New("no reset to restore from")
)

// History is the part of history.Model the controller drives.
type History interface {
	PageCount() (int, error)
	Page(index int) ([]git.Commit, error)
	Resize(pageSize int)
	ResetTo(c git.Commit) error
	Unstash() error
	HasStash() bool
}

// View is what a renderer needs to draw one frame.
type View struct {
	Page      int
	PageCount int
	Cursor    int
	Records   []git.Commit
}

// Controller holds the (page, cursor) position over a History.
type Controller struct {
	history        History
	chromeRows     int
	page           int
	cursor         int
	restorePending bool
}

// New creates a controller at the first row of the first page.
// chromeRows is the number of screen rows not available to commit rows.
func New(history History, chromeRows int) *Controller {
	if chromeRows < 0 {
		chromeRows = 0
	}
	return &Controller{history: history, chromeRows: chromeRows}
}

// Page returns the current page index
func (c *Controller) Page() int { return c.page }

// Cursor returns the row within the current page
func (c *Controller) Cursor() int { return c.cursor }

// RestorePending reports whether a reset awaits Finish.
func (c *Controller) RestorePending() bool { return c.restorePending }

// PageCount returns the number of pages, 0 when unknown.
func (c *Controller) PageCount() int {
	n, err := c.history.PageCount()
	if err != nil {
		return 0
	}
	return n
}

// Records returns the current page, empty when it cannot be read.
func (c *Controller) Records() []git.Commit {
	return c.records(c.page)
}

// Snapshot returns the current page with its position.
func (c *Controller) Snapshot() View {
	return View{
		Page:      c.page,
		PageCount: c.PageCount(),
		Cursor:    c.cursor,
		Records:   c.Records(),
	}
}

// MoveDown advances one row, continuing on the next page after the last row.
// On the last row of the last page it does nothing.
func (c *Controller) MoveDown() {
	if c.cursor+1 < c.pageLen(c.page) {
		c.cursor++
		return
	}

	next := c.page + 1
	if next >= c.PageCount() || c.pageLen(next) == 0 {
		return
	}
	c.page, c.cursor = next, 0
}

// MoveUp goes back one row, continuing on the last row of the previous page.
// On the first row of the first page it does nothing.
func (c *Controller) MoveUp() {
	if c.cursor > 0 {
		c.cursor--
		return
	}
	if c.page == 0 {
		return
	}

	c.page--
	c.cursor = max(c.pageLen(c.page)-1, 0)
}

// PageDown moves to the first row of the next page, staying on the last page.
func (c *Controller) PageDown() {
	c.page = clamp(c.page+1, c.PageCount())
	c.cursor = 0
}

// PageUp moves to the first row of the previous page, staying on the first page.
func (c *Controller) PageUp() {
	c.page = clamp(c.page-1, c.PageCount())
	c.cursor = 0
}

// Resize derives the page size from the viewport height and returns to the
// first row of the first page, since page boundaries have moved.
func (c *Controller) Resize(height int) {
	c.history.Resize(PageSizeForHeight(height, c.chromeRows))
	c.page, c.cursor = 0, 0
}

// SelectCurrent resets the working tree to the commit under the cursor,
// stashing pending changes first.
func (c *Controller) SelectCurrent() (git.Commit, error) {
	records := c.Records()
	if c.cursor < 0 || c.cursor >= len(records) {
		return git.Commit{}, ErrNoSelection
	}

	target := records[c.cursor]
	if err := c.history.ResetTo(target); err != nil {
		// A reset that failed after stashing may leave changes in the stash.
		c.restorePending = c.history.HasStash()
		return target, err
	}
	c.restorePending = true
	return target, nil
}

// Finish re-applies the changes stashed by SelectCurrent.
func (c *Controller) Finish() error {
	if !c.restorePending {
		return ErrNothingToRestore
	}
	if err := c.history.Unstash(); err != nil {
		return err
	}
	c.restorePending = false
	return nil
}

// PageSizeForHeight returns the number of commit rows that fit in height.
func PageSizeForHeight(height, chromeRows int) int {
	return max(height-chromeRows, 1)
}

func (c *Controller) records(page int) []git.Commit {
	records, err := c.history.Page(page)
	if err != nil {
		return []git.Commit{}
	}
	return records
}

func (c *Controller) pageLen(page int) int {
	return len(c.records(page))
}

// clamp limits page to [0, pages-1], or 0 when there are no pages.
func clamp(page, pages int) int {
	if pages <= 0 || page < 0 {
		return 0
	}
	if page >= pages {
		return pages - 1
	}
	return page
}
