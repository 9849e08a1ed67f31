package ui

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/cockroachdb/errors"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/audi70r/gitrewind/internal/config"
	"github.com/audi70r/gitrewind/internal/git"
	"github.com/audi70r/gitrewind/internal/navigation"
	"github.com/audi70r/gitrewind/internal/ui/views"
)

// Repository is what the app shows about the repository besides its history.
type Repository interface {
	WorkDir() string
	CurrentCommitFunc() func(git.Commit) bool
}

// App represents the main application
type App struct {
	tview  *tview.Application
	pages  *tview.Pages
	config *config.Config
	logger *slog.Logger

	repo Repository
	nav  *navigation.Controller

	// UI components
	root    *tview.Flex
	header  *tview.TextView
	commits *views.CommitsView
	status  *views.StatusView
	confirm *tview.Modal

	height int
	err    error
}

// NewApp creates a new application instance
func NewApp(repo Repository, nav *navigation.Controller, cfg *config.Config, logger *slog.Logger) *App {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	a := &App{
		tview:  tview.NewApplication(),
		pages:  tview.NewPages(),
		config: cfg,
		logger: logger,
		repo:   repo,
		nav:    nav,
	}

	a.setupLayout()
	return a
}

func (a *App) setupLayout() {
	a.header = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)
	a.header.SetBackgroundColor(tcell.ColorDarkBlue)

	a.commits = views.NewCommitsView()
	a.status = views.NewStatusView()
	a.status.SetMessage("Press 'q' to quit")

	a.root = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(a.header, 1, 0, false).
		AddItem(a.commits.Root(), 0, 1, true).
		AddItem(a.status.Root(), 1, 0, false)
	a.root.SetInputCapture(a.handleInput)

	a.confirm = tview.NewModal().
		AddButtons([]string{"Reset", "Cancel"}).
		SetDoneFunc(a.confirmDone)

	a.pages.AddPage("main", a.root, true, true)
	a.pages.AddPage("confirm", a.confirm, false, false)

	a.tview.SetRoot(a.pages, true)
	a.tview.SetInputCapture(a.handleGlobalInput)
	a.tview.SetBeforeDrawFunc(a.beforeDraw)
}

// handleGlobalInput routes Ctrl-C through the quit path so a pending
// restore still runs.
func (a *App) handleGlobalInput(event *tcell.EventKey) *tcell.EventKey {
	if event.Key() == tcell.KeyCtrlC {
		a.quit()
		return nil
	}
	return event
}

func (a *App) handleInput(event *tcell.EventKey) *tcell.EventKey {
	a.apply(FromTcell(event))
	return nil
}

// beforeDraw turns terminal height changes into resize events.
func (a *App) beforeDraw(screen tcell.Screen) bool {
	w, h := screen.Size()
	if h != a.height {
		a.height = h
		a.apply(ResizeEvent{Width: w, Height: h})
	}
	return false
}

func (a *App) apply(ev Event) {
	intent := Dispatch(a.nav, ev)
	a.logger.Debug("input", "event", fmt.Sprintf("%+v", ev), "intent", intent.String())

	switch intent {
	case IntentRedraw:
		a.render()
	case IntentSelect:
		a.requestReset()
	case IntentRestore:
		a.restore()
	case IntentQuit:
		a.quit()
	}
}

func (a *App) render() {
	view := a.nav.Snapshot()

	a.header.SetText(fmt.Sprintf("[::b]gitrewind[-:-:-] - %s %s",
		pageLabel(view), tview.Escape("["+a.repo.WorkDir()+"]")))
	a.commits.Refresh(view.Records, view.Cursor, a.repo.CurrentCommitFunc())
	a.status.SetControls(a.nav.RestorePending())
}

// pageLabel formats the one-based page position, 0/0 for an empty history.
func pageLabel(v navigation.View) string {
	if v.PageCount == 0 {
		return "0/0"
	}
	return fmt.Sprintf("%d/%d", v.Page+1, v.PageCount)
}

func (a *App) requestReset() {
	records := a.nav.Records()
	cursor := a.nav.Cursor()
	if cursor < 0 || cursor >= len(records) {
		a.status.SetError("No commit under cursor")
		return
	}

	if !a.config.ConfirmReset {
		a.selectCurrent()
		return
	}

	target := records[cursor]
	a.confirm.SetText(fmt.Sprintf("Reset working tree to %s?\n\n%s\n\nPending changes are stashed first.",
		target.ShortHash, tview.Escape(target.Subject)))
	a.pages.ShowPage("confirm")
	a.tview.SetFocus(a.confirm)
}

// confirmDone closes the confirm dialog and resets when label is "Reset".
func (a *App) confirmDone(_ int, label string) {
	a.pages.HidePage("confirm")
	a.tview.SetFocus(a.commits.GetFocusable())
	if label == "Reset" {
		a.selectCurrent()
	}
}

func (a *App) selectCurrent() {
	target, err := a.nav.SelectCurrent()
	switch {
	case errors.Is(err, navigation.ErrNoSelection):
		a.status.SetError("No commit under cursor")
	case err != nil && a.nav.RestorePending():
		a.logger.Error("reset failed, changes remain stashed", "commit", target.ShortHash, "err", err)
		a.status.SetError(fmt.Sprintf("Reset to %s failed, changes are stashed, press u to restore: %v", target.ShortHash, err))
	case err != nil:
		a.logger.Error("reset failed", "commit", target.ShortHash, "err", err)
		a.status.SetError(fmt.Sprintf("Reset to %s failed, working tree not changed: %v", target.ShortHash, err))
	default:
		a.status.SetMessage(fmt.Sprintf("Checked out %s, press u to restore stashed changes", target.ShortHash))
	}
	a.render()
}

func (a *App) restore() {
	err := a.nav.Finish()
	switch {
	case errors.Is(err, navigation.ErrNothingToRestore):
		a.status.SetMessage("Nothing to restore")
	case err != nil:
		a.logger.Error("restore failed", "err", err)
		a.status.SetError(fmt.Sprintf("Restore failed: %v", err))
	default:
		a.status.SetMessage("Stashed changes re-applied")
	}
	a.render()
}

func (a *App) quit() {
	if a.nav.RestorePending() && a.config.RestoreOnExit {
		if err := a.nav.Finish(); err != nil {
			a.logger.Error("restore on exit failed", "err", err)
			a.err = errors.Wrap(err, "restore stashed changes on exit")
		}
	}
	a.tview.Stop()
}

// Run starts the application. It returns the error of a restore attempted on
// exit, if any.
func (a *App) Run() error {
	if err := a.tview.Run(); err != nil {
		return err
	}
	return a.err
}
