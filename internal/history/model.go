// Package history pages through a repository's commit log and performs the
// stash/reset/unstash sequence used to roll the working tree back to a commit.
package history

import (
	"io"
	"log/slog"

	"github.com/cockroachdb/errors"

	"github.com/audi70r/gitrewind/internal/git"
)

// DefaultCountCommand counts lines of log output.
var DefaultCountCommand = []string{"wc", "-l"}

// Options configures a Model.
type Options struct {
	PageSize     int
	CountCommand []string
	Logger       *slog.Logger
}

// Model owns pagination state for one working directory.
//
// Pages are queried against head, the short hash HEAD had when the model was
// created, so browsing stays stable while resets move the live HEAD around.
type Model struct {
	runner       git.Runner
	workDir      string
	pageSize     int
	head         string
	countCommand []string
	logger       *slog.Logger

	// stashed is set while a stash created by ResetTo waits to be re-applied.
	stashed bool
}

// New creates a Model for workDir and resolves its head revision.
// It fails when workDir is not a repository or git cannot be executed.
func New(runner git.Runner, workDir string, opts Options) (*Model, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	countCommand := opts.CountCommand
	if len(countCommand) == 0 {
		countCommand = DefaultCountCommand
	}

	head, err := git.ShortRevision(runner, workDir, "HEAD")
	if err != nil {
		return nil, errors.Wrapf(err, "resolve HEAD in %s", workDir)
	}
	if head == "" {
		return nil, errors.Newf("resolve HEAD in %s: empty revision", workDir)
	}

	m := &Model{
		runner:       runner,
		workDir:      workDir,
		pageSize:     clampPageSize(opts.PageSize),
		head:         head,
		countCommand: countCommand,
		logger:       logger,
	}
	logger.Info("history opened", "dir", workDir, "head", head, "page_size", m.pageSize)
	return m, nil
}

// WorkDir returns the repository working directory
func (m *Model) WorkDir() string { return m.workDir }

// Head returns the revision pages are pinned to
func (m *Model) Head() string { return m.head }

// PageSize returns the number of commits per page
func (m *Model) PageSize() int { return m.pageSize }

// Resize sets the page size. Values below 1 are clamped to 1.
func (m *Model) Resize(pageSize int) {
	m.pageSize = clampPageSize(pageSize)
	m.logger.Debug("page size changed", "page_size", m.pageSize)
}

// EntryCount counts the commits reachable from the pinned head.
// It runs on every call; an error means the count is unknown.
func (m *Model) EntryCount() (int, error) {
	out, err := m.runner.Pipe(m.workDir, git.CountArgs(m.head), m.countCommand)
	if err != nil {
		m.logger.Warn("count query failed", "err", err)
		return 0, errors.Wrap(err, "count history entries")
	}

	count, err := git.ParseCount(out)
	if err != nil {
		m.logger.Warn("count output unreadable", "output", out, "err", err)
		return 0, errors.Wrap(err, "count history entries")
	}
	return count, nil
}

// PageCount returns ceil(EntryCount / PageSize).
func (m *Model) PageCount() (int, error) {
	count, err := m.EntryCount()
	if err != nil {
		return 0, err
	}
	return pageCount(count, m.pageSize), nil
}

// Page returns the commits on page index, newest first. Indexes past the end
// of history give an empty page. An error is returned only when git failed.
func (m *Model) Page(index int) ([]git.Commit, error) {
	if index < 0 {
		return []git.Commit{}, nil
	}

	out, err := m.runner.Run(m.workDir, git.LogArgs(m.head, index*m.pageSize, m.pageSize)...)
	if err != nil {
		m.logger.Warn("page query failed", "page", index, "err", err)
		return nil, errors.Wrapf(err, "read history page %d", index)
	}

	return git.ParseLog(out, func(lineNum int, line string) {
		m.logger.Warn("dropping malformed log line", "page", index, "line_num", lineNum, "line", line)
	}), nil
}

// CurrentRevision returns the short hash of the live HEAD, which differs from
// Head after a reset in this session.
func (m *Model) CurrentRevision() (string, error) {
	rev, err := git.ShortRevision(m.runner, m.workDir, "HEAD")
	if err != nil {
		return "", errors.Wrap(err, "resolve current HEAD")
	}
	return rev, nil
}

// IsCurrentCommit reports whether c is checked out right now.
func (m *Model) IsCurrentCommit(c git.Commit) bool {
	return m.CurrentCommitFunc()(c)
}

// CurrentCommitFunc resolves the live HEAD once and returns a predicate that
// matches the commit checked out at that moment. When HEAD cannot be resolved
// the predicate matches nothing.
func (m *Model) CurrentCommitFunc() func(git.Commit) bool {
	rev, err := m.CurrentRevision()
	if err != nil {
		m.logger.Warn("current revision unknown", "err", err)
		return func(git.Commit) bool { return false }
	}
	return func(c git.Commit) bool {
		return git.SameRevision(rev, c.ShortHash)
	}
}

// Stash saves tracked and untracked changes. A clean tree is not an error;
// it simply leaves nothing for Unstash to restore.
func (m *Model) Stash() error {
	_, err := m.stash()
	return err
}

// stash runs Stash and reports whether a new stash entry was created.
func (m *Model) stash() (bool, error) {
	before := git.StashRef(m.runner, m.workDir)

	if _, err := git.Stash(m.runner, m.workDir); err != nil {
		m.logger.Error("stash failed", "dir", m.workDir, "err", err)
		return false, errors.Wrapf(err, "stash changes in %s", m.workDir)
	}

	after := git.StashRef(m.runner, m.workDir)
	created := after != "" && after != before
	if created {
		m.stashed = true
	}
	m.logger.Info("stashed", "dir", m.workDir, "created", created)
	return created, nil
}

// ResetTo stashes pending changes and hard-resets the working tree to c.
// When the stash fails the reset is not attempted. When the reset fails, the
// stash it created is popped back so the working tree is left as it was; if
// that also fails the changes stay stashed and HasStash reports it.
func (m *Model) ResetTo(c git.Commit) error {
	if c.ShortHash == "" {
		return errors.New("reset: commit has no hash")
	}
	wasStashed := m.stashed
	created, err := m.stash()
	if err != nil {
		return errors.Wrapf(err, "reset to %s aborted", c.ShortHash)
	}

	if _, err := git.ResetHard(m.runner, m.workDir, c.ShortHash); err != nil {
		m.logger.Error("reset failed", "commit", c.ShortHash, "err", err)
		resetErr := errors.Wrapf(err, "reset to %s", c.ShortHash)
		if !created {
			return resetErr
		}

		if _, popErr := git.StashPop(m.runner, m.workDir); popErr != nil {
			m.logger.Error("rollback failed, changes remain stashed", "err", popErr)
			return errors.Wrapf(resetErr, "changes remain stashed (pop failed: %v)", popErr)
		}
		m.stashed = wasStashed
		m.logger.Info("rolled back stash after failed reset", "commit", c.ShortHash)
		return resetErr
	}

	m.logger.Info("reset", "commit", c.ShortHash)
	return nil
}

// Unstash re-applies the stash created by ResetTo, keeping it in the stash
// list. Without such a stash it does nothing.
func (m *Model) Unstash() error {
	if !m.stashed {
		m.logger.Info("nothing stashed in this session, skipping apply")
		return nil
	}

	if _, err := git.StashApply(m.runner, m.workDir); err != nil {
		m.logger.Error("stash apply failed", "err", err)
		return errors.Wrapf(err, "apply stash in %s", m.workDir)
	}

	m.stashed = false
	m.logger.Info("stash applied", "dir", m.workDir)
	return nil
}

// HasStash reports whether a stash from this session waits to be applied.
func (m *Model) HasStash() bool { return m.stashed }

func pageCount(entries, pageSize int) int {
	if entries <= 0 {
		return 0
	}
	return (entries + pageSize - 1) / pageSize
}

func clampPageSize(n int) int {
	if n < 1 {
		return 1
	}
	return n
}
