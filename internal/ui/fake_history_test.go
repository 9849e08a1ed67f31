package ui

import (
	"fmt"

	"github.com/audi70r/gitrewind/internal/git"
)

// fakeHistory pages an in-memory commit list and tracks the live HEAD.
type fakeHistory struct {
	commits  []git.Commit
	pageSize int
	live     string

	resetErr   error
	unstashErr error
	stashed    bool

	resets       []git.Commit
	unstashCalls int
}

func newFakeHistory(n, pageSize int) *fakeHistory {
	h := &fakeHistory{pageSize: pageSize}
	for i := 0; i < n; i++ {
		h.commits = append(h.commits, git.Commit{
			ShortHash:    fmt.Sprintf("h%03d", i),
			Author:       "Test Author",
			RelativeTime: fmt.Sprintf("%d hours ago", i+1),
			Subject:      fmt.Sprintf("commit %d", n-1-i),
		})
	}
	if n > 0 {
		h.live = h.commits[0].ShortHash
	}
	return h
}

func (h *fakeHistory) WorkDir() string { return "/repo" }

func (h *fakeHistory) CurrentCommitFunc() func(git.Commit) bool {
	live := h.live
	return func(c git.Commit) bool { return git.SameRevision(live, c.ShortHash) }
}

func (h *fakeHistory) PageCount() (int, error) {
	return (len(h.commits) + h.pageSize - 1) / h.pageSize, nil
}

func (h *fakeHistory) Page(index int) ([]git.Commit, error) {
	start := index * h.pageSize
	if index < 0 || start >= len(h.commits) {
		return []git.Commit{}, nil
	}
	return h.commits[start:min(start+h.pageSize, len(h.commits))], nil
}

func (h *fakeHistory) Resize(pageSize int) { h.pageSize = max(pageSize, 1) }

func (h *fakeHistory) ResetTo(c git.Commit) error {
	h.resets = append(h.resets, c)
	if h.resetErr != nil {
		return h.resetErr
	}
	h.live = c.ShortHash
	h.stashed = true
	return nil
}

func (h *fakeHistory) Unstash() error {
	h.unstashCalls++
	if h.unstashErr != nil {
		return h.unstashErr
	}
	h.stashed = false
	return nil
}

func (h *fakeHistory) HasStash() bool { return h.stashed }
