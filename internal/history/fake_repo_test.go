package history

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/audi70r/gitrewind/internal/git"
)

// fakeRepo scripts git's answers for a linear history held in memory.
type fakeRepo struct {
	commits []git.Commit // newest first
	live    string       // current HEAD
	dirty   bool
	stashes int

	failRevParse bool
	failCount    bool
	failLog      bool
	failStash    bool
	failReset    bool
	failPop      bool
	countOutput  string
	extraLines   []string
}

func newFakeRepo(n int) *fakeRepo {
	r := &fakeRepo{}
	for i := n - 1; i >= 0; i-- {
		r.commits = append(r.commits, git.Commit{
			ShortHash:    fmt.Sprintf("c%05d", i),
			Author:       "Test Author",
			RelativeTime: fmt.Sprintf("%d minutes ago", n-i),
			Subject:      fmt.Sprintf("commit %d", i),
		})
	}
	if n > 0 {
		r.live = r.commits[0].ShortHash
	}
	return r
}

func (r *fakeRepo) runner() *git.MockRunner {
	return git.NewMockRunner(r.handle)
}

func (r *fakeRepo) fail(call git.Call, code int, msg string) (string, error) {
	return "", &git.CommandError{Args: append([]string{"git"}, call.Args...), ExitCode: code, Output: msg}
}

func (r *fakeRepo) handle(call git.Call) (string, error) {
	args := strings.Join(call.Args, " ")
	switch {
	case args == "rev-parse --short HEAD":
		if r.failRevParse || r.live == "" {
			return r.fail(call, 128, "fatal: not a git repository")
		}
		return r.live + "\n", nil

	case args == "rev-parse -q --verify refs/stash":
		if r.stashes == 0 {
			return r.fail(call, 1, "")
		}
		return fmt.Sprintf("stash%d\n", r.stashes), nil

	case strings.HasPrefix(args, "stash push"):
		if r.failStash {
			return r.fail(call, 1, "error: could not stash")
		}
		if r.dirty {
			r.stashes++
			r.dirty = false
			return "Saved working directory\n", nil
		}
		return "No local changes to save\n", nil

	case args == "stash apply":
		if r.stashes == 0 {
			return r.fail(call, 1, "No stash entries found.")
		}
		r.dirty = true
		return "", nil

	case args == "stash pop":
		if r.failPop {
			return r.fail(call, 1, "error: could not restore untracked files from stash")
		}
		if r.stashes == 0 {
			return r.fail(call, 1, "No stash entries found.")
		}
		r.stashes--
		r.dirty = true
		return "", nil

	case strings.HasPrefix(args, "reset --hard "):
		if r.failReset {
			return r.fail(call, 128, "fatal: ambiguous argument")
		}
		r.live = call.Args[2]
		r.dirty = false
		return "HEAD is now at " + r.live + "\n", nil

	case call.Command() == "log" && call.Consumer != nil:
		if r.failCount {
			return r.fail(call, 128, "fatal: bad revision")
		}
		if r.countOutput != "" {
			return r.countOutput, nil
		}
		return strconv.Itoa(len(r.commits)+len(r.extraLines)) + "\n", nil

	case call.Command() == "log":
		if r.failLog {
			return r.fail(call, 128, "fatal: bad revision")
		}
		return r.page(call.Args), nil
	}
	return r.fail(call, 1, "unexpected command: "+args)
}

func (r *fakeRepo) page(args []string) string {
	skip, limit := 0, len(r.commits)
	for _, a := range args {
		if v, ok := strings.CutPrefix(a, "--skip="); ok {
			skip, _ = strconv.Atoi(v)
		}
		if v, ok := strings.CutPrefix(a, "--max-count="); ok {
			limit, _ = strconv.Atoi(v)
		}
	}

	var sb strings.Builder
	for _, line := range r.extraLines {
		sb.WriteString(line + "\n")
	}
	for i := skip; i < len(r.commits) && i < skip+limit; i++ {
		c := r.commits[i]
		fmt.Fprintf(&sb, "%s|%s|%s|%s\n", c.ShortHash, c.Author, c.RelativeTime, c.Subject)
	}
	return sb.String()
}
