package git

import (
	"strings"
)

// IsGitRepo checks if the path is inside a valid git repository
func IsGitRepo(r Runner, path string) bool {
	_, err := r.Run(path, "rev-parse", "--git-dir")
	return err == nil
}

// ShortRevision resolves rev to its abbreviated hash.
func ShortRevision(r Runner, dir, rev string) (string, error) {
	out, err := r.Run(dir, "rev-parse", "--short", rev)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// StashRef returns the commit refs/stash points at, or "" when there is no stash.
func StashRef(r Runner, dir string) string {
	out, err := r.Run(dir, "rev-parse", "-q", "--verify", "refs/stash")
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

// Stash saves tracked and untracked changes.
func Stash(r Runner, dir string) (string, error) {
	return r.Run(dir, "stash", "push", "--include-untracked")
}

// StashApply applies the most recent stash without dropping it.
func StashApply(r Runner, dir string) (string, error) {
	return r.Run(dir, "stash", "apply")
}

// StashPop applies the most recent stash and drops it.
func StashPop(r Runner, dir string) (string, error) {
	return r.Run(dir, "stash", "pop")
}

// ResetHard moves HEAD, the index and the working tree to rev.
func ResetHard(r Runner, dir, rev string) (string, error) {
	return r.Run(dir, "reset", "--hard", rev)
}
