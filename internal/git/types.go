package git

import (
	"fmt"
	"strings"
)

// Commit represents a single commit as listed by the history log
type Commit struct {
	ShortHash    string
	Author       string
	RelativeTime string
	Subject      string
}

// Is reports whether both records name the same commit
func (c Commit) Is(other Commit) bool {
	return c.ShortHash != "" && c.ShortHash == other.ShortHash
}

func (c Commit) String() string {
	return fmt.Sprintf("%s %s %s: %s", c.ShortHash, c.RelativeTime, c.Author, c.Subject)
}

// SameRevision compares abbreviated hashes, which git may print at
// different lengths.
func SameRevision(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.HasPrefix(a, b) || strings.HasPrefix(b, a)
}
