package history

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/audi70r/gitrewind/internal/git"
)

// createFixtureRepo creates a repository with a linear history of n commits and
// returns its path with the commit hashes, oldest first.
func createFixtureRepo(t *testing.T, n int) (string, []string) {
	t.Helper()

	if _, err := exec.LookPath("git"); err != nil {
		t.Skipf("git not available: %v", err)
	}

	// stash needs an identity even when the user has none configured.
	t.Setenv("GIT_AUTHOR_NAME", "Test Author")
	t.Setenv("GIT_AUTHOR_EMAIL", "test@example.com")
	t.Setenv("GIT_COMMITTER_NAME", "Test Author")
	t.Setenv("GIT_COMMITTER_EMAIL", "test@example.com")

	dir := t.TempDir()
	repo, err := gogit.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("Failed to initialize git repo: %v", err)
	}
	w, err := repo.Worktree()
	if err != nil {
		t.Fatalf("Failed to get worktree: %v", err)
	}

	base := time.Now().Add(-time.Duration(n) * time.Hour)
	hashes := make([]string, 0, n)
	for i := 0; i < n; i++ {
		name := "file.txt"
		content := fmt.Sprintf("revision %d\n", i)
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write file: %v", err)
		}
		if _, err := w.Add(name); err != nil {
			t.Fatalf("Failed to add file: %v", err)
		}
		hash, err := w.Commit(fmt.Sprintf("commit %d | with separator", i), &gogit.CommitOptions{
			Author: &object.Signature{
				Name:  "Test Author",
				Email: "test@example.com",
				When:  base.Add(time.Duration(i) * time.Hour),
			},
		})
		if err != nil {
			t.Fatalf("Failed to commit: %v", err)
		}
		hashes = append(hashes, hash.String())
	}

	return dir, hashes
}

func TestIntegration_RoundTrip(t *testing.T) {
	const k, p = 11, 4
	dir, hashes := createFixtureRepo(t, k)

	m, err := New(git.NewExecRunner("git", nil), dir, Options{PageSize: p})
	require.NoError(t, err)
	assert.True(t, git.SameRevision(m.Head(), hashes[k-1]))

	count, err := m.EntryCount()
	require.NoError(t, err)
	assert.Equal(t, k, count)

	pages, err := m.PageCount()
	require.NoError(t, err)
	assert.Equal(t, 3, pages)

	var got []git.Commit
	for i := 0; i < pages; i++ {
		records, err := m.Page(i)
		require.NoError(t, err)
		got = append(got, records...)
	}

	require.Len(t, got, k)
	for i, c := range got {
		want := hashes[k-1-i]
		assert.True(t, git.SameRevision(c.ShortHash, want), "record %d = %s, want %s", i, c.ShortHash, want)
		assert.Equal(t, "Test Author", c.Author)
		assert.Equal(t, fmt.Sprintf("commit %d | with separator", k-1-i), c.Subject)
		assert.NotEmpty(t, c.RelativeTime)
	}

	beyond, err := m.Page(pages)
	require.NoError(t, err)
	assert.Empty(t, beyond)
}

func TestIntegration_ResetAndRestore(t *testing.T) {
	dir, hashes := createFixtureRepo(t, 5)

	m, err := New(git.NewExecRunner("git", nil), dir, Options{PageSize: 10})
	require.NoError(t, err)

	scratch := filepath.Join(dir, "scratch.txt")
	require.NoError(t, os.WriteFile(scratch, []byte("pending work\n"), 0644))

	records, err := m.Page(0)
	require.NoError(t, err)
	target := records[2]

	require.NoError(t, m.ResetTo(target))
	assert.True(t, m.IsCurrentCommit(target))
	assert.True(t, git.SameRevision(m.Head(), hashes[4]))
	_, err = os.Stat(scratch)
	assert.True(t, os.IsNotExist(err), "untracked file should be stashed away")

	// Browsing stays pinned to the head resolved at startup.
	after, err := m.Page(0)
	require.NoError(t, err)
	assert.Len(t, after, 5)

	require.NoError(t, m.Unstash())
	data, err := os.ReadFile(scratch)
	require.NoError(t, err)
	assert.Equal(t, "pending work\n", string(data))
}

func TestIntegration_NotARepository(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skipf("git not available: %v", err)
	}
	dir := t.TempDir()
	t.Setenv("GIT_CEILING_DIRECTORIES", filepath.Dir(dir))

	_, err := New(git.NewExecRunner("git", nil), dir, Options{PageSize: 4})
	require.Error(t, err)
	assert.Contains(t, err.Error(), dir)
	assert.False(t, git.IsLaunchFailure(err))
}
