package gitlog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chronolist/internal/history"
)

func commitFile(t *testing.T, w *git.Worktree, dir, content, message string, when time.Time) {
	t.Helper()
	err := os.WriteFile(filepath.Join(dir, "README.md"), []byte(content), 0644)
	require.NoError(t, err)
	_, err = w.Add("README.md")
	require.NoError(t, err)
	_, err = w.Commit(message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  "Test Maintainer",
			Email: "test@example.com",
			When:  when,
		},
	})
	require.NoError(t, err)
}

func initTestRepo(t *testing.T) (string, *git.Worktree) {
	t.Helper()
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	w, err := repo.Worktree()
	require.NoError(t, err)
	return dir, w
}

func TestHistory_RendersCommitBlocks(t *testing.T) {
	dir, w := initTestRepo(t)

	first := time.Date(2023, time.March, 15, 12, 0, 0, 0, time.UTC)
	second := time.Date(2024, time.January, 1, 9, 30, 0, 0, time.UTC)

	commitFile(t, w, dir, "# Tools\n- [Foo](http://foo.com)\n", "add foo", first)
	commitFile(t, w, dir, "# Tools\n- [Foo](http://foo.com)\n- [Bar](http://bar.com)\n", "add bar", second)

	out, err := History(dir, "README.md")
	require.NoError(t, err)

	assert.Contains(t, out, "commit ")
	assert.Contains(t, out, "Date:   ")
	assert.Contains(t, out, "+- [Foo](http://foo.com)")
	assert.Contains(t, out, "+- [Bar](http://bar.com)")
}

func TestHistory_FeedsExtractor(t *testing.T) {
	dir, w := initTestRepo(t)

	first := time.Date(2023, time.March, 15, 12, 0, 0, 0, time.UTC)
	second := time.Date(2024, time.January, 1, 9, 30, 0, 0, time.UTC)

	commitFile(t, w, dir, "# Tools\n- [Foo](http://foo.com)\n", "add foo", first)
	commitFile(t, w, dir, "# Tools\n- [Foo](http://foo.com)\n- [Bar](http://bar.com)\n", "add bar", second)

	out, err := History(dir, "README.md")
	require.NoError(t, err)

	records := history.Extract(out)

	foo, ok := records["- [Foo](http://foo.com)"]
	require.True(t, ok)
	assert.True(t, foo.UTC().Equal(first))

	bar, ok := records["- [Bar](http://bar.com)"]
	require.True(t, ok)
	assert.True(t, bar.UTC().Equal(second))
}

func TestHistory_IgnoresOtherFiles(t *testing.T) {
	dir, w := initTestRepo(t)

	when := time.Date(2024, time.January, 1, 9, 30, 0, 0, time.UTC)

	// A commit touching the tracked file and an unrelated one: the
	// unrelated file's lines must not appear in the dump.
	err := os.WriteFile(filepath.Join(dir, "OTHER.md"), []byte("- [Other](http://other.io)\n"), 0644)
	require.NoError(t, err)
	_, err = w.Add("OTHER.md")
	require.NoError(t, err)
	commitFile(t, w, dir, "# Tools\n- [Foo](http://foo.com)\n", "add both", when)

	out, err := History(dir, "README.md")
	require.NoError(t, err)

	assert.Contains(t, out, "+- [Foo](http://foo.com)")
	assert.NotContains(t, out, "Other")
}

func TestHistory_NotARepository(t *testing.T) {
	_, err := History(t.TempDir(), "README.md")
	assert.Error(t, err)
}
