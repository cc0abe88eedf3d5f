package gitrepo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitCommitsEverything(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".quynhluu", "memory"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".quynhluu", "memory", "constitution.md"), []byte("# demo\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("hi\n"), 0644))

	assert.False(t, IsRepo(dir))

	hash, err := Init(dir, Author{Name: "Ada", Email: "ada@example.com"}, "")
	require.NoError(t, err)
	assert.Len(t, hash, 40)
	assert.True(t, IsRepo(dir))

	head, err := Head(dir)
	require.NoError(t, err)
	assert.Equal(t, hash, head)

	repo, err := git.PlainOpen(dir)
	require.NoError(t, err)
	ref, err := repo.Head()
	require.NoError(t, err)
	assert.Equal(t, "refs/heads/"+DefaultBranch, ref.Name().String())

	commit, err := repo.CommitObject(ref.Hash())
	require.NoError(t, err)
	assert.Equal(t, "Ada", commit.Author.Name)
	assert.Contains(t, commit.Message, "Initial commit")

	tree, err := commit.Tree()
	require.NoError(t, err)
	_, err = tree.File(".quynhluu/memory/constitution.md")
	assert.NoError(t, err)
	_, err = tree.File("README.md")
	assert.NoError(t, err)

	wt, err := repo.Worktree()
	require.NoError(t, err)
	status, err := wt.Status()
	require.NoError(t, err)
	assert.True(t, status.IsClean())
}

func TestIsRepoDetectsParent(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("a"), 0644))
	_, err := Init(dir, Author{Name: "Ada", Email: "ada@example.com"}, "first")
	require.NoError(t, err)

	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.Mkdir(sub, 0755))
	assert.True(t, IsRepo(sub))
}

func TestInitFallsBackToDefaultAuthor(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("a"), 0644))

	_, err := Init(dir, Author{}, "")
	require.NoError(t, err)

	repo, err := git.PlainOpen(dir)
	require.NoError(t, err)
	ref, err := repo.Head()
	require.NoError(t, err)
	commit, err := repo.CommitObject(ref.Hash())
	require.NoError(t, err)
	assert.NotEmpty(t, commit.Author.Name)
	assert.NotEmpty(t, commit.Author.Email)
}

func TestHeadWithoutRepo(t *testing.T) {
	_, err := Head(t.TempDir())
	assert.ErrorIs(t, err, ErrNotRepo)
}
