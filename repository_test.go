package babygit_test

import (
	"testing"

	babygit "github.com/bromaniac/baby-git"
	"github.com/bromaniac/baby-git/ginternals"
	"github.com/bromaniac/baby-git/ginternals/config"
	"github.com/bromaniac/baby-git/ginternals/object"
	"github.com/bromaniac/baby-git/internal/env"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) *babygit.Repository {
	t.Helper()

	cfg, err := config.LoadConfig(env.NewFromKVList(nil), config.LoadConfigOptions{
		WorkingDirectory: "/repo",
		Fs:               afero.NewMemMapFs(),
	})
	require.NoError(t, err)

	r, err := babygit.InitRepository(cfg)
	require.NoError(t, err)
	return r
}

func writeWorkingFile(t *testing.T, r *babygit.Repository, name, content string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(r.Config().Fs(), "/repo/"+name, []byte(content), 0o644))
}

func TestStageFile(t *testing.T) {
	t.Parallel()

	t.Run("staging persists the blob and the entry", func(t *testing.T) {
		t.Parallel()

		r := newTestRepo(t)
		writeWorkingFile(t, r, "hello.txt", "hello, world")

		idx, err := r.LoadIndex()
		require.NoError(t, err)
		require.NoError(t, r.StageFile(idx, "hello.txt"))

		require.Equal(t, 1, idx.Len())
		e, ok := idx.Get("hello.txt")
		require.True(t, ok)
		assert.Equal(t, uint32(12), e.Size)
		assert.True(t, r.HasObject(e.ID))

		o, err := r.GetObject(e.ID)
		require.NoError(t, err)
		assert.Equal(t, object.TypeBlob, o.Type())
		assert.Equal(t, "hello, world", string(o.Bytes()))
	})

	t.Run("staging a vanished file removes its entry", func(t *testing.T) {
		t.Parallel()

		r := newTestRepo(t)
		writeWorkingFile(t, r, "hello.txt", "hello, world")

		idx, err := r.LoadIndex()
		require.NoError(t, err)
		require.NoError(t, r.StageFile(idx, "hello.txt"))
		require.Equal(t, 1, idx.Len())

		require.NoError(t, r.Config().Fs().Remove("/repo/hello.txt"))
		require.NoError(t, r.StageFile(idx, "hello.txt"))
		assert.Equal(t, 0, idx.Len())
	})
}

func TestWriteTree(t *testing.T) {
	t.Parallel()

	t.Run("an empty index cannot become a tree", func(t *testing.T) {
		t.Parallel()

		r := newTestRepo(t)
		_, err := r.WriteTree()
		require.ErrorIs(t, err, babygit.ErrEmptyIndex)
	})

	t.Run("the tree snapshots the index in order", func(t *testing.T) {
		t.Parallel()

		r := newTestRepo(t)
		writeWorkingFile(t, r, "b.txt", "bee")
		writeWorkingFile(t, r, "a.txt", "ay")

		idx, err := r.LoadIndex()
		require.NoError(t, err)
		require.NoError(t, r.StageFile(idx, "b.txt"))
		require.NoError(t, r.StageFile(idx, "a.txt"))
		require.NoError(t, r.SaveIndex(idx))

		treeID, err := r.WriteTree()
		require.NoError(t, err)

		o, err := r.GetObject(treeID)
		require.NoError(t, err)
		tree, err := o.AsTree()
		require.NoError(t, err)

		entries := tree.Entries()
		require.Len(t, entries, 2)
		assert.Equal(t, "a.txt", entries[0].Name)
		assert.Equal(t, "b.txt", entries[1].Name)
	})

	t.Run("a missing blob fails the write", func(t *testing.T) {
		t.Parallel()

		r := newTestRepo(t)
		writeWorkingFile(t, r, "a.txt", "ay")

		idx, err := r.LoadIndex()
		require.NoError(t, err)
		require.NoError(t, r.StageFile(idx, "a.txt"))

		// corrupt the entry so it points to a blob that was never
		// written
		e, ok := idx.Get("a.txt")
		require.True(t, ok)
		e.ID = ginternals.NewOidFromContent([]byte("not a stored blob"))
		idx.Add(e)
		require.NoError(t, r.SaveIndex(idx))

		_, err = r.WriteTree()
		require.ErrorIs(t, err, babygit.ErrBlobMissing)
	})
}

func TestCommitTree(t *testing.T) {
	t.Parallel()

	stageAndWriteTree := func(t *testing.T, r *babygit.Repository) ginternals.Oid {
		writeWorkingFile(t, r, "hello.txt", "hello, world")
		idx, err := r.LoadIndex()
		require.NoError(t, err)
		require.NoError(t, r.StageFile(idx, "hello.txt"))
		require.NoError(t, r.SaveIndex(idx))

		treeID, err := r.WriteTree()
		require.NoError(t, err)
		return treeID
	}

	sig := object.Signature{Name: "A U Thor", Email: "author@example.com", Date: "Thu Apr  7 15:13:13 2005"}

	t.Run("the commit payload is readable back", func(t *testing.T) {
		t.Parallel()

		r := newTestRepo(t)
		treeID := stageAndWriteTree(t, r)

		commitID, err := r.CommitTree(treeID, nil, sig, "initial\n")
		require.NoError(t, err)

		o, err := r.GetObject(commitID)
		require.NoError(t, err)
		ci, err := o.AsCommit()
		require.NoError(t, err)
		assert.Equal(t, treeID, ci.TreeID())
		assert.Empty(t, ci.ParentIDs())
		assert.Equal(t, "initial\n", ci.Message())
		assert.Equal(t, sig, ci.Author())
	})

	t.Run("parent order changes the id", func(t *testing.T) {
		t.Parallel()

		r := newTestRepo(t)
		treeID := stageAndWriteTree(t, r)

		p1, err := r.CommitTree(treeID, nil, sig, "one\n")
		require.NoError(t, err)
		p2, err := r.CommitTree(treeID, nil, sig, "two\n")
		require.NoError(t, err)

		a, err := r.CommitTree(treeID, []ginternals.Oid{p1, p2}, sig, "merge\n")
		require.NoError(t, err)
		b, err := r.CommitTree(treeID, []ginternals.Oid{p2, p1}, sig, "merge\n")
		require.NoError(t, err)
		assert.NotEqual(t, a, b)
	})
}
