package main

import (
	"strings"
	"testing"

	"github.com/bromaniac/baby-git/internal/testhelper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteTree(t *testing.T) {
	t.Parallel()

	t.Run("prints the tree id", func(t *testing.T) {
		t.Parallel()

		dir, cleanup := initRepoDir(t)
		defer cleanup()
		testhelper.WriteFile(t, dir, "hello.txt", "hello, world")

		_, _, err := runCmd(t, dir, nil, "", "update-cache", "hello.txt")
		require.NoError(t, err)

		stdout, _, err := runCmd(t, dir, nil, "", "write-tree")
		require.NoError(t, err)

		treeHex := strings.TrimSpace(stdout)
		require.Len(t, treeHex, 40)

		// the printed id must resolve back to the same flat listing
		stdout, _, err = runCmd(t, dir, nil, "", "read-tree", treeHex)
		require.NoError(t, err)
		assert.Contains(t, stdout, "hello.txt")
	})

	t.Run("an empty index is an error", func(t *testing.T) {
		t.Parallel()

		dir, cleanup := initRepoDir(t)
		defer cleanup()

		_, _, err := runCmd(t, dir, nil, "", "write-tree")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "No file-cache")
	})
}
