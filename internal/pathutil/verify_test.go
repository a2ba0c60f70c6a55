package pathutil_test

import (
	"fmt"
	"testing"

	"github.com/bromaniac/baby-git/internal/pathutil"
	"github.com/stretchr/testify/assert"
)

func TestIsValid(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		desc     string
		path     string
		expected bool
	}{
		{"simple file name", "hello.txt", true},
		{"nested path", "dir/sub/file.c", true},
		{"empty path", "", false},
		{"current dir", ".", false},
		{"parent dir", "..", false},
		{"hidden file", ".hidden", false},
		{"hidden file in subdir", "dir/.hidden", false},
		{"dotted dir component", ".dircache/index", false},
		{"leading slash", "/etc/passwd", false},
		{"trailing slash", "dir/", false},
		{"double slash", "dir//file", false},
		{"dot inside a name is fine", "file.tar.gz", true},
	}
	for i, tc := range testCases {
		tc := tc
		i := i
		t.Run(fmt.Sprintf("%d/%s", i, tc.desc), func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.expected, pathutil.IsValid(tc.path))
		})
	}
}
