package readutil_test

import (
	"testing"

	"github.com/bromaniac/baby-git/internal/readutil"
	"github.com/stretchr/testify/assert"
)

func TestReadTo(t *testing.T) {
	t.Parallel()

	t.Run("should return the bytes before the separator", func(t *testing.T) {
		t.Parallel()

		out := readutil.ReadTo([]byte("blob 12\x00hello, world"), ' ')
		assert.Equal(t, []byte("blob"), out)
	})

	t.Run("should return nil when the separator is missing", func(t *testing.T) {
		t.Parallel()

		out := readutil.ReadTo([]byte("blob"), 0)
		assert.Nil(t, out)
	})

	t.Run("should return an empty slice on a leading separator", func(t *testing.T) {
		t.Parallel()

		out := readutil.ReadTo([]byte(" blob"), ' ')
		assert.Empty(t, out)
	})
}
