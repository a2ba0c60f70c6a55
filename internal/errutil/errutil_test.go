package errutil_test

import (
	"errors"
	"testing"

	"github.com/bromaniac/baby-git/internal/errutil"
	"github.com/stretchr/testify/assert"
)

type closer struct {
	err error
}

func (c *closer) Close() error {
	return c.err
}

func TestClose(t *testing.T) {
	t.Parallel()

	t.Run("should keep the original error", func(t *testing.T) {
		t.Parallel()

		orig := errors.New("original")
		err := orig
		errutil.Close(&closer{err: errors.New("close failed")}, &err)
		assert.Equal(t, orig, err)
	})

	t.Run("should set the close error if no error was set", func(t *testing.T) {
		t.Parallel()

		closeErr := errors.New("close failed")
		var err error
		errutil.Close(&closer{err: closeErr}, &err)
		assert.Equal(t, closeErr, err)
	})

	t.Run("should leave a nil error alone", func(t *testing.T) {
		t.Parallel()

		var err error
		errutil.Close(&closer{}, &err)
		assert.NoError(t, err)
	})
}
