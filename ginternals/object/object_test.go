package object_test

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"io"
	"testing"

	"github.com/bromaniac/baby-git/ginternals"
	"github.com/bromaniac/baby-git/ginternals/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeNewTypeFromString(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		desc        string
		typ         string
		expected    object.Type
		expectError bool
	}{
		{desc: "blob", typ: "blob", expected: object.TypeBlob},
		{desc: "tree", typ: "tree", expected: object.TypeTree},
		{desc: "commit", typ: "commit", expected: object.TypeCommit},
		{desc: "tag is not supported", typ: "tag", expectError: true},
		{desc: "garbage", typ: "doesnt-exist", expectError: true},
	}
	for i, tc := range testCases {
		tc := tc
		i := i
		t.Run(fmt.Sprintf("%d/%s", i, tc.desc), func(t *testing.T) {
			t.Parallel()

			typ, err := object.NewTypeFromString(tc.typ)
			if tc.expectError {
				require.ErrorIs(t, err, object.ErrObjectUnknown)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, typ)
			assert.True(t, typ.IsValid())
			assert.Equal(t, tc.typ, typ.String())
		})
	}
}

func TestObjectCompress(t *testing.T) {
	t.Parallel()

	t.Run("compressed stream should inflate back to the framed content", func(t *testing.T) {
		t.Parallel()

		o := object.New(object.TypeBlob, []byte("hello, world"))
		data, oid, err := o.Compress()
		require.NoError(t, err)
		require.False(t, oid.IsZero())

		zr, err := zlib.NewReader(bytes.NewReader(data))
		require.NoError(t, err)
		raw, err := io.ReadAll(zr)
		require.NoError(t, err)
		require.NoError(t, zr.Close())

		assert.Equal(t, []byte("blob 12\x00hello, world"), raw)
	})

	t.Run("the id should be the sha1 of the compressed bytes", func(t *testing.T) {
		t.Parallel()

		o := object.New(object.TypeBlob, []byte("hello, world"))
		data, oid, err := o.Compress()
		require.NoError(t, err)

		assert.Equal(t, ginternals.NewOidFromContent(data), oid)
		assert.Equal(t, oid, o.ID())
	})

	t.Run("identical content should produce identical ids", func(t *testing.T) {
		t.Parallel()

		a := object.New(object.TypeBlob, []byte("same bytes"))
		b := object.New(object.TypeBlob, []byte("same bytes"))
		assert.Equal(t, a.ID(), b.ID())

		c := object.New(object.TypeTree, []byte("same bytes"))
		assert.NotEqual(t, a.ID(), c.ID(), "the type is part of the framed stream")
	})

	t.Run("empty content is valid", func(t *testing.T) {
		t.Parallel()

		o := object.New(object.TypeBlob, nil)
		data, _, err := o.Compress()
		require.NoError(t, err)

		zr, err := zlib.NewReader(bytes.NewReader(data))
		require.NoError(t, err)
		raw, err := io.ReadAll(zr)
		require.NoError(t, err)
		assert.Equal(t, []byte("blob 0\x00"), raw)
	})
}

func TestObjectAs(t *testing.T) {
	t.Parallel()

	t.Run("AsBlob rejects other types", func(t *testing.T) {
		t.Parallel()

		o := object.New(object.TypeTree, nil)
		_, err := o.AsBlob()
		require.ErrorIs(t, err, object.ErrObjectInvalid)
	})

	t.Run("AsBlob wraps the object", func(t *testing.T) {
		t.Parallel()

		o := object.New(object.TypeBlob, []byte("data"))
		b, err := o.AsBlob()
		require.NoError(t, err)
		assert.Equal(t, []byte("data"), b.Bytes())
		assert.Equal(t, 4, b.Size())
		assert.Equal(t, o.ID(), b.ID())
	})
}
