package fsbackend_test

import (
	"bytes"
	"compress/zlib"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func mustInflate(t *testing.T, data []byte) []byte {
	t.Helper()

	zr, err := zlib.NewReader(bytes.NewReader(data))
	require.NoError(t, err)
	out, err := io.ReadAll(zr)
	require.NoError(t, err)
	require.NoError(t, zr.Close())
	return out
}

func mustDeflate(t *testing.T, data []byte) []byte {
	t.Helper()

	buf := new(bytes.Buffer)
	zw, err := zlib.NewWriterLevel(buf, zlib.BestCompression)
	require.NoError(t, err)
	_, err = zw.Write(data)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}
