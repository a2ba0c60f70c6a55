package ginternals_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/bromaniac/baby-git/ginternals"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOidFromStr(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		desc        string
		id          string
		expectError bool
	}{
		{
			desc: "valid lowercase id should pass",
			id:   "0eaf966ff79d8f61958aaefe163620d952606516",
		},
		{
			desc: "valid uppercase id should pass",
			id:   "0EAF966FF79D8F61958AAEFE163620D952606516",
		},
		{
			desc:        "id too short should fail",
			id:          "0eaf966ff79d8f61958aaefe163620d95260651",
			expectError: true,
		},
		{
			desc:        "id too long should fail",
			id:          "0eaf966ff79d8f61958aaefe163620d9526065160",
			expectError: true,
		},
		{
			desc:        "id with invalid chars should fail",
			id:          "0eaf966ff79d8f61958aaefe163620d95260651g",
			expectError: true,
		},
		{
			desc:        "id with a space should fail",
			id:          " eaf966ff79d8f61958aaefe163620d952606516",
			expectError: true,
		},
		{
			desc:        "empty id should fail",
			id:          "",
			expectError: true,
		},
	}
	for i, tc := range testCases {
		tc := tc
		i := i
		t.Run(fmt.Sprintf("%d/%s", i, tc.desc), func(t *testing.T) {
			t.Parallel()

			oid, err := ginternals.NewOidFromStr(tc.id)
			if tc.expectError {
				require.Error(t, err)
				require.ErrorIs(t, err, ginternals.ErrInvalidOid)
				assert.True(t, oid.IsZero())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, strings.ToLower(tc.id), oid.String())
		})
	}
}

func TestOidRoundTrip(t *testing.T) {
	t.Parallel()

	oid := ginternals.NewOidFromContent([]byte("some content"))
	require.False(t, oid.IsZero())

	back, err := ginternals.NewOidFromStr(oid.String())
	require.NoError(t, err)
	assert.Equal(t, oid, back)

	fromBytes, err := ginternals.NewOidFromBytes(oid.Bytes())
	require.NoError(t, err)
	assert.Equal(t, oid, fromBytes)

	fromChars, err := ginternals.NewOidFromChars([]byte(oid.String()))
	require.NoError(t, err)
	assert.Equal(t, oid, fromChars)
}

func TestNewOidFromBytes(t *testing.T) {
	t.Parallel()

	t.Run("short input should fail", func(t *testing.T) {
		t.Parallel()

		_, err := ginternals.NewOidFromBytes(make([]byte, 19))
		require.ErrorIs(t, err, ginternals.ErrInvalidOid)
	})

	t.Run("40 raw bytes should fail", func(t *testing.T) {
		t.Parallel()

		_, err := ginternals.NewOidFromBytes(make([]byte, 40))
		require.ErrorIs(t, err, ginternals.ErrInvalidOid)
	})
}
