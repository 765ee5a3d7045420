package common

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeRandHexString(t *testing.T) {
	for _, n := range []int{0, 1, 32} {
		s, err := MakeRandHexString(n)
		require.NoError(t, err)
		assert.Len(t, s, n*2)

		b, err := hex.DecodeString(s)
		require.NoError(t, err)
		assert.Len(t, b, n)
	}
}

func TestMakeRandHexString_Differs(t *testing.T) {
	a, err := MakeRandHexString(32)
	require.NoError(t, err)
	b, err := MakeRandHexString(32)
	require.NoError(t, err)
	assert.NotEqual(t, a, b, "two session secrets must not collide")
}

func TestGenerateRandByteArray(t *testing.T) {
	salt := GenerateRandByteArray(16)
	assert.Len(t, salt, 16)
	assert.NotEqual(t, salt, GenerateRandByteArray(16))
	assert.Empty(t, GenerateRandByteArray(0))
}

func TestWipeByteArray(t *testing.T) {
	pw := []byte("admin123")
	WipeByteArray(pw)
	assert.Equal(t, make([]byte, 8), pw)

	assert.NotPanics(t, func() { WipeByteArray(nil) })
}

func TestDefaultCredentials(t *testing.T) {
	assert.NotEmpty(t, DefaultUsername)
	assert.NotEmpty(t, DefaultPassword)
	assert.NotEqual(t, DatabaseBlobKey, LastBackupBlobKey)
}
