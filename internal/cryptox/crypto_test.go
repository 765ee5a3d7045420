package cryptox

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_KnownVector(t *testing.T) {
	// sha256("admin123")
	want := "240be518fabd2724ddb6f04eeb1da5967448d7e831c08c8fa822809f74c720a9"
	assert.Equal(t, want, HashPassword("admin123"))
	assert.Equal(t, HashPassword("x"), HashPassword("x"))
	assert.Len(t, HashPassword(""), 64)
}

func TestPasswordMatches(t *testing.T) {
	h := HashPassword("s3cret")

	assert.True(t, PasswordMatches(h, "s3cret"))
	assert.False(t, PasswordMatches(h, "S3cret"))
	assert.False(t, PasswordMatches("", "s3cret"))

	assert.True(t, HashesEqual(h, HashPassword("s3cret")))
	assert.False(t, HashesEqual(h, h[:10]))
}

func TestDeriveKey_Deterministic(t *testing.T) {
	password := []byte("secret-password")
	salt := []byte("fixed-salt")

	key1 := DeriveKey(password, salt)
	key2 := DeriveKey(password, salt)

	if !bytes.Equal(key1, key2) {
		t.Errorf("expected same result for same inputs, got different")
	}
	if len(key1) != KeySize {
		t.Errorf("expected %d-byte key, got %d", KeySize, len(key1))
	}
}

func TestDeriveKey_DifferentSalts(t *testing.T) {
	password := []byte("secret-password")

	key1 := DeriveKey(password, []byte("salt-1"))
	key2 := DeriveKey(password, []byte("salt-2"))

	if bytes.Equal(key1, key2) {
		t.Errorf("expected different results for different salts, got same")
	}
}

func TestSealOpen_RoundTrip(t *testing.T) {
	key := bytes.Repeat([]byte{7}, KeySize)
	plain := []byte("SQLite format 3\x00 payload")

	sealed, err := Seal(key, plain)
	require.NoError(t, err)
	require.NotContains(t, string(sealed), "SQLite format")

	got, err := Open(key, sealed)
	require.NoError(t, err)
	require.Equal(t, plain, got)
}

func TestSeal_FreshNonceEachTime(t *testing.T) {
	key := bytes.Repeat([]byte{1}, KeySize)

	a, err := Seal(key, []byte("same"))
	require.NoError(t, err)
	b, err := Seal(key, []byte("same"))
	require.NoError(t, err)

	require.NotEqual(t, a, b)
}

func TestOpen_WrongKeyOrGarbage(t *testing.T) {
	key := bytes.Repeat([]byte{1}, KeySize)
	other := bytes.Repeat([]byte{2}, KeySize)

	sealed, err := Seal(key, []byte("data"))
	require.NoError(t, err)

	_, err = Open(other, sealed)
	require.ErrorIs(t, err, ErrDecrypt)

	_, err = Open(key, []byte("short"))
	require.ErrorIs(t, err, ErrDecrypt)
}

func TestSeal_BadKeyLength(t *testing.T) {
	_, err := Seal([]byte("short"), []byte("data"))
	require.Error(t, err)
}
