package blobstore

import (
	"bytes"
	"context"
	"testing"

	"github.com/dmitrijs2005/freightdesk/internal/common"
	"github.com/stretchr/testify/require"
)

func TestEncrypted_RoundTrip(t *testing.T) {
	ctx := context.Background()
	inner := NewMemory()
	e := NewEncrypted(inner, "correct horse")

	plain := []byte("SQLite format 3\x00 freight rows")
	require.NoError(t, e.Write(ctx, "db", plain))

	raw, err := inner.Read(ctx, "db")
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(raw, []byte("FDE1")))
	require.False(t, bytes.Contains(raw, []byte("freight rows")))

	got, err := e.Read(ctx, "db")
	require.NoError(t, err)
	require.Equal(t, plain, got)

	// a fresh instance derives the key from the stored salt
	other := NewEncrypted(inner, "correct horse")
	got, err = other.Read(ctx, "db")
	require.NoError(t, err)
	require.Equal(t, plain, got)
}

func TestEncrypted_WrongPassphrase(t *testing.T) {
	ctx := context.Background()
	inner := NewMemory()
	require.NoError(t, NewEncrypted(inner, "right").Write(ctx, "db", []byte("data")))

	_, err := NewEncrypted(inner, "wrong").Read(ctx, "db")
	require.ErrorIs(t, err, ErrWrongPassphrase)
}

func TestEncrypted_PlainBlobRejected(t *testing.T) {
	ctx := context.Background()
	inner := NewMemory()
	require.NoError(t, inner.Write(ctx, "db", []byte("SQLite format 3")))

	_, err := NewEncrypted(inner, "pw").Read(ctx, "db")
	require.ErrorIs(t, err, ErrWrongPassphrase)
}

func TestEncrypted_PassesThroughNotFoundAndDelete(t *testing.T) {
	ctx := context.Background()
	inner := NewMemory()
	e := NewEncrypted(inner, "pw")

	_, err := e.Read(ctx, "db")
	require.ErrorIs(t, err, common.ErrorNotFound)

	require.NoError(t, e.Write(ctx, "db", []byte("x")))
	require.NoError(t, e.Delete(ctx, "db"))
	_, err = inner.Read(ctx, "db")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestEncrypted_WriteErrorPropagates(t *testing.T) {
	ctx := context.Background()
	inner := NewMemory()
	inner.SetQuota(8)

	err := NewEncrypted(inner, "pw").Write(ctx, "db", []byte("payload"))
	require.ErrorIs(t, err, ErrQuotaExceeded)
}

func TestEncrypted_Close(t *testing.T) {
	e := NewEncrypted(NewMemory(), "pw")
	require.NoError(t, e.Write(context.Background(), "db", []byte("x")))

	e.Close()
	require.Nil(t, e.key)
	require.Equal(t, []byte{0, 0}, e.passphrase)
}
