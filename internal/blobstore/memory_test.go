package blobstore

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/freightdesk/internal/common"
	"github.com/stretchr/testify/require"
)

func TestMemory_ReadWriteDelete(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	_, err := m.Read(ctx, "k")
	require.ErrorIs(t, err, common.ErrorNotFound)

	data := []byte("hello")
	require.NoError(t, m.Write(ctx, "k", data))
	data[0] = 'j'

	got, err := m.Read(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, "hello", string(got), "store must copy on write")

	got[0] = 'x'
	again, err := m.Read(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, "hello", string(again), "store must copy on read")

	require.NoError(t, m.Delete(ctx, "k"))
	require.NoError(t, m.Delete(ctx, "k"), "deleting absent key is not an error")
	_, err = m.Read(ctx, "k")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestMemory_Quota(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	m.SetQuota(10)

	require.NoError(t, m.Write(ctx, "a", make([]byte, 6)))
	require.NoError(t, m.Write(ctx, "a", make([]byte, 10)), "overwrite counts only the new size")

	err := m.Write(ctx, "b", make([]byte, 1))
	require.ErrorIs(t, err, ErrQuotaExceeded)

	got, err := m.Read(ctx, "a")
	require.NoError(t, err)
	require.Len(t, got, 10, "failed write must not change stored data")

	m.SetQuota(0)
	require.NoError(t, m.Write(ctx, "b", make([]byte, 100)))
}
