package blobstore

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/freightdesk/internal/common"
)

// ErrQuotaExceeded is returned by Memory when a write would exceed its quota.
var ErrQuotaExceeded = errors.New("storage quota exceeded")

// Memory keeps blobs in a map. With a positive quota, writes that would push
// the total size above it fail, which mimics a full storage medium.
type Memory struct {
	mu    sync.Mutex
	blobs map[string][]byte
	quota int
}

func NewMemory() *Memory {
	return &Memory{blobs: make(map[string][]byte)}
}

// SetQuota limits the total stored bytes; zero or negative means unlimited.
func (m *Memory) SetQuota(bytes int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.quota = bytes
}

func (m *Memory) Read(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.blobs[key]
	if !ok {
		return nil, fmt.Errorf("blob %q: %w", key, common.ErrorNotFound)
	}
	return append([]byte(nil), b...), nil
}

func (m *Memory) Write(_ context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.quota > 0 {
		used := len(data)
		for k, b := range m.blobs {
			if k != key {
				used += len(b)
			}
		}
		if used > m.quota {
			return fmt.Errorf("write %q (%d bytes): %w", key, len(data), ErrQuotaExceeded)
		}
	}

	m.blobs[key] = append([]byte(nil), data...)
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.blobs, key)
	return nil
}
