// Package blobstore provides the opaque key/blob slot the storage engine
// persists its database into. The engine reads one blob at startup and
// rewrites it wholesale after every mutation, so implementations only need
// whole-value Read, Write and Delete.
//
// Implementations:
//
//   - Memory: process-local map with an optional byte quota.
//   - Dir: one file per key, replaced atomically.
//   - S3: one object per key in an S3-compatible bucket.
//   - Encrypted: decorator sealing blobs with a passphrase-derived key.
package blobstore

import "context"

// Store is a key/blob slot.
//
// Read returns common.ErrorNotFound when key is absent. Write failures
// (quota, IO, network) must be returned, never swallowed. Deleting an absent
// key is not an error.
type Store interface {
	Read(ctx context.Context, key string) ([]byte, error)
	Write(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
}
