package blobstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/freightdesk/internal/common"
	"github.com/dmitrijs2005/freightdesk/internal/cryptox"
)

const saltSize = 16

var encryptedMagic = []byte("FDE1")

// ErrWrongPassphrase is returned when a stored blob cannot be decrypted.
var ErrWrongPassphrase = errors.New("blob cannot be decrypted with this passphrase")

// Encrypted seals every blob written to the inner store. The layout is
// magic || salt || nonce || ciphertext. The salt is picked once per store
// (or adopted from the last blob read) and the key is derived from the
// passphrase with argon2id; the nonce is fresh for every write.
type Encrypted struct {
	inner      Store
	passphrase []byte

	mu   sync.Mutex
	salt []byte
	key  []byte
}

func NewEncrypted(inner Store, passphrase string) *Encrypted {
	return &Encrypted{
		inner:      inner,
		passphrase: []byte(passphrase),
	}
}

// keyFor returns the key for salt, deriving it only when salt changes.
// A nil salt means "whatever is current", generating one on first use.
func (e *Encrypted) keyFor(salt []byte) ([]byte, []byte) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if salt == nil {
		if e.salt != nil {
			return e.salt, e.key
		}
		salt = common.GenerateRandByteArray(saltSize)
	}
	if e.key != nil && bytes.Equal(salt, e.salt) {
		return e.salt, e.key
	}

	e.salt = append([]byte(nil), salt...)
	e.key = cryptox.DeriveKey(e.passphrase, e.salt)
	return e.salt, e.key
}

func (e *Encrypted) Read(ctx context.Context, key string) ([]byte, error) {
	sealed, err := e.inner.Read(ctx, key)
	if err != nil {
		return nil, err
	}

	if !bytes.HasPrefix(sealed, encryptedMagic) || len(sealed) < len(encryptedMagic)+saltSize {
		return nil, fmt.Errorf("blob %q is not encrypted: %w", key, ErrWrongPassphrase)
	}
	rest := sealed[len(encryptedMagic):]
	salt, body := rest[:saltSize], rest[saltSize:]

	_, k := e.keyFor(salt)
	plain, err := cryptox.Open(k, body)
	if err != nil {
		return nil, fmt.Errorf("blob %q: %w", key, ErrWrongPassphrase)
	}
	return plain, nil
}

func (e *Encrypted) Write(ctx context.Context, key string, data []byte) error {
	salt, k := e.keyFor(nil)

	body, err := cryptox.Seal(k, data)
	if err != nil {
		return fmt.Errorf("failed to encrypt blob %q: %w", key, err)
	}

	out := make([]byte, 0, len(encryptedMagic)+saltSize+len(body))
	out = append(out, encryptedMagic...)
	out = append(out, salt...)
	out = append(out, body...)

	return e.inner.Write(ctx, key, out)
}

func (e *Encrypted) Delete(ctx context.Context, key string) error {
	return e.inner.Delete(ctx, key)
}

// Close wipes the cached key and the passphrase.
func (e *Encrypted) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	common.WipeByteArray(e.key)
	common.WipeByteArray(e.passphrase)
	e.key, e.salt = nil, nil
}
