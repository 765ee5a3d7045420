package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/freightdesk/internal/auth"
	"github.com/dmitrijs2005/freightdesk/internal/blobstore"
	"github.com/dmitrijs2005/freightdesk/internal/common"
	"github.com/dmitrijs2005/freightdesk/internal/cryptox"
	"github.com/dmitrijs2005/freightdesk/internal/logging"
	"github.com/dmitrijs2005/freightdesk/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(t *testing.T) *storage.Engine {
	t.Helper()
	e := storage.New(blobstore.NewMemory(), logging.Discard())
	require.NoError(t, e.Initialize(context.Background()))
	t.Cleanup(func() { _ = e.Close() })
	return e
}

// fakeUsers records calls and returns canned results.
type fakeUsers struct {
	saveErr   error
	verifyErr error
	verifyOK  bool

	lastUser string
	lastHash string
}

func (f *fakeUsers) SaveUser(_ context.Context, username, hash string) (int64, error) {
	f.lastUser, f.lastHash = username, hash
	return 7, f.saveErr
}

func (f *fakeUsers) VerifyUser(_ context.Context, username, hash string) (int64, bool, error) {
	f.lastUser, f.lastHash = username, hash
	return 7, f.verifyOK, f.verifyErr
}

var secret = []byte("test-secret")

func TestRegister_HashesPassword(t *testing.T) {
	users := &fakeUsers{}
	svc := NewAuthService(users, secret, time.Hour)

	id, err := svc.Register(context.Background(), "  bob ", []byte("pw"))
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
	assert.Equal(t, "bob", users.lastUser)
	assert.Equal(t, cryptox.HashPassword("pw"), users.lastHash)
}

func TestRegister_RequiresInput(t *testing.T) {
	svc := NewAuthService(&fakeUsers{}, secret, time.Hour)

	_, err := svc.Register(context.Background(), " ", []byte("pw"))
	assert.ErrorIs(t, err, common.ErrValidation)
	_, err = svc.Register(context.Background(), "bob", nil)
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestRegister_Duplicate(t *testing.T) {
	svc := NewAuthService(newEngine(t), secret, time.Hour)
	ctx := context.Background()

	_, err := svc.Register(ctx, "bob", []byte("pw"))
	require.NoError(t, err)
	_, err = svc.Register(ctx, "bob", []byte("other"))
	assert.ErrorIs(t, err, common.ErrAlreadyExists)
}

func TestLogin_DefaultAccount(t *testing.T) {
	svc := NewAuthService(newEngine(t), secret, time.Hour)

	s, err := svc.Login(context.Background(), common.DefaultUsername, []byte(common.DefaultPassword))
	require.NoError(t, err)
	assert.Equal(t, int64(1), s.UserID)
	assert.Equal(t, common.DefaultUsername, s.Username)
	assert.WithinDuration(t, time.Now().Add(time.Hour), s.ExpiresAt, 2*time.Second)

	id, err := svc.Validate(s.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := NewAuthService(newEngine(t), secret, time.Hour)

	_, err := svc.Login(context.Background(), common.DefaultUsername, []byte("nope"))
	assert.ErrorIs(t, err, common.ErrorUnauthorized)

	_, err = svc.Login(context.Background(), "ghost", []byte("nope"))
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestLogin_StoreError(t *testing.T) {
	boom := errors.New("boom")
	svc := NewAuthService(&fakeUsers{verifyErr: boom}, secret, time.Hour)

	_, err := svc.Login(context.Background(), "bob", []byte("pw"))
	assert.ErrorIs(t, err, boom)
}

func TestValidate(t *testing.T) {
	svc := NewAuthService(&fakeUsers{}, secret, time.Hour)

	expired, err := auth.GenerateToken(3, "bob", secret, time.Now().Add(-2*time.Hour), time.Hour)
	require.NoError(t, err)
	_, err = svc.Validate(expired)
	assert.ErrorIs(t, err, common.ErrTokenExpired)

	foreign, err := auth.GenerateToken(3, "bob", []byte("other"), time.Now(), time.Hour)
	require.NoError(t, err)
	_, err = svc.Validate(foreign)
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}
