// Package services holds the application logic the CLI drives: sign-in
// sessions and document generation on top of the storage engine.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/freightdesk/internal/auth"
	"github.com/dmitrijs2005/freightdesk/internal/common"
	"github.com/dmitrijs2005/freightdesk/internal/cryptox"
)

// UserStore is the part of the storage engine AuthService needs.
type UserStore interface {
	SaveUser(ctx context.Context, username, passwordHash string) (int64, error)
	VerifyUser(ctx context.Context, username, passwordHash string) (int64, bool, error)
}

// Session is a signed-in user together with its bearer token.
type Session struct {
	UserID    int64
	Username  string
	Token     string
	ExpiresAt time.Time
}

// AuthService registers users and opens sessions.
//
// Contract:
//   - Register: create an account; a taken name wraps common.ErrAlreadyExists.
//   - Login: check credentials and issue a session token.
//   - Validate: return the user id a token was issued for.
type AuthService interface {
	Register(ctx context.Context, username string, password []byte) (int64, error)
	Login(ctx context.Context, username string, password []byte) (*Session, error)
	Validate(token string) (int64, error)
}

type authService struct {
	users  UserStore
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewAuthService(users UserStore, secret []byte, ttl time.Duration) AuthService {
	return &authService{users: users, secret: secret, ttl: ttl, now: time.Now}
}

func (a *authService) Register(ctx context.Context, username string, password []byte) (int64, error) {
	username = strings.TrimSpace(username)
	if username == "" || len(password) == 0 {
		return 0, fmt.Errorf("%w: username and password are required", common.ErrValidation)
	}

	id, err := a.users.SaveUser(ctx, username, cryptox.HashPassword(string(password)))
	if err != nil {
		return 0, err
	}
	return id, nil
}

// Login returns common.ErrorUnauthorized for an unknown user or a wrong password.
func (a *authService) Login(ctx context.Context, username string, password []byte) (*Session, error) {
	username = strings.TrimSpace(username)

	id, ok, err := a.users.VerifyUser(ctx, username, cryptox.HashPassword(string(password)))
	if err != nil {
		return nil, fmt.Errorf("login error: %w", err)
	}
	if !ok {
		return nil, common.ErrorUnauthorized
	}

	now := a.now()
	token, err := auth.GenerateToken(id, username, a.secret, now, a.ttl)
	if err != nil {
		return nil, err
	}
	return &Session{UserID: id, Username: username, Token: token, ExpiresAt: now.Add(a.ttl)}, nil
}

func (a *authService) Validate(token string) (int64, error) {
	claims, err := auth.ParseToken(token, a.secret)
	if err != nil {
		if errors.Is(err, common.ErrTokenExpired) {
			return 0, err
		}
		return 0, fmt.Errorf("%w: %w", common.ErrorUnauthorized, err)
	}
	return claims.UserID, nil
}
