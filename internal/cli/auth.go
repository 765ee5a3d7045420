package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/freightdesk/internal/common"
)

// Register prompts for a username and password and creates the account.
// The password byte slice is wiped before returning.
func (a *App) Register(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if _, err := a.authService.Register(ctx, userName, password); err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			a.println("Username already exists")
			return nil
		}
		return err
	}

	a.println("Success!")
	return nil
}

// Login prompts for credentials and opens a session. Wrong credentials are
// reported without returning an error.
func (a *App) Login(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	s, err := a.authService.Login(ctx, userName, password)
	if errors.Is(err, common.ErrorUnauthorized) {
		a.println("Invalid username or password")
		return nil
	}
	if err != nil {
		return err
	}

	a.session = s
	a.log.Info(ctx, "user logged in", "user_id", s.UserID)
	a.printf("Logged in as %s, session valid until %s\n", s.Username, s.ExpiresAt.Format("2006-01-02 15:04"))
	return nil
}

// Logout drops the session.
func (a *App) Logout(ctx context.Context) error {
	if a.session != nil {
		a.log.Info(ctx, "user logged out", "user_id", a.session.UserID)
	}
	a.session = nil
	return nil
}

// checkSession ends a session whose token no longer validates.
func (a *App) checkSession() error {
	if a.session == nil {
		return common.ErrorUnauthorized
	}
	if _, err := a.authService.Validate(a.session.Token); err != nil {
		a.session = nil
		if errors.Is(err, common.ErrTokenExpired) {
			a.println("Session expired, please log in again")
		}
		return err
	}
	return nil
}
