package storage

import (
	"context"

	"github.com/dmitrijs2005/freightdesk/internal/common"
	"github.com/dmitrijs2005/freightdesk/internal/cryptox"
	"github.com/dmitrijs2005/freightdesk/internal/dbx"
	"github.com/dmitrijs2005/freightdesk/internal/models"
	"github.com/dmitrijs2005/freightdesk/internal/repositories/users"
)

// SaveUser registers a user with an already hashed password. A taken
// username returns an error wrapping common.ErrAlreadyExists.
func (e *Engine) SaveUser(ctx context.Context, username, passwordHash string) (int64, error) {
	u := models.User{Username: username, PasswordHash: passwordHash}
	if err := u.Validate(); err != nil {
		return 0, err
	}

	var id int64
	err := e.mutate(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		id, err = users.NewSQLiteRepository(tx).Create(ctx, username, passwordHash, e.now())
		return err
	})
	if err != nil {
		return 0, err
	}

	e.log.Info(ctx, "user registered", "user_id", id)
	return id, nil
}

// VerifyUser checks a username and password hash pair.
func (e *Engine) VerifyUser(ctx context.Context, username, passwordHash string) (int64, bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.db == nil {
		return 0, false, common.ErrUninitialized
	}

	u, err := users.NewSQLiteRepository(e.db).GetByUsername(ctx, username)
	if err != nil {
		return 0, false, err
	}
	if u == nil || !cryptox.HashesEqual(u.PasswordHash, passwordHash) {
		return 0, false, nil
	}
	return u.ID, true, nil
}
