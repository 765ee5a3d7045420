package users

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/freightdesk/internal/common"
	"github.com/dmitrijs2005/freightdesk/internal/dbx"
	"github.com/dmitrijs2005/freightdesk/internal/models"
)

const selectUser = `SELECT id, username, password_hash, created_at FROM users`

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func scanUser(s dbx.Scanner) (models.User, error) {
	var u models.User
	var createdAt string
	if err := s.Scan(&u.ID, &u.Username, &u.PasswordHash, &createdAt); err != nil {
		return u, err
	}
	t, err := dbx.ParseTime(createdAt)
	if err != nil {
		return u, err
	}
	u.CreatedAt = t
	return u, nil
}

// Create inserts a user. A taken username yields an error wrapping
// common.ErrAlreadyExists that reads "username already exists".
func (r *SQLiteRepository) Create(ctx context.Context, username, passwordHash string, createdAt time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (username, password_hash, created_at) VALUES (?, ?, ?)`,
		username, passwordHash, dbx.FormatTime(createdAt))
	if dbx.IsUniqueViolation(err) {
		return 0, fmt.Errorf("username %w", common.ErrAlreadyExists)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to insert user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get user id: %w", err)
	}
	return id, nil
}

func (r *SQLiteRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	u, err := dbx.QueryOne(ctx, r.db, scanUser, selectUser+` WHERE username = ?`, username)
	if err != nil {
		return nil, fmt.Errorf("failed to get user %q: %w", username, err)
	}
	return u, nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	u, err := dbx.QueryOne(ctx, r.db, scanUser, selectUser+` WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user %d: %w", id, err)
	}
	return u, nil
}

func (r *SQLiteRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return n, nil
}
