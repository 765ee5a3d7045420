package profiles

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/freightdesk/internal/dbx"
	"github.com/dmitrijs2005/freightdesk/internal/models"
)

const selectProfile = `SELECT id, user_id, name, address, city, state, pincode,
	gstin, pan, phone, email, website, is_default, created_at
	FROM company_profiles`

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func scanProfile(s dbx.Scanner) (models.CompanyProfile, error) {
	var (
		p         models.CompanyProfile
		opt       [9]sql.NullString
		createdAt string
	)
	err := s.Scan(&p.ID, &p.OwnerUserID, &p.Name,
		&opt[0], &opt[1], &opt[2], &opt[3], &opt[4], &opt[5], &opt[6], &opt[7], &opt[8],
		&p.IsDefault, &createdAt)
	if err != nil {
		return p, err
	}

	p.Address, p.City, p.State = dbx.StringPtr(opt[0]), dbx.StringPtr(opt[1]), dbx.StringPtr(opt[2])
	p.Pincode, p.GSTIN, p.PAN = dbx.StringPtr(opt[3]), dbx.StringPtr(opt[4]), dbx.StringPtr(opt[5])
	p.Phone, p.Email, p.Website = dbx.StringPtr(opt[6]), dbx.StringPtr(opt[7]), dbx.StringPtr(opt[8])

	if p.CreatedAt, err = dbx.ParseTime(createdAt); err != nil {
		return p, err
	}
	return p, nil
}

func optionalArgs(p *models.CompanyProfile) []any {
	return []any{
		dbx.NullString(p.Address), dbx.NullString(p.City), dbx.NullString(p.State),
		dbx.NullString(p.Pincode), dbx.NullString(p.GSTIN), dbx.NullString(p.PAN),
		dbx.NullString(p.Phone), dbx.NullString(p.Email), dbx.NullString(p.Website),
	}
}

func (r *SQLiteRepository) Create(ctx context.Context, p *models.CompanyProfile) (int64, error) {
	args := []any{p.OwnerUserID, p.Name}
	args = append(args, optionalArgs(p)...)
	args = append(args, p.IsDefault, dbx.FormatTime(p.CreatedAt))

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO company_profiles (user_id, name, address, city, state, pincode,
			gstin, pan, phone, email, website, is_default, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to insert company profile: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get company profile id: %w", err)
	}
	return id, nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id int64) (*models.CompanyProfile, error) {
	p, err := dbx.QueryOne(ctx, r.db, scanProfile, selectProfile+` WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get company profile %d: %w", id, err)
	}
	return p, nil
}

// ListByOwner returns the default profile first, then the rest by name.
func (r *SQLiteRepository) ListByOwner(ctx context.Context, ownerID int64) ([]models.CompanyProfile, error) {
	out, err := dbx.Collect(dbx.Query(ctx, r.db, scanProfile,
		selectProfile+` WHERE user_id = ? ORDER BY is_default DESC, name, id`, ownerID))
	if err != nil {
		return nil, fmt.Errorf("failed to list company profiles: %w", err)
	}
	return out, nil
}

func (r *SQLiteRepository) GetDefault(ctx context.Context, ownerID int64) (*models.CompanyProfile, error) {
	p, err := dbx.QueryOne(ctx, r.db, scanProfile,
		selectProfile+` WHERE user_id = ? AND is_default = 1 ORDER BY id LIMIT 1`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get default company profile: %w", err)
	}
	return p, nil
}

// Update replaces the mutable fields of the profile matching id and owner.
func (r *SQLiteRepository) Update(ctx context.Context, id int64, p *models.CompanyProfile) (int64, error) {
	args := []any{p.Name}
	args = append(args, optionalArgs(p)...)
	args = append(args, p.IsDefault, id, p.OwnerUserID)

	res, err := r.db.ExecContext(ctx, `
		UPDATE company_profiles SET name = ?, address = ?, city = ?, state = ?, pincode = ?,
			gstin = ?, pan = ?, phone = ?, email = ?, website = ?, is_default = ?
		WHERE id = ? AND user_id = ?`, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to update company profile %d: %w", id, err)
	}
	return affected(res)
}

func (r *SQLiteRepository) Delete(ctx context.Context, id, ownerID int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM company_profiles WHERE id = ? AND user_id = ?`, id, ownerID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete company profile %d: %w", id, err)
	}
	return affected(res)
}

// ClearDefault unsets the default flag on every profile of the owner except exceptID.
func (r *SQLiteRepository) ClearDefault(ctx context.Context, ownerID, exceptID int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE company_profiles SET is_default = 0 WHERE user_id = ? AND id != ? AND is_default != 0`,
		ownerID, exceptID)
	if err != nil {
		return fmt.Errorf("failed to clear default company profile: %w", err)
	}
	return nil
}

func affected(res sql.Result) (int64, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}
	return n, nil
}
