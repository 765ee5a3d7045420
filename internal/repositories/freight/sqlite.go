package freight

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/freightdesk/internal/dbx"
	"github.com/dmitrijs2005/freightdesk/internal/models"
)

const selectFreight = `SELECT id, user_id, origin, destination, goods_description,
	weight, amount, COALESCE(discount, 0), COALESCE(taxes, 0),
	eway_bill_number, eway_bill_date, company_profile_id, custom_fields,
	created_at, updated_at
	FROM freight_details`

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func scanFreight(s dbx.Scanner) (models.FreightRecord, error) {
	var (
		r                models.FreightRecord
		ewayNo, ewayDate sql.NullString
		profileID        sql.NullInt64
		custom           sql.NullString
		createdAt        string
		updatedAt        sql.NullString
	)
	err := s.Scan(&r.ID, &r.OwnerUserID, &r.Origin, &r.Destination, &r.GoodsDescription,
		&r.Weight, &r.Amount, &r.Discount, &r.Taxes,
		&ewayNo, &ewayDate, &profileID, &custom,
		&createdAt, &updatedAt)
	if err != nil {
		return r, err
	}

	r.EwayBillNumber = dbx.StringPtr(ewayNo)
	r.EwayBillDate = dbx.StringPtr(ewayDate)
	r.CompanyProfileID = dbx.Int64Ptr(profileID)
	if custom.Valid {
		r.CustomFields = models.ExtensionData(custom.String)
	}

	if r.CreatedAt, err = dbx.ParseTime(createdAt); err != nil {
		return r, err
	}
	if r.UpdatedAt, err = dbx.ParseNullTime(updatedAt); err != nil {
		return r, err
	}
	return r, nil
}

func customFieldsArg(e models.ExtensionData) sql.NullString {
	if len(e) == 0 {
		return sql.NullString{}
	}
	return sql.NullString{String: string(e), Valid: true}
}

func (r *SQLiteRepository) Create(ctx context.Context, f *models.FreightRecord) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO freight_details (user_id, origin, destination, goods_description,
			weight, amount, discount, taxes, eway_bill_number, eway_bill_date,
			company_profile_id, custom_fields, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		f.OwnerUserID, f.Origin, f.Destination, f.GoodsDescription,
		f.Weight, f.Amount, f.Discount, f.Taxes,
		dbx.NullString(f.EwayBillNumber), dbx.NullString(f.EwayBillDate),
		dbx.NullInt64(f.CompanyProfileID), customFieldsArg(f.CustomFields),
		dbx.FormatTime(f.CreatedAt))
	if err != nil {
		return 0, fmt.Errorf("failed to insert freight record: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get freight record id: %w", err)
	}
	return id, nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id int64) (*models.FreightRecord, error) {
	f, err := dbx.QueryOne(ctx, r.db, scanFreight, selectFreight+` WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get freight record %d: %w", id, err)
	}
	return f, nil
}

// ListByOwner returns the owner's records, most recent first.
func (r *SQLiteRepository) ListByOwner(ctx context.Context, ownerID int64) ([]models.FreightRecord, error) {
	out, err := dbx.Collect(dbx.Query(ctx, r.db, scanFreight,
		selectFreight+` WHERE user_id = ? ORDER BY created_at DESC, id DESC`, ownerID))
	if err != nil {
		return nil, fmt.Errorf("failed to list freight records: %w", err)
	}
	return out, nil
}

// Update replaces every mutable field of the record matching both id and
// f.OwnerUserID, and returns the number of rows changed.
func (r *SQLiteRepository) Update(ctx context.Context, id int64, f *models.FreightRecord) (int64, error) {
	var updatedAt any
	if f.UpdatedAt != nil {
		updatedAt = dbx.FormatTime(*f.UpdatedAt)
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE freight_details SET origin = ?, destination = ?, goods_description = ?,
			weight = ?, amount = ?, discount = ?, taxes = ?,
			eway_bill_number = ?, eway_bill_date = ?, company_profile_id = ?,
			custom_fields = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`,
		f.Origin, f.Destination, f.GoodsDescription,
		f.Weight, f.Amount, f.Discount, f.Taxes,
		dbx.NullString(f.EwayBillNumber), dbx.NullString(f.EwayBillDate), dbx.NullInt64(f.CompanyProfileID),
		customFieldsArg(f.CustomFields), updatedAt,
		id, f.OwnerUserID)
	if err != nil {
		return 0, fmt.Errorf("failed to update freight record %d: %w", id, err)
	}
	return affected(res)
}

func (r *SQLiteRepository) Delete(ctx context.Context, id, ownerID int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM freight_details WHERE id = ? AND user_id = ?`, id, ownerID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete freight record %d: %w", id, err)
	}
	return affected(res)
}

// DetachProfile clears references to a company profile about to be removed.
func (r *SQLiteRepository) DetachProfile(ctx context.Context, profileID int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE freight_details SET company_profile_id = NULL WHERE company_profile_id = ?`, profileID)
	if err != nil {
		return fmt.Errorf("failed to detach company profile %d: %w", profileID, err)
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
