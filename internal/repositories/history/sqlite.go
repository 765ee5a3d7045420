package history

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/freightdesk/internal/dbx"
	"github.com/dmitrijs2005/freightdesk/internal/models"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func scanHistory(s dbx.Scanner) (models.DocumentGenerationRecord, error) {
	var h models.DocumentGenerationRecord
	var docType, at string
	if err := s.Scan(&h.ID, &h.FreightRecordID, &docType, &at); err != nil {
		return h, err
	}
	h.DocumentType = models.DocumentType(docType)

	t, err := dbx.ParseTime(at)
	if err != nil {
		return h, err
	}
	h.GeneratedAt = t
	return h, nil
}

func (r *SQLiteRepository) Create(ctx context.Context, freightID int64, docType models.DocumentType, at time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO document_history (freight_id, document_type, generated_at) VALUES (?, ?, ?)`,
		freightID, string(docType), dbx.FormatTime(at))
	if err != nil {
		return 0, fmt.Errorf("failed to record document generation: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get history id: %w", err)
	}
	return id, nil
}

// ListByFreight returns the log for one record, newest first.
func (r *SQLiteRepository) ListByFreight(ctx context.Context, freightID int64) ([]models.DocumentGenerationRecord, error) {
	out, err := dbx.Collect(dbx.Query(ctx, r.db, scanHistory,
		`SELECT id, freight_id, document_type, generated_at FROM document_history
		WHERE freight_id = ? ORDER BY generated_at DESC, id DESC`, freightID))
	if err != nil {
		return nil, fmt.Errorf("failed to list document history: %w", err)
	}
	return out, nil
}

func (r *SQLiteRepository) DeleteByFreight(ctx context.Context, freightID int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM document_history WHERE freight_id = ?`, freightID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete document history: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}
	return n, nil
}
