package storage

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/freightdesk/internal/common"
	"github.com/dmitrijs2005/freightdesk/internal/dbx"
	"github.com/dmitrijs2005/freightdesk/internal/models"
	"github.com/dmitrijs2005/freightdesk/internal/repositories/freight"
	"github.com/dmitrijs2005/freightdesk/internal/repositories/history"
)

// RecordDocumentGeneration appends an audit row for an existing record.
func (e *Engine) RecordDocumentGeneration(ctx context.Context, freightID int64, docType models.DocumentType) error {
	if _, err := models.ParseDocumentType(string(docType)); err != nil {
		return err
	}

	return e.mutate(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		rec, err := freight.NewSQLiteRepository(tx).GetByID(ctx, freightID)
		if err != nil {
			return err
		}
		if rec == nil {
			return fmt.Errorf("freight record %d: %w", freightID, common.ErrorNotFound)
		}

		_, err = history.NewSQLiteRepository(tx).Create(ctx, freightID, docType, e.now())
		return err
	})
}

// GetDocumentHistory lists generations for a record, newest first.
func (e *Engine) GetDocumentHistory(ctx context.Context, freightID int64) ([]models.DocumentGenerationRecord, error) {
	return readList(ctx, e, "GetDocumentHistory", func(db dbx.DBTX) ([]models.DocumentGenerationRecord, error) {
		return history.NewSQLiteRepository(db).ListByFreight(ctx, freightID)
	})
}
