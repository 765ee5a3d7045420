package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/freightdesk/internal/common"
	"github.com/dmitrijs2005/freightdesk/internal/models"
	"github.com/shopspring/decimal"
)

// DocumentStore is the part of the storage engine DocumentService needs.
type DocumentStore interface {
	GetFreightDetails(ctx context.Context, id int64) (*models.FreightRecord, error)
	GetCompanyProfile(ctx context.Context, id int64) (*models.CompanyProfile, error)
	GetDefaultCompanyProfile(ctx context.Context, owner int64) (*models.CompanyProfile, error)
	GetUserCustomFields(ctx context.Context, owner int64, includeInactive bool) ([]models.CustomFieldDefinition, error)
	RecordDocumentGeneration(ctx context.Context, freightID int64, docType models.DocumentType) error
}

// DocumentLine is one labelled custom value printed on a document.
type DocumentLine struct {
	Label string
	Value string
}

// Document is everything a bilty or invoice shows. Rendering it to paper is
// left to the caller.
type Document struct {
	Type        models.DocumentType
	Number      string
	Freight     models.FreightRecord
	Profile     *models.CompanyProfile
	Extra       []DocumentLine
	Total       decimal.Decimal
	GeneratedAt time.Time
}

type DocumentService interface {
	Generate(ctx context.Context, owner, freightID int64, docType models.DocumentType) (*Document, error)
}

type documentService struct {
	store DocumentStore
	now   func() time.Time
}

func NewDocumentService(store DocumentStore) DocumentService {
	return &documentService{store: store, now: time.Now}
}

// DocumentNumber formats the printed number, e.g. BLT-000012.
func DocumentNumber(docType models.DocumentType, freightID int64) string {
	prefix := "BLT"
	if docType == models.DocumentInvoice {
		prefix = "INV"
	}
	return fmt.Sprintf("%s-%06d", prefix, freightID)
}

// Generate builds the document for an owned record and records the
// generation. The record's own company profile wins over the owner default.
func (s *documentService) Generate(ctx context.Context, owner, freightID int64, docType models.DocumentType) (*Document, error) {
	docType, err := models.ParseDocumentType(strings.ToLower(string(docType)))
	if err != nil {
		return nil, err
	}

	rec, err := s.store.GetFreightDetails(ctx, freightID)
	if err != nil {
		return nil, err
	}
	if rec == nil || rec.OwnerUserID != owner {
		return nil, fmt.Errorf("freight record %d: %w", freightID, common.ErrorNotFound)
	}

	var profile *models.CompanyProfile
	if rec.CompanyProfileID != nil {
		profile, err = s.store.GetCompanyProfile(ctx, *rec.CompanyProfileID)
	} else {
		profile, err = s.store.GetDefaultCompanyProfile(ctx, owner)
	}
	if err != nil {
		return nil, err
	}

	extra, err := s.extraLines(ctx, owner, rec.CustomFields)
	if err != nil {
		return nil, err
	}

	if err := s.store.RecordDocumentGeneration(ctx, freightID, docType); err != nil {
		return nil, err
	}

	return &Document{
		Type:        docType,
		Number:      DocumentNumber(docType, freightID),
		Freight:     *rec,
		Profile:     profile,
		Extra:       extra,
		Total:       rec.Total(),
		GeneratedAt: s.now(),
	}, nil
}

// extraLines pairs stored custom values with their active definitions, in
// display order. Values without a definition are dropped.
func (s *documentService) extraLines(ctx context.Context, owner int64, data models.ExtensionData) ([]DocumentLine, error) {
	values, err := data.Values()
	if err != nil {
		return nil, fmt.Errorf("failed to decode custom fields: %w", err)
	}
	if len(values) == 0 {
		return nil, nil
	}

	defs, err := s.store.GetUserCustomFields(ctx, owner, false)
	if err != nil {
		return nil, err
	}

	var out []DocumentLine
	for _, d := range defs {
		if v, ok := values[d.FieldName]; ok && v != "" {
			out = append(out, DocumentLine{Label: d.FieldLabel, Value: v})
		}
	}
	return out, nil
}
