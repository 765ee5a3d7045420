package models

import (
	"fmt"
	"time"
)

// DocumentType is the kind of printable document produced for a shipment.
type DocumentType string

const (
	DocumentBilty   DocumentType = "bilty"
	DocumentInvoice DocumentType = "invoice"
)

// ParseDocumentType accepts exactly the known document types.
func ParseDocumentType(s string) (DocumentType, error) {
	switch t := DocumentType(s); t {
	case DocumentBilty, DocumentInvoice:
		return t, nil
	default:
		return "", validationError(fmt.Errorf("unknown document type %q", s))
	}
}

// DocumentGenerationRecord is an append-only audit row written every time a
// document is produced for a freight record.
type DocumentGenerationRecord struct {
	ID              int64        `json:"id"`
	FreightRecordID int64        `json:"freightRecordId"`
	DocumentType    DocumentType `json:"documentType"`
	GeneratedAt     time.Time    `json:"generatedAt"`
}
