package models

import (
	"encoding/json"
	"io"
	"time"
)

// SnapshotVersion is the format version written by export and required by import.
const SnapshotVersion = 1

// SnapshotTables lists the exported tables in an order that satisfies
// foreign keys on re-insert.
var SnapshotTables = []string{
	"users",
	"company_profiles",
	"freight_details",
	"document_history",
	"custom_fields",
}

// Snapshot is a verbatim dump of every entity table, row values keyed by
// column name.
type Snapshot struct {
	Version       int                         `json:"version"`
	SchemaVersion int64                       `json:"schemaVersion"`
	ExportedAt    time.Time                   `json:"exportedAt"`
	Tables        map[string][]map[string]any `json:"tables"`
}

// ReadSnapshot decodes a snapshot, keeping numbers as json.Number so integer
// ids survive without float rounding.
func ReadSnapshot(r io.Reader) (*Snapshot, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var s Snapshot
	if err := dec.Decode(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

// WriteTo encodes s as indented JSON.
func (s *Snapshot) WriteTo(w io.Writer) (int64, error) {
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return 0, err
	}
	n, err := w.Write(append(b, '\n'))
	return int64(n), err
}
