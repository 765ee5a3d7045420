package models

import (
	"encoding/json"
	"errors"
)

// ExtensionData is untyped JSON attached to a freight record (custom field
// values keyed by field name). The storage layer keeps it opaque; only the
// presentation side decodes it. Nil means "no data" and is stored as NULL.
type ExtensionData []byte

// ExtensionFromValues encodes name/value pairs. An empty map yields nil.
func ExtensionFromValues(values map[string]string) (ExtensionData, error) {
	if len(values) == 0 {
		return nil, nil
	}
	b, err := json.Marshal(values)
	if err != nil {
		return nil, err
	}
	return ExtensionData(b), nil
}

// Values decodes the data as a flat JSON object of strings.
func (e ExtensionData) Values() (map[string]string, error) {
	out := map[string]string{}
	if len(e) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(e, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (e ExtensionData) Valid() bool {
	return len(e) == 0 || json.Valid(e)
}

func (e ExtensionData) MarshalJSON() ([]byte, error) {
	if len(e) == 0 {
		return []byte("null"), nil
	}
	if !json.Valid(e) {
		return nil, errors.New("extension data is not valid JSON")
	}
	return e, nil
}

func (e *ExtensionData) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*e = nil
		return nil
	}
	*e = append((*e)[:0], b...)
	return nil
}
