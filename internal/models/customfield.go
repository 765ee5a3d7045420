package models

import (
	"errors"
	"time"
)

// FieldType is the input kind of a custom field.
type FieldType string

const (
	FieldText     FieldType = "text"
	FieldNumber   FieldType = "number"
	FieldDate     FieldType = "date"
	FieldTextarea FieldType = "textarea"
	FieldSelect   FieldType = "select"
)

// CustomFieldDefinition describes a user-defined field whose values live in
// FreightRecord.CustomFields under FieldName. Definitions are deactivated,
// never removed, so older records stay readable.
type CustomFieldDefinition struct {
	ID           int64     `json:"id"`
	OwnerUserID  int64     `json:"ownerUserId" validate:"required"`
	FieldName    string    `json:"fieldName" validate:"required,max=64,fieldname"`
	FieldLabel   string    `json:"fieldLabel" validate:"required"`
	FieldType    FieldType `json:"fieldType" validate:"required,oneof=text number date textarea select"`
	IsRequired   bool      `json:"isRequired"`
	Options      []string  `json:"options"`
	DisplayOrder int       `json:"displayOrder" validate:"min=0"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (c *CustomFieldDefinition) Validate() error {
	if err := checkStruct(c); err != nil {
		return err
	}
	switch {
	case c.FieldType == FieldSelect && len(c.Options) == 0:
		return validationError(errors.New("select field requires options"))
	case c.FieldType != FieldSelect && c.Options != nil:
		return validationError(errors.New("options are only allowed for select fields"))
	}
	return nil
}
