package models

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/freightdesk/internal/common"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func validFreight() *FreightRecord {
	return &FreightRecord{
		OwnerUserID:      1,
		Origin:           "Mumbai",
		Destination:      "Delhi",
		GoodsDescription: "Electronics",
		Weight:           decimal.NewFromInt(100),
		Amount:           decimal.NewFromInt(5000),
		Discount:         decimal.NewFromInt(100),
		Taxes:            decimal.NewFromInt(900),
	}
}

func TestFreightRecord_Total(t *testing.T) {
	f := validFreight()
	assert.True(t, f.Total().Equal(decimal.NewFromInt(5800)))

	f.Discount = decimal.Zero
	f.Taxes = decimal.RequireFromString("12.5")
	assert.Equal(t, "5012.5", f.Total().String())
}

func TestFreightRecord_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(f *FreightRecord)
		wantErr bool
	}{
		{name: "ok", mutate: func(f *FreightRecord) {}},
		{name: "eway fields", mutate: func(f *FreightRecord) {
			f.EwayBillNumber = ptr("EWB123456789")
			f.EwayBillDate = ptr("2024-02-29")
		}},
		{name: "custom fields json", mutate: func(f *FreightRecord) { f.CustomFields = ExtensionData(`{"vehicle":"MH01"}`) }},
		{name: "no owner", mutate: func(f *FreightRecord) { f.OwnerUserID = 0 }, wantErr: true},
		{name: "no origin", mutate: func(f *FreightRecord) { f.Origin = "" }, wantErr: true},
		{name: "bad eway date", mutate: func(f *FreightRecord) { f.EwayBillDate = ptr("29/02/2024") }, wantErr: true},
		{name: "broken custom fields", mutate: func(f *FreightRecord) { f.CustomFields = ExtensionData(`{"a":`) }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validFreight()
			tt.mutate(f)
			err := f.Validate()
			if tt.wantErr {
				require.ErrorIs(t, err, common.ErrValidation)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestUser_Validate(t *testing.T) {
	ok := &User{Username: "admin", PasswordHash: strings.Repeat("ab", 32)}
	require.NoError(t, ok.Validate())

	require.ErrorIs(t, (&User{PasswordHash: ok.PasswordHash}).Validate(), common.ErrValidation)
	require.ErrorIs(t, (&User{Username: "x", PasswordHash: "plain"}).Validate(), common.ErrValidation)
	require.ErrorIs(t, (&User{Username: "x", PasswordHash: strings.Repeat("zz", 32)}).Validate(), common.ErrValidation)
}

func TestCompanyProfile_Validate(t *testing.T) {
	p := &CompanyProfile{
		OwnerUserID: 1,
		Name:        "Hariom Transport",
		Pincode:     ptr("400001"),
		GSTIN:       ptr("27AAPFU0939F1ZV"),
		PAN:         ptr("AAPFU0939F"),
		Email:       ptr("ops@hariom.example"),
	}
	require.NoError(t, p.Validate())

	p.Email = ptr("not-an-email")
	require.ErrorIs(t, p.Validate(), common.ErrValidation)

	p.Email = nil
	p.Pincode = ptr("40A001")
	require.ErrorIs(t, p.Validate(), common.ErrValidation)

	p.Pincode = nil
	p.Name = ""
	require.ErrorIs(t, p.Validate(), common.ErrValidation)
}

func TestCustomFieldDefinition_Validate(t *testing.T) {
	base := func() *CustomFieldDefinition {
		return &CustomFieldDefinition{OwnerUserID: 1, FieldName: "vehicle_no", FieldLabel: "Vehicle No", FieldType: FieldText, IsActive: true}
	}

	tests := []struct {
		name    string
		mutate  func(c *CustomFieldDefinition)
		wantErr bool
	}{
		{name: "ok", mutate: func(c *CustomFieldDefinition) {}},
		{name: "select with options", mutate: func(c *CustomFieldDefinition) {
			c.FieldType = FieldSelect
			c.Options = []string{"road", "rail"}
		}},
		{name: "select without options", mutate: func(c *CustomFieldDefinition) { c.FieldType = FieldSelect }, wantErr: true},
		{name: "options on text", mutate: func(c *CustomFieldDefinition) { c.Options = []string{"a"} }, wantErr: true},
		{name: "free-form name", mutate: func(c *CustomFieldDefinition) { c.FieldName = "Vehicle No." }},
		{name: "leading digit", mutate: func(c *CustomFieldDefinition) { c.FieldName = "1st" }},
		{name: "blank name", mutate: func(c *CustomFieldDefinition) { c.FieldName = "   " }, wantErr: true},
		{name: "padded name", mutate: func(c *CustomFieldDefinition) { c.FieldName = " lr_no" }, wantErr: true},
		{name: "unknown type", mutate: func(c *CustomFieldDefinition) { c.FieldType = "color" }, wantErr: true},
		{name: "negative order", mutate: func(c *CustomFieldDefinition) { c.DisplayOrder = -1 }, wantErr: true},
		{name: "no label", mutate: func(c *CustomFieldDefinition) { c.FieldLabel = "" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base()
			tt.mutate(c)
			if tt.wantErr {
				require.ErrorIs(t, c.Validate(), common.ErrValidation)
			} else {
				require.NoError(t, c.Validate())
			}
		})
	}
}

func TestParseDocumentType(t *testing.T) {
	d, err := ParseDocumentType("bilty")
	require.NoError(t, err)
	require.Equal(t, DocumentBilty, d)

	d, err = ParseDocumentType("invoice")
	require.NoError(t, err)
	require.Equal(t, DocumentInvoice, d)

	_, err = ParseDocumentType("receipt")
	require.ErrorIs(t, err, common.ErrValidation)
}

func TestExtensionData(t *testing.T) {
	e, err := ExtensionFromValues(map[string]string{"vehicle": "MH01AB1234"})
	require.NoError(t, err)
	require.True(t, e.Valid())

	vals, err := e.Values()
	require.NoError(t, err)
	require.Equal(t, "MH01AB1234", vals["vehicle"])

	none, err := ExtensionFromValues(nil)
	require.NoError(t, err)
	require.Nil(t, none)

	empty, err := none.Values()
	require.NoError(t, err)
	require.Empty(t, empty)

	f := validFreight()
	f.CustomFields = e
	b, err := json.Marshal(f)
	require.NoError(t, err)
	require.Contains(t, string(b), `"customFields":{"vehicle":"MH01AB1234"}`)

	var back FreightRecord
	require.NoError(t, json.Unmarshal(b, &back))
	require.JSONEq(t, string(e), string(back.CustomFields))

	f.CustomFields = nil
	b, err = json.Marshal(f)
	require.NoError(t, err)
	require.Contains(t, string(b), `"customFields":null`)
}

func TestSnapshot_WriteRead(t *testing.T) {
	s := &Snapshot{
		Version:       SnapshotVersion,
		SchemaVersion: 16,
		ExportedAt:    time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		Tables: map[string][]map[string]any{
			"users": {{"id": int64(9007199254740993), "username": "admin"}},
		},
	}

	var buf bytes.Buffer
	_, err := s.WriteTo(&buf)
	require.NoError(t, err)

	got, err := ReadSnapshot(&buf)
	require.NoError(t, err)
	require.Equal(t, SnapshotVersion, got.Version)
	require.Equal(t, int64(16), got.SchemaVersion)
	require.True(t, got.ExportedAt.Equal(s.ExportedAt))
	require.Equal(t, json.Number("9007199254740993"), got.Tables["users"][0]["id"])

	_, err = ReadSnapshot(strings.NewReader("{"))
	require.Error(t, err)
}
