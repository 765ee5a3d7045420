package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// FreightRecord is one shipment entered by its owner. Money and weight use
// decimal arithmetic; the database stores them as REAL.
type FreightRecord struct {
	ID               int64           `json:"id"`
	OwnerUserID      int64           `json:"ownerUserId" validate:"required"`
	Origin           string          `json:"origin" validate:"required"`
	Destination      string          `json:"destination" validate:"required"`
	GoodsDescription string          `json:"goodsDescription" validate:"required"`
	Weight           decimal.Decimal `json:"weight"`
	Amount           decimal.Decimal `json:"amount"`
	Discount         decimal.Decimal `json:"discount"`
	Taxes            decimal.Decimal `json:"taxes"`
	EwayBillNumber   *string         `json:"ewayBillNumber" validate:"omitempty,max=32"`
	EwayBillDate     *string         `json:"ewayBillDate" validate:"omitempty,datetime=2006-01-02"`
	CompanyProfileID *int64          `json:"companyProfileId"`
	CustomFields     ExtensionData   `json:"customFields"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        *time.Time      `json:"updatedAt"`
}

// Total is the payable amount: amount less discount plus taxes.
func (f *FreightRecord) Total() decimal.Decimal {
	return f.Amount.Sub(f.Discount).Add(f.Taxes)
}

func (f *FreightRecord) Validate() error {
	if err := checkStruct(f); err != nil {
		return err
	}
	if !f.CustomFields.Valid() {
		return validationError(errors.New("custom fields must be valid JSON"))
	}
	return nil
}
