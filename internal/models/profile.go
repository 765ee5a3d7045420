package models

import "time"

// CompanyProfile holds the letterhead printed on documents. At most one
// profile per owner is the default.
type CompanyProfile struct {
	ID          int64     `json:"id"`
	OwnerUserID int64     `json:"ownerUserId" validate:"required"`
	Name        string    `json:"name" validate:"required"`
	Address     *string   `json:"address"`
	City        *string   `json:"city"`
	State       *string   `json:"state"`
	Pincode     *string   `json:"pincode" validate:"omitempty,numeric"`
	GSTIN       *string   `json:"gstin" validate:"omitempty,len=15,alphanum"`
	PAN         *string   `json:"pan" validate:"omitempty,len=10,alphanum"`
	Phone       *string   `json:"phone"`
	Email       *string   `json:"email" validate:"omitempty,email"`
	Website     *string   `json:"website"`
	IsDefault   bool      `json:"isDefault"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (p *CompanyProfile) Validate() error {
	return checkStruct(p)
}
