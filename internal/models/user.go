package models

import "time"

// User is an account able to own freight records, profiles and fields.
// Users are never updated or deleted.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username" validate:"required,max=64"`
	PasswordHash string    `json:"passwordHash" validate:"required,len=64,hexadecimal"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (u *User) Validate() error {
	return checkStruct(u)
}
