// Package common defines shared constants and sentinel errors used across the
// storage engine, its repositories and the collaborators built on top of it.
// Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound    = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")

	// Storage engine lifecycle errors.
	ErrUninitialized   = errors.New("database not initialized")
	ErrSerialization   = errors.New("failed to persist database")
	ErrMigration       = errors.New("schema migration failed")
	ErrInvalidSnapshot = errors.New("invalid backup snapshot")

	// Validation errors for entity shapes.
	ErrValidation = errors.New("validation error")

	// Auth errors.
	ErrorUnauthorized = errors.New("unauthorized")
	ErrInvalidToken   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token expired")
)
