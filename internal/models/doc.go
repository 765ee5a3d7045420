// Package models defines the entities persisted by the storage engine and
// the rules that decide whether a value is well-formed enough to be stored.
//
// Validation is shape-only: it never consults the database. Ownership,
// uniqueness and the single-default-profile rule are enforced by the engine.
package models
