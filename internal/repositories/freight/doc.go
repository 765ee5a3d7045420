// Package freight persists freight records.
//
// Every multi-row read, update and delete is filtered by owner, so a caller
// holding only a guessed id cannot see or change another user's shipment.
// Single-row reads by id are unfiltered; the engine and its collaborators
// check ownership on the returned record where it matters.
//
// Money and weight columns are REAL. Values are bound and scanned through
// shopspring/decimal, and NULL discount/taxes (rows written before those
// columns existed) read back as zero.
package freight
