// Package cli provides the interactive freightdesk command-line client.
//
// It drives the storage engine through the auth and document services:
// sign in, enter freight records, keep company profiles and custom fields,
// generate bilties and invoices, and back up or restore the whole database.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
