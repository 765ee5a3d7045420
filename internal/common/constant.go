package common

// Storage keys used inside the blob store. The database itself is a single
// opaque blob; the backup marker is a tiny RFC3339 timestamp next to it.
const (
	DatabaseBlobKey   = "freightdesk.db"
	LastBackupBlobKey = "freightdesk.lastBackup"
)

// Seed account created only on the very first initialization.
const (
	DefaultUsername = "admin"
	DefaultPassword = "admin123"
)
