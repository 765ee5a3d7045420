// Package config loads runtime configuration for the freightdesk CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment: FREIGHTDESK_* variables, optionally seeded from a dotenv
//     file (-env, default ".env"). Real environment variables win over the file.
//  3. Optional JSON file selected via -c or -config.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-s string   storage backend: dir, s3 or memory
//	-d string   data directory for the dir backend
//	-k string   blob key of the database
//	-p string   passphrase; when set, blobs are encrypted at rest
//	-t int      session TTL (minutes)
//	-l string   log format: text, json or zap
//	-b string   S3 bucket
//	-g string   S3 region
//	-e string   S3 endpoint (MinIO etc.)
//	-u string   S3 access key
//	-w string   S3 secret key
//
// # JSON schema
//
//	{
//	  "storage_backend": "dir",
//	  "data_dir": "data",
//	  "blob_key": "freightdesk.db",
//	  "session_ttl": "8h",
//	  "log_format": "text",
//	  "log_level": "info",
//	  "s3": {"bucket": "freight", "region": "us-east-1", "endpoint": "http://localhost:9000"}
//	}
package config
