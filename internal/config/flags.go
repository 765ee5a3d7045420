package config

import (
	"flag"
	"time"

	"github.com/dmitrijs2005/freightdesk/internal/flagx"
)

var knownFlags = []string{"-s", "-d", "-k", "-p", "-t", "-l", "-b", "-g", "-e", "-u", "-w"}

// parseFlags populates Config fields from command-line flags. Only the flags
// listed in knownFlags are considered, so -c and -env pass through untouched.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, knownFlags)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.StorageBackend, "s", cfg.StorageBackend, "storage backend: dir, s3 or memory")
	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "data directory for the dir backend")
	fs.StringVar(&cfg.BlobKey, "k", cfg.BlobKey, "blob key of the database")
	fs.StringVar(&cfg.Passphrase, "p", cfg.Passphrase, "encrypt blobs at rest with this passphrase")
	ttl := fs.Int("t", int(cfg.SessionTTL.Minutes()), "session ttl (in minutes)")
	fs.StringVar(&cfg.LogFormat, "l", cfg.LogFormat, "log format: text, json or zap")
	fs.StringVar(&cfg.S3.Bucket, "b", cfg.S3.Bucket, "s3 bucket")
	fs.StringVar(&cfg.S3.Region, "g", cfg.S3.Region, "s3 region")
	fs.StringVar(&cfg.S3.Endpoint, "e", cfg.S3.Endpoint, "s3 endpoint")
	fs.StringVar(&cfg.S3.User, "u", cfg.S3.User, "s3 access key")
	fs.StringVar(&cfg.S3.Password, "w", cfg.S3.Password, "s3 secret key")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.SessionTTL = time.Duration(*ttl) * time.Minute
		}
	})
}
