package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/freightdesk/internal/common"
	"github.com/dmitrijs2005/freightdesk/internal/logging"
)

// Storage backends.
const (
	BackendDir    = "dir"
	BackendS3     = "s3"
	BackendMemory = "memory"
)

// S3Config addresses an S3-compatible bucket.
type S3Config struct {
	Bucket   string
	Region   string
	Endpoint string
	User     string
	Password string
}

// Config holds runtime settings for the freightdesk CLI.
type Config struct {
	StorageBackend string
	DataDir        string
	BlobKey        string
	Passphrase     string
	S3             S3Config

	SessionSecret string
	SessionTTL    time.Duration

	LogFormat string
	LogLevel  string
}

// LoadDefaults populates c with sensible defaults. The session secret is
// random per process, so sessions do not survive a restart unless one is
// configured.
func (c *Config) LoadDefaults() {
	c.StorageBackend = BackendDir
	c.DataDir = "data"
	c.BlobKey = common.DatabaseBlobKey
	c.S3 = S3Config{Region: "us-east-1"}
	c.SessionTTL = 8 * time.Hour
	c.LogFormat = logging.FormatText
	c.LogLevel = "info"

	secret, err := common.MakeRandHexString(32)
	if err != nil {
		panic(err)
	}
	c.SessionSecret = secret
}

// Validate checks that the combination of settings is usable.
func (c *Config) Validate() error {
	switch c.StorageBackend {
	case BackendDir:
		if c.DataDir == "" {
			return errors.New("data dir is required for the dir backend")
		}
	case BackendS3:
		if c.S3.Bucket == "" {
			return errors.New("bucket is required for the s3 backend")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("unknown storage backend %q", c.StorageBackend)
	}

	if c.BlobKey == "" {
		return errors.New("blob key must not be empty")
	}
	if c.SessionTTL <= 0 {
		return errors.New("session ttl must be positive")
	}
	return nil
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment, JSON (if present) and command-line flags (if present).
// Later sources take precedence over earlier ones. Malformed input panics,
// as the process cannot start without a configuration.
func LoadConfig() *Config {
	args := os.Args[1:]

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg, args)
	parseJson(cfg, args)
	parseFlags(cfg, args)
	return cfg
}
