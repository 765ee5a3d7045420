package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/dmitrijs2005/freightdesk/internal/flagx"
	"github.com/joho/godotenv"
)

const envPrefix = "FREIGHTDESK_"

// parseEnv overlays cfg with FREIGHTDESK_* variables. Values from the dotenv
// file are used only where the process environment does not set the same
// variable. A missing dotenv file is not an error.
func parseEnv(cfg *Config, args []string) {
	vars, err := godotenv.Read(flagx.EnvFileFlag(args))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}
	if vars == nil {
		vars = map[string]string{}
	}

	get := func(name string) (string, bool) {
		if v, ok := os.LookupEnv(envPrefix + name); ok {
			return v, true
		}
		v, ok := vars[envPrefix+name]
		return v, ok
	}

	set := func(name string, dst *string) {
		if v, ok := get(name); ok {
			*dst = v
		}
	}

	set("STORAGE", &cfg.StorageBackend)
	set("DATA_DIR", &cfg.DataDir)
	set("BLOB_KEY", &cfg.BlobKey)
	set("PASSPHRASE", &cfg.Passphrase)
	set("S3_BUCKET", &cfg.S3.Bucket)
	set("S3_REGION", &cfg.S3.Region)
	set("S3_ENDPOINT", &cfg.S3.Endpoint)
	set("S3_USER", &cfg.S3.User)
	set("S3_PASSWORD", &cfg.S3.Password)
	set("SESSION_SECRET", &cfg.SessionSecret)
	set("LOG_FORMAT", &cfg.LogFormat)
	set("LOG_LEVEL", &cfg.LogLevel)

	if v, ok := get("SESSION_TTL"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		cfg.SessionTTL = d
	}
}
