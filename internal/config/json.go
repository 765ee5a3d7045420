package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/freightdesk/internal/flagx"
	"github.com/dmitrijs2005/freightdesk/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields distinguish "absent" from "empty", so a partial file only
// overrides what it names.
type JsonConfig struct {
	StorageBackend *string         `json:"storage_backend"`
	DataDir        *string         `json:"data_dir"`
	BlobKey        *string         `json:"blob_key"`
	Passphrase     *string         `json:"passphrase"`
	SessionSecret  *string         `json:"session_secret"`
	SessionTTL     *timex.Duration `json:"session_ttl"`
	LogFormat      *string         `json:"log_format"`
	LogLevel       *string         `json:"log_level"`
	S3             *struct {
		Bucket   *string `json:"bucket"`
		Region   *string `json:"region"`
		Endpoint *string `json:"endpoint"`
		User     *string `json:"user"`
		Password *string `json:"password"`
	} `json:"s3"`
}

// parseJson overlays cfg with the JSON file named by -c/-config, if any.
// Panics on read or unmarshal errors.
func parseJson(cfg *Config, args []string) {
	jsonConfigFile := flagx.JsonConfigFlags(args)
	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	apply(&cfg.StorageBackend, jc.StorageBackend)
	apply(&cfg.DataDir, jc.DataDir)
	apply(&cfg.BlobKey, jc.BlobKey)
	apply(&cfg.Passphrase, jc.Passphrase)
	apply(&cfg.SessionSecret, jc.SessionSecret)
	apply(&cfg.LogFormat, jc.LogFormat)
	apply(&cfg.LogLevel, jc.LogLevel)
	if jc.SessionTTL != nil {
		cfg.SessionTTL = jc.SessionTTL.Duration
	}
	if s3 := jc.S3; s3 != nil {
		apply(&cfg.S3.Bucket, s3.Bucket)
		apply(&cfg.S3.Region, s3.Region)
		apply(&cfg.S3.Endpoint, s3.Endpoint)
		apply(&cfg.S3.User, s3.User)
		apply(&cfg.S3.Password, s3.Password)
	}
}

func apply[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
