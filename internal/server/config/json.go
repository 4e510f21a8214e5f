package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tidwall/jsonc"

	"github.com/dmitrijs2005/investkeeper/internal/timex"
)

// JsonConfig mirrors Config for unmarshalling. Every field is a pointer so
// that keys absent from the file keep their previous value. Durations use
// timex.Duration and accept "24h" as well as integer nanoseconds.
type JsonConfig struct {
	EndpointAddr          *string         `json:"endpoint_addr"`
	StoreBackend          *string         `json:"store_backend"`
	StorePath             *string         `json:"store_path"`
	SerializeWrites       *bool           `json:"serialize_writes"`
	SecretKey             *string         `json:"secret_key"`
	TokenValidityDuration *timex.Duration `json:"token_validity_duration"`
	BcryptCost            *int            `json:"bcrypt_cost"`
	LogLevel              *string         `json:"log_level"`
	S3RootUser            *string         `json:"s3_root_user"`
	S3RootPassword        *string         `json:"s3_root_password"`
	S3Bucket              *string         `json:"s3_bucket"`
	S3Region              *string         `json:"s3_region"`
	S3BaseEndpoint        *string         `json:"s3_base_endpoint"`
	S3ObjectKey           *string         `json:"s3_object_key"`
}

// parseJson overlays the settings of the JSON file at path onto config.
// Comments and trailing commas are allowed. An empty path loads nothing.
func parseJson(config *Config, path string) error {
	if path == "" {
		return nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(jsonc.ToJSON(raw), c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setString(&config.EndpointAddr, c.EndpointAddr)
	setString(&config.StoreBackend, c.StoreBackend)
	setString(&config.StorePath, c.StorePath)
	if c.SerializeWrites != nil {
		config.SerializeWrites = *c.SerializeWrites
	}
	setString(&config.SecretKey, c.SecretKey)
	if c.TokenValidityDuration != nil {
		config.TokenValidityDuration = c.TokenValidityDuration.Duration
	}
	if c.BcryptCost != nil {
		config.BcryptCost = *c.BcryptCost
	}
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setString(&config.S3ObjectKey, c.S3ObjectKey)
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
