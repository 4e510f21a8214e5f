// Package config handles configuration for the server component,
// including defaults, a JSON (with comments) overlay, the environment and
// command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/investkeeper/internal/flagx"
	"github.com/dmitrijs2005/investkeeper/internal/logging"
)

// Store backends.
const (
	BackendFile = "file"
	BackendS3   = "s3"
)

// SecretKeyEnvName names the environment variable holding the signing secret.
const SecretKeyEnvName = "INVESTKEEPER_SECRET_KEY"

// ErrSecretKeyMissing is returned by Validate when no signing secret is set.
var ErrSecretKeyMissing = errors.New("secret key is required (set secret_key, -s or " + SecretKeyEnvName + ")")

// Config holds runtime settings for the investkeeper server.
//
// Fields:
//   - EndpointAddr: bind address of the HTTP API.
//   - StoreBackend: "file" (default) or "s3".
//   - StorePath: path of the document file for the file backend.
//   - SerializeWrites: run every read-modify-write of the document under one
//     lock. Turning it off allows lost updates between concurrent writers.
//   - SecretKey: HMAC secret for signing tokens (HS256). Required.
//   - TokenValidityDuration: lifetime of issued tokens.
//   - BcryptCost: work factor for password hashes.
//   - LogLevel: debug, info, warn or error.
//   - S3*: location and credentials of the document object for the s3 backend.
type Config struct {
	EndpointAddr          string
	StoreBackend          string
	StorePath             string
	SerializeWrites       bool
	SecretKey             string
	TokenValidityDuration time.Duration
	BcryptCost            int
	LogLevel              string
	S3RootUser            string
	S3RootPassword        string
	S3Bucket              string
	S3Region              string
	S3BaseEndpoint        string
	S3ObjectKey           string
}

// LoadDefaults populates Config with development defaults. The secret key
// is deliberately left empty.
func (c *Config) LoadDefaults() {
	c.EndpointAddr = ":3000"
	c.StoreBackend = BackendFile
	c.StorePath = "data/db.json"
	c.SerializeWrites = true
	c.SecretKey = ""
	c.TokenValidityDuration = 24 * time.Hour
	c.BcryptCost = 10
	c.LogLevel = "info"
	c.S3RootUser = "admin"
	c.S3RootPassword = "secretpassword"
	c.S3Bucket = "investkeeper"
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = "http://127.0.0.1:9000/"
	c.S3ObjectKey = "db.json"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment and finally command-line
// flags taken from args (usually os.Args[1:]). The result is validated.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJson(cfg, flagx.ConfigFile(args)); err != nil {
		return nil, err
	}
	parseEnv(cfg)
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports settings the server cannot start with.
func (c *Config) Validate() error {
	if c.SecretKey == "" {
		return ErrSecretKeyMissing
	}
	switch c.StoreBackend {
	case BackendFile:
		if c.StorePath == "" {
			return fmt.Errorf("store path is required for the %q backend", BackendFile)
		}
	case BackendS3:
		if c.S3Bucket == "" || c.S3ObjectKey == "" {
			return fmt.Errorf("s3 bucket and object key are required for the %q backend", BackendS3)
		}
	default:
		return fmt.Errorf("unknown store backend %q", c.StoreBackend)
	}
	if c.TokenValidityDuration <= 0 {
		return fmt.Errorf("token validity must be positive, got %s", c.TokenValidityDuration)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

func parseEnv(config *Config) {
	if v, ok := os.LookupEnv(SecretKeyEnvName); ok && v != "" {
		config.SecretKey = v
	}
}
