package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/investkeeper/internal/flagx"
)

var serverFlags = []string{"-a", "-b", "-f", "-s", "-t", "-k", "-l"}

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   HTTP bind address (e.g. ":3000")
//	-b string   store backend ("file" or "s3")
//	-f string   document file path
//	-s string   token HMAC secret key
//	-t int      token validity, minutes
//	-k int      bcrypt cost
//	-l string   log level
//
// Arguments that are not in this set (such as -c) are filtered out first
// with flagx.FilterArgs.
func parseFlags(config *Config, args []string) error {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "address and port to run server")
	fs.StringVar(&config.StoreBackend, "b", config.StoreBackend, "store backend (file or s3)")
	fs.StringVar(&config.StorePath, "f", config.StorePath, "document file path")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	tokenValidity := fs.Int("t", int(config.TokenValidityDuration.Minutes()), "token validity (in minutes)")
	fs.IntVar(&config.BcryptCost, "k", config.BcryptCost, "bcrypt cost")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	if err := fs.Parse(flagx.FilterArgs(args, serverFlags)); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	// Only an explicit -t replaces the validity, so sub-minute precision from
	// the JSON file survives.
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			config.TokenValidityDuration = time.Duration(*tokenValidity) * time.Minute
		}
	})
	return nil
}
