// Package config handles configuration for the CLI client.
package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/aichat/internal/flagx"
)

// Config holds runtime settings for the CLI client.
type Config struct {
	ServerURL string
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://localhost:5000"
}

// LoadConfig builds a Config from defaults overlaid with command-line flags.
//
// Supported flags:
//
//	-a string   server base URL (e.g., "http://localhost:5000")
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()

	args := flagx.FilterArgs(os.Args[1:], []string{"-a"})

	fs := flag.NewFlagSet("client", flag.ContinueOnError)
	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "server base URL")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	return cfg
}
