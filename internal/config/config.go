// Package config loads the optional YAML defaults file for the rbroadlink
// CLI. Fields are pointers so an unset value can be told apart from one set
// to the zero value, letting command-line flags take precedence cleanly.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds CLI defaults a user would otherwise have to repeat on every
// invocation. Every field is optional; flags always take precedence over a
// value loaded here.
type Config struct {
	// LocalIP overrides auto-detection of the outbound-facing local address
	// named in discovery messages.
	LocalIP *string `yaml:"local_ip,omitempty"`

	// BroadcastAddr overrides the subnet broadcast address used by `list`.
	BroadcastAddr *string `yaml:"broadcast_addr,omitempty"`

	// LogFormat selects "text", "json", or "pretty". Defaults to "text" if
	// unset here and not given on the command line.
	LogFormat *string `yaml:"log_format,omitempty"`

	// Verbose enables debug-level logging.
	Verbose *bool `yaml:"verbose,omitempty"`
}

// Load reads and validates a Config from path. A missing file is not an
// error; it is treated as an empty Config so the CLI can always call Load
// unconditionally against a default path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return &cfg, nil
}

// Validate checks field-level constraints that don't depend on the
// filesystem. Network address syntax is validated by the CLI layer once it
// parses the values into net.IP, since config.Config has no dependency on
// the broadlink package.
func (c *Config) Validate() error {
	if c.LogFormat != nil {
		switch *c.LogFormat {
		case "text", "json", "pretty":
		default:
			return fmt.Errorf("log_format must be one of text, json, pretty, got %q", *c.LogFormat)
		}
	}
	return nil
}

// DefaultPath returns the conventional rbroadlink config file location,
// resolved against the user's config directory.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "rbroadlink.yaml"
	}
	return filepath.Join(dir, "rbroadlink", "config.yaml")
}
