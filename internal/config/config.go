package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/jaco/specialmac/internal/special"
)

// DefaultPaths are tried in order by LoadDefault.
var DefaultPaths = []string{"./specialmac.yaml", "~/.config/specialmac/config.yaml"}

// Config represents the main configuration
type Config struct {
	Mode    string  `yaml:"mode,omitempty"`   // "prefix" (default), "address", "any"
	Strict  bool    `yaml:"strict,omitempty"` // Do not normalize input before matching
	Special Special `yaml:"special"`

	// Path the config was read from, empty for built-in defaults.
	Path string `yaml:"-"`
}

// Special lists the special prefixes and addresses.
type Special struct {
	Prefixes  []string `yaml:"prefixes,omitempty"`
	Addresses []string `yaml:"addresses,omitempty"`

	// present is set when the file contains a non-null special section.
	present bool
}

// UnmarshalYAML records that the section was written, so an explicitly
// empty section is not replaced by the built-in sets.
func (s *Special) UnmarshalYAML(node *yaml.Node) error {
	type plain Special
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*s = Special(p)
	s.present = true
	return nil
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{}
	cfg.setDefaults()
	return cfg
}

// Load loads configuration from a YAML file
func Load(path string) (*Config, error) {
	path, err := expandHome(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	cfg.Path = path
	cfg.setDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

// LoadDefault tries DefaultPaths and returns the first config found. When
// none exists the built-in defaults are returned. A path under ~ is skipped
// when the home directory is unknown (HOME unset under cron or systemd).
// A file that exists but fails to load is an error.
func LoadDefault() (*Config, error) {
	for _, p := range DefaultPaths {
		if _, err := expandHome(p); err != nil {
			continue
		}
		cfg, err := Load(p)
		if err == nil {
			return cfg, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	return Default(), nil
}

// Validate checks the mode and every special entry.
func (c *Config) Validate() error {
	if _, err := c.ParsedMode(); err != nil {
		return err
	}
	_, err := c.Set()
	return err
}

// ParsedMode returns the configured match mode.
func (c *Config) ParsedMode() (special.Mode, error) {
	return special.ParseMode(c.Mode)
}

// Set builds the special set described by the config.
func (c *Config) Set() (*special.Set, error) {
	return special.NewSet(c.Special.Prefixes, c.Special.Addresses)
}

// setDefaults fills in what the file left out. A missing or null special
// section means the built-in sets. A written section is taken as is, so
// "special: {}" leaves both sets empty and a section naming only prefixes
// keeps the address list empty.
func (c *Config) setDefaults() {
	if c.Mode == "" {
		c.Mode = special.ModePrefix.String()
	}
	if !c.Special.present {
		c.Special.Prefixes = special.DefaultPrefixes()
		c.Special.Addresses = special.DefaultAddresses()
	}
}

// expandHome expands a leading ~ to the user's home directory.
func expandHome(path string) (string, error) {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}
	return path, nil
}
