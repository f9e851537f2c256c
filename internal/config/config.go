// Package config loads the optional YAML settings file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// EnvPath names the environment variable that points at a config file.
const EnvPath = "PLS_CONFIG"

// Backends understood by the backend setting.
const (
	BackendANSI  = "ansi"
	BackendTcell = "tcell"
)

var ErrUnknownBackend = errors.New("unknown backend")

var userConfigDir = os.UserConfigDir

// Config mirrors the command-line options that make sense to persist.
type Config struct {
	Pattern      string   `yaml:"pattern"`
	Editor       string   `yaml:"editor"`
	Backend      string   `yaml:"backend"`
	AltScreen    bool     `yaml:"alt_screen"`
	Status       *bool    `yaml:"status"`
	IgnoreCase   bool     `yaml:"ignore_case"`
	SmartCase    bool     `yaml:"smart_case"`
	FixedStrings bool     `yaml:"fixed_strings"`
	Last         bool     `yaml:"last"`
	Existing     bool     `yaml:"existing"`
	Paths        []string `yaml:"paths"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{Backend: BackendANSI}
}

// ShowStatus reports whether the status line is enabled; it is unless the
// file turns it off.
func (c *Config) ShowStatus() bool {
	return c.Status == nil || *c.Status
}

// DefaultPath returns the per-user config location, or "" when the platform
// has none.
func DefaultPath() string {
	dir, err := userConfigDir()
	if err != nil || dir == "" {
		return ""
	}
	return filepath.Join(dir, "pls", "config.yaml")
}

// Resolve loads the config named by explicit, then $PLS_CONFIG, then the
// default path. Only the default path may be missing.
func Resolve(explicit string, getenv func(string) string) (*Config, error) {
	if explicit != "" {
		return Load(explicit)
	}
	if env := getenv(EnvPath); env != "" {
		return Load(env)
	}
	path := DefaultPath()
	if path == "" {
		return Default(), nil
	}
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Load reads and validates a YAML config file. Unknown keys are rejected.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML config data over the defaults.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	switch c.Backend {
	case "":
		c.Backend = BackendANSI
	case BackendANSI, BackendTcell:
	default:
		return fmt.Errorf("%w %q (want %s or %s)", ErrUnknownBackend, c.Backend, BackendANSI, BackendTcell)
	}
	return nil
}
