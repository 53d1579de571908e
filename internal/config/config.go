// Package config loads generator settings from defaults and an optional YAML
// file. Command-line flags are applied on top by the CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
)

var (
	ErrConfigNotFound = errors.New("config file not found")
	ErrConfigParse    = errors.New("failed to parse config")
	ErrInvalidConfig  = errors.New("invalid config")
)

// MaxFileSize limits config input to prevent memory exhaustion.
const MaxFileSize = 1 << 20

// DefaultTimeout bounds a single render when no timeout is configured.
const DefaultTimeout = 2 * time.Minute

// Config holds every tunable of one generator run.
type Config struct {
	// BaseDir is the directory holding output/ and docs/assets/.
	// Empty means the directory of the running executable.
	BaseDir string `yaml:"baseDir"`

	// Timeout is a Go duration string; "0" disables the limit.
	Timeout string `yaml:"timeout"`

	// Strict reports usage errors and missing files with non-zero exit codes.
	Strict bool `yaml:"strict"`

	// LogLevel is the minimum level written to stderr: debug, info or error.
	LogLevel string `yaml:"logLevel"`

	Browser BrowserConfig `yaml:"browser"`
	Page    PageConfig    `yaml:"page"`
}

// BrowserConfig selects and configures the Chromium executable.
type BrowserConfig struct {
	Path         string `yaml:"path"`
	NoSandbox    bool   `yaml:"noSandbox"`
	AutoDownload bool   `yaml:"autoDownload"`
}

// PageConfig defines PDF page settings. Margin is in centimeters; unset
// means 1 cm and an explicit 0 prints edge to edge.
type PageConfig struct {
	Size              string   `yaml:"size"`        // a3, a4, a5, letter, legal, tabloid
	Orientation       string   `yaml:"orientation"` // portrait, landscape
	Margin            *float64 `yaml:"margin"`
	Scale             float64  `yaml:"scale"`
	PrintBackground   *bool    `yaml:"printBackground"`
	PreferCSSPageSize *bool    `yaml:"preferCSSPageSize"`
	Outline           *bool    `yaml:"outline"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Timeout:  DefaultTimeout.String(),
		LogLevel: "error",
		Page: PageConfig{
			Size:        "a4",
			Orientation: "portrait",
			Scale:       1.0,
		},
	}
}

// Load reads the YAML file at path over the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML config data over the defaults. Unknown fields are rejected.
func Parse(data []byte) (*Config, error) {
	if len(data) > MaxFileSize {
		return nil, fmt.Errorf("%w: %d bytes exceeds %d", ErrConfigParse, len(data), MaxFileSize)
	}
	cfg := Default()
	if len(strings.TrimSpace(string(data))) > 0 {
		if err := yaml.UnmarshalWithOptions(data, cfg, yaml.Strict()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var validPageSizes = map[string]bool{
	"a3": true, "a4": true, "a5": true,
	"letter": true, "legal": true, "tabloid": true,
}

// Validate checks field values and normalizes enum casing.
func (c *Config) Validate() error {
	if _, err := c.TimeoutDuration(); err != nil {
		return err
	}

	c.Page.Size = strings.ToLower(strings.TrimSpace(c.Page.Size))
	if c.Page.Size != "" && !validPageSizes[c.Page.Size] {
		return fmt.Errorf("%w: page size %q", ErrInvalidConfig, c.Page.Size)
	}

	c.Page.Orientation = strings.ToLower(strings.TrimSpace(c.Page.Orientation))
	switch c.Page.Orientation {
	case "", "portrait", "landscape":
	default:
		return fmt.Errorf("%w: orientation %q", ErrInvalidConfig, c.Page.Orientation)
	}

	if m := c.Page.Margin; m != nil && (*m < 0 || *m > 10) {
		return fmt.Errorf("%w: margin %v cm (must be 0-10)", ErrInvalidConfig, *m)
	}
	if c.Page.Scale != 0 && (c.Page.Scale < 0.1 || c.Page.Scale > 2.0) {
		return fmt.Errorf("%w: scale %v (must be 0.1-2.0)", ErrInvalidConfig, c.Page.Scale)
	}

	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "", "debug", "info", "error":
	default:
		return fmt.Errorf("%w: log level %q", ErrInvalidConfig, c.LogLevel)
	}
	return nil
}

// TimeoutDuration parses Timeout. An empty value means DefaultTimeout.
func (c *Config) TimeoutDuration() (time.Duration, error) {
	s := strings.TrimSpace(c.Timeout)
	if s == "" {
		return DefaultTimeout, nil
	}
	if s == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%w: timeout %q: %v", ErrInvalidConfig, c.Timeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%w: timeout %q is negative", ErrInvalidConfig, c.Timeout)
	}
	return d, nil
}
