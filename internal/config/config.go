// Package config loads the html2md YAML configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-html2md/internal/dateutil"
	"github.com/alnah/go-html2md/internal/fileutil"
	"github.com/alnah/go-html2md/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxGlyphsLength   = 32
	MaxURLLength      = 2048 // Browser limit
	MaxTagLength      = 64
	MaxStrategyLength = 32
	MaxCommandLength  = 256
	MaxPathLength     = 4096
	MaxRenderers      = 256
)

// AppDir is the directory name used under the user config directory.
const AppDir = "go-html2md"

// DefaultBrowserTimeout applies when browser.timeout is empty.
const DefaultBrowserTimeout = 30 * time.Second

// Config holds all configuration for the html2md CLI.
type Config struct {
	Converter   ConverterConfig   `yaml:"converter"`
	FrontMatter FrontMatterConfig `yaml:"frontMatter"`
	Clipboard   ClipboardConfig   `yaml:"clipboard"`
	Browser     BrowserConfig     `yaml:"browser"`
	Output      OutputConfig      `yaml:"output"`
	Log         LogConfig         `yaml:"log"`
}

// ConverterConfig tunes the Markdown converter.
type ConverterConfig struct {
	BulletGlyphs string            `yaml:"bulletGlyphs"` // Empty = library default
	BaseURL      string            `yaml:"baseURL"`      // Resolves relative links and images
	Renderers    map[string]string `yaml:"renderers"`    // tag -> strategy name
}

// FrontMatterConfig controls the YAML header written before scraped pages.
type FrontMatterConfig struct {
	Enabled    bool   `yaml:"enabled"`
	DateFormat string `yaml:"dateFormat"` // Preset (iso, european, us, long) or tokens
}

// ClipboardConfig controls copying results to the system clipboard.
type ClipboardConfig struct {
	Enabled bool   `yaml:"enabled"`
	Command string `yaml:"command"` // Empty = first available tool
}

// BrowserConfig configures the headless browser used by pick and fetch.
type BrowserConfig struct {
	Bin      string `yaml:"bin"`      // Empty = rod managed download or ROD_BROWSER_BIN
	Headless *bool  `yaml:"headless"` // Nil = true
	Timeout  string `yaml:"timeout"`  // Go duration, e.g. "30s"
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Empty = next to the source
}

// LogConfig sets the CLI log level.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// IsHeadless reports the effective headless setting.
func (b BrowserConfig) IsHeadless() bool {
	return b.Headless == nil || *b.Headless
}

// PageTimeout returns the parsed timeout, or DefaultBrowserTimeout when empty.
// Validate rejects malformed values, so the error is only reachable on
// configs built by hand.
func (b BrowserConfig) PageTimeout() (time.Duration, error) {
	if b.Timeout == "" {
		return DefaultBrowserTimeout, nil
	}
	d, err := time.ParseDuration(b.Timeout)
	if err != nil {
		return 0, fmt.Errorf("%w: browser.timeout: %v", ErrInvalidValue, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: browser.timeout: must be positive, got %s", ErrInvalidValue, b.Timeout)
	}
	return d, nil
}

// Validate checks field lengths and enumerated values.
// Called automatically by LoadConfig, but available for configs built in code.
func (c *Config) Validate() error {
	if err := validateFieldLength("converter.bulletGlyphs", c.Converter.BulletGlyphs, MaxGlyphsLength); err != nil {
		return err
	}
	if err := validateFieldLength("converter.baseURL", c.Converter.BaseURL, MaxURLLength); err != nil {
		return err
	}
	if c.Converter.BaseURL != "" && !fileutil.IsURL(c.Converter.BaseURL) {
		return fmt.Errorf("%w: converter.baseURL: %q must start with http:// or https://", ErrInvalidValue, c.Converter.BaseURL)
	}

	if len(c.Converter.Renderers) > MaxRenderers {
		return fmt.Errorf("%w: converter.renderers: %d entries, max %d", ErrInvalidValue, len(c.Converter.Renderers), MaxRenderers)
	}
	for tag, strategy := range c.Converter.Renderers {
		if tag == "" {
			return fmt.Errorf("%w: converter.renderers: empty tag", ErrInvalidValue)
		}
		if err := validateFieldLength("converter.renderers key", tag, MaxTagLength); err != nil {
			return err
		}
		if err := validateFieldLength(fmt.Sprintf("converter.renderers.%s", tag), strategy, MaxStrategyLength); err != nil {
			return err
		}
	}

	if c.FrontMatter.DateFormat != "" {
		if _, err := dateutil.ResolveFormat(c.FrontMatter.DateFormat); err != nil {
			return fmt.Errorf("frontMatter.dateFormat: %w", err)
		}
	}

	if err := validateFieldLength("clipboard.command", c.Clipboard.Command, MaxCommandLength); err != nil {
		return err
	}
	if err := validateFieldLength("browser.bin", c.Browser.Bin, MaxPathLength); err != nil {
		return err
	}
	if _, err := c.Browser.PageTimeout(); err != nil {
		return err
	}
	if err := validateFieldLength("output.defaultDir", c.Output.DefaultDir, MaxPathLength); err != nil {
		return err
	}

	if c.Log.Level != "" {
		switch strings.ToLower(c.Log.Level) {
		case "debug", "info", "warn", "warning", "error":
			// valid
		default:
			return fmt.Errorf("%w: log.level: %q (must be debug, info, warn, or error)", ErrInvalidValue, c.Log.Level)
		}
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		FrontMatter: FrontMatterConfig{Enabled: true, DateFormat: "iso"},
		Clipboard:   ClipboardConfig{Enabled: false},
		Browser:     BrowserConfig{Timeout: DefaultBrowserTimeout.String()},
		Log:         LogConfig{Level: "info"},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SearchPaths lists the candidate files for a config name, in lookup order:
// current directory first, then the user config directory, .yaml before .yml.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)
	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, AppDir, name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing file from SearchPaths.
func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}
