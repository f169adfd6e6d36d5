package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-html2md/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath       string        // HTML2MD_CONFIG: config file name or path
	OutputDir        string        // HTML2MD_OUTPUT_DIR: default output directory
	BaseURL          string        // HTML2MD_BASE_URL: base for relative links
	BrowserBin       string        // HTML2MD_BROWSER_BIN: Chrome binary
	ClipboardCommand string        // HTML2MD_CLIPBOARD_COMMAND: clipboard tool command line
	LogLevel         string        // HTML2MD_LOG_LEVEL: debug, info, warn, error
	Timeout          time.Duration // HTML2MD_TIMEOUT: page load timeout
	Workers          int           // HTML2MD_WORKERS: parallel workers
}

// knownEnvVars lists valid HTML2MD_* environment variables.
var knownEnvVars = map[string]bool{
	"HTML2MD_CONFIG":            true,
	"HTML2MD_OUTPUT_DIR":        true,
	"HTML2MD_BASE_URL":          true,
	"HTML2MD_BROWSER_BIN":       true,
	"HTML2MD_CLIPBOARD_COMMAND": true,
	"HTML2MD_LOG_LEVEL":         true,
	"HTML2MD_TIMEOUT":           true,
	"HTML2MD_WORKERS":           true,
	"HTML2MD_CONTAINER":         true, // read by doctor
}

// loadEnvConfig reads configuration from environment variables.
// Malformed durations and counts are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath:       os.Getenv("HTML2MD_CONFIG"),
		OutputDir:        os.Getenv("HTML2MD_OUTPUT_DIR"),
		BaseURL:          os.Getenv("HTML2MD_BASE_URL"),
		BrowserBin:       os.Getenv("HTML2MD_BROWSER_BIN"),
		ClipboardCommand: os.Getenv("HTML2MD_CLIPBOARD_COMMAND"),
		LogLevel:         os.Getenv("HTML2MD_LOG_LEVEL"),
	}

	if timeout := os.Getenv("HTML2MD_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	if workers := os.Getenv("HTML2MD_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars warns about unrecognized HTML2MD_* variables (typos).
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "HTML2MD_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig fills empty config values from the environment.
// Priority: CLI flags > config file > env vars > defaults for these fields;
// timeout, workers and log level are resolved separately with env above config.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.OutputDir != "" && cfg.Output.DefaultDir == "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.BaseURL != "" && cfg.Converter.BaseURL == "" {
		cfg.Converter.BaseURL = env.BaseURL
	}
	if env.BrowserBin != "" && cfg.Browser.Bin == "" {
		cfg.Browser.Bin = env.BrowserBin
	}
	if env.ClipboardCommand != "" && cfg.Clipboard.Command == "" {
		cfg.Clipboard.Command = env.ClipboardCommand
	}
}
