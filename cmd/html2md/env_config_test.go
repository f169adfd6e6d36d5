package main

// Notes:
// - Tests use t.Setenv() which prevents t.Parallel().
// - Malformed HTML2MD_TIMEOUT and HTML2MD_WORKERS values are ignored, not errors.

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/alnah/go-html2md/internal/config"
)

// ---------------------------------------------------------------------------
// TestLoadEnvConfig - Environment variable loading
// ---------------------------------------------------------------------------

func TestLoadEnvConfig(t *testing.T) {
	t.Run("all variables", func(t *testing.T) {
		t.Setenv("HTML2MD_CONFIG", "work")
		t.Setenv("HTML2MD_OUTPUT_DIR", "/out")
		t.Setenv("HTML2MD_BASE_URL", "https://example.com")
		t.Setenv("HTML2MD_BROWSER_BIN", "/usr/bin/chromium")
		t.Setenv("HTML2MD_CLIPBOARD_COMMAND", "wl-copy")
		t.Setenv("HTML2MD_LOG_LEVEL", "debug")
		t.Setenv("HTML2MD_TIMEOUT", "45s")
		t.Setenv("HTML2MD_WORKERS", "3")

		cfg := loadEnvConfig()

		want := envConfig{
			ConfigPath:       "work",
			OutputDir:        "/out",
			BaseURL:          "https://example.com",
			BrowserBin:       "/usr/bin/chromium",
			ClipboardCommand: "wl-copy",
			LogLevel:         "debug",
			Timeout:          45 * time.Second,
			Workers:          3,
		}
		if *cfg != want {
			t.Errorf("loadEnvConfig() = %+v, want %+v", *cfg, want)
		}
	})

	t.Run("malformed values ignored", func(t *testing.T) {
		tests := []struct {
			timeout string
			workers string
		}{
			{"soon", "many"},
			{"-5s", "-2"},
			{"0s", "0"},
		}
		for _, tt := range tests {
			t.Setenv("HTML2MD_TIMEOUT", tt.timeout)
			t.Setenv("HTML2MD_WORKERS", tt.workers)

			cfg := loadEnvConfig()
			if cfg.Timeout != 0 {
				t.Errorf("Timeout for %q = %v, want 0", tt.timeout, cfg.Timeout)
			}
			if cfg.Workers != 0 {
				t.Errorf("Workers for %q = %d, want 0", tt.workers, cfg.Workers)
			}
		}
	})
}

// ---------------------------------------------------------------------------
// TestWarnUnknownEnvVars - Typo detection
// ---------------------------------------------------------------------------

func TestWarnUnknownEnvVars(t *testing.T) {
	t.Setenv("HTML2MD_WORKER", "2")
	t.Setenv("HTML2MD_WORKERS", "2")
	t.Setenv("HTML2MD_CONTAINER", "1")

	var buf bytes.Buffer
	warnUnknownEnvVars(&buf)
	got := buf.String()

	if !strings.Contains(got, "unknown environment variable HTML2MD_WORKER ") {
		t.Errorf("warnUnknownEnvVars() = %q, want warning for HTML2MD_WORKER", got)
	}
	if strings.Contains(got, "HTML2MD_WORKERS") || strings.Contains(got, "HTML2MD_CONTAINER") {
		t.Errorf("warnUnknownEnvVars() = %q, known variables should not warn", got)
	}
}

// ---------------------------------------------------------------------------
// TestApplyEnvConfig - Priority against the config file
// ---------------------------------------------------------------------------

func TestApplyEnvConfig(t *testing.T) {
	t.Parallel()

	env := &envConfig{
		OutputDir:        "/env-out",
		BaseURL:          "https://env.test",
		BrowserBin:       "/env/chrome",
		ClipboardCommand: "env-copy",
	}

	t.Run("fills empty fields", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		applyEnvConfig(env, cfg)

		if cfg.Output.DefaultDir != "/env-out" {
			t.Errorf("Output.DefaultDir = %q, want /env-out", cfg.Output.DefaultDir)
		}
		if cfg.Converter.BaseURL != "https://env.test" {
			t.Errorf("Converter.BaseURL = %q, want https://env.test", cfg.Converter.BaseURL)
		}
		if cfg.Browser.Bin != "/env/chrome" {
			t.Errorf("Browser.Bin = %q, want /env/chrome", cfg.Browser.Bin)
		}
		if cfg.Clipboard.Command != "env-copy" {
			t.Errorf("Clipboard.Command = %q, want env-copy", cfg.Clipboard.Command)
		}
	})

	t.Run("config file wins", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Output.DefaultDir = "/cfg-out"
		cfg.Converter.BaseURL = "https://cfg.test"
		cfg.Browser.Bin = "/cfg/chrome"
		cfg.Clipboard.Command = "cfg-copy"
		applyEnvConfig(env, cfg)

		if cfg.Output.DefaultDir != "/cfg-out" {
			t.Errorf("Output.DefaultDir = %q, want /cfg-out", cfg.Output.DefaultDir)
		}
		if cfg.Converter.BaseURL != "https://cfg.test" {
			t.Errorf("Converter.BaseURL = %q, want https://cfg.test", cfg.Converter.BaseURL)
		}
		if cfg.Browser.Bin != "/cfg/chrome" {
			t.Errorf("Browser.Bin = %q, want /cfg/chrome", cfg.Browser.Bin)
		}
		if cfg.Clipboard.Command != "cfg-copy" {
			t.Errorf("Clipboard.Command = %q, want cfg-copy", cfg.Clipboard.Command)
		}
	})
}

// ---------------------------------------------------------------------------
// TestEnvironment_EndToEnd - Variables reaching commands
// ---------------------------------------------------------------------------

func TestEnvironment_EndToEnd(t *testing.T) {
	t.Run("HTML2MD_BASE_URL resolves links", func(t *testing.T) {
		t.Setenv("HTML2MD_BASE_URL", "https://example.com/")

		te := newTestEnv(`<a href="/a">A</a>`)
		if code := te.run("convert", "--no-front-matter"); code != ExitSuccess {
			t.Fatalf("exit code = %d, want %d; stderr: %s", code, ExitSuccess, te.stderr)
		}
		if got := te.stdout.String(); got != "[A](https://example.com/a)\n" {
			t.Errorf("stdout = %q, want resolved link", got)
		}
	})

	t.Run("HTML2MD_OUTPUT_DIR used for files", func(t *testing.T) {
		dir := setupTestDir(t, map[string]string{"page.html": samplePage})
		out := t.TempDir()
		t.Setenv("HTML2MD_OUTPUT_DIR", out)

		te := newTestEnv("")
		if code := te.run("convert", dir+"/page.html", "--no-front-matter"); code != ExitSuccess {
			t.Fatalf("exit code = %d, want %d; stderr: %s", code, ExitSuccess, te.stderr)
		}
		if got := readFile(t, out+"/page.md"); got != sampleMarkdown {
			t.Errorf("page.md = %q, want %q", got, sampleMarkdown)
		}
	})

	t.Run("HTML2MD_CLIPBOARD_COMMAND reaches the clipboard", func(t *testing.T) {
		t.Setenv("HTML2MD_CLIPBOARD_COMMAND", "wl-copy")

		te := newTestEnv(samplePage)
		if code := te.run("convert", "--copy", "-q"); code != ExitSuccess {
			t.Fatalf("exit code = %d, want %d; stderr: %s", code, ExitSuccess, te.stderr)
		}
		if te.clipboard.command != "wl-copy" {
			t.Errorf("clipboard command = %q, want wl-copy", te.clipboard.command)
		}
	})

	t.Run("invalid HTML2MD_LOG_LEVEL", func(t *testing.T) {
		t.Setenv("HTML2MD_LOG_LEVEL", "loud")

		te := newTestEnv(samplePage)
		if code := te.run("convert"); code != ExitUsage {
			t.Errorf("exit code = %d, want %d; stderr: %s", code, ExitUsage, te.stderr)
		}
	})

	t.Run("HTML2MD_CONFIG names the config file", func(t *testing.T) {
		dir := setupTestDir(t, map[string]string{
			"env.yaml": "frontMatter:\n  enabled: false\nconverter:\n  renderers:\n    b: transparent\n",
		})
		t.Setenv("HTML2MD_CONFIG", dir+"/env.yaml")

		te := newTestEnv(samplePage)
		if code := te.run("convert"); code != ExitSuccess {
			t.Fatalf("exit code = %d, want %d; stderr: %s", code, ExitSuccess, te.stderr)
		}
		if got := te.stdout.String(); got != "## Title\n\nHello world\n" {
			t.Errorf("stdout = %q, want config applied", got)
		}
	})
}
