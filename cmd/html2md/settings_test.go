package main

// Notes:
// - loadSettings is mostly covered through the command tests; here we test
//   the resolution helpers directly: flag merging, log levels, timeouts,
//   workers and front matter assembly.

import (
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	html2md "github.com/alnah/go-html2md"
	"github.com/alnah/go-html2md/internal/config"
)

// ---------------------------------------------------------------------------
// TestCloneConfig - Isolation from the shared default
// ---------------------------------------------------------------------------

func TestCloneConfig(t *testing.T) {
	t.Parallel()

	t.Run("nil gives defaults", func(t *testing.T) {
		t.Parallel()
		got := cloneConfig(nil)
		if !got.FrontMatter.Enabled {
			t.Error("cloneConfig(nil) should return DefaultConfig")
		}
	})

	t.Run("maps and pointers are copied", func(t *testing.T) {
		t.Parallel()

		headless := true
		orig := config.DefaultConfig()
		orig.Converter.Renderers = map[string]string{"b": "bold"}
		orig.Browser.Headless = &headless

		c := cloneConfig(orig)
		c.Converter.Renderers["i"] = "italic"
		*c.Browser.Headless = false

		if len(orig.Converter.Renderers) != 1 {
			t.Errorf("original renderers = %v, want untouched", orig.Converter.Renderers)
		}
		if !*orig.Browser.Headless {
			t.Error("original headless should stay true")
		}
	})
}

// ---------------------------------------------------------------------------
// TestMergeConverterFlags - CLI over config
// ---------------------------------------------------------------------------

func TestMergeConverterFlags(t *testing.T) {
	t.Parallel()

	t.Run("flags override config", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Converter.BaseURL = "https://cfg.test"
		cfg.Converter.Renderers = map[string]string{"aside": "elide"}

		f := &converterFlags{
			baseURL:   "https://flag.test",
			bullets:   "•",
			renderers: []string{"ASIDE = block", "figure=elide"},
		}
		if err := mergeConverterFlags(f, cfg); err != nil {
			t.Fatalf("mergeConverterFlags() unexpected error: %v", err)
		}

		if cfg.Converter.BaseURL != "https://flag.test" {
			t.Errorf("BaseURL = %q, want https://flag.test", cfg.Converter.BaseURL)
		}
		if cfg.Converter.BulletGlyphs != "•" {
			t.Errorf("BulletGlyphs = %q, want •", cfg.Converter.BulletGlyphs)
		}
		if cfg.Converter.Renderers["aside"] != "block" || cfg.Converter.Renderers["figure"] != "elide" {
			t.Errorf("Renderers = %v, want aside=block figure=elide", cfg.Converter.Renderers)
		}
	})

	t.Run("empty flags keep config", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Converter.BaseURL = "https://cfg.test"
		if err := mergeConverterFlags(&converterFlags{}, cfg); err != nil {
			t.Fatalf("mergeConverterFlags() unexpected error: %v", err)
		}
		if cfg.Converter.BaseURL != "https://cfg.test" {
			t.Errorf("BaseURL = %q, want https://cfg.test", cfg.Converter.BaseURL)
		}
	})

	for _, pair := range []string{"aside", "=block", "aside=", " = "} {
		t.Run("malformed "+pair, func(t *testing.T) {
			t.Parallel()

			err := mergeConverterFlags(&converterFlags{renderers: []string{pair}}, config.DefaultConfig())
			if !errors.Is(err, ErrUsage) {
				t.Errorf("mergeConverterFlags(%q) error = %v, want ErrUsage", pair, err)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestResolveLogLevel - Flag, env, config priority
// ---------------------------------------------------------------------------

func TestResolveLogLevel(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Log.Level = "warn"

	tests := []struct {
		name    string
		common  commonFlags
		env     string
		want    slog.Level
		wantErr error
	}{
		{"verbose wins", commonFlags{verbose: true, quiet: true}, "error", slog.LevelDebug, nil},
		{"quiet", commonFlags{quiet: true}, "debug", slog.LevelError, nil},
		{"env over config", commonFlags{}, "debug", slog.LevelDebug, nil},
		{"config", commonFlags{}, "", slog.LevelWarn, nil},
		{"bad env", commonFlags{}, "chatty", slog.LevelInfo, config.ErrInvalidValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := resolveLogLevel(&tt.common, &envConfig{LogLevel: tt.env}, cfg)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("resolveLogLevel() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("resolveLogLevel() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("resolveLogLevel() = %v, want %v", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestResolveTimeout - Flag, env, config priority
// ---------------------------------------------------------------------------

func TestResolveTimeout(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Browser.Timeout = "1m"

	tests := []struct {
		name    string
		flag    time.Duration
		env     time.Duration
		want    time.Duration
		wantErr error
	}{
		{"flag wins", 5 * time.Second, 10 * time.Second, 5 * time.Second, nil},
		{"env over config", 0, 10 * time.Second, 10 * time.Second, nil},
		{"config", 0, 0, time.Minute, nil},
		{"negative flag", -time.Second, 0, 0, ErrInvalidTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := resolveTimeout(tt.flag, tt.env, cfg)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("resolveTimeout() error = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("resolveTimeout() = %v, want %v", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestResolveWorkers - Bounds and env fallback
// ---------------------------------------------------------------------------

func TestResolveWorkers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		flag    int
		env     int
		want    int
		wantErr bool
	}{
		{"auto", 0, 0, 0, false},
		{"flag", 3, 5, 3, false},
		{"env fallback", 0, 5, 5, false},
		{"env capped", 0, 100, html2md.MaxPoolSize, false},
		{"max", html2md.MaxPoolSize, 0, html2md.MaxPoolSize, false},
		{"too many", html2md.MaxPoolSize + 1, 0, 0, true},
		{"negative", -1, 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := &settings{env: &envConfig{Workers: tt.env}}
			got, err := s.resolveWorkers(tt.flag)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidWorkerCount) {
					t.Errorf("resolveWorkers(%d) error = %v, want ErrInvalidWorkerCount", tt.flag, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("resolveWorkers(%d) unexpected error: %v", tt.flag, err)
			}
			if got != tt.want {
				t.Errorf("resolveWorkers(%d) = %d, want %d", tt.flag, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestBuildFrontMatter - Posting metadata header
// ---------------------------------------------------------------------------

func TestBuildFrontMatter(t *testing.T) {
	t.Parallel()

	root, err := html2md.ParseString(jobPage)
	if err != nil {
		t.Fatalf("ParseString() unexpected error: %v", err)
	}

	t.Run("keys in order with reformatted dates", func(t *testing.T) {
		t.Parallel()

		got, err := buildFrontMatter(root, "body", "https://example.com/job", "european", fixedNow)
		if err != nil {
			t.Fatalf("buildFrontMatter() unexpected error: %v", err)
		}

		order := []string{"title:", "company:", "datePosted:", "source:", "converted:"}
		last := -1
		for _, key := range order {
			idx := strings.Index(got, key)
			if idx < 0 {
				t.Fatalf("front matter missing %q:\n%s", key, got)
			}
			if idx < last {
				t.Errorf("%q out of order:\n%s", key, got)
			}
			last = idx
		}
		for _, value := range []string{"Go Engineer", "Acme", "30/09/2026", "https://example.com/job", "18/10/2026"} {
			if !strings.Contains(got, value) {
				t.Errorf("front matter missing %q:\n%s", value, got)
			}
		}
		if !strings.HasSuffix(got, "---\n\nbody") {
			t.Errorf("buildFrontMatter() = %q, want body after the closing fence", got)
		}
	})

	t.Run("empty fields skipped", func(t *testing.T) {
		t.Parallel()

		got, err := buildFrontMatter(root, "body", "", "iso", fixedNow)
		if err != nil {
			t.Fatalf("buildFrontMatter() unexpected error: %v", err)
		}
		for _, key := range []string{"location:", "salary:", "validThrough:", "source:"} {
			if strings.Contains(got, key) {
				t.Errorf("front matter should skip empty %s:\n%s", key, got)
			}
		}
	})
}

func TestDocument_FrontMatterSwitches(t *testing.T) {
	t.Parallel()

	root, err := html2md.ParseString(jobPage)
	if err != nil {
		t.Fatalf("ParseString() unexpected error: %v", err)
	}

	disabled := config.DefaultConfig()
	disabled.FrontMatter.Enabled = false

	tests := []struct {
		name string
		cfg  *config.Config
		out  *outputFlags
		want bool
	}{
		{"enabled", config.DefaultConfig(), nil, true},
		{"flag off", config.DefaultConfig(), &outputFlags{noFrontMatter: true}, false},
		{"config off", disabled, &outputFlags{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := &settings{cfg: tt.cfg}
			got, err := s.document(root, "body", "", tt.out, fixedNow)
			if err != nil {
				t.Fatalf("document() unexpected error: %v", err)
			}
			if has := strings.HasPrefix(got, "---\n"); has != tt.want {
				t.Errorf("document() front matter = %v, want %v: %q", has, tt.want, got)
			}
		})
	}
}
