package main

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"strings"
	"time"

	html2md "github.com/alnah/go-html2md"
	"github.com/alnah/go-html2md/internal/config"
	"github.com/alnah/go-html2md/internal/dateutil"
	"github.com/alnah/go-html2md/internal/frontmatter"
	"github.com/alnah/go-html2md/internal/logging"
	"github.com/alnah/go-html2md/internal/scrape"
)

// Sentinel errors for settings resolution.
var (
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrInvalidTimeout     = errors.New("invalid timeout")
)

// settings is the resolved configuration of one command run.
type settings struct {
	cfg       *config.Config
	env       *envConfig
	quiet     bool
	verbose   bool
	logger    html2md.Logger
	converter *html2md.Converter
}

// loadSettings resolves config file, environment and flags, in that order,
// then builds the logger and converter. conv may be nil for commands
// that do not convert.
func loadSettings(common *commonFlags, conv *converterFlags, env *Environment) (*settings, error) {
	ec := loadEnvConfig()
	warnUnknownEnvVars(env.Stderr)

	cfg := cloneConfig(env.Config)
	name := common.config
	if name == "" {
		name = ec.ConfigPath
	}
	if name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	applyEnvConfig(ec, cfg)
	if conv != nil {
		if err := mergeConverterFlags(conv, cfg); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	level, err := resolveLogLevel(common, ec, cfg)
	if err != nil {
		return nil, err
	}

	s := &settings{
		cfg:     cfg,
		env:     ec,
		quiet:   common.quiet,
		verbose: common.verbose,
		logger:  html2md.NewSlogLogger(logging.New(env.Stderr, level)),
	}

	if conv != nil {
		if s.converter, err = buildConverter(cfg, s.logger); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// cloneConfig copies cfg so flag merges never touch the shared default.
func cloneConfig(cfg *config.Config) *config.Config {
	if cfg == nil {
		return config.DefaultConfig()
	}
	c := *cfg
	c.Converter.Renderers = maps.Clone(cfg.Converter.Renderers)
	if cfg.Browser.Headless != nil {
		h := *cfg.Browser.Headless
		c.Browser.Headless = &h
	}
	return &c
}

// mergeConverterFlags applies converter flags over cfg (CLI wins).
func mergeConverterFlags(f *converterFlags, cfg *config.Config) error {
	if f.baseURL != "" {
		cfg.Converter.BaseURL = f.baseURL
	}
	if f.bullets != "" {
		cfg.Converter.BulletGlyphs = f.bullets
	}
	for _, pair := range f.renderers {
		tag, strategy, ok := strings.Cut(pair, "=")
		tag, strategy = strings.TrimSpace(tag), strings.TrimSpace(strategy)
		if !ok || tag == "" || strategy == "" {
			return fmt.Errorf("%w: --renderer %q must be tag=strategy", ErrUsage, pair)
		}
		if cfg.Converter.Renderers == nil {
			cfg.Converter.Renderers = make(map[string]string)
		}
		cfg.Converter.Renderers[strings.ToLower(tag)] = strategy
	}
	return nil
}

// resolveLogLevel picks the level: --verbose/--quiet > HTML2MD_LOG_LEVEL > log.level.
func resolveLogLevel(common *commonFlags, ec *envConfig, cfg *config.Config) (slog.Level, error) {
	switch {
	case common.verbose:
		return slog.LevelDebug, nil
	case common.quiet:
		return slog.LevelError, nil
	case ec.LogLevel != "":
		level, err := logging.ParseLevel(ec.LogLevel)
		if err != nil {
			return level, fmt.Errorf("%w: HTML2MD_LOG_LEVEL: %v", config.ErrInvalidValue, err)
		}
		return level, nil
	default:
		return logging.ParseLevel(cfg.Log.Level)
	}
}

// buildConverter creates the converter described by cfg.
func buildConverter(cfg *config.Config, logger html2md.Logger) (*html2md.Converter, error) {
	opts := []html2md.Option{html2md.WithLogger(logger)}
	if cfg.Converter.BulletGlyphs != "" {
		opts = append(opts, html2md.WithBulletGlyphs(cfg.Converter.BulletGlyphs))
	}
	if cfg.Converter.BaseURL != "" {
		opts = append(opts, html2md.WithBaseURL(cfg.Converter.BaseURL))
	}
	if len(cfg.Converter.Renderers) > 0 {
		overrides, err := html2md.OverridesFromNames(cfg.Converter.Renderers)
		if err != nil {
			return nil, err
		}
		opts = append(opts, html2md.WithOverrides(overrides))
	}
	return html2md.NewConverter(opts...)
}

// browserOptions builds Chrome options from flags and config.
func (s *settings) browserOptions(f *browserFlags) ([]html2md.BrowserOption, error) {
	timeout, err := resolveTimeout(f.timeout, s.env.Timeout, s.cfg)
	if err != nil {
		return nil, err
	}

	opts := []html2md.BrowserOption{
		html2md.WithPageTimeout(timeout),
		html2md.WithHeadless(s.cfg.Browser.IsHeadless()),
	}

	bin := f.bin
	if bin == "" {
		bin = s.cfg.Browser.Bin
	}
	if bin != "" {
		opts = append(opts, html2md.WithBrowserBin(bin))
	}
	return opts, nil
}

// resolveTimeout picks the page timeout: flag > HTML2MD_TIMEOUT > browser.timeout.
func resolveTimeout(flagValue, envValue time.Duration, cfg *config.Config) (time.Duration, error) {
	if flagValue < 0 {
		return 0, fmt.Errorf("%w: %v (must be positive)", ErrInvalidTimeout, flagValue)
	}
	if flagValue > 0 {
		return flagValue, nil
	}
	if envValue > 0 {
		return envValue, nil
	}
	return cfg.Browser.PageTimeout()
}

// resolveWorkers validates the flag and falls back to HTML2MD_WORKERS.
// Zero means auto.
func (s *settings) resolveWorkers(flagValue int) (int, error) {
	if err := validateWorkers(flagValue); err != nil {
		return 0, err
	}
	if flagValue == 0 && s.env.Workers > 0 {
		return min(s.env.Workers, html2md.MaxPoolSize), nil
	}
	return flagValue, nil
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > html2md.MaxPoolSize {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, html2md.MaxPoolSize)
	}
	return nil
}

// render converts root and, unless disabled, prepends front matter built
// from the page's job-posting metadata.
func (s *settings) render(root *html2md.Node, source string, out *outputFlags, now time.Time) (string, error) {
	return s.document(root, s.converter.Convert(root), source, out, now)
}

// document prepends front matter to markdown converted from root.
func (s *settings) document(root *html2md.Node, markdown, source string, out *outputFlags, now time.Time) (string, error) {
	if !s.cfg.FrontMatter.Enabled || (out != nil && out.noFrontMatter) {
		return markdown, nil
	}
	return buildFrontMatter(root, markdown, source, s.cfg.FrontMatter.DateFormat, now)
}

// buildFrontMatter assembles the YAML header for a converted page.
// Dates that cannot be parsed are kept as published.
func buildFrontMatter(root *html2md.Node, markdown, source, dateFormat string, now time.Time) (string, error) {
	p := scrape.Lookup(root)
	posted, _ := dateutil.Reformat(p.DatePosted, dateFormat)
	validThrough, _ := dateutil.Reformat(p.ValidThrough, dateFormat)
	converted, err := dateutil.Format(now, dateFormat)
	if err != nil {
		return "", err
	}

	return frontmatter.Build([]frontmatter.Field{
		{Key: "title", Value: p.Title},
		{Key: "company", Value: p.Company},
		{Key: "location", Value: p.Location},
		{Key: "employmentType", Value: p.EmploymentType},
		{Key: "salary", Value: p.Salary},
		{Key: "datePosted", Value: posted},
		{Key: "validThrough", Value: validThrough},
		{Key: "source", Value: source},
		{Key: "converted", Value: converted},
	}, markdown)
}
