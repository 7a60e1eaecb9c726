package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrCorpusBasePathRequired = errors.New("posts config: corpus base path is required")
var ErrIndexDSNRequired = errors.New("posts config: index DSN is required when the index is enabled")
var ErrGeneratorOutputDirRequired = errors.New("posts config: generator output directory is required when the generator is enabled")
var ErrGeneratorBaseURLRequired = errors.New("posts config: generator base URL is required when the generator is enabled")
var ErrFeedLimitInvalid = errors.New("posts config: feed limit must be zero or positive")
var ErrLintFailOnInvalid = errors.New("posts config: lint fail_on must be error or warning")
var ErrLoggingProviderRequired = errors.New("posts config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("posts config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("posts config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("posts config: logging format is invalid")

// Config aggregates feature flags and adapter bindings for the posts module.
// Fields intentionally use simple types so host applications can extend them later.
type Config struct {
	Enabled   bool
	Corpus    CorpusConfig
	Markdown  MarkdownConfig
	Lint      LintConfig
	Index     IndexConfig
	Generator GeneratorConfig
	Cache     CacheConfig
	Logging   LoggingConfig
	Features  Features
}

// CorpusConfig captures filesystem behaviour for post discovery.
type CorpusConfig struct {
	BasePath  string
	Pattern   string
	Recursive bool
	// Strict rejects files that do not follow the YYYY-MM-DD-title naming convention.
	Strict bool
}

// MarkdownConfig mirrors interfaces.ParseOptions for runtime configuration.
type MarkdownConfig struct {
	Extensions      []string
	Sanitize        bool
	HardWraps       bool
	SafeMode        bool
	NormalizeLiquid bool
}

// LintConfig tunes the default rule set for lint runs.
type LintConfig struct {
	Disabled []string
	// SchemaPath points at an optional JSON schema applied to front matter.
	SchemaPath string
	// FailOn sets the severity that fails a run: "error" (default) or "warning".
	FailOn string
}

// IndexConfig captures storage bindings for the post index.
type IndexConfig struct {
	// Driver selects the database/sql driver, defaulting to sqlite3.
	Driver string
	// DSN is the database connection string.
	DSN string
}

// GeneratorConfig captures behaviour for the static site generator.
type GeneratorConfig struct {
	OutputDir       string
	BaseURL         string
	SiteTitle       string
	SiteDescription string
	TemplateDir     string
	FeedLimit       int
}

// CacheConfig captures repository cache behaviour.
type CacheConfig struct {
	Enabled    bool
	DefaultTTL time.Duration
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// Features toggles module functionality.
type Features struct {
	Lint      bool
	Index     bool
	Generator bool
	Logger    bool
}

// DefaultConfig returns opinionated defaults for a Jekyll-style corpus.
func DefaultConfig() Config {
	return Config{
		Enabled: true,
		Corpus: CorpusConfig{
			BasePath:  "_posts",
			Pattern:   "*.md",
			Recursive: true,
		},
		Markdown: MarkdownConfig{
			NormalizeLiquid: true,
		},
		Lint: LintConfig{
			FailOn: "error",
		},
		Index: IndexConfig{
			Driver: "sqlite3",
			DSN:    "file:posts.db?cache=shared",
		},
		Generator: GeneratorConfig{
			OutputDir: "public",
			BaseURL:   "http://localhost",
			SiteTitle: "Posts",
		},
		Cache: CacheConfig{
			Enabled:    true,
			DefaultTTL: time.Minute,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
		Features: Features{
			Lint:      true,
			Index:     true,
			Generator: true,
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.Corpus.BasePath) == "" {
		return ErrCorpusBasePathRequired
	}
	if cfg.Features.Index && strings.TrimSpace(cfg.Index.DSN) == "" {
		return ErrIndexDSNRequired
	}
	if cfg.Features.Generator {
		if strings.TrimSpace(cfg.Generator.OutputDir) == "" {
			return ErrGeneratorOutputDirRequired
		}
		if strings.TrimSpace(cfg.Generator.BaseURL) == "" {
			return ErrGeneratorBaseURLRequired
		}
	}
	if cfg.Generator.FeedLimit < 0 {
		return ErrFeedLimitInvalid
	}
	if failOn := strings.TrimSpace(cfg.Lint.FailOn); failOn != "" && failOn != "error" && failOn != "warning" {
		return fmt.Errorf("%w: %s", ErrLintFailOnInvalid, failOn)
	}
	if cfg.Features.Logger {
		provider := normalizeProvider(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
