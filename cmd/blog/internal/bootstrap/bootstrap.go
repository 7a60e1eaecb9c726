package bootstrap

import (
	"context"
	"fmt"
	"strings"

	posts "github.com/goliatone/go-posts"
	corpuscmd "github.com/goliatone/go-posts/internal/commands/corpus"
	staticcmd "github.com/goliatone/go-posts/internal/commands/static"
	"github.com/goliatone/go-posts/pkg/interfaces"
)

// Options captures configuration shared by the blog CLI bootstraps.
type Options struct {
	BasePath  string
	Pattern   string
	Recursive bool
	Strict    bool

	DSN string

	OutputDir       string
	BaseURL         string
	SiteTitle       string
	SiteDescription string
	TemplateDir     string

	Disabled   []string
	SchemaPath string

	Lint      bool
	Index     bool
	Generator bool

	LoggerProvider interfaces.LoggerProvider
}

// Module wraps the posts module together with the services each CLI needs,
// exposed as interfaces so tests can substitute fakes.
type Module struct {
	Module  *posts.Module
	Corpus  interfaces.CorpusService
	Linter  interfaces.Linter
	Syncer  corpuscmd.Syncer
	Builder staticcmd.SiteBuilder
	Logger  interfaces.Logger
}

// Migrate applies the index schema when a real module backs this bootstrap.
func (m *Module) Migrate(ctx context.Context) error {
	if m == nil || m.Module == nil {
		return nil
	}
	return m.Module.Migrate(ctx)
}

// Close releases module resources when a real module backs this bootstrap.
func (m *Module) Close() error {
	if m == nil || m.Module == nil {
		return nil
	}
	return m.Module.Close()
}

// BuildModule constructs a posts module configured for CLI use.
func BuildModule(opts Options) (*Module, error) {
	cfg := posts.DefaultConfig()

	if trimmed := strings.TrimSpace(opts.BasePath); trimmed != "" {
		cfg.Corpus.BasePath = trimmed
	}
	if trimmed := strings.TrimSpace(opts.Pattern); trimmed != "" {
		cfg.Corpus.Pattern = trimmed
	}
	cfg.Corpus.Recursive = opts.Recursive
	cfg.Corpus.Strict = opts.Strict

	cfg.Features.Lint = opts.Lint
	cfg.Features.Index = opts.Index
	cfg.Features.Generator = opts.Generator

	if trimmed := strings.TrimSpace(opts.DSN); trimmed != "" {
		cfg.Index.DSN = trimmed
	}
	if trimmed := strings.TrimSpace(opts.OutputDir); trimmed != "" {
		cfg.Generator.OutputDir = trimmed
	}
	if trimmed := strings.TrimSpace(opts.BaseURL); trimmed != "" {
		cfg.Generator.BaseURL = trimmed
	}
	if trimmed := strings.TrimSpace(opts.SiteTitle); trimmed != "" {
		cfg.Generator.SiteTitle = trimmed
	}
	cfg.Generator.SiteDescription = opts.SiteDescription
	cfg.Generator.TemplateDir = opts.TemplateDir

	cfg.Lint.Disabled = append([]string(nil), opts.Disabled...)
	cfg.Lint.SchemaPath = opts.SchemaPath

	moduleOpts := []posts.Option{}
	if opts.LoggerProvider != nil {
		moduleOpts = append(moduleOpts, posts.WithLoggerProvider(opts.LoggerProvider))
	}

	module, err := posts.New(cfg, moduleOpts...)
	if err != nil {
		return nil, fmt.Errorf("initialise posts module: %w", err)
	}

	built := &Module{
		Module: module,
		Corpus: module.Corpus(),
		Logger: module.Logger("cli"),
	}
	if opts.Lint {
		built.Linter = module.Linter()
	}
	if opts.Index {
		built.Syncer = module.Index()
	}
	if opts.Generator {
		built.Builder = module.Generator()
	}
	return built, nil
}

// SplitList parses a comma separated flag value into a trimmed slice.
func SplitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
