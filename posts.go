package posts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/goliatone/go-posts/internal/commands"
	corpuscmd "github.com/goliatone/go-posts/internal/commands/corpus"
	lintcmd "github.com/goliatone/go-posts/internal/commands/lint"
	staticcmd "github.com/goliatone/go-posts/internal/commands/static"
	"github.com/goliatone/go-posts/internal/generator"
	"github.com/goliatone/go-posts/internal/index"
	"github.com/goliatone/go-posts/internal/lint"
	"github.com/goliatone/go-posts/internal/logging"
	"github.com/goliatone/go-posts/internal/logging/gologger"
	"github.com/goliatone/go-posts/internal/markdown"
	corpussvc "github.com/goliatone/go-posts/internal/posts"
	"github.com/goliatone/go-posts/pkg/interfaces"
	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	_ "github.com/mattn/go-sqlite3"
)

// ErrModuleDisabled is returned by New when cfg.Enabled is false.
var ErrModuleDisabled = errors.New("posts: module is disabled by configuration")

// ErrLintFeatureDisabled is returned when a lint entry point is requested but
// the lint feature flag is off.
var ErrLintFeatureDisabled = errors.New("posts: lint feature disabled")

// ErrIndexFeatureDisabled is returned when an index entry point is requested
// but the index feature flag is off.
var ErrIndexFeatureDisabled = errors.New("posts: index feature disabled")

// ErrGeneratorFeatureDisabled is returned when a generator entry point is
// requested but the generator feature flag is off.
var ErrGeneratorFeatureDisabled = errors.New("posts: generator feature disabled")

// Public aliases so host applications can depend on the root package alone.
type (
	CorpusService    = corpussvc.Service
	LintRunner       = lint.Runner
	IndexService     = index.Service
	GeneratorService = generator.Service

	IndexedPost     = index.Post
	IndexedRevision = index.Revision

	BuildOptions = generator.BuildOptions
	BuildResult  = generator.BuildResult

	SyncCorpusCommand = corpuscmd.SyncCorpusCommand
	SyncCorpusHandler = corpuscmd.SyncCorpusHandler
	LintCorpusCommand = lintcmd.LintCorpusCommand
	LintCorpusHandler = lintcmd.LintCorpusHandler
	BuildSiteCommand  = staticcmd.BuildSiteCommand
	BuildSiteHandler  = staticcmd.BuildSiteHandler

	ReportSink = lintcmd.ReportSink
)

// Module wires the corpus loader, linter, index, and static site generator
// behind a single constructor. Feature flags in Config decide which services
// come up; disabled services stay nil and their entry points return feature
// errors.
type Module struct {
	cfg      Config
	provider interfaces.LoggerProvider

	corpus    *corpussvc.Service
	linter    *lint.Runner
	indexSvc  *index.Service
	generator *generator.Service

	sqlDB  *sql.DB
	db     *bun.DB
	ownsDB bool
}

// Option customises Module construction.
type Option func(*moduleOptions)

type moduleOptions struct {
	provider interfaces.LoggerProvider
	db       *bun.DB
	parser   interfaces.MarkdownParser
}

// WithLoggerProvider injects an external logger provider, bypassing the
// provider selected by cfg.Logging.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(o *moduleOptions) {
		if provider != nil {
			o.provider = provider
		}
	}
}

// WithDB reuses an existing bun.DB for the index instead of opening a
// connection from cfg.Index. The caller keeps ownership of the handle.
func WithDB(db *bun.DB) Option {
	return func(o *moduleOptions) {
		if db != nil {
			o.db = db
		}
	}
}

// WithParser overrides the Markdown parser shared by the corpus service and
// the generator.
func WithParser(parser interfaces.MarkdownParser) Option {
	return func(o *moduleOptions) {
		if parser != nil {
			o.parser = parser
		}
	}
}

// New validates cfg and brings up every enabled service.
func New(cfg Config, opts ...Option) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if !cfg.Enabled {
		return nil, ErrModuleDisabled
	}

	options := &moduleOptions{}
	for _, opt := range opts {
		opt(options)
	}

	provider := options.provider
	if provider == nil && cfg.Features.Logger {
		built, err := newLoggerProvider(cfg.Logging)
		if err != nil {
			return nil, err
		}
		provider = built
	}

	m := &Module{
		cfg:      cfg,
		provider: provider,
	}

	parseOpts := parseOptions(cfg.Markdown)
	parser := options.parser
	if parser == nil {
		parser = markdown.NewGoldmarkParser(parseOpts)
	}

	corpus, err := corpussvc.NewService(corpussvc.Config{
		BasePath:  cfg.Corpus.BasePath,
		Pattern:   cfg.Corpus.Pattern,
		Recursive: cfg.Corpus.Recursive,
		Strict:    cfg.Corpus.Strict,
		Parser:    parseOpts,
	}, parser)
	if err != nil {
		return nil, fmt.Errorf("posts: corpus service: %w", err)
	}
	m.corpus = corpus

	if cfg.Features.Lint {
		runner, err := lint.NewRunner(lint.Config{
			BasePath:  cfg.Corpus.BasePath,
			Pattern:   cfg.Corpus.Pattern,
			Recursive: cfg.Corpus.Recursive,
			Disabled:  cfg.Lint.Disabled,
			Logger:    logging.LintLogger(provider),
		})
		if err != nil {
			return nil, fmt.Errorf("posts: lint runner: %w", err)
		}
		m.linter = runner
	}

	if cfg.Features.Index {
		if err := m.setupIndex(options.db); err != nil {
			m.closeDB()
			return nil, err
		}
	}

	if cfg.Features.Generator {
		gen, err := generator.NewService(generator.Config{
			BaseURL:         cfg.Generator.BaseURL,
			OutputDir:       cfg.Generator.OutputDir,
			SiteTitle:       cfg.Generator.SiteTitle,
			SiteDescription: cfg.Generator.SiteDescription,
			TemplateDir:     cfg.Generator.TemplateDir,
			FeedLimit:       cfg.Generator.FeedLimit,
			Logger:          logging.GeneratorLogger(provider),
		}, generator.WithParser(parser))
		if err != nil {
			m.closeDB()
			return nil, fmt.Errorf("posts: generator: %w", err)
		}
		m.generator = gen
	}

	return m, nil
}

func (m *Module) setupIndex(external *bun.DB) error {
	db := external
	if db == nil {
		driver := strings.TrimSpace(m.cfg.Index.Driver)
		if driver == "" {
			driver = "sqlite3"
		}
		sqlDB, err := sql.Open(driver, m.cfg.Index.DSN)
		if err != nil {
			return fmt.Errorf("posts: open index database: %w", err)
		}
		db = bun.NewDB(sqlDB, sqlitedialect.New())
		m.sqlDB = sqlDB
		m.ownsDB = true
	}
	m.db = db

	var cacheService repocache.CacheService
	var keySerializer repocache.KeySerializer
	if m.cfg.Cache.Enabled {
		cacheCfg := repocache.DefaultConfig()
		if m.cfg.Cache.DefaultTTL > 0 {
			cacheCfg.TTL = m.cfg.Cache.DefaultTTL
		}
		service, err := repocache.NewCacheService(cacheCfg)
		if err != nil {
			return fmt.Errorf("posts: cache service: %w", err)
		}
		cacheService = service
		keySerializer = repocache.NewDefaultKeySerializer()
	}

	postRepo := index.NewBunPostRepositoryWithCache(db, cacheService, keySerializer)
	revisionRepo := index.NewBunRevisionRepositoryWithCache(db, cacheService, keySerializer)
	m.indexSvc = index.NewService(postRepo, revisionRepo,
		index.WithLogger(logging.IndexLogger(m.provider)),
	)
	return nil
}

// Corpus exposes the filesystem corpus service.
func (m *Module) Corpus() interfaces.CorpusService {
	return m.corpus
}

// Linter exposes the lint runner, or nil when the feature is disabled.
func (m *Module) Linter() interfaces.Linter {
	if m.linter == nil {
		return nil
	}
	return m.linter
}

// Index exposes the index service, or nil when the feature is disabled.
func (m *Module) Index() *IndexService {
	return m.indexSvc
}

// Generator exposes the static site generator, or nil when the feature is disabled.
func (m *Module) Generator() *GeneratorService {
	return m.generator
}

// DB exposes the bun handle backing the index, or nil when the index is disabled.
func (m *Module) DB() *bun.DB {
	return m.db
}

// Config returns the configuration the module was built with.
func (m *Module) Config() Config {
	return m.cfg
}

// Logger returns a named logger from the module provider.
func (m *Module) Logger(name string) interfaces.Logger {
	return logging.ModuleLogger(m.provider, name)
}

// Lint runs the linter over dir, applying the configured schema and severity
// threshold. The report is returned even when issues were found.
func (m *Module) Lint(ctx context.Context, dir string) (*interfaces.Report, error) {
	if m.linter == nil {
		return nil, ErrLintFeatureDisabled
	}

	opts := interfaces.LintOptions{
		Disabled: m.cfg.Lint.Disabled,
		Load:     interfaces.LoadOptions{Pattern: m.cfg.Corpus.Pattern},
	}
	if path := strings.TrimSpace(m.cfg.Lint.SchemaPath); path != "" {
		schema, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("posts: read lint schema: %w", err)
		}
		opts.Schema = schema
	}
	return m.linter.LintDirectory(ctx, dir, opts)
}

// Sync loads the corpus under dir and reconciles it into the index.
func (m *Module) Sync(ctx context.Context, dir string, opts interfaces.SyncOptions) (*interfaces.SyncResult, error) {
	if m.indexSvc == nil {
		return nil, ErrIndexFeatureDisabled
	}
	groups, err := m.corpus.Revisions(ctx, dir, interfaces.LoadOptions{})
	if err != nil {
		return nil, err
	}
	return m.indexSvc.Sync(ctx, groups, opts)
}

// Build loads the corpus under dir and renders the static site.
func (m *Module) Build(ctx context.Context, dir string, opts BuildOptions) (*BuildResult, error) {
	if m.generator == nil {
		return nil, ErrGeneratorFeatureDisabled
	}
	groups, err := m.corpus.Revisions(ctx, dir, interfaces.LoadOptions{})
	if err != nil {
		return nil, err
	}
	return m.generator.Build(ctx, groups, opts)
}

// NewSyncHandler builds the corpus sync command handler wired to module services.
func (m *Module) NewSyncHandler(opts ...commands.HandlerOption[SyncCorpusCommand]) (*SyncCorpusHandler, error) {
	if m.indexSvc == nil {
		return nil, ErrIndexFeatureDisabled
	}
	gates := corpuscmd.FeatureGates{
		IndexEnabled: func() bool { return m.cfg.Features.Index },
	}
	return corpuscmd.NewSyncCorpusHandler(m.corpus, m.indexSvc, m.Logger("commands"), gates, opts...), nil
}

// NewLintHandler builds the lint command handler. The optional sink observes
// every report before pass/fail is decided.
func (m *Module) NewLintHandler(sink ReportSink, opts ...commands.HandlerOption[LintCorpusCommand]) (*LintCorpusHandler, error) {
	if m.linter == nil {
		return nil, ErrLintFeatureDisabled
	}
	return lintcmd.NewLintCorpusHandler(m.linter, sink, m.Logger("commands"), opts...), nil
}

// NewBuildHandler builds the static site command handler wired to module services.
func (m *Module) NewBuildHandler(opts ...commands.HandlerOption[BuildSiteCommand]) (*BuildSiteHandler, error) {
	if m.generator == nil {
		return nil, ErrGeneratorFeatureDisabled
	}
	gates := staticcmd.FeatureGates{
		GeneratorEnabled: func() bool { return m.cfg.Features.Generator },
	}
	return staticcmd.NewBuildSiteHandler(m.corpus, m.generator, m.Logger("commands"), gates, opts...), nil
}

// Close releases the database connection when the module owns it.
func (m *Module) Close() error {
	return m.closeDB()
}

func (m *Module) closeDB() error {
	if !m.ownsDB {
		return nil
	}
	m.ownsDB = false
	if m.db != nil {
		// bun.DB.Close also closes the underlying sql.DB.
		err := m.db.Close()
		m.db = nil
		m.sqlDB = nil
		return err
	}
	if m.sqlDB != nil {
		err := m.sqlDB.Close()
		m.sqlDB = nil
		return err
	}
	return nil
}

func newLoggerProvider(cfg LoggingConfig) (interfaces.LoggerProvider, error) {
	format := cfg.Format
	if strings.EqualFold(strings.TrimSpace(cfg.Provider), "console") && strings.TrimSpace(format) == "" {
		format = "console"
	}
	provider, err := gologger.NewProvider(gologger.Config{
		Level:     cfg.Level,
		Format:    format,
		AddSource: cfg.AddSource,
		Focus:     cfg.Focus,
	})
	if err != nil {
		return nil, fmt.Errorf("posts: logger provider: %w", err)
	}
	return provider, nil
}

func parseOptions(cfg MarkdownConfig) interfaces.ParseOptions {
	return interfaces.ParseOptions{
		Extensions:      append([]string(nil), cfg.Extensions...),
		Sanitize:        cfg.Sanitize,
		HardWraps:       cfg.HardWraps,
		SafeMode:        cfg.SafeMode,
		NormalizeLiquid: cfg.NormalizeLiquid,
	}
}
