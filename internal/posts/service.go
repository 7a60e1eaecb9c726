package posts

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goliatone/go-posts/internal/markdown"
	"github.com/goliatone/go-posts/pkg/interfaces"
)

// Config controls how the corpus service discovers and parses post files.
type Config struct {
	BasePath  string
	Pattern   string
	Recursive bool
	Strict    bool
	Parser    interfaces.ParseOptions
}

// Service implements interfaces.CorpusService for filesystem-backed corpora.
type Service struct {
	cfg    Config
	parser interfaces.MarkdownParser
	loader *Loader
}

// NewService constructs a corpus service using an underlying loader. When
// parser is nil, a Goldmark parser with the provided default options is created.
func NewService(cfg Config, parser interfaces.MarkdownParser) (*Service, error) {
	filesystem, err := prepareFilesystem(cfg.BasePath)
	if err != nil {
		return nil, err
	}

	if parser == nil {
		parser = markdown.NewGoldmarkParser(cfg.Parser)
	}

	loader := NewLoader(filesystem, LoaderConfig{
		BasePath:  cfg.BasePath,
		Pattern:   cfg.Pattern,
		Recursive: cfg.Recursive,
		Strict:    cfg.Strict,
	})

	return &Service{
		cfg:    cfg,
		parser: parser,
		loader: loader,
	}, nil
}

// Load reads a single post relative to the configured base path.
func (s *Service) Load(ctx context.Context, path string, opts interfaces.LoadOptions) (*interfaces.Post, error) {
	result, err := s.loader.LoadFile(ctx, s.normalisePath(path), toLoaderParams(opts))
	if err != nil {
		return nil, err
	}
	if _, err := s.Render(ctx, result.Post, opts.Parser); err != nil {
		return nil, err
	}
	return result.Post, nil
}

// LoadDirectory reads every post within the supplied directory.
func (s *Service) LoadDirectory(ctx context.Context, dir string, opts interfaces.LoadOptions) ([]*interfaces.Post, error) {
	results, err := s.loader.LoadDirectory(ctx, s.normalisePath(dir), toLoaderParams(opts))
	if err != nil {
		return nil, err
	}

	loaded := make([]*interfaces.Post, 0, len(results))
	for _, result := range results {
		if _, err := s.Render(ctx, result.Post, opts.Parser); err != nil {
			return nil, fmt.Errorf("posts render %s: %w", result.Post.FilePath, err)
		}
		loaded = append(loaded, result.Post)
	}

	sort.Slice(loaded, func(i, j int) bool {
		return loaded[i].FilePath < loaded[j].FilePath
	})
	return loaded, nil
}

// Render converts the post's Markdown body into HTML using the configured parser.
func (s *Service) Render(ctx context.Context, post *interfaces.Post, opts interfaces.ParseOptions) ([]byte, error) {
	if post == nil {
		return nil, errors.New("posts service: post is nil")
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	html, err := s.parser.ParseWithOptions(post.Body, mergeParseOptions(s.cfg.Parser, opts))
	if err != nil {
		return nil, err
	}
	post.BodyHTML = html
	return html, nil
}

// Revisions loads the directory and groups duplicated draft revisions by slug.
func (s *Service) Revisions(ctx context.Context, dir string, opts interfaces.LoadOptions) ([]*interfaces.RevisionGroup, error) {
	loaded, err := s.LoadDirectory(ctx, dir, opts)
	if err != nil {
		return nil, err
	}
	return GroupRevisions(loaded), nil
}

func (s *Service) normalisePath(path string) string {
	if strings.TrimSpace(path) == "" {
		return "."
	}
	clean := filepath.Clean(path)
	if filepath.IsAbs(clean) && strings.TrimSpace(s.cfg.BasePath) != "" {
		if rel, err := filepath.Rel(s.cfg.BasePath, clean); err == nil {
			return filepath.ToSlash(rel)
		}
	}
	return filepath.ToSlash(clean)
}

func mergeParseOptions(base, override interfaces.ParseOptions) interfaces.ParseOptions {
	result := base
	if len(override.Extensions) > 0 {
		result.Extensions = append([]string(nil), override.Extensions...)
	}
	if override.Sanitize {
		result.Sanitize = true
	}
	if override.HardWraps {
		result.HardWraps = true
	}
	if override.SafeMode {
		result.SafeMode = true
	}
	if override.NormalizeLiquid {
		result.NormalizeLiquid = true
	}
	return result
}

func toLoaderParams(opts interfaces.LoadOptions) LoadParams {
	params := LoadParams{
		Pattern:   opts.Pattern,
		Recursive: opts.Recursive,
	}
	if opts.Strict {
		strict := true
		params.Strict = &strict
	}
	return params
}

func prepareFilesystem(basePath string) (fs.FS, error) {
	if strings.TrimSpace(basePath) == "" {
		basePath = "."
	}
	if _, err := os.Stat(basePath); err != nil {
		return nil, fmt.Errorf("posts service: stat base path %s: %w", basePath, err)
	}
	return os.DirFS(basePath), nil
}
