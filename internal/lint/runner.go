package lint

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/goliatone/go-posts/internal/logging"
	"github.com/goliatone/go-posts/internal/posts"
	"github.com/goliatone/go-posts/pkg/interfaces"
)

// Config controls corpus discovery and the default rule set for a Runner.
type Config struct {
	BasePath  string
	Pattern   string
	Recursive bool
	// Disabled lists rule IDs that never run, regardless of per-call options.
	Disabled []string
	Logger   interfaces.Logger
}

// Runner implements interfaces.Linter for filesystem-backed corpora.
type Runner struct {
	cfg    Config
	fs     fs.FS
	logger interfaces.Logger
}

// NewRunner constructs a lint runner rooted at the configured base path.
func NewRunner(cfg Config) (*Runner, error) {
	basePath := strings.TrimSpace(cfg.BasePath)
	if basePath == "" {
		basePath = "."
	}
	if _, err := os.Stat(basePath); err != nil {
		return nil, fmt.Errorf("lint runner: stat base path %s: %w", basePath, err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.NoOp()
	}

	return &Runner{
		cfg:    cfg,
		fs:     os.DirFS(basePath),
		logger: logger,
	}, nil
}

// NewRunnerWithFS is the fs.FS-injectable variant used by tests.
func NewRunnerWithFS(filesystem fs.FS, cfg Config) *Runner {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Runner{cfg: cfg, fs: filesystem, logger: logger}
}

// LintDirectory loads every corpus file under dir and applies the rule set.
// Files that fail to parse still surface through the frontmatter/parse rule.
func (r *Runner) LintDirectory(ctx context.Context, dir string, opts interfaces.LintOptions) (*interfaces.Report, error) {
	corpus, err := r.collect(ctx, dir, opts)
	if err != nil {
		return nil, err
	}

	fileRules, corpusRules, err := r.rules(opts)
	if err != nil {
		return nil, err
	}

	report := &interfaces.Report{Issues: []interfaces.Issue{}}

	for _, file := range corpus.Files {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		for _, rule := range fileRules {
			report.Issues = append(report.Issues, rule.Check(ctx, corpus, file)...)
		}
	}
	for _, rule := range corpusRules {
		report.Issues = append(report.Issues, rule.CheckCorpus(ctx, corpus)...)
	}

	sortIssues(report.Issues)

	r.logger.Info("lint.run.completed",
		"files", len(corpus.Files),
		"errors", report.Count(interfaces.SeverityError),
		"warnings", report.Count(interfaces.SeverityWarning),
	)

	return report, nil
}

func (r *Runner) collect(ctx context.Context, dir string, opts interfaces.LintOptions) (*Corpus, error) {
	pattern := strings.TrimSpace(opts.Load.Pattern)
	if pattern == "" {
		pattern = strings.TrimSpace(r.cfg.Pattern)
	}
	if pattern == "" {
		pattern = "*.md"
	}

	recursive := r.cfg.Recursive
	if opts.Load.Recursive != nil {
		recursive = *opts.Load.Recursive
	}

	root := filepath.ToSlash(filepath.Clean(dir))
	if root == "" {
		root = "."
	}

	corpus := &Corpus{
		paths: map[string]struct{}{},
		slugs: map[string]struct{}{},
	}

	walkErr := fs.WalkDir(r.fs, root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			if !recursive && filepath.Clean(path) != filepath.Clean(root) {
				return fs.SkipDir
			}
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		rel := filepath.ToSlash(path)
		if !matchesPattern(rel, pattern) {
			return nil
		}

		data, err := fs.ReadFile(r.fs, rel)
		if err != nil {
			return fmt.Errorf("lint runner read %s: %w", rel, err)
		}

		file := &File{Path: rel, Source: data}

		var modified time.Time
		if info, statErr := fs.Stat(r.fs, rel); statErr == nil {
			modified = info.ModTime()
		}

		if post, err := posts.BuildPost(rel, data, modified); err != nil {
			file.ParseErr = err
		} else {
			file.Post = post
			corpus.slugs[post.Slug] = struct{}{}
		}

		corpus.Files = append(corpus.Files, file)
		corpus.paths[rel] = struct{}{}
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	sort.Slice(corpus.Files, func(i, j int) bool {
		return corpus.Files[i].Path < corpus.Files[j].Path
	})

	parsed := []*interfaces.Post{}
	for _, file := range corpus.Files {
		if file.Post != nil {
			parsed = append(parsed, file.Post)
		}
	}
	corpus.Groups = posts.GroupRevisions(parsed)

	return corpus, nil
}

func (r *Runner) rules(opts interfaces.LintOptions) ([]FileRule, []CorpusRule, error) {
	disabled := map[string]struct{}{}
	for _, id := range r.cfg.Disabled {
		disabled[strings.TrimSpace(id)] = struct{}{}
	}
	for _, id := range opts.Disabled {
		disabled[strings.TrimSpace(id)] = struct{}{}
	}

	schema, err := newSchemaRule(opts.Schema)
	if err != nil {
		return nil, nil, err
	}

	allFileRules := []FileRule{
		parseRule{},
		requiredRule{},
		duplicateRule{},
		fencesRule{},
		linksRule{},
		imagesRule{},
		filenameRule{},
		schema,
	}
	allCorpusRules := []CorpusRule{
		revisionTitlesRule{},
	}

	fileRules := make([]FileRule, 0, len(allFileRules))
	for _, rule := range allFileRules {
		if _, off := disabled[rule.ID()]; off {
			continue
		}
		fileRules = append(fileRules, rule)
	}
	corpusRules := make([]CorpusRule, 0, len(allCorpusRules))
	for _, rule := range allCorpusRules {
		if _, off := disabled[rule.ID()]; off {
			continue
		}
		corpusRules = append(corpusRules, rule)
	}
	return fileRules, corpusRules, nil
}

func sortIssues(issues []interfaces.Issue) {
	sort.Slice(issues, func(i, j int) bool {
		if issues[i].Path != issues[j].Path {
			return issues[i].Path < issues[j].Path
		}
		if issues[i].Line != issues[j].Line {
			return issues[i].Line < issues[j].Line
		}
		return issues[i].Rule < issues[j].Rule
	})
}

func matchesPattern(path, pattern string) bool {
	pattern = filepath.ToSlash(pattern)
	if strings.Contains(pattern, "**") {
		pattern = strings.ReplaceAll(pattern, "**/", "")
	}
	var target string
	if strings.Contains(pattern, "/") {
		target = path
	} else {
		target = filepath.Base(path)
	}
	match, err := filepath.Match(pattern, target)
	if err != nil {
		return false
	}
	return match
}
