package posts

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goliatone/go-posts/pkg/interfaces"
)

// LoaderConfig configures how post files are discovered within a base directory.
type LoaderConfig struct {
	// BasePath is the root directory where the corpus lives (typically the
	// directory containing `_posts`).
	BasePath string
	// Pattern limits discovered files to those matching the supplied glob (defaults to "*.md").
	Pattern string
	// Recursive controls whether sub-directories are traversed.
	Recursive bool
	// Strict rejects files whose names break the date convention instead of skipping them.
	Strict bool
}

// Loader turns filesystem paths into posts with metadata.
type Loader struct {
	fs        fs.FS
	basePath  string
	pattern   string
	recursive bool
	strict    bool
}

// NewLoader constructs a Loader using the provided filesystem and configuration.
func NewLoader(filesystem fs.FS, cfg LoaderConfig) *Loader {
	pattern := cfg.Pattern
	if strings.TrimSpace(pattern) == "" {
		pattern = "*.md"
	}

	return &Loader{
		fs:        filesystem,
		basePath:  filepath.Clean(cfg.BasePath),
		pattern:   pattern,
		recursive: cfg.Recursive,
		strict:    cfg.Strict,
	}
}

// LoadFile reads and parses a single post.
func (l *Loader) LoadFile(ctx context.Context, path string, opts LoadParams) (*PostResult, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	rel, err := l.makeRelative(path)
	if err != nil {
		return nil, err
	}
	rel = filepath.ToSlash(rel)

	data, err := fs.ReadFile(l.fs, rel)
	if err != nil {
		return nil, fmt.Errorf("posts loader read %s: %w", rel, err)
	}

	info, err := fs.Stat(l.fs, rel)
	if err != nil {
		return nil, fmt.Errorf("posts loader stat %s: %w", rel, err)
	}

	if l.isStrict(opts.Strict) {
		if _, err := ParseFilename(rel); err != nil {
			return nil, err
		}
	}

	post, err := BuildPost(rel, data, info.ModTime())
	if err != nil {
		return nil, err
	}
	sum := sha256.Sum256(data)
	post.Checksum = sum[:]

	return &PostResult{
		Post:   post,
		Source: data,
	}, nil
}

// LoadDirectory discovers post files under dir and returns parsed posts.
// Files with unconventional names are skipped unless strict mode is on.
func (l *Loader) LoadDirectory(ctx context.Context, dir string, opts LoadParams) ([]*PostResult, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	root, err := l.makeRelative(dir)
	if err != nil {
		return nil, err
	}
	root = filepath.Clean(root)

	var results []*PostResult

	walkErr := fs.WalkDir(l.fs, root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		if d.IsDir() {
			if !l.shouldRecurse(root, path, opts.Recursive) {
				return fs.SkipDir
			}
			return nil
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		rel := filepath.ToSlash(path)
		if !l.matchesPattern(rel, opts.Pattern) {
			return nil
		}

		// Directory walks only admit files following the date convention;
		// strict mode turns the silent skip into an error.
		if _, err := ParseFilename(rel); err != nil {
			if l.isStrict(opts.Strict) {
				return err
			}
			return nil
		}

		result, err := l.LoadFile(ctx, rel, opts)
		if err != nil {
			if !l.isStrict(opts.Strict) && errors.Is(err, ErrInvalidFilename) {
				return nil
			}
			return err
		}
		results = append(results, result)
		return nil
	})

	if walkErr != nil {
		return nil, walkErr
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Post.FilePath < results[j].Post.FilePath
	})

	return results, nil
}

func (l *Loader) shouldRecurse(root, current string, override *bool) bool {
	recursive := l.recursive
	if override != nil {
		recursive = *override
	}
	if recursive {
		return true
	}
	// If recursion is disabled, only walk the root directory.
	cleanRoot := filepath.Clean(root)
	cleanCurrent := filepath.Clean(current)
	return cleanRoot == cleanCurrent
}

func (l *Loader) isStrict(override *bool) bool {
	if override != nil {
		return *override
	}
	return l.strict
}

func (l *Loader) matchesPattern(path string, override string) bool {
	pattern := override
	if strings.TrimSpace(pattern) == "" {
		pattern = l.pattern
	}
	// Normalise to slash as fs.WalkDir returns slash-separated paths for DirFS.
	pattern = filepath.ToSlash(pattern)
	if strings.Contains(pattern, "**") {
		// Basic support for ** by stripping repeated separators.
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

func (l *Loader) makeRelative(path string) (string, error) {
	clean := filepath.Clean(path)
	if !filepath.IsAbs(clean) {
		return clean, nil
	}
	if l.basePath == "" {
		return "", fmt.Errorf("posts loader: absolute path %s provided without base path", path)
	}
	rel, err := filepath.Rel(l.basePath, clean)
	if err != nil {
		return "", fmt.Errorf("posts loader: make relative %s: %w", path, err)
	}
	return rel, nil
}

// PostResult carries the parsed post along with the raw source.
type PostResult struct {
	Post   *interfaces.Post
	Source []byte
}

// LoadParams provide call-specific overrides for pattern matching and strictness.
type LoadParams struct {
	Pattern   string
	Recursive *bool
	Strict    *bool
}
