package lint

import (
	"context"

	"github.com/goliatone/go-posts/pkg/interfaces"
)

// File is a corpus file as seen by lint rules: the raw bytes plus the parsed
// post when parsing succeeded. ParseErr carries the failure otherwise so
// rules can report on files the loader would reject.
type File struct {
	Path     string
	Source   []byte
	Post     *interfaces.Post
	ParseErr error
}

// Corpus is the full lint input: every discovered file plus the revision
// groups derived from the parseable subset.
type Corpus struct {
	Files  []*File
	Groups []*interfaces.RevisionGroup

	paths map[string]struct{}
	slugs map[string]struct{}
}

// HasPath reports whether the corpus contains a file at the given
// slash-separated path.
func (c *Corpus) HasPath(path string) bool {
	if c == nil {
		return false
	}
	_, ok := c.paths[path]
	return ok
}

// HasSlug reports whether any post in the corpus carries the given slug.
func (c *Corpus) HasSlug(slug string) bool {
	if c == nil {
		return false
	}
	_, ok := c.slugs[slug]
	return ok
}

// FileRule checks a single corpus file.
type FileRule interface {
	ID() string
	Check(ctx context.Context, corpus *Corpus, file *File) []interfaces.Issue
}

// CorpusRule checks cross-file properties such as revision consistency.
type CorpusRule interface {
	ID() string
	CheckCorpus(ctx context.Context, corpus *Corpus) []interfaces.Issue
}

// lineOf returns the 1-based line number containing the byte offset.
func lineOf(source []byte, offset int) int {
	if offset < 0 || offset > len(source) {
		return 0
	}
	line := 1
	for _, b := range source[:offset] {
		if b == '\n' {
			line++
		}
	}
	return line
}
