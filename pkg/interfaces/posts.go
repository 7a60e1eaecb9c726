package interfaces

import (
	"context"
	"time"
)

// MarkdownParser defines how raw Markdown bytes are converted into HTML.
// Implementations should be reusable across goroutines so callers can share
// a single instance for the whole corpus.
type MarkdownParser interface {
	// Parse converts Markdown into HTML using the parser's default settings.
	Parse(markdown []byte) ([]byte, error)
	// ParseWithOptions converts Markdown into HTML using the supplied overrides.
	ParseWithOptions(markdown []byte, opts ParseOptions) ([]byte, error)
}

// ParseOptions customises Markdown parsing behaviour, keeping option names
// readable for configuration unmarshalling and CLI flags.
type ParseOptions struct {
	Extensions []string
	Sanitize   bool
	HardWraps  bool
	SafeMode   bool
	// NormalizeLiquid rewrites legacy {% highlight %} template blocks into
	// fenced code blocks before rendering. Corpora migrated between site
	// generators often carry both syntaxes.
	NormalizeLiquid bool
}

// CorpusService exposes the high-level corpus workflows: discovering posts
// under a `_posts/`-style directory, parsing them, and grouping draft
// revisions of the same article.
type CorpusService interface {
	Load(ctx context.Context, path string, opts LoadOptions) (*Post, error)
	LoadDirectory(ctx context.Context, dir string, opts LoadOptions) ([]*Post, error)
	Render(ctx context.Context, post *Post, opts ParseOptions) ([]byte, error)
	Revisions(ctx context.Context, dir string, opts LoadOptions) ([]*RevisionGroup, error)
}

// Post represents a single Markdown post file with parsed metadata. The
// struct is shared between the interfaces package and internal
// implementations so consumers can depend on a stable contract.
type Post struct {
	FilePath string
	// Slug is the canonical identifier for the article. Explicit front
	// matter slugs win over the filename-derived slug.
	Slug string
	// Date is the publication date: front matter date when present,
	// otherwise the date encoded in the filename.
	Date        time.Time
	FrontMatter FrontMatter
	// Body is the Markdown content with the front matter block removed.
	Body []byte
	// BodyHTML is populated lazily by Render.
	BodyHTML []byte
	// Excerpt holds the preview text up to the excerpt separator.
	Excerpt      []byte
	LastModified time.Time
	// Checksum stores a SHA-256 digest of the original file content so sync
	// workflows can detect changes without re-reading unchanged files.
	Checksum []byte
}

// FrontMatter models the metadata block at the top of a post. The named
// fields cover the keys consumed by Jekyll-style generators; everything else
// lands in Custom. Raw preserves the full decoded block for schema checks.
type FrontMatter struct {
	Layout           string         `yaml:"layout" json:"layout"`
	Title            string         `yaml:"title" json:"title"`
	Slug             string         `yaml:"slug" json:"slug"`
	Comments         bool           `yaml:"comments" json:"comments"`
	ExcerptSeparator string         `yaml:"excerpt_separator" json:"excerpt_separator"`
	Date             time.Time      `yaml:"date" json:"date"`
	Tags             []string       `yaml:"tags" json:"tags"`
	Categories       []string       `yaml:"categories" json:"categories"`
	Published        *bool          `yaml:"published" json:"published"`
	Custom           map[string]any `yaml:",inline" json:"custom"`
	Raw              map[string]any `yaml:"-" json:"raw"`
}

// IsPublished reports whether the post should appear in generated output.
// Posts are published unless front matter says otherwise, either through
// published: false or a draft layout.
func (fm FrontMatter) IsPublished() bool {
	if fm.Layout == "draft" {
		return false
	}
	if fm.Published == nil {
		return true
	}
	return *fm.Published
}

// RevisionGroup collects every draft revision of one article. Drafts share a
// slug; the canonical entry is the revision with the most recent date.
type RevisionGroup struct {
	Slug      string
	Canonical *Post
	Revisions []*Post
}

// LoadOptions fine-tunes how posts are discovered and parsed from disk.
type LoadOptions struct {
	Recursive *bool
	Pattern   string
	Parser    ParseOptions
	// Strict rejects files whose names do not follow the
	// YYYY-MM-DD-title.md convention instead of skipping them.
	Strict bool
}

// SyncOptions controls how corpus posts are reconciled into the index.
type SyncOptions struct {
	DryRun bool
	// DeleteOrphaned removes indexed posts whose source files disappeared.
	DeleteOrphaned bool
}

// SyncResult summarises a bulk sync run across the corpus.
type SyncResult struct {
	Created int
	Updated int
	Deleted int
	Skipped int
	Errors  []error
}
