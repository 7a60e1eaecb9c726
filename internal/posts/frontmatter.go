package posts

import (
	"bytes"
	"fmt"
	"time"

	"github.com/adrg/frontmatter"

	"github.com/goliatone/go-posts/pkg/interfaces"
)

// ParseFrontMatter extracts metadata and Markdown body content from the
// provided source bytes. It returns the structured front matter, the Markdown
// body without delimiters, and any error encountered.
func ParseFrontMatter(source []byte) (interfaces.FrontMatter, []byte, error) {
	var meta frontMatterEnvelope

	reader := bytes.NewReader(source)
	body, err := frontmatter.Parse(reader, &meta)
	if err != nil {
		return interfaces.FrontMatter{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}

	return envelopeToFrontMatter(meta), body, nil
}

// BuildPost assembles an interfaces.Post from the supplied file path, raw
// content, and modification time. BodyHTML is intentionally left empty so
// callers can render lazily. The slug and date resolve front matter values
// against the filename convention.
func BuildPost(path string, source []byte, modified time.Time) (*interfaces.Post, error) {
	meta, body, err := ParseFrontMatter(source)
	if err != nil {
		return nil, err
	}

	post := &interfaces.Post{
		FilePath:     path,
		FrontMatter:  meta,
		Body:         body,
		LastModified: modified,
	}

	if name, err := ParseFilename(path); err == nil {
		post.Slug = name.Slug
		post.Date = name.Date
	}
	if slug := normalizeSlug(meta.Slug); slug != "" {
		post.Slug = slug
	}
	if !meta.Date.IsZero() {
		post.Date = meta.Date
	}

	post.Excerpt = ExtractExcerpt(body, meta.ExcerptSeparator)

	return post, nil
}

type frontMatterEnvelope struct {
	Layout           string         `yaml:"layout"`
	Title            string         `yaml:"title"`
	Slug             string         `yaml:"slug"`
	Comments         bool           `yaml:"comments"`
	ExcerptSeparator string         `yaml:"excerpt_separator"`
	Date             time.Time      `yaml:"date"`
	Tags             []string       `yaml:"tags"`
	Categories       []string       `yaml:"categories"`
	Published        *bool          `yaml:"published"`
	Custom           map[string]any `yaml:",inline"`
}

func envelopeToFrontMatter(env frontMatterEnvelope) interfaces.FrontMatter {
	if env.Custom == nil {
		env.Custom = map[string]any{}
	}

	raw := make(map[string]any, len(env.Custom)+8)
	for key, value := range env.Custom {
		raw[key] = value
	}

	if env.Layout != "" {
		raw["layout"] = env.Layout
	}
	if env.Title != "" {
		raw["title"] = env.Title
	}
	if env.Slug != "" {
		raw["slug"] = env.Slug
	}
	if env.ExcerptSeparator != "" {
		raw["excerpt_separator"] = env.ExcerptSeparator
	}
	if len(env.Tags) > 0 {
		raw["tags"] = append([]string(nil), env.Tags...)
	}
	if len(env.Categories) > 0 {
		raw["categories"] = append([]string(nil), env.Categories...)
	}
	if !env.Date.IsZero() {
		raw["date"] = env.Date
	}
	if env.Published != nil {
		raw["published"] = *env.Published
	}
	raw["comments"] = env.Comments

	return interfaces.FrontMatter{
		Layout:           env.Layout,
		Title:            env.Title,
		Slug:             env.Slug,
		Comments:         env.Comments,
		ExcerptSeparator: env.ExcerptSeparator,
		Date:             env.Date,
		Tags:             append([]string(nil), env.Tags...),
		Categories:       append([]string(nil), env.Categories...),
		Published:        env.Published,
		Custom:           cloneMap(env.Custom),
		Raw:              raw,
	}
}

func cloneMap(input map[string]any) map[string]any {
	if input == nil {
		return map[string]any{}
	}

	out := make(map[string]any, len(input))
	for key, value := range input {
		out[key] = value
	}
	return out
}
