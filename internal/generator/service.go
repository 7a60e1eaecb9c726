package generator

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"sort"
	"strings"
	"time"

	"github.com/goliatone/go-posts/internal/logging"
	"github.com/goliatone/go-posts/internal/markdown"
	"github.com/goliatone/go-posts/pkg/interfaces"
)

// Config carries the site-level settings for a build.
type Config struct {
	BaseURL         string
	OutputDir       string
	SiteTitle       string
	SiteDescription string
	// TemplateDir holds optional layout overrides named <layout>.html.tmpl.
	TemplateDir string
	FeedLimit   int
	Logger      interfaces.Logger
}

// BuildOptions tunes a single build run.
type BuildOptions struct {
	// Force rebuilds every page even when the manifest says it is unchanged.
	Force bool
	// IncludeUnpublished renders posts whose front matter sets published: false.
	IncludeUnpublished bool
}

// BuildResult summarises what a build produced.
type BuildResult struct {
	PagesWritten int
	PagesSkipped int
	FeedsWritten int
	Artifacts    int
	GeneratedAt  time.Time
	OutputDir    string
}

// RenderedPage is the internal record for one generated article page.
type RenderedPage struct {
	Slug         string
	Title        string
	Summary      string
	Route        string
	Permalink    string
	Output       string
	Layout       string
	Date         time.Time
	LastModified time.Time
	Checksum     string
}

// Service renders a corpus of revision groups into a static site: one page
// per canonical post, a listing page, feeds, sitemap, and robots.txt.
type Service struct {
	cfg       Config
	routes    *routes
	templates *templateSet
	writer    artifactWriter
	parser    interfaces.MarkdownParser
	logger    interfaces.Logger
	now       func() time.Time
}

// Option customises Service construction.
type Option func(*Service)

// WithWriter overrides the artifact writer, used by tests.
func WithWriter(writer artifactWriter) Option {
	return func(s *Service) {
		if writer != nil {
			s.writer = writer
		}
	}
}

// WithParser overrides the Markdown parser used for posts that arrive
// without rendered HTML.
func WithParser(parser interfaces.MarkdownParser) Option {
	return func(s *Service) {
		if parser != nil {
			s.parser = parser
		}
	}
}

// WithClock overrides the build timestamp source, used by tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService constructs a site generator from config.
func NewService(cfg Config, opts ...Option) (*Service, error) {
	templates, err := newTemplateSet(cfg.TemplateDir)
	if err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.NoOp()
	}

	svc := &Service{
		cfg:       cfg,
		routes:    newRoutes(strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")),
		templates: templates,
		writer:    newOSWriter(cfg.OutputDir),
		parser:    markdown.NewGoldmarkParser(interfaces.ParseOptions{}),
		logger:    logger,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// Build renders every canonical post in groups and the surrounding site
// artifacts. Unchanged pages are skipped based on the previous manifest
// unless opts.Force is set.
func (s *Service) Build(ctx context.Context, groups []*interfaces.RevisionGroup, opts BuildOptions) (*BuildResult, error) {
	generatedAt := s.now().UTC()
	result := &BuildResult{GeneratedAt: generatedAt, OutputDir: s.cfg.OutputDir}

	previous := newBuildManifest()
	if !opts.Force {
		if data, err := s.writer.ReadFile(ctx, manifestFileName); err == nil {
			if parsed, parseErr := parseManifest(data); parseErr == nil {
				previous = parsed
			}
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("generator: read manifest: %w", err)
		}
	}

	manifest := newBuildManifest()
	manifest.GeneratedAt = generatedAt

	site := SiteMetadata{
		Title:       s.cfg.SiteTitle,
		Description: s.cfg.SiteDescription,
		BaseURL:     strings.TrimRight(strings.TrimSpace(s.cfg.BaseURL), "/"),
	}
	build := BuildMetadata{GeneratedAt: generatedAt}

	sorted := make([]*interfaces.RevisionGroup, 0, len(groups))
	for _, group := range groups {
		if group == nil || group.Canonical == nil {
			continue
		}
		sorted = append(sorted, group)
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Canonical.Date.Equal(sorted[j].Canonical.Date) {
			return sorted[i].Slug < sorted[j].Slug
		}
		return sorted[i].Canonical.Date.After(sorted[j].Canonical.Date)
	})

	pages := []RenderedPage{}
	contexts := []*PostContext{}

	for _, group := range sorted {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		post := group.Canonical
		if !post.FrontMatter.IsPublished() && !opts.IncludeUnpublished {
			continue
		}

		postCtx, err := s.postContext(post)
		if err != nil {
			return nil, fmt.Errorf("generator: prepare post %s: %w", group.Slug, err)
		}
		contexts = append(contexts, postCtx)

		rendered, err := s.renderPage(site, build, postCtx)
		if err != nil {
			return nil, fmt.Errorf("generator: render post %s: %w", group.Slug, err)
		}

		page := RenderedPage{
			Slug:         postCtx.Slug,
			Title:        postCtx.Title,
			Summary:      string(postCtx.Excerpt),
			Route:        postCtx.Route,
			Permalink:    postCtx.Permalink,
			Output:       postOutputPath(postCtx.Route),
			Layout:       postCtx.Layout,
			Date:         postCtx.Date,
			LastModified: post.LastModified,
			Checksum:     computeHashFromString(rendered),
		}
		pages = append(pages, page)

		entry := manifestPage{
			Slug:       page.Slug,
			Route:      page.Route,
			Output:     page.Output,
			Layout:     page.Layout,
			Checksum:   page.Checksum,
			RenderedAt: generatedAt,
		}

		if prior, ok := previous.Pages[page.Route]; ok && prior.Checksum == page.Checksum && !opts.Force {
			entry.RenderedAt = prior.RenderedAt
			manifest.Pages[page.Route] = entry
			result.PagesSkipped++
			continue
		}
		manifest.Pages[page.Route] = entry

		if err := s.writeArtifact(ctx, page.Output, rendered, categoryPage, "text/html; charset=utf-8"); err != nil {
			return nil, err
		}
		result.PagesWritten++
	}

	indexHTML, err := s.renderIndex(site, build, contexts)
	if err != nil {
		return nil, fmt.Errorf("generator: render index: %w", err)
	}
	if err := s.writeArtifact(ctx, "index.html", indexHTML, categoryIndex, "text/html; charset=utf-8"); err != nil {
		return nil, err
	}
	result.Artifacts++

	items := buildFeedItems(pages, s.cfg.FeedLimit)

	rss := buildRSSFeed(site, items, generatedAt)
	if err := s.writeArtifact(ctx, "feed.xml", rss, categoryFeed, "application/rss+xml"); err != nil {
		return nil, err
	}
	result.FeedsWritten++

	atom := buildAtomFeed(site, items, generatedAt)
	if err := s.writeArtifact(ctx, "atom.xml", atom, categoryFeed, "application/atom+xml"); err != nil {
		return nil, err
	}
	result.FeedsWritten++

	sitemap := buildSitemap(site.BaseURL, pages, generatedAt)
	if err := s.writeArtifact(ctx, "sitemap.xml", sitemap, categorySitemap, "application/xml"); err != nil {
		return nil, err
	}
	result.Artifacts++

	robots := buildRobots(site.BaseURL, true)
	if err := s.writeArtifact(ctx, "robots.txt", robots, categoryRobots, "text/plain"); err != nil {
		return nil, err
	}
	result.Artifacts++

	encoded, err := manifest.encode()
	if err != nil {
		return nil, fmt.Errorf("generator: encode manifest: %w", err)
	}
	if err := s.writeArtifact(ctx, manifestFileName, string(encoded), categoryManifest, "application/json"); err != nil {
		return nil, err
	}
	result.Artifacts++

	s.logger.Info("generator.build.completed",
		"pages", result.PagesWritten,
		"skipped", result.PagesSkipped,
		"feeds", result.FeedsWritten,
		"artifacts", result.Artifacts,
	)

	return result, nil
}

func (s *Service) postContext(post *interfaces.Post) (*PostContext, error) {
	body := post.BodyHTML
	if len(body) == 0 {
		rendered, err := s.parser.Parse(post.Body)
		if err != nil {
			return nil, err
		}
		body = rendered
	}

	route := postRoute(post.Date, post.Slug)
	permalink, err := s.routes.PostURL(post.Date, post.Slug)
	if err != nil {
		permalink = absoluteURL(s.cfg.BaseURL, route)
	}

	excerpt := post.Excerpt
	if len(excerpt) == 0 {
		excerpt = post.Body
	}
	excerptHTML, err := s.parser.Parse(excerpt)
	if err != nil {
		return nil, err
	}

	return &PostContext{
		Title:       post.FrontMatter.Title,
		Slug:        post.Slug,
		Layout:      post.FrontMatter.Layout,
		Date:        post.Date,
		Route:       route,
		Permalink:   permalink,
		Comments:    post.FrontMatter.Comments,
		Tags:        post.FrontMatter.Tags,
		Categories:  post.FrontMatter.Categories,
		Content:     template.HTML(body),
		Excerpt:     template.HTML(excerptHTML),
		FrontMatter: post.FrontMatter.Raw,
	}, nil
}

func (s *Service) renderPage(site SiteMetadata, build BuildMetadata, post *PostContext) (string, error) {
	var buf bytes.Buffer
	err := s.templates.layout(post.Layout).Execute(&buf, TemplateContext{
		Site:  site,
		Build: build,
		Post:  post,
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (s *Service) renderIndex(site SiteMetadata, build BuildMetadata, posts []*PostContext) (string, error) {
	var buf bytes.Buffer
	err := s.templates.index().Execute(&buf, TemplateContext{
		Site:  site,
		Build: build,
		Posts: posts,
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (s *Service) writeArtifact(ctx context.Context, path, content string, category writeCategory, contentType string) error {
	return s.writer.WriteFile(ctx, writeFileRequest{
		Path:        path,
		Content:     strings.NewReader(content),
		Size:        int64(len(content)),
		Category:    category,
		ContentType: contentType,
		Checksum:    computeHashFromString(content),
	})
}

func computeHashFromString(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}
