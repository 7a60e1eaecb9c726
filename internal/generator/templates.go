package generator

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// SiteMetadata exposes site-wide information to templates.
type SiteMetadata struct {
	Title       string
	Description string
	BaseURL     string
}

// BuildMetadata surfaces build information to templates.
type BuildMetadata struct {
	GeneratedAt time.Time
}

// PostContext is the per-post data contract passed to layouts.
type PostContext struct {
	Title       string
	Slug        string
	Layout      string
	Date        time.Time
	Route       string
	Permalink   string
	Comments    bool
	Tags        []string
	Categories  []string
	Content     template.HTML
	Excerpt     template.HTML
	FrontMatter map[string]any
}

// TemplateContext is the root object every layout renders against. Post is
// set for article pages, Posts for the listing page.
type TemplateContext struct {
	Site  SiteMetadata
	Build BuildMetadata
	Post  *PostContext
	Posts []*PostContext
}

const (
	layoutPost  = "post"
	layoutIndex = "index"
)

const defaultPostLayout = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Post.Title}} · {{.Site.Title}}</title>
<link rel="canonical" href="{{.Post.Permalink}}">
</head>
<body>
<article>
<header>
<h1>{{.Post.Title}}</h1>
<time datetime="{{.Post.Date.Format "2006-01-02"}}">{{.Post.Date.Format "January 2, 2006"}}</time>
</header>
{{.Post.Content}}
</article>
</body>
</html>
`

const defaultIndexLayout = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Site.Title}}</title>
</head>
<body>
<main>
{{range .Posts}}
<article>
<h2><a href="{{.Route}}">{{.Title}}</a></h2>
<time datetime="{{.Date.Format "2006-01-02"}}">{{.Date.Format "January 2, 2006"}}</time>
{{.Excerpt}}
</article>
{{end}}
</main>
</body>
</html>
`

// templateSet resolves front matter layout names onto parsed templates.
// Unknown layouts fall back to the post layout so a stray `layout: note`
// still renders instead of failing the whole build.
type templateSet struct {
	layouts map[string]*template.Template
}

// newTemplateSet parses layouts from dir when provided, seeding the built-in
// post and index layouts first so custom directories only need to override
// what they change. Layout files are named <layout>.html.tmpl.
func newTemplateSet(dir string) (*templateSet, error) {
	set := &templateSet{layouts: map[string]*template.Template{}}

	for name, source := range map[string]string{
		layoutPost:  defaultPostLayout,
		layoutIndex: defaultIndexLayout,
	} {
		parsed, err := template.New(name).Parse(source)
		if err != nil {
			return nil, fmt.Errorf("generator: parse built-in layout %q: %w", name, err)
		}
		set.layouts[name] = parsed
	}

	dir = strings.TrimSpace(dir)
	if dir == "" {
		return set, nil
	}

	matches, err := filepath.Glob(filepath.Join(dir, "*.html.tmpl"))
	if err != nil {
		return nil, fmt.Errorf("generator: scan layout dir %s: %w", dir, err)
	}
	for _, match := range matches {
		name := strings.TrimSuffix(filepath.Base(match), ".html.tmpl")
		source, err := os.ReadFile(match)
		if err != nil {
			return nil, fmt.Errorf("generator: read layout %s: %w", match, err)
		}
		parsed, err := template.New(name).Parse(string(source))
		if err != nil {
			return nil, fmt.Errorf("generator: parse layout %s: %w", match, err)
		}
		set.layouts[name] = parsed
	}
	return set, nil
}

func (s *templateSet) layout(name string) *template.Template {
	name = strings.TrimSpace(name)
	if name != "" {
		if tmpl, ok := s.layouts[name]; ok {
			return tmpl
		}
	}
	return s.layouts[layoutPost]
}

func (s *templateSet) index() *template.Template {
	return s.layouts[layoutIndex]
}
