package generator

import (
	"fmt"
	"time"

	urlkit "github.com/goliatone/go-urlkit"
)

const routeGroupSite = "site"

// routes builds absolute URLs for generated artifacts through go-urlkit so
// permalinks stay consistent between pages, feeds, and the sitemap.
type routes struct {
	manager *urlkit.RouteManager
}

func newRoutes(baseURL string) *routes {
	manager := urlkit.NewRouteManager(&urlkit.Config{
		Groups: []urlkit.GroupConfig{
			{
				Name:    routeGroupSite,
				BaseURL: baseURL,
				Paths: map[string]string{
					"post":    "/:year/:month/:day/:slug/",
					"home":    "/",
					"feed":    "/feed.xml",
					"atom":    "/atom.xml",
					"sitemap": "/sitemap.xml",
				},
			},
		},
	})
	return &routes{manager: manager}
}

// PostURL returns the absolute permalink for a post published on date.
func (r *routes) PostURL(date time.Time, slug string) (string, error) {
	builder, err := r.builder("post")
	if err != nil {
		return "", err
	}
	builder.WithParam("year", date.Format("2006"))
	builder.WithParam("month", date.Format("01"))
	builder.WithParam("day", date.Format("02"))
	builder.WithParam("slug", slug)
	return builder.Build()
}

// URL returns the absolute URL for a fixed route such as "feed" or "sitemap".
func (r *routes) URL(route string) (string, error) {
	builder, err := r.builder(route)
	if err != nil {
		return "", err
	}
	return builder.Build()
}

// The route manager panics on unknown groups and routes, so lookups are
// fenced the same way the rest of this codebase fences urlkit calls.
func (r *routes) builder(route string) (builder *urlkit.Builder, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("generator: route %q not registered: %v", route, rec)
		}
	}()
	builder = r.manager.Group(routeGroupSite).Builder(route)
	return builder, err
}
