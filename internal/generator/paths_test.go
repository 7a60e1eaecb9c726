package generator

import (
	"testing"
	"time"
)

func TestPostRoute(t *testing.T) {
	date := time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC)
	if got := postRoute(date, "embedding-sqlite"); got != "/2024/03/08/embedding-sqlite/" {
		t.Fatalf("unexpected route %q", got)
	}
}

func TestPostOutputPath(t *testing.T) {
	cases := []struct {
		route string
		want  string
	}{
		{"/2024/03/08/embedding-sqlite/", "2024/03/08/embedding-sqlite/index.html"},
		{"/", "index.html"},
		{"", "index.html"},
	}
	for _, tc := range cases {
		if got := postOutputPath(tc.route); got != tc.want {
			t.Fatalf("postOutputPath(%q) = %q, want %q", tc.route, got, tc.want)
		}
	}
}

func TestAbsoluteURL(t *testing.T) {
	if got := absoluteURL("https://blog.example.com/", "2024/01/01/a/"); got != "https://blog.example.com/2024/01/01/a/" {
		t.Fatalf("unexpected url %q", got)
	}
	if got := absoluteURL("", "/about/"); got != "http://localhost/about/" {
		t.Fatalf("expected localhost fallback, got %q", got)
	}
}

func TestBuildRobotsIncludesSitemap(t *testing.T) {
	robots := buildRobots("https://blog.example.com", true)
	if robots != "User-agent: *\nAllow: /\n\nSitemap: https://blog.example.com/sitemap.xml\n" {
		t.Fatalf("unexpected robots body: %q", robots)
	}
}

func TestBuildFeedItemsCapsAndSorts(t *testing.T) {
	pages := []RenderedPage{}
	for day := 1; day <= 60; day++ {
		date := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, day)
		pages = append(pages, RenderedPage{
			Title:     "Post",
			Permalink: date.Format("https://blog.example.com/2006/01/02/post/"),
			Date:      date,
		})
	}

	items := buildFeedItems(pages, 0)
	if len(items) != maxFeedItems {
		t.Fatalf("expected feed capped at %d items, got %d", maxFeedItems, len(items))
	}
	if items[0].PublishedAt.Before(items[1].PublishedAt) {
		t.Fatalf("feed items must be newest first")
	}
}
