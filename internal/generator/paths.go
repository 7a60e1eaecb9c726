package generator

import (
	"path"
	"strings"
	"time"
)

// postRoute returns the site-relative pretty URL for a post, mirroring the
// /YYYY/MM/DD/slug/ permalink scheme used by date-named corpus files.
func postRoute(date time.Time, slug string) string {
	return "/" + path.Join(date.Format("2006"), date.Format("01"), date.Format("02"), slug) + "/"
}

// postOutputPath maps a route onto the index.html file that serves it.
func postOutputPath(route string) string {
	clean := strings.Trim(strings.TrimSpace(route), "/")
	if clean == "" {
		return "index.html"
	}
	return path.Join(clean, "index.html")
}

func absoluteURL(baseURL, route string) string {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		base = "http://localhost"
	}
	route = strings.TrimSpace(route)
	if route == "" {
		route = "/"
	}
	if !strings.HasPrefix(route, "/") {
		route = "/" + route
	}
	return base + route
}
