package generator

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

const maxFeedItems = 50

type feedItem struct {
	Title       string
	Summary     string
	Link        string
	GUID        string
	PublishedAt time.Time
	UpdatedAt   time.Time
}

func buildFeedItems(pages []RenderedPage, limit int) []feedItem {
	if limit <= 0 || limit > maxFeedItems {
		limit = maxFeedItems
	}

	items := make([]feedItem, 0, len(pages))
	seen := map[string]struct{}{}
	for _, page := range pages {
		if _, ok := seen[page.Permalink]; ok {
			continue
		}
		seen[page.Permalink] = struct{}{}

		updated := page.LastModified
		if updated.IsZero() {
			updated = page.Date
		}
		items = append(items, feedItem{
			Title:       page.Title,
			Summary:     page.Summary,
			Link:        page.Permalink,
			GUID:        page.Permalink,
			PublishedAt: page.Date,
			UpdatedAt:   updated,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].PublishedAt.Equal(items[j].PublishedAt) {
			return items[i].GUID < items[j].GUID
		}
		return items[i].PublishedAt.After(items[j].PublishedAt)
	})
	if len(items) > limit {
		items = append([]feedItem(nil), items[:limit]...)
	}
	return items
}

func buildRSSFeed(site SiteMetadata, items []feedItem, generatedAt time.Time) string {
	base := strings.TrimRight(strings.TrimSpace(site.BaseURL), "/")
	if base == "" {
		base = "http://localhost"
	}

	var builder strings.Builder
	builder.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	builder.WriteString(`<rss version="2.0" xmlns:atom="http://www.w3.org/2005/Atom">` + "\n")
	builder.WriteString("<channel>\n")
	builder.WriteString(fmt.Sprintf("  <title>%s</title>\n", escapeXML(site.Title)))
	builder.WriteString(fmt.Sprintf("  <link>%s</link>\n", escapeXML(base)))
	builder.WriteString(fmt.Sprintf("  <description>%s</description>\n", escapeXML(site.Description)))
	builder.WriteString(fmt.Sprintf("  <lastBuildDate>%s</lastBuildDate>\n", generatedAt.UTC().Format(time.RFC1123Z)))
	builder.WriteString(fmt.Sprintf(`  <atom:link href="%s/feed.xml" rel="self" type="application/rss+xml" />`+"\n", escapeXMLAttr(base)))
	for _, item := range items {
		builder.WriteString("  <item>\n")
		builder.WriteString(fmt.Sprintf("    <title>%s</title>\n", escapeXML(item.Title)))
		builder.WriteString(fmt.Sprintf("    <link>%s</link>\n", escapeXML(item.Link)))
		builder.WriteString(fmt.Sprintf(`    <guid isPermaLink="true">%s</guid>`+"\n", escapeXML(item.GUID)))
		if !item.PublishedAt.IsZero() {
			builder.WriteString(fmt.Sprintf("    <pubDate>%s</pubDate>\n", item.PublishedAt.UTC().Format(time.RFC1123Z)))
		}
		if summary := strings.TrimSpace(item.Summary); summary != "" {
			builder.WriteString(fmt.Sprintf("    <description>%s</description>\n", escapeXML(summary)))
		}
		builder.WriteString("  </item>\n")
	}
	builder.WriteString("</channel>\n")
	builder.WriteString("</rss>\n")
	return builder.String()
}

func buildAtomFeed(site SiteMetadata, items []feedItem, generatedAt time.Time) string {
	base := strings.TrimRight(strings.TrimSpace(site.BaseURL), "/")
	if base == "" {
		base = "http://localhost"
	}
	feedID := base + "/atom.xml"

	var builder strings.Builder
	builder.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	builder.WriteString(`<feed xmlns="http://www.w3.org/2005/Atom">` + "\n")
	builder.WriteString(fmt.Sprintf("  <id>%s</id>\n", escapeXML(feedID)))
	builder.WriteString(fmt.Sprintf("  <title>%s</title>\n", escapeXML(site.Title)))
	builder.WriteString(fmt.Sprintf("  <updated>%s</updated>\n", generatedAt.UTC().Format(time.RFC3339)))
	builder.WriteString(fmt.Sprintf(`  <link rel="alternate" href="%s" />`+"\n", escapeXMLAttr(base)))
	builder.WriteString(fmt.Sprintf(`  <link rel="self" href="%s" />`+"\n", escapeXMLAttr(feedID)))
	for _, item := range items {
		builder.WriteString("  <entry>\n")
		builder.WriteString(fmt.Sprintf("    <id>%s</id>\n", escapeXML(item.GUID)))
		builder.WriteString(fmt.Sprintf("    <title>%s</title>\n", escapeXML(item.Title)))
		builder.WriteString(fmt.Sprintf(`    <link rel="alternate" href="%s" />`+"\n", escapeXMLAttr(item.Link)))
		if !item.PublishedAt.IsZero() {
			builder.WriteString(fmt.Sprintf("    <published>%s</published>\n", item.PublishedAt.UTC().Format(time.RFC3339)))
		}
		updated := item.UpdatedAt
		if updated.IsZero() {
			updated = generatedAt
		}
		builder.WriteString(fmt.Sprintf("    <updated>%s</updated>\n", updated.UTC().Format(time.RFC3339)))
		if summary := strings.TrimSpace(item.Summary); summary != "" {
			builder.WriteString(fmt.Sprintf(`    <summary type="html">%s</summary>`+"\n", escapeXML(summary)))
		}
		builder.WriteString("  </entry>\n")
	}
	builder.WriteString("</feed>\n")
	return builder.String()
}

func escapeXML(value string) string {
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
	)
	return replacer.Replace(value)
}

func escapeXMLAttr(value string) string {
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
	)
	return replacer.Replace(value)
}
