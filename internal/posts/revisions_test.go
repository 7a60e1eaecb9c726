package posts

import (
	"testing"
	"time"

	"github.com/goliatone/go-posts/pkg/interfaces"
)

func revision(path, slug, title string, date time.Time) *interfaces.Post {
	return &interfaces.Post{
		FilePath: path,
		Slug:     slug,
		Date:     date,
		FrontMatter: interfaces.FrontMatter{
			Title: title,
		},
	}
}

func TestGroupRevisionsPicksLatestDateAsCanonical(t *testing.T) {
	older := revision("_posts/2024-01-01-grid-search.md", "grid-search", "Grid Search", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	newer := revision("_posts/2024-02-10-grid-search.md", "grid-search", "Grid Search, Revisited", time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC))
	other := revision("_posts/2024-01-05-fw1-walkthrough.md", "fw1-walkthrough", "FW/1 Walkthrough", time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC))

	groups := GroupRevisions([]*interfaces.Post{newer, other, older})

	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	// Groups sort by slug.
	if groups[0].Slug != "fw1-walkthrough" || groups[1].Slug != "grid-search" {
		t.Fatalf("unexpected group order: %q, %q", groups[0].Slug, groups[1].Slug)
	}

	gridSearch := groups[1]
	if gridSearch.Canonical != newer {
		t.Fatalf("expected newest revision to be canonical, got %q", gridSearch.Canonical.FilePath)
	}
	if len(gridSearch.Revisions) != 2 {
		t.Fatalf("expected 2 revisions, got %d", len(gridSearch.Revisions))
	}
	if gridSearch.Revisions[0] != older {
		t.Fatalf("revisions should sort oldest first")
	}
}

func TestGroupRevisionsTieBreaksOnModTimeThenPath(t *testing.T) {
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	a := revision("_posts/2024-03-01-a.md", "same", "Same", date)
	a.LastModified = time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)
	b := revision("_posts/2024-03-01-b.md", "same", "Same", date)
	b.LastModified = time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)

	groups := GroupRevisions([]*interfaces.Post{a, b})
	if groups[0].Canonical != b {
		t.Fatalf("expected later-modified revision to be canonical")
	}
}

func TestTitleConflicts(t *testing.T) {
	date := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	drafts := []*interfaces.Post{
		revision("_posts/2024-04-01-x.md", "x", "Original Title", date),
		revision("_posts/2024-04-02-x.md", "x", "Edited Title", date.AddDate(0, 0, 1)),
		revision("_posts/2024-04-03-x.md", "x", "", date.AddDate(0, 0, 2)),
	}

	groups := GroupRevisions(drafts)
	conflicts := TitleConflicts(groups[0])
	if len(conflicts) != 2 {
		t.Fatalf("expected 2 distinct titles, got %v", conflicts)
	}
}
