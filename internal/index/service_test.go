package index

import (
	"context"
	"testing"
	"time"

	"github.com/goliatone/go-posts/pkg/interfaces"
)

func makeCorpusPost(path, slug, title, checksum string, date time.Time) *interfaces.Post {
	return &interfaces.Post{
		FilePath: path,
		Slug:     slug,
		Date:     date,
		FrontMatter: interfaces.FrontMatter{
			Layout: "post",
			Title:  title,
			Raw:    map[string]any{"layout": "post", "title": title},
		},
		Body:     []byte("body"),
		Checksum: []byte(checksum),
	}
}

func makeGroup(slug string, revisions ...*interfaces.Post) *interfaces.RevisionGroup {
	group := &interfaces.RevisionGroup{Slug: slug, Revisions: revisions}
	if len(revisions) > 0 {
		group.Canonical = revisions[len(revisions)-1]
	}
	return group
}

func newTestService() (*Service, *MemoryPostRepository, *MemoryRevisionRepository) {
	posts := NewMemoryPostRepository()
	revisions := NewMemoryRevisionRepository()
	return NewService(posts, revisions), posts, revisions
}

func TestSyncCreatesPostsAndRevisions(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	draft := makeCorpusPost("_posts/2024-01-01-topic.md", "topic", "Topic", "sum-1", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	final := makeCorpusPost("_posts/2024-02-01-topic.md", "topic", "Topic v2", "sum-2", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))

	result, err := svc.Sync(ctx, []*interfaces.RevisionGroup{makeGroup("topic", draft, final)}, interfaces.SyncOptions{})
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if result.Created != 3 {
		t.Fatalf("expected 1 post + 2 revisions created, got %d", result.Created)
	}
	if len(result.Errors) != 0 {
		t.Fatalf("unexpected sync errors: %v", result.Errors)
	}

	indexed, err := svc.GetPost(ctx, "topic")
	if err != nil {
		t.Fatalf("GetPost: %v", err)
	}
	if indexed.Title != "Topic v2" {
		t.Fatalf("index must mirror the canonical revision, got title %q", indexed.Title)
	}
	if indexed.FilePath != "_posts/2024-02-01-topic.md" {
		t.Fatalf("unexpected canonical path %q", indexed.FilePath)
	}

	revisions, err := svc.ListRevisions(ctx, indexed.ID)
	if err != nil {
		t.Fatalf("ListRevisions: %v", err)
	}
	if len(revisions) != 2 {
		t.Fatalf("expected 2 revision records, got %d", len(revisions))
	}
	if revisions[0].Canonical || !revisions[1].Canonical {
		t.Fatalf("canonical marker misplaced: %+v", revisions)
	}
}

func TestSyncSkipsUnchanged(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	group := makeGroup("topic",
		makeCorpusPost("_posts/2024-01-01-topic.md", "topic", "Topic", "sum-1", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
	)

	if _, err := svc.Sync(ctx, []*interfaces.RevisionGroup{group}, interfaces.SyncOptions{}); err != nil {
		t.Fatalf("first Sync: %v", err)
	}

	result, err := svc.Sync(ctx, []*interfaces.RevisionGroup{group}, interfaces.SyncOptions{})
	if err != nil {
		t.Fatalf("second Sync: %v", err)
	}
	if result.Created != 0 || result.Updated != 0 {
		t.Fatalf("unchanged corpus must not write, got %+v", result)
	}
	if result.Skipped != 2 {
		t.Fatalf("expected post and revision skipped, got %d", result.Skipped)
	}
}

func TestSyncUpdatesOnChecksumChange(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	date := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	original := makeGroup("topic", makeCorpusPost("_posts/2024-01-01-topic.md", "topic", "Topic", "sum-1", date))

	if _, err := svc.Sync(ctx, []*interfaces.RevisionGroup{original}, interfaces.SyncOptions{}); err != nil {
		t.Fatalf("first Sync: %v", err)
	}

	edited := makeGroup("topic", makeCorpusPost("_posts/2024-01-01-topic.md", "topic", "Topic", "sum-2", date))
	result, err := svc.Sync(ctx, []*interfaces.RevisionGroup{edited}, interfaces.SyncOptions{})
	if err != nil {
		t.Fatalf("second Sync: %v", err)
	}
	if result.Updated != 2 {
		t.Fatalf("expected post and revision updated, got %+v", result)
	}

	indexed, err := svc.GetPost(ctx, "topic")
	if err != nil {
		t.Fatalf("GetPost: %v", err)
	}
	if indexed.Checksum == "" || indexed.Checksum == "73756d2d31" {
		t.Fatalf("checksum was not refreshed: %q", indexed.Checksum)
	}
}

func TestSyncDeleteOrphaned(t *testing.T) {
	ctx := context.Background()
	svc, posts, _ := newTestService()

	date := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	keep := makeGroup("keep", makeCorpusPost("_posts/2024-01-01-keep.md", "keep", "Keep", "sum-k", date))
	drop := makeGroup("drop", makeCorpusPost("_posts/2024-01-02-drop.md", "drop", "Drop", "sum-d", date))

	if _, err := svc.Sync(ctx, []*interfaces.RevisionGroup{keep, drop}, interfaces.SyncOptions{}); err != nil {
		t.Fatalf("seed Sync: %v", err)
	}

	result, err := svc.Sync(ctx, []*interfaces.RevisionGroup{keep}, interfaces.SyncOptions{DeleteOrphaned: true})
	if err != nil {
		t.Fatalf("prune Sync: %v", err)
	}
	if result.Deleted != 2 {
		t.Fatalf("expected orphaned post and revision deleted, got %+v", result)
	}

	if _, err := svc.GetPost(ctx, "drop"); !IsNotFound(err) {
		t.Fatalf("expected drop to be gone, got %v", err)
	}
	remaining, err := posts.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(remaining) != 1 || remaining[0].Slug != "keep" {
		t.Fatalf("unexpected surviving posts: %+v", remaining)
	}
}

func TestSyncDryRunWritesNothing(t *testing.T) {
	ctx := context.Background()
	svc, posts, revisions := newTestService()

	group := makeGroup("topic",
		makeCorpusPost("_posts/2024-01-01-topic.md", "topic", "Topic", "sum-1", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
	)

	result, err := svc.Sync(ctx, []*interfaces.RevisionGroup{group}, interfaces.SyncOptions{DryRun: true})
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if result.Created != 2 {
		t.Fatalf("dry run should still report planned creates, got %+v", result)
	}

	if recs, _ := posts.List(ctx); len(recs) != 0 {
		t.Fatalf("dry run must not persist posts, found %d", len(recs))
	}
	if recs, _ := revisions.List(ctx); len(recs) != 0 {
		t.Fatalf("dry run must not persist revisions, found %d", len(recs))
	}
}

func TestSyncRejectsGroupWithoutCanonical(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	result, err := svc.Sync(ctx, []*interfaces.RevisionGroup{{Slug: "empty"}}, interfaces.SyncOptions{})
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if len(result.Errors) != 1 {
		t.Fatalf("expected one group error, got %v", result.Errors)
	}
}
