package posts

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"
	"time"
)

func corpusFS() fstest.MapFS {
	return fstest.MapFS{
		"_posts/2024-01-02-first.md": &fstest.MapFile{
			Data:    []byte("---\nlayout: post\ntitle: First\n---\nFirst body.\n"),
			ModTime: time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC),
		},
		"_posts/2024-01-05-second.md": &fstest.MapFile{
			Data:    []byte("---\nlayout: post\ntitle: Second\n---\nSecond body.\n"),
			ModTime: time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC),
		},
		"_posts/notes.txt": &fstest.MapFile{
			Data: []byte("not a post"),
		},
		"_posts/about.md": &fstest.MapFile{
			Data: []byte("---\nlayout: page\ntitle: About\n---\nAbout body.\n"),
		},
		"_posts/drafts/2024-02-01-nested.md": &fstest.MapFile{
			Data: []byte("---\nlayout: post\ntitle: Nested\n---\nNested body.\n"),
		},
	}
}

func TestLoaderLoadFile(t *testing.T) {
	loader := NewLoader(corpusFS(), LoaderConfig{})

	result, err := loader.LoadFile(context.Background(), "_posts/2024-01-02-first.md", LoadParams{})
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	post := result.Post
	if post.Slug != "first" {
		t.Fatalf("unexpected slug: %q", post.Slug)
	}
	if len(post.Checksum) == 0 {
		t.Fatalf("expected checksum to be populated")
	}
	if post.FrontMatter.Title != "First" {
		t.Fatalf("unexpected title: %q", post.FrontMatter.Title)
	}
}

func TestLoaderLoadDirectorySkipsUnconventionalNames(t *testing.T) {
	loader := NewLoader(corpusFS(), LoaderConfig{Recursive: true})

	results, err := loader.LoadDirectory(context.Background(), "_posts", LoadParams{})
	if err != nil {
		t.Fatalf("LoadDirectory: %v", err)
	}

	// about.md and notes.txt are skipped; nested draft is included.
	if len(results) != 3 {
		t.Fatalf("expected 3 posts, got %d", len(results))
	}
	if results[0].Post.FilePath != "_posts/2024-01-02-first.md" {
		t.Fatalf("results not sorted by path: %q", results[0].Post.FilePath)
	}
}

func TestLoaderStrictModeRejectsUnconventionalNames(t *testing.T) {
	loader := NewLoader(corpusFS(), LoaderConfig{Recursive: true, Strict: true})

	_, err := loader.LoadDirectory(context.Background(), "_posts", LoadParams{})
	if !errors.Is(err, ErrInvalidFilename) {
		t.Fatalf("expected ErrInvalidFilename, got %v", err)
	}
}

func TestLoaderNonRecursiveStaysInRoot(t *testing.T) {
	loader := NewLoader(corpusFS(), LoaderConfig{Recursive: false})

	results, err := loader.LoadDirectory(context.Background(), "_posts", LoadParams{})
	if err != nil {
		t.Fatalf("LoadDirectory: %v", err)
	}
	for _, result := range results {
		if result.Post.FilePath == "_posts/drafts/2024-02-01-nested.md" {
			t.Fatalf("nested post should be excluded when recursion is off")
		}
	}
}

func TestLoaderHonoursContextCancellation(t *testing.T) {
	loader := NewLoader(corpusFS(), LoaderConfig{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := loader.LoadDirectory(ctx, "_posts", LoadParams{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
