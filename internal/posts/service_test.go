package posts

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-posts/pkg/interfaces"
)

func writeCorpus(t *testing.T, files map[string]string) string {
	t.Helper()

	base := t.TempDir()
	for name, content := range files {
		full := filepath.Join(base, name)
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", full, err)
		}
		if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", full, err)
		}
	}
	return base
}

func TestServiceLoadDirectoryRendersPosts(t *testing.T) {
	base := writeCorpus(t, map[string]string{
		"_posts/2024-06-01-hello.md": "---\nlayout: post\ntitle: Hello\n---\n# Hello\n\nWorld.\n",
		"_posts/2024-06-02-again.md": "---\nlayout: post\ntitle: Again\n---\nSecond post.\n",
	})

	svc, err := NewService(Config{BasePath: base, Recursive: true}, nil)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	loaded, err := svc.LoadDirectory(context.Background(), "_posts", interfaces.LoadOptions{})
	if err != nil {
		t.Fatalf("LoadDirectory: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("expected 2 posts, got %d", len(loaded))
	}
	if !strings.Contains(string(loaded[0].BodyHTML), "<h1") {
		t.Fatalf("expected rendered heading, got %q", string(loaded[0].BodyHTML))
	}
}

func TestServiceRevisionsGroupsDrafts(t *testing.T) {
	base := writeCorpus(t, map[string]string{
		"_posts/2024-06-01-topic.md": "---\nlayout: post\ntitle: Topic\n---\nDraft one.\n",
		"_posts/2024-06-09-topic.md": "---\nlayout: post\ntitle: Topic v2\n---\nDraft two.\n",
	})

	svc, err := NewService(Config{BasePath: base, Recursive: true}, nil)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	groups, err := svc.Revisions(context.Background(), "_posts", interfaces.LoadOptions{})
	if err != nil {
		t.Fatalf("Revisions: %v", err)
	}
	if len(groups) != 1 {
		t.Fatalf("expected a single revision group, got %d", len(groups))
	}
	if groups[0].Canonical.FrontMatter.Title != "Topic v2" {
		t.Fatalf("expected newest draft to be canonical, got %q", groups[0].Canonical.FrontMatter.Title)
	}
}

func TestServiceLiquidNormalization(t *testing.T) {
	base := writeCorpus(t, map[string]string{
		"_posts/2024-06-03-legacy.md": "---\nlayout: post\ntitle: Legacy\n---\n{% highlight go %}\nfunc main() {}\n{% endhighlight %}\n",
	})

	svc, err := NewService(Config{
		BasePath:  base,
		Recursive: true,
		Parser:    interfaces.ParseOptions{NormalizeLiquid: true},
	}, nil)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	post, err := svc.Load(context.Background(), "_posts/2024-06-03-legacy.md", interfaces.LoadOptions{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	html := string(post.BodyHTML)
	if !strings.Contains(html, "<code") {
		t.Fatalf("expected code block in rendered HTML: %q", html)
	}
	if strings.Contains(html, "{% highlight") {
		t.Fatalf("liquid markers should not survive rendering: %q", html)
	}
}

func TestServiceRejectsMissingBasePath(t *testing.T) {
	if _, err := NewService(Config{BasePath: "/definitely/not/here"}, nil); err == nil {
		t.Fatalf("expected error for missing base path")
	}
}
