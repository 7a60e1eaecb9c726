package markdown

import (
	"strings"
	"testing"
)

func TestNormalizeLiquidHighlightBlocks(t *testing.T) {
	source := "intro\n{% highlight go %}\nfunc main() {}\n{% endhighlight %}\noutro\n"

	got := string(NormalizeLiquid([]byte(source)))

	if !strings.Contains(got, "```go\nfunc main() {}\n```") {
		t.Fatalf("highlight block not converted: %q", got)
	}
	if strings.Contains(got, "{%") {
		t.Fatalf("liquid markers should be gone: %q", got)
	}
}

func TestNormalizeLiquidKeepsExtraHighlightArgs(t *testing.T) {
	source := "{% highlight ruby linenos %}\nputs 1\n{% endhighlight %}\n"

	got := string(NormalizeLiquid([]byte(source)))
	if !strings.HasPrefix(got, "```ruby\n") {
		t.Fatalf("language should survive extra arguments: %q", got)
	}
}

func TestNormalizeLiquidStripsRawMarkers(t *testing.T) {
	source := "{% raw %}{{ value }}{% endraw %}\n"

	got := string(NormalizeLiquid([]byte(source)))
	if strings.Contains(got, "raw") {
		t.Fatalf("raw markers should be stripped: %q", got)
	}
	if !strings.Contains(got, "{{ value }}") {
		t.Fatalf("inner content must survive: %q", got)
	}
}

func TestNormalizeLiquidLeavesFencedBlocksAlone(t *testing.T) {
	source := "```\n{% highlight go %}\n```\n"

	got := string(NormalizeLiquid([]byte(source)))
	if got != source {
		t.Fatalf("fenced content should be untouched: %q", got)
	}
}

func TestNormalizeLiquidClosesUnterminatedBlock(t *testing.T) {
	source := "{% highlight go %}\nfunc main() {}\n"

	got := string(NormalizeLiquid([]byte(source)))
	if !strings.HasSuffix(got, "```") {
		t.Fatalf("unterminated block should be closed: %q", got)
	}
}
