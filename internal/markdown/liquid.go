package markdown

import (
	"regexp"
	"strings"
)

var (
	highlightOpen  = regexp.MustCompile(`^\s*\{%\s*highlight\s+([A-Za-z0-9_+#-]+)(?:\s+\S+)*\s*%\}\s*$`)
	highlightClose = regexp.MustCompile(`^\s*\{%\s*endhighlight\s*%\}\s*$`)
	rawMarker      = regexp.MustCompile(`\{%\s*(?:raw|endraw)\s*%\}`)
)

// NormalizeLiquid rewrites Liquid template blocks left over from older site
// generators into plain Markdown. `{% highlight lang %}` pairs become fenced
// code blocks and `{% raw %}` markers are stripped. Content inside fenced
// code blocks is left untouched so posts documenting Liquid itself survive.
func NormalizeLiquid(source []byte) []byte {
	lines := strings.Split(string(source), "\n")
	out := make([]string, 0, len(lines))

	inFence := false
	inHighlight := false

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if !inHighlight && strings.HasPrefix(trimmed, "```") {
			inFence = !inFence
			out = append(out, line)
			continue
		}

		if inFence {
			out = append(out, line)
			continue
		}

		if !inHighlight {
			if match := highlightOpen.FindStringSubmatch(line); match != nil {
				inHighlight = true
				out = append(out, "```"+strings.ToLower(match[1]))
				continue
			}
		} else if highlightClose.MatchString(line) {
			inHighlight = false
			out = append(out, "```")
			continue
		}

		if !inHighlight {
			line = rawMarker.ReplaceAllString(line, "")
		}
		out = append(out, line)
	}

	// An unterminated highlight block still needs its fence closed so the
	// rendered HTML does not swallow the rest of the document.
	if inHighlight {
		out = append(out, "```")
	}

	return []byte(strings.Join(out, "\n"))
}
