package lint

import (
	"context"
	"regexp"
	"strings"

	"github.com/goliatone/go-posts/pkg/interfaces"
)

const RuleBodyFences = "body/fences"

var (
	fenceLine      = regexp.MustCompile("^(```|~~~)")
	liquidOpenLine = regexp.MustCompile(`^\s*\{%\s*highlight(\s|%)`)
	liquidEndLine  = regexp.MustCompile(`^\s*\{%\s*endhighlight\s*%\}`)
)

// fencesRule verifies that every fenced code block and legacy
// {% highlight %} block is closed before the file ends.
type fencesRule struct{}

func (fencesRule) ID() string { return RuleBodyFences }

func (fencesRule) Check(_ context.Context, _ *Corpus, file *File) []interfaces.Issue {
	lines := strings.Split(string(file.Source), "\n")

	var issues []interfaces.Issue

	openFence := ""
	openFenceLine := 0
	openHighlightLine := 0

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)

		if openHighlightLine == 0 {
			if marker := fenceLine.FindString(trimmed); marker != "" {
				if openFence == "" {
					openFence = marker
					openFenceLine = i + 1
				} else if marker == openFence {
					openFence = ""
					openFenceLine = 0
				}
				continue
			}
		}

		if openFence != "" {
			continue
		}

		if liquidEndLine.MatchString(line) {
			if openHighlightLine == 0 {
				issues = append(issues, interfaces.Issue{
					Rule:     RuleBodyFences,
					Severity: interfaces.SeverityError,
					Path:     file.Path,
					Line:     i + 1,
					Message:  "endhighlight without a matching highlight block",
				})
				continue
			}
			openHighlightLine = 0
			continue
		}
		if liquidOpenLine.MatchString(line) {
			if openHighlightLine != 0 {
				issues = append(issues, interfaces.Issue{
					Rule:     RuleBodyFences,
					Severity: interfaces.SeverityError,
					Path:     file.Path,
					Line:     openHighlightLine,
					Message:  "highlight block is never closed",
				})
			}
			openHighlightLine = i + 1
		}
	}

	if openFence != "" {
		issues = append(issues, interfaces.Issue{
			Rule:     RuleBodyFences,
			Severity: interfaces.SeverityError,
			Path:     file.Path,
			Line:     openFenceLine,
			Message:  "code fence is never closed",
		})
	}
	if openHighlightLine != 0 {
		issues = append(issues, interfaces.Issue{
			Rule:     RuleBodyFences,
			Severity: interfaces.SeverityError,
			Path:     file.Path,
			Line:     openHighlightLine,
			Message:  "highlight block is never closed",
		})
	}

	return issues
}
