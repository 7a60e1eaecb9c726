package interfaces

import "context"

// Severity grades lint findings. Errors should fail CI runs; warnings and
// informational findings are advisory.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Issue captures a single lint finding against a corpus file.
type Issue struct {
	Rule     string   `json:"rule"`
	Severity Severity `json:"severity"`
	Path     string   `json:"path"`
	// Line is 1-based; zero means the finding applies to the whole file.
	Line    int    `json:"line,omitempty"`
	Message string `json:"message"`
}

// Report aggregates lint findings for a corpus run. Issues are sorted by
// path, line, and rule so repeated runs produce identical output.
type Report struct {
	Issues []Issue `json:"issues"`
}

// HasErrors reports whether any finding carries the error severity.
func (r Report) HasErrors() bool {
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Count returns the number of findings at the given severity.
func (r Report) Count(severity Severity) int {
	total := 0
	for _, issue := range r.Issues {
		if issue.Severity == severity {
			total++
		}
	}
	return total
}

// Linter runs content rules against a loaded corpus.
type Linter interface {
	LintDirectory(ctx context.Context, dir string, opts LintOptions) (*Report, error)
}

// LintOptions selects and tunes the rules applied during a run.
type LintOptions struct {
	// Disabled lists rule IDs to skip.
	Disabled []string
	// Schema holds an optional JSON schema applied to each front matter
	// block by the frontmatter/schema rule.
	Schema []byte
	Load   LoadOptions
}
