package lint

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-posts/internal/posts"
	"github.com/goliatone/go-posts/pkg/interfaces"
)

const (
	RuleFileName       = "file/name"
	RuleRevisionsTitle = "revisions/title"
)

// filenameRule enforces the `YYYY-MM-DD-title.md` naming convention.
type filenameRule struct{}

func (filenameRule) ID() string { return RuleFileName }

func (filenameRule) Check(_ context.Context, _ *Corpus, file *File) []interfaces.Issue {
	if _, err := posts.ParseFilename(file.Path); err == nil {
		return nil
	}
	return []interfaces.Issue{{
		Rule:     RuleFileName,
		Severity: interfaces.SeverityError,
		Path:     file.Path,
		Message:  "file name must follow YYYY-MM-DD-title.md with a valid date",
	}}
}

// revisionTitlesRule surfaces draft revisions of one article whose titles
// drifted apart during editing.
type revisionTitlesRule struct{}

func (revisionTitlesRule) ID() string { return RuleRevisionsTitle }

func (revisionTitlesRule) CheckCorpus(_ context.Context, corpus *Corpus) []interfaces.Issue {
	var issues []interfaces.Issue

	for _, group := range corpus.Groups {
		if len(group.Revisions) < 2 {
			continue
		}
		titles := posts.TitleConflicts(group)
		if len(titles) < 2 {
			continue
		}
		issues = append(issues, interfaces.Issue{
			Rule:     RuleRevisionsTitle,
			Severity: interfaces.SeverityWarning,
			Path:     group.Canonical.FilePath,
			Message: fmt.Sprintf("draft revisions of %q disagree on title: %s",
				group.Slug, strings.Join(titles, " / ")),
		})
	}

	return issues
}
