package lint

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-posts/pkg/interfaces"
)

const (
	RuleFrontMatterParse     = "frontmatter/parse"
	RuleFrontMatterRequired  = "frontmatter/required"
	RuleFrontMatterDuplicate = "frontmatter/duplicate"
)

// parseRule reports files whose front matter block fails to decode.
type parseRule struct{}

func (parseRule) ID() string { return RuleFrontMatterParse }

func (parseRule) Check(_ context.Context, _ *Corpus, file *File) []interfaces.Issue {
	if file.ParseErr == nil {
		return nil
	}
	return []interfaces.Issue{{
		Rule:     RuleFrontMatterParse,
		Severity: interfaces.SeverityError,
		Path:     file.Path,
		Line:     1,
		Message:  fmt.Sprintf("front matter does not parse: %v", file.ParseErr),
	}}
}

// requiredRule enforces the metadata fields the site generator consumes.
type requiredRule struct{}

func (requiredRule) ID() string { return RuleFrontMatterRequired }

func (requiredRule) Check(_ context.Context, _ *Corpus, file *File) []interfaces.Issue {
	if file.Post == nil {
		return nil
	}

	fm := file.Post.FrontMatter
	fields := struct {
		Layout string
		Title  string
	}{
		Layout: strings.TrimSpace(fm.Layout),
		Title:  strings.TrimSpace(fm.Title),
	}

	err := validation.ValidateStruct(&fields,
		validation.Field(&fields.Layout, validation.Required.Error("layout is required")),
		validation.Field(&fields.Title, validation.Required.Error("title is required")),
	)
	if err == nil {
		return nil
	}

	issues := []interfaces.Issue{}
	if verrs, ok := err.(validation.Errors); ok {
		for _, field := range []string{"Layout", "Title"} {
			if ferr, ok := verrs[field]; ok {
				issues = append(issues, interfaces.Issue{
					Rule:     RuleFrontMatterRequired,
					Severity: interfaces.SeverityError,
					Path:     file.Path,
					Line:     1,
					Message:  ferr.Error(),
				})
			}
		}
		return issues
	}

	return []interfaces.Issue{{
		Rule:     RuleFrontMatterRequired,
		Severity: interfaces.SeverityError,
		Path:     file.Path,
		Line:     1,
		Message:  err.Error(),
	}}
}

// duplicateRule flags a second front matter block left behind by copy-paste
// draft duplication.
type duplicateRule struct{}

func (duplicateRule) ID() string { return RuleFrontMatterDuplicate }

func (duplicateRule) Check(_ context.Context, _ *Corpus, file *File) []interfaces.Issue {
	if file.Post == nil {
		return nil
	}

	body := bytes.TrimLeft(file.Post.Body, "\r\n")
	if !bytes.HasPrefix(body, []byte("---")) {
		return nil
	}
	rest := body[3:]
	closing := bytes.Index(rest, []byte("\n---"))
	if closing < 0 {
		return nil
	}
	// A stray horizontal rule is fine; require at least one key: value line
	// between the delimiters before calling it front matter.
	block := rest[:closing]
	if !bytes.Contains(block, []byte(":")) {
		return nil
	}

	offset := len(file.Source) - len(file.Post.Body) + (len(file.Post.Body) - len(body))
	return []interfaces.Issue{{
		Rule:     RuleFrontMatterDuplicate,
		Severity: interfaces.SeverityWarning,
		Path:     file.Path,
		Line:     lineOf(file.Source, offset),
		Message:  "duplicated front matter block after the opening block",
	}}
}
