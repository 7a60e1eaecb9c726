package lintcmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const lintCorpusMessageType = "posts.lint.run"

// LintCorpusCommand runs the lint rule set over the posts under Directory.
type LintCorpusCommand struct {
	// Directory selects the corpus root, typically a _posts directory.
	Directory string `json:"directory"`
	// Pattern narrows which files are linted, defaulting to *.md.
	Pattern string `json:"pattern,omitempty"`
	// Disabled lists rule IDs excluded from this run.
	Disabled []string `json:"disabled,omitempty"`
	// FailOn sets the severity that makes the run fail: "error" (default) or "warning".
	FailOn string `json:"fail_on,omitempty"`
}

// Type implements command.Message.
func (LintCorpusCommand) Type() string { return lintCorpusMessageType }

// Validate ensures directory input is present and the severity threshold is known.
func (cmd LintCorpusCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("posts.lint.run.directory_required", "directory is required")
			}
			return nil
		})),
		validation.Field(&cmd.FailOn, validation.In("", "error", "warning")),
	)
}
