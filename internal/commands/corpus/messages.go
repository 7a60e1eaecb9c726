package corpuscmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const syncCorpusMessageType = "posts.corpus.sync"

// SyncCorpusCommand reconciles the posts under Directory into the index.
type SyncCorpusCommand struct {
	// Directory selects the corpus root, typically a _posts directory.
	Directory string `json:"directory"`
	// Pattern narrows which files are loaded, defaulting to *.md.
	Pattern string `json:"pattern,omitempty"`
	// Strict rejects files that do not follow the YYYY-MM-DD-title naming convention.
	Strict bool `json:"strict,omitempty"`
	// DryRun collects the sync diff without persisting changes.
	DryRun bool `json:"dry_run,omitempty"`
	// DeleteOrphaned removes indexed records without matching corpus files.
	DeleteOrphaned bool `json:"delete_orphaned,omitempty"`
}

// Type implements command.Message.
func (SyncCorpusCommand) Type() string { return syncCorpusMessageType }

// Validate ensures directory input is present before handlers execute.
func (cmd SyncCorpusCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("posts.corpus.sync.directory_required", "directory is required")
			}
			return nil
		})),
	)
}
