package staticcmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const buildSiteMessageType = "posts.static.build"

// BuildSiteCommand renders the corpus under Directory into a static site.
type BuildSiteCommand struct {
	// Directory selects the corpus root, typically a _posts directory.
	Directory string `json:"directory"`
	// Pattern narrows which files are loaded, defaulting to *.md.
	Pattern string `json:"pattern,omitempty"`
	// Force rebuilds every page, ignoring the build manifest.
	Force bool `json:"force,omitempty"`
	// IncludeUnpublished renders posts whose front matter sets published: false.
	IncludeUnpublished bool `json:"include_unpublished,omitempty"`
}

// Type implements command.Message.
func (BuildSiteCommand) Type() string { return buildSiteMessageType }

// Validate ensures directory input is present before handlers execute.
func (cmd BuildSiteCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("posts.static.build.directory_required", "directory is required")
			}
			return nil
		})),
	)
}
