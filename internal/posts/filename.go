package posts

import (
	"errors"
	"fmt"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/goliatone/go-slug"
)

// ErrInvalidFilename indicates a file that does not follow the
// YYYY-MM-DD-title.md naming convention.
var ErrInvalidFilename = errors.New("posts: filename does not match YYYY-MM-DD-title convention")

var filenamePattern = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})-(.+)$`)

// Filename captures the components encoded in a post file name.
type Filename struct {
	Date time.Time
	Slug string
}

// ParseFilename decodes the date and slug from a `YYYY-MM-DD-title.md` file
// name. The path may include directories; only the base name is inspected.
// Dates must be real calendar dates, so `2024-02-30-foo.md` is rejected.
func ParseFilename(filePath string) (Filename, error) {
	base := path.Base(strings.ReplaceAll(filePath, "\\", "/"))
	ext := path.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	matches := filenamePattern.FindStringSubmatch(stem)
	if matches == nil {
		return Filename{}, fmt.Errorf("%w: %s", ErrInvalidFilename, base)
	}

	date, err := time.Parse("2006-01-02", matches[1]+"-"+matches[2]+"-"+matches[3])
	if err != nil {
		return Filename{}, fmt.Errorf("%w: %s", ErrInvalidFilename, base)
	}

	title := strings.Trim(matches[4], "-")
	if title == "" {
		return Filename{}, fmt.Errorf("%w: %s", ErrInvalidFilename, base)
	}

	return Filename{
		Date: date,
		Slug: normalizeSlug(title),
	}, nil
}

// normalizeSlug applies the shared slug normalization rules, falling back to
// a lowercased, dash-separated form when the normalizer rejects the input.
func normalizeSlug(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	if normalized, err := slug.Normalize(value); err == nil && normalized != "" {
		return normalized
	}
	return strings.ReplaceAll(strings.ToLower(value), " ", "-")
}
