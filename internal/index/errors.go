package index

import (
	"errors"
	"fmt"
)

var (
	ErrSlugRequired     = errors.New("index: slug is required")
	ErrChecksumRequired = errors.New("index: checksum is required")
	ErrPostIDRequired   = errors.New("index: post id is required")
	ErrNilGroup         = errors.New("index: revision group has no canonical post")
)

// NotFoundError is returned when an indexed resource cannot be located.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

// IsNotFound reports whether err wraps a NotFoundError.
func IsNotFound(err error) bool {
	var notFound *NotFoundError
	return errors.As(err, &notFound)
}
