package posts

import "bytes"

// DefaultExcerptSeparator is the marker used when front matter does not
// declare its own excerpt_separator.
const DefaultExcerptSeparator = "<!--more-->"

// ExtractExcerpt returns the preview portion of a post body: everything up
// to the excerpt separator. When the separator is absent the first paragraph
// serves as the excerpt.
func ExtractExcerpt(body []byte, separator string) []byte {
	if len(body) == 0 {
		return nil
	}
	if separator == "" {
		separator = DefaultExcerptSeparator
	}

	if idx := bytes.Index(body, []byte(separator)); idx >= 0 {
		return trimExcerpt(body[:idx])
	}

	return trimExcerpt(firstParagraph(body))
}

func firstParagraph(body []byte) []byte {
	trimmed := bytes.TrimLeft(body, "\r\n")
	for _, boundary := range [][]byte{[]byte("\n\n"), []byte("\r\n\r\n")} {
		if idx := bytes.Index(trimmed, boundary); idx >= 0 {
			return trimmed[:idx]
		}
	}
	return trimmed
}

func trimExcerpt(excerpt []byte) []byte {
	excerpt = bytes.TrimSpace(excerpt)
	if len(excerpt) == 0 {
		return nil
	}
	return excerpt
}
