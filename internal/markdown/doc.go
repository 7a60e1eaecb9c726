// Package markdown renders post bodies into HTML. It wraps goldmark with a
// named extension registry and normalises legacy Liquid template blocks so
// corpora migrated between site generators render consistently.
package markdown
