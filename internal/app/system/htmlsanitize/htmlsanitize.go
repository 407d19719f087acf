// internal/app/system/htmlsanitize/htmlsanitize.go
package htmlsanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// strict removes every tag; free-text report and rating fields are plain
// text and must not carry markup into the store.
var strict = bluemonday.StrictPolicy()

// PlainText strips all markup from s and trims surrounding space. Entities
// produced by stripping are decoded again so ordinary punctuation ("&",
// quotes) survives, unless decoding would bring markup back.
func PlainText(s string) string {
	if s == "" {
		return ""
	}
	cleaned := strict.Sanitize(s)
	decoded := html.UnescapeString(cleaned)
	if !IsPlainText(decoded) {
		return strings.TrimSpace(cleaned)
	}
	return strings.TrimSpace(decoded)
}

// IsPlainText reports whether s contains nothing that looks like a tag,
// comment or doctype.
func IsPlainText(s string) bool {
	for i := 0; i < len(s)-1; i++ {
		if s[i] != '<' {
			continue
		}
		c := s[i+1]
		if c == '/' || c == '!' || c == '?' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
			return false
		}
	}
	return true
}

// Fields applies PlainText to each pointer in place.
func Fields(ptrs ...*string) {
	for _, p := range ptrs {
		if p != nil {
			*p = PlainText(*p)
		}
	}
}
