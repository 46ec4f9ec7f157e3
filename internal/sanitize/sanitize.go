// Package sanitize cleans swatch names arriving from MCP clients before they
// are stored and echoed back into agent context.
package sanitize

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/nvandessel/chromaroot/internal/constants"
)

var (
	// reXMLTag matches XML/HTML tags, with attributes or self-closing, and
	// processing instructions like <?xml ...?>.
	reXMLTag = regexp.MustCompile(`<[/?!]?[a-zA-Z][a-zA-Z0-9]*(?:\s+[^>]*)?/?>|<\?[^?]*\?>`)

	// reBackticks matches runs of backticks used for code fences.
	reBackticks = regexp.MustCompile("`+")

	reWhitespace = regexp.MustCompile(`\s+`)
)

// SwatchName strips control characters, markup tags and backticks from a
// name, collapses whitespace runs to one space, trims the result and
// truncates it to constants.MaxSwatchNameLen bytes on a rune boundary.
// The result may be empty; callers still validate it.
func SwatchName(input string) string {
	if input == "" {
		return ""
	}

	s := stripControlChars(input)
	s = reXMLTag.ReplaceAllString(s, "")
	s = reBackticks.ReplaceAllString(s, "")
	s = reWhitespace.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)

	return truncate(s, constants.MaxSwatchNameLen)
}

// stripControlChars removes control characters, including newlines and tabs,
// which are replaced by a space so adjacent words stay apart.
func stripControlChars(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '\n' || r == '\t' || r == '\r':
			b.WriteByte(' ')
		case unicode.IsControl(r):
			continue
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	s = s[:n]
	for len(s) > 0 && !utf8.ValidString(s) {
		s = s[:len(s)-1]
	}
	return strings.TrimSpace(s)
}
