package transcript

import (
	"regexp"
	"strings"
)

// excessBlankLines matches runs of three or more newlines, possibly with
// interleaved whitespace.
var excessBlankLines = regexp.MustCompile(`(\n\s*){3,}`)

// FormatMessageText trims a message for display and collapses runs of
// blank lines down to a single blank line.
func FormatMessageText(text string) string {
	text = strings.TrimSpace(text)
	return excessBlankLines.ReplaceAllString(text, "\n\n")
}
