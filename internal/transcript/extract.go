package transcript

import (
	"regexp"
	"strings"
)

// replyHeaderPattern matches "On <date>, <person> wrote:" style attribution
// lines, including ones the sending client wrapped onto a second line.
var replyHeaderPattern = regexp.MustCompile(`(?mi)^On\s[\s\S]{0,200}?\bwrote:`)

// separatorMarkers are line prefixes that introduce quoted or forwarded
// history. Matched case-insensitively at the start of a line.
var separatorMarkers = []string{
	"-----original message-----",
	"begin forwarded message",
	"---------- forwarded message",
	"________",
}

// ExtractVisibleText returns the human-authored portion of a plain-text
// email body, discarding quoted/forwarded history. It cuts at the earliest
// boundary found: a reply attribution header, a quote line, or a provider
// separator. When no boundary exists the whole trimmed body is returned.
// Empty input and quote-only input both yield the empty string.
func ExtractVisibleText(rawBody string) string {
	body := strings.TrimSpace(rawBody)
	if body == "" {
		return ""
	}

	cut := len(body)

	if loc := replyHeaderPattern.FindStringIndex(body); loc != nil && loc[0] < cut {
		cut = loc[0]
	}

	if idx := firstMarkerIndex(body); idx >= 0 && idx < cut {
		cut = idx
	}

	if idx := firstQuoteLineIndex(body); idx >= 0 && idx < cut {
		cut = idx
	}

	return strings.TrimSpace(body[:cut])
}

// firstMarkerIndex returns the offset of the first line beginning with one
// of the known history separators, or -1.
func firstMarkerIndex(body string) int {
	offset := 0
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.ToLower(strings.TrimSpace(line))
		for _, marker := range separatorMarkers {
			if strings.HasPrefix(trimmed, marker) {
				return offset
			}
		}
		offset += len(line) + 1
	}
	return -1
}

// firstQuoteLineIndex returns the offset of the first ">"-quoted line, or -1.
func firstQuoteLineIndex(body string) int {
	offset := 0
	for _, line := range strings.Split(body, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), ">") {
			return offset
		}
		offset += len(line) + 1
	}
	return -1
}
