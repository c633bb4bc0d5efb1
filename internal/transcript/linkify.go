package transcript

import (
	"regexp"
	"strings"
)

// urlPattern matches bare http(s) URLs plus URLs wrapped in square or
// angle brackets, as mail clients commonly emit them.
var urlPattern = regexp.MustCompile(`https?://[^\s<>\[\]]+|\[[^\]]*https?://[^\s<>\[\]]+\]|<[^>]*https?://[^\s<>\[\]]+>`)

// bracketStripper removes the wrapping punctuation around a detected URL.
var bracketStripper = strings.NewReplacer("[", "", "]", "", "<", "", ">", "")

// Segment is one run of display text. Link segments carry a URL; plain
// segments carry only text.
type Segment struct {
	Text string `json:"text,omitempty"`
	URL  string `json:"url,omitempty"`
}

// LinkifyText splits display text into plain and link segments. URLs keep
// their surrounding text intact, with wrapping brackets stripped from the
// link target itself.
func LinkifyText(text string) []Segment {
	matches := urlPattern.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		if text == "" {
			return []Segment{}
		}
		return []Segment{{Text: text}}
	}

	segments := make([]Segment, 0, len(matches)*2+1)
	prev := 0
	for _, loc := range matches {
		if loc[0] > prev {
			segments = append(segments, Segment{Text: text[prev:loc[0]]})
		}
		segments = append(segments, Segment{URL: bracketStripper.Replace(text[loc[0]:loc[1]])})
		prev = loc[1]
	}
	if prev < len(text) {
		segments = append(segments, Segment{Text: text[prev:]})
	}
	return segments
}
