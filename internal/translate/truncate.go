package translate

import (
	"strings"
	"unicode/utf8"
)

const ellipsis = "…"

// TruncateAtBoundary shortens s to at most max runes. It prefers cutting at
// the last sentence end inside the limit; failing that it cuts at the last
// word boundary and appends an ellipsis, since the cut lands mid-sentence.
func TruncateAtBoundary(s string, max int) string {
	s = strings.TrimSpace(s)
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}

	runes := []rune(s)
	window := string(runes[:max])

	if cut := lastSentenceEnd(window); cut > 0 {
		return strings.TrimSpace(window[:cut])
	}

	if cut := strings.LastIndex(window, " "); cut > 0 {
		return strings.TrimSpace(window[:cut]) + ellipsis
	}

	// No boundary at all inside the window; hard cut.
	return strings.TrimSpace(window) + ellipsis
}

// lastSentenceEnd returns the byte offset just past the final sentence
// terminator in s, or 0 when s holds no complete sentence.
func lastSentenceEnd(s string) int {
	end := 0
	for i, r := range s {
		switch r {
		case '.', '!', '?':
			end = i + utf8.RuneLen(r)
		}
	}
	return end
}
