// Package markdown holds the ordered pattern-substitution rules that reduce
// provider output to plain prose. Rule order matters: code fences must go
// before inline code, bold before italic.
package markdown

import (
	"regexp"
	"strings"
)

// Rule is one (pattern -> replacement) substitution.
type Rule struct {
	Name        string
	Pattern     *regexp.Regexp
	Replacement string
}

func (r Rule) Apply(s string) string {
	return r.Pattern.ReplaceAllString(s, r.Replacement)
}

// StripRules remove structural markup while keeping the text it wraps.
var StripRules = []Rule{
	{"code-fence", regexp.MustCompile("(?s)```.*?```"), ""},
	{"html-comment", regexp.MustCompile(`(?s)<!--.*?-->`), ""},
	{"heading", regexp.MustCompile(`(?m)^#{1,6}\s+`), ""},
	{"bold-asterisk", regexp.MustCompile(`\*\*(.+?)\*\*`), "$1"},
	{"bold-underscore", regexp.MustCompile(`__(.+?)__`), "$1"},
	{"italic-asterisk", regexp.MustCompile(`\*(.+?)\*`), "$1"},
	{"italic-underscore", regexp.MustCompile(`\b_(.+?)_\b`), "$1"},
	{"image", regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`), ""},
	{"link", regexp.MustCompile(`\[(.+?)\]\([^)]*\)`), "$1"},
	{"inline-code", regexp.MustCompile("`(.+?)`"), "$1"},
	{"list-bullet", regexp.MustCompile(`(?m)^[-*+]\s+`), ""},
	{"list-number", regexp.MustCompile(`(?m)^\d+\.\s+`), ""},
	{"blockquote", regexp.MustCompile(`(?m)^>\s+`), ""},
	{"table-row", regexp.MustCompile(`(?m)^\|.*\|\s*$`), ""},
	{"horizontal-rule", regexp.MustCompile(`(?m)^-{3,}\s*$`), ""},
}

// ScrubRules remove promotional website noise that survives generation.
var ScrubRules = []Rule{
	{"stay-with-us", regexp.MustCompile(`(?i)stay with us[^.!]*[.!]`), ""},
	{"follow-us", regexp.MustCompile(`(?i)follow us[^.!]*[.!]`), ""},
	{"subscribe", regexp.MustCompile(`(?i)subscribe[^.!]*channel[^.!]*[.!]`), ""},
	{"newsletter", regexp.MustCompile(`(?i)join[^.!]*newsletter[^.!]*[.!]`), ""},
	{"google-news", regexp.MustCompile(`(?i)google news[^.!]*[.!]`), ""},
	{"source-credit", regexp.MustCompile(`(?i)(?:source|via):[^.!\n]*[.!]?`), ""},
	{"written-by", regexp.MustCompile(`(?i)written by[^.!\n]*[.!]?`), ""},
	{"share-this", regexp.MustCompile(`(?i)share this[^.!]*[.!]`), ""},
}

// Strip applies every strip rule in order, then normalizes whitespace.
func Strip(s string) string {
	for _, rule := range StripRules {
		s = rule.Apply(s)
	}
	return Normalize(s)
}

// Scrub applies every promotional-noise rule in order.
func Scrub(s string) string {
	for _, rule := range ScrubRules {
		s = rule.Apply(s)
	}
	return Normalize(s)
}

var (
	multiBlank     = regexp.MustCompile(`\n{3,}`)
	trailingSpace  = regexp.MustCompile(`[ \t]+\n`)
	leadingSpace   = regexp.MustCompile(`\n[ \t]+`)
	runsOfSpace    = regexp.MustCompile(`[ \t]{2,}`)
	spaceBeforeEnd = regexp.MustCompile(`[ \t]+$`)
)

// Normalize collapses blank-line runs to paragraph breaks and trims stray
// spaces without touching the paragraph structure itself.
func Normalize(s string) string {
	s = trailingSpace.ReplaceAllString(s, "\n")
	s = leadingSpace.ReplaceAllString(s, "\n")
	s = runsOfSpace.ReplaceAllString(s, " ")
	s = multiBlank.ReplaceAllString(s, "\n\n")
	s = spaceBeforeEnd.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// Paragraphs splits a body on blank lines, dropping empty segments.
func Paragraphs(body string) []string {
	var out []string
	for _, p := range regexp.MustCompile(`\n\n+`).Split(body, -1) {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// WordCount counts whitespace-delimited tokens after markup stripping.
func WordCount(body string) int {
	return len(strings.Fields(Strip(body)))
}
