package processor

import (
	"regexp"
	"strings"
)

// Stop-words across both publication locales plus generic filler that makes
// image-search queries unfocused.
var stopWords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		// English
		"the", "a", "an", "and", "or", "but", "if", "then", "than", "so", "in", "on", "at", "to",
		"for", "of", "with", "by", "from", "about", "into", "over", "under", "after", "before",
		"is", "are", "was", "were", "be", "been", "being", "this", "that", "these", "those",
		"it", "its", "as", "via", "how", "why", "what", "when", "where",
		// generic words that reduce image relevance
		"more", "most", "less", "best", "better", "good", "great", "new", "now", "ago", "long",
		"deal", "option", "value", "just",
		// Polish fillers that survive translation round-trips
		"i", "oraz", "ale", "w", "we", "na", "do", "z", "ze", "od", "po", "za", "o", "u", "jak",
	} {
		stopWords[w] = struct{}{}
	}
}

var nonWordChars = regexp.MustCompile(`[^a-z0-9ąęćłńóśźż-]`)
var digitsOnly = regexp.MustCompile(`^\d+$`)

func normalizeWord(raw string) string {
	return strings.TrimSpace(nonWordChars.ReplaceAllString(strings.ToLower(raw), ""))
}

type keywordOptions struct {
	maxKeywords int
	minLength   int
	seen        map[string]struct{}
}

func collectKeywords(input string, opts keywordOptions) []string {
	if strings.TrimSpace(input) == "" || opts.maxKeywords <= 0 {
		return nil
	}
	if opts.seen == nil {
		opts.seen = map[string]struct{}{}
	}

	var keywords []string
	for _, raw := range strings.Fields(input) {
		word := normalizeWord(raw)
		if len(word) < opts.minLength {
			continue
		}
		if _, ok := stopWords[word]; ok {
			continue
		}
		if digitsOnly.MatchString(word) {
			continue
		}
		if _, ok := opts.seen[word]; ok {
			continue
		}
		opts.seen[word] = struct{}{}
		keywords = append(keywords, word)
		if len(keywords) >= opts.maxKeywords {
			break
		}
	}
	return keywords
}

// TitleKeywords extracts up to max normalized, stop-word-filtered,
// deduplicated keywords from a title. Falls back to the first normalized
// words when the title is mostly stop-words.
func TitleKeywords(title string, max int) []string {
	if strings.TrimSpace(title) == "" {
		return nil
	}

	keywords := collectKeywords(title, keywordOptions{maxKeywords: max, minLength: 3})
	if len(keywords) > 0 {
		return keywords
	}

	var fallback []string
	for _, raw := range strings.Fields(title) {
		word := normalizeWord(raw)
		if len(word) >= 2 {
			fallback = append(fallback, word)
		}
		if len(fallback) >= max {
			break
		}
	}
	return fallback
}

// ImageQuery builds a focused provider query from title, category and excerpt
// keywords, title words first. The excerpt contributes longer context words
// only, sampled from its head.
func ImageQuery(title, excerpt string, category string, max int) string {
	seen := map[string]struct{}{}

	keywords := collectKeywords(title, keywordOptions{maxKeywords: max, minLength: 3, seen: seen})
	keywords = append(keywords, collectKeywords(category, keywordOptions{maxKeywords: 2, minLength: 3, seen: seen})...)

	sample := excerpt
	if len(sample) > 500 {
		sample = sample[:500]
	}
	keywords = append(keywords, collectKeywords(sample, keywordOptions{maxKeywords: max, minLength: 4, seen: seen})...)

	if len(keywords) > max {
		keywords = keywords[:max]
	}
	if len(keywords) == 0 {
		keywords = TitleKeywords(title, max)
	}
	if len(keywords) == 0 {
		return strings.TrimSpace(title)
	}
	return strings.Join(keywords, " ")
}
