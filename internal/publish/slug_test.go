package publish

import (
	"regexp"
	"strings"
	"testing"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		expected string
	}{
		{
			name:     "simple title",
			title:    "Hello World",
			expected: "hello-world",
		},
		{
			name:     "punctuation collapses to single hyphens",
			title:    "AI: The Future, Today!",
			expected: "ai-the-future-today",
		},
		{
			name:     "polish diacritics fold to ascii",
			title:    "Nowa technologia w Łodzi już działa",
			expected: "nowa-technologia-w-lodzi-juz-dziala",
		},
		{
			name:     "leading and trailing junk",
			title:    "  --Breaking News-- ",
			expected: "breaking-news",
		},
		{
			name:     "numbers survive",
			title:    "iPhone 17 Pro Review",
			expected: "iphone-17-pro-review",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Slugify(tt.title)
			if got != tt.expected {
				t.Errorf("Slugify(%q) = %q, want %q", tt.title, got, tt.expected)
			}
		})
	}
}

func TestSlugifyProperties(t *testing.T) {
	titles := []string{
		"A very long title that keeps going and going and going until it certainly exceeds the slug limit",
		"Zażółć gęślą jaźń — czyli polski pangram w akcji",
		"!!!???",
		"Mixed CASE With Überraschung and café",
		strings.Repeat("word ", 40),
	}

	for _, title := range titles {
		slug := Slugify(title)
		if slug == "" {
			continue
		}
		if !slugPattern.MatchString(slug) {
			t.Errorf("Slugify(%q) = %q contains invalid characters", title, slug)
		}
		if len(slug) > MaxSlugLen {
			t.Errorf("Slugify(%q) = %q exceeds %d characters", title, slug, MaxSlugLen)
		}
		if strings.HasPrefix(slug, "-") || strings.HasSuffix(slug, "-") {
			t.Errorf("Slugify(%q) = %q has edge hyphens", title, slug)
		}
		if slug != Slugify(title) {
			t.Errorf("Slugify(%q) is not deterministic", title)
		}
	}
}

func TestSlugifyCutsOnWordBoundary(t *testing.T) {
	title := "The quick brown fox jumps over the lazy dog near the riverbank today"
	slug := Slugify(title)
	if len(slug) > MaxSlugLen {
		t.Fatalf("slug too long: %d", len(slug))
	}
	// The cut must not leave a partial word at the end.
	words := strings.Split(slug, "-")
	last := words[len(words)-1]
	if !strings.Contains(title, last) && !strings.Contains(strings.ToLower(title), last) {
		t.Errorf("slug ends with partial word %q", last)
	}
}
