package markdown

import (
	"strings"
	"testing"
)

func TestStrip(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "heading",
			input:    "## Section Title\n\nBody text here.",
			expected: "Section Title\n\nBody text here.",
		},
		{
			name:     "bold and italic",
			input:    "This is **bold** and *italic* and __strong__.",
			expected: "This is bold and italic and strong.",
		},
		{
			name:     "link keeps text",
			input:    "See [the docs](https://example.com) for details.",
			expected: "See the docs for details.",
		},
		{
			name:     "image removed entirely",
			input:    "Before.\n\n![alt text](https://example.com/img.png)\n\nAfter.",
			expected: "Before.\n\nAfter.",
		},
		{
			name:     "inline code keeps text",
			input:    "Run `go version` to check.",
			expected: "Run go version to check.",
		},
		{
			name:     "code fence removed",
			input:    "Intro.\n\n```\nfmt.Println(\"x\")\n```\n\nOutro.",
			expected: "Intro.\n\nOutro.",
		},
		{
			name:     "list bullets",
			input:    "- first\n- second\n1. third",
			expected: "first\nsecond\nthird",
		},
		{
			name:     "blockquote",
			input:    "> quoted line",
			expected: "quoted line",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Strip(tt.input)
			if got != tt.expected {
				t.Errorf("Strip(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestScrubRemovesPromotionalNoise(t *testing.T) {
	input := "Real content about processors.\n\nStay with us for more updates!\n\nFollow us on social media.\n\nMore real content."
	got := Scrub(input)

	if strings.Contains(strings.ToLower(got), "stay with us") {
		t.Errorf("scrubbed text still contains promotional phrase: %q", got)
	}
	if strings.Contains(strings.ToLower(got), "follow us") {
		t.Errorf("scrubbed text still contains promotional phrase: %q", got)
	}
	if !strings.Contains(got, "Real content about processors.") {
		t.Errorf("scrub removed real content: %q", got)
	}
	if !strings.Contains(got, "More real content.") {
		t.Errorf("scrub removed real content: %q", got)
	}
}

func TestParagraphs(t *testing.T) {
	body := "First paragraph.\n\nSecond paragraph.\n\n\n\nThird paragraph."
	paragraphs := Paragraphs(body)
	if len(paragraphs) != 3 {
		t.Fatalf("expected 3 paragraphs, got %d: %v", len(paragraphs), paragraphs)
	}
	if paragraphs[2] != "Third paragraph." {
		t.Errorf("unexpected last paragraph: %q", paragraphs[2])
	}
}

func TestWordCountIgnoresMarkup(t *testing.T) {
	body := "## Heading\n\nThis **bold** text has [a link](https://x.test) inside."
	// Heading plus 7 prose words; markup tokens must not count.
	if got := WordCount(body); got != 8 {
		t.Errorf("WordCount = %d, want 8", got)
	}
}
