package processor

import (
	"strings"
	"testing"
)

func TestTitleKeywords(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		max      int
		expected []string
	}{
		{
			name:     "stop words filtered",
			title:    "The Future of the Neural Network Revolution",
			max:      5,
			expected: []string{"future", "neural", "network", "revolution"},
		},
		{
			name:     "deduplicated",
			title:    "Apple Apple Vision Pro Apple",
			max:      5,
			expected: []string{"apple", "vision", "pro"},
		},
		{
			name:     "max respected",
			title:    "Quantum Computing Breakthrough Changes Cryptography Forever",
			max:      3,
			expected: []string{"quantum", "computing", "breakthrough"},
		},
		{
			name:     "empty title",
			title:    "   ",
			max:      5,
			expected: nil,
		},
		{
			name:     "all stop words falls back to short words",
			title:    "How to be in it",
			max:      3,
			expected: []string{"how", "to", "be"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TitleKeywords(tt.title, tt.max)
			if len(got) != len(tt.expected) {
				t.Fatalf("TitleKeywords(%q) = %v, want %v", tt.title, got, tt.expected)
			}
			for i, kw := range tt.expected {
				if got[i] != kw {
					t.Errorf("TitleKeywords(%q) = %v, want %v", tt.title, got, tt.expected)
					break
				}
			}
		})
	}
}

func TestImageQuery(t *testing.T) {
	query := ImageQuery(
		"Neural Networks Reshape Photography",
		"A deep look at how modern camera pipelines use machine learning.",
		"Technology",
		5,
	)

	words := strings.Fields(query)
	if len(words) == 0 || len(words) > 5 {
		t.Fatalf("query has %d terms, want 1..5: %q", len(words), query)
	}

	// Title keywords dominate and the query stays normalized.
	if words[0] != "neural" {
		t.Errorf("first term = %q, want title keyword first", words[0])
	}
	for _, w := range words {
		if w != strings.ToLower(w) {
			t.Errorf("query term %q is not lower-cased", w)
		}
	}
	if strings.Contains(query, "  ") {
		t.Errorf("query has doubled spaces: %q", query)
	}
}

func TestImageQueryEmptyInputs(t *testing.T) {
	if got := ImageQuery("", "", "", 5); got != "" {
		t.Errorf("expected empty query, got %q", got)
	}
}
