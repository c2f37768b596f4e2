package processor

import (
	"context"
	"errors"
	"testing"

	"github.com/pressroom-io/pressroom/internal/ai"
	"github.com/pressroom-io/pressroom/internal/domain"
)

type fakeCompleter struct {
	resp string
	err  error
	fn   func(req ai.Request) (string, error)
}

func (f *fakeCompleter) Complete(ctx context.Context, req ai.Request) (string, error) {
	if f.fn != nil {
		return f.fn(req)
	}
	return f.resp, f.err
}

func TestDetectFallbackChain(t *testing.T) {
	tests := []struct {
		name     string
		resp     string
		err      error
		text     string
		expected domain.Category
	}{
		{
			name:     "provider answer inside the enumeration",
			resp:     "Apple",
			text:     "anything",
			expected: domain.CategoryApple,
		},
		{
			name:     "provider answer is case-insensitive",
			resp:     " games \n",
			text:     "anything",
			expected: domain.CategoryGames,
		},
		{
			name:     "off-enumeration answer falls back to keywords",
			resp:     "Gadgets",
			text:     "the new playstation exclusive impressed critics",
			expected: domain.CategoryGames,
		},
		{
			name:     "provider error falls back to keywords",
			err:      errors.New("timeout"),
			text:     "chatgpt and other llm tools keep improving",
			expected: domain.CategoryAI,
		},
		{
			name:     "no keyword match falls back to catch-all",
			resp:     "not-a-category",
			text:     "gardening tips for a rainy spring weekend",
			expected: domain.DefaultCategory,
		},
		{
			name:     "empty input falls back to catch-all",
			err:      errors.New("timeout"),
			text:     "",
			expected: domain.DefaultCategory,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			classifier := NewClassifier(&fakeCompleter{resp: tt.resp, err: tt.err}, nil)
			detection := classifier.Detect(context.Background(), tt.text, "")
			if detection.Category != tt.expected {
				t.Errorf("Detect(%q) = %s, want %s", tt.text, detection.Category, tt.expected)
			}
		})
	}
}

func TestDetectWithoutProvider(t *testing.T) {
	classifier := NewClassifier(nil, nil)

	detection := classifier.Detect(context.Background(), "macbook and airpods on sale", "")
	if detection.Category != domain.CategoryApple {
		t.Errorf("keyword classification = %s, want %s", detection.Category, domain.CategoryApple)
	}

	detection = classifier.Detect(context.Background(), "", "")
	if detection.Category != domain.DefaultCategory {
		t.Errorf("empty input = %s, want catch-all %s", detection.Category, domain.DefaultCategory)
	}
}

func TestOptimizeTitleFallsBackToFirstSentence(t *testing.T) {
	classifier := NewClassifier(&fakeCompleter{err: errors.New("down")}, nil)

	title := classifier.OptimizeTitle(context.Background(),
		"Quantum chips arrived sooner than expected. The rest of the industry is catching up.",
		domain.CategoryTechnology,
	)
	if title != "Quantum chips arrived sooner than expected" {
		t.Errorf("fallback title = %q", title)
	}
}

func TestOptimizeTitleTrimsQuotes(t *testing.T) {
	classifier := NewClassifier(&fakeCompleter{resp: `"Snappy SEO Title"`}, nil)

	title := classifier.OptimizeTitle(context.Background(), "some text", domain.CategoryTechnology)
	if title != "Snappy SEO Title" {
		t.Errorf("title = %q, want quotes trimmed", title)
	}
}
