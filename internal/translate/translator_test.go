package translate

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/pressroom-io/pressroom/internal/ai"
	"github.com/pressroom-io/pressroom/internal/domain"
)

type fakeCompleter struct {
	resp string
	err  error
}

func (f *fakeCompleter) Complete(ctx context.Context, req ai.Request) (string, error) {
	return f.resp, f.err
}

func sourceDraft() *domain.DraftArticle {
	return &domain.DraftArticle{
		Title:    "Quantum Chips Leave The Lab",
		Body:     "First paragraph of the article.\n\nSecond paragraph of the article.",
		Excerpt:  "First paragraph of the article.",
		Category: domain.CategoryTechnology,
		Locale:   domain.LocaleEN,
	}
}

func TestTranslateParsesTitleAndBody(t *testing.T) {
	completer := &fakeCompleter{resp: "Kwantowe chipy opuszczają laboratorium\n\nPierwszy akapit artykułu.\n\nDrugi akapit artykułu."}
	translator := NewTranslator(completer)

	got, err := translator.Translate(context.Background(), sourceDraft(), domain.LocalePL)
	if err != nil {
		t.Fatal(err)
	}
	if got.Locale != domain.LocalePL {
		t.Errorf("locale = %s, want %s", got.Locale, domain.LocalePL)
	}
	if got.Title != "Kwantowe chipy opuszczają laboratorium" {
		t.Errorf("title = %q", got.Title)
	}
	if !strings.Contains(got.Body, "Pierwszy akapit") || !strings.Contains(got.Body, "Drugi akapit") {
		t.Errorf("body lost paragraphs: %q", got.Body)
	}
	if got.Excerpt != "Pierwszy akapit artykułu." {
		t.Errorf("excerpt = %q", got.Excerpt)
	}
	if got.Category != domain.CategoryTechnology {
		t.Errorf("category must carry over, got %s", got.Category)
	}
}

func TestTranslateStripsMarkup(t *testing.T) {
	completer := &fakeCompleter{resp: "Tytuł po polsku\n\n## Nagłówek\n\nAkapit z **pogrubieniem** i [linkiem](https://x.test) w środku."}
	translator := NewTranslator(completer)

	got, err := translator.Translate(context.Background(), sourceDraft(), domain.LocalePL)
	if err != nil {
		t.Fatal(err)
	}
	for _, token := range []string{"##", "**", "]("} {
		if strings.Contains(got.Body, token) {
			t.Errorf("markup token %q survived post-processing: %q", token, got.Body)
		}
	}
	if !strings.Contains(got.Body, "pogrubieniem") || !strings.Contains(got.Body, "linkiem") {
		t.Errorf("stripped markup removed the wrapped text: %q", got.Body)
	}
}

func TestTranslateEnforcesTitleCeiling(t *testing.T) {
	longTitle := strings.Repeat("Bardzo długi tytuł ", 10)
	completer := &fakeCompleter{resp: longTitle + "\n\nTreść artykułu po polsku w jednym akapicie."}
	translator := NewTranslator(completer)

	got, err := translator.Translate(context.Background(), sourceDraft(), domain.LocalePL)
	if err != nil {
		t.Fatal(err)
	}
	if n := utf8.RuneCountInString(got.Title); n > maxTitleLen {
		t.Errorf("title length %d exceeds ceiling %d: %q", n, maxTitleLen, got.Title)
	}
	if !strings.HasSuffix(got.Title, ellipsis) {
		t.Errorf("mid-sentence truncation must append an ellipsis: %q", got.Title)
	}
}

func TestTranslateProviderFailureFallsThrough(t *testing.T) {
	translator := NewTranslator(&fakeCompleter{err: errors.New("provider down")})
	src := sourceDraft()

	got, err := translator.Translate(context.Background(), src, domain.LocalePL)
	if err == nil {
		t.Fatal("expected an error signalling the degradation")
	}
	if got == nil || got.Title != src.Title || got.Locale != domain.LocaleEN {
		t.Errorf("fallback must return the source draft unchanged, got %+v", got)
	}
}

func TestTranslateSameLocaleIsIdentity(t *testing.T) {
	translator := NewTranslator(&fakeCompleter{err: errors.New("must not be called")})
	src := sourceDraft()

	got, err := translator.Translate(context.Background(), src, domain.LocaleEN)
	if err != nil {
		t.Fatal(err)
	}
	if got != src {
		t.Error("same-locale translation must be the identity")
	}
}

func TestTruncateAtBoundary(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		max      int
		expected string
	}{
		{
			name:     "short input untouched",
			input:    "Short title",
			max:      95,
			expected: "Short title",
		},
		{
			name:     "cuts at sentence boundary without ellipsis",
			input:    "First sentence ends here. Second sentence keeps going well past the limit for sure.",
			max:      40,
			expected: "First sentence ends here.",
		},
		{
			name:     "cuts at word boundary with ellipsis",
			input:    "A single long clause without any sentence punctuation at all in it",
			max:      30,
			expected: "A single long clause without…",
		},
		{
			name:     "hard cut when no boundary exists",
			input:    "supercalifragilisticexpialidocious",
			max:      10,
			expected: "supercalif…",
		},
		{
			name:     "exact length untouched",
			input:    "exactly-ten",
			max:      11,
			expected: "exactly-ten",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateAtBoundary(tt.input, tt.max)
			if got != tt.expected {
				t.Errorf("TruncateAtBoundary(%q, %d) = %q, want %q", tt.input, tt.max, got, tt.expected)
			}
		})
	}
}
