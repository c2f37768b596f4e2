package processor

import (
	"context"
	"strings"
	"testing"

	"github.com/pressroom-io/pressroom/internal/domain"
)

func TestParseGenerated(t *testing.T) {
	response := `# Quantum Chips Leave The Lab

Quantum processors moved from research papers into commercial racks this year.

## What Changed

Cooling systems shrank and error correction matured enough for production use.

Vendors now sell early access by the hour.`

	draft := ParseGenerated(response, "Fallback Title")

	if draft.Title != "Quantum Chips Leave The Lab" {
		t.Errorf("title = %q, want the top-level heading", draft.Title)
	}
	if strings.Contains(draft.Body, "# Quantum Chips Leave The Lab") {
		t.Errorf("title heading leaked into the body: %q", draft.Body)
	}
	if !strings.Contains(draft.Body, "## What Changed") {
		t.Errorf("subheadings must stay in the body: %q", draft.Body)
	}
	if draft.Excerpt != "Quantum processors moved from research papers into commercial racks this year." {
		t.Errorf("excerpt = %q, want the first non-heading paragraph", draft.Excerpt)
	}
	if draft.WordCount == 0 {
		t.Error("word count not computed")
	}
	if draft.Locale != domain.PrimaryLocale {
		t.Errorf("locale = %s, want %s", draft.Locale, domain.PrimaryLocale)
	}
}

func TestParseGeneratedWithoutHeadingUsesFallbackTitle(t *testing.T) {
	draft := ParseGenerated("Just a plain paragraph of generated text without any heading.", "Provided Title")
	if draft.Title != "Provided Title" {
		t.Errorf("title = %q, want fallback", draft.Title)
	}
	if draft.Excerpt == "" {
		t.Error("excerpt should come from the first paragraph")
	}
}

func TestGenerateRequiresProvider(t *testing.T) {
	g := NewGenerator(nil)
	if _, err := g.Generate(context.Background(), "source", "", domain.CategoryTechnology, domain.StyleJournalistic); err == nil {
		t.Fatal("expected error without a configured provider")
	}
}

func TestGenerateParsesProviderResponse(t *testing.T) {
	completer := &fakeCompleter{resp: "# Generated Headline\n\nBody paragraph one with detail.\n\nBody paragraph two with more."}
	g := NewGenerator(completer)

	draft, err := g.Generate(context.Background(), "raw notes", "", domain.CategoryAI, domain.StyleCasual)
	if err != nil {
		t.Fatal(err)
	}
	if draft.Title != "Generated Headline" {
		t.Errorf("title = %q", draft.Title)
	}
	if draft.Category != domain.CategoryAI {
		t.Errorf("category = %s, want %s", draft.Category, domain.CategoryAI)
	}
}
