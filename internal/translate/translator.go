// Package translate produces secondary-locale variants of article drafts.
// The provider gets explicit formatting constraints, and post-processing
// enforces them regardless of compliance.
package translate

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pressroom-io/pressroom/internal/ai"
	"github.com/pressroom-io/pressroom/internal/domain"
	"github.com/pressroom-io/pressroom/internal/markdown"
)

const (
	// Title ceiling for translated locales; Polish runs roughly a quarter
	// longer than English for the same headline.
	maxTitleLen   = 95
	maxExcerptLen = 200
)

var localeNames = map[domain.Locale]string{
	domain.LocaleEN: "English",
	domain.LocalePL: "Polish",
}

// Translator converts a draft into another locale with one provider call.
type Translator struct {
	completer ai.Completer
}

func NewTranslator(completer ai.Completer) *Translator {
	return &Translator{completer: completer}
}

const translateSystem = "You are a professional translator. Translate precisely, preserving meaning and tone. Output only the translation."

func translatePrompt(draft *domain.DraftArticle, target domain.Locale) string {
	targetName := localeNames[target]
	if targetName == "" {
		targetName = string(target)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Translate the following article into %s.\n\n", targetName)
	b.WriteString("Constraints:\n")
	fmt.Fprintf(&b, "- The translated title must be at most %d characters\n", maxTitleLen)
	b.WriteString("- The body must be plain prose with no markup of any kind\n")
	b.WriteString("- Separate paragraphs with blank lines\n")
	b.WriteString("- Keep the first line as the title, then a blank line, then the body\n\n")
	fmt.Fprintf(&b, "Title: %s\n\n%s", draft.Title, draft.Body)
	return b.String()
}

// Translate returns the draft in the target locale. On provider failure it
// returns the source draft unchanged along with the error, so the caller can
// publish a single-locale record instead of aborting.
func (t *Translator) Translate(ctx context.Context, draft *domain.DraftArticle, target domain.Locale) (*domain.DraftArticle, error) {
	if target == draft.Locale {
		return draft, nil
	}
	if t.completer == nil {
		return draft, fmt.Errorf("translation provider is not configured")
	}

	resp, err := t.completer.Complete(ctx, ai.Request{
		System:      translateSystem,
		User:        translatePrompt(draft, target),
		Temperature: 0.3,
		MaxTokens:   3000,
	})
	if err != nil {
		slog.Warn("translation failed, falling back to source locale",
			"target", target,
			"error", err,
		)
		return draft, fmt.Errorf("translate to %s: %w", target, err)
	}

	translated := parseTranslation(resp, draft)
	translated.Locale = target
	return translated, nil
}

// parseTranslation splits the response into title and body and enforces the
// formatting contract: markup stripped, title and excerpt within ceilings.
func parseTranslation(resp string, source *domain.DraftArticle) *domain.DraftArticle {
	body := markdown.Strip(resp)

	title := source.Title
	if head, rest, found := strings.Cut(body, "\n\n"); found && head != "" {
		head = strings.TrimSpace(strings.TrimPrefix(head, "Title:"))
		if head != "" && !strings.ContainsRune(head, '\n') {
			title = head
			body = rest
		}
	}

	excerpt := ""
	for _, p := range markdown.Paragraphs(body) {
		excerpt = p
		break
	}

	return &domain.DraftArticle{
		Title:     TruncateAtBoundary(strings.Trim(title, `"'`), maxTitleLen),
		Body:      strings.TrimSpace(body),
		Excerpt:   TruncateAtBoundary(excerpt, maxExcerptLen),
		Category:  source.Category,
		WordCount: markdown.WordCount(body),
	}
}
