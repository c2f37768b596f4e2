// Package processor turns job inputs into publishable article drafts. It
// combines URL extraction, long-form generation and category detection; every
// provider call here is single-attempt, retries belong to the queue.
package processor

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pressroom-io/pressroom/internal/ai"
	"github.com/pressroom-io/pressroom/internal/domain"
	"github.com/pressroom-io/pressroom/internal/markdown"
)

// Processor is the content stage of the pipeline.
type Processor struct {
	extractor  *Extractor
	generator  *Generator
	classifier *Classifier
}

func New(completer ai.Completer, rules *Rules, opts ...ExtractorOption) *Processor {
	if rules == nil {
		rules = DefaultRules()
	}
	return &Processor{
		extractor:  NewExtractor(rules, opts...),
		generator:  NewGenerator(completer),
		classifier: NewClassifier(completer, rules),
	}
}

// Process dispatches on the payload variant and returns a complete draft.
// The switch is exhaustive over the job kinds; an unknown variant is a
// programming error surfaced as a plain error, not a panic.
func (p *Processor) Process(ctx context.Context, payload domain.JobPayload, prefs domain.Preferences) (*domain.DraftArticle, error) {
	switch v := payload.(type) {
	case domain.URLIngestPayload:
		return p.processURL(ctx, v, prefs)
	case domain.TextIngestPayload:
		return p.processText(ctx, v, prefs)
	case domain.CopywritePayload:
		return p.processCopywrite(ctx, v, prefs)
	default:
		return nil, fmt.Errorf("unsupported payload variant: %T", payload)
	}
}

func (p *Processor) processURL(ctx context.Context, payload domain.URLIngestPayload, prefs domain.Preferences) (*domain.DraftArticle, error) {
	page, err := p.extractor.Extract(ctx, payload.URL)
	if err != nil {
		return nil, err
	}
	slog.Info("page extracted",
		"url", payload.URL,
		"title", page.Title,
		"paragraphs", len(page.Paragraphs),
	)

	source := strings.Join(page.Paragraphs, "\n\n")
	detection := p.detect(ctx, source, page.Title, "")

	if prefs.ContentStyle == domain.StyleKeepAsIs {
		return p.keepAsIs(ctx, source, page.Title, page.Excerpt, detection.Category), nil
	}

	draft, err := p.generator.Generate(ctx, source, page.Title, detection.Category, prefs.ContentStyle)
	if err != nil {
		return nil, err
	}
	if draft.Excerpt == "" {
		draft.Excerpt = page.Excerpt
	}
	return draft, nil
}

func (p *Processor) processText(ctx context.Context, payload domain.TextIngestPayload, prefs domain.Preferences) (*domain.DraftArticle, error) {
	detection := p.detect(ctx, payload.Text, payload.Title, payload.Category)

	if prefs.ContentStyle == domain.StyleKeepAsIs {
		return p.keepAsIs(ctx, payload.Text, payload.Title, "", detection.Category), nil
	}

	return p.generator.Generate(ctx, payload.Text, payload.Title, detection.Category, prefs.ContentStyle)
}

func (p *Processor) processCopywrite(ctx context.Context, payload domain.CopywritePayload, prefs domain.Preferences) (*domain.DraftArticle, error) {
	style := prefs.ContentStyle
	// A generation prompt is not source material to preserve.
	if style == domain.StyleKeepAsIs {
		style = domain.StyleJournalistic
	}

	detection := p.detect(ctx, payload.Prompt, payload.Title, payload.Category)
	return p.generator.Generate(ctx, payload.Prompt, payload.Title, detection.Category, style)
}

// detect resolves the category: an explicit valid override wins, otherwise
// the detection chain runs. Never fails.
func (p *Processor) detect(ctx context.Context, text, title string, override domain.Category) CategoryDetection {
	if override != "" {
		if cat, ok := domain.ParseCategory(string(override)); ok {
			return CategoryDetection{Category: cat, Confidence: 1, Reasoning: "submitter override"}
		}
		slog.Warn("ignoring unknown category override", "category", override)
	}
	return p.classifier.Detect(ctx, text, title)
}

// keepAsIs builds a draft from the source text without rewriting it. Only the
// title may come from the provider, and only when none was supplied.
func (p *Processor) keepAsIs(ctx context.Context, text, title, excerpt string, category domain.Category) *domain.DraftArticle {
	body := markdown.Scrub(markdown.Normalize(text))

	if strings.TrimSpace(title) == "" {
		title = p.classifier.OptimizeTitle(ctx, body, category)
	}

	if excerpt == "" {
		for _, para := range markdown.Paragraphs(body) {
			if strings.HasPrefix(para, "#") {
				continue
			}
			excerpt = markdown.Strip(para)
			break
		}
	}
	if len(excerpt) > 300 {
		excerpt = strings.TrimSpace(excerpt[:300])
	}

	return &domain.DraftArticle{
		Title:     strings.TrimSpace(title),
		Body:      body,
		Excerpt:   excerpt,
		Category:  category,
		WordCount: markdown.WordCount(body),
		Locale:    domain.PrimaryLocale,
	}
}
