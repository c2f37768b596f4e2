package processor

import (
	"context"
	"fmt"
	"strings"

	"github.com/pressroom-io/pressroom/internal/ai"
	"github.com/pressroom-io/pressroom/internal/apperr"
	"github.com/pressroom-io/pressroom/internal/domain"
	"github.com/pressroom-io/pressroom/internal/markdown"
)

const defaultTargetWords = 600

// styleInstructions parameterize the generation prompt per content style.
var styleInstructions = map[domain.ContentStyle]string{
	domain.StyleJournalistic: "Write in a professional journalistic style: factual, balanced, with clear attribution and an inverted-pyramid structure.",
	domain.StyleKeepAsIs:     "Preserve the original tone and voice of the source material. Clean it up but do not rewrite its character.",
	domain.StyleSEO:          "Write with search optimization in mind: keyword-rich headings, short scannable paragraphs, a compelling opening.",
	domain.StyleAcademic:     "Write in a formal academic register: precise terminology, measured claims, logical argument flow.",
	domain.StyleCasual:       "Write in a friendly conversational tone, as if explaining to a curious friend. Contractions are fine.",
	domain.StyleTechnical:    "Write for a technical audience: concrete details, correct terminology, no marketing language.",
}

// Generator turns source material into a full article draft with a single
// completion call.
type Generator struct {
	completer   ai.Completer
	targetWords int
}

func NewGenerator(completer ai.Completer) *Generator {
	return &Generator{completer: completer, targetWords: defaultTargetWords}
}

const generateSystem = "You are a professional content writer producing publication-ready articles in Markdown."

func (g *Generator) generatePrompt(source, title string, category domain.Category, style domain.ContentStyle) string {
	instructions, ok := styleInstructions[style]
	if !ok {
		instructions = styleInstructions[domain.StyleJournalistic]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Write a complete article of roughly %d words based on the source material below.\n\n", g.targetWords)
	b.WriteString(instructions)
	b.WriteString("\n\nRequirements:\n")
	b.WriteString("- Start with a single '# ' heading holding the article title\n")
	b.WriteString("- Follow with an engaging opening paragraph that works as a standalone summary\n")
	b.WriteString("- Use '## ' subheadings to structure the body\n")
	b.WriteString("- Do not invent facts that are not in the source material\n")
	b.WriteString("- Do not include calls to action, subscription prompts, or source credits\n")
	fmt.Fprintf(&b, "- Category context: %s\n\n", category)
	if title != "" {
		fmt.Fprintf(&b, "Working title: %s\n\n", title)
	}
	fmt.Fprintf(&b, "Source material:\n%s", source)
	return b.String()
}

// Generate produces a draft from source text. The provider call is made once;
// retry policy belongs to the job queue, not here.
func (g *Generator) Generate(ctx context.Context, source, title string, category domain.Category, style domain.ContentStyle) (*domain.DraftArticle, error) {
	if g.completer == nil {
		return nil, apperr.NewConfig("completion provider is not configured")
	}

	resp, err := g.completer.Complete(ctx, ai.Request{
		System:      generateSystem,
		User:        g.generatePrompt(source, title, category, style),
		Temperature: 0.7,
		MaxTokens:   2000,
	})
	if err != nil {
		return nil, fmt.Errorf("generate article: %w", err)
	}

	draft := ParseGenerated(resp, title)
	if draft.Body == "" {
		return nil, fmt.Errorf("generate article: provider returned no body text")
	}
	draft.Category = category
	return draft, nil
}

// ParseGenerated splits a Markdown response into title, excerpt and body.
// The first top-level heading becomes the title; the first non-heading
// paragraph becomes the excerpt. fallbackTitle is used when the response
// carries no heading.
func ParseGenerated(response, fallbackTitle string) *domain.DraftArticle {
	body := markdown.Scrub(markdown.Normalize(response))

	var (
		title string
		kept  []string
	)
	for _, p := range markdown.Paragraphs(body) {
		if title == "" && strings.HasPrefix(p, "# ") {
			title = strings.TrimSpace(strings.TrimPrefix(p, "# "))
			continue
		}
		kept = append(kept, p)
	}
	if title == "" {
		title = fallbackTitle
	}
	title = strings.Trim(title, `"'`)

	excerpt := ""
	for _, p := range kept {
		if strings.HasPrefix(p, "#") {
			continue
		}
		excerpt = markdown.Strip(p)
		break
	}
	if len(excerpt) > 300 {
		excerpt = strings.TrimSpace(excerpt[:300])
	}

	joined := strings.Join(kept, "\n\n")
	return &domain.DraftArticle{
		Title:     title,
		Body:      joined,
		Excerpt:   excerpt,
		WordCount: markdown.WordCount(joined),
		Locale:    domain.PrimaryLocale,
	}
}
