package processor

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pressroom-io/pressroom/internal/ai"
	"github.com/pressroom-io/pressroom/internal/domain"
)

// CategoryDetection carries the detected category. Confidence is
// informational only and never gates publication.
type CategoryDetection struct {
	Category   domain.Category
	Confidence float64
	Reasoning  string
}

// Classifier assigns a category through a three-stage chain: completion
// provider, keyword rules, catch-all default. It never fails.
type Classifier struct {
	completer ai.Completer
	rules     *Rules
}

func NewClassifier(completer ai.Completer, rules *Rules) *Classifier {
	if rules == nil {
		rules = DefaultRules()
	}
	return &Classifier{completer: completer, rules: rules}
}

const classifySystem = "You are a content categorization expert. Analyze text and assign the most appropriate category."

func classifyPrompt(text, title string) string {
	var b strings.Builder
	b.WriteString("Analyze the following text and determine the most appropriate category from this list:\n")
	b.WriteString("- AI (artificial intelligence, machine learning, neural networks, AGI, LLMs)\n")
	b.WriteString("- Technology (general tech, innovations, gadgets, software, hardware)\n")
	b.WriteString("- Games (gaming, esports, game development, gaming industry)\n")
	b.WriteString("- Apple (Apple products, iOS, macOS, iPhone, iPad, Mac)\n")
	b.WriteString("- Digital (digital transformation, online services, web, internet)\n")
	b.WriteString("- News (breaking news, current events, industry news)\n\n")
	if title != "" {
		fmt.Fprintf(&b, "Title: %s\n\n", title)
	}
	sample := text
	if len(sample) > 500 {
		sample = sample[:500]
	}
	fmt.Fprintf(&b, "Text: %s\n\n", sample)
	b.WriteString("Respond with ONLY the category name (one word: AI, Technology, Games, Apple, Digital, or News).")
	return b.String()
}

// Detect runs the detection chain over text (and optional title). Provider
// errors and off-enumeration responses degrade to the keyword classifier,
// then to the default category.
func (c *Classifier) Detect(ctx context.Context, text, title string) CategoryDetection {
	if c.completer != nil {
		resp, err := c.completer.Complete(ctx, ai.Request{
			System:      classifySystem,
			User:        classifyPrompt(text, title),
			Temperature: 0.3,
			MaxTokens:   10,
		})
		if err != nil {
			slog.Warn("category detection provider call failed", "error", err)
		} else if cat, ok := domain.ParseCategory(resp); ok {
			return CategoryDetection{Category: cat, Confidence: 0.9, Reasoning: "provider classification"}
		} else {
			slog.Warn("category detection returned off-enumeration label", "label", strings.TrimSpace(resp))
		}
	}

	if cat, ok := c.rules.ClassifyByKeywords(title + " " + text); ok {
		return CategoryDetection{Category: cat, Confidence: 0.5, Reasoning: "keyword classification"}
	}

	return CategoryDetection{Category: domain.DefaultCategory, Confidence: 0.3, Reasoning: "catch-all default"}
}

const titleSystem = "You are an expert SEO copywriter. Create engaging, optimized titles."

// OptimizeTitle asks the provider for an SEO-friendly title for the text.
// Falls back to the text's first sentence on provider failure.
func (c *Classifier) OptimizeTitle(ctx context.Context, text string, category domain.Category) string {
	sample := text
	if len(sample) > 300 {
		sample = sample[:300]
	}

	prompt := fmt.Sprintf(`Create a catchy, SEO-friendly title for an article about:

%s

Requirements:
- 50-70 characters
- Engaging and clickable
- Include relevant keywords
- Professional tone
- Category: %s

Respond with ONLY the title (no quotes, no extra text).`, sample, category)

	if c.completer != nil {
		resp, err := c.completer.Complete(ctx, ai.Request{
			System:      titleSystem,
			User:        prompt,
			Temperature: 0.7,
			MaxTokens:   50,
		})
		if err == nil {
			title := strings.Trim(strings.TrimSpace(resp), `"'`)
			if title != "" {
				if len(title) > 100 {
					title = title[:100]
				}
				return title
			}
		} else {
			slog.Warn("title optimization provider call failed", "error", err)
		}
	}

	return firstSentence(text, 70)
}

func firstSentence(text string, max int) string {
	cut := strings.IndexAny(text, ".!?")
	if cut > 0 {
		text = text[:cut]
	}
	text = strings.TrimSpace(text)
	if len(text) > max {
		text = strings.TrimSpace(text[:max])
	}
	return text
}
