package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Locale identifies a publication language. The primary locale is generated
// directly; secondary locales are derived via translation.
type Locale string

const (
	LocaleEN Locale = "en"
	LocalePL Locale = "pl"
)

// PrimaryLocale is the locale articles are generated in before translation.
const PrimaryLocale = LocaleEN

// Category is the fixed editorial taxonomy. CategoryTechnology doubles as the
// catch-all when detection yields nothing usable.
type Category string

const (
	CategoryAI         Category = "AI"
	CategoryTechnology Category = "Technology"
	CategoryGames      Category = "Games"
	CategoryApple      Category = "Apple"
	CategoryDigital    Category = "Digital"
	CategoryNews       Category = "News"
)

// DefaultCategory is the catch-all assigned when every detection stage fails.
const DefaultCategory = CategoryTechnology

// Categories lists every valid category, in display order.
func Categories() []Category {
	return []Category{
		CategoryAI,
		CategoryTechnology,
		CategoryGames,
		CategoryApple,
		CategoryDigital,
		CategoryNews,
	}
}

// ParseCategory matches a free-form label against the fixed set,
// case-insensitively. ok is false for anything outside the enumeration.
func ParseCategory(s string) (Category, bool) {
	s = strings.TrimSpace(s)
	for _, c := range Categories() {
		if strings.EqualFold(string(c), s) {
			return c, true
		}
	}
	return "", false
}

// DraftArticle is the content processor's output: in-flight article content
// before translation and image placement. Passed by value through the
// pipeline, never persisted on its own.
type DraftArticle struct {
	Title     string   `json:"title"`
	Body      string   `json:"body"`
	Excerpt   string   `json:"excerpt"`
	Category  Category `json:"category"`
	WordCount int      `json:"wordCount"`
	Locale    Locale   `json:"locale"`
}

// LocalizedArticle holds the per-locale fields of a published record.
type LocalizedArticle struct {
	Slug    string `json:"slug,omitempty"`
	Content string `json:"content,omitempty"`
	Excerpt string `json:"excerpt,omitempty"`
	URL     string `json:"url,omitempty"`
}

// Populated reports whether the variant carries publishable content.
func (l LocalizedArticle) Populated() bool {
	return l.Slug != "" && l.Content != ""
}

// PublishedArticle is the durable, bilingual publication artifact. A record
// is reader-visible only once the primary locale's fields are populated; a
// missing secondary locale is valid and recorded via Languages.
type PublishedArticle struct {
	ID           uuid.UUID        `json:"id"`
	EN           LocalizedArticle `json:"en"`
	PL           LocalizedArticle `json:"pl"`
	Category     Category         `json:"category"`
	HeroImageURL string           `json:"heroImageUrl,omitempty"`
	WordCount    int              `json:"wordCount"`
	Languages    []Locale         `json:"languages"`
	Published    bool             `json:"published"`
	CreatedAt    time.Time        `json:"createdAt"`
}

// Variant returns a pointer to the locale's fields so callers can populate
// them in place. Unknown locales map to a discarded zero value.
func (a *PublishedArticle) Variant(loc Locale) *LocalizedArticle {
	switch loc {
	case LocaleEN:
		return &a.EN
	case LocalePL:
		return &a.PL
	default:
		return &LocalizedArticle{}
	}
}

// HasLocale reports whether the locale was successfully populated.
func (a *PublishedArticle) HasLocale(loc Locale) bool {
	for _, l := range a.Languages {
		if l == loc {
			return true
		}
	}
	return false
}
