// Package publish sequences processing output into one durable bilingual
// record: translation, image placement, slugs, canonical URLs, upsert.
package publish

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/pressroom-io/pressroom/internal/domain"
	"github.com/pressroom-io/pressroom/internal/images"
	"github.com/pressroom-io/pressroom/internal/processor"
	"github.com/pressroom-io/pressroom/internal/store"
	"github.com/pressroom-io/pressroom/internal/translate"
)

// Indexer mirrors a published record into a search index. Best-effort only.
type Indexer interface {
	Index(ctx context.Context, article *domain.PublishedArticle) error
}

type Orchestrator struct {
	translator *translate.Translator
	engine     *images.Engine
	articles   store.ArticleStore
	indexer    Indexer
	siteBase   string
	locales    []domain.Locale
}

type Option func(*Orchestrator)

// WithIndexer turns on search mirroring after each publish.
func WithIndexer(indexer Indexer) Option {
	return func(o *Orchestrator) { o.indexer = indexer }
}

// WithLocales overrides the published locale set; the primary locale is
// always included.
func WithLocales(locales ...domain.Locale) Option {
	return func(o *Orchestrator) { o.locales = locales }
}

func NewOrchestrator(translator *translate.Translator, engine *images.Engine, articles store.ArticleStore, siteBase string, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		translator: translator,
		engine:     engine,
		articles:   articles,
		siteBase:   strings.TrimRight(siteBase, "/"),
		locales:    []domain.Locale{domain.LocaleEN, domain.LocalePL},
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Publish turns a draft into a persisted bilingual record. Secondary-locale
// and image failures degrade the record; only a primary-locale or persistence
// failure fails the operation.
func (o *Orchestrator) Publish(ctx context.Context, draft *domain.DraftArticle, prefs domain.Preferences) (*domain.PublishedArticle, error) {
	if draft == nil || strings.TrimSpace(draft.Body) == "" {
		return nil, fmt.Errorf("publish: draft has no body")
	}
	if draft.Locale == "" {
		draft.Locale = domain.PrimaryLocale
	}

	plan := images.NewPlan(prefs.ImagesCount, prefs.ImagesSource)

	// Translations and image acquisition are independent reads; fan out.
	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		drafts = map[domain.Locale]*domain.DraftArticle{draft.Locale: draft}
		urls   []string
	)

	for _, locale := range o.locales {
		if locale == draft.Locale {
			continue
		}
		wg.Add(1)
		go func(locale domain.Locale) {
			defer wg.Done()
			translated, err := o.translator.Translate(ctx, draft, locale)
			if err != nil {
				slog.Warn("secondary locale dropped", "locale", locale, "error", err)
				return
			}
			mu.Lock()
			drafts[locale] = translated
			mu.Unlock()
		}(locale)
	}

	if plan.Count() > 0 && o.engine != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			query := processor.ImageQuery(draft.Title, draft.Excerpt, string(draft.Category), 5)
			prompt := fmt.Sprintf("Editorial illustration for a %s article titled %q. Clean, modern, no text.", draft.Category, draft.Title)
			acquired := o.engine.Acquire(ctx, plan, query, prompt)
			mu.Lock()
			urls = acquired
			mu.Unlock()
		}()
	}
	wg.Wait()

	article := &domain.PublishedArticle{
		Category:  draft.Category,
		WordCount: draft.WordCount,
		Published: prefs.AutoPublish,
	}
	if len(urls) > 0 {
		article.HeroImageURL = urls[0]
	}

	for _, locale := range o.locales {
		localized, ok := drafts[locale]
		if !ok {
			continue
		}

		slug := Slugify(localized.Title)
		if slug == "" {
			slug = Slugify(draft.Title)
		}

		variant := article.Variant(locale)
		variant.Slug = slug
		variant.Content = images.Insert(localized.Body, urls, localized.Title)
		variant.Excerpt = localized.Excerpt
		variant.URL = o.canonicalURL(locale, slug)

		if variant.Populated() {
			article.Languages = append(article.Languages, locale)
		}
	}

	if !article.HasLocale(draft.Locale) {
		return nil, fmt.Errorf("publish: primary locale %s has no content", draft.Locale)
	}

	if err := o.articles.UpsertArticle(ctx, article); err != nil {
		return nil, fmt.Errorf("persist article: %w", err)
	}

	if o.indexer != nil {
		if err := o.indexer.Index(ctx, article); err != nil {
			slog.Warn("search indexing failed", "articleId", article.ID, "error", err)
		}
	}

	slog.Info("article published",
		"articleId", article.ID,
		"category", article.Category,
		"languages", article.Languages,
		"images", len(urls),
		"published", article.Published,
	)
	return article, nil
}

func (o *Orchestrator) canonicalURL(locale domain.Locale, slug string) string {
	return fmt.Sprintf("%s/%s/article/%s", o.siteBase, locale, slug)
}
