package pg

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pressroom-io/pressroom/internal/apperr"
	"github.com/pressroom-io/pressroom/internal/domain"
)

func (s *Store) UpsertArticle(ctx context.Context, article *domain.PublishedArticle) error {
	if article.ID == uuid.Nil {
		article.ID = uuid.New()
	}
	if article.CreatedAt.IsZero() {
		article.CreatedAt = time.Now()
	}

	languages := make([]string, len(article.Languages))
	for i, l := range article.Languages {
		languages[i] = string(l)
	}

	cmd := `
        INSERT INTO published_articles (
            id, slug_en, slug_pl, content_en, content_pl, excerpt_en, excerpt_pl,
            url_en, url_pl, category, image_url, word_count, languages, published, created_at
        )
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
        ON CONFLICT (id) DO UPDATE SET
            slug_en = EXCLUDED.slug_en,
            slug_pl = EXCLUDED.slug_pl,
            content_en = EXCLUDED.content_en,
            content_pl = EXCLUDED.content_pl,
            excerpt_en = EXCLUDED.excerpt_en,
            excerpt_pl = EXCLUDED.excerpt_pl,
            url_en = EXCLUDED.url_en,
            url_pl = EXCLUDED.url_pl,
            category = EXCLUDED.category,
            image_url = EXCLUDED.image_url,
            word_count = EXCLUDED.word_count,
            languages = EXCLUDED.languages,
            published = EXCLUDED.published;
    `
	_, err := s.db.Exec(ctx, cmd,
		article.ID,
		article.EN.Slug,
		article.PL.Slug,
		article.EN.Content,
		article.PL.Content,
		article.EN.Excerpt,
		article.PL.Excerpt,
		article.EN.URL,
		article.PL.URL,
		article.Category,
		article.HeroImageURL,
		article.WordCount,
		languages,
		article.Published,
		article.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert article: %w", err)
	}
	return nil
}

func (s *Store) GetArticle(ctx context.Context, id uuid.UUID) (*domain.PublishedArticle, error) {
	row := s.db.QueryRow(ctx, `
        SELECT id, slug_en, slug_pl, content_en, content_pl, excerpt_en, excerpt_pl,
               url_en, url_pl, category, image_url, word_count, languages, published, created_at
        FROM published_articles WHERE id = $1;
    `, id)

	var (
		article   domain.PublishedArticle
		languages []string
	)
	err := row.Scan(
		&article.ID,
		&article.EN.Slug,
		&article.PL.Slug,
		&article.EN.Content,
		&article.PL.Content,
		&article.EN.Excerpt,
		&article.PL.Excerpt,
		&article.EN.URL,
		&article.PL.URL,
		&article.Category,
		&article.HeroImageURL,
		&article.WordCount,
		&languages,
		&article.Published,
		&article.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NewNotFound("article not found: " + id.String())
	}
	if err != nil {
		return nil, fmt.Errorf("scan article: %w", err)
	}

	for _, l := range languages {
		article.Languages = append(article.Languages, domain.Locale(l))
	}
	return &article, nil
}
