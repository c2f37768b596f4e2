// Package es mirrors published articles into a search index. Indexing is
// best-effort: publication never fails because search is down.
package es

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/pressroom-io/pressroom/internal/domain"
)

type ClientConfig struct {
	Addresses []string
	IndexName string
	Username  string
	Password  string
}

func newClient(config ClientConfig) (*elasticsearch.TypedClient, error) {
	cfg := elasticsearch.Config{
		Addresses: config.Addresses,
	}

	if config.Username != "" && config.Password != "" {
		cfg.Username = config.Username
		cfg.Password = config.Password
	}

	return elasticsearch.NewTypedClient(cfg)
}

// articleDocument is the flattened search representation of a published
// article. Body content is indexed per locale so queries can target either.
type articleDocument struct {
	ID        string    `json:"id"`
	SlugEN    string    `json:"slug_en"`
	SlugPL    string    `json:"slug_pl,omitempty"`
	ContentEN string    `json:"content_en"`
	ContentPL string    `json:"content_pl,omitempty"`
	ExcerptEN string    `json:"excerpt_en"`
	ExcerptPL string    `json:"excerpt_pl,omitempty"`
	Category  string    `json:"category"`
	URL       string    `json:"url"`
	Languages []string  `json:"languages"`
	CreatedAt time.Time `json:"created_at"`
}

type Indexer struct {
	client    *elasticsearch.TypedClient
	indexName string
}

func NewIndexer(ctx context.Context, config ClientConfig) (*Indexer, error) {
	client, err := newClient(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}

	indexer := &Indexer{
		client:    client,
		indexName: config.IndexName,
	}

	if err := indexer.ensureIndex(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure index exists: %w", err)
	}

	return indexer, nil
}

func (e *Indexer) ensureIndex(ctx context.Context) error {
	exists, err := e.client.Indices.Exists(e.indexName).Do(ctx)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	_, err = e.client.Indices.Create(e.indexName).Do(ctx)
	if err != nil {
		return err
	}
	slog.Info("search index created", "index", e.indexName)
	return nil
}

// Index writes one published article into the search index.
func (e *Indexer) Index(ctx context.Context, article *domain.PublishedArticle) error {
	doc := mapToDocument(article)

	res, err := e.client.Index(e.indexName).Id(doc.ID).Document(doc).Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to index document: %w", err)
	}

	slog.Info("article indexed", "id", doc.ID, "index", e.indexName, "result", res.Result)
	return nil
}

func mapToDocument(article *domain.PublishedArticle) articleDocument {
	languages := make([]string, len(article.Languages))
	for i, l := range article.Languages {
		languages[i] = string(l)
	}

	return articleDocument{
		ID:        article.ID.String(),
		SlugEN:    article.EN.Slug,
		SlugPL:    article.PL.Slug,
		ContentEN: article.EN.Content,
		ContentPL: article.PL.Content,
		ExcerptEN: article.EN.Excerpt,
		ExcerptPL: article.PL.Excerpt,
		Category:  string(article.Category),
		URL:       article.EN.URL,
		Languages: languages,
		CreatedAt: article.CreatedAt,
	}
}
