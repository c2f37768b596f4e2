// Package pipeline composes the stages into the unit of work the queue
// executes: resolve preferences, process content, publish bilingual record.
package pipeline

import (
	"context"

	"github.com/pressroom-io/pressroom/internal/domain"
	"github.com/pressroom-io/pressroom/internal/prefs"
	"github.com/pressroom-io/pressroom/internal/processor"
	"github.com/pressroom-io/pressroom/internal/publish"
)

type Runner struct {
	processor    *processor.Processor
	resolver     *prefs.Resolver
	orchestrator *publish.Orchestrator
}

func NewRunner(proc *processor.Processor, resolver *prefs.Resolver, orchestrator *publish.Orchestrator) *Runner {
	return &Runner{
		processor:    proc,
		resolver:     resolver,
		orchestrator: orchestrator,
	}
}

// Run executes one job end to end. Any returned error consumes one of the
// job's retries; graceful degradation happens inside the stages, not here.
func (r *Runner) Run(ctx context.Context, job *domain.Job) (*domain.PublishResult, error) {
	userPrefs := r.resolver.Resolve(ctx, domain.ConversationOf(job.Payload).ChatID)

	draft, err := r.processor.Process(ctx, job.Payload, userPrefs)
	if err != nil {
		return nil, err
	}

	article, err := r.orchestrator.Publish(ctx, draft, userPrefs)
	if err != nil {
		return nil, err
	}

	urls := make(map[domain.Locale]string, len(article.Languages))
	for _, locale := range article.Languages {
		urls[locale] = article.Variant(locale).URL
	}

	return &domain.PublishResult{
		ArticleID: article.ID,
		Title:     draft.Title,
		Category:  article.Category,
		WordCount: article.WordCount,
		Languages: article.Languages,
		URLs:      urls,
		Published: article.Published,
	}, nil
}
