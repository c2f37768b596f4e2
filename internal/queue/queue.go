// Package queue owns the job lifecycle: submission, de-duplication, FIFO
// processing with a single worker, bounded retries, and scheduled
// maintenance. Nothing else mutates job status.
package queue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pressroom-io/pressroom/internal/apperr"
	"github.com/pressroom-io/pressroom/internal/domain"
	"github.com/pressroom-io/pressroom/internal/store"
)

// rescheduleDelay spaces consecutive jobs so a deep backlog cannot starve
// request handling in a shared process.
const rescheduleDelay = 100 * time.Millisecond

// Runner executes one job's pipeline. The queue treats it as a black box:
// any returned error consumes one retry.
type Runner interface {
	Run(ctx context.Context, job *domain.Job) (*domain.PublishResult, error)
}

// RunnerFunc adapts a function to the Runner interface.
type RunnerFunc func(ctx context.Context, job *domain.Job) (*domain.PublishResult, error)

func (f RunnerFunc) Run(ctx context.Context, job *domain.Job) (*domain.PublishResult, error) {
	return f(ctx, job)
}

type Queue struct {
	jobs     store.JobStore
	runner   Runner
	notifier Notifier
	delay    time.Duration

	wake chan struct{}

	mu      sync.Mutex
	started bool
	done    chan struct{}
}

type Option func(*Queue)

func WithNotifier(n Notifier) Option {
	return func(q *Queue) { q.notifier = n }
}

// WithRescheduleDelay overrides the inter-job delay; tests shrink it.
func WithRescheduleDelay(d time.Duration) Option {
	return func(q *Queue) { q.delay = d }
}

func NewQueue(jobs store.JobStore, runner Runner, opts ...Option) *Queue {
	q := &Queue{
		jobs:     jobs,
		runner:   runner,
		notifier: NewSlogNotifier(),
		delay:    rescheduleDelay,
		wake:     make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Submit validates and persists a job as pending, then triggers draining.
// Never blocks on job completion. A non-failed job with the same input hash
// is returned instead of creating a duplicate.
func (q *Queue) Submit(ctx context.Context, payload domain.JobPayload) (*domain.Job, error) {
	if payload == nil {
		return nil, apperr.NewValidation("job payload is required")
	}
	if err := payload.Validate(); err != nil {
		return nil, apperr.NewValidationWrap("invalid job payload", err)
	}

	hash := payload.InputHash()
	if existing, err := q.jobs.FindActiveByHash(ctx, hash); err == nil {
		slog.Info("duplicate submission, returning existing job",
			"jobId", existing.ID,
			"status", existing.Status,
		)
		return existing, nil
	}

	job := &domain.Job{
		ID:         uuid.New(),
		Kind:       payload.Kind(),
		Payload:    payload,
		Status:     domain.JobPending,
		MaxRetries: domain.DefaultMaxRetries,
		InputHash:  hash,
		CreatedAt:  time.Now(),
	}

	if err := q.jobs.SaveJob(ctx, job); err != nil {
		return nil, fmt.Errorf("persist job: %w", err)
	}

	slog.Info("job submitted", "jobId", job.ID, "kind", job.Kind)
	q.notify()
	return job, nil
}

// GetStatus returns the job or a NotFoundError.
func (q *Queue) GetStatus(ctx context.Context, id uuid.UUID) (*domain.Job, error) {
	return q.jobs.GetJob(ctx, id)
}

// Stats returns job counts by status.
func (q *Queue) Stats(ctx context.Context) (map[domain.JobStatus]int, error) {
	return q.jobs.CountByStatus(ctx)
}

// RequeueStuck returns jobs stuck in processing longer than maxAge to
// pending. Exposed for the operator endpoint and scheduled maintenance.
func (q *Queue) RequeueStuck(ctx context.Context, maxAge time.Duration) (int, error) {
	n, err := q.jobs.RequeueStuck(ctx, time.Now().Add(-maxAge))
	if err != nil {
		return 0, err
	}
	if n > 0 {
		slog.Warn("requeued stuck jobs", "count", n, "maxAge", maxAge)
		q.notify()
	}
	return n, nil
}

// Cleanup removes terminal jobs older than the retention window.
func (q *Queue) Cleanup(ctx context.Context, retention time.Duration) (int, error) {
	return q.jobs.DeleteTerminalBefore(ctx, time.Now().Add(-retention))
}

// Start launches the single worker. One active job at a time keeps provider
// rate limits and failure reasoning simple.
func (q *Queue) Start(ctx context.Context) {
	q.mu.Lock()
	if q.started {
		q.mu.Unlock()
		return
	}
	q.started = true
	q.done = make(chan struct{})
	q.mu.Unlock()

	go q.loop(ctx)
}

// Done is closed once the worker has exited.
func (q *Queue) Done() <-chan struct{} {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.done
}

func (q *Queue) notify() {
	select {
	case q.wake <- struct{}{}:
	default:
	}
}

func (q *Queue) loop(ctx context.Context) {
	defer close(q.done)

	for {
		processed := q.processNext(ctx)
		if ctx.Err() != nil {
			return
		}

		if processed {
			// More work may remain; yield briefly instead of looping tight.
			select {
			case <-ctx.Done():
				return
			case <-time.After(q.delay):
			}
			continue
		}

		select {
		case <-ctx.Done():
			return
		case <-q.wake:
		case <-time.After(5 * time.Second):
			// Poll fallback covers wakeups lost across process boundaries,
			// e.g. rows requeued straight through the store.
		}
	}
}

// processNext picks the oldest pending job and runs it through the pipeline.
// Returns false when the pending set is empty.
func (q *Queue) processNext(ctx context.Context) bool {
	job, err := q.jobs.NextPending(ctx)
	if err != nil {
		var notFound *apperr.NotFoundError
		if !errors.As(err, &notFound) {
			slog.Error("failed to pick next pending job", "error", err)
		}
		return false
	}

	now := time.Now()
	job.Status = domain.JobProcessing
	job.StartedAt = &now
	if err := q.jobs.UpdateJob(ctx, job); err != nil {
		slog.Error("failed to mark job processing", "jobId", job.ID, "error", err)
		return false
	}

	slog.Info("job started", "jobId", job.ID, "kind", job.Kind, "attempt", job.RetryCount+1)

	result, runErr := q.runner.Run(ctx, job)
	if runErr != nil {
		q.handleFailure(ctx, job, runErr)
		return true
	}

	completed := time.Now()
	job.Status = domain.JobCompleted
	job.CompletedAt = &completed
	job.Result = result
	job.Error = ""
	if err := q.jobs.UpdateJob(ctx, job); err != nil {
		slog.Error("failed to persist job completion", "jobId", job.ID, "error", err)
		return true
	}

	slog.Info("job completed", "jobId", job.ID, "articleId", result.ArticleID)
	q.notifier.NotifyCompleted(ctx, job)
	return true
}

// handleFailure consumes one retry: back to pending while budget remains,
// failed exactly once when it runs out.
func (q *Queue) handleFailure(ctx context.Context, job *domain.Job, runErr error) {
	job.RetryCount++
	job.Error = runErr.Error()

	if job.RetryCount < job.MaxRetries {
		job.Status = domain.JobPending
		job.StartedAt = nil
		slog.Warn("job failed, will retry",
			"jobId", job.ID,
			"attempt", job.RetryCount,
			"maxRetries", job.MaxRetries,
			"error", runErr,
		)
	} else {
		now := time.Now()
		job.Status = domain.JobFailed
		job.CompletedAt = &now
		slog.Error("job failed permanently",
			"jobId", job.ID,
			"attempts", job.RetryCount,
			"error", runErr,
		)
	}

	if err := q.jobs.UpdateJob(ctx, job); err != nil {
		slog.Error("failed to persist job failure", "jobId", job.ID, "error", err)
		return
	}
	if job.Status == domain.JobFailed {
		q.notifier.NotifyFailed(ctx, job)
	}
}
