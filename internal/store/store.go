// Package store defines the persistence contracts of the pipeline and the
// factory that selects a backend. The durable backend is preferred; when it
// is unreachable at startup the process permanently downgrades to memory.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pressroom-io/pressroom/internal/domain"
)

type Type string

const (
	PG    Type = "pg"
	InMem Type = "in_mem"
)

// JobStore persists queue state. Only the queue writes through it.
type JobStore interface {
	SaveJob(ctx context.Context, job *domain.Job) error
	UpdateJob(ctx context.Context, job *domain.Job) error
	GetJob(ctx context.Context, id uuid.UUID) (*domain.Job, error)
	// FindActiveByHash locates a non-failed job with the same input hash.
	FindActiveByHash(ctx context.Context, hash string) (*domain.Job, error)
	// NextPending returns the oldest pending job by creation time.
	NextPending(ctx context.Context) (*domain.Job, error)
	CountByStatus(ctx context.Context) (map[domain.JobStatus]int, error)
	// DeleteTerminalBefore removes completed and failed jobs older than cutoff.
	DeleteTerminalBefore(ctx context.Context, cutoff time.Time) (int, error)
	// RequeueStuck returns jobs stuck in processing since before cutoff to
	// pending.
	RequeueStuck(ctx context.Context, cutoff time.Time) (int, error)
}

// ArticleStore persists published bilingual records.
type ArticleStore interface {
	UpsertArticle(ctx context.Context, article *domain.PublishedArticle) error
	GetArticle(ctx context.Context, id uuid.UUID) (*domain.PublishedArticle, error)
}

// PrefsStore reads and writes per-submitter preference rows.
type PrefsStore interface {
	GetPreferences(ctx context.Context, chatID int64) (*domain.Preferences, error)
	SavePreferences(ctx context.Context, prefs domain.Preferences) error
}

// Store is the full persistence surface of one backend.
type Store interface {
	JobStore
	ArticleStore
	PrefsStore
	Ping(ctx context.Context) error
	Close()
}

type StoreError string

const (
	ErrUnsupportedStore StoreError = "unsupported store type: %s"
)

func (e StoreError) Error() string {
	return string(e)
}
