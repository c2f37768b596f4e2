// Package inmem is the fallback backend used when the durable store is
// unreachable at startup. State does not survive a restart; jobs are
// re-submittable and de-duplicated by input hash, so the loss is bounded.
package inmem

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pressroom-io/pressroom/internal/apperr"
	"github.com/pressroom-io/pressroom/internal/domain"
)

type Store struct {
	mu       sync.RWMutex
	jobs     map[uuid.UUID]domain.Job
	articles map[uuid.UUID]domain.PublishedArticle
	prefs    map[int64]domain.Preferences
}

func NewStore() *Store {
	return &Store{
		jobs:     make(map[uuid.UUID]domain.Job),
		articles: make(map[uuid.UUID]domain.PublishedArticle),
		prefs:    make(map[int64]domain.Preferences),
	}
}

func (s *Store) Ping(ctx context.Context) error { return nil }

func (s *Store) Close() {}

func (s *Store) SaveJob(ctx context.Context, job *domain.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = *job
	return nil
}

func (s *Store) UpdateJob(ctx context.Context, job *domain.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.jobs[job.ID]; !ok {
		return apperr.NewNotFound("job not found: " + job.ID.String())
	}
	s.jobs[job.ID] = *job
	return nil
}

func (s *Store) GetJob(ctx context.Context, id uuid.UUID) (*domain.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	job, ok := s.jobs[id]
	if !ok {
		return nil, apperr.NewNotFound("job not found: " + id.String())
	}
	return &job, nil
}

func (s *Store) FindActiveByHash(ctx context.Context, hash string) (*domain.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var found *domain.Job
	for id := range s.jobs {
		job := s.jobs[id]
		if job.InputHash != hash || job.Status == domain.JobFailed {
			continue
		}
		if found == nil || job.CreatedAt.After(found.CreatedAt) {
			found = &job
		}
	}
	if found == nil {
		return nil, apperr.NewNotFound("job not found")
	}
	return found, nil
}

func (s *Store) NextPending(ctx context.Context) (*domain.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var oldest *domain.Job
	for id := range s.jobs {
		job := s.jobs[id]
		if job.Status != domain.JobPending {
			continue
		}
		if oldest == nil || job.CreatedAt.Before(oldest.CreatedAt) {
			oldest = &job
		}
	}
	if oldest == nil {
		return nil, apperr.NewNotFound("no pending jobs")
	}
	return oldest, nil
}

func (s *Store) CountByStatus(ctx context.Context) (map[domain.JobStatus]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	counts := make(map[domain.JobStatus]int)
	for _, job := range s.jobs {
		counts[job.Status]++
	}
	return counts, nil
}

func (s *Store) DeleteTerminalBefore(ctx context.Context, cutoff time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, job := range s.jobs {
		if (job.Status == domain.JobCompleted || job.Status == domain.JobFailed) && job.CreatedAt.Before(cutoff) {
			delete(s.jobs, id)
			n++
		}
	}
	return n, nil
}

func (s *Store) RequeueStuck(ctx context.Context, cutoff time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, job := range s.jobs {
		if job.Status != domain.JobProcessing {
			continue
		}
		if job.StartedAt != nil && job.StartedAt.Before(cutoff) {
			job.Status = domain.JobPending
			job.StartedAt = nil
			s.jobs[id] = job
			n++
		}
	}
	return n, nil
}

func (s *Store) UpsertArticle(ctx context.Context, article *domain.PublishedArticle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if article.ID == uuid.Nil {
		article.ID = uuid.New()
	}
	if article.CreatedAt.IsZero() {
		article.CreatedAt = time.Now()
	}
	s.articles[article.ID] = *article
	return nil
}

func (s *Store) GetArticle(ctx context.Context, id uuid.UUID) (*domain.PublishedArticle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	article, ok := s.articles[id]
	if !ok {
		return nil, apperr.NewNotFound("article not found: " + id.String())
	}
	return &article, nil
}

func (s *Store) GetPreferences(ctx context.Context, chatID int64) (*domain.Preferences, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	prefs, ok := s.prefs[chatID]
	if !ok {
		return nil, apperr.NewNotFound(fmt.Sprintf("preferences not found for chat %d", chatID))
	}
	return &prefs, nil
}

func (s *Store) SavePreferences(ctx context.Context, prefs domain.Preferences) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefs[prefs.ChatID] = prefs
	return nil
}
