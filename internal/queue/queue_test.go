package queue

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pressroom-io/pressroom/internal/apperr"
	"github.com/pressroom-io/pressroom/internal/domain"
	"github.com/pressroom-io/pressroom/internal/store/inmem"
)

func succeedingRunner() Runner {
	return RunnerFunc(func(ctx context.Context, job *domain.Job) (*domain.PublishResult, error) {
		return &domain.PublishResult{
			ArticleID: uuid.New(),
			Title:     "ok",
			Category:  domain.CategoryTechnology,
			Languages: []domain.Locale{domain.LocaleEN},
			Published: true,
		}, nil
	})
}

func failingRunner(err error) Runner {
	return RunnerFunc(func(ctx context.Context, job *domain.Job) (*domain.PublishResult, error) {
		return nil, err
	})
}

// drain processes synchronously until the pending set empties, so tests
// do not race the background worker.
func drain(t *testing.T, q *Queue) {
	t.Helper()
	for i := 0; i < 100; i++ {
		if !q.processNext(context.Background()) {
			return
		}
	}
	t.Fatal("queue did not drain after 100 iterations")
}

func TestSubmitValidation(t *testing.T) {
	q := NewQueue(inmem.NewStore(), succeedingRunner())

	tests := []struct {
		name    string
		payload domain.JobPayload
	}{
		{"nil payload", nil},
		{"empty url", domain.URLIngestPayload{}},
		{"empty text", domain.TextIngestPayload{Title: "has title but no text"}},
		{"empty prompt", domain.CopywritePayload{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := q.Submit(context.Background(), tt.payload)
			var validation *apperr.ValidationError
			if !errors.As(err, &validation) {
				t.Errorf("expected ValidationError, got %v", err)
			}
		})
	}
}

func TestSubmitDeduplicatesByInputHash(t *testing.T) {
	q := NewQueue(inmem.NewStore(), succeedingRunner())
	ctx := context.Background()

	first, err := q.Submit(ctx, domain.TextIngestPayload{Text: "same text"})
	if err != nil {
		t.Fatal(err)
	}
	second, err := q.Submit(ctx, domain.TextIngestPayload{Text: "same text"})
	if err != nil {
		t.Fatal(err)
	}

	if first.ID != second.ID {
		t.Errorf("duplicate submission created a new job: %s vs %s", first.ID, second.ID)
	}

	stats, _ := q.Stats(ctx)
	if stats[domain.JobPending] != 1 {
		t.Errorf("expected 1 pending job, got %d", stats[domain.JobPending])
	}
}

func TestFIFOProcessingOrder(t *testing.T) {
	var processed []string
	runner := RunnerFunc(func(ctx context.Context, job *domain.Job) (*domain.PublishResult, error) {
		processed = append(processed, job.Payload.(domain.TextIngestPayload).Text)
		return &domain.PublishResult{ArticleID: uuid.New()}, nil
	})

	q := NewQueue(inmem.NewStore(), runner)
	ctx := context.Background()

	// Distinct CreatedAt per job; submission order defines processing order.
	for i := 0; i < 3; i++ {
		job := &domain.Job{
			ID:         uuid.New(),
			Kind:       domain.JobTextIngest,
			Payload:    domain.TextIngestPayload{Text: fmt.Sprintf("job-%d", i)},
			Status:     domain.JobPending,
			MaxRetries: domain.DefaultMaxRetries,
			InputHash:  fmt.Sprintf("hash-%d", i),
			CreatedAt:  time.Now().Add(time.Duration(i) * time.Millisecond),
		}
		if err := q.jobs.SaveJob(ctx, job); err != nil {
			t.Fatal(err)
		}
	}

	drain(t, q)

	expected := []string{"job-0", "job-1", "job-2"}
	if len(processed) != len(expected) {
		t.Fatalf("processed %d jobs, want %d", len(processed), len(expected))
	}
	for i, text := range expected {
		if processed[i] != text {
			t.Errorf("position %d: processed %q, want %q", i, processed[i], text)
		}
	}
}

func TestRetryBound(t *testing.T) {
	q := NewQueue(inmem.NewStore(), failingRunner(errors.New("provider down")))
	ctx := context.Background()

	job, err := q.Submit(ctx, domain.TextIngestPayload{Text: "doomed"})
	if err != nil {
		t.Fatal(err)
	}

	drain(t, q)

	final, err := q.GetStatus(ctx, job.ID)
	if err != nil {
		t.Fatal(err)
	}
	if final.Status != domain.JobFailed {
		t.Fatalf("status = %s, want %s", final.Status, domain.JobFailed)
	}
	if final.RetryCount != domain.DefaultMaxRetries {
		t.Errorf("retryCount = %d, want %d", final.RetryCount, domain.DefaultMaxRetries)
	}
	if final.Error == "" {
		t.Error("failed job has no captured error")
	}

	// A failed job never re-enters pending.
	if q.processNext(ctx) {
		t.Error("worker picked up a permanently failed job")
	}
}

func TestCompletedJobCarriesResult(t *testing.T) {
	q := NewQueue(inmem.NewStore(), succeedingRunner())
	ctx := context.Background()

	job, err := q.Submit(ctx, domain.URLIngestPayload{URL: "https://example.com/article"})
	if err != nil {
		t.Fatal(err)
	}

	drain(t, q)

	final, err := q.GetStatus(ctx, job.ID)
	if err != nil {
		t.Fatal(err)
	}
	if final.Status != domain.JobCompleted {
		t.Fatalf("status = %s, want %s", final.Status, domain.JobCompleted)
	}
	if final.Result == nil || final.Result.Title != "ok" {
		t.Errorf("missing or wrong result: %+v", final.Result)
	}
	if final.CompletedAt == nil {
		t.Error("completed job has no completion timestamp")
	}
}

func TestGetStatusUnknownJob(t *testing.T) {
	q := NewQueue(inmem.NewStore(), succeedingRunner())

	_, err := q.GetStatus(context.Background(), uuid.New())
	var notFound *apperr.NotFoundError
	if !errors.As(err, &notFound) {
		t.Errorf("expected NotFoundError, got %v", err)
	}
}

func TestRequeueStuck(t *testing.T) {
	memStore := inmem.NewStore()
	q := NewQueue(memStore, succeedingRunner())
	ctx := context.Background()

	started := time.Now().Add(-time.Hour)
	job := &domain.Job{
		ID:         uuid.New(),
		Kind:       domain.JobTextIngest,
		Payload:    domain.TextIngestPayload{Text: "orphaned"},
		Status:     domain.JobProcessing,
		MaxRetries: domain.DefaultMaxRetries,
		InputHash:  "orphan-hash",
		CreatedAt:  started,
		StartedAt:  &started,
	}
	if err := memStore.SaveJob(ctx, job); err != nil {
		t.Fatal(err)
	}

	n, err := q.RequeueStuck(ctx, 30*time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("requeued %d jobs, want 1", n)
	}

	recycled, err := q.GetStatus(ctx, job.ID)
	if err != nil {
		t.Fatal(err)
	}
	if recycled.Status != domain.JobPending {
		t.Errorf("status = %s, want %s", recycled.Status, domain.JobPending)
	}
}
