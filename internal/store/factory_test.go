package store

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/pressroom-io/pressroom/internal/domain"
)

func TestFallbackToMemoryWhenDurableUnconfigured(t *testing.T) {
	ctx := context.Background()

	dataStore, storeType, err := New(ctx, &Config{Type: PG})
	if err != nil {
		t.Fatalf("fallback must not fail: %v", err)
	}
	defer dataStore.Close()

	if storeType != InMem {
		t.Fatalf("store type = %s, want %s", storeType, InMem)
	}

	// The degraded store must behave identically for the queue's operations.
	job := &domain.Job{
		ID:         uuid.New(),
		Kind:       domain.JobTextIngest,
		Payload:    domain.TextIngestPayload{Text: "survives fallback"},
		Status:     domain.JobPending,
		MaxRetries: domain.DefaultMaxRetries,
		InputHash:  domain.TextIngestPayload{Text: "survives fallback"}.InputHash(),
	}
	if err := dataStore.SaveJob(ctx, job); err != nil {
		t.Fatal(err)
	}

	got, err := dataStore.GetJob(ctx, job.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != domain.JobPending {
		t.Errorf("status = %s, want %s", got.Status, domain.JobPending)
	}

	counts, err := dataStore.CountByStatus(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if counts[domain.JobPending] != 1 {
		t.Errorf("pending count = %d, want 1", counts[domain.JobPending])
	}
}

func TestUnsupportedStoreType(t *testing.T) {
	_, _, err := New(context.Background(), &Config{Type: "redis"})
	if err == nil {
		t.Fatal("expected error for unsupported store type")
	}
}
