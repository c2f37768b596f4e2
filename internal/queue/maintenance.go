package queue

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

const (
	// Terminal jobs are kept for a day so submitters can still query status.
	defaultRetention = 24 * time.Hour
	// A job processing longer than this is assumed orphaned by a crash.
	defaultStaleAge = 30 * time.Minute

	cleanupSchedule = "@hourly"
	requeueSchedule = "@every 5m"
)

// Maintenance runs the scheduled housekeeping of the queue: dropping old
// terminal jobs and recycling jobs orphaned mid-processing.
type Maintenance struct {
	queue     *Queue
	cron      *cron.Cron
	retention time.Duration
	staleAge  time.Duration
}

type MaintenanceOption func(*Maintenance)

func WithRetention(d time.Duration) MaintenanceOption {
	return func(m *Maintenance) { m.retention = d }
}

func WithStaleAge(d time.Duration) MaintenanceOption {
	return func(m *Maintenance) { m.staleAge = d }
}

func NewMaintenance(q *Queue, opts ...MaintenanceOption) *Maintenance {
	m := &Maintenance{
		queue:     q,
		cron:      cron.New(),
		retention: defaultRetention,
		staleAge:  defaultStaleAge,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Maintenance) Start(ctx context.Context) error {
	if _, err := m.cron.AddFunc(cleanupSchedule, func() {
		n, err := m.queue.Cleanup(ctx, m.retention)
		if err != nil {
			slog.Error("job cleanup failed", "error", err)
			return
		}
		if n > 0 {
			slog.Info("removed old terminal jobs", "count", n)
		}
	}); err != nil {
		return err
	}

	if _, err := m.cron.AddFunc(requeueSchedule, func() {
		if _, err := m.queue.RequeueStuck(ctx, m.staleAge); err != nil {
			slog.Error("stuck job requeue failed", "error", err)
		}
	}); err != nil {
		return err
	}

	m.cron.Start()
	return nil
}

func (m *Maintenance) Stop() {
	<-m.cron.Stop().Done()
}
