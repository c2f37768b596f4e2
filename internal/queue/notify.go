package queue

import (
	"context"
	"log/slog"

	"github.com/pressroom-io/pressroom/internal/domain"
)

// Notifier receives terminal job outcomes for routing back to the submitting
// conversation. The transport is pluggable; the queue only cares that
// delivery never blocks processing.
type Notifier interface {
	NotifyCompleted(ctx context.Context, job *domain.Job)
	NotifyFailed(ctx context.Context, job *domain.Job)
}

// SlogNotifier logs outcomes instead of delivering them. Used when no chat
// transport is wired.
type SlogNotifier struct{}

func NewSlogNotifier() *SlogNotifier {
	return &SlogNotifier{}
}

func (n *SlogNotifier) NotifyCompleted(ctx context.Context, job *domain.Job) {
	ref := domain.ConversationOf(job.Payload)
	if ref.ChatID == 0 {
		return
	}
	slog.Info("completion notification",
		"jobId", job.ID,
		"chatId", ref.ChatID,
		"messageId", ref.MessageID,
		"title", job.Result.Title,
		"urls", job.Result.URLs,
	)
}

func (n *SlogNotifier) NotifyFailed(ctx context.Context, job *domain.Job) {
	ref := domain.ConversationOf(job.Payload)
	if ref.ChatID == 0 {
		return
	}
	slog.Info("failure notification",
		"jobId", job.ID,
		"chatId", ref.ChatID,
		"messageId", ref.MessageID,
		"error", job.Error,
	)
}
