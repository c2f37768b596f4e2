// Package prefs resolves per-submitter pipeline settings through a
// three-tier chain: submitter row, global default row, hard-coded defaults.
package prefs

import (
	"context"
	"errors"
	"log/slog"

	"github.com/pressroom-io/pressroom/internal/apperr"
	"github.com/pressroom-io/pressroom/internal/domain"
	"github.com/pressroom-io/pressroom/internal/store"
)

type Resolver struct {
	store store.PrefsStore
}

func NewResolver(prefsStore store.PrefsStore) *Resolver {
	return &Resolver{store: prefsStore}
}

// Resolve never fails: a missing row falls through to the next tier and a
// store error is treated the same way, since preferences are advisory input.
func (r *Resolver) Resolve(ctx context.Context, chatID int64) domain.Preferences {
	if chatID != domain.GlobalPreferencesID {
		if prefs, ok := r.lookup(ctx, chatID); ok {
			return prefs.Normalize()
		}
	}

	if prefs, ok := r.lookup(ctx, domain.GlobalPreferencesID); ok {
		return prefs.Normalize()
	}

	return domain.Defaults()
}

func (r *Resolver) lookup(ctx context.Context, chatID int64) (domain.Preferences, bool) {
	prefs, err := r.store.GetPreferences(ctx, chatID)
	if err != nil {
		var notFound *apperr.NotFoundError
		if !errors.As(err, &notFound) {
			slog.Warn("preferences lookup failed, falling through", "chatId", chatID, "error", err)
		}
		return domain.Preferences{}, false
	}
	return *prefs, true
}

// Save normalizes and persists a preference row.
func (r *Resolver) Save(ctx context.Context, prefs domain.Preferences) error {
	normalized := prefs.Normalize()
	normalized.ChatID = prefs.ChatID
	return r.store.SavePreferences(ctx, normalized)
}
