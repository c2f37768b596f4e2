package pg

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/pressroom-io/pressroom/internal/apperr"
	"github.com/pressroom-io/pressroom/internal/domain"
)

func (s *Store) GetPreferences(ctx context.Context, chatID int64) (*domain.Preferences, error) {
	row := s.db.QueryRow(ctx, `
        SELECT chat_id, content_style, images_count, images_source, auto_publish
        FROM user_preferences WHERE chat_id = $1;
    `, chatID)

	var prefs domain.Preferences
	err := row.Scan(
		&prefs.ChatID,
		&prefs.ContentStyle,
		&prefs.ImagesCount,
		&prefs.ImagesSource,
		&prefs.AutoPublish,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NewNotFound(fmt.Sprintf("preferences not found for chat %d", chatID))
	}
	if err != nil {
		return nil, fmt.Errorf("scan preferences: %w", err)
	}
	return &prefs, nil
}

func (s *Store) SavePreferences(ctx context.Context, prefs domain.Preferences) error {
	cmd := `
        INSERT INTO user_preferences (chat_id, content_style, images_count, images_source, auto_publish)
        VALUES ($1, $2, $3, $4, $5)
        ON CONFLICT (chat_id) DO UPDATE SET
            content_style = EXCLUDED.content_style,
            images_count = EXCLUDED.images_count,
            images_source = EXCLUDED.images_source,
            auto_publish = EXCLUDED.auto_publish;
    `
	_, err := s.db.Exec(ctx, cmd,
		prefs.ChatID,
		prefs.ContentStyle,
		prefs.ImagesCount,
		prefs.ImagesSource,
		prefs.AutoPublish,
	)
	if err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}
	return nil
}
