package pg

import (
	"context"
	"fmt"
)

// schema is applied at startup. Idempotent so restarts are safe without a
// separate migration runner.
const schema = `
CREATE TABLE IF NOT EXISTS jobs (
    id           UUID PRIMARY KEY,
    kind         TEXT NOT NULL,
    status       TEXT NOT NULL,
    payload      JSONB NOT NULL,
    input_hash   TEXT NOT NULL,
    retry_count  INT NOT NULL DEFAULT 0,
    max_retries  INT NOT NULL DEFAULT 3,
    created_at   TIMESTAMPTZ NOT NULL,
    started_at   TIMESTAMPTZ,
    completed_at TIMESTAMPTZ,
    result       JSONB,
    error        TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_jobs_status_created ON jobs (status, created_at);
CREATE INDEX IF NOT EXISTS idx_jobs_input_hash ON jobs (input_hash);

CREATE TABLE IF NOT EXISTS published_articles (
    id         UUID PRIMARY KEY,
    slug_en    TEXT NOT NULL DEFAULT '',
    slug_pl    TEXT NOT NULL DEFAULT '',
    content_en TEXT NOT NULL DEFAULT '',
    content_pl TEXT NOT NULL DEFAULT '',
    excerpt_en TEXT NOT NULL DEFAULT '',
    excerpt_pl TEXT NOT NULL DEFAULT '',
    url_en     TEXT NOT NULL DEFAULT '',
    url_pl     TEXT NOT NULL DEFAULT '',
    category   TEXT NOT NULL,
    image_url  TEXT NOT NULL DEFAULT '',
    word_count INT NOT NULL DEFAULT 0,
    languages  TEXT[] NOT NULL DEFAULT '{}',
    published  BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS user_preferences (
    chat_id       BIGINT PRIMARY KEY,
    content_style TEXT NOT NULL,
    images_count  INT NOT NULL,
    images_source TEXT NOT NULL,
    auto_publish  BOOLEAN NOT NULL
);
`

func (s *Store) Init(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
