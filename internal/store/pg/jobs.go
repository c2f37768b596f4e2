package pg

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pressroom-io/pressroom/internal/apperr"
	"github.com/pressroom-io/pressroom/internal/domain"
)

const jobColumns = `id, kind, status, payload, input_hash, retry_count, max_retries,
	created_at, started_at, completed_at, result, error`

func (s *Store) SaveJob(ctx context.Context, job *domain.Job) error {
	payloadJSON, err := json.Marshal(job.Payload)
	if err != nil {
		return fmt.Errorf("marshal job payload: %w", err)
	}

	cmd := `
        INSERT INTO jobs (id, kind, status, payload, input_hash, retry_count, max_retries, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
    `
	_, err = s.db.Exec(ctx, cmd,
		job.ID,
		job.Kind,
		job.Status,
		payloadJSON,
		job.InputHash,
		job.RetryCount,
		job.MaxRetries,
		job.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert job: %w", err)
	}
	return nil
}

func (s *Store) UpdateJob(ctx context.Context, job *domain.Job) error {
	var resultJSON []byte
	if job.Result != nil {
		var err error
		resultJSON, err = json.Marshal(job.Result)
		if err != nil {
			return fmt.Errorf("marshal job result: %w", err)
		}
	}

	cmd := `
        UPDATE jobs
        SET status = $2, retry_count = $3, started_at = $4, completed_at = $5, result = $6, error = $7
        WHERE id = $1;
    `
	tag, err := s.db.Exec(ctx, cmd,
		job.ID,
		job.Status,
		job.RetryCount,
		job.StartedAt,
		job.CompletedAt,
		resultJSON,
		job.Error,
	)
	if err != nil {
		return fmt.Errorf("update job: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NewNotFound("job not found: " + job.ID.String())
	}
	return nil
}

func (s *Store) GetJob(ctx context.Context, id uuid.UUID) (*domain.Job, error) {
	row := s.db.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1;`, id)
	return scanJob(row)
}

func (s *Store) FindActiveByHash(ctx context.Context, hash string) (*domain.Job, error) {
	row := s.db.QueryRow(ctx, `
        SELECT `+jobColumns+` FROM jobs
        WHERE input_hash = $1 AND status != $2
        ORDER BY created_at DESC
        LIMIT 1;
    `, hash, domain.JobFailed)
	return scanJob(row)
}

func (s *Store) NextPending(ctx context.Context) (*domain.Job, error) {
	row := s.db.QueryRow(ctx, `
        SELECT `+jobColumns+` FROM jobs
        WHERE status = $1
        ORDER BY created_at ASC
        LIMIT 1;
    `, domain.JobPending)
	return scanJob(row)
}

func (s *Store) CountByStatus(ctx context.Context) (map[domain.JobStatus]int, error) {
	rows, err := s.db.Query(ctx, `SELECT status, COUNT(*) FROM jobs GROUP BY status;`)
	if err != nil {
		return nil, fmt.Errorf("count jobs: %w", err)
	}
	defer rows.Close()

	counts := make(map[domain.JobStatus]int)
	for rows.Next() {
		var (
			status domain.JobStatus
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scan job count: %w", err)
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

func (s *Store) DeleteTerminalBefore(ctx context.Context, cutoff time.Time) (int, error) {
	tag, err := s.db.Exec(ctx, `
        DELETE FROM jobs
        WHERE status IN ($1, $2) AND created_at < $3;
    `, domain.JobCompleted, domain.JobFailed, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete terminal jobs: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

func (s *Store) RequeueStuck(ctx context.Context, cutoff time.Time) (int, error) {
	tag, err := s.db.Exec(ctx, `
        UPDATE jobs
        SET status = $1, started_at = NULL
        WHERE status = $2 AND started_at < $3;
    `, domain.JobPending, domain.JobProcessing, cutoff)
	if err != nil {
		return 0, fmt.Errorf("requeue stuck jobs: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

func scanJob(row pgx.Row) (*domain.Job, error) {
	var (
		job         domain.Job
		payloadJSON []byte
		resultJSON  []byte
	)
	err := row.Scan(
		&job.ID,
		&job.Kind,
		&job.Status,
		&payloadJSON,
		&job.InputHash,
		&job.RetryCount,
		&job.MaxRetries,
		&job.CreatedAt,
		&job.StartedAt,
		&job.CompletedAt,
		&resultJSON,
		&job.Error,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NewNotFound("job not found")
	}
	if err != nil {
		return nil, fmt.Errorf("scan job: %w", err)
	}

	job.Payload, err = domain.DecodePayload(job.Kind, payloadJSON)
	if err != nil {
		return nil, err
	}
	if len(resultJSON) > 0 {
		var result domain.PublishResult
		if err := json.Unmarshal(resultJSON, &result); err != nil {
			return nil, fmt.Errorf("decode job result: %w", err)
		}
		job.Result = &result
	}
	return &job, nil
}
