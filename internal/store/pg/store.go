// Package pg is the durable backend: three tables behind raw SQL over a
// pgx connection pool.
package pg

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(pool *ConnectionPool) (*Store, error) {
	return &Store{db: pool.conn}, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func (s *Store) Close() {
	s.db.Close()
}
