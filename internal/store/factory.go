package store

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/pressroom-io/pressroom/internal/store/inmem"
	"github.com/pressroom-io/pressroom/internal/store/pg"
)

type Config struct {
	Type Type
	Pg   *pg.PoolConfig
}

func LoadConfigFromEnv() *Config {
	storeType := Type(os.Getenv("STORE_TYPE"))
	if storeType == "" {
		storeType = PG
	}

	cfg := &Config{Type: storeType}
	if connStr := os.Getenv("DATABASE_URL"); connStr != "" {
		cfg.Pg = &pg.PoolConfig{ConnStr: connStr}
	}
	return cfg
}

// New builds the configured backend. An unreachable or unconfigured durable
// backend downgrades to memory for the rest of the process lifetime; the
// returned Type reports what actually got built.
func New(ctx context.Context, cfg *Config) (Store, Type, error) {
	switch cfg.Type {
	case PG:
		durable, err := newPg(ctx, cfg)
		if err != nil {
			slog.Error("durable store unavailable, falling back to in-memory store; jobs will not survive restart",
				"error", err,
			)
			return inmem.NewStore(), InMem, nil
		}
		return durable, PG, nil
	case InMem:
		return inmem.NewStore(), InMem, nil
	default:
		return nil, "", fmt.Errorf(string(ErrUnsupportedStore), cfg.Type)
	}
}

func newPg(ctx context.Context, cfg *Config) (Store, error) {
	if cfg.Pg == nil || cfg.Pg.ConnStr == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}

	pool, err := pg.NewConnectionPool(ctx, *cfg.Pg)
	if err != nil {
		return nil, err
	}

	durable, err := pg.NewStore(pool)
	if err != nil {
		pool.Close()
		return nil, err
	}
	if err := durable.Init(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return durable, nil
}
