package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/CaioVictor3/Bus-Manager-App/internal/config"
)

// Postgres backs the KeyValue contract with a single kv_entries table.
// Useful when an operator already runs Postgres and wants the roster
// data under the same backup regime.
type Postgres struct {
	Pool *pgxpool.Pool
}

// NewPostgres establishes a connection pool. The DSN is required: when
// Postgres is the selected durable backend there is nothing to fall
// back to, so a missing DSN fails construction instead of deferring a
// nil-pool crash to the first read.
func NewPostgres(ctx context.Context, cfg config.PostgresConfig, logger *zap.Logger) (*Postgres, error) {
	if cfg.DSN == "" {
		return nil, errors.New("POSTGRES_DSN is required for the postgres storage backend")
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, err
	}

	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolCfg.MinConns = cfg.MinConns
	}
	if cfg.ConnMaxIdleSec > 0 {
		poolCfg.MaxConnIdleTime = time.Duration(cfg.ConnMaxIdleSec) * time.Second
	}
	if cfg.ConnMaxLifeSec > 0 {
		poolCfg.MaxConnLifetime = time.Duration(cfg.ConnMaxLifeSec) * time.Second
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	logger.Info("connected to postgres")
	return &Postgres{Pool: pool}, nil
}

// Close releases pool resources.
func (p *Postgres) Close() {
	if p != nil && p.Pool != nil {
		p.Pool.Close()
	}
}

// Ping verifies database connectivity.
func (p *Postgres) Ping(ctx context.Context) error {
	if p == nil || p.Pool == nil {
		return errors.New("postgres pool not configured")
	}
	return p.Pool.Ping(ctx)
}

// PoolHandle returns the underlying pgx pool.
func (p *Postgres) PoolHandle() *pgxpool.Pool {
	if p == nil {
		return nil
	}
	return p.Pool
}

func (p *Postgres) Get(ctx context.Context, key string) ([]byte, error) {
	const query = `SELECT value FROM kv_entries WHERE key=$1`

	var value []byte
	err := p.Pool.QueryRow(ctx, query, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

func (p *Postgres) Put(ctx context.Context, key string, value []byte) error {
	const query = `
        INSERT INTO kv_entries (key, value, updated_at)
        VALUES ($1, $2, NOW())
        ON CONFLICT (key) DO UPDATE SET value=EXCLUDED.value, updated_at=NOW()`

	_, err := p.Pool.Exec(ctx, query, key, value)
	return err
}

func (p *Postgres) Delete(ctx context.Context, key string) error {
	const query = `DELETE FROM kv_entries WHERE key=$1`

	_, err := p.Pool.Exec(ctx, query, key)
	return err
}
