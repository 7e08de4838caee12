package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/sells-group/renewal-cli/internal/model"
)

// Pool is the subset of pgxpool.Pool the store depends on. Tests swap in
// a pgxmock pool through the same interface.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool    Pool
	closeFn func()
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}
	pgxCfg.MaxConns = 10
	pgxCfg.MinConns = 2
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS policies (
	policy_hash TEXT PRIMARY KEY,
	doc         JSONB NOT NULL,
	position    INTEGER NOT NULL,
	loaded_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS enrichment_batches (
	id         TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	records    JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_policies_position ON policies(position);
CREATE INDEX IF NOT EXISTS idx_batches_created_at ON enrichment_batches(created_at);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

// SavePolicies replaces the stored population, preserving input order.
func (s *PostgresStore) SavePolicies(ctx context.Context, policies []model.Policy) (int, error) {
	if _, err := s.pool.Exec(ctx, `DELETE FROM policies`); err != nil {
		return 0, eris.Wrap(err, "postgres: clear policies")
	}

	for i, p := range policies {
		doc, err := json.Marshal(p)
		if err != nil {
			return 0, eris.Wrapf(err, "postgres: marshal policy %s", p.PolicyHash)
		}
		_, err = s.pool.Exec(ctx,
			`INSERT INTO policies (policy_hash, doc, position) VALUES ($1, $2, $3)
			 ON CONFLICT (policy_hash) DO UPDATE SET doc = $2, position = $3, loaded_at = now()`,
			p.PolicyHash, doc, i,
		)
		if err != nil {
			return 0, eris.Wrapf(err, "postgres: insert policy %s", p.PolicyHash)
		}
	}
	return len(policies), nil
}

func (s *PostgresStore) ListPolicies(ctx context.Context) ([]model.Policy, error) {
	rows, err := s.pool.Query(ctx, `SELECT doc FROM policies ORDER BY position`)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list policies")
	}
	defer rows.Close()

	var policies []model.Policy
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, eris.Wrap(err, "postgres: scan policy")
		}
		var p model.Policy
		if err := json.Unmarshal(doc, &p); err != nil {
			return nil, eris.Wrap(err, "postgres: unmarshal policy")
		}
		policies = append(policies, p)
	}
	return policies, eris.Wrap(rows.Err(), "postgres: list policies iterate")
}

func (s *PostgresStore) SaveEnrichmentBatch(ctx context.Context, records []model.EnrichmentRecord) (*EnrichmentBatch, error) {
	batch := &EnrichmentBatch{
		ID:        uuid.New().String(),
		Records:   records,
		CreatedAt: time.Now().UTC(),
	}

	doc, err := json.Marshal(records)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: marshal batch")
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO enrichment_batches (id, records, created_at) VALUES ($1, $2, $3)`,
		batch.ID, doc, batch.CreatedAt,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: insert batch")
	}
	return batch, nil
}

func (s *PostgresStore) LatestEnrichmentBatch(ctx context.Context) (*EnrichmentBatch, error) {
	var (
		batch EnrichmentBatch
		doc   []byte
	)
	err := s.pool.QueryRow(ctx,
		`SELECT id, records, created_at FROM enrichment_batches
		 ORDER BY created_at DESC, id DESC LIMIT 1`,
	).Scan(&batch.ID, &doc, &batch.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, eris.Wrap(err, "postgres: latest batch")
	}
	if err := json.Unmarshal(doc, &batch.Records); err != nil {
		return nil, eris.Wrap(err, "postgres: unmarshal batch")
	}
	return &batch, nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, "SELECT 1")
	return eris.Wrap(err, "postgres: ping")
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}
