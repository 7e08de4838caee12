package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/renewal-cli/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS policies (
	policy_hash TEXT PRIMARY KEY,
	doc         TEXT NOT NULL,
	position    INTEGER NOT NULL,
	loaded_at   DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS enrichment_batches (
	id         TEXT PRIMARY KEY,
	records    TEXT NOT NULL,
	created_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_policies_position ON policies(position);
CREATE INDEX IF NOT EXISTS idx_batches_created_at ON enrichment_batches(created_at);
`

// Migrate creates the schema if it does not exist.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, sqliteMigration); err != nil {
		return eris.Wrap(err, "sqlite: migrate")
	}
	return nil
}

// SavePolicies replaces the stored population. Position preserves input
// order so ListPolicies round-trips deterministically.
func (s *SQLiteStore) SavePolicies(ctx context.Context, policies []model.Policy) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: begin tx")
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM policies`); err != nil {
		return 0, eris.Wrap(err, "sqlite: clear policies")
	}

	for i, p := range policies {
		doc, err := json.Marshal(p)
		if err != nil {
			return 0, eris.Wrapf(err, "sqlite: marshal policy %s", p.PolicyHash)
		}
		_, err = tx.ExecContext(ctx,
			`INSERT OR REPLACE INTO policies (policy_hash, doc, position) VALUES (?, ?, ?)`,
			p.PolicyHash, string(doc), i,
		)
		if err != nil {
			return 0, eris.Wrapf(err, "sqlite: insert policy %s", p.PolicyHash)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, eris.Wrap(err, "sqlite: commit policies")
	}
	return len(policies), nil
}

// ListPolicies returns the stored population in original input order.
func (s *SQLiteStore) ListPolicies(ctx context.Context) ([]model.Policy, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT doc FROM policies ORDER BY position`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list policies")
	}
	defer rows.Close()

	var policies []model.Policy
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan policy")
		}
		var p model.Policy
		if err := json.Unmarshal([]byte(doc), &p); err != nil {
			return nil, eris.Wrap(err, "sqlite: unmarshal policy")
		}
		policies = append(policies, p)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "sqlite: iterate policies")
	}
	return policies, nil
}

// SaveEnrichmentBatch stores a new snapshot.
func (s *SQLiteStore) SaveEnrichmentBatch(ctx context.Context, records []model.EnrichmentRecord) (*EnrichmentBatch, error) {
	batch := &EnrichmentBatch{
		ID:        uuid.NewString(),
		Records:   records,
		CreatedAt: time.Now().UTC(),
	}

	doc, err := json.Marshal(records)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: marshal batch")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO enrichment_batches (id, records, created_at) VALUES (?, ?, ?)`,
		batch.ID, string(doc), batch.CreatedAt,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert batch")
	}
	return batch, nil
}

// LatestEnrichmentBatch returns the most recent snapshot, or nil.
func (s *SQLiteStore) LatestEnrichmentBatch(ctx context.Context) (*EnrichmentBatch, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, records, created_at FROM enrichment_batches ORDER BY created_at DESC, rowid DESC LIMIT 1`,
	)

	var (
		batch EnrichmentBatch
		doc   string
	)
	if err := row.Scan(&batch.ID, &doc, &batch.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, eris.Wrap(err, "sqlite: latest batch")
	}
	if err := json.Unmarshal([]byte(doc), &batch.Records); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal batch")
	}
	return &batch, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	if err := s.db.Close(); err != nil {
		return eris.Wrap(err, "sqlite: close")
	}
	return nil
}
