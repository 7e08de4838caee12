// Package store persists policy populations and enrichment batch snapshots
// on the caller side of the scoring core. Only the current population and
// the latest batch are kept; scores themselves are never stored.
package store

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/renewal-cli/internal/config"
	"github.com/sells-group/renewal-cli/internal/model"
)

// EnrichmentBatch is one ingested enrichment snapshot.
type EnrichmentBatch struct {
	ID        string                   `json:"id"`
	Records   []model.EnrichmentRecord `json:"records"`
	CreatedAt time.Time                `json:"created_at"`
}

// Store defines persistence for policy populations and enrichment batches.
type Store interface {
	// SavePolicies replaces the stored population and returns the count.
	SavePolicies(ctx context.Context, policies []model.Policy) (int, error)
	ListPolicies(ctx context.Context) ([]model.Policy, error)

	// SaveEnrichmentBatch stores a new snapshot and returns it with its ID.
	SaveEnrichmentBatch(ctx context.Context, records []model.EnrichmentRecord) (*EnrichmentBatch, error)
	// LatestEnrichmentBatch returns the most recent snapshot, or nil when
	// none has been stored.
	LatestEnrichmentBatch(ctx context.Context) (*EnrichmentBatch, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}

// Open creates a Store for the configured driver.
func Open(ctx context.Context, cfg config.StoreConfig) (Store, error) {
	switch cfg.Driver {
	case "sqlite", "":
		return NewSQLite(cfg.DatabaseURL)
	case "postgres":
		return NewPostgres(ctx, cfg.DatabaseURL)
	default:
		return nil, eris.Errorf("store: unknown driver %q", cfg.Driver)
	}
}
