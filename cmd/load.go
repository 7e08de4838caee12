package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/renewal-cli/internal/store"
)

var (
	loadPoliciesPath string
	loadCSV          string
	loadXLSX         string
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Persist a policy population or enrichment snapshot to the store",
	Long: `Loads data into the configured store (SQLite by default, Postgres via
config). The population replaces any previously stored one; enrichment
exports are kept as timestamped batch snapshots.

Examples:
  renewal-cli load --policies book.json
  renewal-cli load --csv crm.csv
  renewal-cli load --policies book.json --csv crm.csv`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		if loadPoliciesPath == "" && loadCSV == "" && loadXLSX == "" {
			return eris.New("load: pass --policies, --csv, or --xlsx")
		}

		st, err := store.Open(ctx, cfg.Store)
		if err != nil {
			return eris.Wrap(err, "load: open store")
		}
		defer st.Close() //nolint:errcheck

		if err := st.Migrate(ctx); err != nil {
			return eris.Wrap(err, "load: migrate store")
		}

		if loadPoliciesPath != "" {
			policies, err := loadPolicies(loadPoliciesPath)
			if err != nil {
				return eris.Wrap(err, "load: read policies")
			}
			n, err := st.SavePolicies(ctx, policies)
			if err != nil {
				return eris.Wrap(err, "load: save policies")
			}
			zap.L().Info("population stored", zap.Int("policies", n))
		}

		if loadCSV != "" || loadXLSX != "" {
			records, err := loadEnrichment(loadCSV, loadXLSX)
			if err != nil {
				return eris.Wrap(err, "load: parse enrichment")
			}
			batch, err := st.SaveEnrichmentBatch(ctx, records)
			if err != nil {
				return eris.Wrap(err, "load: save enrichment batch")
			}
			zap.L().Info("enrichment batch stored",
				zap.String("batch_id", batch.ID),
				zap.Int("records", len(batch.Records)),
			)
		}

		return nil
	},
}

func init() {
	loadCmd.Flags().StringVar(&loadPoliciesPath, "policies", "", "path to the population JSON array")
	loadCmd.Flags().StringVar(&loadCSV, "csv", "", "enrichment CSV export to snapshot")
	loadCmd.Flags().StringVar(&loadXLSX, "xlsx", "", "enrichment XLSX export to snapshot")
	rootCmd.AddCommand(loadCmd)
}
