package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	ingestCSV  string
	ingestXLSX string
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Preview an enrichment export as normalized records",
	Long: `Parses a CRM enrichment export (CSV or XLSX) through the fault-tolerant
normalizer and prints the resulting records. Useful for checking which
columns match before running the pipeline.

Examples:
  renewal-cli ingest --csv crm.csv
  renewal-cli ingest --xlsx crm.xlsx`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if ingestCSV == "" && ingestXLSX == "" {
			return eris.New("ingest: pass --csv or --xlsx")
		}

		records, err := loadEnrichment(ingestCSV, ingestXLSX)
		if err != nil {
			return eris.Wrap(err, "ingest: parse")
		}

		zap.L().Info("ingest preview", zap.Int("records", len(records)))
		return writeJSON("", records)
	},
}

func init() {
	ingestCmd.Flags().StringVar(&ingestCSV, "csv", "", "enrichment CSV export")
	ingestCmd.Flags().StringVar(&ingestXLSX, "xlsx", "", "enrichment XLSX export")
	rootCmd.AddCommand(ingestCmd)
}
