package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/renewal-cli/internal/config"
	"github.com/sells-group/renewal-cli/internal/ingest"
	"github.com/sells-group/renewal-cli/internal/model"
	"github.com/sells-group/renewal-cli/internal/renewal"
)

var (
	pipelinePolicies    string
	pipelineCSV         string
	pipelineXLSX        string
	pipelineWeights     string
	pipelineWindow      int
	pipelineConcurrency int
	pipelineOutput      string
	pipelineFormat      string
)

var pipelineCmd = &cobra.Command{
	Use:   "pipeline",
	Short: "Rank the full book of business by renewal priority",
	Long: `Builds the prioritized renewal pipeline: filters to active policies,
scores each against the population (optionally joined with a CRM
enrichment export), and sorts by descending priority.

Examples:
  renewal-cli pipeline --policies book.json
  renewal-cli pipeline --policies book.json --csv crm.csv --window 90
  renewal-cli pipeline --policies book.json --xlsx crm.xlsx --format table`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		policies, err := loadPolicies(pipelinePolicies)
		if err != nil {
			return eris.Wrap(err, "pipeline: load policies")
		}

		records, err := loadEnrichment(pipelineCSV, pipelineXLSX)
		if err != nil {
			return eris.Wrap(err, "pipeline: load enrichment")
		}

		opts := renewal.BuildOptions{
			TimeWindowDays: pipelineWindow,
			Concurrency:    pipelineConcurrency,
		}
		if opts.Concurrency == 0 {
			opts.Concurrency = cfg.Pipeline.Concurrency
		}
		if pipelineWeights != "" {
			w, werr := config.LoadWeights(pipelineWeights)
			if werr != nil {
				return eris.Wrap(werr, "pipeline: load weights")
			}
			opts.Weights = &w
		}

		items, err := renewal.Build(cmd.Context(), policies, ingest.Key(records), opts)
		if err != nil {
			return eris.Wrap(err, "pipeline: build")
		}

		zap.L().Info("pipeline built",
			zap.Int("policies", len(policies)),
			zap.Int("enrichment_records", len(records)),
			zap.Int("ranked", len(items)),
		)

		if pipelineFormat == "table" {
			printPipelineTable(items)
			return nil
		}
		return writeJSON(pipelineOutput, items)
	},
}

// printPipelineTable renders the ranked pipeline for terminal review.
func printPipelineTable(items []model.RankedRenewal) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RANK\tPOLICY\tSCORE\tDAYS\tURGENCY\tSOURCE")
	for i, item := range items {
		name := item.Policy.PolicyName
		if name == "" {
			name = summarizeHash(item.Policy.PolicyHash)
		}
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%s\t%s\n",
			i+1, name, item.PriorityScore, item.DaysUntilExpiry, item.Urgency, item.Source.Type)
	}
	_ = w.Flush()
}

func init() {
	pipelineCmd.Flags().StringVar(&pipelinePolicies, "policies", "", "path to the population JSON array (required)")
	pipelineCmd.Flags().StringVar(&pipelineCSV, "csv", "", "enrichment CSV export")
	pipelineCmd.Flags().StringVar(&pipelineXLSX, "xlsx", "", "enrichment XLSX export")
	pipelineCmd.Flags().StringVar(&pipelineWeights, "weights", "", "weights profile YAML")
	pipelineCmd.Flags().IntVar(&pipelineWindow, "window", 0, "only include renewals due within N days (0 = all)")
	pipelineCmd.Flags().IntVar(&pipelineConcurrency, "concurrency", 0, "parallel scoring workers (default from config)")
	pipelineCmd.Flags().StringVar(&pipelineOutput, "output", "", "write ranked JSON to file (default: stdout)")
	pipelineCmd.Flags().StringVar(&pipelineFormat, "format", "json", "output format: json (default) or table")
	_ = pipelineCmd.MarkFlagRequired("policies")
	rootCmd.AddCommand(pipelineCmd)
}
