package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/renewal-cli/internal/brief"
	"github.com/sells-group/renewal-cli/internal/ingest"
	"github.com/sells-group/renewal-cli/internal/model"
	"github.com/sells-group/renewal-cli/pkg/anthropic"
)

var (
	briefRenewal    string
	briefEnrichment string
)

var briefCmd = &cobra.Command{
	Use:   "brief",
	Short: "Generate a renewal call brief for a ranked renewal",
	Long: `Generates a one-page broker brief for a single ranked renewal (one
element of the pipeline output) via the Anthropic API. Requires
RENEWAL_ANTHROPIC_KEY.

Examples:
  renewal-cli pipeline --policies book.json --output ranked.json
  jq '.[0]' ranked.json > top.json
  renewal-cli brief --renewal top.json --enrichment crm.csv`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if cfg.Anthropic.Key == "" {
			return eris.New("brief: RENEWAL_ANTHROPIC_KEY is not set")
		}

		data, err := os.ReadFile(briefRenewal)
		if err != nil {
			return eris.Wrapf(err, "brief: read renewal %s", briefRenewal)
		}
		var item model.RankedRenewal
		if err := json.Unmarshal(data, &item); err != nil {
			return eris.Wrap(err, "brief: parse renewal")
		}

		var rec *model.EnrichmentRecord
		if briefEnrichment != "" {
			records, err := loadEnrichment(briefEnrichment, "")
			if err != nil {
				return eris.Wrap(err, "brief: load enrichment")
			}
			if r, ok := ingest.Key(records)[item.Policy.PolicyHash]; ok {
				rec = &r
			}
		}

		gen := brief.NewGenerator(anthropic.NewClient(cfg.Anthropic.Key), cfg.Anthropic)
		b, err := gen.Generate(cmd.Context(), item, rec)
		if err != nil {
			return eris.Wrap(err, "brief: generate")
		}

		return writeJSON("", b)
	},
}

func init() {
	briefCmd.Flags().StringVar(&briefRenewal, "renewal", "", "path to a ranked renewal JSON (required)")
	briefCmd.Flags().StringVar(&briefEnrichment, "enrichment", "", "optional enrichment CSV for extra context")
	_ = briefCmd.MarkFlagRequired("renewal")
	rootCmd.AddCommand(briefCmd)
}
