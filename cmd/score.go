package main

import (
	"encoding/json"
	"os"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/renewal-cli/internal/config"
	"github.com/sells-group/renewal-cli/internal/ingest"
	"github.com/sells-group/renewal-cli/internal/model"
	"github.com/sells-group/renewal-cli/internal/renewal"
)

var (
	scorePolicy     string
	scorePolicies   string
	scoreEnrichment string
	scoreWeights    string
)

// scoreResult is the output of the score subcommand and the /score endpoint.
type scoreResult struct {
	PolicyHash      string                `json:"policy_hash"`
	Factors         model.PriorityFactors `json:"factors"`
	PriorityScore   int                   `json:"priority_score"`
	DaysUntilExpiry int                   `json:"days_until_expiry"`
	Urgency         model.UrgencyLevel    `json:"urgency"`
	Explanations    []string              `json:"explanations,omitempty"`
}

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a single policy against its population",
	Long: `Computes the five priority factors and the weighted priority score for
one policy. The full population is needed because premium scoring
normalizes against the population's maximum premium.

Examples:
  renewal-cli score --policy policy.json --policies book.json
  renewal-cli score --policy policy.json --policies book.json --enrichment crm.csv`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		data, err := os.ReadFile(scorePolicy)
		if err != nil {
			return eris.Wrapf(err, "score: read policy %s", scorePolicy)
		}
		var policy model.Policy
		if err := json.Unmarshal(data, &policy); err != nil {
			return eris.Wrap(err, "score: parse policy")
		}

		policies, err := loadPolicies(scorePolicies)
		if err != nil {
			return eris.Wrap(err, "score: load population")
		}

		records, err := loadEnrichment(scoreEnrichment, "")
		if err != nil {
			return eris.Wrap(err, "score: load enrichment")
		}

		weights := model.DefaultWeights()
		if scoreWeights != "" {
			weights, err = config.LoadWeights(scoreWeights)
			if err != nil {
				return eris.Wrap(err, "score: load weights")
			}
		}

		result := scoreOne(policy, policies, ingest.Key(records), weights, time.Now())
		return writeJSON("", result)
	},
}

// scoreOne runs the factor calculator and aggregator for one policy.
func scoreOne(policy model.Policy, population []model.Policy, enrichment map[string]model.EnrichmentRecord, weights model.PriorityWeights, now time.Time) scoreResult {
	var rec *model.EnrichmentRecord
	if r, ok := enrichment[policy.PolicyHash]; ok {
		rec = &r
	}

	factors := renewal.ComputeFactors(policy, population, rec, now)
	days := renewal.DaysUntilExpiry(policy, now)

	return scoreResult{
		PolicyHash:      policy.PolicyHash,
		Factors:         factors,
		PriorityScore:   renewal.Aggregate(factors, weights),
		DaysUntilExpiry: days,
		Urgency:         renewal.UrgencyFor(days),
		Explanations:    renewal.Explain(factors),
	}
}

func init() {
	scoreCmd.Flags().StringVar(&scorePolicy, "policy", "", "path to the policy JSON (required)")
	scoreCmd.Flags().StringVar(&scorePolicies, "policies", "", "path to the population JSON array (required)")
	scoreCmd.Flags().StringVar(&scoreEnrichment, "enrichment", "", "optional enrichment CSV")
	scoreCmd.Flags().StringVar(&scoreWeights, "weights", "", "optional weights profile YAML")
	_ = scoreCmd.MarkFlagRequired("policy")
	_ = scoreCmd.MarkFlagRequired("policies")
	rootCmd.AddCommand(scoreCmd)
}
