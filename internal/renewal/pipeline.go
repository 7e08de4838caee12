package renewal

import (
	"context"
	"sort"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/renewal-cli/internal/model"
)

func errNegativeWeight(name string, value float64) error {
	return eris.Errorf("renewal: weight %s must be >= 0 (got %g)", name, value)
}

// BuildOptions tunes pipeline construction. The zero value gives default
// weights, no time-window filter, and sequential scoring.
type BuildOptions struct {
	// Weights overrides the default weight set when non-nil.
	Weights *model.PriorityWeights

	// TimeWindowDays keeps only policies expiring within the window.
	// Already-expired policies (0 days) always pass; 0 disables the filter.
	TimeWindowDays int

	// Concurrency is the number of policies scored in parallel. Values
	// below 2 score sequentially. Scoring is pure per policy, so the
	// result is identical either way.
	Concurrency int
}

// Build filters the population to active policies, scores each against the
// full population plus any matched enrichment record, and returns the
// pipeline ordered descending by priority score. Equal scores keep their
// input relative order.
func Build(ctx context.Context, policies []model.Policy, enrichment map[string]model.EnrichmentRecord, opts BuildOptions) ([]model.RankedRenewal, error) {
	return buildAt(ctx, policies, enrichment, opts, time.Now())
}

// buildAt is Build with an injectable clock.
func buildAt(ctx context.Context, policies []model.Policy, enrichment map[string]model.EnrichmentRecord, opts BuildOptions, now time.Time) ([]model.RankedRenewal, error) {
	weights := model.DefaultWeights()
	if opts.Weights != nil {
		if err := ValidateWeights(*opts.Weights); err != nil {
			return nil, err
		}
		weights = *opts.Weights
	}

	var candidates []model.Policy
	for _, p := range policies {
		if p.Status != model.PolicyStatusActive {
			continue
		}
		if opts.TimeWindowDays > 0 {
			days := DaysUntilExpiry(p, now)
			if days > opts.TimeWindowDays && days != 0 {
				continue
			}
		}
		candidates = append(candidates, p)
	}

	items := make([]model.RankedRenewal, len(candidates))
	score := func(i int) {
		items[i] = scoreOne(candidates[i], policies, enrichment, weights, now)
	}

	if opts.Concurrency > 1 {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(opts.Concurrency)
		for i := range candidates {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				score(i)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, eris.Wrap(err, "renewal: build pipeline")
		}
	} else {
		for i := range candidates {
			if err := ctx.Err(); err != nil {
				return nil, eris.Wrap(err, "renewal: build pipeline")
			}
			score(i)
		}
	}

	// Stable: equal scores retain candidate (input) order.
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].PriorityScore > items[j].PriorityScore
	})

	zap.L().Info("renewal: pipeline built",
		zap.Int("policies", len(policies)),
		zap.Int("ranked", len(items)),
		zap.Int("enrichment_records", len(enrichment)),
	)

	return items, nil
}

// scoreOne produces the ranked item for a single active policy.
func scoreOne(p model.Policy, population []model.Policy, enrichment map[string]model.EnrichmentRecord, weights model.PriorityWeights, now time.Time) model.RankedRenewal {
	var rec *model.EnrichmentRecord
	source := model.DataSource{Type: model.SourceDefaults, ID: p.PolicyHash}
	if r, ok := enrichment[p.PolicyHash]; ok {
		rec = &r
		source.Type = model.SourceEnrichment
		if r.CRMID != "" {
			source.ID = r.CRMID
		}
	}

	factors := ComputeFactors(p, population, rec, now)
	days := DaysUntilExpiry(p, now)

	return model.RankedRenewal{
		Policy:          p,
		DaysUntilExpiry: days,
		PriorityScore:   Aggregate(factors, weights),
		Urgency:         UrgencyFor(days),
		Factors:         factors,
		Source:          source,
		Explanations:    Explain(factors),
	}
}
