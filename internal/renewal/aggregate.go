package renewal

import (
	"math"

	"go.uber.org/zap"

	"github.com/sells-group/renewal-cli/internal/model"
)

// Aggregate combines the five factors into one bounded [0,100] priority
// score using the given weights, normalized by their sum so uniform
// scaling of all weights leaves the result unchanged. A zero or negative
// weight sum yields 0 rather than dividing by zero.
func Aggregate(factors model.PriorityFactors, weights model.PriorityWeights) int {
	total := weights.Sum()
	if total <= 0 {
		zap.L().Warn("renewal: weight sum is not positive, returning zero score",
			zap.Float64("weight_sum", total),
		)
		return 0
	}

	score := (float64(factors.PremiumAtRisk)*weights.PremiumAtRisk +
		float64(factors.TimeToExpiry)*weights.TimeToExpiry +
		float64(factors.ClaimsHistory)*weights.ClaimsHistory +
		float64(factors.CarrierResponsiveness)*weights.CarrierResponsiveness +
		float64(factors.ChurnLikelihood)*weights.ChurnLikelihood) / total

	return clampScore(int(math.Round(score)))
}

// ValidateWeights rejects weight sets containing negative entries. A zero
// sum is a defined degenerate input for Aggregate, not a validation error.
func ValidateWeights(w model.PriorityWeights) error {
	entries := []struct {
		name  string
		value float64
	}{
		{"premium_at_risk", w.PremiumAtRisk},
		{"time_to_expiry", w.TimeToExpiry},
		{"claims_history", w.ClaimsHistory},
		{"carrier_responsiveness", w.CarrierResponsiveness},
		{"churn_likelihood", w.ChurnLikelihood},
	}
	for _, e := range entries {
		if e.value < 0 {
			return errNegativeWeight(e.name, e.value)
		}
	}
	return nil
}
