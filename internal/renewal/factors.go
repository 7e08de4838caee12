package renewal

import (
	"math"
	"time"

	"github.com/sells-group/renewal-cli/internal/model"
)

// Default factor values applied per-field when enrichment data is missing.
const (
	defaultClaimsScore = 30
	defaultRatingScore = 50
	defaultChurnScore  = 40
)

// timeDecayK is the exponential decay constant for the time factor,
// tuned so that 90 days out scores ~35.
const timeDecayK = 0.012

// ComputeFactors derives the five priority factors for one policy. The
// population provides the relative baseline for premium normalization;
// enrichment may be nil, in which case the claims, rating, and churn
// factors fall back to their defaults independently.
func ComputeFactors(p model.Policy, population []model.Policy, enrichment *model.EnrichmentRecord, now time.Time) model.PriorityFactors {
	days := DaysUntilExpiry(p, now)

	claims := defaultClaimsScore
	rating := defaultRatingScore
	churn := defaultChurnScore

	if enrichment != nil {
		if enrichment.ClaimsCount != nil {
			claims = claimsScore(*enrichment.ClaimsCount)
		}
		if enrichment.CarrierRating != nil {
			rating = ratingScore(*enrichment.CarrierRating)
		}
		if enrichment.ChurnRisk != nil {
			churn = clampScore(*enrichment.ChurnRisk)
		}
	}

	return model.PriorityFactors{
		PremiumAtRisk:         premiumScore(p, population),
		TimeToExpiry:          timeScore(days),
		ClaimsHistory:         claims,
		CarrierResponsiveness: rating,
		ChurnLikelihood:       churn,
	}
}

// premiumScore normalizes a policy's premium against the population on a
// log10 scale so that one outlier premium does not collapse every other
// score toward zero. Non-positive premiums, and populations without any
// positive premium, score 0. The top-premium policy scores 100.
func premiumScore(p model.Policy, population []model.Policy) int {
	if p.Premium <= 0 {
		return 0
	}

	var maxPremium int64
	for _, other := range population {
		if other.Premium > maxPremium {
			maxPremium = other.Premium
		}
	}
	if maxPremium <= 0 {
		return 0
	}

	maxLog := math.Log10(float64(maxPremium))
	if maxLog == 0 {
		return 100
	}

	score := math.Log10(float64(p.Premium)) / maxLog * 100
	return clampScore(int(math.Round(score)))
}

// timeScore maps days-until-expiry onto [5,100] with exponential decay,
// giving a smooth urgency gradient near expiry instead of step buckets.
func timeScore(daysUntilExpiry int) int {
	if daysUntilExpiry >= 365 {
		return 5
	}
	if daysUntilExpiry <= 0 {
		return 100
	}

	score := int(math.Round(100 * math.Exp(-timeDecayK*float64(daysUntilExpiry))))
	if score < 5 {
		return 5
	}
	if score > 100 {
		return 100
	}
	return score
}

// claimsScore scales linearly at 20 points per claim, saturating at 5+.
func claimsScore(claimsCount int) int {
	score := claimsCount * 20
	if score > 100 {
		return 100
	}
	if score < 0 {
		return 0
	}
	return score
}

// ratingScore inverts a 1-5 star carrier rating into a risk score: a
// 5-star carrier scores 0, a 1-star carrier 100. Out-of-range ratings are
// clamped to [0,5] before the formula applies.
func ratingScore(rating float64) int {
	clamped := math.Max(0, math.Min(5, rating))
	return clampScore(int(math.Round((5 - clamped) * 25)))
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
