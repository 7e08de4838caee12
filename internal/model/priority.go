package model

// PriorityFactors holds the five bounded [0,100] sub-scores that feed the
// overall priority score. Factors are always produced by the factor
// calculator, never constructed by callers.
type PriorityFactors struct {
	PremiumAtRisk         int `json:"premium_at_risk"`
	TimeToExpiry          int `json:"time_to_expiry"`
	ClaimsHistory         int `json:"claims_history"`
	CarrierResponsiveness int `json:"carrier_responsiveness"`
	ChurnLikelihood       int `json:"churn_likelihood"`
}

// PriorityWeights assigns a non-negative weight to each priority factor.
// Weights need not sum to 1; the aggregator normalizes by their sum.
type PriorityWeights struct {
	PremiumAtRisk         float64 `json:"premium_at_risk" yaml:"premium_at_risk" mapstructure:"premium_at_risk"`
	TimeToExpiry          float64 `json:"time_to_expiry" yaml:"time_to_expiry" mapstructure:"time_to_expiry"`
	ClaimsHistory         float64 `json:"claims_history" yaml:"claims_history" mapstructure:"claims_history"`
	CarrierResponsiveness float64 `json:"carrier_responsiveness" yaml:"carrier_responsiveness" mapstructure:"carrier_responsiveness"`
	ChurnLikelihood       float64 `json:"churn_likelihood" yaml:"churn_likelihood" mapstructure:"churn_likelihood"`
}

// DefaultWeights returns a fresh copy of the standard weight set.
func DefaultWeights() PriorityWeights {
	return PriorityWeights{
		PremiumAtRisk:         0.30,
		TimeToExpiry:          0.25,
		ClaimsHistory:         0.15,
		CarrierResponsiveness: 0.10,
		ChurnLikelihood:       0.20,
	}
}

// Sum returns the total of all five weights.
func (w PriorityWeights) Sum() float64 {
	return w.PremiumAtRisk + w.TimeToExpiry + w.ClaimsHistory +
		w.CarrierResponsiveness + w.ChurnLikelihood
}
