package renewal

import "github.com/sells-group/renewal-cli/internal/model"

// Explain returns short human-readable reasons for the factors that pushed
// a renewal up the ranking, for display next to the score breakdown.
func Explain(factors model.PriorityFactors) []string {
	var reasons []string

	if factors.PremiumAtRisk >= 70 {
		reasons = append(reasons, "High premium at risk")
	}
	if factors.TimeToExpiry >= 80 {
		reasons = append(reasons, "Expiring soon")
	}
	if factors.ClaimsHistory >= 60 {
		reasons = append(reasons, "History of claims")
	}
	if factors.CarrierResponsiveness >= 60 {
		reasons = append(reasons, "Carrier responsiveness concerns")
	}
	if factors.ChurnLikelihood >= 60 {
		reasons = append(reasons, "High churn risk")
	}

	if len(reasons) == 0 {
		return []string{"Standard renewal"}
	}
	return reasons
}
