// Package renewal implements the scoring engine that ranks policy renewals
// by urgency and risk: factor calculation, weighted aggregation, and the
// pipeline builder that produces a deterministically ordered result set.
package renewal

import (
	"math"
	"time"

	"github.com/sells-group/renewal-cli/internal/model"
)

const secondsPerDay = 86400

// pendingExpirySentinel marks pending policies as "far future" for both the
// time factor and urgency classification.
const pendingExpirySentinel = 999

// DaysUntilExpiry computes the whole days remaining before a policy
// expires. Pending policies return the 999 sentinel, expired policies 0,
// and active policies the ceiling of the remaining time, floored at 0.
func DaysUntilExpiry(p model.Policy, now time.Time) int {
	switch p.Status {
	case model.PolicyStatusPending:
		return pendingExpirySentinel
	case model.PolicyStatusExpired:
		return 0
	}

	expiry := p.StartTime + p.Duration
	remaining := expiry - now.Unix()
	days := int(math.Ceil(float64(remaining) / secondsPerDay))
	if days < 0 {
		return 0
	}
	return days
}

// UrgencyFor classifies days-until-expiry into a triage bucket. The 999
// pending sentinel lands in "low" before the threshold checks run.
func UrgencyFor(daysUntilExpiry int) model.UrgencyLevel {
	switch {
	case daysUntilExpiry >= pendingExpirySentinel:
		return model.UrgencyLow
	case daysUntilExpiry <= 7:
		return model.UrgencyCritical
	case daysUntilExpiry <= 30:
		return model.UrgencyHigh
	case daysUntilExpiry <= 90:
		return model.UrgencyMedium
	default:
		return model.UrgencyLow
	}
}
