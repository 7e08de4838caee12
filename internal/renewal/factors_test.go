package renewal

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/renewal-cli/internal/model"
)

func activePolicy(hash string, premium int64, daysLeft int, now time.Time) model.Policy {
	return model.Policy{
		PolicyHash: hash,
		Premium:    premium,
		StartTime:  now.Unix() - secondsPerDay,
		Duration:   int64(daysLeft)*secondsPerDay + secondsPerDay,
		Status:     model.PolicyStatusActive,
	}
}

func TestDaysUntilExpiry(t *testing.T) {
	now := time.Unix(1_750_000_000, 0)

	tests := []struct {
		name   string
		policy model.Policy
		want   int
	}{
		{"pending is far future", model.Policy{Status: model.PolicyStatusPending}, 999},
		{"expired is zero", model.Policy{Status: model.PolicyStatusExpired, StartTime: now.Unix(), Duration: secondsPerDay}, 0},
		{"active past expiry floors at zero", model.Policy{
			Status:    model.PolicyStatusActive,
			StartTime: now.Unix() - 100*secondsPerDay,
			Duration:  10 * secondsPerDay,
		}, 0},
		{"active thirty days out", model.Policy{
			Status:    model.PolicyStatusActive,
			StartTime: now.Unix(),
			Duration:  30 * secondsPerDay,
		}, 30},
		{"partial day rounds up", model.Policy{
			Status:    model.PolicyStatusActive,
			StartTime: now.Unix(),
			Duration:  secondsPerDay/2 + 1,
		}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysUntilExpiry(tt.policy, now))
		})
	}
}

func TestTimeScore(t *testing.T) {
	tests := []struct {
		name string
		days int
		want int
	}{
		{"expired", 0, 100},
		{"negative clamps to max", -5, 100},
		{"one year out floors at five", 365, 5},
		{"beyond a year", 999, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, timeScore(tt.days))
		})
	}

	// ~35 at ninety days, per the decay constant.
	assert.InDelta(t, 34, timeScore(90), 1.5)
}

func TestTimeScore_MonotonicAndBounded(t *testing.T) {
	prev := timeScore(0)
	for days := 1; days <= 400; days++ {
		score := timeScore(days)
		assert.LessOrEqual(t, score, prev, "score must not increase with more days (days=%d)", days)
		assert.GreaterOrEqual(t, score, 5)
		assert.LessOrEqual(t, score, 100)
		prev = score
	}
}

func TestPremiumScore(t *testing.T) {
	now := time.Unix(1_750_000_000, 0)
	population := []model.Policy{
		activePolicy("a", 1_000, 30, now),
		activePolicy("b", 50_000, 30, now),
		activePolicy("c", 1_000_000, 30, now),
	}

	// Top-premium policy scores 100.
	assert.Equal(t, 100, premiumScore(population[2], population))

	// Monotonically non-decreasing in premium.
	low := premiumScore(population[0], population)
	mid := premiumScore(population[1], population)
	assert.LessOrEqual(t, low, mid)
	assert.LessOrEqual(t, mid, 100)

	// Log scale keeps small policies visible next to a large outlier.
	assert.Greater(t, low, 25)
}

func TestPremiumScore_Degenerate(t *testing.T) {
	now := time.Unix(1_750_000_000, 0)

	t.Run("non-positive premium", func(t *testing.T) {
		p := activePolicy("a", 0, 30, now)
		assert.Equal(t, 0, premiumScore(p, []model.Policy{p}))
	})

	t.Run("no positive premiums in population", func(t *testing.T) {
		p := activePolicy("a", 100, 30, now)
		zero := activePolicy("b", 0, 30, now)
		assert.Equal(t, 0, premiumScore(p, []model.Policy{zero}))
	})

	t.Run("population of one scores 100", func(t *testing.T) {
		p := activePolicy("a", 1000, 30, now)
		assert.Equal(t, 100, premiumScore(p, []model.Policy{p}))
	})

	t.Run("max premium of one has zero log", func(t *testing.T) {
		p := activePolicy("a", 1, 30, now)
		assert.Equal(t, 100, premiumScore(p, []model.Policy{p}))
	})
}

func TestClaimsScore(t *testing.T) {
	tests := []struct {
		claims int
		want   int
	}{
		{0, 0},
		{1, 20},
		{3, 60},
		{5, 100},
		{12, 100}, // saturates at 5+
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, claimsScore(tt.claims))
	}
}

func TestRatingScore(t *testing.T) {
	tests := []struct {
		name   string
		rating float64
		want   int
	}{
		{"five stars zero risk", 5.0, 0},
		{"one star full risk", 1.0, 100},
		{"three stars", 3.0, 50},
		{"half star steps", 4.5, 13},
		{"above range clamped first", 7.0, 0},
		{"below range clamped first", -2.0, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ratingScore(tt.rating))
		})
	}
}

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestComputeFactors_DefaultsWithoutEnrichment(t *testing.T) {
	now := time.Unix(1_750_000_000, 0)
	p := activePolicy("a", 1000, 30, now)

	factors := ComputeFactors(p, []model.Policy{p}, nil, now)

	assert.Equal(t, 30, factors.ClaimsHistory)
	assert.Equal(t, 50, factors.CarrierResponsiveness)
	assert.Equal(t, 40, factors.ChurnLikelihood)
	assert.Equal(t, 100, factors.PremiumAtRisk)
}

func TestComputeFactors_PartialEnrichmentKeepsOtherDefaults(t *testing.T) {
	now := time.Unix(1_750_000_000, 0)
	p := activePolicy("a", 1000, 30, now)

	// Only a claims count: rating and churn stay default.
	rec := &model.EnrichmentRecord{PolicyHash: "a", ClaimsCount: intPtr(5)}
	factors := ComputeFactors(p, []model.Policy{p}, rec, now)

	assert.Equal(t, 100, factors.ClaimsHistory)
	assert.Equal(t, 50, factors.CarrierResponsiveness)
	assert.Equal(t, 40, factors.ChurnLikelihood)
}

func TestComputeFactors_FullEnrichment(t *testing.T) {
	now := time.Unix(1_750_000_000, 0)
	p := activePolicy("a", 1000, 30, now)

	rec := &model.EnrichmentRecord{
		PolicyHash:    "a",
		ClaimsCount:   intPtr(2),
		CarrierRating: floatPtr(5.0),
		ChurnRisk:     intPtr(85),
	}
	factors := ComputeFactors(p, []model.Policy{p}, rec, now)

	assert.Equal(t, 40, factors.ClaimsHistory)
	assert.Equal(t, 0, factors.CarrierResponsiveness)
	assert.Equal(t, 85, factors.ChurnLikelihood)
}

func TestComputeFactors_ChurnClamped(t *testing.T) {
	now := time.Unix(1_750_000_000, 0)
	p := activePolicy("a", 1000, 30, now)

	rec := &model.EnrichmentRecord{PolicyHash: "a", ChurnRisk: intPtr(250)}
	factors := ComputeFactors(p, []model.Policy{p}, rec, now)
	assert.Equal(t, 100, factors.ChurnLikelihood)
}

func TestComputeFactors_AllBounded(t *testing.T) {
	now := time.Unix(1_750_000_000, 0)
	population := []model.Policy{
		activePolicy("a", 5, 1, now),
		activePolicy("b", 10_000_000, 400, now),
		{PolicyHash: "c", Status: model.PolicyStatusPending, Premium: 777},
	}

	rec := &model.EnrichmentRecord{
		PolicyHash:    "a",
		ClaimsCount:   intPtr(40),
		CarrierRating: floatPtr(-3),
		ChurnRisk:     intPtr(400),
	}

	for _, p := range population {
		factors := ComputeFactors(p, population, rec, now)
		for _, v := range []int{
			factors.PremiumAtRisk, factors.TimeToExpiry, factors.ClaimsHistory,
			factors.CarrierResponsiveness, factors.ChurnLikelihood,
		} {
			assert.GreaterOrEqual(t, v, 0)
			assert.LessOrEqual(t, v, 100)
		}
	}
}

func TestScenarioA_SinglePolicyPopulation(t *testing.T) {
	// Policy {status:1, startTime:1700000000, duration:31536000, premium:1000}
	// evaluated alone: premium score is 100 (it is the maximum).
	p := model.Policy{
		PolicyHash: "solo",
		Status:     model.PolicyStatusActive,
		StartTime:  1_700_000_000,
		Duration:   31_536_000,
		Premium:    1000,
	}
	now := time.Unix(1_715_768_000, 0) // mid-term

	factors := ComputeFactors(p, []model.Policy{p}, nil, now)
	assert.Equal(t, 100, factors.PremiumAtRisk)

	wantDays := int(math.Ceil(float64(p.StartTime+p.Duration-now.Unix()) / secondsPerDay))
	require.Equal(t, wantDays, DaysUntilExpiry(p, now))
}

func TestUrgencyFor(t *testing.T) {
	tests := []struct {
		days int
		want model.UrgencyLevel
	}{
		{999, model.UrgencyLow},
		{1500, model.UrgencyLow},
		{0, model.UrgencyCritical},
		{7, model.UrgencyCritical},
		{8, model.UrgencyHigh},
		{30, model.UrgencyHigh},
		{31, model.UrgencyMedium},
		{90, model.UrgencyMedium},
		{91, model.UrgencyLow},
		{364, model.UrgencyLow},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, UrgencyFor(tt.days), "days=%d", tt.days)
	}
}
