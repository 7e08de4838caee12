package model

// UrgencyLevel is the coarse triage bucket derived from days-until-expiry.
type UrgencyLevel string

const (
	UrgencyCritical UrgencyLevel = "critical"
	UrgencyHigh     UrgencyLevel = "high"
	UrgencyMedium   UrgencyLevel = "medium"
	UrgencyLow      UrgencyLevel = "low"
)

// DataSourceType indicates where a ranked item's enrichment came from.
type DataSourceType string

const (
	SourceEnrichment DataSourceType = "enrichment" // matched a tabular enrichment record
	SourceDefaults   DataSourceType = "defaults"   // no match, default factor values used
)

// DataSource tags the provenance of a ranked renewal's enrichment data.
type DataSource struct {
	Type DataSourceType `json:"type"`
	ID   string         `json:"id"`
}

// RankedRenewal is one item of the prioritized pipeline output.
type RankedRenewal struct {
	Policy          Policy          `json:"policy"`
	DaysUntilExpiry int             `json:"days_until_expiry"`
	PriorityScore   int             `json:"priority_score"`
	Urgency         UrgencyLevel    `json:"urgency"`
	Factors         PriorityFactors `json:"factors"`
	Source          DataSource      `json:"source"`
	Explanations    []string        `json:"explanations,omitempty"`
}
