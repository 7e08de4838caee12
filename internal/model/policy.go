// Package model defines the domain types shared across ingestion, scoring,
// and the renewal pipeline.
package model

// PolicyStatus represents the lifecycle state of a policy.
type PolicyStatus int

const (
	PolicyStatusPending PolicyStatus = 0
	PolicyStatusActive  PolicyStatus = 1
	PolicyStatusExpired PolicyStatus = 2
)

// Valid reports whether the status is one of the three known states.
func (s PolicyStatus) Valid() bool {
	return s == PolicyStatusPending || s == PolicyStatusActive || s == PolicyStatusExpired
}

// String returns the human-readable name of the status.
func (s PolicyStatus) String() string {
	switch s {
	case PolicyStatusPending:
		return "pending"
	case PolicyStatusActive:
		return "active"
	case PolicyStatusExpired:
		return "expired"
	default:
		return "unknown"
	}
}

// Policy is an insurance contract record subject to renewal. Policies are
// caller-owned input; nothing in this module mutates one.
type Policy struct {
	PolicyHash     string       `json:"policy_hash"`
	PolicyName     string       `json:"policy_name"`
	PolicyType     string       `json:"policy_type"`
	Customer       string       `json:"customer"`
	Notes          string       `json:"notes,omitempty"`
	CoverageAmount int64        `json:"coverage_amount"`
	Premium        int64        `json:"premium"`
	StartTime      int64        `json:"start_time"` // epoch seconds
	Duration       int64        `json:"duration"`   // seconds
	RenewalCount   int64        `json:"renewal_count"`
	Status         PolicyStatus `json:"status"`
}
