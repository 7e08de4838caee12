package model

import (
	"strings"

	"github.com/rotisserie/eris"
)

// EnrichmentRecord is the canonical form of one row of tabular enrichment
// data, keyed by policy hash. Numeric fields are pointers so that "absent"
// (cell missing or uncoercible) stays distinguishable from a literal zero.
type EnrichmentRecord struct {
	PolicyHash      string   `json:"policy_hash"`
	ClaimsCount     *int     `json:"claims_count,omitempty"`
	CarrierRating   *float64 `json:"carrier_rating,omitempty"`
	ChurnRisk       *int     `json:"churn_risk,omitempty"`
	CustomerName    string   `json:"customer_name,omitempty"`
	CustomerEmail   string   `json:"customer_email,omitempty"`
	CRMID           string   `json:"crm_id,omitempty"`
	MeetingNotes    string   `json:"meeting_notes,omitempty"`
	LastContactDate string   `json:"last_contact_date,omitempty"`
	CarrierStatus   string   `json:"carrier_status,omitempty"`
	CalendarEventID string   `json:"calendar_event_id,omitempty"`
	RecentEmails    string   `json:"recent_emails,omitempty"`
}

// RecordBuilder assembles an EnrichmentRecord from all-optional fields.
// Only the policy hash is mandatory; everything else may be left unset.
type RecordBuilder struct {
	rec EnrichmentRecord
}

// NewRecordBuilder returns a builder for the given policy hash.
func NewRecordBuilder(policyHash string) *RecordBuilder {
	return &RecordBuilder{rec: EnrichmentRecord{PolicyHash: strings.TrimSpace(policyHash)}}
}

// ClaimsCount sets the claims count field.
func (b *RecordBuilder) ClaimsCount(n int) *RecordBuilder {
	b.rec.ClaimsCount = &n
	return b
}

// CarrierRating sets the carrier rating field.
func (b *RecordBuilder) CarrierRating(r float64) *RecordBuilder {
	b.rec.CarrierRating = &r
	return b
}

// ChurnRisk sets the churn risk field.
func (b *RecordBuilder) ChurnRisk(n int) *RecordBuilder {
	b.rec.ChurnRisk = &n
	return b
}

// CustomerName sets the customer name field.
func (b *RecordBuilder) CustomerName(s string) *RecordBuilder {
	b.rec.CustomerName = s
	return b
}

// CustomerEmail sets the customer email field.
func (b *RecordBuilder) CustomerEmail(s string) *RecordBuilder {
	b.rec.CustomerEmail = s
	return b
}

// CRMID sets the CRM identifier field.
func (b *RecordBuilder) CRMID(s string) *RecordBuilder {
	b.rec.CRMID = s
	return b
}

// MeetingNotes sets the meeting notes field.
func (b *RecordBuilder) MeetingNotes(s string) *RecordBuilder {
	b.rec.MeetingNotes = s
	return b
}

// LastContactDate sets the last contact date field.
func (b *RecordBuilder) LastContactDate(s string) *RecordBuilder {
	b.rec.LastContactDate = s
	return b
}

// CarrierStatus sets the carrier status field.
func (b *RecordBuilder) CarrierStatus(s string) *RecordBuilder {
	b.rec.CarrierStatus = s
	return b
}

// CalendarEventID sets the calendar event identifier field.
func (b *RecordBuilder) CalendarEventID(s string) *RecordBuilder {
	b.rec.CalendarEventID = s
	return b
}

// RecentEmails sets the recent emails field.
func (b *RecordBuilder) RecentEmails(s string) *RecordBuilder {
	b.rec.RecentEmails = s
	return b
}

// Build returns the assembled record. It fails only when the policy hash
// is empty; every other field is optional.
func (b *RecordBuilder) Build() (EnrichmentRecord, error) {
	if b.rec.PolicyHash == "" {
		return EnrichmentRecord{}, eris.New("model: enrichment record requires a policy hash")
	}
	return b.rec, nil
}
