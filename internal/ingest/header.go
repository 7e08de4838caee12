// Package ingest normalizes arbitrarily-formatted tabular enrichment data
// onto the canonical EnrichmentRecord schema, tolerating malformed headers,
// rows, and cells without failing the batch.
package ingest

import "strings"

// Field names a canonical enrichment field.
type Field string

const (
	FieldUnknown         Field = ""
	FieldPolicyHash      Field = "policyHash"
	FieldClaimsCount     Field = "claimsCount"
	FieldCarrierRating   Field = "carrierRating"
	FieldChurnRisk       Field = "churnRisk"
	FieldCustomerName    Field = "customerName"
	FieldCustomerEmail   Field = "customerEmail"
	FieldCRMID           Field = "crmId"
	FieldMeetingNotes    Field = "meetingNotes"
	FieldLastContactDate Field = "lastContactDate"
	FieldCarrierStatus   Field = "carrierStatus"
	FieldCalendarEventID Field = "calendarEventId"
	FieldRecentEmails    Field = "recentEmails"
)

// fieldAliases maps each canonical field to its accepted header aliases.
// Aliases are compared after lowercasing and stripping spaces/underscores.
// The slice order fixes first-match-wins resolution, so no two entries may
// share an alias.
var fieldAliases = []struct {
	field   Field
	aliases []string
}{
	{FieldPolicyHash, []string{"policyhash", "policy_hash", "hash", "id"}},
	{FieldClaimsCount, []string{"claims", "claimscount", "claims_count"}},
	{FieldCarrierRating, []string{"rating", "carrierrating", "carrier_rating"}},
	{FieldChurnRisk, []string{"churn", "churnrisk", "churn_risk"}},
	{FieldCustomerName, []string{"name", "customer", "customername", "customer_name"}},
	{FieldCustomerEmail, []string{"email", "customeremail", "customer_email"}},
	{FieldCRMID, []string{"crmid", "crm_id"}},
	{FieldMeetingNotes, []string{"notes", "meetingnotes", "meeting_notes"}},
	{FieldLastContactDate, []string{"lastcontactdate", "last_contact_date"}},
	{FieldCarrierStatus, []string{"carrierstatus", "carrier_status"}},
	{FieldCalendarEventID, []string{"calendareventid", "calendar_id", "eventid"}},
	{FieldRecentEmails, []string{"recentemails", "recent_emails"}},
}

// canonicalKey reduces a raw header to its comparison form: lowercased,
// trimmed, with spaces and underscores removed.
func canonicalKey(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.ReplaceAll(s, " ", "")
	return strings.ReplaceAll(s, "_", "")
}

// matchField resolves a single raw header to its canonical field, or
// FieldUnknown when no alias matches.
func matchField(raw string) Field {
	key := canonicalKey(raw)
	if key == "" {
		return FieldUnknown
	}
	for _, entry := range fieldAliases {
		for _, alias := range entry.aliases {
			if key == strings.ReplaceAll(alias, "_", "") {
				return entry.field
			}
		}
	}
	return FieldUnknown
}

// HeaderMap maps each recognized raw header (lowercased and trimmed) to its
// canonical field name. Unrecognized headers are ignored rather than
// rejected.
func HeaderMap(headers []string) map[string]Field {
	m := make(map[string]Field, len(headers))
	for _, h := range headers {
		if f := matchField(h); f != FieldUnknown {
			m[strings.ToLower(strings.TrimSpace(h))] = f
		}
	}
	return m
}

// columnFields resolves a header row positionally. Unmatched columns map to
// FieldUnknown and are skipped during row parsing.
func columnFields(headers []string) []Field {
	cols := make([]Field, len(headers))
	for i, h := range headers {
		cols[i] = matchField(h)
	}
	return cols
}
