package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchField(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Field
	}{
		{"exact", "policyHash", FieldPolicyHash},
		{"snake case", "policy_hash", FieldPolicyHash},
		{"short alias", "hash", FieldPolicyHash},
		{"id alias", "ID", FieldPolicyHash},
		{"upper with spaces", " Policy Hash ", FieldPolicyHash},
		{"claims bare", "claims", FieldClaimsCount},
		{"claims count spaced", "Claims Count", FieldClaimsCount},
		{"claims snake", "claims_count", FieldClaimsCount},
		{"rating", "rating", FieldCarrierRating},
		{"carrier rating", "Carrier_Rating", FieldCarrierRating},
		{"churn", "churnRisk", FieldChurnRisk},
		{"email", "CustomerEmail", FieldCustomerEmail},
		{"crm", "CRM ID", FieldCRMID},
		{"unrecognized", "favorite_color", FieldUnknown},
		{"empty", "", FieldUnknown},
		{"whitespace only", "   ", FieldUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, matchField(tt.raw))
		})
	}
}

func TestHeaderMap(t *testing.T) {
	headers := []string{"Policy Hash", "Claims", "Rating", "favorite_color"}
	m := HeaderMap(headers)

	assert.Equal(t, FieldPolicyHash, m["policy hash"])
	assert.Equal(t, FieldClaimsCount, m["claims"])
	assert.Equal(t, FieldCarrierRating, m["rating"])

	// Unrecognized headers are dropped, not errored.
	_, ok := m["favorite_color"]
	assert.False(t, ok)
	assert.Len(t, m, 3)
}

func TestAliasTablesDoNotOverlap(t *testing.T) {
	seen := make(map[string]Field)
	for _, entry := range fieldAliases {
		for _, alias := range entry.aliases {
			key := canonicalKey(alias)
			prev, dup := seen[key]
			assert.False(t, dup, "alias %q claimed by both %s and %s", alias, prev, entry.field)
			seen[key] = entry.field
		}
	}
}

func TestColumnFields(t *testing.T) {
	cols := columnFields([]string{"hash", "bogus", "churn"})
	assert.Equal(t, []Field{FieldPolicyHash, FieldUnknown, FieldChurnRisk}, cols)
}
