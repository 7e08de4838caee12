package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/renewal-cli/internal/ingest"
	"github.com/sells-group/renewal-cli/internal/model"
)

func TestScoreOne_WithEnrichment(t *testing.T) {
	now := time.Now()
	book := activeBook(now)

	claims := 4
	enrichment := map[string]model.EnrichmentRecord{
		"hash-a": {PolicyHash: "hash-a", ClaimsCount: &claims, CRMID: "crm-7"},
	}

	result := scoreOne(book[0], book, enrichment, model.DefaultWeights(), now)

	assert.Equal(t, "hash-a", result.PolicyHash)
	assert.Equal(t, 80, result.Factors.ClaimsHistory)
	assert.Equal(t, 20, result.DaysUntilExpiry)
	assert.Equal(t, model.UrgencyHigh, result.Urgency)
	assert.Positive(t, result.PriorityScore)
}

func TestScoreOne_NoEnrichmentUsesDefaults(t *testing.T) {
	now := time.Now()
	book := activeBook(now)

	result := scoreOne(book[1], book, nil, model.DefaultWeights(), now)

	assert.Equal(t, 30, result.Factors.ClaimsHistory)
	assert.Equal(t, 50, result.Factors.CarrierResponsiveness)
	assert.Equal(t, 40, result.Factors.ChurnLikelihood)
}

func TestEnrichmentTemplate_ParsesCleanly(t *testing.T) {
	records, err := ingest.Parse(enrichmentTemplate)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "0x123...", records[0].PolicyHash)
	assert.Equal(t, "John Doe", records[0].CustomerName)
	require.NotNil(t, records[0].ClaimsCount)
	assert.Equal(t, 2, *records[0].ClaimsCount)
	require.NotNil(t, records[0].CarrierRating)
	assert.InDelta(t, 4.0, *records[0].CarrierRating, 1e-9)
	assert.Equal(t, "CRM-002", records[1].CRMID)
}
