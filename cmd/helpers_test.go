package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPolicies(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"policy_hash": "h1", "premium": 1000, "status": 1},
		{"policy_hash": "h2", "premium": 2000, "status": 0}
	]`), 0o644))

	policies, err := loadPolicies(path)
	require.NoError(t, err)
	require.Len(t, policies, 2)
	assert.Equal(t, "h1", policies[0].PolicyHash)
	assert.Equal(t, int64(2000), policies[1].Premium)
}

func TestLoadPolicies_MissingFile(t *testing.T) {
	_, err := loadPolicies(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
}

func TestLoadPolicies_BadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

	_, err := loadPolicies(path)
	require.Error(t, err)
}

func TestLoadEnrichment_CSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crm.csv")
	require.NoError(t, os.WriteFile(path, []byte("policyHash,claims\nh1,2\n"), 0o644))

	records, err := loadEnrichment(path, "")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "h1", records[0].PolicyHash)
}

func TestLoadEnrichment_BothPathsRejected(t *testing.T) {
	_, err := loadEnrichment("a.csv", "b.xlsx")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not both")
}

func TestLoadEnrichment_NeitherPath(t *testing.T) {
	records, err := loadEnrichment("", "")
	require.NoError(t, err)
	assert.Nil(t, records)
}

func TestWriteJSON_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, writeJSON(path, map[string]int{"a": 1}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"a": 1`)
}

func TestSummarizeHash(t *testing.T) {
	assert.Equal(t, "short", summarizeHash("short"))
	assert.Equal(t, "0x12345678..", summarizeHash("0x1234567890abcdef"))
}
