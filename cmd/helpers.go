package main

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/renewal-cli/internal/ingest"
	"github.com/sells-group/renewal-cli/internal/model"
)

// loadPolicies reads a JSON array of policies from disk.
func loadPolicies(path string) ([]model.Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "read policies %s", path)
	}
	var policies []model.Policy
	if err := json.Unmarshal(data, &policies); err != nil {
		return nil, eris.Wrapf(err, "parse policies %s", path)
	}
	return policies, nil
}

// loadEnrichment parses an enrichment export from a CSV or XLSX file.
// Exactly one of the paths may be set; both empty returns nil records.
func loadEnrichment(csvPath, xlsxPath string) ([]model.EnrichmentRecord, error) {
	switch {
	case csvPath != "" && xlsxPath != "":
		return nil, eris.New("pass either --csv or --xlsx, not both")
	case csvPath != "":
		data, err := os.ReadFile(csvPath)
		if err != nil {
			return nil, eris.Wrapf(err, "read enrichment %s", csvPath)
		}
		return ingest.Parse(string(data))
	case xlsxPath != "":
		return ingest.ParseXLSX(xlsxPath)
	default:
		return nil, nil
	}
}

// writeJSON writes v as indented JSON to the given path, or stdout when
// path is empty.
func writeJSON(path string, v any) error {
	w := os.Stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return eris.Wrapf(err, "create output %s", path)
		}
		defer f.Close() //nolint:errcheck
		w = f
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// summarizeHash shortens a policy hash for table display.
func summarizeHash(hash string) string {
	if len(hash) <= 12 {
		return hash
	}
	return hash[:10] + strings.Repeat(".", 2)
}
