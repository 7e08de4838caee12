package ingest

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/renewal-cli/internal/model"
)

// ErrMalformedPayload is returned when the input cannot be decoded as
// delimited text at all. Row- and field-level faults never surface it;
// there is nothing to salvage at this level.
var ErrMalformedPayload = eris.New("ingest: payload is not parseable as delimited text")

// Parse reads raw comma-delimited text (header row plus data rows,
// quote-aware) and returns the valid enrichment records. Faults degrade as
// locally as possible: an uncoercible cell loses only that field, a row
// without a resolvable policy hash or with broken quoting is dropped and
// logged, and only an undecodable header row fails the payload as a whole.
// Empty or whitespace-only input yields an empty result.
func Parse(content string) ([]model.EnrichmentRecord, error) {
	if strings.TrimSpace(content) == "" {
		return nil, nil
	}

	reader := csv.NewReader(strings.NewReader(content))
	reader.FieldsPerRecord = -1 // rows shorter than the header are padded later

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(ErrMalformedPayload, err.Error())
	}

	rows := [][]string{header}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// The reader resumes at the next line after a parse error, so a
			// structurally broken row costs only itself.
			zap.L().Warn("ingest: dropping structurally broken row", zap.Error(err))
			continue
		}
		rows = append(rows, row)
	}

	return ParseRows(rows)
}

// ParseRows normalizes pre-split tabular rows (first row is the header).
// It shares all row- and field-level tolerance behavior with Parse.
func ParseRows(rows [][]string) ([]model.EnrichmentRecord, error) {
	if len(rows) == 0 {
		return nil, nil
	}

	cols := columnFields(rows[0])

	var (
		records []model.EnrichmentRecord
		byHash  = make(map[string]int) // policy hash -> index in records
		dropped int
	)

	for n, row := range rows[1:] {
		rec, ok := parseRow(cols, row, n+2)
		if !ok {
			dropped++
			continue
		}

		// Last-seen-wins on duplicate hashes, keeping the position of the
		// first occurrence so output order stays deterministic.
		if idx, seen := byHash[rec.PolicyHash]; seen {
			records[idx] = rec
			continue
		}
		byHash[rec.PolicyHash] = len(records)
		records = append(records, rec)
	}

	zap.L().Info("ingest: batch normalized",
		zap.Int("records", len(records)),
		zap.Int("rows_dropped", dropped),
	)

	return records, nil
}

// Key returns the records keyed by policy hash for pipeline lookup.
func Key(records []model.EnrichmentRecord) map[string]model.EnrichmentRecord {
	m := make(map[string]model.EnrichmentRecord, len(records))
	for _, r := range records {
		m[r.PolicyHash] = r
	}
	return m
}

// parseRow builds one record from a data row. Rows with fewer cells than
// headers are padded with absent values. The second return value is false
// when the row has no resolvable policy hash and must be discarded.
func parseRow(cols []Field, row []string, rowNum int) (model.EnrichmentRecord, bool) {
	cell := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	var hash string
	for i, f := range cols {
		if f == FieldPolicyHash {
			if v := cell(i); v != "" {
				hash = v
			}
		}
	}
	if hash == "" {
		zap.L().Warn("ingest: dropping row without policy hash", zap.Int("row", rowNum))
		return model.EnrichmentRecord{}, false
	}

	b := model.NewRecordBuilder(hash)
	for i, f := range cols {
		if f == FieldUnknown || f == FieldPolicyHash {
			continue
		}
		if raw := cell(i); raw != "" && !coerceField(b, f, raw) {
			logDroppedField(rowNum, f, raw)
		}
	}

	rec, err := b.Build()
	if err != nil {
		zap.L().Warn("ingest: dropping unbuildable row", zap.Int("row", rowNum), zap.Error(err))
		return model.EnrichmentRecord{}, false
	}
	return rec, true
}
