package ingest

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/renewal-cli/internal/model"
)

// ParseXLSX reads the first sheet of an XLSX workbook and normalizes its
// rows the same way Parse handles CSV text. An unreadable workbook is a
// whole-payload fault.
func ParseXLSX(path string) ([]model.EnrichmentRecord, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(ErrMalformedPayload, err.Error())
	}
	if len(f.Sheets) == 0 {
		return nil, eris.Wrap(ErrMalformedPayload, "workbook has no sheets")
	}

	sheet := f.Sheets[0]
	rows := make([][]string, 0, len(sheet.Rows))
	for _, row := range sheet.Rows {
		cells := make([]string, len(row.Cells))
		for j, cell := range row.Cells {
			cells[j] = cell.String()
		}
		rows = append(rows, cells)
	}

	return ParseRows(rows)
}
