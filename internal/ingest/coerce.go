package ingest

import (
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/sells-group/renewal-cli/internal/model"
)

// coerceField converts a raw cell value to the field's declared type and
// sets it on the builder. A failed coercion omits the field and reports
// false; it never fails the row. Empty or whitespace-only cells are treated
// as absent, not as zero.
func coerceField(b *model.RecordBuilder, field Field, raw string) bool {
	value := strings.TrimSpace(raw)
	if value == "" {
		return true
	}

	switch field {
	case FieldClaimsCount:
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return false
		}
		b.ClaimsCount(n)
	case FieldChurnRisk:
		n, err := strconv.Atoi(value)
		if err != nil {
			return false
		}
		b.ChurnRisk(n)
	case FieldCarrierRating:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return false
		}
		b.CarrierRating(f)
	case FieldCustomerName:
		b.CustomerName(value)
	case FieldCustomerEmail:
		b.CustomerEmail(value)
	case FieldCRMID:
		b.CRMID(value)
	case FieldMeetingNotes:
		b.MeetingNotes(value)
	case FieldLastContactDate:
		b.LastContactDate(value)
	case FieldCarrierStatus:
		b.CarrierStatus(value)
	case FieldCalendarEventID:
		b.CalendarEventID(value)
	case FieldRecentEmails:
		b.RecentEmails(value)
	}
	return true
}

// logDroppedField emits the field-level coercion diagnostic.
func logDroppedField(rowNum int, field Field, raw string) {
	zap.L().Debug("ingest: dropping uncoercible field",
		zap.Int("row", rowNum),
		zap.String("field", string(field)),
		zap.String("value", raw),
	)
}
