package reporting

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/models"
)

var zonedLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
}

// Values without an offset are wall-clock times in the report zone
var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	dayLayout,
}

// CoerceRecord reads a loosely-typed payment document.
// A non-numeric or negative amount becomes 0, a missing method becomes "unknown" and a
// paidAt that cannot be read leaves the record undated. A paidAt string without an offset
// is read in loc (UTC when nil).
func CoerceRecord(doc map[string]any, loc *time.Location) Record {
	rec := Record{
		Amount: coerceAmount(doc["amount"]),
		Method: UnknownMethod,
	}
	if m, ok := doc["method"].(string); ok && strings.TrimSpace(m) != "" {
		rec.Method = strings.TrimSpace(m)
	}
	rec.PaidAt, rec.HasPaidAt = coercePaidAt(doc["paidAt"], loc)
	return rec
}

// CoerceRecords applies CoerceRecord to every document
func CoerceRecords(docs []map[string]any, loc *time.Location) []Record {
	records := make([]Record, 0, len(docs))
	for _, doc := range docs {
		records = append(records, CoerceRecord(doc, loc))
	}
	return records
}

// RecordsFromPayments converts stored payments
func RecordsFromPayments(payments []models.Payment) []Record {
	records := make([]Record, 0, len(payments))
	for _, p := range payments {
		rec := Record{
			Amount: float64(p.Amount),
			Method: p.Method,
		}
		if p.PaidAt != nil {
			rec.PaidAt = *p.PaidAt
			rec.HasPaidAt = true
		}
		records = append(records, rec)
	}
	return records
}

func coerceAmount(v any) float64 {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case int32:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}
	return sanitizeAmount(f)
}

func coercePaidAt(v any, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.UTC
	}
	switch t := v.(type) {
	case time.Time:
		return t, !t.IsZero()
	case *time.Time:
		if t == nil || t.IsZero() {
			return time.Time{}, false
		}
		return *t, true
	case string:
		s := strings.TrimSpace(t)
		for _, layout := range zonedLayouts {
			if parsed, err := time.Parse(layout, s); err == nil {
				return parsed, true
			}
		}
		for _, layout := range localLayouts {
			if parsed, err := time.ParseInLocation(layout, s, loc); err == nil {
				return parsed, true
			}
		}
	case map[string]any:
		// Exported document-store timestamps: {"seconds": ..., "nanoseconds": ...}
		secs, ok := numeric(t["seconds"])
		if !ok {
			secs, ok = numeric(t["_seconds"])
		}
		if !ok {
			return time.Time{}, false
		}
		nanos, _ := numeric(t["nanoseconds"])
		if nanos == 0 {
			nanos, _ = numeric(t["_nanoseconds"])
		}
		return time.Unix(int64(secs), int64(nanos)).UTC(), true
	}
	return time.Time{}, false
}

func numeric(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}
