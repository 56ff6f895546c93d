package reporting

import (
	"math"
	"sort"
	"strings"
	"time"
)

// UnknownMethod labels payments with no method recorded
const UnknownMethod = "unknown"

const dayLayout = "2006-01-02"

// Record is one payment reduced to what the report needs
type Record struct {
	Amount    float64
	Method    string
	PaidAt    time.Time
	HasPaidAt bool
}

// MethodTotal is the revenue collected through one payment method
type MethodTotal struct {
	Method string  `json:"method"`
	Total  float64 `json:"total"`
	Count  int     `json:"count"`
	Share  float64 `json:"share"`
}

// DayTotal is the revenue collected on one calendar day
type DayTotal struct {
	Day   string  `json:"day"`
	Total float64 `json:"total"`
	Count int     `json:"count"`
}

// Report is the aggregate view of a set of payments
type Report struct {
	TotalRevenue float64       `json:"totalRevenue"`
	Count        int           `json:"count"`
	Undated      int           `json:"undated"`
	ByMethod     []MethodTotal `json:"byMethod"`
	ByDay        []DayTotal    `json:"byDay"`
}

// Empty reports whether no payment contributed to the report
func (r Report) Empty() bool {
	return r.Count == 0
}

// Aggregate totals records overall, per method and per day.
//
// byMethod is ordered by total descending; methods with equal totals keep the order in
// which they first appeared. byDay is ordered by day ascending, days taken in loc.
// Records without a usable paidAt count toward the total and byMethod but not byDay.
func Aggregate(records []Record, loc *time.Location) Report {
	if loc == nil {
		loc = time.UTC
	}

	report := Report{
		ByMethod: []MethodTotal{},
		ByDay:    []DayTotal{},
	}
	methodIdx := make(map[string]int)
	dayIdx := make(map[string]int)

	for _, rec := range records {
		amount := sanitizeAmount(rec.Amount)
		method := normalizeMethod(rec.Method)

		report.TotalRevenue += amount
		report.Count++

		i, ok := methodIdx[method]
		if !ok {
			i = len(report.ByMethod)
			methodIdx[method] = i
			report.ByMethod = append(report.ByMethod, MethodTotal{Method: method})
		}
		report.ByMethod[i].Total += amount
		report.ByMethod[i].Count++

		if !rec.HasPaidAt || rec.PaidAt.IsZero() {
			report.Undated++
			continue
		}
		key := rec.PaidAt.In(loc).Format(dayLayout)
		j, ok := dayIdx[key]
		if !ok {
			j = len(report.ByDay)
			dayIdx[key] = j
			report.ByDay = append(report.ByDay, DayTotal{Day: key})
		}
		report.ByDay[j].Total += amount
		report.ByDay[j].Count++
	}

	sort.SliceStable(report.ByMethod, func(a, b int) bool {
		return report.ByMethod[a].Total > report.ByMethod[b].Total
	})
	sort.Slice(report.ByDay, func(a, b int) bool {
		return report.ByDay[a].Day < report.ByDay[b].Day
	})

	if report.TotalRevenue > 0 {
		for i := range report.ByMethod {
			report.ByMethod[i].Share = report.ByMethod[i].Total / report.TotalRevenue
		}
	}
	return report
}

func sanitizeAmount(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

func normalizeMethod(m string) string {
	m = strings.TrimSpace(m)
	if m == "" {
		return UnknownMethod
	}
	return m
}
