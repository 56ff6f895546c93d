package reporting

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"time"

	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/utils"
)

// PageWidthPx and PageHeightPx are an A4 page at 96 dpi
const (
	PageWidthPx  = 794
	PageHeightPx = 1123
)

//go:embed report.html
var reportTemplateSource string

var reportTemplate = template.Must(template.New("report").Parse(reportTemplateSource))

// Meta describes the context a report is rendered in
type Meta struct {
	Title          string
	PropertyName   string
	CurrencySymbol string
	AccentColor    string
	From           string
	To             string
	GeneratedAt    time.Time
	Location       *time.Location
}

func (m Meta) rangeLabel() string {
	switch {
	case m.From != "" && m.To != "":
		return fmt.Sprintf("%s a %s", m.From, m.To)
	case m.From != "":
		return "desde " + m.From
	case m.To != "":
		return "hasta " + m.To
	}
	return "todo el historial"
}

type methodRow struct {
	Method string
	Count  int
	Total  string
	Share  string
	Color  template.CSS
}

type dayRow struct {
	Day   string
	Count int
	Total string
}

type reportView struct {
	Title        string
	PropertyName string
	RangeLabel   string
	GeneratedAt  string
	AccentColor  template.CSS
	WidthPx      int
	TotalRevenue string
	Count        int
	Undated      int
	Methods      []methodRow
	Days         []dayRow
	BarChart     template.HTML
	DonutChart   template.HTML
}

func buildView(r Report, meta Meta) reportView {
	loc := meta.Location
	if loc == nil {
		loc = time.UTC
	}
	accent := meta.AccentColor
	if accent == "" {
		accent = palette[0]
	}
	title := meta.Title
	if title == "" {
		title = "Reporte de pagos"
	}

	v := reportView{
		Title:        title,
		PropertyName: meta.PropertyName,
		RangeLabel:   meta.rangeLabel(),
		GeneratedAt:  meta.GeneratedAt.In(loc).Format("02/01/2006 15:04"),
		AccentColor:  template.CSS(accent),
		WidthPx:      PageWidthPx,
		TotalRevenue: utils.FormatDecimal(meta.CurrencySymbol, r.TotalRevenue),
		Count:        r.Count,
		Undated:      r.Undated,
		Methods:      make([]methodRow, 0, len(r.ByMethod)),
		Days:         make([]dayRow, 0, len(r.ByDay)),
		BarChart:     BarChartSVG(r.ByDay),
		DonutChart:   DonutChartSVG(r.ByMethod, r.TotalRevenue),
	}
	for i, m := range r.ByMethod {
		v.Methods = append(v.Methods, methodRow{
			Method: m.Method,
			Count:  m.Count,
			Total:  utils.FormatDecimal(meta.CurrencySymbol, m.Total),
			Share:  fmt.Sprintf("%.1f", m.Share*100),
			Color:  template.CSS(ColorFor(i)),
		})
	}
	for _, d := range r.ByDay {
		v.Days = append(v.Days, dayRow{
			Day:   d.Day,
			Count: d.Count,
			Total: utils.FormatDecimal(meta.CurrencySymbol, d.Total),
		})
	}
	return v
}

// RenderHTML renders the report as a standalone A4-wide HTML page
func RenderHTML(r Report, meta Meta) (string, error) {
	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, buildView(r, meta)); err != nil {
		return "", fmt.Errorf("failed to render report template: %w", err)
	}
	return buf.String(), nil
}
