package reporting

import (
	"fmt"
	"html/template"
	"math"
	"strings"
)

const (
	chartWidth   = 640
	chartHeight  = 240
	chartPadding = 32
	noDataLabel  = "Sin datos"
)

var palette = []string{"#2f6f4e", "#e0a458", "#3d5a80", "#c05746", "#7b9e89", "#8e7dbe", "#d4b483", "#4a4e69"}

// ColorFor returns the chart color of the i-th series
func ColorFor(i int) string {
	return palette[i%len(palette)]
}

func placeholderSVG(width, height int) template.HTML {
	return template.HTML(fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d" role="img" aria-label="%s">`+
			`<rect width="100%%" height="100%%" fill="#f5f5f5"/>`+
			`<text x="50%%" y="50%%" text-anchor="middle" dominant-baseline="middle" font-family="Helvetica" font-size="16" fill="#888">%s</text></svg>`,
		width, height, width, height, noDataLabel, noDataLabel))
}

// BarChartSVG draws revenue per day. An empty series yields a placeholder.
func BarChartSVG(days []DayTotal) template.HTML {
	if len(days) == 0 {
		return placeholderSVG(chartWidth, chartHeight)
	}

	max := 0.0
	for _, d := range days {
		max = math.Max(max, d.Total)
	}
	plotW := float64(chartWidth - 2*chartPadding)
	plotH := float64(chartHeight - 2*chartPadding)
	slot := plotW / float64(len(days))
	barW := math.Max(2, slot*0.7)

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d" role="img" aria-label="Ingresos por día">`,
		chartWidth, chartHeight, chartWidth, chartHeight)
	fmt.Fprintf(&b, `<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="#bbb"/>`,
		chartPadding, chartHeight-chartPadding, chartWidth-chartPadding, chartHeight-chartPadding)

	labelEvery := 1
	if len(days) > 14 {
		labelEvery = int(math.Ceil(float64(len(days)) / 14))
	}
	for i, d := range days {
		h := 0.0
		if max > 0 {
			h = d.Total / max * plotH
		}
		x := float64(chartPadding) + float64(i)*slot + (slot-barW)/2
		y := float64(chartHeight-chartPadding) - h
		fmt.Fprintf(&b, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"><title>%s: %.2f</title></rect>`,
			x, y, barW, h, palette[0], template.HTMLEscapeString(d.Day), d.Total)
		if i%labelEvery == 0 {
			label := d.Day
			if len(label) == len(dayLayout) {
				label = label[8:10] + "/" + label[5:7]
			}
			fmt.Fprintf(&b, `<text x="%.1f" y="%d" text-anchor="middle" font-family="Helvetica" font-size="10" fill="#555">%s</text>`,
				x+barW/2, chartHeight-chartPadding+14, template.HTMLEscapeString(label))
		}
	}
	b.WriteString(`</svg>`)
	return template.HTML(b.String())
}

// DonutChartSVG draws each method's share of revenue. No revenue yields a placeholder.
func DonutChartSVG(methods []MethodTotal, total float64) template.HTML {
	const size = 240
	if len(methods) == 0 || total <= 0 {
		return placeholderSVG(size, size)
	}

	cx, cy := float64(size)/2, float64(size)/2
	r, inner := 100.0, 60.0

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d" role="img" aria-label="Ingresos por método">`,
		size, size, size, size)

	angle := -math.Pi / 2
	for i, m := range methods {
		if m.Total <= 0 {
			continue
		}
		frac := m.Total / total
		color := ColorFor(i)
		title := template.HTMLEscapeString(m.Method)
		if frac >= 0.9999 {
			fmt.Fprintf(&b, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"><title>%s</title></circle>`, cx, cy, r, color, title)
			break
		}
		end := angle + frac*2*math.Pi
		large := 0
		if frac > 0.5 {
			large = 1
		}
		x1, y1 := cx+r*math.Cos(angle), cy+r*math.Sin(angle)
		x2, y2 := cx+r*math.Cos(end), cy+r*math.Sin(end)
		fmt.Fprintf(&b, `<path d="M %.2f %.2f L %.2f %.2f A %.1f %.1f 0 %d 1 %.2f %.2f Z" fill="%s"><title>%s</title></path>`,
			cx, cy, x1, y1, r, r, large, x2, y2, color, title)
		angle = end
	}
	fmt.Fprintf(&b, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="#fff"/>`, cx, cy, inner)
	b.WriteString(`</svg>`)
	return template.HTML(b.String())
}
