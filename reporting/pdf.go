package reporting

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jung-kurt/gofpdf"
)

// WriteVectorPDF draws the report with native PDF primitives.
// It needs no browser and produces a valid one-page document for an empty report.
func WriteVectorPDF(w io.Writer, r Report, meta Meta) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	view := buildView(r, meta)

	pdf.AddPage()

	// Header
	pdf.SetFont("Helvetica", "B", 20)
	pdf.Cell(0, 12, tr(view.Title))
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(110, 110, 110)
	pdf.Cell(0, 6, tr(fmt.Sprintf("%s · %s · generado %s", view.PropertyName, view.RangeLabel, view.GeneratedAt)))
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(10)

	// Summary
	drawSectionTitle(pdf, tr("RESUMEN"))
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, tr("Ingresos totales: "+view.TotalRevenue))
	pdf.Ln(6)
	pdf.Cell(0, 7, tr("Pagos: "+strconv.Itoa(view.Count)))
	pdf.Ln(10)

	drawSectionTitle(pdf, tr("POR MÉTODO DE PAGO"))
	if len(r.ByMethod) == 0 {
		drawEmpty(pdf)
	} else {
		drawTableHeader(pdf, tr, []string{"Método", "Pagos", "Total", "%"}, []float64{80, 25, 50, 25})
		for i, m := range view.Methods {
			red, green, blue := hexToRGB(ColorFor(i))
			pdf.SetFillColor(red, green, blue)
			pdf.Rect(pdf.GetX()+1, pdf.GetY()+2, 3, 3, "F")
			pdf.CellFormat(80, 7, "     "+tr(m.Method), "B", 0, "L", false, 0, "")
			pdf.CellFormat(25, 7, strconv.Itoa(m.Count), "B", 0, "R", false, 0, "")
			pdf.CellFormat(50, 7, tr(m.Total), "B", 0, "R", false, 0, "")
			pdf.CellFormat(25, 7, m.Share, "B", 1, "R", false, 0, "")
		}
		pdf.Ln(4)
		drawMethodBar(pdf, r.ByMethod)
	}
	pdf.Ln(8)

	drawSectionTitle(pdf, tr("POR DÍA"))
	if len(r.ByDay) == 0 {
		drawEmpty(pdf)
	} else {
		max := 0.0
		for _, d := range r.ByDay {
			if d.Total > max {
				max = d.Total
			}
		}
		drawTableHeader(pdf, tr, []string{"Día", "Pagos", "Total", ""}, []float64{35, 20, 45, 80})
		red, green, blue := hexToRGB(palette[0])
		for i, d := range view.Days {
			pdf.CellFormat(35, 7, d.Day, "B", 0, "L", false, 0, "")
			pdf.CellFormat(20, 7, strconv.Itoa(d.Count), "B", 0, "R", false, 0, "")
			pdf.CellFormat(45, 7, tr(d.Total), "B", 0, "R", false, 0, "")
			x, y := pdf.GetX(), pdf.GetY()
			pdf.CellFormat(80, 7, "", "B", 1, "L", false, 0, "")
			if max > 0 {
				pdf.SetFillColor(red, green, blue)
				pdf.Rect(x+2, y+1.5, 76*r.ByDay[i].Total/max, 4, "F")
			}
		}
	}
	if r.Undated > 0 {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "I", 10)
		pdf.Cell(0, 6, tr(fmt.Sprintf("%d pago(s) sin fecha válida no aparecen en el detalle por día.", r.Undated)))
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("failed to build pdf: %w", err)
	}
	return pdf.Output(w)
}

// drawSectionTitle adds consistent section headers
func drawSectionTitle(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(0, 9, title, "", 1, "L", true, 0, "")
	pdf.Ln(3)
}

func drawTableHeader(pdf *gofpdf.Fpdf, tr func(string) string, cols []string, widths []float64) {
	pdf.SetFont("Helvetica", "B", 11)
	for i, c := range cols {
		align := "R"
		if i == 0 {
			align = "L"
		}
		ln := 0
		if i == len(cols)-1 {
			ln = 1
		}
		pdf.CellFormat(widths[i], 7, tr(c), "B", ln, align, false, 0, "")
	}
	pdf.SetFont("Helvetica", "", 11)
}

func drawEmpty(pdf *gofpdf.Fpdf) {
	pdf.SetFont("Helvetica", "I", 11)
	pdf.SetTextColor(136, 136, 136)
	pdf.Cell(0, 7, noDataLabel)
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(8)
}

// drawMethodBar draws one horizontal bar split by each method's share
func drawMethodBar(pdf *gofpdf.Fpdf, methods []MethodTotal) {
	x, y := pdf.GetX(), pdf.GetY()
	const width = 180.0
	for i, m := range methods {
		seg := width * m.Share
		if seg <= 0 {
			continue
		}
		red, green, blue := hexToRGB(ColorFor(i))
		pdf.SetFillColor(red, green, blue)
		pdf.Rect(x, y, seg, 6, "F")
		x += seg
	}
	pdf.Ln(8)
}

func hexToRGB(hex string) (int, int, int) {
	if len(hex) != 7 || hex[0] != '#' {
		return 0, 0, 0
	}
	v, err := strconv.ParseUint(hex[1:], 16, 32)
	if err != nil {
		return 0, 0, 0
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff)
}
