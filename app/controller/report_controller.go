package controller

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/app/response"
	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/reporting"
	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/service"
)

// maxAggregateDocuments bounds POST /admin/reports/aggregate
const maxAggregateDocuments = 50000

// ReportController serves the payments report
type ReportController struct {
	service *service.ReportService
}

// NewReportController creates a new ReportController
func NewReportController(svc *service.ReportService) *ReportController {
	return &ReportController{service: svc}
}

func reportQuery(r *http.Request) service.ReportQuery {
	q := r.URL.Query()
	return service.ReportQuery{
		From:   q.Get("from"),
		To:     q.Get("to"),
		Status: q.Get("status"),
	}
}

type reportResponse struct {
	reporting.Report
	Property    string `json:"property"`
	Currency    string `json:"currency"`
	From        string `json:"from,omitempty"`
	To          string `json:"to,omitempty"`
	Timezone    string `json:"timezone"`
	GeneratedAt string `json:"generatedAt"`
}

func newReportResponse(report reporting.Report, meta reporting.Meta) reportResponse {
	tz := "UTC"
	if meta.Location != nil {
		tz = meta.Location.String()
	}
	return reportResponse{
		Report:      report,
		Property:    meta.PropertyName,
		Currency:    meta.CurrencySymbol,
		From:        meta.From,
		To:          meta.To,
		Timezone:    tz,
		GeneratedAt: meta.GeneratedAt.Format(time.RFC3339),
	}
}

// Get handles GET /admin/reports?from=2024-05-01&to=2024-05-31
// Example response:
// {
//   "property": "Hospedaje El Bosque", "currency": "Bs", "timezone": "America/La_Paz",
//   "totalRevenue": 200,
//   "count": 3,
//   "undated": 0,
//   "byMethod": [{"method": "card", "total": 120, "count": 2, "share": 0.6}, {"method": "cash", "total": 80, "count": 1, "share": 0.4}],
//   "byDay": [{"day": "2024-05-01", "total": 180, "count": 2}, {"day": "2024-05-02", "total": 20, "count": 1}]
// }
func (c *ReportController) Get(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 GetReport: Received %s request to %s", r.Method, r.URL.Path)

	report, meta, err := c.service.Build(r.Context(), reportQuery(r))
	if err != nil {
		log.Printf("❌ GetReport: %v", err)
		response.FromError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, newReportResponse(report, meta))
}

// Render handles GET /admin/reports/render and returns the printable HTML page
func (c *ReportController) Render(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 RenderReport: Received %s request to %s", r.Method, r.URL.Path)

	html, err := c.service.RenderHTML(r.Context(), reportQuery(r))
	if err != nil {
		log.Printf("❌ RenderReport: %v", err)
		response.FromError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(html))
}

// Export handles GET /admin/reports/export?mode=snapshot|vector and returns a PDF attachment.
// Rendering failures answer 502 with a JSON error.
func (c *ReportController) Export(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 ExportReport: Received %s request to %s", r.Method, r.URL.Path)

	mode := r.URL.Query().Get("mode")
	if mode == "" {
		mode = service.ExportVector
	}
	pdf, err := c.service.Export(r.Context(), reportQuery(r), mode)
	if err != nil {
		log.Printf("❌ ExportReport: %v", err)
		response.FromError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="reporte-pagos-%s.pdf"`, mode))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdf); err != nil {
		log.Printf("❌ ExportReport: error writing response: %v", err)
	}
}

// Aggregate handles POST /admin/reports/aggregate with a JSON array of payment documents.
// Unreadable amounts count as 0, missing methods as "unknown" and unreadable dates leave
// the payment out of byDay.
// Example request:
// [{"amount": "100", "method": "card", "paidAt": "2024-05-01T10:00:00Z"}, {"amount": 80, "paidAt": {"seconds": 1714557600}}]
func (c *ReportController) Aggregate(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 AggregateReport: Received %s request to %s", r.Method, r.URL.Path)

	var docs []map[string]any
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 16<<20))
	dec.UseNumber()
	if err := dec.Decode(&docs); err != nil {
		log.Printf("❌ AggregateReport: Failed to decode request body: %v", err)
		response.Error(w, http.StatusBadRequest, response.CodeInvalidRequestBody, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	if len(docs) > maxAggregateDocuments {
		response.Error(w, http.StatusRequestEntityTooLarge, response.CodeInvalidRequestBody, "too many documents")
		return
	}

	report, meta := c.service.AggregateDocuments(r.Context(), docs)
	log.Printf("💰 AggregateReport: %d documents revenue=%.2f", report.Count, report.TotalRevenue)
	response.JSON(w, http.StatusOK, newReportResponse(report, meta))
}
