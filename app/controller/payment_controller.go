package controller

import (
	"log"
	"net/http"
	"time"

	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/app/response"
	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/clock"
	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/models"
	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/repository"
	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/utils"
)

// PaymentController handles HTTP requests for the payments ledger
type PaymentController struct {
	repository repository.PaymentRepositoryInterface
	clock      clock.Clock
	loc        *time.Location
}

// NewPaymentController creates a new PaymentController. from/to filters are days in loc,
// the same zone the payments report uses.
func NewPaymentController(repo repository.PaymentRepositoryInterface, clk clock.Clock, loc *time.Location) *PaymentController {
	if loc == nil {
		loc = time.UTC
	}
	return &PaymentController{
		repository: repo,
		clock:      clk,
		loc:        loc,
	}
}

// List handles GET /admin/payments?from=2024-05-01&to=2024-05-31&status=completed
// Example response:
// {
//   "payments": [
//     {"id": "51f0...", "reservationId": "9a7e...", "amount": 320, "method": "card", "status": "completed",
//      "paidAt": "2024-04-20T15:00:00Z", "customer": {"name": "Ana", "email": "ana@example.com", "phone": "70000000"}}
//   ],
//   "total": 320
// }
func (c *PaymentController) List(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 ListPayments: Received %s request to %s", r.Method, r.URL.Path)

	q := r.URL.Query()
	status := q.Get("status")
	if status != "" && !models.IsValidPaymentStatus(status) {
		response.Error(w, http.StatusBadRequest, response.CodeInvalidStatus, "invalid status: "+status)
		return
	}
	from, to, err := utils.ParseRangeIn(q.Get("from"), q.Get("to"), c.loc)
	if err != nil {
		response.Error(w, http.StatusBadRequest, response.CodeInvalidFilter, err.Error())
		return
	}

	payments, err := c.repository.List(r.Context(), from, to, status)
	if err != nil {
		log.Printf("❌ ListPayments: %v", err)
		response.FromError(w, err)
		return
	}

	var total int64
	for _, p := range payments {
		total += p.Amount
	}
	log.Printf("💰 ListPayments: %d payments total=%d", len(payments), total)
	response.JSON(w, http.StatusOK, models.PaymentListResponse{Payments: payments, Total: total})
}

// UpdateStatus handles PATCH /admin/payments/{id}/status
// Example request:
// {"status": "completed"}
func (c *PaymentController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 UpdatePaymentStatus: Received %s request to %s", r.Method, r.URL.Path)

	var req models.UpdatePaymentStatusRequest
	if !decodeBody(w, r, "UpdatePaymentStatus", &req) {
		return
	}

	p, err := c.repository.UpdateStatus(r.Context(), r.PathValue("id"), req.Status, c.clock.Now())
	if err != nil {
		log.Printf("❌ UpdatePaymentStatus: %v", err)
		response.FromError(w, err)
		return
	}
	log.Printf("✅ UpdatePaymentStatus: id=%s status=%s", p.ID, p.Status)
	response.JSON(w, http.StatusOK, p)
}
