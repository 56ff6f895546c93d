package controller

import (
	"fmt"
	"log"
	"net/http"

	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/app/response"
	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/models"
	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/repository"
	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/service"
	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/utils"
)

// ReservationController handles HTTP requests for reservations
type ReservationController struct {
	repository repository.ReservationRepositoryInterface
	receipts   *service.ReceiptService
}

// NewReservationController creates a new ReservationController
func NewReservationController(repo repository.ReservationRepositoryInterface, receipts *service.ReceiptService) *ReservationController {
	return &ReservationController{
		repository: repo,
		receipts:   receipts,
	}
}

// ListMine handles GET /reservations for the signed-in guest
func (c *ReservationController) ListMine(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 ListMyReservations: Received %s request to %s", r.Method, r.URL.Path)

	s := currentSession(r)
	reservations, err := c.repository.List(r.Context(), models.ReservationFilter{UserID: s.User.ID})
	if err != nil {
		log.Printf("❌ ListMyReservations: %v", err)
		response.FromError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, models.ReservationListResponse{Reservations: reservations})
}

// List handles GET /admin/reservations?status=confirmed&from=2024-05-01&to=2024-05-31
// Example response:
// {
//   "reservations": [
//     {"id": "9a7e...", "roomId": "4d1c...", "roomName": "Cabaña del río", "guestCount": 2,
//      "checkIn": "2024-05-01T00:00:00Z", "checkOut": "2024-05-04T00:00:00Z", "status": "confirmed",
//      "additionalServiceIds": ["b2..."], "additionalServices": [{"id": "b2...", "name": "Desayuno", "price": 20}],
//      "paymentId": "51f0...", "total": 320}
//   ]
// }
func (c *ReservationController) List(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 ListReservations: Received %s request to %s", r.Method, r.URL.Path)

	q := r.URL.Query()
	filter := models.ReservationFilter{Status: q.Get("status")}
	if filter.Status != "" {
		switch filter.Status {
		case models.ReservationPending, models.ReservationConfirmed, models.ReservationCompleted, models.ReservationCancelled:
		default:
			response.Error(w, http.StatusBadRequest, response.CodeInvalidStatus, "invalid status: "+filter.Status)
			return
		}
	}
	if _, _, err := utils.ParseRange(q.Get("from"), q.Get("to")); err != nil {
		response.Error(w, http.StatusBadRequest, response.CodeInvalidFilter, err.Error())
		return
	}
	if from := q.Get("from"); from != "" {
		filter.From = &from
	}
	if to := q.Get("to"); to != "" {
		filter.To = &to
	}

	reservations, err := c.repository.List(r.Context(), filter)
	if err != nil {
		log.Printf("❌ ListReservations: %v", err)
		response.FromError(w, err)
		return
	}
	log.Printf("✅ ListReservations: %d reservations", len(reservations))
	response.JSON(w, http.StatusOK, models.ReservationListResponse{Reservations: reservations})
}

// Get handles GET /reservations/{id}. Guests can only read their own reservations.
func (c *ReservationController) Get(w http.ResponseWriter, r *http.Request) {
	s := currentSession(r)
	res, err := c.repository.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		response.FromError(w, err)
		return
	}
	if !s.IsAdmin() && res.UserID != s.User.ID {
		response.FromError(w, models.ErrNotFound)
		return
	}
	response.JSON(w, http.StatusOK, res)
}

// UpdateStatus handles PATCH /admin/reservations/{id}/status
// Cancelling a reservation also cancels its payment while that payment is pending.
// Example request:
// {"status": "confirmed"}
func (c *ReservationController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 UpdateReservationStatus: Received %s request to %s", r.Method, r.URL.Path)

	var req models.UpdateReservationStatusRequest
	if !decodeBody(w, r, "UpdateReservationStatus", &req) {
		return
	}

	res, err := c.repository.UpdateStatus(r.Context(), r.PathValue("id"), req.Status)
	if err != nil {
		log.Printf("❌ UpdateReservationStatus: %v", err)
		response.FromError(w, err)
		return
	}
	log.Printf("✅ UpdateReservationStatus: id=%s status=%s", res.ID, res.Status)
	response.JSON(w, http.StatusOK, res)
}

// Receipt handles GET /reservations/{id}/receipt
func (c *ReservationController) Receipt(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 Receipt: Received %s request to %s", r.Method, r.URL.Path)

	s := currentSession(r)
	id := r.PathValue("id")
	pdf, err := c.receipts.Generate(r.Context(), id, s.User.ID, s.IsAdmin())
	if err != nil {
		log.Printf("❌ Receipt: %v", err)
		response.FromError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="reserva-%s.pdf"`, id))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdf); err != nil {
		log.Printf("❌ Receipt: error writing response: %v", err)
	}
}
