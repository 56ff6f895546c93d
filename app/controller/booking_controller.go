package controller

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/app/response"
	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/models"
	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/repository"
	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/utils"
	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/wizard"
)

// BookingController exposes the reservation wizard over HTTP
type BookingController struct {
	store     *wizard.Store
	rooms     repository.RoomRepositoryInterface
	services  repository.ExtraServiceRepositoryInterface
	submitter wizard.Submitter
}

// NewBookingController creates a new BookingController
func NewBookingController(
	store *wizard.Store,
	rooms repository.RoomRepositoryInterface,
	services repository.ExtraServiceRepositoryInterface,
	submitter wizard.Submitter,
) *BookingController {
	return &BookingController{
		store:     store,
		rooms:     rooms,
		services:  services,
		submitter: submitter,
	}
}

// BookingView is the wizard state returned by every booking endpoint
type BookingView struct {
	SessionID  string       `json:"sessionId"`
	Draft      wizard.Draft `json:"draft"`
	Quote      models.Quote `json:"quote"`
	CanAdvance bool         `json:"canAdvance"`
	Errors     []string     `json:"errors,omitempty"`
}

func bookingView(id string, w *wizard.Wizard) BookingView {
	return BookingView{
		SessionID:  id,
		Draft:      w.Snapshot(),
		Quote:      w.Quote(),
		CanAdvance: w.CanAdvance(),
	}
}

// wizardFor returns the caller's wizard. Sessions owned by someone else look missing.
func (c *BookingController) wizardFor(w http.ResponseWriter, r *http.Request, handler string) (string, *wizard.Wizard, bool) {
	id := r.PathValue("id")
	wz, ok := c.store.Get(id)
	if !ok || wz.OwnerID() != currentSession(r).User.ID {
		log.Printf("❌ %s: booking session %s not found", handler, id)
		response.Error(w, http.StatusNotFound, response.CodeNotFound, "booking session not found")
		return "", nil, false
	}
	return id, wz, true
}

// Create handles POST /booking/sessions
// Example response:
// {
//   "sessionId": "0b5c...",
//   "draft": {"pricePerNight": 0, "guestCount": 1, "additionalServices": [], "currentStep": "ROOM_SELECT"},
//   "quote": {"nights": 0, "lodgingTotal": 0, "servicesTotal": 0, "total": 0, "lines": []},
//   "canAdvance": false
// }
func (c *BookingController) Create(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 CreateBooking: Received %s request to %s", r.Method, r.URL.Path)

	id, wz := c.store.Create(currentSession(r).User.ID)
	response.JSON(w, http.StatusCreated, bookingView(id, wz))
}

// Get handles GET /booking/sessions/{id}
func (c *BookingController) Get(w http.ResponseWriter, r *http.Request) {
	id, wz, ok := c.wizardFor(w, r, "GetBooking")
	if !ok {
		return
	}
	response.JSON(w, http.StatusOK, bookingView(id, wz))
}

// Discard handles DELETE /booking/sessions/{id}
func (c *BookingController) Discard(w http.ResponseWriter, r *http.Request) {
	id, _, ok := c.wizardFor(w, r, "DiscardBooking")
	if !ok {
		return
	}
	c.store.Discard(id)
	w.WriteHeader(http.StatusNoContent)
}

// SelectRoom handles POST /booking/sessions/{id}/room
// Example request:
// {"roomId": "4d1c..."}
func (c *BookingController) SelectRoom(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 SelectRoom: Received %s request to %s", r.Method, r.URL.Path)

	id, wz, ok := c.wizardFor(w, r, "SelectRoom")
	if !ok {
		return
	}
	var req models.SelectRoomRequest
	if !decodeBody(w, r, "SelectRoom", &req) {
		return
	}

	room, err := c.rooms.GetByID(r.Context(), req.RoomID)
	if err != nil {
		log.Printf("❌ SelectRoom: room %s: %v", req.RoomID, err)
		response.FromError(w, err)
		return
	}
	if err := wz.SelectRoom(*room); err != nil {
		log.Printf("❌ SelectRoom: %v", err)
		response.FromError(w, err)
		return
	}

	log.Printf("✅ SelectRoom: session=%s room=%s", id, room.ID)
	response.JSON(w, http.StatusOK, bookingView(id, wz))
}

// SetDetails handles PUT /booking/sessions/{id}/details
// Values are stored even when they fail validation; the problems come back in "errors"
// and canAdvance stays false until they are fixed.
// Example request:
// {
//   "checkIn": "2024-05-01",
//   "checkOut": "2024-05-04",
//   "guestCount": 2,
//   "contactName": "Ana",
//   "contactEmail": "ana@example.com",
//   "contactPhone": "70000000",
//   "comments": "Llegamos tarde"
// }
func (c *BookingController) SetDetails(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 SetDetails: Received %s request to %s", r.Method, r.URL.Path)

	id, wz, ok := c.wizardFor(w, r, "SetDetails")
	if !ok {
		return
	}
	var req models.BookingDetailsRequest
	if !decodeBody(w, r, "SetDetails", &req) {
		return
	}

	var checkIn, checkOut time.Time
	if req.CheckIn != "" {
		checkIn, _ = utils.ParseDate(req.CheckIn)
	}
	if req.CheckOut != "" {
		checkOut, _ = utils.ParseDate(req.CheckOut)
	}

	var problems []string
	if err := wz.SetStay(checkIn, checkOut, req.GuestCount); err != nil {
		if !errors.Is(err, models.ErrInvalidDateRange) && !errors.Is(err, wizard.ErrGuestCountOutOfRange) {
			log.Printf("❌ SetDetails: %v", err)
			response.FromError(w, err)
			return
		}
		for _, problem := range []error{wizard.ErrGuestCountOutOfRange, models.ErrInvalidDateRange} {
			if errors.Is(err, problem) {
				problems = append(problems, problem.Error())
			}
		}
	}
	if err := wz.SetContact(req.ContactName, req.ContactEmail, req.ContactPhone); err != nil {
		response.FromError(w, err)
		return
	}
	if err := wz.SetComments(req.Comments); err != nil {
		response.FromError(w, err)
		return
	}

	view := bookingView(id, wz)
	view.Errors = problems
	response.JSON(w, http.StatusOK, view)
}

// ToggleService handles POST /booking/sessions/{id}/services/{serviceId}
// Selecting an add-on copies its current price; posting the same id again removes it.
func (c *BookingController) ToggleService(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 ToggleService: Received %s request to %s", r.Method, r.URL.Path)

	id, wz, ok := c.wizardFor(w, r, "ToggleService")
	if !ok {
		return
	}
	serviceID := r.PathValue("serviceId")

	// A selected add-on can always be removed, even if it was edited or disabled since.
	isSelected, err := wz.ToggleServiceByID(serviceID, func(serviceID string) (models.ServiceSnapshot, error) {
		svc, err := c.services.GetByID(r.Context(), serviceID)
		if err != nil {
			return models.ServiceSnapshot{}, err
		}
		if !svc.Active {
			return models.ServiceSnapshot{}, models.ErrServiceInactive
		}
		return models.ServiceSnapshot{ID: svc.ID, Name: svc.Name, Price: svc.Price}, nil
	})
	if err != nil {
		log.Printf("❌ ToggleService: %v", err)
		response.FromError(w, err)
		return
	}

	log.Printf("✅ ToggleService: session=%s service=%s selected=%t", id, serviceID, isSelected)
	response.JSON(w, http.StatusOK, bookingView(id, wz))
}

// Next handles POST /booking/sessions/{id}/next
func (c *BookingController) Next(w http.ResponseWriter, r *http.Request) {
	id, wz, ok := c.wizardFor(w, r, "NextStep")
	if !ok {
		return
	}
	if err := wz.Next(); err != nil {
		log.Printf("⚠️  NextStep: session=%s: %v", id, err)
		response.FromError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, bookingView(id, wz))
}

// Back handles POST /booking/sessions/{id}/back
func (c *BookingController) Back(w http.ResponseWriter, r *http.Request) {
	id, wz, ok := c.wizardFor(w, r, "PreviousStep")
	if !ok {
		return
	}
	if err := wz.Back(); err != nil {
		response.FromError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, bookingView(id, wz))
}

// ConfirmPayment handles POST /booking/sessions/{id}/payment
// Example request:
// {"method": "card", "approved": true, "reference": "tx-8842"}
// Example response:
// {
//   "reservationId": "9a7e...",
//   "paymentId": "51f0...",
//   "total": 320,
//   "status": "pending",
//   "createdAt": "2024-04-20T15:00:00Z"
// }
func (c *BookingController) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 ConfirmPayment: Received %s request to %s", r.Method, r.URL.Path)

	id, wz, ok := c.wizardFor(w, r, "ConfirmPayment")
	if !ok {
		return
	}
	var req models.PaymentCallbackRequest
	if !decodeBody(w, r, "ConfirmPayment", &req) {
		return
	}

	conf, err := wz.Submit(r.Context(), c.submitter, wizard.PaymentConfirmation{
		Method:    req.Method,
		Approved:  req.Approved,
		Reference: req.Reference,
	})
	if err != nil {
		log.Printf("❌ ConfirmPayment: session=%s: %v", id, err)
		response.FromError(w, err)
		return
	}

	log.Printf("✅ ConfirmPayment: session=%s reservation=%s", id, conf.ReservationID)
	response.JSON(w, http.StatusCreated, conf)
}

// Confirmation handles GET /booking/sessions/{id}/confirmation.
// Reading the confirmation closes the booking session.
func (c *BookingController) Confirmation(w http.ResponseWriter, r *http.Request) {
	id, wz, ok := c.wizardFor(w, r, "GetConfirmation")
	if !ok {
		return
	}
	conf, done := wz.Confirmation()
	if !done {
		response.Error(w, http.StatusConflict, response.CodeWrongStep, "reservation not confirmed yet")
		return
	}
	c.store.Discard(id)
	response.JSON(w, http.StatusOK, conf)
}
