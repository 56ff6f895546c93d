package models

import "time"

// Reservation statuses
const (
	ReservationPending   = "pending"
	ReservationConfirmed = "confirmed"
	ReservationCompleted = "completed"
	ReservationCancelled = "cancelled"
)

// Reservation represents a row of reservas
type Reservation struct {
	ID                   string            `json:"id"`
	RoomID               string            `json:"roomId"`
	RoomName             string            `json:"roomName,omitempty"`
	GuestCount           int               `json:"guestCount"`
	CheckIn              time.Time         `json:"checkIn"`
	CheckOut             time.Time         `json:"checkOut"`
	Status               string            `json:"status"`
	AdditionalServiceIDs []string          `json:"additionalServiceIds"`
	AdditionalServices   []ServiceSnapshot `json:"additionalServices"`
	Comments             string            `json:"comments,omitempty"`
	PaymentID            string            `json:"paymentId"`
	UserID               string            `json:"userId,omitempty"`
	Total                int64             `json:"total"`
	CreatedAt            time.Time         `json:"createdAt"`
	UpdatedAt            time.Time         `json:"updatedAt"`
}

// ReservationFilter narrows a reservation listing. Dates are YYYY-MM-DD and apply to checkIn.
type ReservationFilter struct {
	Status string
	From   *string
	To     *string
	UserID string
}

// UpdateReservationStatusRequest is the body for PATCH /admin/reservations/{id}/status
// Example: {"status": "confirmed"}
type UpdateReservationStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed completed cancelled"`
}

// ReservationListResponse wraps a list of reservations
type ReservationListResponse struct {
	Reservations []Reservation `json:"reservations"`
}

var reservationTransitions = map[string][]string{
	ReservationPending:   {ReservationConfirmed, ReservationCancelled},
	ReservationConfirmed: {ReservationCompleted, ReservationCancelled},
}

// CanTransitionReservation reports whether a reservation may move from one status to another
func CanTransitionReservation(from, to string) bool {
	for _, next := range reservationTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
