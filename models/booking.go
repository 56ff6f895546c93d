package models

// SelectRoomRequest is the body for POST /booking/sessions/{id}/room
// Example: {"roomId": "4d1c..."}
type SelectRoomRequest struct {
	RoomID string `json:"roomId" validate:"required"`
}

// BookingDetailsRequest is the body for PUT /booking/sessions/{id}/details
// Example: {"checkIn": "2024-05-01", "checkOut": "2024-05-04", "guestCount": 2, "contactName": "Ana", "contactEmail": "ana@example.com", "contactPhone": "70000000"}
// GuestCount carries no validate tag: the wizard checks its range and reports it inline
// next to the stored draft instead of rejecting the whole body.
type BookingDetailsRequest struct {
	CheckIn      string `json:"checkIn" validate:"omitempty,datetime=2006-01-02"`
	CheckOut     string `json:"checkOut" validate:"omitempty,datetime=2006-01-02"`
	GuestCount   int    `json:"guestCount"`
	ContactName  string `json:"contactName" validate:"max=120"`
	ContactEmail string `json:"contactEmail" validate:"omitempty,email"`
	ContactPhone string `json:"contactPhone" validate:"max=40"`
	Comments     string `json:"comments" validate:"max=1000"`
}

// PaymentCallbackRequest is what the payment provider posts back for a booking session
// Example: {"method": "card", "approved": true, "reference": "tx-8842"}
type PaymentCallbackRequest struct {
	Method    string `json:"method" validate:"required,max=40"`
	Approved  bool   `json:"approved"`
	Reference string `json:"reference" validate:"max=120"`
}

// StartSessionRequest is the body for POST /session
// Example: {"token": "eyJhbGciOiJIUzI1NiIs..."}
type StartSessionRequest struct {
	Token string `json:"token" validate:"required"`
}
