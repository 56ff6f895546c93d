package models

import "time"

// Payment statuses
const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentCancelled = "cancelled"
)

// Customer is the contact summary stored with a payment
type Customer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Payment represents a row of pagos
type Payment struct {
	ID            string     `json:"id"`
	ReservationID string     `json:"reservationId,omitempty"`
	Amount        int64      `json:"amount"`
	Method        string     `json:"method"`
	Status        string     `json:"status"`
	PaidAt        *time.Time `json:"paidAt,omitempty"`
	Customer      Customer   `json:"customer"`
	Reference     string     `json:"reference,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// UpdatePaymentStatusRequest is the body for PATCH /admin/payments/{id}/status
// Example: {"status": "completed"}
type UpdatePaymentStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending completed cancelled"`
}

// PaymentListResponse wraps a list of payments
type PaymentListResponse struct {
	Payments []Payment `json:"payments"`
	Total    int64     `json:"total"`
}

// IsValidPaymentStatus reports whether s is a known payment status
func IsValidPaymentStatus(s string) bool {
	switch s {
	case PaymentPending, PaymentCompleted, PaymentCancelled:
		return true
	}
	return false
}

var paymentTransitions = map[string][]string{
	PaymentPending:   {PaymentCompleted, PaymentCancelled},
	PaymentCompleted: {PaymentCancelled},
}

// CanTransitionPayment reports whether a payment may move from one status to another
func CanTransitionPayment(from, to string) bool {
	for _, next := range paymentTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
