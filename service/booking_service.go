package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/clock"
	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/models"
	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/pricing"
	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/repository"
	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/wizard"
)

// BookingService persists a confirmed wizard draft as a Payment and a Reservation
type BookingService struct {
	tx           repository.TxRunnerInterface
	payments     repository.PaymentRepositoryInterface
	reservations repository.ReservationRepositoryInterface
	clock        clock.Clock
	newID        func() string
}

// NewBookingService creates a new BookingService
func NewBookingService(
	tx repository.TxRunnerInterface,
	payments repository.PaymentRepositoryInterface,
	reservations repository.ReservationRepositoryInterface,
	clk clock.Clock,
) *BookingService {
	return &BookingService{
		tx:           tx,
		payments:     payments,
		reservations: reservations,
		clock:        clk,
		newID:        uuid.NewString,
	}
}

var _ wizard.Submitter = (*BookingService)(nil)

// SubmitReservation writes the payment, the reservation and the payment's back-reference
// in one transaction. Any failure leaves neither record behind.
func (s *BookingService) SubmitReservation(ctx context.Context, req wizard.SubmitRequest) (*wizard.Confirmation, error) {
	d := req.Draft
	log.Printf("📥 SubmitReservation: room=%s checkIn=%s checkOut=%s guests=%d total=%d",
		d.RoomID, d.CheckIn.Format("2006-01-02"), d.CheckOut.Format("2006-01-02"), d.GuestCount, req.Quote.Total)

	if !d.CheckOut.After(d.CheckIn) {
		return nil, models.ErrInvalidDateRange
	}

	now := s.clock.Now()
	checkIn := truncateDay(d.CheckIn)
	checkOut := checkIn.AddDate(0, 0, pricing.Nights(d.CheckIn, d.CheckOut))

	payment := &models.Payment{
		ID:     s.newID(),
		Amount: req.Quote.Total,
		Method: req.Payment.Method,
		Status: models.PaymentPending,
		PaidAt: &now,
		Customer: models.Customer{
			Name:  d.ContactName,
			Email: d.ContactEmail,
			Phone: d.ContactPhone,
		},
		Reference: req.Payment.Reference,
		CreatedAt: now,
	}

	reservation := &models.Reservation{
		ID:                 s.newID(),
		RoomID:             d.RoomID,
		RoomName:           d.RoomName,
		GuestCount:         d.GuestCount,
		CheckIn:            checkIn,
		CheckOut:           checkOut,
		Status:             models.ReservationPending,
		AdditionalServices: d.AdditionalServices,
		Comments:           d.Comments,
		PaymentID:          payment.ID,
		UserID:             req.UserID,
		Total:              req.Quote.Total,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	for _, svc := range d.AdditionalServices {
		reservation.AdditionalServiceIDs = append(reservation.AdditionalServiceIDs, svc.ID)
	}

	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		if err := s.payments.Create(ctx, payment); err != nil {
			return fmt.Errorf("create payment: %w", err)
		}

		overlap, err := s.reservations.HasOverlap(ctx, reservation.RoomID, reservation.CheckIn, reservation.CheckOut)
		if err != nil {
			return fmt.Errorf("check availability: %w", err)
		}
		if overlap {
			return models.ErrRoomBooked
		}

		if err := s.reservations.Create(ctx, reservation); err != nil {
			return fmt.Errorf("create reservation: %w", err)
		}
		if err := s.payments.LinkReservation(ctx, payment.ID, reservation.ID); err != nil {
			return fmt.Errorf("link payment: %w", err)
		}
		return nil
	})
	if err != nil {
		log.Printf("❌ SubmitReservation: rolled back room=%s: %v", d.RoomID, err)
		return nil, err
	}

	log.Printf("✅ SubmitReservation: reservation=%s payment=%s total=%d", reservation.ID, payment.ID, reservation.Total)
	return &wizard.Confirmation{
		ReservationID: reservation.ID,
		PaymentID:     payment.ID,
		Total:         reservation.Total,
		Status:        reservation.Status,
		CreatedAt:     now,
	}, nil
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
