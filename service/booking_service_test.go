package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/clock"
	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/models"
	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/wizard"
)

var fixedNow = time.Date(2024, 4, 20, 15, 0, 0, 0, time.UTC)

func newTestBookingService(store *memStore) *BookingService {
	return NewBookingService(fakeTx{store}, fakePayments{store}, fakeReservations{store}, clock.NewFixed(fixedNow))
}

func submitRequest() wizard.SubmitRequest {
	return wizard.SubmitRequest{
		Draft: wizard.Draft{
			RoomID:             "room-1",
			RoomName:           "Cabaña",
			PricePerNight:      100,
			CheckIn:            time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
			CheckOut:           time.Date(2024, 5, 4, 0, 0, 0, 0, time.UTC),
			GuestCount:         2,
			AdditionalServices: []models.ServiceSnapshot{{ID: "svc-1", Name: "Desayuno", Price: 20}},
			ContactName:        "Ana",
			ContactEmail:       "ana@example.com",
			ContactPhone:       "70000000",
			CurrentStep:        wizard.StepPayment,
		},
		Quote:   models.Quote{Nights: 3, Total: 320},
		Payment: wizard.PaymentConfirmation{Method: "card", Approved: true, Reference: "tx-9"},
		UserID:  "user-1",
	}
}

func TestSubmitReservationWritesLinkedPair(t *testing.T) {
	store := newMemStore()
	svc := newTestBookingService(store)

	conf, err := svc.SubmitReservation(context.Background(), submitRequest())
	if err != nil {
		t.Fatalf("SubmitReservation: %v", err)
	}

	p, ok := store.payments[conf.PaymentID]
	if !ok {
		t.Fatal("payment not stored")
	}
	r, ok := store.reservations[conf.ReservationID]
	if !ok {
		t.Fatal("reservation not stored")
	}

	if p.Amount != 320 || p.Status != models.PaymentPending || p.Method != "card" {
		t.Errorf("unexpected payment: %+v", p)
	}
	if p.Customer.Email != "ana@example.com" || p.Reference != "tx-9" {
		t.Errorf("customer summary not stored: %+v", p)
	}
	if p.PaidAt == nil || !p.PaidAt.Equal(fixedNow) {
		t.Errorf("paidAt = %v, want %v", p.PaidAt, fixedNow)
	}
	if p.ReservationID != r.ID || r.PaymentID != p.ID {
		t.Errorf("pair not linked: payment.reservationId=%s reservation.paymentId=%s", p.ReservationID, r.PaymentID)
	}
	if r.Status != models.ReservationPending || r.GuestCount != 2 || r.UserID != "user-1" {
		t.Errorf("unexpected reservation: %+v", r)
	}
	if len(r.AdditionalServiceIDs) != 1 || r.AdditionalServiceIDs[0] != "svc-1" {
		t.Errorf("service ids = %v", r.AdditionalServiceIDs)
	}
	if r.Total != p.Amount {
		t.Errorf("reservation total %d != payment amount %d", r.Total, p.Amount)
	}
}

func TestSubmitReservationRollsBack(t *testing.T) {
	tests := []struct {
		name  string
		setup func(s *memStore)
		want  error
	}{
		{
			name:  "reservation write fails",
			setup: func(s *memStore) { s.failCreateReservation = errors.New("store unavailable") },
		},
		{
			name:  "link fails",
			setup: func(s *memStore) { s.failLink = errors.New("timeout") },
		},
		{
			name: "room already booked",
			setup: func(s *memStore) {
				s.reservations["existing"] = models.Reservation{
					ID:       "existing",
					RoomID:   "room-1",
					Status:   models.ReservationConfirmed,
					CheckIn:  time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC),
					CheckOut: time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC),
				}
			},
			want: models.ErrRoomBooked,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemStore()
			tt.setup(store)
			before := len(store.reservations)

			_, err := newTestBookingService(store).SubmitReservation(context.Background(), submitRequest())
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
			if len(store.payments) != 0 {
				t.Errorf("orphan payment left behind: %+v", store.payments)
			}
			if len(store.reservations) != before {
				t.Errorf("reservation left behind: %+v", store.reservations)
			}
		})
	}
}

func TestSubmitReservationThroughWizard(t *testing.T) {
	store := newMemStore()
	svc := newTestBookingService(store)
	store.failCreateReservation = errors.New("store unavailable")

	w := wizard.New("user-1")
	room := models.Room{ID: "room-1", Name: "Cabaña", PricePerNight: 100, Capacity: 4, Status: models.RoomStatusAvailable}
	if err := w.SelectRoom(room); err != nil {
		t.Fatal(err)
	}
	_ = w.Next()
	_ = w.SetStay(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 5, 4, 0, 0, 0, 0, time.UTC), 2)
	_ = w.SetContact("Ana", "ana@example.com", "70000000")
	_, _ = w.ToggleService(models.ServiceSnapshot{ID: "svc-1", Name: "Desayuno", Price: 20})
	if err := w.Next(); err != nil {
		t.Fatal(err)
	}

	if _, err := w.Submit(context.Background(), svc, wizard.PaymentConfirmation{Method: "card", Approved: true}); err == nil {
		t.Fatal("expected failure")
	}
	if w.Step() != wizard.StepPayment || len(store.payments) != 0 {
		t.Fatalf("step=%s payments=%d", w.Step(), len(store.payments))
	}

	store.failCreateReservation = nil
	conf, err := w.Submit(context.Background(), svc, wizard.PaymentConfirmation{Method: "card", Approved: true})
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	if conf.Total != 320 || w.Step() != wizard.StepConfirmation {
		t.Errorf("total=%d step=%s", conf.Total, w.Step())
	}
}
