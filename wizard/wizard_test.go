package wizard

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/models"
)

type fakeSubmitter struct {
	mu      sync.Mutex
	calls   int
	last    SubmitRequest
	err     error
	block   chan struct{}
	entered chan struct{}
}

func (f *fakeSubmitter) SubmitReservation(ctx context.Context, req SubmitRequest) (*Confirmation, error) {
	f.mu.Lock()
	f.calls++
	f.last = req
	f.mu.Unlock()

	if f.entered != nil {
		close(f.entered)
	}
	if f.block != nil {
		<-f.block
	}
	if f.err != nil {
		return nil, f.err
	}
	return &Confirmation{
		ReservationID: "res-1",
		PaymentID:     "pay-1",
		Total:         req.Quote.Total,
		Status:        models.ReservationPending,
	}, nil
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func testRoom() models.Room {
	return models.Room{
		ID:            "room-1",
		Name:          "Cabaña del río",
		PricePerNight: 100,
		Capacity:      4,
		BedCount:      2,
		Amenities:     []string{"wifi", "chimenea"},
		Status:        models.RoomStatusAvailable,
	}
}

var breakfast = models.ServiceSnapshot{ID: "svc-1", Name: "Desayuno", Price: 20}

// atPayment returns a wizard with a full 3-night draft sitting at PAYMENT.
func atPayment(t *testing.T) *Wizard {
	t.Helper()
	w := New("user-1")
	if err := w.SelectRoom(testRoom()); err != nil {
		t.Fatalf("SelectRoom: %v", err)
	}
	if err := w.Next(); err != nil {
		t.Fatalf("Next to DETAILS: %v", err)
	}
	if err := w.SetStay(day("2024-05-01"), day("2024-05-04"), 2); err != nil {
		t.Fatalf("SetStay: %v", err)
	}
	if err := w.SetContact("Ana", "ana@example.com", "70000000"); err != nil {
		t.Fatalf("SetContact: %v", err)
	}
	if _, err := w.ToggleService(breakfast); err != nil {
		t.Fatalf("ToggleService: %v", err)
	}
	if err := w.Next(); err != nil {
		t.Fatalf("Next to PAYMENT: %v", err)
	}
	return w
}

func TestNewWizard(t *testing.T) {
	w := New("user-1")
	d := w.Snapshot()
	if d.CurrentStep != StepRoomSelect {
		t.Errorf("expected ROOM_SELECT, got %s", d.CurrentStep)
	}
	if d.GuestCount != MinGuests {
		t.Errorf("expected guestCount %d, got %d", MinGuests, d.GuestCount)
	}
	if w.CanAdvance() {
		t.Error("empty draft must not advance")
	}
	if got := w.ComputeTotal(); got != 0 {
		t.Errorf("empty draft total = %d, want 0", got)
	}
}

func TestComputeTotal(t *testing.T) {
	t.Run("three nights plus breakfast", func(t *testing.T) {
		w := atPayment(t)
		if got := w.ComputeTotal(); got != 320 {
			t.Errorf("ComputeTotal() = %d, want 320", got)
		}
	})

	t.Run("missing checkOut is zero", func(t *testing.T) {
		w := New("u")
		_ = w.SelectRoom(testRoom())
		_ = w.Next()
		_ = w.SetStay(day("2024-05-01"), time.Time{}, 2)
		_, _ = w.ToggleService(breakfast)
		if got := w.ComputeTotal(); got != 0 {
			t.Errorf("ComputeTotal() = %d, want 0", got)
		}
	})

	t.Run("zero price is zero", func(t *testing.T) {
		w := New("u")
		room := testRoom()
		room.PricePerNight = 0
		_ = w.SelectRoom(room)
		_ = w.Next()
		_ = w.SetStay(day("2024-05-01"), day("2024-05-04"), 2)
		_, _ = w.ToggleService(breakfast)
		if got := w.ComputeTotal(); got != 0 {
			t.Errorf("ComputeTotal() = %d, want 0", got)
		}
	})

	t.Run("reversed dates have zero nights", func(t *testing.T) {
		w := New("u")
		_ = w.SelectRoom(testRoom())
		_ = w.Next()
		err := w.SetStay(day("2024-05-04"), day("2024-05-01"), 2)
		if !errors.Is(err, models.ErrInvalidDateRange) {
			t.Fatalf("expected ErrInvalidDateRange, got %v", err)
		}
		_, _ = w.ToggleService(breakfast)
		if got := w.ComputeTotal(); got != 20 {
			t.Errorf("ComputeTotal() = %d, want add-ons only (20)", got)
		}
		if w.CanAdvance() {
			t.Error("reversed dates must block DETAILS")
		}
	})

	t.Run("partial day rounds up", func(t *testing.T) {
		w := New("u")
		_ = w.SelectRoom(testRoom())
		_ = w.Next()
		_ = w.SetStay(day("2024-05-01"), day("2024-05-03").Add(90*time.Minute), 1)
		if got := w.ComputeTotal(); got != 300 {
			t.Errorf("ComputeTotal() = %d, want 300", got)
		}
	})

	t.Run("monotonic in add-ons", func(t *testing.T) {
		w := atPayment(t)
		before := w.ComputeTotal()
		_, _ = w.ToggleService(models.ServiceSnapshot{ID: "svc-2", Name: "Cena", Price: 35})
		if after := w.ComputeTotal(); after < before || after != before+35 {
			t.Errorf("adding a 35 add-on moved total from %d to %d", before, after)
		}
	})
}

func TestComputeTotalNeverDecreasesWithNights(t *testing.T) {
	checkIns := map[string]time.Time{
		"midnight":     day("2024-05-01"),
		"afternoon":    day("2024-05-01").Add(14 * time.Hour),
		"late evening": day("2024-05-01").Add(22*time.Hour + 45*time.Minute),
	}
	for name, checkIn := range checkIns {
		t.Run(name, func(t *testing.T) {
			w := New("u")
			_ = w.SelectRoom(testRoom())
			_ = w.Next()
			_, _ = w.ToggleService(breakfast)

			prev := int64(0)
			for n := 1; n <= 45; n++ {
				// Check-out lands at 10:00 on day n, noise against the check-in hour.
				checkOut := day("2024-05-01").AddDate(0, 0, n).Add(10 * time.Hour)
				if !checkOut.After(checkIn) {
					continue
				}
				if err := w.SetStay(checkIn, checkOut, 2); err != nil {
					t.Fatalf("SetStay(%d nights): %v", n, err)
				}
				got := w.ComputeTotal()
				if got < prev {
					t.Fatalf("total went from %d to %d at checkout day %d", prev, got, n)
				}
				prev = got
			}
		})
	}
}

func TestSetStayKeepsDatesWhenGuestCountIsInvalid(t *testing.T) {
	w := New("u")
	_ = w.SelectRoom(testRoom())
	_ = w.Next()

	err := w.SetStay(day("2025-01-01"), day("2025-01-04"), 0)
	if !errors.Is(err, ErrGuestCountOutOfRange) {
		t.Fatalf("expected ErrGuestCountOutOfRange, got %v", err)
	}
	d := w.Snapshot()
	if !d.CheckIn.Equal(day("2025-01-01")) || !d.CheckOut.Equal(day("2025-01-04")) {
		t.Errorf("dates were dropped: %v - %v", d.CheckIn, d.CheckOut)
	}
	if d.GuestCount != MinGuests {
		t.Errorf("guest count = %d, want previous value %d", d.GuestCount, MinGuests)
	}
	if got := w.ComputeTotal(); got != 300 {
		t.Errorf("ComputeTotal() = %d, want 300", got)
	}

	// A valid count later keeps working, and a second bad one keeps it.
	_ = w.SetStay(day("2025-01-01"), day("2025-01-04"), 3)
	_ = w.SetStay(day("2025-01-02"), day("2025-01-04"), 9)
	if d := w.Snapshot(); d.GuestCount != 3 || !d.CheckIn.Equal(day("2025-01-02")) {
		t.Errorf("got guests=%d checkIn=%v, want 3 and 2025-01-02", d.GuestCount, d.CheckIn)
	}

	err = w.SetStay(day("2025-01-04"), day("2025-01-01"), 0)
	if !errors.Is(err, ErrGuestCountOutOfRange) || !errors.Is(err, models.ErrInvalidDateRange) {
		t.Errorf("expected both problems, got %v", err)
	}
}

func TestToggleServiceByID(t *testing.T) {
	t.Run("lookup error leaves the draft", func(t *testing.T) {
		w := atPayment(t)
		before := w.ComputeTotal()
		_, err := w.ToggleServiceByID("svc-2", func(string) (models.ServiceSnapshot, error) {
			return models.ServiceSnapshot{}, models.ErrServiceInactive
		})
		if !errors.Is(err, models.ErrServiceInactive) {
			t.Fatalf("expected ErrServiceInactive, got %v", err)
		}
		if got := w.ComputeTotal(); got != before {
			t.Errorf("total changed from %d to %d", before, got)
		}
	})

	t.Run("selected add-on is removed without lookup", func(t *testing.T) {
		w := atPayment(t)
		selected, err := w.ToggleServiceByID(breakfast.ID, func(string) (models.ServiceSnapshot, error) {
			t.Error("lookup called for a selected add-on")
			return models.ServiceSnapshot{}, nil
		})
		if err != nil || selected {
			t.Fatalf("expected removal, got selected=%v err=%v", selected, err)
		}
	})

	t.Run("concurrent toggles alternate", func(t *testing.T) {
		w := atPayment(t)
		var wg sync.WaitGroup
		var mu sync.Mutex
		adds := 0
		const toggles = 50
		for range toggles {
			wg.Add(1)
			go func() {
				defer wg.Done()
				selected, err := w.ToggleServiceByID("svc-2", func(id string) (models.ServiceSnapshot, error) {
					return models.ServiceSnapshot{ID: id, Name: "Cena", Price: 35}, nil
				})
				if err != nil {
					t.Errorf("toggle: %v", err)
					return
				}
				if selected {
					mu.Lock()
					adds++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()

		if adds != toggles/2 {
			t.Errorf("expected %d adds, got %d", toggles/2, adds)
		}
		for _, s := range w.Snapshot().AdditionalServices {
			if s.ID == "svc-2" {
				t.Errorf("even number of toggles left svc-2 selected")
			}
		}
	})
}

func TestToggleServiceIsItsOwnInverse(t *testing.T) {
	w := atPayment(t)
	before := w.Snapshot().AdditionalServices

	dinner := models.ServiceSnapshot{ID: "svc-2", Name: "Cena", Price: 35}
	selected, err := w.ToggleService(dinner)
	if err != nil || !selected {
		t.Fatalf("first toggle: selected=%v err=%v", selected, err)
	}
	selected, err = w.ToggleService(dinner)
	if err != nil || selected {
		t.Fatalf("second toggle: selected=%v err=%v", selected, err)
	}

	after := w.Snapshot().AdditionalServices
	if len(after) != len(before) {
		t.Fatalf("expected %d services, got %d", len(before), len(after))
	}
	for i := range before {
		if before[i] != after[i] {
			t.Errorf("service %d changed: %+v -> %+v", i, before[i], after[i])
		}
	}
}

func TestToggleServiceKeepsSnapshotPrice(t *testing.T) {
	w := atPayment(t)
	// Removing by id works even if the catalog price changed meanwhile.
	selected, err := w.ToggleService(models.ServiceSnapshot{ID: breakfast.ID, Name: breakfast.Name, Price: 999})
	if err != nil || selected {
		t.Fatalf("expected removal, got selected=%v err=%v", selected, err)
	}
	if got := w.ComputeTotal(); got != 300 {
		t.Errorf("ComputeTotal() = %d, want 300", got)
	}
}

func TestCanAdvanceDetailsIsOrderIndependent(t *testing.T) {
	fill := []func(w *Wizard){
		func(w *Wizard) { _ = w.SetStay(day("2024-05-01"), day("2024-05-04"), 3) },
		func(w *Wizard) { _ = w.SetContact("Ana", "ana@example.com", "70000000") },
		func(w *Wizard) { _ = w.SetComments("llegamos tarde") },
	}
	orders := [][]int{{0, 1, 2}, {2, 1, 0}, {1, 0, 2}}

	for _, order := range orders {
		w := New("u")
		_ = w.SelectRoom(testRoom())
		_ = w.Next()
		for i, idx := range order {
			fill[idx](w)
			complete := contains(order[:i+1], 0) && contains(order[:i+1], 1)
			if got := w.CanAdvance(); got != complete {
				t.Errorf("order %v after %d fields: CanAdvance() = %v, want %v", order, i+1, got, complete)
			}
		}
	}
}

func contains(xs []int, x int) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}

func TestStepGuards(t *testing.T) {
	w := New("u")
	if err := w.Next(); !errors.Is(err, ErrStepGuard) {
		t.Errorf("Next without room: got %v, want ErrStepGuard", err)
	}
	if err := w.Back(); !errors.Is(err, ErrNoPreviousStep) {
		t.Errorf("Back at ROOM_SELECT: got %v, want ErrNoPreviousStep", err)
	}
	if err := w.SetStay(day("2024-05-01"), day("2024-05-02"), 1); !errors.Is(err, ErrWrongStep) {
		t.Errorf("SetStay at ROOM_SELECT: got %v, want ErrWrongStep", err)
	}

	occupied := testRoom()
	occupied.Status = models.RoomStatusOccupied
	if err := w.SelectRoom(occupied); !errors.Is(err, models.ErrRoomUnavailable) {
		t.Errorf("SelectRoom occupied: got %v, want ErrRoomUnavailable", err)
	}

	_ = w.SelectRoom(testRoom())
	_ = w.Next()
	if err := w.Next(); !errors.Is(err, ErrStepGuard) {
		t.Errorf("Next with empty details: got %v, want ErrStepGuard", err)
	}
	if err := w.SetStay(day("2024-05-01"), day("2024-05-02"), 7); !errors.Is(err, ErrGuestCountOutOfRange) {
		t.Errorf("7 guests: got %v, want ErrGuestCountOutOfRange", err)
	}
	if err := w.SetStay(day("2024-05-01"), day("2024-05-02"), 0); !errors.Is(err, ErrGuestCountOutOfRange) {
		t.Errorf("0 guests: got %v, want ErrGuestCountOutOfRange", err)
	}
	if got := w.Snapshot().GuestCount; got != MinGuests {
		t.Errorf("rejected guest count leaked into draft: %d", got)
	}
	if d := w.Snapshot(); !d.CheckIn.Equal(day("2024-05-01")) || !d.CheckOut.Equal(day("2024-05-02")) {
		t.Errorf("dates should be kept with a rejected guest count: %v - %v", d.CheckIn, d.CheckOut)
	}

	if err := w.Back(); err != nil {
		t.Fatalf("Back from DETAILS: %v", err)
	}
	if w.Step() != StepRoomSelect {
		t.Errorf("expected ROOM_SELECT after Back, got %s", w.Step())
	}
}

func TestPaymentStepAdvancesOnlyThroughSubmit(t *testing.T) {
	w := atPayment(t)
	if err := w.Next(); !errors.Is(err, ErrPaymentRequired) {
		t.Errorf("Next at PAYMENT: got %v, want ErrPaymentRequired", err)
	}
	if w.CanAdvance() {
		t.Error("CanAdvance must be false at PAYMENT")
	}
}

func TestSubmit(t *testing.T) {
	t.Run("success reaches confirmation", func(t *testing.T) {
		w := atPayment(t)
		sub := &fakeSubmitter{}

		conf, err := w.Submit(context.Background(), sub, PaymentConfirmation{Method: "card", Approved: true})
		if err != nil {
			t.Fatalf("Submit: %v", err)
		}
		if conf.Total != 320 {
			t.Errorf("confirmation total = %d, want 320", conf.Total)
		}
		if w.Step() != StepConfirmation {
			t.Errorf("expected CONFIRMATION, got %s", w.Step())
		}
		if sub.last.Draft.RoomID != "room-1" || sub.last.UserID != "user-1" || sub.last.Payment.Method != "card" {
			t.Errorf("unexpected request: %+v", sub.last)
		}
		if len(sub.last.Draft.AdditionalServices) != 1 || sub.last.Draft.AdditionalServices[0].ID != breakfast.ID {
			t.Errorf("add-ons not forwarded: %+v", sub.last.Draft.AdditionalServices)
		}
	})

	t.Run("backend failure stays at payment", func(t *testing.T) {
		w := atPayment(t)
		sub := &fakeSubmitter{err: errors.New("store unavailable")}

		if _, err := w.Submit(context.Background(), sub, PaymentConfirmation{Method: "card", Approved: true}); err == nil {
			t.Fatal("expected error")
		}
		if w.Step() != StepPayment {
			t.Errorf("expected PAYMENT after failure, got %s", w.Step())
		}
		if _, ok := w.Confirmation(); ok {
			t.Error("no confirmation expected after failure")
		}

		sub.err = nil
		if _, err := w.Submit(context.Background(), sub, PaymentConfirmation{Method: "card", Approved: true}); err != nil {
			t.Fatalf("retry: %v", err)
		}
		if sub.calls != 2 {
			t.Errorf("expected 2 submissions, got %d", sub.calls)
		}
	})

	t.Run("declined payment is rejected before any call", func(t *testing.T) {
		w := atPayment(t)
		sub := &fakeSubmitter{}
		if _, err := w.Submit(context.Background(), sub, PaymentConfirmation{Method: "card"}); !errors.Is(err, ErrPaymentNotApproved) {
			t.Errorf("got %v, want ErrPaymentNotApproved", err)
		}
		if sub.calls != 0 {
			t.Errorf("submitter called %d times", sub.calls)
		}
	})

	t.Run("submit outside payment", func(t *testing.T) {
		w := New("u")
		if _, err := w.Submit(context.Background(), &fakeSubmitter{}, PaymentConfirmation{Approved: true}); !errors.Is(err, ErrWrongStep) {
			t.Errorf("got %v, want ErrWrongStep", err)
		}
	})

	t.Run("confirmation is terminal", func(t *testing.T) {
		w := atPayment(t)
		if _, err := w.Submit(context.Background(), &fakeSubmitter{}, PaymentConfirmation{Approved: true, Method: "qr"}); err != nil {
			t.Fatalf("Submit: %v", err)
		}
		if err := w.Back(); !errors.Is(err, ErrWizardClosed) {
			t.Errorf("Back: got %v, want ErrWizardClosed", err)
		}
		if err := w.Next(); !errors.Is(err, ErrWizardClosed) {
			t.Errorf("Next: got %v, want ErrWizardClosed", err)
		}
		if _, err := w.ToggleService(breakfast); !errors.Is(err, ErrWizardClosed) {
			t.Errorf("ToggleService: got %v, want ErrWizardClosed", err)
		}
		if _, err := w.Submit(context.Background(), &fakeSubmitter{}, PaymentConfirmation{Approved: true}); !errors.Is(err, ErrWizardClosed) {
			t.Errorf("second Submit: got %v, want ErrWizardClosed", err)
		}
	})

	t.Run("concurrent submit is refused", func(t *testing.T) {
		w := atPayment(t)
		sub := &fakeSubmitter{block: make(chan struct{}), entered: make(chan struct{})}

		done := make(chan error, 1)
		go func() {
			_, err := w.Submit(context.Background(), sub, PaymentConfirmation{Approved: true, Method: "card"})
			done <- err
		}()
		<-sub.entered

		if _, err := w.Submit(context.Background(), sub, PaymentConfirmation{Approved: true, Method: "card"}); !errors.Is(err, ErrSubmissionInProgress) {
			t.Errorf("second Submit: got %v, want ErrSubmissionInProgress", err)
		}
		if err := w.Back(); !errors.Is(err, ErrSubmissionInProgress) {
			t.Errorf("Back during submit: got %v, want ErrSubmissionInProgress", err)
		}

		close(sub.block)
		if err := <-done; err != nil {
			t.Fatalf("first Submit: %v", err)
		}
		if sub.calls != 1 {
			t.Errorf("expected 1 submission, got %d", sub.calls)
		}
	})
}

func TestStepMarshalJSON(t *testing.T) {
	b, err := StepPayment.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `"PAYMENT"` {
		t.Errorf("got %s", b)
	}
}
