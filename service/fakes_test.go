package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/models"
)

// memStore is an in-memory stand-in for the pagos/reservas tables.
// fakeTx snapshots it before a transaction and restores it on error.
type memStore struct {
	mu           sync.Mutex
	payments     map[string]models.Payment
	reservations map[string]models.Reservation
	rooms        map[string]models.Room
	services     map[string]models.ExtraService

	failCreateReservation error
	failLink              error
}

func newMemStore() *memStore {
	return &memStore{
		payments:     map[string]models.Payment{},
		reservations: map[string]models.Reservation{},
		rooms:        map[string]models.Room{},
		services:     map[string]models.ExtraService{},
	}
}

type fakeTx struct{ store *memStore }

func (f fakeTx) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	f.store.mu.Lock()
	payments := make(map[string]models.Payment, len(f.store.payments))
	for k, v := range f.store.payments {
		payments[k] = v
	}
	reservations := make(map[string]models.Reservation, len(f.store.reservations))
	for k, v := range f.store.reservations {
		reservations[k] = v
	}
	f.store.mu.Unlock()

	if err := fn(ctx); err != nil {
		f.store.mu.Lock()
		f.store.payments = payments
		f.store.reservations = reservations
		f.store.mu.Unlock()
		return err
	}
	return nil
}

type fakePayments struct{ store *memStore }

func (f fakePayments) Create(ctx context.Context, p *models.Payment) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	f.store.payments[p.ID] = *p
	return nil
}

func (f fakePayments) GetByID(ctx context.Context, id string) (*models.Payment, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	p, ok := f.store.payments[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &p, nil
}

func (f fakePayments) LinkReservation(ctx context.Context, paymentID, reservationID string) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	if f.store.failLink != nil {
		return f.store.failLink
	}
	p, ok := f.store.payments[paymentID]
	if !ok {
		return models.ErrNotFound
	}
	p.ReservationID = reservationID
	f.store.payments[paymentID] = p
	return nil
}

func (f fakePayments) List(ctx context.Context, from, to *time.Time, status string) ([]models.Payment, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	out := []models.Payment{}
	for _, p := range f.store.payments {
		if status != "" && p.Status != status {
			continue
		}
		if p.PaidAt != nil && ((from != nil && p.PaidAt.Before(*from)) || (to != nil && p.PaidAt.After(*to))) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (f fakePayments) UpdateStatus(ctx context.Context, id, status string, now time.Time) (*models.Payment, error) {
	return nil, errors.New("not implemented")
}

type fakeReservations struct{ store *memStore }

func (f fakeReservations) Create(ctx context.Context, r *models.Reservation) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	if f.store.failCreateReservation != nil {
		return f.store.failCreateReservation
	}
	f.store.reservations[r.ID] = *r
	return nil
}

func (f fakeReservations) GetByID(ctx context.Context, id string) (*models.Reservation, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	r, ok := f.store.reservations[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &r, nil
}

func (f fakeReservations) List(ctx context.Context, filter models.ReservationFilter) ([]models.Reservation, error) {
	return nil, nil
}

func (f fakeReservations) HasOverlap(ctx context.Context, roomID string, checkIn, checkOut time.Time) (bool, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	for _, r := range f.store.reservations {
		if r.RoomID == roomID && r.Status != models.ReservationCancelled &&
			r.CheckIn.Before(checkOut) && r.CheckOut.After(checkIn) {
			return true, nil
		}
	}
	return false, nil
}

func (f fakeReservations) UpdateStatus(ctx context.Context, id, status string) (*models.Reservation, error) {
	return nil, errors.New("not implemented")
}

type fakeRooms struct{ store *memStore }

func (f fakeRooms) List(ctx context.Context, status string) ([]models.Room, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	out := []models.Room{}
	for _, r := range f.store.rooms {
		if status == "" || r.Status == status {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f fakeRooms) GetByID(ctx context.Context, id string) (*models.Room, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	r, ok := f.store.rooms[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &r, nil
}

func (f fakeRooms) Create(ctx context.Context, room *models.Room) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	f.store.rooms[room.ID] = *room
	return nil
}

func (f fakeRooms) Update(ctx context.Context, room *models.Room) error { return f.Create(ctx, room) }

func (f fakeRooms) Delete(ctx context.Context, id string) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	delete(f.store.rooms, id)
	return nil
}

func (f fakeRooms) SetImage(ctx context.Context, id, url, path string) (string, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	r, ok := f.store.rooms[id]
	if !ok {
		return "", models.ErrNotFound
	}
	prev := r.ImagePath
	r.ImageURL, r.ImagePath = url, path
	f.store.rooms[id] = r
	return prev, nil
}

type fakeServices struct{ store *memStore }

func (f fakeServices) List(ctx context.Context, activeOnly bool) ([]models.ExtraService, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	out := []models.ExtraService{}
	for _, s := range f.store.services {
		if !activeOnly || s.Active {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f fakeServices) GetByID(ctx context.Context, id string) (*models.ExtraService, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	s, ok := f.store.services[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &s, nil
}

func (f fakeServices) Create(ctx context.Context, s *models.ExtraService) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	f.store.services[s.ID] = *s
	return nil
}

func (f fakeServices) Update(ctx context.Context, s *models.ExtraService) error { return f.Create(ctx, s) }

func (f fakeServices) Delete(ctx context.Context, id string) error {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	delete(f.store.services, id)
	return nil
}

func (f fakeServices) SetImage(ctx context.Context, id, url, path string) (string, error) {
	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	s, ok := f.store.services[id]
	if !ok {
		return "", models.ErrNotFound
	}
	prev := s.ImagePath
	s.ImageURL, s.ImagePath = url, path
	f.store.services[id] = s
	return prev, nil
}

type fakeSettings struct{ settings *models.PropertySettings }

func (f *fakeSettings) Get(ctx context.Context) (*models.PropertySettings, error) {
	if f.settings == nil {
		d := models.DefaultSettings()
		return &d, nil
	}
	s := *f.settings
	return &s, nil
}

func (f *fakeSettings) Save(ctx context.Context, s *models.PropertySettings) error {
	copied := *s
	f.settings = &copied
	return nil
}
