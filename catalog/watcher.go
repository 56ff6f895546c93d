// Package catalog keeps a live view of bookable rooms and active add-ons.
package catalog

import (
	"context"
	"fmt"
	"log"
	"reflect"
	"sync"
	"time"

	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/clock"
	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/models"
	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/repository"
)

// Snapshot is the catalog at one point in time
type Snapshot struct {
	Rooms     []models.Room         `json:"rooms"`
	Services  []models.ExtraService `json:"services"`
	UpdatedAt time.Time             `json:"updatedAt"`
}

type subscriber struct {
	ch   chan Snapshot
	once sync.Once
}

func (s *subscriber) close() {
	s.once.Do(func() { close(s.ch) })
}

// Watcher polls the catalog and pushes changed snapshots to subscribers.
// Each subscriber holds at most one pending snapshot, always the latest.
type Watcher struct {
	rooms    repository.RoomRepositoryInterface
	services repository.ExtraServiceRepositoryInterface
	clock    clock.Clock

	mu     sync.Mutex
	loaded bool
	closed bool
	cur    Snapshot
	subs   map[int]*subscriber
	nextID int
}

// NewWatcher creates a watcher. Nothing is loaded until Refresh or Run.
func NewWatcher(rooms repository.RoomRepositoryInterface, services repository.ExtraServiceRepositoryInterface, clk clock.Clock) *Watcher {
	if clk == nil {
		clk = clock.NewSystem()
	}
	return &Watcher{
		rooms:    rooms,
		services: services,
		clock:    clk,
		subs:     make(map[int]*subscriber),
	}
}

// Current returns the last loaded snapshot and whether one has been loaded
func (w *Watcher) Current() (Snapshot, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.cur, w.loaded
}

// Subscribe registers a listener. The channel receives the current snapshot right away
// when one is loaded. The returned func unsubscribes and closes the channel; it is safe
// to call more than once.
func (w *Watcher) Subscribe() (<-chan Snapshot, func()) {
	sub := &subscriber{ch: make(chan Snapshot, 1)}

	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		sub.close()
		return sub.ch, func() {}
	}
	id := w.nextID
	w.nextID++
	w.subs[id] = sub
	if w.loaded {
		sub.ch <- w.cur
	}
	w.mu.Unlock()

	return sub.ch, func() {
		w.mu.Lock()
		delete(w.subs, id)
		w.mu.Unlock()
		sub.close()
	}
}

// Subscribers returns the number of active listeners
func (w *Watcher) Subscribers() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.subs)
}

// Refresh loads the catalog and publishes it when it differs from the current one
func (w *Watcher) Refresh(ctx context.Context) (bool, error) {
	rooms, err := w.rooms.List(ctx, "")
	if err != nil {
		return false, fmt.Errorf("load rooms: %w", err)
	}
	services, err := w.services.List(ctx, true)
	if err != nil {
		return false, fmt.Errorf("load services: %w", err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.loaded && reflect.DeepEqual(w.cur.Rooms, rooms) && reflect.DeepEqual(w.cur.Services, services) {
		return false, nil
	}
	w.cur = Snapshot{Rooms: rooms, Services: services, UpdatedAt: w.clock.Now()}
	w.loaded = true

	for _, sub := range w.subs {
		// drop the stale pending snapshot, if any
		select {
		case <-sub.ch:
		default:
		}
		sub.ch <- w.cur
	}
	return true, nil
}

// Run refreshes every interval until ctx is cancelled, then closes every subscription
func (w *Watcher) Run(ctx context.Context, interval time.Duration) {
	defer w.closeAll()

	if _, err := w.Refresh(ctx); err != nil {
		log.Printf("⚠️  CatalogWatcher: initial load failed: %v", err)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			changed, err := w.Refresh(ctx)
			if err != nil {
				log.Printf("⚠️  CatalogWatcher: refresh failed: %v", err)
				continue
			}
			if changed {
				log.Printf("📦 CatalogWatcher: catalog changed, notified %d subscribers", w.Subscribers())
			}
		}
	}
}

func (w *Watcher) closeAll() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	for id, sub := range w.subs {
		delete(w.subs, id)
		sub.close()
	}
}

// AvailableRooms returns the rooms of s that can be booked
func (s Snapshot) AvailableRooms() []models.Room {
	out := make([]models.Room, 0, len(s.Rooms))
	for _, r := range s.Rooms {
		if r.Status == models.RoomStatusAvailable {
			out = append(out, r)
		}
	}
	return out
}
