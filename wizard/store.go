package wizard

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/clock"
)

type storeEntry struct {
	wizard   *Wizard
	lastSeen time.Time
}

// Store keeps open booking sessions in memory. Drafts are not persisted:
// a restart or an idle period longer than ttl drops them.
type Store struct {
	mu      sync.Mutex
	entries map[string]*storeEntry
	ttl     time.Duration
	clock   clock.Clock
}

// NewStore creates an empty store
func NewStore(ttl time.Duration, clk clock.Clock) *Store {
	if clk == nil {
		clk = clock.NewSystem()
	}
	return &Store{
		entries: make(map[string]*storeEntry),
		ttl:     ttl,
		clock:   clk,
	}
}

// Create opens a new wizard for ownerID and returns its session id
func (s *Store) Create(ownerID string) (string, *Wizard) {
	id := uuid.NewString()
	w := New(ownerID)

	s.mu.Lock()
	s.entries[id] = &storeEntry{wizard: w, lastSeen: s.clock.Now()}
	s.mu.Unlock()

	log.Printf("🧭 BookingStore: opened session %s owner=%s", id, ownerID)
	return id, w
}

// Get returns the wizard for id and marks it as recently used
func (s *Store) Get(id string) (*Wizard, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		return nil, false
	}
	e.lastSeen = s.clock.Now()
	return e.wizard, true
}

// Discard drops the session
func (s *Store) Discard(id string) {
	s.mu.Lock()
	delete(s.entries, id)
	s.mu.Unlock()
}

// Len returns the number of open sessions
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Sweep evicts sessions idle for longer than ttl. Sessions with a submission in flight are kept.
func (s *Store) Sweep() int {
	if s.ttl <= 0 {
		return 0
	}
	cutoff := s.clock.Now().Add(-s.ttl)

	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for id, e := range s.entries {
		if e.lastSeen.Before(cutoff) && !e.wizard.inFlight() {
			delete(s.entries, id)
			evicted++
		}
	}
	return evicted
}

// Run sweeps every interval until ctx is cancelled
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				log.Printf("🧹 BookingStore: evicted %d abandoned sessions", n)
			}
		}
	}
}
