// Package store holds the first leg of a round trip until its partner
// webhook arrives.
package store

import (
	"sync"
	"time"

	"github.com/makersair/fhbridge/internal/domain"
)

// PendingStore is a single-process, in-memory holding area for round-trip
// legs awaiting their partner. Entries older than the TTL are dropped by
// Sweep and ignored by TakeAndRemove. All state is guarded by an internal
// mutex; callers never lock.
type PendingStore struct {
	mu      sync.Mutex
	entries map[string]pendingEntry
	ttl     time.Duration
	now     func() time.Time
}

type pendingEntry struct {
	leg      *domain.BookingLeg
	storedAt time.Time
}

type Option func(*PendingStore)

// WithClock substitutes the time source, used by tests to age entries.
func WithClock(now func() time.Time) Option {
	return func(s *PendingStore) { s.now = now }
}

func NewPendingStore(ttl time.Duration, opts ...Option) *PendingStore {
	s := &PendingStore{
		entries: make(map[string]pendingEntry),
		ttl:     ttl,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Put stores the leg under its order key, silently overwriting any previous
// entry. Last write wins; duplicate first-leg deliveries resolve this way.
func (s *PendingStore) Put(orderID string, leg *domain.BookingLeg) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[orderID] = pendingEntry{leg: leg, storedAt: s.now()}
}

// TakeAndRemove atomically returns and deletes the entry for orderID.
// Missing and expired entries both report false, and an expired entry is
// deleted on the way out. There is no non-destructive read: a round trip
// merges at most once.
func (s *PendingStore) TakeAndRemove(orderID string) (*domain.BookingLeg, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[orderID]
	if !ok {
		return nil, false
	}
	delete(s.entries, orderID)
	if s.now().Sub(entry.storedAt) > s.ttl {
		return nil, false
	}
	return entry.leg, true
}

// Sweep drops every entry older than the TTL and returns how many were
// removed. Expiry is a liveness guarantee only; a leg arriving after its
// partner expired is treated as a fresh first leg.
func (s *PendingStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for orderID, entry := range s.entries {
		if now.Sub(entry.storedAt) > s.ttl {
			delete(s.entries, orderID)
			removed++
		}
	}
	return removed
}

// Len reports the number of stored entries, including any not yet swept.
func (s *PendingStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
