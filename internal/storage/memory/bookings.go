package memory

import (
	"context"
	"sync"

	"concierge/internal/domain"
)

// Bookings keeps confirmations for the process lifetime. Entries are never deleted.
type Bookings struct {
	mu sync.RWMutex
	m  map[string]domain.Booking
}

func NewBookings() *Bookings {
	return &Bookings{m: make(map[string]domain.Booking)}
}

func (s *Bookings) Save(ctx context.Context, b domain.Booking) error {
	s.mu.Lock()
	s.m[b.BookingID] = b
	s.mu.Unlock()
	return nil
}

func (s *Bookings) Get(ctx context.Context, id string) (domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.m[id]
	if !ok {
		return domain.Booking{}, domain.NotFound("Booking not found")
	}
	return b, nil
}

func (s *Bookings) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.m)
}
