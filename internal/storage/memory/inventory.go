package memory

import (
	"context"
	"sync"

	"concierge/internal/domain"
)

// Inventory is the process-lifetime hotel list.
type Inventory struct {
	mu     sync.Mutex
	hotels []domain.Hotel
}

func NewInventory(hotels []domain.Hotel) *Inventory {
	return &Inventory{hotels: hotels}
}

func (inv *Inventory) All(ctx context.Context) ([]domain.Hotel, error) {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	out := make([]domain.Hotel, len(inv.hotels))
	for i, h := range inv.hotels {
		out[i] = clone(h)
	}
	return out, nil
}

func (inv *Inventory) Get(ctx context.Context, id string) (domain.Hotel, error) {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	i := inv.index(id)
	if i < 0 {
		return domain.Hotel{}, domain.NotFound("Hotel not found")
	}
	return clone(inv.hotels[i]), nil
}

// Reserve takes one room regardless of the guest count; the count only gates availability.
// Nothing stops the room count from going below zero when guests <= 0.
func (inv *Inventory) Reserve(ctx context.Context, id string, guests int) (domain.Hotel, error) {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	i := inv.index(id)
	if i < 0 {
		return domain.Hotel{}, domain.NotFound("Hotel not found")
	}
	if inv.hotels[i].AvailableRooms < guests {
		return domain.Hotel{}, domain.Unavailable("Not enough rooms available")
	}
	inv.hotels[i].AvailableRooms--
	return clone(inv.hotels[i]), nil
}

func (inv *Inventory) index(id string) int {
	for i := range inv.hotels {
		if inv.hotels[i].ID == id {
			return i
		}
	}
	return -1
}

func clone(h domain.Hotel) domain.Hotel {
	h.Amenities = append([]string(nil), h.Amenities...)
	return h
}
