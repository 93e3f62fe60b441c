package chat

import (
	"context"
	"sync"

	"concierge/internal/adapters/observability"
	"concierge/internal/domain"
)

// MemoryHistory keeps conversations in process memory. Reads return copies.
type MemoryHistory struct {
	mu       sync.RWMutex
	sessions map[string][]domain.ChatMessage
}

func NewMemoryHistory() *MemoryHistory {
	return &MemoryHistory{sessions: map[string][]domain.ChatMessage{}}
}

func (h *MemoryHistory) Append(_ context.Context, session string, m domain.ChatMessage) error {
	h.mu.Lock()
	h.sessions[session] = append(h.sessions[session], m)
	h.mu.Unlock()
	observability.ObserveHistory("memory", "append")
	return nil
}

func (h *MemoryHistory) List(_ context.Context, session string) ([]domain.ChatMessage, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	observability.ObserveHistory("memory", "list")
	msgs := h.sessions[session]
	out := make([]domain.ChatMessage, len(msgs))
	copy(out, msgs)
	return out, nil
}

func (h *MemoryHistory) Clear(_ context.Context, session string) error {
	h.mu.Lock()
	delete(h.sessions, session)
	h.mu.Unlock()
	observability.ObserveHistory("memory", "clear")
	return nil
}
