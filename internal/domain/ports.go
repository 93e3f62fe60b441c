package domain

import (
	"context"
	"time"
)

// HotelInventory owns the hotel list and its room counts.
type HotelInventory interface {
	All(ctx context.Context) ([]Hotel, error)
	// Get returns the first hotel carrying id.
	Get(ctx context.Context, id string) (Hotel, error)
	// Reserve checks that at least guests rooms are free and takes one room, atomically.
	Reserve(ctx context.Context, id string, guests int) (Hotel, error)
}

type BookingStore interface {
	Save(ctx context.Context, b Booking) error
	Get(ctx context.Context, id string) (Booking, error)
}

// Rand is the randomness source behind availability rolls, weather values and alerts.
type Rand interface {
	Float64() float64
	// IntN returns a value in [0, n).
	IntN(n int) int
}

type Clock interface {
	Now() time.Time
}

// TextGenerator is the language model: prompt in, free text out.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Name() string
}

// Invocation is a resolved intent. An empty Tool means the request was not understood.
type Invocation struct {
	Tool    string         `json:"tool"`
	Params  map[string]any `json:"params"`
	Message string         `json:"message,omitempty"`
}

func (i Invocation) Recognized() bool { return i.Tool != "" }

type ChatMessage struct {
	Role    string    `json:"role"`
	Content string    `json:"content"`
	At      time.Time `json:"at"`
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// HistoryStore keeps the per-session conversation.
type HistoryStore interface {
	Append(ctx context.Context, session string, m ChatMessage) error
	List(ctx context.Context, session string) ([]ChatMessage, error)
	Clear(ctx context.Context, session string) error
}

// ToolResult is the rendered outcome of one tool call. Failed marks a service failure
// that still produced user-facing text.
type ToolResult struct {
	Text   string `json:"text"`
	Failed bool   `json:"failed"`
}
