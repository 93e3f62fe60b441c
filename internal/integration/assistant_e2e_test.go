//go:build integration || !unit

package integration

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	httpserver "concierge/internal/adapters/http_server"
	"concierge/internal/adapters/llm"
	"concierge/internal/adapters/mcp"
	redisad "concierge/internal/adapters/redis"
	"concierge/internal/app"
	"concierge/internal/chat"
	"concierge/internal/dispatch"
	"concierge/internal/domain"
	"concierge/internal/intent"
	"concierge/internal/storage/memory"
)

// ---------- helpers ----------

type steadyRand struct{}

func (steadyRand) Float64() float64 { return 0.5 }
func (steadyRand) IntN(int) int     { return 0 }

type fixedClock struct{}

func (fixedClock) Now() time.Time { return time.Date(2025, time.July, 14, 9, 0, 0, 0, time.UTC) }

// startToolServer serves the REST facade and /mcp over real HTTP, wired like cmd/toolserver.
func startToolServer(t *testing.T) *httptest.Server {
	t.Helper()
	hotels := app.NewHotelService(memory.NewInventory(memory.SeedHotels()), memory.NewBookings(), steadyRand{}, fixedClock{})
	svc := app.NewServices(hotels, app.NewWeatherService(steadyRand{}, fixedClock{}))

	s := httpserver.New(httpserver.Options{Timeout: 5 * time.Second})
	s.MountAPI(&httpserver.APIHandlers{B: svc})
	s.MountMCP(&httpserver.MCPHandler{Pipeline: dispatch.New(svc), Name: "e2e", Version: "0"})
	ts := httptest.NewServer(s.Mux())
	t.Cleanup(ts.Close)
	return ts
}

func newHistory(t *testing.T) *redisad.History {
	t.Helper()
	mr := miniredis.RunT(t)
	return redisad.NewWithClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}), time.Hour)
}

var bookingIDPattern = regexp.MustCompile(`\*\*Booking ID:\*\* ([0-9A-F]{8})`)

// ---------- tests ----------

// A remote assistant books a room through /mcp, and the booking is then visible
// through the REST facade and the chat history.
func TestAssistant_RemoteBookingFlow(t *testing.T) {
	ts := startToolServer(t)
	ctx := context.Background()

	model := llm.NewStatic(`{"tool":"general"}`,
		llm.StaticRule{Contains: "find hotels", Reply: `{"tool":"search_hotels","location":"Miami","check_in":"2025-07-20","check_out":"2025-07-23","guests":2}`},
		llm.StaticRule{Contains: "book", Reply: `{"tool":"book_hotel","params":{"hotel_id":"hotel_002","check_in":"2025-07-20","check_out":"2025-07-23","guests":"2","guest_name":"John Doe","guest_email":"john@email.com"}}`},
	)
	client := mcp.NewClient(ts.URL+"/mcp", 5*time.Second, 100)
	if err := client.Initialize(ctx); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	history := newHistory(t)
	a := chat.NewAssistant(intent.NewResolver(model, fixedClock{}), client, history, fixedClock{})

	search := a.Turn(ctx, "e2e", "find hotels in Miami")
	if search.Outcome != chat.OutcomeAnswered || !strings.Contains(search.Text, "Sunset Beach Resort") {
		t.Fatalf("search: %+v", search)
	}
	if !strings.Contains(search.Text, "$599.97 for 3 nights") {
		t.Fatalf("search total missing:\n%s", search.Text)
	}

	booked := a.Turn(ctx, "e2e", "book it for me")
	if booked.Outcome != chat.OutcomeAnswered || !strings.Contains(booked.Text, "Booking Confirmed!") {
		t.Fatalf("book: %+v", booked)
	}
	m := bookingIDPattern.FindStringSubmatch(booked.Text)
	if m == nil {
		t.Fatalf("no booking id in:\n%s", booked.Text)
	}

	resp, err := http.Get(ts.URL + "/hotel/booking/" + m[1])
	if err != nil {
		t.Fatalf("get booking: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get booking status %d", resp.StatusCode)
	}
	var b domain.Booking
	if err := json.NewDecoder(resp.Body).Decode(&b); err != nil {
		t.Fatalf("decode booking: %v", err)
	}
	if b.Nights != 3 || math.Abs(b.TotalPrice-599.97) > 1e-9 || b.Status != domain.BookingStatusConfirmed {
		t.Fatalf("unexpected booking %+v", b)
	}

	msgs, err := a.History(ctx, "e2e")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(msgs) != 4 || msgs[2].Content != "book it for me" || msgs[3].Role != domain.RoleAssistant {
		t.Fatalf("unexpected history %+v", msgs)
	}
}

func TestAssistant_RemoteFailuresStayInChat(t *testing.T) {
	ts := startToolServer(t)
	ctx := context.Background()

	model := llm.NewStatic(`{"tool":"general"}`,
		llm.StaticRule{Contains: "lookup", Reply: `{"tool":"get_booking","booking_id":"NOPE0000"}`},
		llm.StaticRule{Contains: "forecast", Reply: `{"tool":"get_weather_forecast","location":"Chicago","days":10}`},
	)
	a := chat.NewAssistant(intent.NewResolver(model, fixedClock{}),
		mcp.NewClient(ts.URL+"/mcp", 5*time.Second, 100), newHistory(t), fixedClock{})

	r := a.Turn(ctx, "e2e", "lookup my booking")
	if r.Outcome != chat.OutcomeToolFailed || r.Text != "❌ Booking not found" {
		t.Fatalf("lookup: %+v", r)
	}
	r = a.Turn(ctx, "e2e", "10 day forecast")
	if r.Outcome != chat.OutcomeToolFailed || r.Text != "❌ Forecast days must be between 1 and 7" {
		t.Fatalf("forecast: %+v", r)
	}
}

func TestAssistant_ToolServerDown(t *testing.T) {
	ts := startToolServer(t)
	url := ts.URL + "/mcp"
	ts.Close()

	model := llm.NewStatic("", llm.StaticRule{Contains: "weather", Reply: `{"tool":"get_current_weather","location":"Denver"}`})
	a := chat.NewAssistant(intent.NewResolver(model, fixedClock{}),
		mcp.NewClient(url, time.Second, 100), chat.NewMemoryHistory(), fixedClock{})

	r := a.Turn(context.Background(), "e2e", "weather please")
	if r.Outcome != chat.OutcomeError || r.Text != chat.MsgToolFailed {
		t.Fatalf("expected generic tool failure, got %+v", r)
	}
}
