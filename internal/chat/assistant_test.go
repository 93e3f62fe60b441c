package chat_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"concierge/internal/adapters/llm"
	"concierge/internal/app"
	"concierge/internal/chat"
	"concierge/internal/dispatch"
	"concierge/internal/domain"
	"concierge/internal/intent"
	"concierge/internal/storage/memory"
	"concierge/internal/tools"
)

// ---- fakes ----

type fixedClock struct{}

func (fixedClock) Now() time.Time { return time.Date(2025, time.July, 14, 9, 0, 0, 0, time.UTC) }

type fakeResolver struct {
	inv domain.Invocation
	err error
}

func (f fakeResolver) Resolve(context.Context, string) (domain.Invocation, error) { return f.inv, f.err }

type fakeCaller struct {
	res   domain.ToolResult
	err   error
	calls int
	name  string
}

func (f *fakeCaller) ListTools(context.Context) ([]tools.Definition, error) {
	return tools.Definitions()[:2], f.err
}

func (f *fakeCaller) CallTool(_ context.Context, name string, _ map[string]any) (domain.ToolResult, error) {
	f.calls++
	f.name = name
	return f.res, f.err
}

func weatherInvocation() domain.Invocation {
	return domain.Invocation{Tool: "get_current_weather", Params: map[string]any{"location": "Miami"}}
}

func TestTurn_Answered(t *testing.T) {
	h := chat.NewMemoryHistory()
	caller := &fakeCaller{res: domain.ToolResult{Text: "sunny"}}
	a := chat.NewAssistant(fakeResolver{inv: weatherInvocation()}, caller, h, fixedClock{})

	r := a.Turn(context.Background(), "s1", "weather in Miami?")
	if r.Outcome != chat.OutcomeAnswered || r.Text != "sunny" || r.Tool != "get_current_weather" || r.Session != "s1" {
		t.Fatalf("unexpected reply %+v", r)
	}
	if caller.name != "get_current_weather" {
		t.Fatalf("called %q", caller.name)
	}

	msgs, _ := a.History(context.Background(), "s1")
	if len(msgs) != 2 {
		t.Fatalf("history has %d messages", len(msgs))
	}
	if msgs[0].Role != domain.RoleUser || msgs[0].Content != "weather in Miami?" {
		t.Fatalf("first message %+v", msgs[0])
	}
	if msgs[1].Role != domain.RoleAssistant || msgs[1].Content != "sunny" {
		t.Fatalf("second message %+v", msgs[1])
	}
}

func TestTurn_FailurePaths(t *testing.T) {
	cases := []struct {
		name     string
		resolver fakeResolver
		caller   *fakeCaller
		want     string
		outcome  chat.Outcome
		called   bool
	}{
		{
			name:     "resolver error",
			resolver: fakeResolver{err: intent.ErrMalformedOutput},
			caller:   &fakeCaller{}, want: chat.MsgResolveFailed, outcome: chat.OutcomeError,
		},
		{
			name:     "no tool",
			resolver: fakeResolver{},
			caller:   &fakeCaller{}, want: chat.MsgUnrecognized, outcome: chat.OutcomeUnrecognized,
		},
		{
			name:     "general with message",
			resolver: fakeResolver{inv: domain.Invocation{Message: "I need more information to help you"}},
			caller:   &fakeCaller{}, want: chat.MsgUnrecognized + "\n\nI need more information to help you", outcome: chat.OutcomeUnrecognized,
		},
		{
			name:     "tool outside the registry",
			resolver: fakeResolver{inv: domain.Invocation{Tool: "order_pizza", Params: map[string]any{}}},
			caller:   &fakeCaller{}, want: chat.MsgUnrecognized, outcome: chat.OutcomeUnrecognized,
		},
		{
			name:     "null parameter",
			resolver: fakeResolver{inv: domain.Invocation{Tool: "get_current_weather", Params: map[string]any{"location": nil}}},
			caller:   &fakeCaller{}, want: chat.MsgIncomplete, outcome: chat.OutcomeIncomplete,
		},
		{
			name:     "transport error",
			resolver: fakeResolver{inv: weatherInvocation()},
			caller:   &fakeCaller{err: context.DeadlineExceeded}, want: chat.MsgToolFailed, outcome: chat.OutcomeError, called: true,
		},
		{
			name:     "service failure",
			resolver: fakeResolver{inv: weatherInvocation()},
			caller:   &fakeCaller{res: domain.ToolResult{Text: "❌ Booking not found", Failed: true}},
			want:     "❌ Booking not found", outcome: chat.OutcomeToolFailed, called: true,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := chat.NewAssistant(tc.resolver, tc.caller, chat.NewMemoryHistory(), fixedClock{})
			r := a.Turn(context.Background(), "s", "text")
			if r.Text != tc.want || r.Outcome != tc.outcome {
				t.Fatalf("got %+v", r)
			}
			if (tc.caller.calls > 0) != tc.called {
				t.Fatalf("tool calls = %d", tc.caller.calls)
			}
		})
	}
}

func TestTurn_IncompleteListsMissing(t *testing.T) {
	inv := domain.Invocation{Tool: "search_hotels", Params: map[string]any{"location": "Miami", "check_in": nil, "guests": 2}}
	a := chat.NewAssistant(fakeResolver{inv: inv}, &fakeCaller{}, chat.NewMemoryHistory(), fixedClock{})
	r := a.Turn(context.Background(), "s", "hotels in Miami")
	if strings.Join(r.Missing, ",") != "check_in,check_out" {
		t.Fatalf("missing = %v", r.Missing)
	}
}

func TestTools_RecordsSystemMessages(t *testing.T) {
	h := chat.NewMemoryHistory()
	a := chat.NewAssistant(fakeResolver{}, &fakeCaller{}, h, fixedClock{})
	defs, err := a.Tools(context.Background(), "s")
	if err != nil || len(defs) != 2 {
		t.Fatalf("tools: %v %v", defs, err)
	}
	msgs, _ := h.List(context.Background(), "s")
	if len(msgs) != 2 || msgs[0].Role != domain.RoleSystem || !strings.HasPrefix(msgs[0].Content, "search_hotels: ") {
		t.Fatalf("unexpected history %+v", msgs)
	}

	if _, err := a.Tools(context.Background(), ""); err != nil {
		t.Fatalf("tools without session: %v", err)
	}
	if msgs, _ := h.List(context.Background(), ""); len(msgs) != 0 {
		t.Fatalf("anonymous listing was recorded")
	}
}

func TestTools_CallerError(t *testing.T) {
	a := chat.NewAssistant(fakeResolver{}, &fakeCaller{err: errors.New("down")}, chat.NewMemoryHistory(), fixedClock{})
	if _, err := a.Tools(context.Background(), "s"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestClear(t *testing.T) {
	a := chat.NewAssistant(fakeResolver{}, &fakeCaller{}, chat.NewMemoryHistory(), fixedClock{})
	a.Turn(context.Background(), "s", "hi")
	if err := a.Clear(context.Background(), "s"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if msgs, _ := a.History(context.Background(), "s"); len(msgs) != 0 {
		t.Fatalf("history not cleared: %+v", msgs)
	}
}

type steadyRand struct{}

func (steadyRand) Float64() float64 { return 0.5 }
func (steadyRand) IntN(int) int     { return 0 }

// A full in-process turn: static model, resolver, dispatch and the real services.
func TestTurn_LocalEndToEnd(t *testing.T) {
	hotels := app.NewHotelService(memory.NewInventory(memory.SeedHotels()), memory.NewBookings(), steadyRand{}, fixedClock{})
	weather := app.NewWeatherService(steadyRand{}, fixedClock{})
	caller := chat.LocalCaller{Pipeline: dispatch.New(app.NewServices(hotels, weather))}
	resolver := intent.NewResolver(llm.DemoStatic(), fixedClock{})
	a := chat.NewAssistant(resolver, caller, chat.NewMemoryHistory(), fixedClock{})

	r := a.Turn(context.Background(), "s", "What's the weather in Denver?")
	if r.Outcome != chat.OutcomeAnswered {
		t.Fatalf("got %+v", r)
	}
	if !strings.HasPrefix(r.Text, "🌤️ **Current Weather in Denver**") || !strings.Contains(r.Text, "18°C (64°F)") {
		t.Fatalf("unexpected text:\n%s", r.Text)
	}

	// the demo model leaves the dates out of hotel searches
	r = a.Turn(context.Background(), "s", "Find hotels in Miami")
	if r.Outcome != chat.OutcomeIncomplete || r.Text != chat.MsgIncomplete {
		t.Fatalf("got %+v", r)
	}
}

func TestMemoryHistory_CopiesAndConcurrency(t *testing.T) {
	h := chat.NewMemoryHistory()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = h.Append(ctx, "s", domain.ChatMessage{Role: domain.RoleUser, Content: "x"})
			_, _ = h.List(ctx, "s")
		}()
	}
	wg.Wait()

	msgs, _ := h.List(ctx, "s")
	if len(msgs) != 20 {
		t.Fatalf("got %d messages", len(msgs))
	}
	msgs[0].Content = "changed"
	again, _ := h.List(ctx, "s")
	if again[0].Content != "x" {
		t.Fatalf("List leaked internal slice")
	}
}
