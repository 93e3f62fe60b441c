package llm

import (
	"context"
	"strings"
)

// Static answers from a fixed table keyed by lower-cased substrings of the user text.
// It lets the assistant run without a model.
type Static struct {
	rules    []StaticRule
	fallback string
}

type StaticRule struct {
	Contains string
	Reply    string
}

func NewStatic(fallback string, rules ...StaticRule) *Static {
	return &Static{rules: rules, fallback: fallback}
}

// DemoStatic covers the example queries shown to users.
func DemoStatic() *Static {
	return NewStatic(`{"tool": "general", "message": "Try asking about hotels or weather."}`,
		StaticRule{"alert", `{"tool": "get_weather_alerts", "location": "New York"}`},
		StaticRule{"forecast", `{"tool": "get_weather_forecast", "location": "Chicago", "days": 5}`},
		StaticRule{"weather", `{"tool": "get_current_weather", "location": "Denver"}`},
		StaticRule{"booking", `{"tool": "get_booking", "booking_id": null}`},
		StaticRule{"book", `{"tool": "book_hotel", "hotel_id": "hotel_002", "check_in": null, "check_out": null, "guests": 2, "guest_name": "John Doe", "guest_email": "john@email.com"}`},
		StaticRule{"hotel", `{"tool": "search_hotels", "location": "Miami", "check_in": null, "check_out": null, "guests": 2}`},
	)
}

func (s *Static) Name() string { return "static" }

// Generate matches against the text after the last "User:" marker so the instruction
// block itself never matches.
func (s *Static) Generate(_ context.Context, prompt string) (string, error) {
	text := prompt
	if i := strings.LastIndex(prompt, "User:"); i >= 0 {
		text = prompt[i:]
	}
	text = strings.ToLower(text)
	for _, r := range s.rules {
		if strings.Contains(text, strings.ToLower(r.Contains)) {
			return r.Reply, nil
		}
	}
	return s.fallback, nil
}
