package httpserver_test

import (
	"encoding/json"
	"net/http"
	"testing"

	httpserver "concierge/internal/adapters/http_server"
	"concierge/internal/domain"
)

func decode[T any](t *testing.T, b []byte) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		t.Fatalf("decode %s: %v", b, err)
	}
	return v
}

type problemBody struct {
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail"`
}

func TestAPI_Health(t *testing.T) {
	h := newToolServer(httpserver.Options{}).Mux()
	for _, path := range []string{"/hotel/health", "/weather/health"} {
		rr := do(t, h, "GET", path, nil)
		if rr.Code != http.StatusOK {
			t.Fatalf("%s: %d", path, rr.Code)
		}
		if body := decode[map[string]any](t, rr.Body.Bytes()); body["ok"] != true {
			t.Fatalf("%s: %v", path, body)
		}
	}
}

func TestAPI_SearchAndBook(t *testing.T) {
	h := newToolServer(httpserver.Options{}).Mux()

	rr := do(t, h, "POST", "/hotel/search", map[string]any{"location": "new york", "check_in": "2025-07-20", "check_out": "2025-07-23", "guests": 2})
	if rr.Code != http.StatusOK {
		t.Fatalf("search: %d %s", rr.Code, rr.Body.String())
	}
	res := decode[domain.SearchResult](t, rr.Body.Bytes())
	if res.Nights != 3 || res.HotelsFound != 2 || len(res.Hotels) != 2 {
		t.Fatalf("unexpected search result %+v", res)
	}

	rr = do(t, h, "POST", "/hotel/book", map[string]any{
		"hotel_id": "hotel_001", "check_in": "2025-07-20", "check_out": "2025-07-23", "guests": 2,
		"guest_name": "Jane", "guest_email": "jane@example.com",
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("book: %d %s", rr.Code, rr.Body.String())
	}
	b := decode[domain.Booking](t, rr.Body.Bytes())
	if b.Status != "confirmed" || len(b.BookingID) != 8 || b.TotalPrice != 299.99*3 {
		t.Fatalf("unexpected booking %+v", b)
	}

	for _, method := range []string{"GET", "POST"} {
		rr = do(t, h, method, "/hotel/booking/"+b.BookingID, nil)
		if rr.Code != http.StatusOK {
			t.Fatalf("%s booking: %d", method, rr.Code)
		}
		if got := decode[domain.Booking](t, rr.Body.Bytes()); got.BookingID != b.BookingID {
			t.Fatalf("got booking %+v", got)
		}
	}
}

func TestAPI_ErrorMapping(t *testing.T) {
	h := newToolServer(httpserver.Options{}).Mux()
	cases := []struct {
		name   string
		method string
		path   string
		body   any
		status int
		detail string
	}{
		{"bad date shape", "POST", "/hotel/search", map[string]any{"location": "Miami", "check_in": "07/20/2025", "check_out": "2025-07-22", "guests": 1}, 422, "check_in must be YYYY-MM-DD"},
		{"zero guests", "POST", "/hotel/search", map[string]any{"location": "Miami", "check_in": "2025-07-20", "check_out": "2025-07-22", "guests": 0}, 422, "guests must be at least 1"},
		{"broken json", "POST", "/hotel/search", "{", 422, ""},
		{"checkout before checkin", "POST", "/hotel/search", map[string]any{"location": "Miami", "check_in": "2025-07-22", "check_out": "2025-07-20", "guests": 1}, 400, "Check-out date must be after check-in date"},
		{"unknown hotel", "POST", "/hotel/book", map[string]any{"hotel_id": "hotel_999", "check_in": "2025-07-20", "check_out": "2025-07-22", "guests": 1, "guest_name": "A", "guest_email": "a@b.c"}, 404, "Hotel not found"},
		{"no rooms", "POST", "/hotel/book", map[string]any{"hotel_id": "hotel_005", "check_in": "2025-07-20", "check_out": "2025-07-22", "guests": 6, "guest_name": "A", "guest_email": "a@b.c"}, 409, "Not enough rooms available"},
		{"unknown booking", "GET", "/hotel/booking/NOPE", nil, 404, "Booking not found"},
		{"forecast range", "GET", "/weather/forecast?location=Miami&days=8", nil, 400, "Forecast days must be between 1 and 7"},
		{"forecast days shape", "GET", "/weather/forecast?location=Miami&days=many", nil, 422, "days must be an integer"},
		{"missing location", "GET", "/weather/current", nil, 422, "location is required"},
		{"hotel by name", "GET", "/hotel/hotels?name=nowhere", nil, 404, "Hotel not found"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := do(t, h, tc.method, tc.path, tc.body)
			if rr.Code != tc.status {
				t.Fatalf("status %d, want %d: %s", rr.Code, tc.status, rr.Body.String())
			}
			p := decode[problemBody](t, rr.Body.Bytes())
			if p.Status != tc.status {
				t.Fatalf("problem status %d", p.Status)
			}
			if tc.detail != "" && p.Detail != tc.detail {
				t.Fatalf("detail %q, want %q", p.Detail, tc.detail)
			}
		})
	}
}

func TestAPI_Weather(t *testing.T) {
	h := newToolServer(httpserver.Options{}).Mux()

	rr := do(t, h, "GET", "/weather/current?location=Miami", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("current: %d", rr.Code)
	}
	if w := decode[domain.WeatherSnapshot](t, rr.Body.Bytes()); w.TemperatureC != 33 {
		t.Fatalf("unexpected snapshot %+v", w)
	}

	rr = do(t, h, "GET", "/weather/forecast?location=Miami", nil)
	if f := decode[domain.Forecast](t, rr.Body.Bytes()); f.Days != 5 || len(f.Entries) != 5 {
		t.Fatalf("default forecast: %+v", f)
	}

	rr = do(t, h, "GET", "/weather/alerts?location=Miami", nil)
	if a := decode[domain.AlertReport](t, rr.Body.Bytes()); a.AlertCount != 0 || a.Alerts == nil {
		t.Fatalf("alerts: %+v", a)
	}

	rr = do(t, h, "GET", "/hotel/hotels?name=sunset", nil)
	if hotel := decode[domain.Hotel](t, rr.Body.Bytes()); hotel.ID != "hotel_002" {
		t.Fatalf("find hotel: %+v", hotel)
	}
}
