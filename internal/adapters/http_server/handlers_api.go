package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"concierge/internal/domain"
	"concierge/internal/tools"
)

// APIHandlers is the REST facade over the hotel and weather services.
type APIHandlers struct{ B tools.Backend }

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

func (s *Server) MountAPI(h *APIHandlers) {
	s.mux.Route("/hotel", func(r chi.Router) {
		r.Get("/health", health("hotel"))
		r.Post("/search", h.searchHotels)
		r.Post("/book", h.bookHotel)
		r.Get("/booking/{id}", h.getBooking)
		r.Post("/booking/{id}", h.getBooking)
		r.Get("/hotels", h.findHotel)
	})
	s.mux.Route("/weather", func(r chi.Router) {
		r.Get("/health", health("weather"))
		r.Get("/current", h.currentWeather)
		r.Get("/forecast", h.weatherForecast)
		r.Get("/alerts", h.weatherAlerts)
	})
}

func health(service string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "status": "ok", "service": service})
	}
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal response")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write body")
	}
}

// writeServiceError maps a service failure to its problem response by kind.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		writeProblem(w, http.StatusBadRequest, "Bad Request", err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, domain.ErrUnavailable):
		writeProblem(w, http.StatusConflict, "Conflict", err.Error())
	default:
		log.Error().Err(err).Msg("service call failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
	}
}

// invalid collects request shape violations; they are answered with 422.
type invalid []string

func (v *invalid) require(ok bool, msg string) {
	if !ok {
		*v = append(*v, msg)
	}
}

func (v invalid) write(w http.ResponseWriter) bool {
	if len(v) == 0 {
		return false
	}
	writeProblem(w, http.StatusUnprocessableEntity, "Unprocessable Entity", strings.Join(v, "; "))
	return true
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	if err := dec.Decode(dst); err != nil {
		writeProblem(w, http.StatusUnprocessableEntity, "Unprocessable Entity", "invalid JSON body: "+err.Error())
		return false
	}
	return true
}

func (h *APIHandlers) searchHotels(w http.ResponseWriter, r *http.Request) {
	var req domain.SearchRequest
	if !decodeBody(w, r, &req) {
		return
	}
	var v invalid
	v.require(strings.TrimSpace(req.Location) != "", "location is required")
	v.require(datePattern.MatchString(req.CheckIn), "check_in must be YYYY-MM-DD")
	v.require(datePattern.MatchString(req.CheckOut), "check_out must be YYYY-MM-DD")
	v.require(req.Guests >= 1, "guests must be at least 1")
	if v.write(w) {
		return
	}

	res, err := h.B.SearchHotels(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *APIHandlers) bookHotel(w http.ResponseWriter, r *http.Request) {
	var req domain.BookRequest
	if !decodeBody(w, r, &req) {
		return
	}
	var v invalid
	v.require(req.HotelID != "", "hotel_id is required")
	v.require(datePattern.MatchString(req.CheckIn), "check_in must be YYYY-MM-DD")
	v.require(datePattern.MatchString(req.CheckOut), "check_out must be YYYY-MM-DD")
	v.require(req.Guests >= 1, "guests must be at least 1")
	v.require(strings.TrimSpace(req.GuestName) != "", "guest_name is required")
	v.require(strings.Contains(req.GuestEmail, "@"), "guest_email must be an email address")
	if v.write(w) {
		return
	}

	b, err := h.B.BookHotel(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (h *APIHandlers) getBooking(w http.ResponseWriter, r *http.Request) {
	b, err := h.B.GetBooking(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (h *APIHandlers) findHotel(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		writeProblem(w, http.StatusUnprocessableEntity, "Unprocessable Entity", "name is required")
		return
	}
	hotel, err := h.B.FindHotel(r.Context(), name)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, hotel)
}

func location(w http.ResponseWriter, r *http.Request) (string, bool) {
	loc := strings.TrimSpace(r.URL.Query().Get("location"))
	if loc == "" {
		writeProblem(w, http.StatusUnprocessableEntity, "Unprocessable Entity", "location is required")
		return "", false
	}
	return loc, true
}

func (h *APIHandlers) currentWeather(w http.ResponseWriter, r *http.Request) {
	loc, ok := location(w, r)
	if !ok {
		return
	}
	res, err := h.B.CurrentWeather(r.Context(), loc)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *APIHandlers) weatherForecast(w http.ResponseWriter, r *http.Request) {
	loc, ok := location(w, r)
	if !ok {
		return
	}
	days := tools.DefaultForecastDays
	if ds := r.URL.Query().Get("days"); ds != "" {
		d, err := strconv.Atoi(ds)
		if err != nil {
			writeProblem(w, http.StatusUnprocessableEntity, "Unprocessable Entity", "days must be an integer")
			return
		}
		days = d
	}
	// the service owns the 1..7 range check
	res, err := h.B.WeatherForecast(r.Context(), loc, days)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *APIHandlers) weatherAlerts(w http.ResponseWriter, r *http.Request) {
	loc, ok := location(w, r)
	if !ok {
		return
	}
	res, err := h.B.WeatherAlerts(r.Context(), loc)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
