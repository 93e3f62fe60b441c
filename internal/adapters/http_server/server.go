package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

type Server struct{ mux *chi.Mux }

type Options struct {
	// Timeout bounds each request; zero disables the wrapper (needed for websockets).
	Timeout time.Duration
	// RateLimitRPM caps requests per client IP per minute; zero disables it.
	RateLimitRPM int
}

func New(opts Options) *Server {
	m := chi.NewRouter()

	// ✅ All middlewares go here (before any routes are added)
	m.Use(chimw.RealIP)
	m.Use(chimw.RequestID)
	m.Use(chimw.Recoverer) // chi's built-in recover
	if opts.Timeout > 0 {
		m.Use(Timeout(opts.Timeout)) // timeout wrapper
	}
	m.Use(Metrics)
	m.Use(Logger(log.Logger))
	if opts.RateLimitRPM > 0 {
		m.Use(RateLimit(opts.RateLimitRPM))
	}

	m.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return &Server{mux: m}
}

func (s *Server) Mux() http.Handler { return s.mux }

// Mount attaches any extra handler (e.g., /metrics) to the router.
func (s *Server) Mount(path string, h http.Handler) {
	s.mux.Handle(path, h)
}
