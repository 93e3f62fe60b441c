package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	server "concierge/internal/adapters/http_server"
	"concierge/internal/adapters/observability"
	"concierge/internal/app"
	"concierge/internal/dispatch"
	"concierge/internal/domain"
	"concierge/internal/shared"
	"concierge/internal/storage/memory"
	mysqlrepo "concierge/internal/storage/mysql"
)

func main() {
	cfg, err := shared.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.IsDev(), os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bookings, closeStore := bookingStore(ctx, cfg)
	defer closeStore()

	hotels := app.NewHotelService(memory.NewInventory(memory.SeedHotels()), bookings, app.SystemRand{}, app.SystemClock{})
	weather := app.NewWeatherService(app.SystemRand{}, app.SystemClock{})
	svc := app.NewServices(hotels, weather)

	// http
	srv := server.New(server.Options{Timeout: 15 * time.Second, RateLimitRPM: cfg.RateLimitRPM})
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountAPI(&server.APIHandlers{B: svc})
	srv.MountMCP(&server.MCPHandler{Pipeline: dispatch.New(svc), Name: "Hotel & Weather API Server", Version: "1.0"})

	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux(), ReadHeaderTimeout: 5 * time.Second}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("tool server listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	})
	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("tool server failed")
	}
	log.Info().Msg("tool server stopped")
}

// bookingStore picks the booking backend. MySQL failures at start-up are fatal.
func bookingStore(ctx context.Context, cfg shared.Config) (domain.BookingStore, func()) {
	if cfg.BookingStore != "mysql" {
		return memory.NewBookings(), func() {}
	}
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.PingContext(ctx); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("database connection ok")

	repo := mysqlrepo.New(db)
	if err := repo.Migrate(ctx); err != nil {
		log.Fatal().Err(err).Msg("bookings migration failed")
	}
	return repo, func() { _ = db.Close() }
}
