package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	server "concierge/internal/adapters/http_server"
	"concierge/internal/adapters/llm"
	"concierge/internal/adapters/mcp"
	"concierge/internal/adapters/observability"
	redisad "concierge/internal/adapters/redis"
	"concierge/internal/app"
	"concierge/internal/chat"
	"concierge/internal/dispatch"
	"concierge/internal/domain"
	"concierge/internal/intent"
	"concierge/internal/shared"
	"concierge/internal/storage/memory"
)

func main() {
	cfg, err := shared.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}
	// the REPL owns stdout, so logs go to stderr there
	logOut := os.Stdout
	if cfg.AssistantMode == "cli" {
		logOut = os.Stderr
	}
	log.Logger = observability.NewLogger(cfg.IsDev(), logOut)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gen, closeGen := textGenerator(ctx, cfg)
	defer closeGen()
	caller := toolCaller(ctx, cfg)
	history, closeHistory := historyStore(ctx, cfg)
	defer closeHistory()
	a := chat.NewAssistant(intent.NewResolver(gen, app.SystemClock{}), caller, history, app.SystemClock{})

	log.Info().
		Str("model", gen.Name()).
		Str("tools", cfg.ToolsMode).
		Str("history", cfg.HistoryStore).
		Msg("assistant starting")

	if cfg.AssistantMode == "cli" {
		if ms := observability.Serve(cfg.MetricsAddr, observability.InitRegistry()); ms != nil {
			defer ms.Close()
		}
		if err := chat.RunCLI(ctx, a, uuid.NewString(), os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
			log.Fatal().Err(err).Msg("cli failed")
		}
		return
	}
	serveWeb(ctx, cfg, a)
}

func serveWeb(ctx context.Context, cfg shared.Config, a *chat.Assistant) {
	reg := observability.InitRegistry()
	// no request timeout: websockets stay open
	srv := server.New(server.Options{RateLimitRPM: cfg.RateLimitRPM})
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountChat(server.NewChatHandlers(a))

	httpSrv := &http.Server{Addr: cfg.AssistantAddr, Handler: srv.Mux(), ReadHeaderTimeout: 5 * time.Second}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", cfg.AssistantAddr).Msg("assistant listening")
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
		log.Fatal().Err(err).Msg("assistant server failed")
	}
}

// textGenerator picks the model backend. The returned func releases it.
func textGenerator(ctx context.Context, cfg shared.Config) (domain.TextGenerator, func()) {
	switch cfg.LLMProvider {
	case "gemini":
		g, err := llm.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.LLMRPS)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize Gemini client")
		}
		return timed{g, cfg.LLMTimeout}, func() {
			if err := g.Close(); err != nil {
				log.Warn().Err(err).Msg("gemini close failed")
			}
		}
	case "static":
		return llm.DemoStatic(), func() {}
	default:
		return llm.NewOllama(cfg.OllamaURL, cfg.OllamaModel, cfg.LLMTimeout, cfg.LLMRPS), func() {}
	}
}

// timed bounds every Generate call by d.
type timed struct {
	domain.TextGenerator
	d time.Duration
}

func (t timed) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, t.d)
	defer cancel()
	return t.TextGenerator.Generate(ctx, prompt)
}

func toolCaller(ctx context.Context, cfg shared.Config) chat.ToolCaller {
	if cfg.ToolsMode == "local" {
		hotels := app.NewHotelService(memory.NewInventory(memory.SeedHotels()), memory.NewBookings(), app.SystemRand{}, app.SystemClock{})
		svc := app.NewServices(hotels, app.NewWeatherService(app.SystemRand{}, app.SystemClock{}))
		return chat.LocalCaller{Pipeline: dispatch.New(svc)}
	}
	cl := mcp.NewClient(cfg.ToolsURL, cfg.ToolTimeout, 5)
	if err := cl.Initialize(ctx); err != nil {
		// the server may come up later; every call reports its own failure
		log.Warn().Err(err).Str("url", cfg.ToolsURL).Msg("❌ Server Disconnected")
	} else {
		log.Info().Str("url", cfg.ToolsURL).Msg("✅ Server Connected")
	}
	return cl
}

// historyStore picks the conversation store. Redis failures at start-up are fatal.
func historyStore(ctx context.Context, cfg shared.Config) (domain.HistoryStore, func()) {
	if cfg.HistoryStore != "redis" {
		return chat.NewMemoryHistory(), func() {}
	}
	h := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB, cfg.HistoryTTL)
	if err := h.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("redis ping failed")
	}
	return h, func() { _ = h.Close() }
}
