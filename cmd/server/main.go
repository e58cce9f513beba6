// Simple AI Agent - rule-based chat server
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/ashureev/simple-agent/internal/api"
	"github.com/ashureev/simple-agent/internal/config"
	"github.com/ashureev/simple-agent/internal/middleware"
	"github.com/ashureev/simple-agent/internal/responder"
	"github.com/ashureev/simple-agent/web"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
)

func main() {
	level := new(slog.LevelVar)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	level.Set(cfg.LogLevel)

	slog.Info("Starting server", "port", cfg.Port, "dev", cfg.IsDevelopment())

	resp, err := newResponder(cfg)
	if err != nil {
		slog.Error("Failed to initialize responder", "error", err)
		os.Exit(1)
	}
	slog.Info("Responder ready", "categories", resp.Categories(), "seeded", cfg.Responder.Seed != 0)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      newRouter(cfg, resp),
		ReadTimeout:  cfg.Timeout.Read,
		WriteTimeout: cfg.Timeout.Write,
		IdleTimeout:  cfg.Timeout.Idle,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal.
	<-ctx.Done()
	stop()

	slog.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Timeout.Shutdown)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server stopped successfully")
}

func newResponder(cfg *config.Config) (*responder.Responder, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	opts := []responder.Option{responder.WithLocation(loc)}
	if cfg.Responder.Seed != 0 {
		opts = append(opts, responder.WithPicker(responder.NewSeededPicker(cfg.Responder.Seed)))
	}
	return responder.New(opts...), nil
}

// newRouter builds the chi router with the global middleware chain, the API
// routes and the embedded chat page.
func newRouter(cfg *config.Config, resp *responder.Responder) http.Handler {
	chatHandler := api.NewChatHandler(resp, cfg.MaxRequestBodySize)
	healthHandler := api.NewHealthHandler(resp)

	r := chi.NewRouter()

	// Global middleware.
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))
	// The chat endpoint answers every non-POST itself, preflights included.
	r.Use(middleware.CORS(cfg.AllowedOrigins, api.ChatPath))

	healthHandler.RegisterHealth(r)
	chatHandler.RegisterRoutes(r)

	// Serve embedded chat page (SPA catch-all).
	r.Handle("/*", web.SPAHandler())

	return r
}
