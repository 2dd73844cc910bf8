package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/portfolio/backend/internal/config"
	"github.com/portfolio/backend/internal/handler"
	"github.com/portfolio/backend/internal/logging"
	"github.com/portfolio/backend/internal/relay"
	"github.com/portfolio/backend/internal/repository"
	"github.com/portfolio/backend/internal/service"
)

func main() {
	logging.Setup()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("load configuration failed", "error", err)
	}

	ctx := context.Background()

	pool, err := repository.NewPool(ctx, cfg.DatabaseURL())
	if err != nil {
		logging.Fatal("invalid database configuration", "error", err)
	}
	defer pool.Close()

	repo := repository.NewPgMessageRepository(pool)

	// Bootstrap eagerly so the schema is ready before the first request.
	// A failure only degrades: the root endpoint keeps answering with
	// database "Disconnected" and data endpoints return 500 until the
	// store recovers, at which point bootstrap is retried per operation.
	bootCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	if err := repo.Bootstrap(bootCtx); err != nil {
		slog.Error("schema bootstrap failed, store unavailable", "error", err)
	} else {
		slog.Info("messages table ready")
	}
	cancel()

	var notifier service.Notifier
	var rel *relay.Relay
	if cfg.MailEnabled() {
		rel = relay.New(&relay.SMTPSender{
			Addr:     cfg.SMTPAddr,
			Username: cfg.EmailUser,
			Password: cfg.EmailPass,
		})
		rel.Start(ctx)
		notifier = rel
		slog.Info("email notifications enabled", "smtp_addr", cfg.SMTPAddr)
	} else {
		slog.Info("email notifications disabled")
	}

	messageService := service.NewMessageService(repo, notifier)

	h := handler.New(pool, cfg.FrontendURL)
	messageHandler := handler.NewMessageHandler(messageService)

	// 5 submissions per client IP per 15 minutes, contact route only.
	limiter := handler.NewRateLimiter(5, 15*time.Minute)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.Root)
	mux.Handle("POST /api/contact", limiter.Middleware(http.HandlerFunc(messageHandler.Submit)))
	mux.HandleFunc("GET /api/messages", messageHandler.List)
	mux.HandleFunc("PUT /api/messages/{id}/read", messageHandler.MarkRead)
	mux.HandleFunc("/", h.NotFound)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      handler.Recover(handler.RequestLogger(h.CORS(mux))),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Fatal("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancelShutdown := context.WithTimeout(ctx, 5*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
	if rel != nil {
		rel.Close()
	}
}
