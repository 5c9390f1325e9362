package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/MrJamesThe3rd/finassist/internal/app"
	"github.com/MrJamesThe3rd/finassist/internal/auth"
	"github.com/MrJamesThe3rd/finassist/internal/config"
	apiHttp "github.com/MrJamesThe3rd/finassist/internal/http"
	accountHandler "github.com/MrJamesThe3rd/finassist/internal/http/account"
	chatHandler "github.com/MrJamesThe3rd/finassist/internal/http/chat"
	dashboardHandler "github.com/MrJamesThe3rd/finassist/internal/http/dashboard"
	exportHandler "github.com/MrJamesThe3rd/finassist/internal/http/export"
	goalHandler "github.com/MrJamesThe3rd/finassist/internal/http/goal"
	investmentHandler "github.com/MrJamesThe3rd/finassist/internal/http/investment"
	llmHandler "github.com/MrJamesThe3rd/finassist/internal/http/llm"
	matchingHandler "github.com/MrJamesThe3rd/finassist/internal/http/matching"
	profileHandler "github.com/MrJamesThe3rd/finassist/internal/http/profile"
	txHandler "github.com/MrJamesThe3rd/finassist/internal/http/transaction"
)

const shutdownTimeout = 10 * time.Second

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		slog.Error("failed to start", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	var (
		verifier   = auth.NewVerifier(cfg.Auth.JWTSecret, cfg.Auth.Audience)
		authClient = auth.NewClient(cfg.Auth.URL, cfg.Auth.AnonKey, &http.Client{Timeout: cfg.Server.Timeout})
	)

	router := apiHttp.New(verifier, cfg.App.CORSOrigins, apiHttp.Handlers{
		Account:      accountHandler.NewHandler(authClient, a.Sessions),
		Dashboard:    dashboardHandler.NewHandler(a.Sessions),
		Transactions: txHandler.NewHandler(a.Sessions, a.Importer),
		Investments:  investmentHandler.NewHandler(a.Sessions),
		Goals:        goalHandler.NewHandler(a.Sessions),
		Chat:         chatHandler.NewHandler(a.Sessions),
		Profile:      profileHandler.NewHandler(a.Sessions),
		Categories:   matchingHandler.NewHandler(a.Matching),
		Export:       exportHandler.NewHandler(a.Sessions),
		Assistant: llmHandler.NewHandler(a.LLM,
			llmHandler.WithTimeout(cfg.Assistant.Timeout),
			llmHandler.WithContextLimit(cfg.Assistant.ContextLimit),
		),
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: cfg.Server.Timeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("starting server", "port", server.Addr, "backend", cfg.LLM.Backend)

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		slog.Info("shutting down server")

		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
