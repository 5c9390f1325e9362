// Package app wires stores, services and the assistant from configuration.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"strings"

	"github.com/MrJamesThe3rd/finassist/internal/assistant"
	"github.com/MrJamesThe3rd/finassist/internal/chat"
	chatStore "github.com/MrJamesThe3rd/finassist/internal/chat/store"
	"github.com/MrJamesThe3rd/finassist/internal/config"
	"github.com/MrJamesThe3rd/finassist/internal/database"
	"github.com/MrJamesThe3rd/finassist/internal/goal"
	goalStore "github.com/MrJamesThe3rd/finassist/internal/goal/store"
	"github.com/MrJamesThe3rd/finassist/internal/importer"
	"github.com/MrJamesThe3rd/finassist/internal/investment"
	investmentStore "github.com/MrJamesThe3rd/finassist/internal/investment/store"
	"github.com/MrJamesThe3rd/finassist/internal/llm"
	"github.com/MrJamesThe3rd/finassist/internal/llm/gemini"
	"github.com/MrJamesThe3rd/finassist/internal/llm/remote"
	"github.com/MrJamesThe3rd/finassist/internal/matching"
	matchingStore "github.com/MrJamesThe3rd/finassist/internal/matching/store"
	"github.com/MrJamesThe3rd/finassist/internal/news"
	"github.com/MrJamesThe3rd/finassist/internal/profile"
	profileStore "github.com/MrJamesThe3rd/finassist/internal/profile/store"
	"github.com/MrJamesThe3rd/finassist/internal/session"
	"github.com/MrJamesThe3rd/finassist/internal/transaction"
	txStore "github.com/MrJamesThe3rd/finassist/internal/transaction/store"
)

type App struct {
	DB       *sql.DB
	LLM      llm.Client
	Matching *matching.Service
	Importer *importer.Service
	Sessions *session.Registry
}

// New connects to the database, applies migrations and builds every service.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	db, err := database.New(ctx, cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating database: %w", err)
	}

	client, err := NewLLMClient(ctx, cfg)
	if err != nil {
		db.Close()
		return nil, err
	}

	matchingSvc := matching.NewService(matchingStore.New(db))

	deps := session.Deps{
		Transactions: transaction.NewService(txStore.New(db)),
		Investments:  investment.NewService(investmentStore.New(db)),
		Goals:        goal.NewService(goalStore.New(db)),
		Chat:         chat.NewService(chatStore.New(db)),
		Profiles:     profile.NewService(profileStore.New(db)),
		Bridge: assistant.NewBridge(client,
			assistant.WithTimeout(cfg.Assistant.Timeout),
			assistant.WithContextLimit(cfg.Assistant.ContextLimit),
		),
		News: client,
	}

	return &App{
		DB:       db,
		LLM:      client,
		Matching: matchingSvc,
		Importer: importer.NewService(matchingSvc),
		Sessions: session.NewRegistry(deps, session.WithNewsOptions(
			news.WithDelay(cfg.News.Debounce),
			news.WithTimeout(cfg.News.Timeout),
		)),
	}, nil
}

// NewLLMClient picks the assistant backend named by LLM_BACKEND.
func NewLLMClient(ctx context.Context, cfg *config.Config) (llm.Client, error) {
	switch strings.ToLower(cfg.LLM.Backend) {
	case config.BackendGemini:
		client, err := gemini.New(ctx, gemini.Config{APIKey: cfg.LLM.GeminiKey, Model: cfg.LLM.GeminiModel})
		if err != nil {
			return nil, fmt.Errorf("creating gemini client: %w", err)
		}

		return client, nil
	case config.BackendRemote:
		return remote.New(cfg.LLM.RemoteURL, cfg.LLM.RemoteToken, &http.Client{Timeout: cfg.Assistant.Timeout}), nil
	}

	return nil, fmt.Errorf("%w: unknown LLM_BACKEND %q", config.ErrInvalidConfig, cfg.LLM.Backend)
}

func (a *App) Close() error {
	a.Sessions.Close()
	return a.DB.Close()
}
