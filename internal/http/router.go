package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MrJamesThe3rd/finassist/internal/auth"
	"github.com/MrJamesThe3rd/finassist/internal/http/account"
	"github.com/MrJamesThe3rd/finassist/internal/http/chat"
	"github.com/MrJamesThe3rd/finassist/internal/http/dashboard"
	"github.com/MrJamesThe3rd/finassist/internal/http/export"
	"github.com/MrJamesThe3rd/finassist/internal/http/goal"
	"github.com/MrJamesThe3rd/finassist/internal/http/investment"
	"github.com/MrJamesThe3rd/finassist/internal/http/llm"
	"github.com/MrJamesThe3rd/finassist/internal/http/matching"
	"github.com/MrJamesThe3rd/finassist/internal/http/profile"
	"github.com/MrJamesThe3rd/finassist/internal/http/transaction"
)

type Handlers struct {
	Account      *account.Handler
	Dashboard    *dashboard.Handler
	Transactions *transaction.Handler
	Investments  *investment.Handler
	Goals        *goal.Handler
	Chat         *chat.Handler
	Profile      *profile.Handler
	Categories   *matching.Handler
	Export       *export.Handler
	Assistant    *llm.Handler
}

func New(verifier *auth.Verifier, allowedOrigins []string, h Handlers) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Handle("/metrics", promhttp.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", h.Account.Routes)

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(verifier))

			r.Route("/session", h.Account.ProtectedRoutes)
			r.Route("/dashboard", h.Dashboard.Routes)
			r.Route("/transactions", h.Transactions.Routes)
			r.Route("/investments", h.Investments.Routes)
			r.Route("/goals", h.Goals.Routes)
			r.Route("/chat", h.Chat.Routes)
			r.Route("/profile", h.Profile.Routes)
			r.Route("/categories", h.Categories.Routes)
			r.Route("/export", h.Export.Routes)
			r.Route("/assistant", h.Assistant.Routes)
		})
	})

	return router
}
