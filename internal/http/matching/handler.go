package matching

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MrJamesThe3rd/finassist/internal/auth"
	"github.com/MrJamesThe3rd/finassist/internal/goal"
	"github.com/MrJamesThe3rd/finassist/internal/http/respond"
	"github.com/MrJamesThe3rd/finassist/internal/investment"
	"github.com/MrJamesThe3rd/finassist/internal/matching"
	"github.com/MrJamesThe3rd/finassist/internal/transaction"
)

type Handler struct {
	svc *matching.Service
}

func NewHandler(svc *matching.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/suggest", h.suggest)
	r.With(middleware.AllowContentType("application/json")).Post("/mappings", h.learn)
}

type categoriesResponse struct {
	Transaction []transaction.Category `json:"transaction"`
	Goal        []transaction.Category `json:"goal"`
	Investment  []investment.Type      `json:"investment"`
}

func (h *Handler) list(w http.ResponseWriter, _ *http.Request) {
	respond.JSON(w, http.StatusOK, categoriesResponse{
		Transaction: transaction.Categories,
		Goal:        goal.Categories(),
		Investment:  investment.Types,
	})
}

type suggestResponse struct {
	Description string               `json:"description"`
	Category    transaction.Category `json:"category,omitempty"`
	Matched     bool                 `json:"matched"`
}

func (h *Handler) suggest(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	desc := r.URL.Query().Get("description")
	if desc == "" {
		respond.Error(w, http.StatusBadRequest, "description query parameter is required")
		return
	}

	cat, matched, err := h.svc.Suggest(r.Context(), userID, desc)
	if err != nil {
		slog.Error("suggesting category", "error", err)
		respond.Error(w, http.StatusInternalServerError, "internal error")

		return
	}

	respond.JSON(w, http.StatusOK, suggestResponse{Description: desc, Category: cat, Matched: matched})
}

type learnRequest struct {
	Pattern  string `json:"pattern"`
	Category string `json:"category"`
}

func (h *Handler) learn(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserID(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req learnRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	cat, err := transaction.ParseCategory(req.Category)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.svc.Learn(r.Context(), userID, req.Pattern, cat); err != nil {
		if errors.Is(err, matching.ErrEmptyPattern) {
			respond.Error(w, http.StatusBadRequest, err.Error())
			return
		}

		slog.Error("learning mapping", "error", err)
		respond.Error(w, http.StatusInternalServerError, "internal error")

		return
	}

	w.WriteHeader(http.StatusCreated)
}
