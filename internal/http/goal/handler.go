package goal

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finassist/internal/goal"
	"github.com/MrJamesThe3rd/finassist/internal/http/respond"
	"github.com/MrJamesThe3rd/finassist/internal/i18n"
	"github.com/MrJamesThe3rd/finassist/internal/transaction"
)

type Handler struct {
	sessions respond.Sessions
}

func NewHandler(sessions respond.Sessions) *Handler {
	return &Handler{sessions: sessions}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.With(middleware.AllowContentType("application/json")).Post("/", h.create)
	r.Delete("/{id}", h.delete)
}

type goalResponse struct {
	ID         uuid.UUID            `json:"id"`
	Category   transaction.Category `json:"category"`
	Amount     decimal.Decimal      `json:"amount"`
	Spent      decimal.Decimal      `json:"spent"`
	Percent    decimal.Decimal      `json:"percent"`
	OverBudget bool                 `json:"over_budget"`
	Display    string               `json:"display"`
	CreatedAt  time.Time            `json:"created_at"`
}

func toResponse(p goal.Progress, lang i18n.Language) goalResponse {
	return goalResponse{
		ID:         p.Goal.ID,
		Category:   p.Goal.Category,
		Amount:     p.Goal.Amount,
		Spent:      p.Spent,
		Percent:    p.Percent,
		OverBudget: p.OverBudget,
		Display:    i18n.FormatCurrency(p.Spent, lang) + " / " + i18n.FormatCurrency(p.Goal.Amount, lang),
		CreatedAt:  p.Goal.CreatedAt,
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	s, ok := respond.Session(w, r, h.sessions)
	if !ok {
		return
	}

	snap := s.Snapshot()
	progress := goal.ComputeProgress(snap.Goals, snap.Transactions)

	resp := make([]goalResponse, len(progress))
	for i, p := range progress {
		resp[i] = toResponse(p, snap.Language)
	}

	respond.JSON(w, http.StatusOK, resp)
}

type createGoalRequest struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	s, ok := respond.Session(w, r, h.sessions)
	if !ok {
		return
	}

	var req createGoalRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	cat, err := transaction.ParseCategory(req.Category)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	g, err := s.AddGoal(r.Context(), cat, req.Amount)
	if err != nil {
		if errors.Is(err, goal.ErrInvalidCategory) || errors.Is(err, goal.ErrInvalidAmount) {
			respond.Error(w, http.StatusBadRequest, err.Error())
			return
		}

		slog.Error("saving goal", "error", err)
		respond.Error(w, http.StatusInternalServerError, i18n.T(s.Language(), i18n.KeySaveFailed))

		return
	}

	snap := s.Snapshot()
	progress := goal.ComputeProgress([]*goal.Goal{g}, snap.Transactions)

	respond.JSON(w, http.StatusCreated, toResponse(progress[0], snap.Language))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid id")
		return
	}

	s, ok := respond.Session(w, r, h.sessions)
	if !ok {
		return
	}

	if err := s.RemoveGoal(r.Context(), id); err != nil {
		if errors.Is(err, goal.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "goal not found")
			return
		}

		slog.Error("removing goal", "error", err)
		respond.Error(w, http.StatusInternalServerError, i18n.T(s.Language(), i18n.KeySaveFailed))

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
