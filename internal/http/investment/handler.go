package investment

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finassist/internal/http/respond"
	"github.com/MrJamesThe3rd/finassist/internal/i18n"
	"github.com/MrJamesThe3rd/finassist/internal/investment"
	"github.com/MrJamesThe3rd/finassist/internal/session"
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
}

type investmentResponse struct {
	ID       uuid.UUID       `json:"id"`
	Name     string          `json:"name"`
	Type     investment.Type `json:"type"`
	Value    decimal.Decimal `json:"value"`
	Display  string          `json:"display"`
	Quantity decimal.Decimal `json:"quantity"`
}

func toResponse(inv *investment.Investment, lang i18n.Language) investmentResponse {
	return investmentResponse{
		ID:       inv.ID,
		Name:     inv.Name,
		Type:     inv.Type,
		Value:    inv.Value,
		Display:  i18n.FormatCurrency(inv.Value, lang),
		Quantity: inv.Quantity,
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	s, ok := respond.Session(w, r, h.sessions)
	if !ok {
		return
	}

	snap := s.Snapshot()

	resp := make([]investmentResponse, len(snap.Investments))
	for i, inv := range snap.Investments {
		resp[i] = toResponse(inv, snap.Language)
	}

	respond.JSON(w, http.StatusOK, resp)
}

type createInvestmentRequest struct {
	Name     string          `json:"name"`
	Type     string          `json:"type"`
	Value    decimal.Decimal `json:"value"`
	Quantity decimal.Decimal `json:"quantity"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	s, ok := respond.Session(w, r, h.sessions)
	if !ok {
		return
	}

	var req createInvestmentRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	typ, err := investment.ParseType(req.Type)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	inv, err := s.AddInvestment(r.Context(), session.InvestmentInput{
		Name:     req.Name,
		Type:     typ,
		Value:    req.Value,
		Quantity: req.Quantity,
	})
	if err != nil {
		if errors.Is(err, investment.ErrInvalidName) || errors.Is(err, investment.ErrNegativeValue) || errors.Is(err, investment.ErrInvalidType) {
			respond.Error(w, http.StatusBadRequest, err.Error())
			return
		}

		slog.Error("saving investment", "error", err)
		respond.Error(w, http.StatusInternalServerError, i18n.T(s.Language(), i18n.KeySaveFailed))

		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(inv, s.Language()))
}
