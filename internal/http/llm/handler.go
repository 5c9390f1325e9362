package llm

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MrJamesThe3rd/finassist/internal/assistant"
	"github.com/MrJamesThe3rd/finassist/internal/http/respond"
	"github.com/MrJamesThe3rd/finassist/internal/llm"
)

// Handler serves the assistant action endpoint on top of any llm.Client, so
// a deployment can act as the remote backend of another.
// Requests are bounded the same way the in-process bridge bounds them.
type Handler struct {
	client       llm.Client
	timeout      time.Duration
	contextLimit int
}

type Option func(*Handler)

func WithTimeout(d time.Duration) Option {
	return func(h *Handler) { h.timeout = d }
}

func WithContextLimit(n int) Option {
	return func(h *Handler) { h.contextLimit = n }
}

func NewHandler(client llm.Client, opts ...Option) *Handler {
	h := &Handler{
		client:       client,
		timeout:      assistant.DefaultTimeout,
		contextLimit: assistant.DefaultContextLimit,
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

func (h *Handler) Routes(r chi.Router) {
	r.With(middleware.AllowContentType("application/json")).Post("/", h.action)
}

func (h *Handler) action(w http.ResponseWriter, r *http.Request) {
	var req llm.ActionRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	switch req.Action {
	case llm.ActionGenerateResponse:
		h.generate(w, r, req)
	case llm.ActionFetchMarketNews:
		h.marketNews(w, r, req)
	default:
		respond.Error(w, http.StatusBadRequest, llm.ErrUnknownAction.Error())
	}
}

func (h *Handler) generate(w http.ResponseWriter, r *http.Request, req llm.ActionRequest) {
	in := req.Request()
	if len(in.Transactions) > h.contextLimit {
		in.Transactions = in.Transactions[:h.contextLimit]
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	reply, err := h.client.Generate(ctx, in)
	if err != nil {
		slog.Error("generating response", "error", err)
		respond.Error(w, http.StatusBadGateway, "model request failed")

		return
	}

	out, err := llm.EncodeReply(reply)
	if err != nil {
		slog.Error("encoding reply", "error", err)
		respond.Error(w, http.StatusInternalServerError, "internal error")

		return
	}

	respond.JSON(w, http.StatusOK, out)
}

func (h *Handler) marketNews(w http.ResponseWriter, r *http.Request, req llm.ActionRequest) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	items, err := h.client.MarketNews(ctx, req.NewsRequest())
	if err != nil && !errors.Is(err, llm.ErrNoInvestments) {
		slog.Error("fetching market news", "error", err)
		respond.Error(w, http.StatusBadGateway, "model request failed")

		return
	}

	if items == nil {
		items = []llm.NewsItem{}
	}

	respond.JSON(w, http.StatusOK, items)
}
