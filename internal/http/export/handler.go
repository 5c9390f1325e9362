package export

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/finassist/internal/export"
	httptx "github.com/MrJamesThe3rd/finassist/internal/http/transaction"
	"github.com/MrJamesThe3rd/finassist/internal/http/respond"
	"github.com/MrJamesThe3rd/finassist/internal/metrics"
)

type Handler struct {
	sessions respond.Sessions
	now      func() time.Time
}

func NewHandler(sessions respond.Sessions) *Handler {
	return &Handler{sessions: sessions, now: time.Now}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/csv", h.csv)
	r.Get("/statement", h.statement)
}

func (h *Handler) csv(w http.ResponseWriter, r *http.Request) {
	s, ok := respond.Session(w, r, h.sessions)
	if !ok {
		return
	}

	txs := metrics.FilterTransactions(s.Snapshot().Transactions, httptx.ParseFilter(r))

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename(h.now())))

	if err := export.WriteCSV(w, txs); err != nil {
		slog.Error("writing csv export", "user_id", s.UserID(), "error", err)
	}
}

func (h *Handler) statement(w http.ResponseWriter, r *http.Request) {
	s, ok := respond.Session(w, r, h.sessions)
	if !ok {
		return
	}

	snap := s.Snapshot()
	txs := metrics.FilterTransactions(snap.Transactions, httptx.ParseFilter(r))

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")

	if _, err := w.Write([]byte(export.Statement(txs, snap.Language))); err != nil {
		slog.Error("writing statement", "error", err)
	}
}
