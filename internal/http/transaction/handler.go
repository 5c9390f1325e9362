package transaction

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finassist/internal/http/respond"
	"github.com/MrJamesThe3rd/finassist/internal/i18n"
	"github.com/MrJamesThe3rd/finassist/internal/importer"
	"github.com/MrJamesThe3rd/finassist/internal/metrics"
	"github.com/MrJamesThe3rd/finassist/internal/session"
	"github.com/MrJamesThe3rd/finassist/internal/transaction"
)

const maxUploadSize = 10 << 20

type Handler struct {
	sessions respond.Sessions
	importer *importer.Service
}

func NewHandler(sessions respond.Sessions, importSvc *importer.Service) *Handler {
	return &Handler{sessions: sessions, importer: importSvc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.With(middleware.AllowContentType("application/json")).Post("/", h.create)
	r.Delete("/{id}", h.delete)
	r.Post("/import", h.importCSV)
}

// ParseFilter reads the category and type query parameters. Unknown values
// are ignored rather than rejected.
func ParseFilter(r *http.Request) metrics.Filter {
	var f metrics.Filter

	if s := r.URL.Query().Get("category"); s != "" {
		if c, err := transaction.ParseCategory(s); err == nil {
			f.Category = c
		}
	}

	switch t := metrics.TypeFilter(r.URL.Query().Get("type")); t {
	case metrics.TypeIncome, metrics.TypeExpense:
		f.Type = t
	}

	return f
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	s, ok := respond.Session(w, r, h.sessions)
	if !ok {
		return
	}

	snap := s.Snapshot()
	txs := metrics.FilterTransactions(snap.Transactions, ParseFilter(r))

	respond.JSON(w, http.StatusOK, toResponseList(txs, snap.Language))
}

type createTransactionRequest struct {
	Date        string          `json:"date"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	s, ok := respond.Session(w, r, h.sessions)
	if !ok {
		return
	}

	var req createTransactionRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	in := session.TransactionInput{
		Description: req.Description,
		Amount:      req.Amount,
		Category:    transaction.Category(req.Category),
	}

	if c, err := transaction.ParseCategory(req.Category); err == nil {
		in.Category = c
	}

	if req.Date != "" {
		d, err := time.Parse(time.DateOnly, req.Date)
		if err != nil {
			respond.Error(w, http.StatusBadRequest, "invalid date")
			return
		}

		in.Date = d
	}

	tx, err := s.AddTransaction(r.Context(), in)
	if err != nil {
		writeSaveError(w, err, s.Language())
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(tx, s.Language()))
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

	if err := s.DeleteTransaction(r.Context(), id); err != nil {
		if errors.Is(err, transaction.ErrNotFound) {
			respond.Error(w, http.StatusNotFound, "transaction not found")
			return
		}

		writeSaveError(w, err, s.Language())

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type importResponse struct {
	Imported     int                   `json:"imported"`
	Transactions []transactionResponse `json:"transactions"`
}

func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	s, ok := respond.Session(w, r, h.sessions)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		respond.Error(w, http.StatusBadRequest, "failed to parse form")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "missing file")
		return
	}
	defer file.Close()

	rows, err := h.importer.Import(r.Context(), s.UserID(), file)
	if err != nil {
		if errors.Is(err, importer.ErrNoHeader) {
			respond.Error(w, http.StatusBadRequest, err.Error())
			return
		}

		slog.Error("importing csv", "user_id", s.UserID(), "error", err)
		respond.Error(w, http.StatusUnprocessableEntity, err.Error())

		return
	}

	ins := make([]session.TransactionInput, len(rows))
	for i, row := range rows {
		ins[i] = session.TransactionInput{
			Date:        row.Date,
			Description: row.Description,
			Amount:      row.Amount,
			Category:    row.Category,
		}
	}

	txs, err := s.ImportTransactions(r.Context(), ins)
	if err != nil {
		writeSaveError(w, err, s.Language())
		return
	}

	respond.JSON(w, http.StatusCreated, importResponse{
		Imported:     len(txs),
		Transactions: toResponseList(txs, s.Language()),
	})
}

// writeSaveError answers 400 for rejected input and a localized 500 otherwise.
func writeSaveError(w http.ResponseWriter, err error, lang i18n.Language) {
	if errors.Is(err, transaction.ErrInvalidCategory) || errors.Is(err, transaction.ErrInvalidDescription) {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	slog.Error("saving transactions", "error", err)
	respond.Error(w, http.StatusInternalServerError, i18n.T(lang, i18n.KeySaveFailed))
}
