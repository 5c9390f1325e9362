package transaction

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finassist/internal/i18n"
	"github.com/MrJamesThe3rd/finassist/internal/transaction"
)

type transactionResponse struct {
	ID          uuid.UUID            `json:"id"`
	Date        string               `json:"date"`
	Description string               `json:"description"`
	Amount      decimal.Decimal      `json:"amount"`
	Display     string               `json:"display"`
	Category    transaction.Category `json:"category"`
	CreatedAt   time.Time            `json:"created_at"`
}

func toResponse(tx *transaction.Transaction, lang i18n.Language) transactionResponse {
	return transactionResponse{
		ID:          tx.ID,
		Date:        tx.Date.Format(time.DateOnly),
		Description: tx.Description,
		Amount:      tx.Amount,
		Display:     i18n.FormatCurrency(tx.Amount, lang),
		Category:    tx.Category,
		CreatedAt:   tx.CreatedAt,
	}
}

func toResponseList(txs []*transaction.Transaction, lang i18n.Language) []transactionResponse {
	resp := make([]transactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = toResponse(tx, lang)
	}

	return resp
}
