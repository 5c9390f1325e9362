package goal

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finassist/internal/transaction"
)

var (
	ErrNotFound        = errors.New("goal not found")
	ErrInvalidCategory = errors.New("invalid goal category")
	ErrInvalidAmount   = errors.New("goal amount must be positive")
)

// Goal is a monthly spending ceiling for one expense category.
type Goal struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Category  transaction.Category
	Amount    decimal.Decimal
	CreatedAt time.Time
}

// Categories lists the categories a goal may budget; income cannot be budgeted.
func Categories() []transaction.Category {
	out := make([]transaction.Category, 0, len(transaction.Categories)-1)

	for _, c := range transaction.Categories {
		if c != transaction.CategoryIncome {
			out = append(out, c)
		}
	}

	return out
}
