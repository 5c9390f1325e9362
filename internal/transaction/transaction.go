package transaction

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound           = errors.New("transaction not found")
	ErrInvalidCategory    = errors.New("invalid category")
	ErrInvalidDescription = errors.New("description is required")
)

// Category is the closed classification applied to transactions and goals.
type Category string

const (
	CategoryIncome        Category = "Income"
	CategoryHousing       Category = "Housing"
	CategoryFood          Category = "Food"
	CategoryTransport     Category = "Transport"
	CategoryEntertainment Category = "Entertainment"
	CategoryHealth        Category = "Health"
	CategoryOther         Category = "Other"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryIncome,
	CategoryHousing,
	CategoryFood,
	CategoryTransport,
	CategoryEntertainment,
	CategoryHealth,
	CategoryOther,
}

// ParseCategory accepts a category name in any letter case.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	for _, c := range Categories {
		if strings.EqualFold(string(c), s) {
			return c, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrInvalidCategory, s)
}

func (c Category) Valid() bool {
	return c.Order() < len(Categories)
}

// Order is the position of c in Categories, or len(Categories) when c is unknown.
func (c Category) Order() int {
	for i, known := range Categories {
		if c == known {
			return i
		}
	}

	return len(Categories)
}

// Transaction is a single income (positive amount) or expense (negative amount).
type Transaction struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	Category    Category
	CreatedAt   time.Time
}

func (t *Transaction) IsExpense() bool {
	return t.Amount.IsNegative()
}

func (t *Transaction) IsIncome() bool {
	return t.Amount.IsPositive()
}
