package view

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finassist/internal/i18n"
	"github.com/MrJamesThe3rd/finassist/internal/transaction"
)

const dbTimeout = 5 * time.Second

// DbCtx returns a context with a standard timeout for database operations.
func DbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), dbTimeout)
}

// FormatAmount colours a signed amount by direction.
func FormatAmount(amount decimal.Decimal, lang i18n.Language) string {
	s := i18n.FormatCurrency(amount, lang)
	if amount.IsNegative() {
		return expenseStyle.Render(s)
	}

	return incomeStyle.Render(s)
}

// Bar renders percent (0-100) as a fixed-width bar of block characters.
func Bar(percent decimal.Decimal, width int) string {
	if width <= 0 {
		return ""
	}

	p := percent
	if p.IsNegative() {
		p = decimal.Zero
	}

	if p.GreaterThan(decimal.NewFromInt(100)) {
		p = decimal.NewFromInt(100)
	}

	filled := int(p.Mul(decimal.NewFromInt(int64(width))).Div(decimal.NewFromInt(100)).Round(0).IntPart())

	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

func directionLabel(tx *transaction.Transaction, lang i18n.Language) string {
	if tx.IsExpense() {
		return i18n.T(lang, i18n.KeyExpense)
	}

	return i18n.T(lang, i18n.KeyIncome)
}
