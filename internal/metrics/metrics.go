// Package metrics derives dashboard figures from a user's records. Every
// function is pure: the same input always yields the same output.
package metrics

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finassist/internal/i18n"
	"github.com/MrJamesThe3rd/finassist/internal/investment"
	"github.com/MrJamesThe3rd/finassist/internal/transaction"
)

var hundred = decimal.NewFromInt(100)

// NetWorth is the sum of every transaction amount plus every investment value.
func NetWorth(txs []*transaction.Transaction, invs []*investment.Investment) decimal.Decimal {
	total := decimal.Zero

	for _, tx := range txs {
		total = total.Add(tx.Amount)
	}

	for _, inv := range invs {
		total = total.Add(inv.Value)
	}

	return total
}

type Spending struct {
	Category   transaction.Category
	Total      decimal.Decimal
	Percentage decimal.Decimal
}

// SpendingAnalysis groups expenses by category. Unknown categories count as
// Other. Entries are ordered by total descending, ties by category order.
func SpendingAnalysis(txs []*transaction.Transaction) []Spending {
	totals := make(map[transaction.Category]decimal.Decimal)
	grand := decimal.Zero

	for _, tx := range txs {
		if !tx.IsExpense() {
			continue
		}

		cat := tx.Category
		if !cat.Valid() {
			cat = transaction.CategoryOther
		}

		abs := tx.Amount.Abs()
		totals[cat] = totals[cat].Add(abs)
		grand = grand.Add(abs)
	}

	if grand.IsZero() {
		return []Spending{}
	}

	out := make([]Spending, 0, len(totals))

	for cat, total := range totals {
		out = append(out, Spending{
			Category:   cat,
			Total:      total,
			Percentage: total.Div(grand).Mul(hundred).Round(2),
		})
	}

	slices.SortFunc(out, func(a, b Spending) int {
		if c := b.Total.Cmp(a.Total); c != 0 {
			return c
		}

		return a.Category.Order() - b.Category.Order()
	})

	return out
}

type MonthTotals struct {
	Year    int
	Month   time.Month
	Label   string
	Income  decimal.Decimal
	Expense decimal.Decimal
}

const overviewMonths = 12

// AnnualOverview returns twelve monthly buckets ending at now's month, oldest
// first. Buckets are addressed by year and month so the label never decides
// where a transaction lands.
func AnnualOverview(txs []*transaction.Transaction, lang i18n.Language, now time.Time) []MonthTotals {
	start := time.Date(now.Year(), now.Month()-(overviewMonths-1), 1, 0, 0, 0, 0, time.UTC)

	out := make([]MonthTotals, overviewMonths)
	for i := range out {
		m := start.AddDate(0, i, 0)
		out[i] = MonthTotals{
			Year:    m.Year(),
			Month:   m.Month(),
			Label:   i18n.MonthLabel(m.Year(), m.Month(), lang),
			Income:  decimal.Zero,
			Expense: decimal.Zero,
		}
	}

	for _, tx := range txs {
		idx := monthIndex(start, tx.Date)
		if idx < 0 || idx >= overviewMonths {
			continue
		}

		switch {
		case tx.Amount.IsPositive():
			out[idx].Income = out[idx].Income.Add(tx.Amount)
		case tx.Amount.IsNegative():
			out[idx].Expense = out[idx].Expense.Add(tx.Amount.Abs())
		}
	}

	return out
}

func monthIndex(start, date time.Time) int {
	return (date.Year()-start.Year())*12 + int(date.Month()-start.Month())
}

type TypeFilter string

const (
	TypeAll     TypeFilter = "all"
	TypeIncome  TypeFilter = "income"
	TypeExpense TypeFilter = "expense"
)

// Filter selects the transactions shown in the dashboard list. A zero Filter
// matches everything.
type Filter struct {
	Category transaction.Category
	Type     TypeFilter
}

// FilterTransactions returns the matching transactions newest first. The input
// is not modified.
func FilterTransactions(txs []*transaction.Transaction, f Filter) []*transaction.Transaction {
	out := make([]*transaction.Transaction, 0, len(txs))

	for _, tx := range txs {
		if f.Category != "" && tx.Category != f.Category {
			continue
		}

		switch f.Type {
		case TypeIncome:
			if !tx.IsIncome() {
				continue
			}
		case TypeExpense:
			if !tx.IsExpense() {
				continue
			}
		}

		out = append(out, tx)
	}

	slices.SortStableFunc(out, func(a, b *transaction.Transaction) int {
		return b.Date.Compare(a.Date)
	})

	return out
}
