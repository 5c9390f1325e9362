package goal

import (
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finassist/internal/transaction"
)

var hundred = decimal.NewFromInt(100)

// Progress is the spend-to-date of one goal.
type Progress struct {
	Goal       *Goal
	Spent      decimal.Decimal
	Percent    decimal.Decimal
	OverBudget bool
}

// ComputeProgress sums every expense in each goal's category. Percent is
// clamped to exactly 100 once spending reaches the goal amount.
func ComputeProgress(goals []*Goal, txs []*transaction.Transaction) []Progress {
	out := make([]Progress, 0, len(goals))

	for _, g := range goals {
		spent := decimal.Zero

		for _, tx := range txs {
			if tx.Category == g.Category && tx.IsExpense() {
				spent = spent.Add(tx.Amount.Abs())
			}
		}

		out = append(out, Progress{
			Goal:       g,
			Spent:      spent,
			Percent:    percentOf(spent, g.Amount),
			OverBudget: spent.GreaterThan(g.Amount),
		})
	}

	return out
}

func percentOf(spent, amount decimal.Decimal) decimal.Decimal {
	if !amount.IsPositive() {
		if spent.IsPositive() {
			return hundred
		}

		return decimal.Zero
	}

	if spent.GreaterThanOrEqual(amount) {
		return hundred
	}

	return spent.Div(amount).Mul(hundred).Round(2)
}
