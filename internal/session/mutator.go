package session

import (
	"context"

	"github.com/MrJamesThe3rd/finassist/internal/assistant"
	"github.com/MrJamesThe3rd/finassist/internal/investment"
	"github.com/MrJamesThe3rd/finassist/internal/transaction"
)

// mutator applies assistant tool calls to the session. Category and type
// strings from the model are validated here.
type mutator struct {
	s *Session
}

var _ assistant.Mutator = mutator{}

func (m mutator) AddTransaction(ctx context.Context, op assistant.AddTransaction) (*transaction.Transaction, error) {
	category, err := transaction.ParseCategory(op.Category)
	if err != nil {
		return nil, err
	}

	return m.s.AddTransaction(ctx, TransactionInput{
		Date:        m.s.now(),
		Description: op.Description,
		Amount:      op.Amount,
		Category:    category,
	})
}

func (m mutator) AddInvestment(ctx context.Context, op assistant.AddInvestment) (*investment.Investment, error) {
	typ, err := investment.ParseType(op.Type)
	if err != nil {
		return nil, err
	}

	return m.s.AddInvestment(ctx, InvestmentInput{
		Name:     op.Name,
		Type:     typ,
		Value:    op.Value,
		Quantity: op.Quantity,
	})
}
