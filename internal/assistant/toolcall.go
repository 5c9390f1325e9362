package assistant

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finassist/internal/llm"
)

var (
	ErrUnsupportedOperation = errors.New("unsupported operation")
	ErrMalformedToolCall    = errors.New("malformed tool call")
)

// Operation is one of the mutations the model may request: AddTransaction
// or AddInvestment.
type Operation interface {
	operation()
}

type AddTransaction struct {
	Description string
	Amount      decimal.Decimal
	Category    string
}

type AddInvestment struct {
	Name     string
	Type     string
	Value    decimal.Decimal
	Quantity decimal.Decimal
}

func (AddTransaction) operation() {}
func (AddInvestment) operation()  {}

type addTransactionArgs struct {
	Description *string          `json:"description"`
	Amount      *decimal.Decimal `json:"amount"`
	Category    *string          `json:"category"`
}

type addInvestmentArgs struct {
	Name     *string          `json:"name"`
	Type     *string          `json:"type"`
	Value    *decimal.Decimal `json:"value"`
	Quantity *decimal.Decimal `json:"quantity"`
}

// DecodeToolCall checks the shape of call. Values such as category names are
// passed through untouched; the mutator validates them.
func DecodeToolCall(call llm.FunctionCall) (Operation, error) {
	switch call.Name {
	case llm.ToolAddTransaction:
		var args addTransactionArgs
		if err := json.Unmarshal(call.Args, &args); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrMalformedToolCall, call.Name, err)
		}

		if args.Description == nil || args.Amount == nil || args.Category == nil {
			return nil, fmt.Errorf("%w: %s: missing argument", ErrMalformedToolCall, call.Name)
		}

		return AddTransaction{
			Description: *args.Description,
			Amount:      *args.Amount,
			Category:    *args.Category,
		}, nil
	case llm.ToolAddInvestment:
		var args addInvestmentArgs
		if err := json.Unmarshal(call.Args, &args); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrMalformedToolCall, call.Name, err)
		}

		if args.Name == nil || args.Type == nil || args.Value == nil || args.Quantity == nil {
			return nil, fmt.Errorf("%w: %s: missing argument", ErrMalformedToolCall, call.Name)
		}

		return AddInvestment{
			Name:     *args.Name,
			Type:     *args.Type,
			Value:    *args.Value,
			Quantity: *args.Quantity,
		}, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnsupportedOperation, call.Name)
}
