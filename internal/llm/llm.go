// Package llm describes the language-model backend the assistant talks to.
// Implementations live in the gemini and remote subpackages.
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finassist/internal/chat"
	"github.com/MrJamesThe3rd/finassist/internal/i18n"
	"github.com/MrJamesThe3rd/finassist/internal/investment"
	"github.com/MrJamesThe3rd/finassist/internal/transaction"
)

var (
	ErrEmptyResponse = errors.New("empty response from model")
	ErrNoInvestments = errors.New("no investments to search news for")
)

const (
	ToolAddTransaction = "addTransaction"
	ToolAddInvestment  = "addInvestment"
)

//go:generate mockgen -source=llm.go -destination=client_mock.go -package=llm
type Client interface {
	Generate(ctx context.Context, req Request) (Reply, error)
	MarketNews(ctx context.Context, req NewsRequest) ([]NewsItem, error)
}

type Transaction struct {
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
}

type Investment struct {
	Name     string          `json:"name"`
	Type     string          `json:"type"`
	Value    decimal.Decimal `json:"value"`
	Quantity decimal.Decimal `json:"quantity"`
}

type Request struct {
	Prompt       string
	History      []chat.Turn
	Transactions []Transaction
	Investments  []Investment
	Language     i18n.Language
}

// FunctionCall is a tool invocation chosen by the model. Args are left raw
// for the caller to decode against its own schema.
type FunctionCall struct {
	Name string          `json:"name"`
	Args json.RawMessage `json:"args"`
}

// Reply holds either Text or Call.
type Reply struct {
	Text string
	Call *FunctionCall
}

type NewsRequest struct {
	Investments []Investment
	Language    i18n.Language
}

type NewsItem struct {
	Headline string `json:"headline"`
	Summary  string `json:"summary"`
	Source   string `json:"source"`
}

func FromTransactions(txs []*transaction.Transaction) []Transaction {
	out := make([]Transaction, 0, len(txs))

	for _, tx := range txs {
		out = append(out, Transaction{
			Date:        tx.Date,
			Description: tx.Description,
			Amount:      tx.Amount,
			Category:    string(tx.Category),
		})
	}

	return out
}

func FromInvestments(invs []*investment.Investment) []Investment {
	out := make([]Investment, 0, len(invs))

	for _, inv := range invs {
		out = append(out, Investment{
			Name:     inv.Name,
			Type:     string(inv.Type),
			Value:    inv.Value,
			Quantity: inv.Quantity,
		})
	}

	return out
}
