// Package assistant turns a chat prompt into a model reply, carrying out any
// mutation the model asks for before answering.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/MrJamesThe3rd/finassist/internal/chat"
	"github.com/MrJamesThe3rd/finassist/internal/i18n"
	"github.com/MrJamesThe3rd/finassist/internal/investment"
	"github.com/MrJamesThe3rd/finassist/internal/llm"
	"github.com/MrJamesThe3rd/finassist/internal/transaction"
)

const (
	DefaultTimeout      = 15 * time.Second
	DefaultContextLimit = 50
)

const (
	outcomeText        = "text"
	outcomeToolCall    = "tool_call"
	outcomeUnsupported = "unsupported"
	outcomeSaveFailed  = "save_failed"
	outcomeTimeout     = "timeout"
	outcomeError       = "error"
)

var replies = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "finassist",
	Subsystem: "assistant",
	Name:      "replies_total",
	Help:      "Assistant replies by outcome.",
}, []string{"outcome"})

// Mutator persists what a tool call asks for and reports the stored record.
//
//go:generate mockgen -source=bridge.go -destination=mutator_mock.go -package=assistant
type Mutator interface {
	AddTransaction(ctx context.Context, op AddTransaction) (*transaction.Transaction, error)
	AddInvestment(ctx context.Context, op AddInvestment) (*investment.Investment, error)
}

// Conversation is the input of one reply. Transactions are expected newest
// first; only the most recent ones are sent upstream.
type Conversation struct {
	Prompt       string
	History      []chat.Message
	Transactions []*transaction.Transaction
	Investments  []*investment.Investment
	Language     i18n.Language
}

type Bridge struct {
	client       llm.Client
	timeout      time.Duration
	contextLimit int
}

type Option func(*Bridge)

func WithTimeout(d time.Duration) Option {
	return func(b *Bridge) { b.timeout = d }
}

func WithContextLimit(n int) Option {
	return func(b *Bridge) { b.contextLimit = n }
}

func NewBridge(client llm.Client, opts ...Option) *Bridge {
	b := &Bridge{
		client:       client,
		timeout:      DefaultTimeout,
		contextLimit: DefaultContextLimit,
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Reply always returns text fit for the chat: the model's answer, a
// confirmation of a completed mutation, or a localized failure message.
// Failed calls are never retried.
func (b *Bridge) Reply(ctx context.Context, conv Conversation, m Mutator) string {
	turns, prompt := chat.Sanitize(conv.History, conv.Prompt)

	txs := conv.Transactions
	if len(txs) > b.contextLimit {
		txs = txs[:b.contextLimit]
	}

	callCtx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	reply, err := b.client.Generate(callCtx, llm.Request{
		Prompt:       prompt,
		History:      turns,
		Transactions: llm.FromTransactions(txs),
		Investments:  llm.FromInvestments(conv.Investments),
		Language:     conv.Language,
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			replies.WithLabelValues(outcomeTimeout).Inc()
			slog.Warn("assistant timed out", "timeout", b.timeout)
		} else {
			replies.WithLabelValues(outcomeError).Inc()
			slog.Error("assistant request failed", "error", err)
		}

		return i18n.T(conv.Language, i18n.KeyThinkingError)
	}

	if reply.Call == nil {
		replies.WithLabelValues(outcomeText).Inc()
		return reply.Text
	}

	op, err := DecodeToolCall(*reply.Call)
	if err != nil {
		replies.WithLabelValues(outcomeUnsupported).Inc()
		slog.Error("rejected tool call", "name", reply.Call.Name, "error", err)

		return i18n.T(conv.Language, i18n.KeyErrorMessage)
	}

	text, err := dispatch(ctx, m, op, conv.Language)
	if err != nil {
		replies.WithLabelValues(outcomeSaveFailed).Inc()
		slog.Error("tool call failed", "name", reply.Call.Name, "error", err)

		return i18n.T(conv.Language, i18n.KeySaveFailed)
	}

	replies.WithLabelValues(outcomeToolCall).Inc()

	return text
}

func dispatch(ctx context.Context, m Mutator, op Operation, lang i18n.Language) (string, error) {
	switch op := op.(type) {
	case AddTransaction:
		tx, err := m.AddTransaction(ctx, op)
		if err != nil {
			return "", err
		}

		return TransactionConfirmation(tx, lang), nil
	case AddInvestment:
		inv, err := m.AddInvestment(ctx, op)
		if err != nil {
			return "", err
		}

		return InvestmentConfirmation(inv, lang), nil
	}

	return "", fmt.Errorf("%w: %T", ErrUnsupportedOperation, op)
}

// TransactionConfirmation renders e.g. `Got it. I've added the expense: "Lunch" for R$75.00.`
func TransactionConfirmation(tx *transaction.Transaction, lang i18n.Language) string {
	kind := i18n.KeyIncome
	if tx.IsExpense() {
		kind = i18n.KeyExpense
	}

	return fmt.Sprintf("%s %s: \"%s\" %s %s.",
		i18n.T(lang, i18n.KeyTransactionAdded1),
		i18n.T(lang, kind),
		tx.Description,
		i18n.T(lang, i18n.KeyTransactionAdded2),
		i18n.FormatCurrency(tx.Amount.Abs(), lang),
	)
}

func InvestmentConfirmation(inv *investment.Investment, lang i18n.Language) string {
	return fmt.Sprintf("%s %s %s %s.",
		i18n.T(lang, i18n.KeyInvestmentAdded1),
		inv.Name,
		i18n.T(lang, i18n.KeyInvestmentAdded2),
		i18n.FormatCurrency(inv.Value, lang),
	)
}
