package assistant_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/finassist/internal/assistant"
	"github.com/MrJamesThe3rd/finassist/internal/chat"
	"github.com/MrJamesThe3rd/finassist/internal/i18n"
	"github.com/MrJamesThe3rd/finassist/internal/investment"
	"github.com/MrJamesThe3rd/finassist/internal/llm"
	"github.com/MrJamesThe3rd/finassist/internal/transaction"
)

func call(name, args string) llm.Reply {
	return llm.Reply{Call: &llm.FunctionCall{Name: name, Args: json.RawMessage(args)}}
}

func TestBridge_Reply(t *testing.T) {
	type testCase struct {
		name        string
		reply       llm.Reply
		replyErr    error
		setupMutate func(m *assistant.MockMutator)
		want        string
	}

	tests := []testCase{
		{
			name:  "Text",
			reply: llm.Reply{Text: "Compound interest is interest on interest."},
			want:  "Compound interest is interest on interest.",
		},
		{
			name:  "AddTransaction",
			reply: call(llm.ToolAddTransaction, `{"description":"Lunch","amount":-75,"category":"Food"}`),
			setupMutate: func(m *assistant.MockMutator) {
				m.EXPECT().
					AddTransaction(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, op assistant.AddTransaction) (*transaction.Transaction, error) {
						assert.Equal(t, "Lunch", op.Description)
						assert.True(t, op.Amount.Equal(decimal.NewFromInt(-75)))
						assert.Equal(t, "Food", op.Category)

						return &transaction.Transaction{
							ID:          uuid.New(),
							Description: op.Description,
							Amount:      op.Amount,
							Category:    transaction.CategoryFood,
						}, nil
					})
			},
			want: `Got it. I've added the expense: "Lunch" for R$75.00.`,
		},
		{
			name:  "AddInvestment",
			reply: call(llm.ToolAddInvestment, `{"name":"PETR4","type":"Stocks","value":3200.5,"quantity":100}`),
			setupMutate: func(m *assistant.MockMutator) {
				m.EXPECT().
					AddInvestment(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, op assistant.AddInvestment) (*investment.Investment, error) {
						return &investment.Investment{Name: op.Name, Type: investment.TypeStocks, Value: op.Value, Quantity: op.Quantity}, nil
					})
			},
			want: "Okay, I've logged the investment in PETR4 with a value of R$3,200.50.",
		},
		{
			name:  "UnsupportedOperation",
			reply: call("deleteAllTransactions", `{}`),
			want:  i18n.T(i18n.EN, i18n.KeyErrorMessage),
		},
		{
			name:  "MalformedArgs",
			reply: call(llm.ToolAddTransaction, `{"description":"Lunch","amount":-75}`),
			want:  i18n.T(i18n.EN, i18n.KeyErrorMessage),
		},
		{
			name:  "MutatorFailureIsNotConfirmed",
			reply: call(llm.ToolAddTransaction, `{"description":"Lunch","amount":-75,"category":"Snacks"}`),
			setupMutate: func(m *assistant.MockMutator) {
				m.EXPECT().
					AddTransaction(gomock.Any(), gomock.Any()).
					Return(nil, transaction.ErrInvalidCategory)
			},
			want: i18n.T(i18n.EN, i18n.KeySaveFailed),
		},
		{
			name:     "NetworkError",
			replyErr: errors.New("connection refused"),
			want:     i18n.T(i18n.EN, i18n.KeyThinkingError),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			client := llm.NewMockClient(ctrl)
			client.EXPECT().Generate(gomock.Any(), gomock.Any()).Return(tt.reply, tt.replyErr).Times(1)

			mutator := assistant.NewMockMutator(ctrl)
			if tt.setupMutate != nil {
				tt.setupMutate(mutator)
			}

			got := assistant.NewBridge(client).Reply(context.Background(), assistant.Conversation{
				Prompt:   "hello",
				Language: i18n.EN,
			}, mutator)

			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBridge_Reply_TimeoutIsNotRetried(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := llm.NewMockClient(ctrl)
	client.EXPECT().
		Generate(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ llm.Request) (llm.Reply, error) {
			<-ctx.Done()
			return llm.Reply{}, ctx.Err()
		}).
		Times(1)

	bridge := assistant.NewBridge(client, assistant.WithTimeout(20*time.Millisecond))

	start := time.Now()
	got := bridge.Reply(context.Background(), assistant.Conversation{Prompt: "hi", Language: i18n.PT}, assistant.NewMockMutator(ctrl))

	assert.Equal(t, i18n.T(i18n.PT, i18n.KeyThinkingError), got)
	assert.Less(t, time.Since(start), time.Second)
}

func TestBridge_Reply_Request(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	txs := make([]*transaction.Transaction, 0, 60)
	for i := range 60 {
		txs = append(txs, &transaction.Transaction{Description: string(rune('A' + i%26)), Amount: decimal.NewFromInt(int64(-i))})
	}

	history := []chat.Message{
		chat.Greeting(i18n.ES),
		{ID: "1", Role: chat.RoleUser, Text: "first"},
		{ID: "2", Role: chat.RoleModel, Text: "answer"},
		{ID: "3", Role: chat.RoleUser, Text: "unanswered"},
	}

	client := llm.NewMockClient(ctrl)
	client.EXPECT().
		Generate(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req llm.Request) (llm.Reply, error) {
			assert.Len(t, req.Transactions, 10)
			assert.Equal(t, "A", req.Transactions[0].Description)
			assert.Equal(t, "unanswered\n\nnew question", req.Prompt)
			assert.Equal(t, []chat.Turn{
				{Role: chat.RoleUser, Text: "first"},
				{Role: chat.RoleModel, Text: "answer"},
			}, req.History)
			assert.Equal(t, i18n.ES, req.Language)
			assert.Len(t, req.Investments, 1)

			return llm.Reply{Text: "ok"}, nil
		})

	bridge := assistant.NewBridge(client, assistant.WithContextLimit(10))
	got := bridge.Reply(context.Background(), assistant.Conversation{
		Prompt:       "new question",
		History:      history,
		Transactions: txs,
		Investments:  []*investment.Investment{{Name: "BTC", Type: investment.TypeCrypto}},
		Language:     i18n.ES,
	}, assistant.NewMockMutator(ctrl))

	assert.Equal(t, "ok", got)
}

func TestDecodeToolCall(t *testing.T) {
	type testCase struct {
		name      string
		call      llm.FunctionCall
		want      assistant.Operation
		wantErrIs error
	}

	tests := []testCase{
		{
			name: "AddInvestment",
			call: llm.FunctionCall{Name: llm.ToolAddInvestment, Args: json.RawMessage(`{"name":"BTC","type":"Crypto","value":"1000","quantity":0.5}`)},
			want: assistant.AddInvestment{
				Name:     "BTC",
				Type:     "Crypto",
				Value:    decimal.RequireFromString("1000"),
				Quantity: decimal.RequireFromString("0.5"),
			},
		},
		{
			name:      "Unknown",
			call:      llm.FunctionCall{Name: "transfer", Args: json.RawMessage(`{}`)},
			wantErrIs: assistant.ErrUnsupportedOperation,
		},
		{
			name:      "WrongType",
			call:      llm.FunctionCall{Name: llm.ToolAddTransaction, Args: json.RawMessage(`{"description":5,"amount":-1,"category":"Food"}`)},
			wantErrIs: assistant.ErrMalformedToolCall,
		},
		{
			name:      "NotJSON",
			call:      llm.FunctionCall{Name: llm.ToolAddInvestment, Args: json.RawMessage(`nope`)},
			wantErrIs: assistant.ErrMalformedToolCall,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := assistant.DecodeToolCall(tt.call)
			if tt.wantErrIs != nil {
				assert.ErrorIs(t, err, tt.wantErrIs)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTransactionConfirmation(t *testing.T) {
	tx := &transaction.Transaction{Description: "Salário", Amount: decimal.NewFromInt(5000), Category: transaction.CategoryIncome}

	assert.Equal(t, `Got it. I've added the income: "Salário" for R$5,000.00.`, assistant.TransactionConfirmation(tx, i18n.EN))
	assert.Contains(t, assistant.TransactionConfirmation(tx, i18n.PT), "receita")
}
