package session_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/finassist/internal/assistant"
	"github.com/MrJamesThe3rd/finassist/internal/chat"
	"github.com/MrJamesThe3rd/finassist/internal/goal"
	"github.com/MrJamesThe3rd/finassist/internal/i18n"
	"github.com/MrJamesThe3rd/finassist/internal/investment"
	"github.com/MrJamesThe3rd/finassist/internal/llm"
	"github.com/MrJamesThe3rd/finassist/internal/metrics"
	"github.com/MrJamesThe3rd/finassist/internal/news"
	"github.com/MrJamesThe3rd/finassist/internal/profile"
	"github.com/MrJamesThe3rd/finassist/internal/session"
	"github.com/MrJamesThe3rd/finassist/internal/transaction"
)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *clock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = t
}

type harness struct {
	userID  uuid.UUID
	clock   *clock
	txs     *transaction.MockRepository
	invs    *investment.MockRepository
	goals   *goal.MockRepository
	chat    *chat.MockRepository
	profile *profile.MockRepository
	llm     *llm.MockClient
	deps    session.Deps
}

func newHarness(t *testing.T, bridgeOpts ...assistant.Option) *harness {
	t.Helper()

	ctrl := gomock.NewController(t)

	h := &harness{
		userID:  uuid.New(),
		clock:   &clock{now: time.Date(2026, 9, 20, 12, 0, 0, 0, time.UTC)},
		txs:     transaction.NewMockRepository(ctrl),
		invs:    investment.NewMockRepository(ctrl),
		goals:   goal.NewMockRepository(ctrl),
		chat:    chat.NewMockRepository(ctrl),
		profile: profile.NewMockRepository(ctrl),
		llm:     llm.NewMockClient(ctrl),
	}

	h.deps = session.Deps{
		Transactions: transaction.NewService(h.txs),
		Investments:  investment.NewService(h.invs),
		Goals:        goal.NewService(h.goals),
		Chat:         chat.NewService(h.chat),
		Profiles:     profile.NewService(h.profile),
		Bridge:       assistant.NewBridge(h.llm, bridgeOpts...),
		News:         h.llm,
	}

	return h
}

type stored struct {
	txs     []*transaction.Transaction
	invs    []*investment.Investment
	goals   []*goal.Goal
	history []*chat.Message
	lang    i18n.Language
}

func (h *harness) expectLoad(s stored) {
	lang := s.lang
	if lang == "" {
		lang = i18n.EN
	}

	h.profile.EXPECT().GetProfile(gomock.Any(), h.userID).Return(&profile.Profile{UserID: h.userID, Language: lang}, nil)
	h.txs.EXPECT().ListTransactions(gomock.Any(), h.userID, transaction.ListFilter{}).Return(s.txs, nil)
	h.invs.EXPECT().ListInvestments(gomock.Any(), h.userID).Return(s.invs, nil)
	h.goals.EXPECT().ListGoals(gomock.Any(), h.userID).Return(s.goals, nil)
	h.chat.EXPECT().ListMessages(gomock.Any(), h.userID).Return(s.history, nil)
}

func (h *harness) expectSavedMessages(n int) {
	h.chat.EXPECT().
		CreateMessage(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, m *chat.Message) error {
			m.ID = uuid.NewString()
			m.CreatedAt = h.clock.Now()
			return nil
		}).
		Times(n)
}

func (h *harness) open(t *testing.T, opts ...session.Option) *session.Session {
	t.Helper()

	opts = append([]session.Option{session.WithClock(h.clock.Now)}, opts...)
	s := session.New(h.userID, h.deps, opts...)
	t.Cleanup(s.Close)

	require.NoError(t, s.Load(context.Background()))

	return s
}

func TestSession_Load(t *testing.T) {
	h := newHarness(t)

	older := &transaction.Transaction{ID: uuid.New(), Date: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), Amount: decimal.NewFromInt(-10)}
	newer := &transaction.Transaction{ID: uuid.New(), Date: time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC), Amount: decimal.NewFromInt(-20)}

	h.expectLoad(stored{txs: []*transaction.Transaction{older, newer}, lang: i18n.JA})

	snap := h.open(t).Snapshot()

	assert.Equal(t, i18n.JA, snap.Language)
	require.Len(t, snap.Transactions, 2)
	assert.Same(t, newer, snap.Transactions[0])

	require.Len(t, snap.Messages, 1)
	assert.True(t, snap.Messages[0].IsGreeting())
	assert.Equal(t, i18n.T(i18n.JA, i18n.KeyGreeting), snap.Messages[0].Text)
	assert.Empty(t, snap.News)
}

func TestSession_Load_KeepsStoredHistoryWithoutGreeting(t *testing.T) {
	h := newHarness(t)
	h.expectLoad(stored{history: []*chat.Message{
		{ID: uuid.NewString(), Role: chat.RoleUser, Text: "hi"},
		{ID: uuid.NewString(), Role: chat.RoleModel, Text: "hello"},
	}})

	snap := h.open(t).Snapshot()
	require.Len(t, snap.Messages, 2)
	assert.Equal(t, "hi", snap.Messages[0].Text)
}

func TestSession_Load_Error(t *testing.T) {
	h := newHarness(t)

	h.profile.EXPECT().GetProfile(gomock.Any(), gomock.Any()).Return(nil, profile.ErrNotFound).AnyTimes()
	h.txs.EXPECT().ListTransactions(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))
	h.invs.EXPECT().ListInvestments(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	h.goals.EXPECT().ListGoals(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	h.chat.EXPECT().ListMessages(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()

	s := session.New(h.userID, h.deps)
	defer s.Close()

	err := s.Load(context.Background())
	assert.ErrorContains(t, err, "loading transactions")
}

func TestSession_SendMessage_ToolCall(t *testing.T) {
	h := newHarness(t)
	h.expectLoad(stored{})
	s := h.open(t)

	h.expectSavedMessages(2)
	h.llm.EXPECT().
		Generate(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req llm.Request) (llm.Reply, error) {
			assert.Equal(t, "I spent 75 on lunch", req.Prompt)
			assert.Empty(t, req.History, "greeting is not sent")

			return llm.Reply{Call: &llm.FunctionCall{
				Name: llm.ToolAddTransaction,
				Args: []byte(`{"description":"Lunch","amount":-75,"category":"Food"}`),
			}}, nil
		})
	h.txs.EXPECT().
		CreateTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tx *transaction.Transaction) error {
			assert.Equal(t, transaction.CategoryFood, tx.Category)
			tx.ID = uuid.New()
			return nil
		})

	reply, err := s.SendMessage(context.Background(), "I spent 75 on lunch")
	require.NoError(t, err)
	assert.Equal(t, `Got it. I've added the expense: "Lunch" for R$75.00.`, reply.Text)

	snap := s.Snapshot()
	require.Len(t, snap.Transactions, 1)
	require.Len(t, snap.Messages, 3)
	assert.Equal(t, chat.RoleUser, snap.Messages[1].Role)
	assert.Equal(t, reply.Text, snap.Messages[2].Text)
	assert.False(t, snap.Thinking)

	dash := s.Dashboard(metrics.Filter{})
	assert.Equal(t, "-75", dash.NetWorth.String())
	require.Len(t, dash.Spending, 1)
	assert.Equal(t, transaction.CategoryFood, dash.Spending[0].Category)
	assert.Equal(t, "100.00", dash.Spending[0].Percentage.StringFixed(2))
	assert.Len(t, dash.Annual, 12)
}

func TestSession_SendMessage_Timeout(t *testing.T) {
	h := newHarness(t, assistant.WithTimeout(20*time.Millisecond))
	h.expectLoad(stored{lang: i18n.PT})
	s := h.open(t)

	h.expectSavedMessages(2)
	h.llm.EXPECT().
		Generate(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ llm.Request) (llm.Reply, error) {
			<-ctx.Done()
			return llm.Reply{}, ctx.Err()
		}).
		Times(1)

	reply, err := s.SendMessage(context.Background(), "olá")
	require.NoError(t, err)
	assert.Equal(t, i18n.T(i18n.PT, i18n.KeyThinkingError), reply.Text)

	msgs := s.Snapshot().Messages
	require.Len(t, msgs, 3)

	var thinkingErrors int
	for _, m := range msgs {
		if m.Text == i18n.T(i18n.PT, i18n.KeyThinkingError) {
			thinkingErrors++
		}
	}

	assert.Equal(t, 1, thinkingErrors)
}

func TestSession_SendMessage_PromptNotSaved(t *testing.T) {
	h := newHarness(t)
	h.expectLoad(stored{})
	s := h.open(t)

	h.chat.EXPECT().CreateMessage(gomock.Any(), gomock.Any()).Return(errors.New("db down"))

	_, err := s.SendMessage(context.Background(), "hello")
	assert.Error(t, err)
	assert.Len(t, s.Snapshot().Messages, 1)

	_, err = s.SendMessage(context.Background(), "   ")
	assert.ErrorIs(t, err, session.ErrEmptyPrompt)
}

func TestSession_AddTransaction_FailedWriteLeavesStateUntouched(t *testing.T) {
	h := newHarness(t)
	h.expectLoad(stored{})
	s := h.open(t)

	h.txs.EXPECT().CreateTransaction(gomock.Any(), gomock.Any()).Return(errors.New("db down"))

	_, err := s.AddTransaction(context.Background(), session.TransactionInput{
		Description: "Rent",
		Amount:      decimal.NewFromInt(-1500),
		Category:    transaction.CategoryHousing,
	})
	assert.Error(t, err)
	assert.Empty(t, s.Snapshot().Transactions)
}

func TestSession_DeleteTransaction(t *testing.T) {
	h := newHarness(t)

	keep := &transaction.Transaction{ID: uuid.New()}
	gone := &transaction.Transaction{ID: uuid.New()}
	h.expectLoad(stored{txs: []*transaction.Transaction{keep, gone}})
	s := h.open(t)

	before := s.Snapshot()

	h.txs.EXPECT().DeleteTransaction(gomock.Any(), h.userID, gone.ID).Return(nil)
	require.NoError(t, s.DeleteTransaction(context.Background(), gone.ID))

	after := s.Snapshot().Transactions
	require.Len(t, after, 1)
	assert.Equal(t, keep.ID, after[0].ID)
	assert.Len(t, before.Transactions, 2, "earlier snapshots are not modified")
}

func TestSession_SetLanguage(t *testing.T) {
	h := newHarness(t)
	h.expectLoad(stored{lang: i18n.PT})
	s := h.open(t)

	h.profile.EXPECT().UpsertLanguage(gomock.Any(), h.userID, i18n.ES).Return(nil)
	require.NoError(t, s.SetLanguage(context.Background(), i18n.ES))

	snap := s.Snapshot()
	assert.Equal(t, i18n.ES, snap.Language)
	assert.Equal(t, i18n.T(i18n.ES, i18n.KeyGreeting), snap.Messages[0].Text)

	h.profile.EXPECT().UpsertLanguage(gomock.Any(), h.userID, i18n.JA).Return(errors.New("db down"))
	assert.Error(t, s.SetLanguage(context.Background(), i18n.JA))
	assert.Equal(t, i18n.ES, s.Language())
}

func TestSession_Goals(t *testing.T) {
	h := newHarness(t)
	h.expectLoad(stored{})
	s := h.open(t)

	id := uuid.New()
	h.goals.EXPECT().
		CreateGoal(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, g *goal.Goal) error {
			g.ID = id
			return nil
		})

	_, err := s.AddGoal(context.Background(), transaction.CategoryFood, decimal.NewFromInt(300))
	require.NoError(t, err)

	_, err = s.AddGoal(context.Background(), transaction.CategoryIncome, decimal.NewFromInt(300))
	assert.ErrorIs(t, err, goal.ErrInvalidCategory)

	dash := s.Dashboard(metrics.Filter{})
	require.Len(t, dash.Goals, 1)
	assert.True(t, dash.Goals[0].Spent.IsZero())

	h.goals.EXPECT().DeleteGoal(gomock.Any(), h.userID, id).Return(nil)
	require.NoError(t, s.RemoveGoal(context.Background(), id))
	assert.Empty(t, s.Snapshot().Goals)
}

func TestSession_InvestmentsDebounceNews(t *testing.T) {
	h := newHarness(t)
	h.expectLoad(stored{})
	s := h.open(t)

	h.invs.EXPECT().CreateInvestment(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	h.llm.EXPECT().
		MarketNews(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req llm.NewsRequest) ([]llm.NewsItem, error) {
			if assert.Len(t, req.Investments, 2) {
				assert.Equal(t, "VALE3", req.Investments[1].Name)
			}

			return []llm.NewsItem{{Headline: "Mining stocks up", Summary: "s", Source: "wire"}}, nil
		}).
		Times(1)

	_, err := s.AddInvestment(context.Background(), session.InvestmentInput{Name: "PETR4", Type: investment.TypeStocks, Value: decimal.NewFromInt(100)})
	require.NoError(t, err)

	time.Sleep(100 * time.Millisecond)

	_, err = s.AddInvestment(context.Background(), session.InvestmentInput{Name: "VALE3", Type: investment.TypeStocks, Value: decimal.NewFromInt(200)})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		items, _ := s.News()
		return len(items) == 1
	}, 3*time.Second, 20*time.Millisecond)

	items, fetching := s.News()
	assert.False(t, fetching)
	assert.Regexp(t, `^news-\d+-0$`, items[0].ID)

	time.Sleep(news.DefaultDelay)
}

func TestSession_Achievements(t *testing.T) {
	h := newHarness(t)

	food := &goal.Goal{
		ID:        uuid.New(),
		Category:  transaction.CategoryFood,
		Amount:    decimal.NewFromInt(300),
		CreatedAt: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
	}
	h.expectLoad(stored{goals: []*goal.Goal{food}})
	s := h.open(t)

	assert.Empty(t, s.Achievements())

	rollover := time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC)
	h.clock.Set(rollover)

	notices := s.Achievements()
	require.Len(t, notices, 1)
	assert.Equal(t, food.ID, notices[0].GoalID)
	assert.False(t, notices[0].Exiting)

	assert.True(t, s.DismissAchievement(notices[0].ID))

	h.clock.Set(rollover.Add(goal.ExitGrace))
	assert.Empty(t, s.Achievements())
}

func TestRegistry_Get(t *testing.T) {
	h := newHarness(t)
	h.expectLoad(stored{})

	reg := session.NewRegistry(h.deps, session.WithClock(h.clock.Now))
	defer reg.Close()

	first, err := reg.Get(context.Background(), h.userID)
	require.NoError(t, err)

	second, err := reg.Get(context.Background(), h.userID)
	require.NoError(t, err)
	assert.Same(t, first, second)
}
