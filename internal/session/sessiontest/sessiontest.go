// Package sessiontest builds sessions over mocked repositories for handler
// and client tests.
package sessiontest

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/finassist/internal/assistant"
	"github.com/MrJamesThe3rd/finassist/internal/chat"
	"github.com/MrJamesThe3rd/finassist/internal/goal"
	"github.com/MrJamesThe3rd/finassist/internal/i18n"
	"github.com/MrJamesThe3rd/finassist/internal/investment"
	"github.com/MrJamesThe3rd/finassist/internal/llm"
	"github.com/MrJamesThe3rd/finassist/internal/news"
	"github.com/MrJamesThe3rd/finassist/internal/profile"
	"github.com/MrJamesThe3rd/finassist/internal/session"
	"github.com/MrJamesThe3rd/finassist/internal/transaction"
)

// Clock is a settable time source safe for concurrent use.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

func NewClock(t time.Time) *Clock {
	return &Clock{now: t}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *Clock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = t
}

type Harness struct {
	UserID       uuid.UUID
	Clock        *Clock
	Transactions *transaction.MockRepository
	Investments  *investment.MockRepository
	Goals        *goal.MockRepository
	Chat         *chat.MockRepository
	Profiles     *profile.MockRepository
	LLM          *llm.MockClient
	Deps         session.Deps
}

func New(t *testing.T) *Harness {
	t.Helper()

	ctrl := gomock.NewController(t)

	h := &Harness{
		UserID:       uuid.New(),
		Clock:        NewClock(time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)),
		Transactions: transaction.NewMockRepository(ctrl),
		Investments:  investment.NewMockRepository(ctrl),
		Goals:        goal.NewMockRepository(ctrl),
		Chat:         chat.NewMockRepository(ctrl),
		Profiles:     profile.NewMockRepository(ctrl),
		LLM:          llm.NewMockClient(ctrl),
	}

	h.Deps = session.Deps{
		Transactions: transaction.NewService(h.Transactions),
		Investments:  investment.NewService(h.Investments),
		Goals:        goal.NewService(h.Goals),
		Chat:         chat.NewService(h.Chat),
		Profiles:     profile.NewService(h.Profiles),
		Bridge:       assistant.NewBridge(h.LLM),
		News:         h.LLM,
	}

	return h
}

// Stored is what the repositories return when a session loads.
type Stored struct {
	Language     i18n.Language
	Transactions []*transaction.Transaction
	Investments  []*investment.Investment
	Goals        []*goal.Goal
	History      []*chat.Message
}

func (h *Harness) ExpectLoad(s Stored) {
	lang := s.Language
	if lang == "" {
		lang = i18n.EN
	}

	h.Profiles.EXPECT().GetProfile(gomock.Any(), h.UserID).Return(&profile.Profile{UserID: h.UserID, Language: lang}, nil)
	h.Transactions.EXPECT().ListTransactions(gomock.Any(), h.UserID, transaction.ListFilter{}).Return(s.Transactions, nil)
	h.Investments.EXPECT().ListInvestments(gomock.Any(), h.UserID).Return(s.Investments, nil)
	h.Goals.EXPECT().ListGoals(gomock.Any(), h.UserID).Return(s.Goals, nil)
	h.Chat.EXPECT().ListMessages(gomock.Any(), h.UserID).Return(s.History, nil)
}

// ExpectSavedMessages accepts n chat writes and stamps them like the store does.
func (h *Harness) ExpectSavedMessages(n int) {
	h.Chat.EXPECT().
		CreateMessage(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, m *chat.Message) error {
			m.ID = uuid.NewString()
			m.CreatedAt = h.Clock.Now()
			return nil
		}).
		Times(n)
}

// Registry returns a registry with a zero news delay, closed at test end.
func (h *Harness) Registry(t *testing.T) *session.Registry {
	t.Helper()

	reg := session.NewRegistry(h.Deps,
		session.WithClock(h.Clock.Now),
		session.WithNewsOptions(news.WithDelay(0)),
	)
	t.Cleanup(reg.Close)

	return reg
}
