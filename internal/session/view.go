package session

import (
	"slices"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finassist/internal/chat"
	"github.com/MrJamesThe3rd/finassist/internal/goal"
	"github.com/MrJamesThe3rd/finassist/internal/i18n"
	"github.com/MrJamesThe3rd/finassist/internal/investment"
	"github.com/MrJamesThe3rd/finassist/internal/metrics"
	"github.com/MrJamesThe3rd/finassist/internal/news"
	"github.com/MrJamesThe3rd/finassist/internal/transaction"
)

// Snapshot is a read-only copy of the session state.
type Snapshot struct {
	UserID       uuid.UUID
	Language     i18n.Language
	Transactions []*transaction.Transaction
	Investments  []*investment.Investment
	Goals        []*goal.Goal
	Messages     []chat.Message
	News         []news.Item
	Thinking     bool
	FetchingNews bool
}

func (s *Session) Snapshot() Snapshot {
	fetching := s.debouncer.Fetching()

	s.mu.RLock()
	defer s.mu.RUnlock()

	return Snapshot{
		UserID:       s.userID,
		Language:     s.lang,
		Transactions: slices.Clone(s.transactions),
		Investments:  slices.Clone(s.investments),
		Goals:        slices.Clone(s.goals),
		Messages:     slices.Clone(s.messages),
		News:         slices.Clone(s.news),
		Thinking:     s.thinking > 0,
		FetchingNews: fetching,
	}
}

func (s *Session) Language() i18n.Language {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.lang
}

// Dashboard is everything the dashboard renders, derived from one snapshot.
type Dashboard struct {
	Language     i18n.Language
	NetWorth     decimal.Decimal
	Spending     []metrics.Spending
	Annual       []metrics.MonthTotals
	Goals        []goal.Progress
	Investments  []*investment.Investment
	Transactions []*transaction.Transaction
	News         []news.Item
	Thinking     bool
	FetchingNews bool
}

func (s *Session) Dashboard(filter metrics.Filter) Dashboard {
	snap := s.Snapshot()

	return Dashboard{
		Language:     snap.Language,
		NetWorth:     metrics.NetWorth(snap.Transactions, snap.Investments),
		Spending:     metrics.SpendingAnalysis(snap.Transactions),
		Annual:       metrics.AnnualOverview(snap.Transactions, snap.Language, s.now()),
		Goals:        goal.ComputeProgress(snap.Goals, snap.Transactions),
		Investments:  snap.Investments,
		Transactions: metrics.FilterTransactions(snap.Transactions, filter),
		News:         snap.News,
		Thinking:     snap.Thinking,
		FetchingNews: snap.FetchingNews,
	}
}

// Achievements checks for newly met goals and returns the notices currently
// on screen.
func (s *Session) Achievements() []goal.Notice {
	snap := s.Snapshot()
	now := s.now()

	if unlocked := s.tracker.Evaluate(snap.Goals, snap.Transactions, snap.Language, now); len(unlocked) > 0 {
		s.notifications.Push(now, unlocked...)
	}

	return s.notifications.Active(now)
}

func (s *Session) DismissAchievement(id string) bool {
	return s.notifications.Dismiss(id, s.now())
}

func (s *Session) News() ([]news.Item, bool) {
	snap := s.Snapshot()
	return snap.News, snap.FetchingNews
}
