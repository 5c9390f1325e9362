// Package session holds the live state of one signed-in user. A Session is
// the single owner of that state: every change is an append or a full
// replace made under its lock, and only after the store confirmed the write.
// Readers get copies.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/MrJamesThe3rd/finassist/internal/assistant"
	"github.com/MrJamesThe3rd/finassist/internal/chat"
	"github.com/MrJamesThe3rd/finassist/internal/goal"
	"github.com/MrJamesThe3rd/finassist/internal/i18n"
	"github.com/MrJamesThe3rd/finassist/internal/investment"
	"github.com/MrJamesThe3rd/finassist/internal/llm"
	"github.com/MrJamesThe3rd/finassist/internal/news"
	"github.com/MrJamesThe3rd/finassist/internal/profile"
	"github.com/MrJamesThe3rd/finassist/internal/transaction"
)

var (
	ErrEmptyPrompt   = errors.New("prompt is empty")
	ErrReplyNotSaved = errors.New("assistant reply was not saved")
)

// Deps are the collaborators shared by every session.
type Deps struct {
	Transactions *transaction.Service
	Investments  *investment.Service
	Goals        *goal.Service
	Chat         *chat.Service
	Profiles     *profile.Service
	Bridge       *assistant.Bridge
	News         news.Source
}

type Option func(*Session)

func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

func WithNewsOptions(opts ...news.Option) Option {
	return func(s *Session) { s.newsOpts = append(s.newsOpts, opts...) }
}

type Session struct {
	userID   uuid.UUID
	deps     Deps
	now      func() time.Time
	newsOpts []news.Option

	tracker       *goal.Tracker
	notifications goal.Notifications
	debouncer     *news.Debouncer

	// The debouncer publishes while holding its own lock, so mu must never
	// be held while calling into the debouncer.
	mu           sync.RWMutex
	lang         i18n.Language
	transactions []*transaction.Transaction
	investments  []*investment.Investment
	goals        []*goal.Goal
	messages     []chat.Message
	news         []news.Item
	thinking     int
}

func New(userID uuid.UUID, deps Deps, opts ...Option) *Session {
	s := &Session{
		userID:  userID,
		deps:    deps,
		now:     time.Now,
		tracker: goal.NewTracker(),
		lang:    i18n.Default,
		news:    []news.Item{},
	}

	for _, opt := range opts {
		opt(s)
	}

	s.debouncer = news.NewDebouncer(deps.News, s.setNews, s.newsOpts...)

	return s
}

func (s *Session) UserID() uuid.UUID {
	return s.userID
}

// Load replaces the session state with what is stored for the user.
func (s *Session) Load(ctx context.Context) error {
	var (
		lang    i18n.Language
		txs     []*transaction.Transaction
		invs    []*investment.Investment
		goals   []*goal.Goal
		history []*chat.Message
	)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		lang, err = s.deps.Profiles.Language(ctx, s.userID)
		if err != nil {
			return fmt.Errorf("loading profile: %w", err)
		}

		return nil
	})
	g.Go(func() error {
		var err error
		txs, err = s.deps.Transactions.List(ctx, s.userID, transaction.ListFilter{})
		if err != nil {
			return fmt.Errorf("loading transactions: %w", err)
		}

		return nil
	})
	g.Go(func() error {
		var err error
		invs, err = s.deps.Investments.List(ctx, s.userID)
		if err != nil {
			return fmt.Errorf("loading investments: %w", err)
		}

		return nil
	})
	g.Go(func() error {
		var err error
		goals, err = s.deps.Goals.List(ctx, s.userID)
		if err != nil {
			return fmt.Errorf("loading goals: %w", err)
		}

		return nil
	})
	g.Go(func() error {
		var err error
		history, err = s.deps.Chat.History(ctx, s.userID)
		if err != nil {
			return fmt.Errorf("loading chat history: %w", err)
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	messages := make([]chat.Message, 0, len(history)+1)
	for _, m := range history {
		messages = append(messages, *m)
	}

	if len(messages) == 0 {
		messages = append(messages, chat.Greeting(lang))
	}

	sortByDateDesc(txs)

	s.mu.Lock()
	s.lang = lang
	s.transactions = txs
	s.investments = invs
	s.goals = goals
	s.messages = messages
	s.mu.Unlock()

	s.tracker.Evaluate(goals, txs, lang, s.now())
	s.refreshNews()

	return nil
}

// Close stops background news fetching.
func (s *Session) Close() {
	s.debouncer.Stop()
}

type TransactionInput struct {
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	Category    transaction.Category
}

func (s *Session) AddTransaction(ctx context.Context, in TransactionInput) (*transaction.Transaction, error) {
	tx, err := s.deps.Transactions.Create(ctx, transaction.CreateParams{
		UserID:      s.userID,
		Date:        in.Date,
		Description: in.Description,
		Amount:      in.Amount,
		Category:    in.Category,
	})
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	next := append(slices.Clone(s.transactions), tx)
	sortByDateDesc(next)
	s.transactions = next
	s.mu.Unlock()

	return tx, nil
}

// ImportTransactions stores a batch and adds it to the session as one change.
func (s *Session) ImportTransactions(ctx context.Context, ins []TransactionInput) ([]*transaction.Transaction, error) {
	params := make([]transaction.CreateParams, 0, len(ins))
	for _, in := range ins {
		params = append(params, transaction.CreateParams{
			UserID:      s.userID,
			Date:        in.Date,
			Description: in.Description,
			Amount:      in.Amount,
			Category:    in.Category,
		})
	}

	txs, err := s.deps.Transactions.CreateBatch(ctx, params)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	next := append(slices.Clone(s.transactions), txs...)
	sortByDateDesc(next)
	s.transactions = next
	s.mu.Unlock()

	return txs, nil
}

func (s *Session) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	if err := s.deps.Transactions.Delete(ctx, s.userID, id); err != nil {
		return err
	}

	s.mu.Lock()
	s.transactions = slices.DeleteFunc(slices.Clone(s.transactions), func(tx *transaction.Transaction) bool {
		return tx.ID == id
	})
	s.mu.Unlock()

	return nil
}

type InvestmentInput struct {
	Name     string
	Type     investment.Type
	Value    decimal.Decimal
	Quantity decimal.Decimal
}

func (s *Session) AddInvestment(ctx context.Context, in InvestmentInput) (*investment.Investment, error) {
	inv, err := s.deps.Investments.Create(ctx, investment.CreateParams{
		UserID:   s.userID,
		Name:     in.Name,
		Type:     in.Type,
		Value:    in.Value,
		Quantity: in.Quantity,
	})
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.investments = append(slices.Clone(s.investments), inv)
	s.mu.Unlock()

	s.refreshNews()

	return inv, nil
}

func (s *Session) AddGoal(ctx context.Context, category transaction.Category, amount decimal.Decimal) (*goal.Goal, error) {
	g, err := s.deps.Goals.Create(ctx, goal.CreateParams{
		UserID:   s.userID,
		Category: category,
		Amount:   amount,
	})
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.goals = append(slices.Clone(s.goals), g)
	s.mu.Unlock()

	return g, nil
}

func (s *Session) RemoveGoal(ctx context.Context, id uuid.UUID) error {
	if err := s.deps.Goals.Delete(ctx, s.userID, id); err != nil {
		return err
	}

	s.mu.Lock()
	s.goals = slices.DeleteFunc(slices.Clone(s.goals), func(g *goal.Goal) bool {
		return g.ID == id
	})
	s.mu.Unlock()

	return nil
}

// SetLanguage stores the preference, re-localizes an untouched greeting and
// refreshes the news in the new language.
func (s *Session) SetLanguage(ctx context.Context, lang i18n.Language) error {
	if err := s.deps.Profiles.SetLanguage(ctx, s.userID, lang); err != nil {
		return err
	}

	s.mu.Lock()
	s.lang = lang

	if len(s.messages) > 0 && s.messages[0].IsGreeting() {
		next := slices.Clone(s.messages)
		next[0] = chat.Greeting(lang)
		s.messages = next
	}
	s.mu.Unlock()

	s.refreshNews()

	return nil
}

// SendMessage stores the prompt, asks the assistant and stores its answer.
// The returned message is the answer; it is also returned, together with
// ErrReplyNotSaved, when only the answer could not be stored.
func (s *Session) SendMessage(ctx context.Context, text string) (chat.Message, error) {
	if strings.TrimSpace(text) == "" {
		return chat.Message{}, ErrEmptyPrompt
	}

	s.mu.RLock()
	conv := assistant.Conversation{
		Prompt:       text,
		History:      slices.Clone(s.messages),
		Transactions: slices.Clone(s.transactions),
		Investments:  slices.Clone(s.investments),
		Language:     s.lang,
	}
	s.mu.RUnlock()

	userMsg, err := s.deps.Chat.Save(ctx, s.userID, chat.RoleUser, text)
	if err != nil {
		return chat.Message{}, fmt.Errorf("saving prompt: %w", err)
	}

	s.appendMessage(*userMsg)

	s.setThinking(1)
	defer s.setThinking(-1)

	answer := s.deps.Bridge.Reply(ctx, conv, mutator{s: s})

	modelMsg, err := s.deps.Chat.Save(ctx, s.userID, chat.RoleModel, answer)
	if err != nil {
		slog.Error("failed to save assistant reply", "user_id", s.userID, "error", err)

		return chat.Message{Role: chat.RoleModel, Text: answer}, fmt.Errorf("%w: %w", ErrReplyNotSaved, err)
	}

	s.appendMessage(*modelMsg)

	return *modelMsg, nil
}

func (s *Session) appendMessage(m chat.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages = append(slices.Clone(s.messages), m)
}

func (s *Session) setThinking(delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.thinking += delta
}

func (s *Session) setNews(items []news.Item) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.news = items
}

func (s *Session) refreshNews() {
	s.mu.RLock()
	req := llm.NewsRequest{
		Investments: llm.FromInvestments(s.investments),
		Language:    s.lang,
	}
	s.mu.RUnlock()

	s.debouncer.Trigger(req)
}

func sortByDateDesc(txs []*transaction.Transaction) {
	slices.SortStableFunc(txs, func(a, b *transaction.Transaction) int {
		return b.Date.Compare(a.Date)
	})
}
