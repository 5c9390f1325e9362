package transaction

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=transaction
type Repository interface {
	CreateTransaction(ctx context.Context, tx *Transaction) error
	CreateTransactions(ctx context.Context, txs []*Transaction) error
	ListTransactions(ctx context.Context, userID uuid.UUID, filter ListFilter) ([]*Transaction, error)
	DeleteTransaction(ctx context.Context, userID, id uuid.UUID) error
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

type CreateParams struct {
	UserID      uuid.UUID
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	Category    Category
}

type ListFilter struct {
	Category  *Category
	StartDate *time.Time
	EndDate   *time.Time
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Transaction, error) {
	tx, err := s.build(params)
	if err != nil {
		return nil, err
	}

	if err := s.repo.CreateTransaction(ctx, tx); err != nil {
		return nil, err
	}

	return tx, nil
}

// CreateBatch validates every row before writing any of them; the write is all-or-nothing.
func (s *Service) CreateBatch(ctx context.Context, params []CreateParams) ([]*Transaction, error) {
	if len(params) == 0 {
		return nil, nil
	}

	txs := make([]*Transaction, len(params))

	for i, p := range params {
		tx, err := s.build(p)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}

		txs[i] = tx
	}

	if err := s.repo.CreateTransactions(ctx, txs); err != nil {
		return nil, fmt.Errorf("create transactions: %w", err)
	}

	return txs, nil
}

func (s *Service) List(ctx context.Context, userID uuid.UUID, filter ListFilter) ([]*Transaction, error) {
	return s.repo.ListTransactions(ctx, userID, filter)
}

func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.repo.DeleteTransaction(ctx, userID, id)
}

// AmountScale matches the amount column, so what is kept in memory is what
// the store holds.
const AmountScale = 2

func (s *Service) build(p CreateParams) (*Transaction, error) {
	desc := strings.TrimSpace(p.Description)
	if desc == "" {
		return nil, ErrInvalidDescription
	}

	if !p.Category.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCategory, p.Category)
	}

	date := p.Date
	if date.IsZero() {
		date = s.now()
	}

	return &Transaction{
		UserID:      p.UserID,
		Date:        time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC),
		Description: desc,
		Amount:      p.Amount.Round(AmountScale),
		Category:    p.Category,
	}, nil
}
