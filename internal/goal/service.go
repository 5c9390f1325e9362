package goal

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finassist/internal/transaction"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=goal
type Repository interface {
	CreateGoal(ctx context.Context, g *Goal) error
	ListGoals(ctx context.Context, userID uuid.UUID) ([]*Goal, error)
	DeleteGoal(ctx context.Context, userID, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	UserID   uuid.UUID
	Category transaction.Category
	Amount   decimal.Decimal
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Goal, error) {
	if !params.Category.Valid() || params.Category == transaction.CategoryIncome {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCategory, params.Category)
	}

	amount := params.Amount.Round(transaction.AmountScale)
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	g := &Goal{
		UserID:   params.UserID,
		Category: params.Category,
		Amount:   amount,
	}
	if err := s.repo.CreateGoal(ctx, g); err != nil {
		return nil, err
	}

	return g, nil
}

func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]*Goal, error) {
	return s.repo.ListGoals(ctx, userID)
}

func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.repo.DeleteGoal(ctx, userID, id)
}
