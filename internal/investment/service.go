package investment

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=investment
type Repository interface {
	CreateInvestment(ctx context.Context, inv *Investment) error
	ListInvestments(ctx context.Context, userID uuid.UUID) ([]*Investment, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	UserID   uuid.UUID
	Name     string
	Type     Type
	Value    decimal.Decimal
	Quantity decimal.Decimal
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Investment, error) {
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, ErrInvalidName
	}

	if !params.Type.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidType, params.Type)
	}

	if params.Value.IsNegative() || params.Quantity.IsNegative() {
		return nil, ErrNegativeValue
	}

	// Scales follow the value and quantity columns.

	inv := &Investment{
		UserID:   params.UserID,
		Name:     name,
		Type:     params.Type,
		Value:    params.Value.Round(2),
		Quantity: params.Quantity.Round(8),
	}
	if err := s.repo.CreateInvestment(ctx, inv); err != nil {
		return nil, err
	}

	return inv, nil
}

func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]*Investment, error) {
	return s.repo.ListInvestments(ctx, userID)
}
