package matching

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/finassist/internal/transaction"
)

var ErrEmptyPattern = errors.New("pattern is empty")

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=matching
type Repository interface {
	FindMatch(ctx context.Context, userID uuid.UUID, description string) (string, error)
	CreateMapping(ctx context.Context, userID uuid.UUID, pattern string, category transaction.Category) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Suggest returns the category learned for the longest pattern contained in
// description. ok is false when nothing matches.
func (s *Service) Suggest(ctx context.Context, userID uuid.UUID, description string) (transaction.Category, bool, error) {
	raw, err := s.repo.FindMatch(ctx, userID, strings.TrimSpace(description))
	if err != nil {
		return "", false, err
	}

	if raw == "" {
		return "", false, nil
	}

	cat, err := transaction.ParseCategory(raw)
	if err != nil {
		return "", false, nil
	}

	return cat, true, nil
}

// Learn remembers that descriptions containing pattern belong to category.
func (s *Service) Learn(ctx context.Context, userID uuid.UUID, pattern string, category transaction.Category) error {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return ErrEmptyPattern
	}

	if !category.Valid() {
		return fmt.Errorf("%w: %q", transaction.ErrInvalidCategory, category)
	}

	return s.repo.CreateMapping(ctx, userID, pattern, category)
}
