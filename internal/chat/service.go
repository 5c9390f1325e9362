package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=chat
type Repository interface {
	CreateMessage(ctx context.Context, m *Message) error
	ListMessages(ctx context.Context, userID uuid.UUID) ([]*Message, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Save persists a user or model turn. The greeting is rejected.
func (s *Service) Save(ctx context.Context, userID uuid.UUID, role Role, text string) (*Message, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRole, role)
	}

	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyMessage
	}

	m := &Message{UserID: userID, Role: role, Text: text}
	if err := s.repo.CreateMessage(ctx, m); err != nil {
		return nil, err
	}

	return m, nil
}

// History returns stored messages oldest first.
func (s *Service) History(ctx context.Context, userID uuid.UUID) ([]*Message, error) {
	return s.repo.ListMessages(ctx, userID)
}
