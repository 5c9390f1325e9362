package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/finassist/internal/i18n"
)

var ErrNotFound = errors.New("profile not found")

type Profile struct {
	UserID   uuid.UUID
	Language i18n.Language
}

//go:generate mockgen -source=profile.go -destination=repository_mock.go -package=profile
type Repository interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*Profile, error)
	UpsertLanguage(ctx context.Context, userID uuid.UUID, lang i18n.Language) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Language returns the stored display language, or the default when the user
// has no profile yet.
func (s *Service) Language(ctx context.Context, userID uuid.UUID) (i18n.Language, error) {
	p, err := s.repo.GetProfile(ctx, userID)
	if errors.Is(err, ErrNotFound) {
		return i18n.Default, nil
	}

	if err != nil {
		return "", err
	}

	if !p.Language.Valid() {
		return i18n.Default, nil
	}

	return p.Language, nil
}

func (s *Service) SetLanguage(ctx context.Context, userID uuid.UUID, lang i18n.Language) error {
	if !lang.Valid() {
		return fmt.Errorf("%w: %q", i18n.ErrUnsupportedLanguage, lang)
	}

	return s.repo.UpsertLanguage(ctx, userID, lang)
}
