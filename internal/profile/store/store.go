package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/finassist/internal/i18n"
	"github.com/MrJamesThe3rd/finassist/internal/profile"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) GetProfile(ctx context.Context, userID uuid.UUID) (*profile.Profile, error) {
	var lang string

	err := s.db.QueryRowContext(ctx, `SELECT language FROM profiles WHERE id = $1`, userID).Scan(&lang)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, profile.ErrNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("getting profile: %w", err)
	}

	return &profile.Profile{UserID: userID, Language: i18n.Language(lang)}, nil
}

func (s *Store) UpsertLanguage(ctx context.Context, userID uuid.UUID, lang i18n.Language) error {
	query := `
		INSERT INTO profiles (id, language, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (id) DO UPDATE SET language = EXCLUDED.language, updated_at = NOW()
	`

	if _, err := s.db.ExecContext(ctx, query, userID, lang); err != nil {
		return fmt.Errorf("updating profile language: %w", err)
	}

	return nil
}
