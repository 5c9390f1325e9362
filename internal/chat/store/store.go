package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/finassist/internal/chat"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateMessage(ctx context.Context, m *chat.Message) error {
	query := `
		INSERT INTO chat_history (user_id, role, text, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, created_at
	`

	var id uuid.UUID

	if err := s.db.QueryRowContext(ctx, query, m.UserID, m.Role, m.Text).Scan(&id, &m.CreatedAt); err != nil {
		return fmt.Errorf("creating chat message: %w", err)
	}

	m.ID = id.String()

	return nil
}

func (s *Store) ListMessages(ctx context.Context, userID uuid.UUID) ([]*chat.Message, error) {
	query := `
		SELECT id, user_id, role, text, created_at
		FROM chat_history
		WHERE user_id = $1
		ORDER BY created_at ASC, id ASC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing chat history: %w", err)
	}
	defer rows.Close()

	var msgs []*chat.Message

	for rows.Next() {
		var (
			m    chat.Message
			id   uuid.UUID
			role string
		)

		if err := rows.Scan(&id, &m.UserID, &role, &m.Text, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning chat message: %w", err)
		}

		m.ID = id.String()
		m.Role = chat.Role(role)
		msgs = append(msgs, &m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chat history: %w", err)
	}

	return msgs, nil
}
