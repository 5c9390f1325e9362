package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/finassist/internal/goal"
	"github.com/MrJamesThe3rd/finassist/internal/transaction"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateGoal(ctx context.Context, g *goal.Goal) error {
	query := `
		INSERT INTO goals (user_id, category, amount, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query, g.UserID, g.Category, g.Amount).Scan(&g.ID, &g.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating goal: %w", err)
	}

	return nil
}

func (s *Store) ListGoals(ctx context.Context, userID uuid.UUID) ([]*goal.Goal, error) {
	query := `
		SELECT id, user_id, category, amount, created_at
		FROM goals
		WHERE user_id = $1
		ORDER BY created_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing goals: %w", err)
	}
	defer rows.Close()

	var goals []*goal.Goal

	for rows.Next() {
		var g goal.Goal

		var category string

		if err := rows.Scan(&g.ID, &g.UserID, &category, &g.Amount, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning goal: %w", err)
		}

		g.Category = transaction.Category(category)
		goals = append(goals, &g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating goals: %w", err)
	}

	return goals, nil
}

func (s *Store) DeleteGoal(ctx context.Context, userID, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM goals WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("deleting goal: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking deleted goal: %w", err)
	}

	if n == 0 {
		return goal.ErrNotFound
	}

	return nil
}
