package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/finassist/internal/investment"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateInvestment(ctx context.Context, inv *investment.Investment) error {
	query := `
		INSERT INTO investments (user_id, name, type, value, quantity, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id
	`

	err := s.db.QueryRowContext(ctx, query,
		inv.UserID,
		inv.Name,
		inv.Type,
		inv.Value,
		inv.Quantity,
	).Scan(&inv.ID)
	if err != nil {
		return fmt.Errorf("creating investment: %w", err)
	}

	return nil
}

func (s *Store) ListInvestments(ctx context.Context, userID uuid.UUID) ([]*investment.Investment, error) {
	query := `
		SELECT id, user_id, name, type, value, quantity
		FROM investments
		WHERE user_id = $1
		ORDER BY created_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing investments: %w", err)
	}
	defer rows.Close()

	var invs []*investment.Investment

	for rows.Next() {
		var inv investment.Investment

		var typ string

		if err := rows.Scan(&inv.ID, &inv.UserID, &inv.Name, &typ, &inv.Value, &inv.Quantity); err != nil {
			return nil, fmt.Errorf("scanning investment: %w", err)
		}

		inv.Type = investment.Type(typ)
		invs = append(invs, &inv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating investments: %w", err)
	}

	return invs, nil
}
