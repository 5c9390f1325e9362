package importer

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/finassist/internal/transaction"
)

//go:generate mockgen -source=service.go -destination=categorizer_mock.go -package=importer
type Categorizer interface {
	Suggest(ctx context.Context, userID uuid.UUID, description string) (transaction.Category, bool, error)
	Learn(ctx context.Context, userID uuid.UUID, pattern string, category transaction.Category) error
}

type Service struct {
	parser      *Parser
	categorizer Categorizer
}

func NewService(categorizer Categorizer) *Service {
	return &Service{
		parser:      NewParser(),
		categorizer: categorizer,
	}
}

// Import parses r and fills every row's category. Rows carrying a category
// teach the categorizer; rows without one ask it, falling back to Other.
func (s *Service) Import(ctx context.Context, userID uuid.UUID, r io.Reader) ([]Row, error) {
	rows, err := s.parser.Parse(r)
	if err != nil {
		return nil, err
	}

	for i := range rows {
		row := &rows[i]

		if row.Category != "" {
			if err := s.categorizer.Learn(ctx, userID, row.Description, row.Category); err != nil {
				slog.Warn("learning category mapping", "description", row.Description, "error", err)
			}

			continue
		}

		cat, ok, err := s.categorizer.Suggest(ctx, userID, row.Description)
		if err != nil {
			return nil, fmt.Errorf("row %d: suggesting category: %w", i+1, err)
		}

		if !ok {
			cat = transaction.CategoryOther
		}

		row.Category = cat
	}

	return rows, nil
}
