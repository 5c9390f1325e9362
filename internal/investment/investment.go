package investment

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidType   = errors.New("invalid investment type")
	ErrInvalidName   = errors.New("investment name is required")
	ErrNegativeValue = errors.New("value and quantity must not be negative")
)

type Type string

const (
	TypeStocks     Type = "Stocks"
	TypeBonds      Type = "Bonds"
	TypeRealEstate Type = "Real Estate"
	TypeCrypto     Type = "Crypto"
)

var Types = []Type{TypeStocks, TypeBonds, TypeRealEstate, TypeCrypto}

func ParseType(s string) (Type, error) {
	s = strings.TrimSpace(s)
	for _, t := range Types {
		if strings.EqualFold(string(t), s) {
			return t, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrInvalidType, s)
}

func (t Type) Valid() bool {
	for _, known := range Types {
		if t == known {
			return true
		}
	}

	return false
}

// Investment is a holding valued at its current market value.
type Investment struct {
	ID       uuid.UUID
	UserID   uuid.UUID
	Name     string
	Type     Type
	Value    decimal.Decimal
	Quantity decimal.Decimal
}
