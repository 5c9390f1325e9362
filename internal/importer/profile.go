package importer

import (
	"strings"

	"github.com/shopspring/decimal"
)

// column lists the accepted header names for one field, already normalized.
type column []string

func (c column) index(cols colIndex) int {
	for _, name := range c {
		if i, ok := cols[name]; ok {
			return i
		}
	}

	return -1
}

func (c column) present(cols colIndex) bool {
	return c.index(cols) >= 0
}

type amountMode int

const (
	// amountSingle is one signed column, e.g. "Montante" with "-10,00".
	amountSingle amountMode = iota
	// amountSplit is a pair of unsigned debit and credit columns.
	amountSplit
)

// profile describes a CSV layout. The category column is optional.
type profile struct {
	name        string
	date        column
	description column
	mode        amountMode
	value       column
	debit       column
	credit      column
	category    column
}

func (p *profile) matches(cols colIndex) bool {
	if !p.date.present(cols) || !p.description.present(cols) {
		return false
	}

	switch p.mode {
	case amountSingle:
		return p.value.present(cols)
	case amountSplit:
		return p.debit.present(cols) && p.credit.present(cols)
	}

	return false
}

// amount returns the signed amount of record. Zero and blank amounts are skipped.
func (p *profile) amount(cols colIndex, record []string) (decimal.Decimal, bool) {
	switch p.mode {
	case amountSingle:
		return nonZero(cellValue(record, p.value.index(cols)))
	case amountSplit:
		if d, ok := nonZero(cellValue(record, p.debit.index(cols))); ok {
			return d.Abs().Neg(), true
		}

		if d, ok := nonZero(cellValue(record, p.credit.index(cols))); ok {
			return d.Abs(), true
		}
	}

	return decimal.Zero, false
}

func nonZero(s string) (decimal.Decimal, bool) {
	if s == "" {
		return decimal.Zero, false
	}

	d, err := parseAmount(s)
	if err != nil || d.IsZero() {
		return decimal.Zero, false
	}

	return d, true
}

var (
	dateHeaders        = column{"date", "data", "fecha", "日付", "data mov.", "data mov"}
	descriptionHeaders = column{"description", "descrição", "descricao", "descripción", "descripcion", "説明", "内容"}
	amountHeaders      = column{"amount", "valor", "montante", "movimento", "importe", "monto", "金額"}
	categoryHeaders    = column{"category", "categoria", "categoría", "カテゴリ", "カテゴリー"}
)

// profiles is tried in order; layouts with more required columns come first.
var profiles = []profile{
	{
		name:        "debit-credit",
		date:        dateHeaders,
		description: descriptionHeaders,
		mode:        amountSplit,
		debit:       column{"debit", "débito", "debito", "出金"},
		credit:      column{"credit", "crédito", "credito", "入金"},
		category:    categoryHeaders,
	},
	{
		name:        "signed",
		date:        dateHeaders,
		description: descriptionHeaders,
		mode:        amountSingle,
		value:       amountHeaders,
		category:    categoryHeaders,
	},
}

func normalizeHeader(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
