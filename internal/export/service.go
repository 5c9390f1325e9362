package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/finassist/internal/i18n"
	"github.com/MrJamesThe3rd/finassist/internal/transaction"
)

var header = []string{"date", "description", "amount", "category"}

// WriteCSV writes txs in the layout the importer reads back: semicolon
// separated, ISO dates and dot decimals.
func WriteCSV(w io.Writer, txs []*transaction.Transaction) error {
	cw := csv.NewWriter(w)
	cw.Comma = ';'

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, tx := range txs {
		record := []string{
			tx.Date.Format(time.DateOnly),
			tx.Description,
			tx.Amount.StringFixed(2),
			string(tx.Category),
		}

		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing transaction %s: %w", tx.ID, err)
		}
	}

	cw.Flush()

	return cw.Error()
}

// Filename names an export taken at now, e.g. finassist_20261017.csv.
func Filename(now time.Time) string {
	return fmt.Sprintf("finassist_%s.csv", now.Format("20060102"))
}

// Statement renders txs as a plain-text list for pasting into an email.
func Statement(txs []*transaction.Transaction, lang i18n.Language) string {
	var sb strings.Builder

	for _, tx := range txs {
		sign := ""
		if tx.IsIncome() {
			sign = "+"
		}

		fmt.Fprintf(&sb, "* %s | %s | %s%s | %s\n",
			i18n.FormatDate(tx.Date, lang),
			tx.Description,
			sign,
			i18n.FormatCurrency(tx.Amount, lang),
			tx.Category,
		)
	}

	return sb.String()
}
