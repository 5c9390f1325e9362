package i18n

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/message"
)

// All amounts are shown in Brazilian reais regardless of display language.
const currencySymbol = "R$"

type currencyLayout struct {
	prefix string
	suffix string
}

func layoutFor(l Language) currencyLayout {
	switch l {
	case PT:
		return currencyLayout{prefix: currencySymbol + " "}
	case ES:
		return currencyLayout{suffix: " " + currencySymbol}
	}

	return currencyLayout{prefix: currencySymbol}
}

// FormatCurrency renders amount with the grouping and decimal separator of lang.
func FormatCurrency(amount decimal.Decimal, lang Language) string {
	rounded := amount.Round(2)
	f, _ := rounded.Abs().Float64()

	number := message.NewPrinter(lang.Tag()).Sprintf("%.2f", f)
	layout := layoutFor(lang)

	var sb strings.Builder
	if rounded.IsNegative() {
		sb.WriteByte('-')
	}

	sb.WriteString(layout.prefix)
	sb.WriteString(number)
	sb.WriteString(layout.suffix)

	return sb.String()
}

var monthAbbrev = [12]entry{
	{"Jan", "jan.", "ene", "1月"},
	{"Feb", "fev.", "feb", "2月"},
	{"Mar", "mar.", "mar", "3月"},
	{"Apr", "abr.", "abr", "4月"},
	{"May", "mai.", "may", "5月"},
	{"Jun", "jun.", "jun", "6月"},
	{"Jul", "jul.", "jul", "7月"},
	{"Aug", "ago.", "ago", "8月"},
	{"Sep", "set.", "sept", "9月"},
	{"Oct", "out.", "oct", "10月"},
	{"Nov", "nov.", "nov", "11月"},
	{"Dec", "dez.", "dic", "12月"},
}

// MonthLabel renders a short month and two-digit year, e.g. "Oct 26" or "26年10月".
func MonthLabel(year int, month time.Month, lang Language) string {
	abbrev, _ := monthAbbrev[month-1].get(lang)
	yy := year % 100

	switch lang {
	case JA:
		return fmt.Sprintf("%02d年%s", yy, abbrev)
	case PT:
		return fmt.Sprintf("%s de %02d", abbrev, yy)
	}

	return fmt.Sprintf("%s %02d", abbrev, yy)
}

// FormatDate renders a calendar date in the order used by lang.
func FormatDate(t time.Time, lang Language) string {
	switch lang {
	case EN:
		return t.Format("1/2/2006")
	case JA:
		return t.Format("2006/1/2")
	}

	return t.Format("02/01/2006")
}
