package importer

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	enc "github.com/MrJamesThe3rd/finassist/internal/encoding"
	"github.com/MrJamesThe3rd/finassist/internal/transaction"
)

var ErrNoHeader = errors.New("no header found: expected date, description and amount columns")

// Row is one parsed line of a statement. Category is empty when the file did
// not carry one or carried a name outside the known set.
type Row struct {
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	Category    transaction.Category
}

var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"02-01-2006",
}

// Parser reads CSV exports and produces rows. It auto-detects the column
// layout by matching header cells against known profiles.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]Row, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	data, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = detectDelimiter(data)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	profile, cols, headerIdx := detectProfile(records)
	if profile == nil {
		return nil, ErrNoHeader
	}

	return parseRecords(profile, cols, records[headerIdx+1:], headerIdx+1)
}

// detectDelimiter picks ';' unless the first non-empty line only has commas.
func detectDelimiter(data []byte) rune {
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}

		if strings.Count(line, ";") == 0 && strings.Count(line, ",") > 0 {
			return ','
		}

		break
	}

	return ';'
}

// colIndex maps normalized header names to their index in the record.
type colIndex map[string]int

func detectProfile(records [][]string) (*profile, colIndex, int) {
	for rowIdx, record := range records {
		cols := make(colIndex)

		for i, cell := range record {
			name := normalizeHeader(cell)
			if _, seen := cols[name]; name != "" && !seen {
				cols[name] = i
			}
		}

		for i := range profiles {
			if profiles[i].matches(cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func parseRecords(p *profile, cols colIndex, records [][]string, headerRowNum int) ([]Row, error) {
	dateIdx := p.date.index(cols)
	descIdx := p.description.index(cols)
	catIdx := p.category.index(cols)

	rows := []Row{}

	for i, record := range records {
		rowNum := headerRowNum + i + 1

		date, ok := parseDate(cellValue(record, dateIdx))
		if !ok {
			continue
		}

		desc := cellValue(record, descIdx)
		if desc == "" {
			return nil, fmt.Errorf("row %d: missing description", rowNum)
		}

		amount, ok := p.amount(cols, record)
		if !ok {
			continue
		}

		row := Row{Date: date, Description: desc, Amount: amount}

		if raw := cellValue(record, catIdx); raw != "" {
			if cat, err := transaction.ParseCategory(raw); err == nil {
				row.Category = cat
			}
		}

		rows = append(rows, row)
	}

	return rows, nil
}

// parseDate returns false for empty or unparseable cells, e.g. footer rows.
func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

func cellValue(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}

	return strings.TrimSpace(record[idx])
}
