package importer_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/MrJamesThe3rd/finassist/internal/importer"
	"github.com/MrJamesThe3rd/finassist/internal/transaction"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestParser_Plain(t *testing.T) {
	csv := `date;description;amount;category
2026-10-01;Salary;5000;Income
2026-10-03;Rent;-1.500,00;housing
2026-10-05;Bus ticket;-4.50;
2026-10-06;Gift shop;-20;Groceries
`

	rows, err := importer.NewParser().Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, date(2026, 10, 1), rows[0].Date)
	assert.Equal(t, "Salary", rows[0].Description)
	assert.Equal(t, "5000.00", rows[0].Amount.StringFixed(2))
	assert.Equal(t, transaction.CategoryIncome, rows[0].Category)

	assert.Equal(t, "-1500.00", rows[1].Amount.StringFixed(2))
	assert.Equal(t, transaction.CategoryHousing, rows[1].Category)

	assert.Equal(t, "-4.50", rows[2].Amount.StringFixed(2))
	assert.Empty(t, rows[2].Category)

	assert.Empty(t, rows[3].Category, "unknown category names are left for suggestion")
}

func TestParser_CommaDelimited(t *testing.T) {
	csv := "Data,Descrição,Valor\n17/10/2026,Almoço,\"-75,90\"\n"

	rows, err := importer.NewParser().Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, date(2026, 10, 17), rows[0].Date)
	assert.Equal(t, "Almoço", rows[0].Description)
	assert.Equal(t, "-75.90", rows[0].Amount.StringFixed(2))
}

func TestParser_BankStatement(t *testing.T) {
	csv := `Consultar saldos e movimentos à ordem - 31-01-2026;"=""0000"""
Nome cliente;JOHN DOE

Dados da consulta
Intervalo de;01-01-2026 a 31-01-2026

Data mov.;Data-valor;Descrição;Montante;Saldo contabilístico após movimento
30-01-2026;30-01-2026;INSTITUTO GESTAO FINA;-588,74;48.825,46
09-01-2026;09-01-2026;TFI Wise;8.608,52;52.532,78
`

	rows, err := importer.NewParser().Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, date(2026, 1, 30), rows[0].Date)
	assert.Equal(t, "INSTITUTO GESTAO FINA", rows[0].Description)
	assert.Equal(t, "-588.74", rows[0].Amount.StringFixed(2))

	assert.Equal(t, date(2026, 1, 9), rows[1].Date)
	assert.Equal(t, "8608.52", rows[1].Amount.StringFixed(2))
}

func TestParser_DebitCredit(t *testing.T) {
	csv := `Conta cartão ;4163 **** **** 8016 - EUR - Business Débito
Desde ;15/12/2025

Data ;Data valor ;Descrição ;Débito ;Crédito ;
16-12-2025 ;14-12-2025 ;PA GONDOMAR         GONDOMAR ;64,00 ; ;
31-12-2025 ;29-12-2025 ;REFUND AMAZON ;  ;25,00 ;
 ; ; ; ;Página 1/2 ;
`

	rows, err := importer.NewParser().Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, date(2025, 12, 16), rows[0].Date)
	assert.Equal(t, "PA GONDOMAR         GONDOMAR", rows[0].Description)
	assert.Equal(t, "-64.00", rows[0].Amount.StringFixed(2))

	assert.Equal(t, date(2025, 12, 31), rows[1].Date)
	assert.Equal(t, "25.00", rows[1].Amount.StringFixed(2))
}

func TestParser_Latin1Encoding(t *testing.T) {
	utf8CSV := "Data;Descrição;Valor\n30-01-2026;CAFÉ CENTRAL;-10,00\n"

	latin1Bytes, err := charmap.Windows1252.NewEncoder().Bytes([]byte(utf8CSV))
	require.NoError(t, err)

	rows, err := importer.NewParser().Parse(bytes.NewReader(latin1Bytes))
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, "CAFÉ CENTRAL", rows[0].Description)
}

func TestParser_DifferentColumnOrder(t *testing.T) {
	csv := `Random;MetaData
Amount;Description;Date;Ignored
-10.00;TEST_ORDER;2026-01-30;XXX
`

	rows, err := importer.NewParser().Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, "TEST_ORDER", rows[0].Description)
	assert.Equal(t, "-10.00", rows[0].Amount.StringFixed(2))
}

func TestParser_SkipsZeroAndBlankAmounts(t *testing.T) {
	csv := `date;description;amount
2026-01-30;Zero;0,00
2026-01-30;Blank;
2026-01-30;Kept;-1
`

	rows, err := importer.NewParser().Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Kept", rows[0].Description)
}

func TestParser_EmptyFile(t *testing.T) {
	_, err := importer.NewParser().Parse(strings.NewReader(""))
	assert.ErrorIs(t, err, importer.ErrNoHeader)
}

func TestParser_HeaderOnly(t *testing.T) {
	rows, err := importer.NewParser().Parse(strings.NewReader("date;description;amount"))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestParser_MissingDescription(t *testing.T) {
	csv := `date;description;amount
2026-01-30;;-10,00
`

	_, err := importer.NewParser().Parse(strings.NewReader(csv))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "row 2: missing description")
}
