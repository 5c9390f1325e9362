package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	type testCase struct {
		name    string
		input   string
		want    string
		wantErr bool
	}

	tests := []testCase{
		{name: "EuropeanThousands", input: "1.234,56", want: "1234.56"},
		{name: "EnglishThousands", input: "1,234.56", want: "1234.56"},
		{name: "CommaDecimal", input: "-588,74", want: "-588.74"},
		{name: "DotDecimal", input: "75.5", want: "75.50"},
		{name: "RepeatedDots", input: "1.234.567", want: "1234567.00"},
		{name: "RepeatedCommas", input: "1,234,567", want: "1234567.00"},
		{name: "CurrencySymbol", input: "R$ 50,00", want: "50.00"},
		{name: "Integer", input: "-1500", want: "-1500.00"},
		{name: "Garbage", input: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseAmount(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got.StringFixed(2))
		})
	}
}
