package view_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/finassist/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/finassist/internal/transaction"
)

func TestTimeframe_DateRange(t *testing.T) {
	type testCase struct {
		name      string
		timeframe view.Timeframe
		wantStart time.Time
		wantEnd   time.Time
	}

	now := time.Date(2026, 1, 17, 15, 4, 0, 0, time.UTC)

	tests := []testCase{
		{
			name:      "ThisMonth",
			timeframe: view.TimeframeThisMonth,
			wantStart: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2026, 1, 17, 23, 59, 59, 0, time.UTC),
		},
		{
			name:      "LastMonthAcrossYear",
			timeframe: view.TimeframeLastMonth,
			wantStart: time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2025, 12, 31, 23, 59, 59, 0, time.UTC),
		},
		{
			name:      "Last12Months",
			timeframe: view.TimeframeLast12Months,
			wantStart: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2026, 1, 17, 23, 59, 59, 0, time.UTC),
		},
		{
			name:      "AllHasNoRange",
			timeframe: view.TimeframeAll,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := tt.timeframe.DateRange(now)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}

func TestTimeframeSelectedMsg_Within(t *testing.T) {
	txs := []*transaction.Transaction{
		{Description: "before", Date: time.Date(2025, 11, 30, 0, 0, 0, 0, time.UTC)},
		{Description: "first", Date: time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)},
		{Description: "last", Date: time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)},
		{Description: "after", Date: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
	}

	start, end := view.TimeframeLastMonth.DateRange(time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC))

	got := view.TimeframeSelectedMsg{Start: start, End: end}.Within(txs)
	if assert.Len(t, got, 2) {
		assert.Equal(t, "first", got[0].Description)
		assert.Equal(t, "last", got[1].Description)
	}

	assert.Len(t, view.TimeframeSelectedMsg{All: true}.Within(txs), 4)
}
