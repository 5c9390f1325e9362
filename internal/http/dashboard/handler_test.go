package dashboard_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/finassist/internal/auth"
	"github.com/MrJamesThe3rd/finassist/internal/goal"
	"github.com/MrJamesThe3rd/finassist/internal/http/dashboard"
	"github.com/MrJamesThe3rd/finassist/internal/i18n"
	"github.com/MrJamesThe3rd/finassist/internal/investment"
	"github.com/MrJamesThe3rd/finassist/internal/llm"
	"github.com/MrJamesThe3rd/finassist/internal/session/sessiontest"
	"github.com/MrJamesThe3rd/finassist/internal/transaction"
)

type fixture struct {
	h      *sessiontest.Harness
	router chi.Router
}

func newFixture(t *testing.T, stored sessiontest.Stored) *fixture {
	t.Helper()

	h := sessiontest.New(t)
	h.ExpectLoad(stored)

	router := chi.NewRouter()
	dashboard.NewHandler(h.Registry(t)).Routes(router)

	return &fixture{h: h, router: router}
}

func (f *fixture) get(t *testing.T, method, path string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, nil)
	req = req.WithContext(auth.WithUserID(req.Context(), f.h.UserID))

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	return rec
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestHandler_Dashboard(t *testing.T) {
	f := newFixture(t, sessiontest.Stored{
		Language: i18n.EN,
		Transactions: []*transaction.Transaction{
			{ID: uuid.New(), Date: date(2026, 10, 1), Description: "Salary", Amount: decimal.NewFromInt(5000), Category: transaction.CategoryIncome},
			{ID: uuid.New(), Date: date(2026, 10, 3), Description: "Rent", Amount: decimal.NewFromInt(-1500), Category: transaction.CategoryHousing},
			{ID: uuid.New(), Date: date(2026, 10, 5), Description: "Lunch", Amount: decimal.NewFromInt(-500), Category: transaction.CategoryFood},
		},
	})

	rec := f.get(t, http.MethodGet, "/?type=expense")
	require.Equal(t, http.StatusOK, rec.Code)

	var got struct {
		NetWorth struct {
			Value   decimal.Decimal `json:"value"`
			Display string          `json:"display"`
		} `json:"net_worth"`
		Spending []struct {
			Category   transaction.Category `json:"category"`
			Percentage decimal.Decimal      `json:"percentage"`
		} `json:"spending"`
		Annual []struct {
			Label string `json:"label"`
		} `json:"annual"`
		Transactions []struct {
			Description string `json:"description"`
			DateLabel   string `json:"date_label"`
		} `json:"transactions"`
		News struct {
			Items   []any `json:"items"`
			Loading bool  `json:"loading"`
		} `json:"news"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))

	assert.Equal(t, "R$3,000.00", got.NetWorth.Display)

	require.Len(t, got.Spending, 2)
	assert.Equal(t, transaction.CategoryHousing, got.Spending[0].Category)
	assert.True(t, got.Spending[0].Percentage.Equal(decimal.NewFromInt(75)))

	require.Len(t, got.Annual, 12)
	assert.Equal(t, "Oct 26", got.Annual[11].Label)

	require.Len(t, got.Transactions, 2)
	assert.Equal(t, "Lunch", got.Transactions[0].Description)
	assert.Equal(t, "10/5/2026", got.Transactions[0].DateLabel)

	assert.NotNil(t, got.News.Items)
	assert.False(t, got.News.Loading)
}

func TestHandler_News(t *testing.T) {
	f := newFixture(t, sessiontest.Stored{
		Investments: []*investment.Investment{{ID: uuid.New(), Name: "PETR4", Type: investment.TypeStocks, Value: decimal.NewFromInt(1000)}},
	})

	done := make(chan struct{})
	f.h.LLM.EXPECT().
		MarketNews(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ llm.NewsRequest) ([]llm.NewsItem, error) {
			defer close(done)
			return []llm.NewsItem{{Headline: "Oil rallies", Summary: "Brent up.", Source: "Wire"}}, nil
		})

	f.get(t, http.MethodGet, "/news")

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("news fetch did not run")
	}

	assert.Eventually(t, func() bool {
		rec := f.get(t, http.MethodGet, "/news")
		return rec.Code == http.StatusOK && containsHeadline(rec.Body.Bytes(), "Oil rallies")
	}, 2*time.Second, 10*time.Millisecond)
}

func containsHeadline(body []byte, headline string) bool {
	var got struct {
		Items []struct {
			Headline string `json:"headline"`
		} `json:"items"`
		Loading bool `json:"loading"`
	}

	if err := json.Unmarshal(body, &got); err != nil {
		return false
	}

	return len(got.Items) == 1 && got.Items[0].Headline == headline && !got.Loading
}

func TestHandler_Achievements_MonthRollover(t *testing.T) {
	g := &goal.Goal{ID: uuid.New(), Category: transaction.CategoryFood, Amount: decimal.NewFromInt(300), CreatedAt: date(2026, 9, 1)}

	f := newFixture(t, sessiontest.Stored{
		Goals: []*goal.Goal{g},
		Transactions: []*transaction.Transaction{
			{ID: uuid.New(), Date: date(2026, 10, 3), Amount: decimal.NewFromInt(-120), Category: transaction.CategoryFood},
		},
	})

	rec := f.get(t, http.MethodGet, "/achievements")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	f.h.Clock.Set(time.Date(2026, 11, 1, 9, 0, 0, 0, time.UTC))

	rec = f.get(t, http.MethodGet, "/achievements")
	require.Equal(t, http.StatusOK, rec.Code)

	var got []struct {
		ID      string `json:"id"`
		Title   string `json:"title"`
		Heading string `json:"heading"`
		Exiting bool   `json:"exiting"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)

	wantID := "achievement-" + g.ID.String() + "-2026-10"
	assert.Equal(t, wantID, got[0].ID)
	assert.Equal(t, "Goal Met for Food", got[0].Title)
	assert.Equal(t, "Achievement Unlocked!", got[0].Heading)
	assert.False(t, got[0].Exiting)

	assert.Equal(t, http.StatusNoContent, f.get(t, http.MethodDelete, "/achievements/"+wantID).Code)
	assert.Equal(t, http.StatusNotFound, f.get(t, http.MethodDelete, "/achievements/unknown").Code)

	f.h.Clock.Set(time.Date(2026, 11, 1, 9, 0, 1, 0, time.UTC))
	rec = f.get(t, http.MethodGet, "/achievements")
	assert.JSONEq(t, `[]`, rec.Body.String(), "a dismissed notice is gone after the exit grace")
}
