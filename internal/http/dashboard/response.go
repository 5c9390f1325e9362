package dashboard

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finassist/internal/goal"
	"github.com/MrJamesThe3rd/finassist/internal/i18n"
	"github.com/MrJamesThe3rd/finassist/internal/investment"
	"github.com/MrJamesThe3rd/finassist/internal/news"
	"github.com/MrJamesThe3rd/finassist/internal/session"
	"github.com/MrJamesThe3rd/finassist/internal/transaction"
)

type amount struct {
	Value   decimal.Decimal `json:"value"`
	Display string          `json:"display"`
}

func money(d decimal.Decimal, lang i18n.Language) amount {
	return amount{Value: d, Display: i18n.FormatCurrency(d, lang)}
}

type spendingResponse struct {
	Category   transaction.Category `json:"category"`
	Total      amount               `json:"total"`
	Percentage decimal.Decimal      `json:"percentage"`
}

type monthResponse struct {
	Year    int    `json:"year"`
	Month   int    `json:"month"`
	Label   string `json:"label"`
	Income  amount `json:"income"`
	Expense amount `json:"expense"`
}

type goalResponse struct {
	ID         uuid.UUID            `json:"id"`
	Category   transaction.Category `json:"category"`
	Amount     amount               `json:"amount"`
	Spent      amount               `json:"spent"`
	Percent    decimal.Decimal      `json:"percent"`
	OverBudget bool                 `json:"over_budget"`
}

type investmentResponse struct {
	ID       uuid.UUID       `json:"id"`
	Name     string          `json:"name"`
	Type     investment.Type `json:"type"`
	Value    amount          `json:"value"`
	Quantity decimal.Decimal `json:"quantity"`
}

type transactionResponse struct {
	ID          uuid.UUID            `json:"id"`
	Date        string               `json:"date"`
	DateLabel   string               `json:"date_label"`
	Description string               `json:"description"`
	Amount      amount               `json:"amount"`
	Category    transaction.Category `json:"category"`
}

type newsResponse struct {
	Items   []news.Item `json:"items"`
	Loading bool        `json:"loading"`
}

type dashboardResponse struct {
	Language     i18n.Language         `json:"language"`
	NetWorth     amount                `json:"net_worth"`
	Spending     []spendingResponse    `json:"spending"`
	Annual       []monthResponse       `json:"annual"`
	Goals        []goalResponse        `json:"goals"`
	Investments  []investmentResponse  `json:"investments"`
	Transactions []transactionResponse `json:"transactions"`
	News         newsResponse          `json:"news"`
	Thinking     bool                  `json:"thinking"`
}

func toDashboardResponse(d session.Dashboard) dashboardResponse {
	lang := d.Language

	resp := dashboardResponse{
		Language:     lang,
		NetWorth:     money(d.NetWorth, lang),
		Spending:     make([]spendingResponse, len(d.Spending)),
		Annual:       make([]monthResponse, len(d.Annual)),
		Goals:        make([]goalResponse, len(d.Goals)),
		Investments:  make([]investmentResponse, len(d.Investments)),
		Transactions: make([]transactionResponse, len(d.Transactions)),
		News:         newsResponse{Items: d.News, Loading: d.FetchingNews},
		Thinking:     d.Thinking,
	}

	if resp.News.Items == nil {
		resp.News.Items = []news.Item{}
	}

	for i, s := range d.Spending {
		resp.Spending[i] = spendingResponse{Category: s.Category, Total: money(s.Total, lang), Percentage: s.Percentage}
	}

	for i, m := range d.Annual {
		resp.Annual[i] = monthResponse{
			Year:    m.Year,
			Month:   int(m.Month),
			Label:   m.Label,
			Income:  money(m.Income, lang),
			Expense: money(m.Expense, lang),
		}
	}

	for i, p := range d.Goals {
		resp.Goals[i] = toGoalResponse(p, lang)
	}

	for i, inv := range d.Investments {
		resp.Investments[i] = investmentResponse{
			ID:       inv.ID,
			Name:     inv.Name,
			Type:     inv.Type,
			Value:    money(inv.Value, lang),
			Quantity: inv.Quantity,
		}
	}

	for i, tx := range d.Transactions {
		resp.Transactions[i] = transactionResponse{
			ID:          tx.ID,
			Date:        tx.Date.Format(time.DateOnly),
			DateLabel:   i18n.FormatDate(tx.Date, lang),
			Description: tx.Description,
			Amount:      money(tx.Amount, lang),
			Category:    tx.Category,
		}
	}

	return resp
}

func toGoalResponse(p goal.Progress, lang i18n.Language) goalResponse {
	return goalResponse{
		ID:         p.Goal.ID,
		Category:   p.Goal.Category,
		Amount:     money(p.Goal.Amount, lang),
		Spent:      money(p.Spent, lang),
		Percent:    p.Percent,
		OverBudget: p.OverBudget,
	}
}

type achievementResponse struct {
	ID          string    `json:"id"`
	GoalID      uuid.UUID `json:"goal_id"`
	Title       string    `json:"title"`
	Heading     string    `json:"heading"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Exiting     bool      `json:"exiting"`
}

func toAchievementResponse(n goal.Notice, lang i18n.Language) achievementResponse {
	return achievementResponse{
		ID:          n.ID,
		GoalID:      n.GoalID,
		Title:       n.Title,
		Heading:     i18n.T(lang, i18n.KeyAchievementUnlocked),
		Description: n.Description,
		Date:        n.Date,
		Exiting:     n.Exiting,
	}
}
