package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finassist/internal/i18n"
	"github.com/MrJamesThe3rd/finassist/internal/metrics"
	"github.com/MrJamesThe3rd/finassist/internal/session"
)

const barWidth = 20

// DashboardModel renders the derived metrics straight from the session on
// every frame, so it holds no copies of its own.
type DashboardModel struct {
	CommonModel
	session *session.Session
}

func NewDashboardModel(s *session.Session) DashboardModel {
	return DashboardModel{session: s}
}

func (m DashboardModel) Title() string { return "FinAssist" }

func (m DashboardModel) ShortHelp() string { return "Esc: back" }

func (m DashboardModel) Init() tea.Cmd { return nil }

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	return m, nil
}

func (m DashboardModel) View() string {
	d := m.session.Dashboard(metrics.Filter{})

	left := lipgloss.JoinVertical(lipgloss.Left,
		m.netWorth(d),
		m.spending(d),
		m.goals(d),
	)

	right := lipgloss.JoinVertical(lipgloss.Left,
		m.annual(d),
		m.investments(d),
		m.news(d),
	)

	return lipgloss.NewStyle().Padding(1).Render(lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right))
}

func (m DashboardModel) netWorth(d session.Dashboard) string {
	body := titleStyle.Render(i18n.T(d.Language, i18n.KeyNetWorth)) + "\n" + FormatAmount(d.NetWorth, d.Language)
	if d.Thinking {
		body += "\n" + faintStyle.Render(i18n.T(d.Language, i18n.KeyThinking))
	}

	return panelStyle.Render(body)
}

func (m DashboardModel) spending(d session.Dashboard) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render(i18n.T(d.Language, i18n.KeySpendingAnalysis)))

	if len(d.Spending) == 0 {
		sb.WriteString("\n" + faintStyle.Render(i18n.T(d.Language, i18n.KeyNoSpendingData)))
		return panelStyle.Render(sb.String())
	}

	for _, s := range d.Spending {
		fmt.Fprintf(&sb, "\n%-14s %s %6s%% %s",
			s.Category,
			Bar(s.Percentage, barWidth),
			s.Percentage.StringFixed(1),
			i18n.FormatCurrency(s.Total, d.Language),
		)
	}

	return panelStyle.Render(sb.String())
}

func (m DashboardModel) goals(d session.Dashboard) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render(i18n.T(d.Language, i18n.KeyGoals)))

	if len(d.Goals) == 0 {
		sb.WriteString("\n" + faintStyle.Render(i18n.T(d.Language, i18n.KeyNoGoals)))
		return panelStyle.Render(sb.String())
	}

	for _, p := range d.Goals {
		bar := Bar(p.Percent, barWidth)
		if p.OverBudget {
			bar = expenseStyle.Render(bar)
		}

		fmt.Fprintf(&sb, "\n%-14s %s %s / %s",
			p.Goal.Category,
			bar,
			i18n.FormatCurrency(p.Spent, d.Language),
			i18n.FormatCurrency(p.Goal.Amount, d.Language),
		)
	}

	return panelStyle.Render(sb.String())
}

func (m DashboardModel) annual(d session.Dashboard) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render(i18n.T(d.Language, i18n.KeyAnnualOverview)))

	peak := decimal.Zero
	for _, mt := range d.Annual {
		peak = decimal.Max(peak, mt.Income, mt.Expense)
	}

	for _, mt := range d.Annual {
		fmt.Fprintf(&sb, "\n%-10s %s %s",
			mt.Label,
			incomeStyle.Render(Bar(share(mt.Income, peak), barWidth/2)),
			expenseStyle.Render(Bar(share(mt.Expense, peak), barWidth/2)),
		)
	}

	sb.WriteString("\n" + faintStyle.Render(fmt.Sprintf("%s | %s",
		incomeStyle.Render(i18n.T(d.Language, i18n.KeyIncome)),
		expenseStyle.Render(i18n.T(d.Language, i18n.KeyExpense)),
	)))

	return panelStyle.Render(sb.String())
}

func share(v, peak decimal.Decimal) decimal.Decimal {
	if peak.IsZero() {
		return decimal.Zero
	}

	return v.Div(peak).Mul(decimal.NewFromInt(100))
}

func (m DashboardModel) investments(d session.Dashboard) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render(i18n.T(d.Language, i18n.KeyInvestments)))

	if len(d.Investments) == 0 {
		sb.WriteString("\n" + faintStyle.Render(i18n.T(d.Language, i18n.KeyNoInvestments)))
		return panelStyle.Render(sb.String())
	}

	for _, inv := range d.Investments {
		fmt.Fprintf(&sb, "\n%s (%s) %s %s · %s",
			inv.Name,
			inv.Type,
			inv.Quantity.String(),
			i18n.T(d.Language, i18n.KeyUnits),
			i18n.FormatCurrency(inv.Value, d.Language),
		)
	}

	return panelStyle.Render(sb.String())
}

func (m DashboardModel) news(d session.Dashboard) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render(i18n.T(d.Language, i18n.KeyMarketNews)))

	switch {
	case d.FetchingNews:
		sb.WriteString("\n" + faintStyle.Render(i18n.T(d.Language, i18n.KeyLoadingNews)))
	case len(d.News) == 0:
		sb.WriteString("\n" + faintStyle.Render(i18n.T(d.Language, i18n.KeyNoNews)))
	}

	for _, item := range d.News {
		fmt.Fprintf(&sb, "\n%s\n  %s %s",
			lipgloss.NewStyle().Bold(true).Render(item.Headline),
			item.Summary,
			faintStyle.Render("("+item.Source+")"),
		)
	}

	return panelStyle.Width(60).Render(sb.String())
}
