package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finassist/internal/goal"
	"github.com/MrJamesThe3rd/finassist/internal/i18n"
	"github.com/MrJamesThe3rd/finassist/internal/metrics"
	"github.com/MrJamesThe3rd/finassist/internal/session"
	"github.com/MrJamesThe3rd/finassist/internal/transaction"
)

type goalFields struct {
	category transaction.Category
	amount   string
}

type GoalsModel struct {
	CommonModel
	session *session.Session

	cursor int
	form   *huh.Form
	fields *goalFields
	status string
}

func NewGoalsModel(s *session.Session) GoalsModel {
	return GoalsModel{session: s, fields: &goalFields{}}
}

func (m GoalsModel) Title() string {
	return i18n.T(m.session.Language(), i18n.KeyGoals)
}

func (m GoalsModel) ShortHelp() string {
	if m.form != nil {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | a: add | x: remove | ↑/↓: select"
}

func (m GoalsModel) Init() tea.Cmd { return nil }

func (m GoalsModel) progress() []goal.Progress {
	return m.session.Dashboard(metrics.Filter{}).Goals
}

func (m GoalsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if saved, ok := msg.(goalSaveMsg); ok {
		m.form = nil
		m.status = saved.status

		if saved.err != nil {
			m.status = errorStyle.Render(saved.err.Error())
		}

		return m, nil
	}

	if m.form != nil {
		return m.updateForm(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "esc":
		return m, Back
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.progress())-1 {
			m.cursor++
		}
	case "a":
		return m.enterAddMode()
	case "x":
		return m, m.removeCmd()
	}

	return m, nil
}

func (m GoalsModel) enterAddMode() (tea.Model, tea.Cmd) {
	lang := m.session.Language()
	*m.fields = goalFields{category: transaction.CategoryFood}

	cats := goal.Categories()
	options := make([]huh.Option[transaction.Category], len(cats))

	for i, c := range cats {
		options[i] = huh.NewOption(string(c), c)
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[transaction.Category]().
				Key("category").
				Title("Category").
				Options(options...).
				Value(&m.fields.category),

			huh.NewInput().
				Key("amount").
				Title(i18n.T(lang, i18n.KeyGoalAmount)).
				Placeholder("500.00").
				Value(&m.fields.amount).
				Validate(validatePositiveAmount),
		),
	).WithWidth(45).WithShowHelp(false)

	return m, m.form.Init()
}

func (m GoalsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.form = nil
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.addCmd()
}

func (m GoalsModel) View() string {
	lang := m.session.Language()
	progress := m.progress()

	var sb strings.Builder

	sb.WriteString(titleStyle.Render(i18n.T(lang, i18n.KeyGoals)) + "\n\n")

	if len(progress) == 0 {
		sb.WriteString(faintStyle.Render(i18n.T(lang, i18n.KeyNoGoals)))
	}

	for i, p := range progress {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		fmt.Fprintf(&sb, "%s%-14s %s %s%%  %s / %s\n",
			cursor,
			p.Goal.Category,
			Bar(p.Percent, barWidth),
			p.Percent.StringFixed(0),
			i18n.FormatCurrency(p.Spent, lang),
			i18n.FormatCurrency(p.Goal.Amount, lang),
		)
	}

	content := sb.String()

	if m.form != nil {
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panelStyle.Width(48).Render(m.form.View()))
	}

	if m.status != "" {
		content = faintStyle.Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

type goalSaveMsg struct {
	status string
	err    error
}

func (m GoalsModel) addCmd() tea.Cmd {
	s := m.session
	fields := *m.fields

	return func() tea.Msg {
		amount, err := decimal.NewFromString(strings.TrimSpace(fields.amount))
		if err != nil {
			return goalSaveMsg{err: err}
		}

		ctx, cancel := DbCtx()
		defer cancel()

		g, err := s.AddGoal(ctx, fields.category, amount)
		if err != nil {
			return goalSaveMsg{err: fmt.Errorf("%s (%w)", i18n.T(s.Language(), i18n.KeySaveFailed), err)}
		}

		return goalSaveMsg{status: fmt.Sprintf("Goal set for %s.", g.Category)}
	}
}

func (m GoalsModel) removeCmd() tea.Cmd {
	progress := m.progress()
	if m.cursor < 0 || m.cursor >= len(progress) {
		return nil
	}

	s := m.session
	g := progress[m.cursor].Goal

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if err := s.RemoveGoal(ctx, g.ID); err != nil {
			return goalSaveMsg{err: err}
		}

		return goalSaveMsg{status: fmt.Sprintf("Removed goal for %s.", g.Category)}
	}
}
