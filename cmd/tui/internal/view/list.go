package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finassist/internal/i18n"
	"github.com/MrJamesThe3rd/finassist/internal/metrics"
	"github.com/MrJamesThe3rd/finassist/internal/session"
	"github.com/MrJamesThe3rd/finassist/internal/transaction"
)

type listState int

const (
	listStateBrowse listState = iota
	listStateAdd
)

var typeFilters = []metrics.TypeFilter{metrics.TypeAll, metrics.TypeExpense, metrics.TypeIncome}

// txFields holds the add form bindings. It lives behind a pointer so huh
// writes survive the model being copied between updates.
type txFields struct {
	description string
	amount      string
	expense     bool
	category    transaction.Category
}

type ListModel struct {
	CommonModel
	session *session.Session

	state  listState
	table  table.Model
	txs    []*transaction.Transaction
	form   *huh.Form
	fields *txFields

	typeFilterIdx     int
	categoryFilterIdx int

	status string
}

func newTransactionTable(height int) table.Model {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Type", Width: 10},
		{Title: "Amount", Width: 16},
		{Title: "Category", Width: 16},
		{Title: "Description", Width: 36},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// transactionRows renders plain cells; the table applies its own styles.
func transactionRows(txs []*transaction.Transaction, lang i18n.Language) []table.Row {
	rows := make([]table.Row, 0, len(txs))

	for _, tx := range txs {
		rows = append(rows, table.Row{
			i18n.FormatDate(tx.Date, lang),
			directionLabel(tx, lang),
			i18n.FormatCurrency(tx.Amount, lang),
			string(tx.Category),
			tx.Description,
		})
	}

	return rows
}

func NewListModel(s *session.Session) ListModel {
	m := ListModel{
		session: s,
		table:   newTransactionTable(15),
		fields:  &txFields{},
	}
	m.refreshTable()

	return m
}

func (m ListModel) Title() string {
	return i18n.T(m.session.Language(), i18n.KeyTransactions)
}

func (m ListModel) ShortHelp() string {
	if m.state == listStateAdd {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | a: add | x: delete | t: type filter | c: category filter | r: refresh"
}

func (m ListModel) Init() tea.Cmd {
	return nil
}

func (m ListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case listSaveMsg:
		m.state = listStateBrowse
		m.form = nil
		m.table.Focus()
		m.status = msg.status

		if msg.err != nil {
			m.status = errorStyle.Render(msg.err.Error())
		}

		m.refreshTable()

		return m, nil

	case RefreshMsg:
		if m.state == listStateBrowse {
			m.refreshTable()
		}

		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	if m.state == listStateAdd {
		return m.updateAdd(msg)
	}

	return m.updateBrowse(msg)
}

func (m ListModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.refreshTable()
			return m, nil
		case "a":
			return m.enterAddMode()
		case "x":
			return m, m.deleteCmd()
		case "t":
			m.typeFilterIdx = (m.typeFilterIdx + 1) % len(typeFilters)
			m.refreshTable()

			return m, nil
		case "c":
			m.categoryFilterIdx = (m.categoryFilterIdx + 1) % (len(transaction.Categories) + 1)
			m.refreshTable()

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ListModel) enterAddMode() (tea.Model, tea.Cmd) {
	lang := m.session.Language()
	*m.fields = txFields{expense: true, category: transaction.CategoryOther}

	categories := make([]huh.Option[transaction.Category], len(transaction.Categories))
	for i, c := range transaction.Categories {
		categories[i] = huh.NewOption(string(c), c)
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("description").
				Title("Description").
				Value(&m.fields.description).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("description cannot be empty")
					}

					return nil
				}),

			huh.NewInput().
				Key("amount").
				Title(i18n.T(lang, i18n.KeyGoalAmount)).
				Placeholder("75.00").
				Value(&m.fields.amount).
				Validate(validatePositiveAmount),

			huh.NewConfirm().
				Key("expense").
				Affirmative(i18n.T(lang, i18n.KeyExpense)).
				Negative(i18n.T(lang, i18n.KeyIncome)).
				Value(&m.fields.expense),

			huh.NewSelect[transaction.Category]().
				Key("category").
				Title("Category").
				Options(categories...).
				Value(&m.fields.category),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = listStateAdd
	m.table.Blur()

	return m, m.form.Init()
}

func validatePositiveAmount(s string) error {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("enter a number like 75.00")
	}

	if !d.IsPositive() {
		return fmt.Errorf("amount must be positive")
	}

	return nil
}

func (m ListModel) updateAdd(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = listStateBrowse
		m.form = nil
		m.table.Focus()

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

func (m ListModel) filter() metrics.Filter {
	f := metrics.Filter{Type: typeFilters[m.typeFilterIdx]}
	if m.categoryFilterIdx > 0 {
		f.Category = transaction.Categories[m.categoryFilterIdx-1]
	}

	return f
}

func (m *ListModel) refreshTable() {
	dash := m.session.Dashboard(m.filter())
	m.txs = dash.Transactions
	m.table.SetRows(transactionRows(m.txs, dash.Language))
}

func (m ListModel) View() string {
	lang := m.session.Language()
	f := m.filter()

	category := i18n.T(lang, i18n.KeyAll)
	if f.Category != "" {
		category = string(f.Category)
	}

	header := fmt.Sprintf(
		"Filter: [t] Type: %s | [c] Category: %s",
		activeStyle(string(f.Type)),
		activeStyle(category),
	)

	body := m.table.View()
	if len(m.txs) == 0 {
		body = faintStyle.Render(i18n.T(lang, i18n.KeyNoTransactions))
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			Render(body),
	)

	if m.state == listStateAdd && m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render("New Transaction\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = faintStyle.Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}

type listSaveMsg struct {
	status string
	err    error
}

func (m ListModel) addCmd() tea.Cmd {
	s := m.session
	fields := *m.fields

	return func() tea.Msg {
		amount, err := decimal.NewFromString(strings.TrimSpace(fields.amount))
		if err != nil {
			return listSaveMsg{err: err}
		}

		if fields.expense {
			amount = amount.Neg()
		}

		ctx, cancel := DbCtx()
		defer cancel()

		tx, err := s.AddTransaction(ctx, session.TransactionInput{
			Description: fields.description,
			Amount:      amount,
			Category:    fields.category,
		})
		if err != nil {
			return listSaveMsg{err: fmt.Errorf("%s (%w)", i18n.T(s.Language(), i18n.KeySaveFailed), err)}
		}

		return listSaveMsg{status: fmt.Sprintf("Added %s.", tx.Description)}
	}
}

func (m ListModel) deleteCmd() tea.Cmd {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.txs) {
		return nil
	}

	s := m.session
	tx := m.txs[idx]

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if err := s.DeleteTransaction(ctx, tx.ID); err != nil {
			return listSaveMsg{err: err}
		}

		return listSaveMsg{status: fmt.Sprintf("Deleted %s.", tx.Description)}
	}
}
