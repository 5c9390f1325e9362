package view

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/finassist/internal/i18n"
	"github.com/MrJamesThe3rd/finassist/internal/importer"
	"github.com/MrJamesThe3rd/finassist/internal/session"
	"github.com/MrJamesThe3rd/finassist/internal/transaction"
)

const importTimeout = 2 * time.Minute

type importState int

const (
	importStateFilePick importState = iota
	importStateImporting
	importStateResult
)

type ImportModel struct {
	CommonModel
	session       *session.Session
	importService *importer.Service

	state      importState
	filePicker filepicker.Model
	table      table.Model

	status string
	err    error
}

func NewImportModel(s *session.Session, impSvc *importer.Service) ImportModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.AllowedTypes = []string{".csv", ".txt"}
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.SetHeight(15)

	return ImportModel{
		session:       s,
		importService: impSvc,
		filePicker:    fp,
		table:         newTransactionTable(10),
	}
}

func (m ImportModel) Title() string { return "Import Transactions" }

func (m ImportModel) ShortHelp() string {
	if m.state == importStateResult {
		return "Esc: import another"
	}

	return "Esc: back | Enter: select"
}

func (m ImportModel) Init() tea.Cmd {
	return m.filePicker.Init()
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m.handleEsc()
		}

	case importResultMsg:
		m.state = importStateResult
		if msg.err != nil {
			m.err = msg.err
			m.status = fmt.Sprintf("Error: %v", msg.err)

			return m, nil
		}

		lang := m.session.Language()
		m.status = fmt.Sprintf("Imported %d transactions.", len(msg.txs))
		m.table.SetRows(transactionRows(msg.txs, lang))

		return m, nil
	}

	if m.state != importStateFilePick {
		return m, nil
	}

	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
		m.state = importStateImporting
		m.status = fmt.Sprintf("Importing from %s...", path)

		return m, m.importCmd(path)
	}

	return m, cmd
}

func (m ImportModel) handleEsc() (tea.Model, tea.Cmd) {
	if m.state == importStateResult {
		m.state = importStateFilePick
		m.err = nil
		m.status = ""

		return m, m.filePicker.Init()
	}

	return m, Back
}

func (m ImportModel) View() string {
	switch m.state {
	case importStateFilePick:
		return lipgloss.NewStyle().Padding(1).Render(
			"Select a bank statement (CSV):\n\n" + m.filePicker.View(),
		)
	case importStateImporting:
		return lipgloss.NewStyle().Padding(2).Render(m.status)
	case importStateResult:
		return m.viewResult()
	}

	return ""
}

func (m ImportModel) viewResult() string {
	style := lipgloss.NewStyle().Padding(2)
	if m.err != nil {
		return style.Render(errorStyle.Render(m.status) + "\n\n(Esc to go back)")
	}

	return style.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			successStyle.Render(m.status),
			"",
			m.table.View(),
			"",
			"(Esc to go back)",
		),
	)
}

type importResultMsg struct {
	txs []*transaction.Transaction
	err error
}

func (m ImportModel) importCmd(path string) tea.Cmd {
	s := m.session
	svc := m.importService

	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return importResultMsg{err: err}
		}
		defer f.Close()

		ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
		defer cancel()

		rows, err := svc.Import(ctx, s.UserID(), f)
		if err != nil {
			return importResultMsg{err: err}
		}

		ins := make([]session.TransactionInput, len(rows))
		for i, row := range rows {
			ins[i] = session.TransactionInput{
				Date:        row.Date,
				Description: row.Description,
				Amount:      row.Amount,
				Category:    row.Category,
			}
		}

		txs, err := s.ImportTransactions(ctx, ins)
		if err != nil {
			return importResultMsg{err: fmt.Errorf("%s: %w", i18n.T(s.Language(), i18n.KeySaveFailed), err)}
		}

		return importResultMsg{txs: txs}
	}
}
