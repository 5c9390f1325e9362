package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/finassist/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/finassist/internal/app"
	"github.com/MrJamesThe3rd/finassist/internal/config"
	"github.com/MrJamesThe3rd/finassist/internal/goal"
	"github.com/MrJamesThe3rd/finassist/internal/i18n"
	"github.com/MrJamesThe3rd/finassist/internal/importer"
	"github.com/MrJamesThe3rd/finassist/internal/session"
)

const tickInterval = time.Second

type model struct {
	session       *session.Session
	importService *importer.Service

	currentView View
	active      view.View
	notices     []goal.Notice
}

type View int

const (
	ViewMenu         View = 0
	ViewDashboard    View = 1
	ViewChat         View = 2
	ViewTransactions View = 3
	ViewGoals        View = 4
	ViewImport       View = 5
	ViewExport       View = 6
	ViewSettings     View = 7
)

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func initialModel(a *app.App, cfg *config.Config) model {
	userID, err := cfg.TUIUser()
	if err != nil {
		slog.Error("invalid TUI user", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	s, err := a.Sessions.Get(ctx, userID)
	if err != nil {
		slog.Error("failed to load session", "user_id", userID, "error", err)
		os.Exit(1)
	}

	return model{
		session:       s,
		importService: a.Importer,
		currentView:   ViewMenu,
	}
}

func (m model) Init() tea.Cmd {
	return tick()
}

func (m model) open(v View) (tea.Model, tea.Cmd) {
	switch v {
	case ViewDashboard:
		m.active = view.NewDashboardModel(m.session)
	case ViewChat:
		m.active = view.NewChatModel(m.session)
	case ViewTransactions:
		m.active = view.NewListModel(m.session)
	case ViewGoals:
		m.active = view.NewGoalsModel(m.session)
	case ViewImport:
		m.active = view.NewImportModel(m.session, m.importService)
	case ViewExport:
		m.active = view.NewExportModel(m.session)
	case ViewSettings:
		m.active = view.NewSettingsModel(m.session)
	default:
		return m, nil
	}

	m.currentView = v

	return m, m.active.Init()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.notices = m.session.Achievements()

		if m.active == nil {
			return m, tick()
		}

		next, cmd := m.active.Update(view.RefreshMsg{})
		m.active = next.(view.View)

		return m, tea.Batch(cmd, tick())

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "ctrl+d":
			if len(m.notices) > 0 {
				m.session.DismissAchievement(m.notices[0].ID)
				m.notices = m.session.Achievements()
			}

			return m, nil
		}

		if m.currentView == ViewMenu {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "1", "2", "3", "4", "5", "6", "7":
				return m.open(View(msg.String()[0] - '0'))
			}

			return m, nil
		}

	case view.BackMsg:
		m.currentView = ViewMenu
		m.active = nil

		return m, nil
	}

	if m.active == nil {
		return m, nil
	}

	next, cmd := m.active.Update(msg)
	m.active = next.(view.View)

	return m, cmd
}

func (m model) View() string {
	lang := m.session.Language()

	body := lipgloss.NewStyle().Padding(2).Render(
		"FinAssist TUI\n\n" +
			"1. " + i18n.T(lang, i18n.KeyNetWorth) + "\n" +
			"2. Chat\n" +
			"3. " + i18n.T(lang, i18n.KeyTransactions) + "\n" +
			"4. " + i18n.T(lang, i18n.KeyGoals) + "\n" +
			"5. Import Transactions\n" +
			"6. Export Transactions\n" +
			"7. Settings\n\n" +
			"q. Quit",
	)

	if m.active != nil {
		body = lipgloss.JoinVertical(lipgloss.Left,
			m.active.View(),
			lipgloss.NewStyle().Faint(true).PaddingLeft(1).Render(m.active.ShortHelp()),
		)
	}

	if toasts := view.Toasts(m.notices, lang); toasts != "" {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, "  ", toasts+"\n"+lipgloss.NewStyle().Faint(true).Render("ctrl+d: dismiss"))
	}

	return body
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	a, err := app.New(context.Background(), cfg)
	if err != nil {
		slog.Error("failed to start", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	p := tea.NewProgram(initialModel(a, cfg), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
