package view

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/finassist/internal/i18n"
	"github.com/MrJamesThe3rd/finassist/internal/session"
)

// SettingsModel lets the user pick the display language.
type SettingsModel struct {
	CommonModel
	session *session.Session

	form *huh.Form
	lang *i18n.Language
	err  error
}

func NewSettingsModel(s *session.Session) SettingsModel {
	lang := s.Language()

	options := make([]huh.Option[i18n.Language], len(i18n.Languages))
	for i, l := range i18n.Languages {
		options[i] = huh.NewOption(l.String(), l)
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[i18n.Language]().
				Key("language").
				Title("Language").
				Options(options...).
				Value(&lang),
		),
	).WithWidth(40).WithShowHelp(false)

	return SettingsModel{session: s, form: form, lang: &lang}
}

func (m SettingsModel) Title() string { return "Settings" }

func (m SettingsModel) ShortHelp() string { return "Enter: save | Esc: back" }

func (m SettingsModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m SettingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m, Back
		}
	case languageSavedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		return m, Back
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	s := m.session
	lang := *m.lang

	return m, func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		return languageSavedMsg{err: s.SetLanguage(ctx, lang)}
	}
}

type languageSavedMsg struct {
	err error
}

func (m SettingsModel) View() string {
	content := m.form.View()
	if m.err != nil {
		content += "\n" + errorStyle.Render(i18n.T(m.session.Language(), i18n.KeySaveFailed))
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}
