package view

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/finassist/internal/chat"
	"github.com/MrJamesThe3rd/finassist/internal/i18n"
	"github.com/MrJamesThe3rd/finassist/internal/session"
)

const sendTimeout = time.Minute

var (
	userStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	modelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
)

type ChatModel struct {
	CommonModel
	session *session.Session

	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model

	sending    bool
	suggestion int
	err        error
}

func NewChatModel(s *session.Session) ChatModel {
	lang := s.Language()

	in := textinput.New()
	in.Placeholder = i18n.T(lang, i18n.KeyAskAnything)
	in.CharLimit = 500
	in.Width = 70
	in.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = modelStyle

	m := ChatModel{
		session:  s,
		viewport: viewport.New(80, 18),
		input:    in,
		spinner:  sp,
	}
	m.refresh()

	return m
}

func (m ChatModel) Title() string { return "Chat" }

func (m ChatModel) ShortHelp() string {
	return "Enter: send | Tab: suggestion | PgUp/PgDn: scroll | Esc: back"
}

func (m ChatModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m ChatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.viewport.Width = msg.Width - 4
		m.viewport.Height = msg.Height - 10
		m.input.Width = msg.Width - 8
		m.refresh()

		return m, nil

	case sentMsg:
		m.sending = false
		m.err = msg.err
		m.refresh()

		return m, nil

	case RefreshMsg:
		if m.sending {
			m.refresh()
		}

		return m, nil

	case spinner.TickMsg:
		if !m.sending {
			return m, nil
		}

		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEsc:
			return m, Back
		case tea.KeyTab:
			m.cycleSuggestion()
			return m, nil
		case tea.KeyPgUp, tea.KeyPgDown:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)

			return m, cmd
		case tea.KeyEnter:
			return m.send()
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m *ChatModel) cycleSuggestion() {
	prompts := i18n.SuggestedPrompts(m.session.Language())
	if len(prompts) == 0 {
		return
	}

	m.input.SetValue(prompts[m.suggestion%len(prompts)])
	m.input.CursorEnd()
	m.suggestion++
}

func (m ChatModel) send() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(m.input.Value())
	if text == "" || m.sending {
		return m, nil
	}

	m.input.Reset()
	m.sending = true
	m.err = nil

	s := m.session

	return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()

		_, err := s.SendMessage(ctx, text)

		return sentMsg{err: err}
	})
}

type sentMsg struct {
	err error
}

// refresh re-renders the transcript from the session and keeps it scrolled
// to the bottom.
func (m *ChatModel) refresh() {
	snap := m.session.Snapshot()
	width := max(m.viewport.Width-2, 20)

	var sb strings.Builder

	for _, msg := range snap.Messages {
		label := modelStyle.Render("FinAssist")
		if msg.Role == chat.RoleUser {
			label = userStyle.Render("You")
		}

		sb.WriteString(label + "\n")
		sb.WriteString(lipgloss.NewStyle().Width(width).Render(msg.Text) + "\n\n")
	}

	if len(snap.Messages) <= 1 {
		sb.WriteString(faintStyle.Render(strings.Join(i18n.SuggestedPrompts(snap.Language), " · ")))
	}

	m.viewport.SetContent(sb.String())
	m.viewport.GotoBottom()
}

func (m ChatModel) View() string {
	lang := m.session.Language()

	status := ""

	switch {
	case m.sending:
		status = m.spinner.View() + " " + i18n.T(lang, i18n.KeyThinking)
	case errors.Is(m.err, session.ErrReplyNotSaved):
		status = errorStyle.Render(i18n.T(lang, i18n.KeySaveFailed))
	case m.err != nil:
		status = errorStyle.Render(fmt.Sprintf("%s (%v)", i18n.T(lang, i18n.KeyErrorMessage), m.err))
	}

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			panelStyle.Render(m.viewport.View()),
			status,
			m.input.View(),
		),
	)
}
