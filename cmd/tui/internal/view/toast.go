package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/finassist/internal/goal"
	"github.com/MrJamesThe3rd/finassist/internal/i18n"
)

var toastStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("220")).
	Padding(0, 1)

// Toasts renders the active achievement notices, newest last. Exiting notices
// are drawn faint for their last moment on screen.
func Toasts(notices []goal.Notice, lang i18n.Language) string {
	if len(notices) == 0 {
		return ""
	}

	parts := make([]string, 0, len(notices))

	for _, n := range notices {
		body := lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220")).Render("🏆 "+i18n.T(lang, i18n.KeyAchievementUnlocked)),
			n.Title,
			faintStyle.Render(n.Description),
		)

		style := toastStyle
		if n.Exiting {
			style = style.Faint(true)
		}

		parts = append(parts, style.Render(body))
	}

	return strings.Join(parts, "\n")
}
