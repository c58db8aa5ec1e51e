package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderHelp renders the key binding overlay.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Keyboard & mouse"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 30)))
	b.WriteString("\n\n")
	b.WriteString(m.help.FullHelpView(m.keys.FullHelp()))
	b.WriteString("\n\n")
	if m.mouse {
		b.WriteString(styles.MutedText.Render("Click a row to edit, a page number to jump.\nHover a row to read its description."))
	} else {
		b.WriteString(styles.MutedText.Render("Mouse support is off (prefs: mouse = false)."))
	}
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("Themes: " + strings.Join(ThemeNames(), ", ") + " (current " + m.theme.Name + ")"))

	box := styles.Modal.Render(b.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}
