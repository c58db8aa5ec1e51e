package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// renderTitledBox draws content inside a border with title embedded in the
// top edge: ┌─── Title ───┐. The result is exactly width by height cells.
func (m Model) renderTitledBox(title, content string, width, height int, focused bool) string {
	borderColor, bgColor := m.theme.Border, m.theme.SurfaceAlt
	if focused {
		borderColor, bgColor = m.theme.BorderFocus, m.theme.FocusBg
	}
	bg := NewBgStyle(bgColor)
	border := lipgloss.NewStyle().Foreground(lipgloss.Color(borderColor))
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.Text))

	inner := max(width-2, 0)
	title = truncate(title, max(inner-4, 0))
	titleLen := ansi.StringWidth(title)
	left := max((inner-titleLen-2)/2, 0)
	right := max(inner-titleLen-2-left, 0)

	top := bg.Render("┌"+strings.Repeat("─", left), border) +
		bg.Render(" "+title+" ", titleStyle) +
		bg.Render(strings.Repeat("─", right)+"┐", border)
	bottom := bg.Render("└"+strings.Repeat("─", inner)+"┘", border)

	body := lipgloss.NewStyle().Width(inner).MaxWidth(inner).Background(lipgloss.Color(bgColor))
	lines := strings.Split(content, "\n")
	rows := make([]string, 0, height)
	rows = append(rows, top)
	for i := 0; i < height-2; i++ {
		var line string
		if i < len(lines) {
			line = ansi.Truncate(lines[i], inner, "")
		}
		rows = append(rows, bg.Render("│", border)+body.Render(line)+bg.Render("│", border))
	}
	rows = append(rows, bottom)
	return strings.Join(rows, "\n")
}
