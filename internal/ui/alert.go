package ui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/five82/shopkeep/internal/catalog"
)

const alertWidth = 56

// alert is a blocking message box; the next key press dismisses it.
type alert struct {
	title string
	lines []string
}

func newAlert(title string, err error) *alert {
	a := &alert{title: title}
	var verr *catalog.ValidationError
	var nerr *catalog.NetworkError
	switch {
	case errors.As(err, &verr) && len(verr.Messages) > 0:
		a.lines = append(a.lines, verr.Messages...)
	case errors.As(err, &nerr):
		a.lines = append(a.lines, nerr.Error())
		if nerr.StatusCode == 0 {
			a.lines = append(a.lines, "Check the network connection and api_url, then press r to retry.")
		}
	default:
		a.lines = append(a.lines, err.Error())
	}
	return a
}

func (m Model) renderAlert() string {
	styles := m.theme.Styles()
	wrap := alertWidth - 8

	var b strings.Builder
	b.WriteString(styles.DangerText.Render(m.alert.title))
	b.WriteString("\n\n")
	for _, line := range m.alert.lines {
		b.WriteString(styles.Text.Render(wordwrap.String(line, wrap)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render("press any key"))

	box := styles.Alert.Width(alertWidth).Render(b.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
