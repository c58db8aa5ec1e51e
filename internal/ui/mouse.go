package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// handleMouse maps pointer events onto the fixed layout: hovering a row shows
// its description, clicking a row opens it, clicking a page or sort option
// selects it, and the wheel moves the cursor.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if !m.mouse || m.alert != nil || m.showHelp || m.form != nil {
		return m, nil
	}
	row, onRow := m.rowAt(msg.X, msg.Y)

	switch {
	case msg.Action == tea.MouseActionMotion && msg.Button == tea.MouseButtonNone:
		if onRow {
			m.tooltip.show(row, m.rowProduct(row), msg.X, msg.Y)
		} else {
			m.tooltip.hide()
		}

	case msg.Button == tea.MouseButtonWheelUp:
		m.cursor = max(m.cursor-1, 0)
	case msg.Button == tea.MouseButtonWheelDown:
		m.cursor = min(m.cursor+1, max(len(m.projection.Rows)-1, 0))

	case msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress:
		m.tooltip.hide()
		switch {
		case onRow:
			m.cursor = row
			return m, m.openEdit(m.rowProduct(row).ID)
		case msg.Y == pagerLine:
			if page, ok := pageAt(m.projection.TotalPages, msg.X); ok {
				m.setPage(page)
			}
		case msg.Y == tableTop-1:
			for _, s := range sortSpans() {
				if msg.X >= s.start && msg.X < s.end {
					m.applySort(s.option)
					break
				}
			}
		}
	}
	return m, nil
}
