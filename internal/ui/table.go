package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/five82/shopkeep/internal/catalog"
)

type columns struct {
	id, title, price, category, image int
}

// tableColumns sizes the columns for an inner width. The image column is
// dropped on narrow terminals.
func tableColumns(inner int) columns {
	c := columns{id: 5, price: 10, category: 16}
	if inner >= 100 {
		c.image = min(40, inner/4)
	}
	n, fixed := 4, c.id+c.price+c.category+c.image
	if c.image > 0 {
		n = 5
	}
	// One leading space plus one gap between columns.
	c.title = max(inner-fixed-n, 8)
	return c
}

func (c columns) row(id, title, price, category, image string) string {
	cells := []string{
		padLeft(truncate(id, c.id), c.id),
		fit(title, c.title),
		padLeft(truncate(price, c.price), c.price),
		fit(category, c.category),
	}
	if c.image > 0 {
		cells = append(cells, fit(image, c.image))
	}
	return " " + strings.Join(cells, " ")
}

func (m Model) renderTable() string {
	styles := m.theme.Styles()
	inner := m.width - 2
	cols := tableColumns(inner)

	lines := []string{styles.ColHeader.Render(cols.row("ID", "Title", "Price", "Category", "Image"))}
	rows := m.projection.Rows
	if len(rows) == 0 {
		lines = append(lines, styles.MutedText.Render(" "+m.emptyMessage()))
	}
	for i, p := range rows {
		line := cols.row(strconv.Itoa(p.ID), singleLine(p.Title), p.PriceLabel(), p.CategoryName(), p.Thumbnail())
		if i == m.cursor && m.form == nil {
			line = styles.Selected.Width(inner).Render(line)
		} else {
			line = styles.Text.Render(line)
		}
		lines = append(lines, line)
	}

	title := fmt.Sprintf("Products · page %s", m.paginator.View())
	if n := len(rows); n > 0 {
		off := m.projection.Offset()
		title += fmt.Sprintf(" · %d-%d of %d", off+1, off+n, m.projection.Total)
	}
	return m.renderTitledBox(title, strings.Join(lines, "\n"), m.width, tableHeight, m.mode == modeBrowse)
}

func (m Model) emptyMessage() string {
	switch {
	case !m.snapshot.Loaded && m.loading:
		return "Loading products..."
	case !m.snapshot.Loaded:
		return "No products loaded. Press r to retry."
	case m.snapshot.Keyword != "":
		return fmt.Sprintf("No products match %q", m.snapshot.Keyword)
	default:
		return "No products"
	}
}

// rowAt maps a screen cell to a row index on the current page.
func (m Model) rowAt(x, y int) (int, bool) {
	idx := y - tableBodyTop
	if idx < 0 || idx >= len(m.projection.Rows) || x < 1 || x >= m.width-1 {
		return 0, false
	}
	return idx, true
}

func (m Model) rowProduct(idx int) catalog.Product {
	return m.projection.Rows[idx]
}

func (m Model) renderStatus() string {
	styles := m.theme.Styles()
	switch {
	case m.status != "":
		return " " + styles.SuccessText.Render(truncate(m.status, m.width-2))
	case m.snapshot.LastError != nil:
		return " " + styles.DangerText.Render(truncate("Last load failed: "+m.snapshot.LastError.Error(), m.width-2))
	case m.mode == modeSearch:
		return " " + styles.MutedText.Render("Typing filters live. enter/esc to leave the search box.")
	}
	return ""
}

func (m Model) renderMain() string {
	lines := make([]string, 0, m.height)
	lines = append(lines, m.renderHeader(), m.renderCommandBar())
	lines = append(lines, strings.Split(m.renderTable(), "\n")...)
	lines = append(lines, m.renderPager(), m.renderStatus(), " "+m.help.ShortHelpView(m.keys.ShortHelp()))
	for len(lines) < m.height {
		lines = append(lines, "")
	}

	if m.tooltip.visible {
		fg, x, y, w := m.renderTooltip()
		overlayAt(lines, fg, m.width, x, y, w)
	}
	return strings.Join(lines, "\n")
}
