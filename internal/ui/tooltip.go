package ui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/wordwrap"

	"github.com/five82/shopkeep/internal/catalog"
)

const tooltipWrap = 44

// tooltip shows a product's full description next to the pointer.
type tooltip struct {
	visible bool
	row     int // index into the page
	x, y    int // anchor in screen cells
	text    string
}

func (t *tooltip) show(row int, p catalog.Product, x, y int) {
	text := strings.TrimSpace(p.Description)
	if text == "" {
		text = "(no description)"
	}
	if updated := p.ParsedUpdatedAt(); !updated.IsZero() {
		text += "\n\nUpdated " + updated.Format("2006-01-02")
	}
	*t = tooltip{visible: true, row: row, x: x, y: y, text: text}
}

func (t *tooltip) hide() {
	*t = tooltip{}
}

// renderTooltip returns the styled box and its top-left position, shifted so
// the box stays on screen.
func (m Model) renderTooltip() (lines []string, x, y, width int) {
	box := m.theme.Styles().Tooltip.Render(wordwrap.String(m.tooltip.text, tooltipWrap))
	lines = strings.Split(box, "\n")
	for _, l := range lines {
		width = max(width, ansi.StringWidth(l))
	}
	height := len(lines)

	x, y = m.tooltip.x+2, m.tooltip.y+1
	if x+width > m.width {
		x = max(m.width-width, 0)
	}
	if y+height > m.height {
		// Flip above the pointer when there is no room below.
		y = max(m.tooltip.y-height, 0)
	}
	return lines, x, y, width
}

// overlayAt splices fg over bg starting at column x, row y. bg lines are
// assumed to be w cells wide.
func overlayAt(bg, fg []string, w, x, y, fgW int) {
	if fgW <= 0 {
		return
	}
	x, y = max(x, 0), max(y, 0)
	for i := 0; i < len(fg) && y+i < len(bg); i++ {
		line := bg[y+i]
		left := ansi.Cut(line, 0, x)
		if n := ansi.StringWidth(left); n < x {
			left += strings.Repeat(" ", x-n)
		}
		right := ansi.Cut(line, x+fgW, w)

		seg := fg[i]
		if n := ansi.StringWidth(seg); n < fgW {
			seg += strings.Repeat(" ", fgW-n)
		} else if n > fgW {
			seg = ansi.Cut(seg, 0, fgW)
		}
		bg[y+i] = left + seg + right
	}
}
