package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

const pagerPrefix = " Pages "

type pageSpan struct {
	page       int
	start, end int // [start, end) screen columns
}

// pageSpans lays out one clickable item per page, 1..total.
func pageSpans(total int) []pageSpan {
	spans := make([]pageSpan, 0, total)
	x := len(pagerPrefix)
	for p := 1; p <= total; p++ {
		w := len(strconv.Itoa(p)) + 2
		spans = append(spans, pageSpan{page: p, start: x, end: x + w})
		x += w + 1
	}
	return spans
}

// pageAt maps a column on the pager line to a page number.
func pageAt(total, x int) (int, bool) {
	for _, s := range pageSpans(total) {
		if x >= s.start && x < s.end {
			return s.page, true
		}
	}
	return 0, false
}

// renderPager renders the pagination control with the active page
// highlighted.
func (m Model) renderPager() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.MutedText.Render(pagerPrefix))
	for i, s := range pageSpans(m.projection.TotalPages) {
		if i > 0 {
			b.WriteString(" ")
		}
		item := " " + strconv.Itoa(s.page) + " "
		if s.page == m.projection.Page {
			b.WriteString(styles.PageActive.Render(item))
		} else {
			b.WriteString(styles.PageItem.Render(item))
		}
	}
	return ansi.Truncate(b.String(), m.width, "…")
}
