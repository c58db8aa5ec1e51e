package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/five82/shopkeep/internal/state"
)

const searchWidth = 40

// renderHeader renders the one-line status bar.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.Surface)
	snap := m.snapshot

	label := func(name, value string) string {
		return bg.Render(name, styles.MutedText) + bg.Spaces(1) + bg.Render(value, styles.Text)
	}

	parts := []string{bg.Render("shopkeep", styles.Logo)}
	if m.busy() {
		what := "loading"
		if m.submitting {
			what = "saving"
		}
		parts = append(parts, m.spinner.View()+bg.Spaces(1)+bg.Render(what, styles.WarningText))
	}
	parts = append(parts, label("Products", fmt.Sprintf("%d/%d", len(snap.View), len(snap.Collection))))
	if snap.Keyword != "" {
		parts = append(parts, label("Search", fmt.Sprintf("%q", snap.Keyword)))
	}
	parts = append(parts,
		label("Sort", snap.Sort.Label()),
		label("Loaded", lastLoadLabel(snap.LastLoaded)),
	)
	if snap.LastError != nil {
		parts = append(parts, bg.Render("● stale", styles.DangerText))
	}

	content := ansi.Truncate(bg.Join(parts, "  "), max(m.width-2, 0), "")
	return styles.Header.Width(m.width).Render(content)
}

// renderCommandBar renders the search box and the sort selector.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(" ")
	b.WriteString(fit(m.search.View(), searchWidth))
	b.WriteString("  ")
	b.WriteString(styles.MutedText.Render("Sort "))
	for _, span := range sortSpans() {
		text := " " + sortLabel(span.option) + " "
		if span.option == m.sortOption {
			b.WriteString(styles.PageActive.Render(text))
		} else {
			b.WriteString(styles.PageItem.Render(text))
		}
	}
	return ansi.Truncate(b.String(), m.width, "")
}

type sortSpan struct {
	option     string
	start, end int
}

// sortSpans returns the screen columns of each sort option in the command
// bar, in the same order renderCommandBar draws them.
func sortSpans() []sortSpan {
	x := 1 + searchWidth + 2 + len("Sort ")
	spans := make([]sortSpan, 0, len(state.SortOptions))
	for _, opt := range state.SortOptions {
		w := ansi.StringWidth(sortLabel(opt)) + 2
		spans = append(spans, sortSpan{option: opt, start: x, end: x + w})
		x += w
	}
	return spans
}

func sortLabel(option string) string {
	s, err := state.ParseSort(option)
	if err != nil {
		return option
	}
	return s.Label()
}
