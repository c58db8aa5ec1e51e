package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestPageSpansAreContiguousAndClickable(t *testing.T) {
	spans := pageSpans(12)
	if len(spans) != 12 {
		t.Fatalf("pageSpans(12) returned %d spans, want 12", len(spans))
	}
	for i, s := range spans {
		if s.page != i+1 {
			t.Fatalf("span %d page = %d, want %d", i, s.page, i+1)
		}
		if got, ok := pageAt(12, s.start); !ok || got != s.page {
			t.Fatalf("pageAt(%d) = %d,%v, want %d", s.start, got, ok, s.page)
		}
		if i > 0 && s.start != spans[i-1].end+1 {
			t.Fatalf("span %d starts at %d, want one gap after %d", i, s.start, spans[i-1].end)
		}
	}
	if _, ok := pageAt(12, 0); ok {
		t.Fatalf("pageAt on the prefix should miss")
	}
}

func TestPagerRenderMatchesSpans(t *testing.T) {
	m := Model{theme: GetTheme("Slate"), width: 120}
	m.projection.TotalPages = 3
	m.projection.Page = 2
	line := ansi.Strip(m.renderPager())
	for _, s := range pageSpans(3) {
		got := strings.TrimSpace(line[s.start:s.end])
		if got != string(rune('0'+s.page)) {
			t.Fatalf("pager cells %d..%d = %q, want page %d", s.start, s.end, got, s.page)
		}
	}
}

func TestSortSpansMatchCommandBar(t *testing.T) {
	m := New(Options{})
	m.width = 160
	line := ansi.Strip(m.renderCommandBar())
	for _, s := range sortSpans() {
		got := strings.TrimSpace(ansi.Cut(line, s.start, s.end))
		if got != sortLabel(s.option) {
			t.Fatalf("sort cells %d..%d = %q, want %q", s.start, s.end, got, sortLabel(s.option))
		}
	}
}

func TestOverlayAtSplicesAndPads(t *testing.T) {
	bg := []string{"aaaaaaaaaa", "bbbbbbbbbb", "cc"}
	overlayAt(bg, []string{"XY", "Z"}, 10, 3, 1, 2)
	if bg[1] != "bbbXYbbbbb" {
		t.Fatalf("row 1 = %q", bg[1])
	}
	if bg[2] != "cc Z " {
		t.Fatalf("row 2 = %q", bg[2])
	}
	if bg[0] != "aaaaaaaaaa" {
		t.Fatalf("row 0 changed: %q", bg[0])
	}
}

func TestFitAndTruncate(t *testing.T) {
	cases := []struct {
		in    string
		width int
		want  string
	}{
		{"abc", 5, "abc  "},
		{"abcdef", 4, "abc…"},
		{"  abc  ", 3, "abc"},
		{"abc", 0, ""},
	}
	for _, tc := range cases {
		if got := fit(tc.in, tc.width); got != tc.want {
			t.Fatalf("fit(%q, %d) = %q, want %q", tc.in, tc.width, got, tc.want)
		}
	}
	if got := singleLine("a\n  b\tc"); got != "a b c" {
		t.Fatalf("singleLine = %q", got)
	}
}

func TestTableColumnsFillInnerWidth(t *testing.T) {
	for _, inner := range []int{58, 98, 118, 200} {
		c := tableColumns(inner)
		row := c.row("1", "t", "$1", "c", "i")
		if got := ansi.StringWidth(row); got != inner {
			t.Fatalf("row width for inner %d = %d", inner, got)
		}
	}
}

func TestThemes(t *testing.T) {
	names := ThemeNames()
	if len(names) != 3 || names[0] != "Nightfox" {
		t.Fatalf("ThemeNames() = %v", names)
	}
	if got := NextTheme("Slate"); got != "Nightfox" {
		t.Fatalf("NextTheme(Slate) = %q, want Nightfox", got)
	}
	if got := NextTheme("Unknown"); got != "Nightfox" {
		t.Fatalf("NextTheme(Unknown) = %q, want Nightfox", got)
	}
	if got := GetTheme("Unknown").Name; got != "Nightfox" {
		t.Fatalf("GetTheme(Unknown) = %q, want Nightfox fallback", got)
	}
}
