package ui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// truncate shortens value to limit cells, adding an ellipsis if needed.
func truncate(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 {
		return ""
	}
	if ansi.StringWidth(value) <= limit {
		return value
	}
	if limit <= 1 {
		return ansi.Truncate(value, limit, "")
	}
	return ansi.Truncate(value, limit, "…")
}

// fit truncates or pads value to exactly width cells.
func fit(value string, width int) string {
	value = truncate(value, width)
	return padRight(value, width)
}

// padRight pads s with spaces to width cells.
func padRight(s string, width int) string {
	n := ansi.StringWidth(s)
	if width <= 0 || n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

// padLeft right-aligns s in width cells.
func padLeft(s string, width int) string {
	n := ansi.StringWidth(s)
	if width <= 0 || n >= width {
		return s
	}
	return strings.Repeat(" ", width-n) + s
}

// singleLine collapses newlines and runs of whitespace so a value renders on
// one table row.
func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
