package state

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/five82/shopkeep/internal/catalog"
)

// SortField names a sortable product column.
type SortField string

// SortDirection is either ascending or descending.
type SortDirection string

const (
	SortByTitle SortField = "title"
	SortByPrice SortField = "price"

	Ascending  SortDirection = "asc"
	Descending SortDirection = "desc"
)

// Sort is an active sort selection. The zero value means "no sort".
type Sort struct {
	Field     SortField
	Direction SortDirection
}

// SortOptions lists the selector values in display order. The empty string
// is the "no sort" option.
var SortOptions = []string{"", "title-asc", "title-desc", "price-asc", "price-desc"}

// IsZero reports whether no sort is selected.
func (s Sort) IsZero() bool {
	return s.Field == "" && s.Direction == ""
}

// String encodes the sort as a selector value, e.g. "price-desc".
func (s Sort) String() string {
	if s.IsZero() {
		return ""
	}
	return string(s.Field) + "-" + string(s.Direction)
}

// Label is a human readable form used in the header.
func (s Sort) Label() string {
	if s.IsZero() {
		return "none"
	}
	arrow := "↑"
	if s.Direction == Descending {
		arrow = "↓"
	}
	return string(s.Field) + " " + arrow
}

// ParseSort decodes a "field-direction" selector value. The empty string
// yields the zero Sort.
func ParseSort(value string) (Sort, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return Sort{}, nil
	}
	field, direction, ok := strings.Cut(value, "-")
	if !ok {
		return Sort{}, fmt.Errorf("sort %q: want field-direction", value)
	}
	s := Sort{Field: SortField(field), Direction: SortDirection(direction)}
	switch s.Field {
	case SortByTitle, SortByPrice:
	default:
		return Sort{}, fmt.Errorf("sort %q: unknown field %q", value, field)
	}
	switch s.Direction {
	case Ascending, Descending:
	default:
		return Sort{}, fmt.Errorf("sort %q: unknown direction %q", value, direction)
	}
	return s, nil
}

// NextSortOption returns the selector value after current, wrapping around.
// A negative step walks backwards.
func NextSortOption(current string, step int) string {
	idx := slices.Index(SortOptions, current)
	if idx < 0 {
		idx = 0
	}
	n := len(SortOptions)
	return SortOptions[((idx+step)%n+n)%n]
}

// sortProducts orders items in place. The sort is stable so ties keep their
// prior relative order.
func sortProducts(items []catalog.Product, s Sort) {
	if s.IsZero() || len(items) < 2 {
		return
	}
	var cmp func(a, b catalog.Product) int
	switch s.Field {
	case SortByTitle:
		// Collators are not safe for concurrent use; build one per call.
		col := collate.New(language.English)
		cmp = func(a, b catalog.Product) int {
			return col.CompareString(a.Title, b.Title)
		}
	case SortByPrice:
		cmp = func(a, b catalog.Product) int {
			return a.Price.Cmp(b.Price)
		}
	default:
		return
	}
	if s.Direction == Descending {
		asc := cmp
		cmp = func(a, b catalog.Product) int { return asc(b, a) }
	}
	slices.SortStableFunc(items, cmp)
}

// matchTitle filters items whose lower-cased title contains keyword, which
// must already be lower-cased. Order is preserved.
func matchTitle(items []catalog.Product, keyword string) []catalog.Product {
	out := make([]catalog.Product, 0, len(items))
	for _, item := range items {
		if keyword == "" || strings.Contains(strings.ToLower(item.Title), keyword) {
			out = append(out, item)
		}
	}
	return out
}
