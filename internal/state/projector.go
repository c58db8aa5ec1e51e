package state

import "github.com/five82/shopkeep/internal/catalog"

// PageSize is the number of rows shown per page.
const PageSize = 10

// Projection is the page-bounded slice of the view rendered at one time.
type Projection struct {
	Rows       []catalog.Product
	Page       int // 1-based, clamped into [1, TotalPages]
	TotalPages int // at least 1, even for an empty view
	PageSize   int
	Total      int // length of the projected view
}

// Offset returns the view index of the first row on the page.
func (p Projection) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// TotalPages returns ceil(n/pageSize), never less than one so an empty view
// still renders a single empty page.
func TotalPages(n, pageSize int) int {
	if pageSize <= 0 {
		pageSize = PageSize
	}
	pages := (n + pageSize - 1) / pageSize
	if pages < 1 {
		return 1
	}
	return pages
}

// Project slices view for the given 1-based page. Out of range pages are
// clamped rather than producing an empty slice.
func Project(view []catalog.Product, page, pageSize int) Projection {
	if pageSize <= 0 {
		pageSize = PageSize
	}
	total := TotalPages(len(view), pageSize)
	page = clampPage(page, total)

	start := (page - 1) * pageSize
	end := min(start+pageSize, len(view))
	var rows []catalog.Product
	if start < end {
		rows = view[start:end:end]
	}
	return Projection{
		Rows:       rows,
		Page:       page,
		TotalPages: total,
		PageSize:   pageSize,
		Total:      len(view),
	}
}

func clampPage(page, total int) int {
	if page < 1 {
		return 1
	}
	if page > total {
		return total
	}
	return page
}
