package state

import (
	"strings"
	"sync"
	"time"

	"github.com/five82/shopkeep/internal/catalog"
)

// Revision identifies a load request. Only the newest revision may commit.
type Revision uint64

// Snapshot represents the view state available to the UI at one instant.
type Snapshot struct {
	Collection []catalog.Product
	View       []catalog.Product
	Page       int
	Keyword    string
	Sort       Sort
	Selection  *catalog.Product
	Loading    bool
	Loaded     bool
	LastError  error
	LastLoaded time.Time
	Revision   Revision
}

// Projection returns the current page of the view.
func (s Snapshot) Projection() Projection {
	return Project(s.View, s.Page, PageSize)
}

// Store owns the collection, its filtered view, pagination and the detail
// selection. All methods are safe for concurrent use.
type Store struct {
	mu         sync.RWMutex
	collection []catalog.Product
	view       []catalog.Product
	page       int
	keyword    string
	sort       Sort
	selection  *catalog.Product
	latest     Revision
	committed  Revision
	loading    bool
	loaded     bool
	lastErr    error
	lastLoaded time.Time
}

// NewStore returns an empty store on page one.
func NewStore() *Store {
	return &Store{page: 1}
}

// BeginLoad marks a load as in flight and returns its revision. Any earlier
// load still in flight becomes stale.
func (s *Store) BeginLoad() Revision {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.latest++
	s.loading = true
	return s.latest
}

// CommitLoad replaces the collection with products and resets the view,
// keyword, sort and page. It returns false, leaving the store untouched,
// when rev has been superseded by a newer BeginLoad.
func (s *Store) CommitLoad(rev Revision, products []catalog.Product) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rev != s.latest {
		return false
	}
	s.collection = cloneProducts(products)
	s.view = cloneProducts(s.collection)
	s.keyword = ""
	s.sort = Sort{}
	s.page = 1
	s.committed = rev
	s.loading = false
	s.loaded = true
	s.lastErr = nil
	s.lastLoaded = time.Now()

	// Keep the detail pane pointing at fresh data, or drop it if the product
	// is gone.
	if s.selection != nil {
		id := s.selection.ID
		s.selection = nil
		for _, p := range s.collection {
			if p.ID == id {
				dup := p.Clone()
				s.selection = &dup
				break
			}
		}
	}
	return true
}

// FailLoad records err for the newest load. Existing data is kept. It returns
// false when rev is stale.
func (s *Store) FailLoad(rev Revision, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rev != s.latest {
		return false
	}
	s.loading = false
	s.lastErr = err
	return true
}

// ApplySearch filters the collection by a case-insensitive title substring.
// It resets the page and clears the sort selection.
func (s *Store) ApplySearch(keyword string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.keyword = strings.ToLower(keyword)
	s.view = matchTitle(s.collection, s.keyword)
	s.sort = Sort{}
	s.page = 1
}

// ApplySort stably reorders the current view and resets the page. The zero
// Sort restores collection order, still filtered by the active keyword.
func (s *Store) ApplySort(sort Sort) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sort = sort
	s.page = 1
	if sort.IsZero() {
		s.view = matchTitle(s.collection, s.keyword)
		return
	}
	view := cloneProducts(s.view)
	sortProducts(view, sort)
	s.view = view
}

// ApplySortOption parses a selector value and applies it.
func (s *Store) ApplySortOption(value string) error {
	sort, err := ParseSort(value)
	if err != nil {
		return err
	}
	s.ApplySort(sort)
	return nil
}

// SetPage moves to page n, clamped into the valid range, and returns the page
// actually selected.
func (s *Store) SetPage(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.page = clampPage(n, TotalPages(len(s.view), PageSize))
	return s.page
}

// Select loads the product with id into the detail selection.
func (s *Store) Select(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.collection {
		if p.ID == id {
			dup := p.Clone()
			s.selection = &dup
			return true
		}
	}
	return false
}

// Selection returns a copy of the detail selection.
func (s *Store) Selection() (catalog.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.selection == nil {
		return catalog.Product{}, false
	}
	return s.selection.Clone(), true
}

// ClearSelection drops the detail selection.
func (s *Store) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.selection = nil
}

// Projection returns the current page of the view.
func (s *Store) Projection() Projection {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Project(cloneProducts(s.view), s.page, PageSize)
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		Collection: cloneProducts(s.collection),
		View:       cloneProducts(s.view),
		Page:       clampPage(s.page, TotalPages(len(s.view), PageSize)),
		Keyword:    s.keyword,
		Sort:       s.sort,
		Loading:    s.loading,
		Loaded:     s.loaded,
		LastLoaded: s.lastLoaded,
		LastError:  s.lastErr,
		Revision:   s.committed,
	}
	if s.selection != nil {
		dup := s.selection.Clone()
		snap.Selection = &dup
	}
	return snap
}

func cloneProducts(items []catalog.Product) []catalog.Product {
	if len(items) == 0 {
		return nil
	}
	dup := make([]catalog.Product, len(items))
	for i, item := range items {
		dup[i] = item.Clone()
	}
	return dup
}
