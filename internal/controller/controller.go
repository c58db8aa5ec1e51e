package controller

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/five82/shopkeep/internal/catalog"
	"github.com/five82/shopkeep/internal/export"
	"github.com/five82/shopkeep/internal/logging"
	"github.com/five82/shopkeep/internal/state"
)

// ErrNoSelection is returned by SubmitUpdate when no product is open.
var ErrNoSelection = errors.New("no product selected")

// ReloadError reports a mutation that the server accepted but whose
// follow-up reload failed.
type ReloadError struct {
	Err error
}

func (e *ReloadError) Error() string { return "reload after save: " + e.Err.Error() }

func (e *ReloadError) Unwrap() error { return e.Err }

// Controller coordinates the store, the remote catalog and the exporter.
type Controller struct {
	store     *state.Store
	catalog   catalog.Catalog
	log       logrus.FieldLogger
	exportDir string
}

// Options configures a Controller.
type Options struct {
	Store     *state.Store
	Catalog   catalog.Catalog
	Logger    logrus.FieldLogger
	ExportDir string
}

// New builds a Controller. A nil store is replaced by an empty one.
func New(opts Options) *Controller {
	store := opts.Store
	if store == nil {
		store = state.NewStore()
	}
	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}
	dir := opts.ExportDir
	if dir == "" {
		dir = "."
	}
	return &Controller{
		store:     store,
		catalog:   opts.Catalog,
		log:       log.WithField("component", "controller"),
		exportDir: dir,
	}
}

// Store exposes the underlying store for rendering.
func (c *Controller) Store() *state.Store {
	return c.store
}

// ExportDir returns the directory exports are written to.
func (c *Controller) ExportDir() string {
	return c.exportDir
}

// Load fetches the full collection and commits it. A fetch that finishes
// after a newer Load has started is dropped silently.
func (c *Controller) Load(ctx context.Context) error {
	rev := c.store.BeginLoad()
	start := time.Now()
	products, err := c.catalog.FetchAll(ctx)
	fields := logrus.Fields{"revision": rev, "duration": time.Since(start).String()}
	if err != nil {
		if !c.store.FailLoad(rev, err) {
			c.log.WithFields(fields).WithError(err).Debug("discarded stale load failure")
			return nil
		}
		c.log.WithFields(fields).WithError(err).Error("load failed")
		return fmt.Errorf("load products: %w", err)
	}
	if !c.store.CommitLoad(rev, products) {
		c.log.WithFields(fields).Debug("discarded stale load")
		return nil
	}
	c.log.WithFields(fields).WithField("count", len(products)).Info("loaded products")
	return nil
}

// ApplySearch filters the view by title keyword.
func (c *Controller) ApplySearch(keyword string) {
	c.store.ApplySearch(keyword)
}

// ApplySort applies a selector value such as "price-desc".
func (c *Controller) ApplySort(option string) error {
	return c.store.ApplySortOption(option)
}

// SelectPage moves to page n and returns the clamped page.
func (c *Controller) SelectPage(n int) int {
	return c.store.SetPage(n)
}

// Select opens the product with id in the detail form.
func (c *Controller) Select(id int) (catalog.Product, bool) {
	if !c.store.Select(id) {
		return catalog.Product{}, false
	}
	return c.store.Selection()
}

// ClearSelection closes the detail form.
func (c *Controller) ClearSelection() {
	c.store.ClearSelection()
}

// SubmitCreate creates a product and reloads the collection. On failure the
// store is not touched.
func (c *Controller) SubmitCreate(ctx context.Context, form CreateForm) (catalog.Product, error) {
	input, err := form.Input()
	if err != nil {
		return catalog.Product{}, err
	}
	created, err := c.catalog.Create(ctx, input)
	if err != nil {
		c.log.WithError(err).WithField("title", input.Title).Warn("create failed")
		return catalog.Product{}, err
	}
	c.log.WithFields(logrus.Fields{"id": created.ID, "title": created.Title}).Info("created product")
	if err := c.Load(ctx); err != nil {
		return created, &ReloadError{Err: err}
	}
	return created, nil
}

// SubmitUpdate patches the selected product, closes the detail form and
// reloads. On failure the selection stays open and the store is untouched.
func (c *Controller) SubmitUpdate(ctx context.Context, form UpdateForm) (catalog.Product, error) {
	sel, ok := c.store.Selection()
	if !ok {
		return catalog.Product{}, ErrNoSelection
	}
	patch, err := form.Patch()
	if err != nil {
		return catalog.Product{}, err
	}
	updated, err := c.catalog.Update(ctx, sel.ID, patch)
	if err != nil {
		c.log.WithError(err).WithField("id", sel.ID).Warn("update failed")
		return catalog.Product{}, err
	}
	c.log.WithField("id", updated.ID).Info("updated product")
	c.store.ClearSelection()
	if err := c.Load(ctx); err != nil {
		return updated, &ReloadError{Err: err}
	}
	return updated, nil
}

// ExportCurrentPage writes the rows of the current page and returns the file
// path together with the number of rows written.
func (c *Controller) ExportCurrentPage() (string, int, error) {
	proj := c.store.Projection()
	path, err := export.WriteFile(c.exportDir, proj.Rows)
	if err != nil {
		c.log.WithError(err).Error("export failed")
		return "", 0, fmt.Errorf("export page %d: %w", proj.Page, err)
	}
	c.log.WithFields(logrus.Fields{"path": path, "page": proj.Page, "rows": len(proj.Rows)}).Info("exported page")
	return path, len(proj.Rows), nil
}
