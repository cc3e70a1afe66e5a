// Package adminquery implements the query pipeline behind the admin
// product table: debounced free-text search against the backend, local
// category and featured predicates on top of the fetched list, and the
// mutations the table exposes (featured toggle, delete, bulk actions).
//
// The engine trusts backend search results as-is and never re-matches the
// term locally; only the category and featured predicates run client-side,
// so changing them re-filters without another request.
package adminquery

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"aquapoint/internal/models"
)

// DefaultDebounce is how long search input must be idle before the term
// is committed and a backend search fires.
const DefaultDebounce = 300 * time.Millisecond

// LoadFailedMessage is the persistent error shown when a list fetch fails.
const LoadFailedMessage = "Failed to load products"

// Backend is the product API surface the engine queries and mutates.
type Backend interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	SearchProducts(ctx context.Context, term string) ([]models.Product, error)
	UpdateFeatured(ctx context.Context, id int64, featured bool) error
	DeleteProduct(ctx context.Context, id int64) error
	BulkProducts(ctx context.Context, op models.BulkOperation, ids []int64) error
}

// Filters is the raw filter state owned by the table view. Category holds
// the selected category id as a string ("" for all); Featured is ""
// (unset), "true", or "false".
type Filters struct {
	Search   string
	Category string
	Featured string
}

// Options tunes the engine. Zero values select defaults.
type Options struct {
	// Debounce overrides DefaultDebounce; tests shorten it.
	Debounce time.Duration

	// Confirm asks the user to approve a destructive action. Nil
	// approves everything.
	Confirm func(prompt string) bool

	// OnChange fires after the visible list or error state changes, with
	// no locks held.
	OnChange func()
}

// Engine owns the displayed product list for the admin table.
type Engine struct {
	backend  Backend
	debounce time.Duration
	confirm  func(string) bool
	onChange func()

	mu        sync.Mutex
	filters   Filters
	committed string
	timer     *time.Timer

	// seq numbers fetches; a response is applied only when its token is
	// newer than the last applied one, so a slow stale response can never
	// overwrite a fresher list.
	seq     uint64
	applied uint64

	base     []models.Product // last backend result, unfiltered
	visible  []models.Product
	loadErr  string
	selected map[int64]bool
}

// New creates an engine over the given backend.
func New(backend Backend, opts Options) *Engine {
	e := &Engine{
		backend:  backend,
		debounce: opts.Debounce,
		confirm:  opts.Confirm,
		onChange: opts.OnChange,
		selected: map[int64]bool{},
	}
	if e.debounce <= 0 {
		e.debounce = DefaultDebounce
	}
	if e.confirm == nil {
		e.confirm = func(string) bool { return true }
	}
	if e.onChange == nil {
		e.onChange = func() {}
	}
	return e
}

// Products returns a copy of the currently visible list.
func (e *Engine) Products() []models.Product {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]models.Product(nil), e.visible...)
}

// Err returns the persistent load error message, or "" when the last
// fetch succeeded.
func (e *Engine) Err() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loadErr
}

// Refresh fetches the list for the current committed search and filters.
// Call once on mount and to retry after a load failure.
func (e *Engine) Refresh(ctx context.Context) {
	e.mu.Lock()
	token := e.beginFetch()
	term := e.committed
	e.mu.Unlock()

	e.fetch(ctx, token, term)
}

// SetFilters replaces the filter state. A changed search term restarts the
// debounce timer; category and featured changes re-filter the last fetched
// list locally without a request. Setting identical filters is a no-op.
func (e *Engine) SetFilters(ctx context.Context, next Filters) {
	e.mu.Lock()
	if next == e.filters {
		e.mu.Unlock()
		return
	}

	searchChanged := next.Search != e.filters.Search
	localChanged := next.Category != e.filters.Category || next.Featured != e.filters.Featured
	e.filters = next

	if searchChanged {
		if e.timer != nil {
			e.timer.Stop()
		}
		e.timer = time.AfterFunc(e.debounce, func() {
			e.commitSearch(ctx)
		})
		if !localChanged {
			e.mu.Unlock()
			return
		}
	}

	// Category or featured changed: re-derive the visible list from the
	// cached fetch right away, even while a search commit is pending.
	e.refilterLocked()
	e.mu.Unlock()
	e.onChange()
}

// commitSearch runs when the debounce window closes with no further
// keystrokes: the staged term becomes the committed one and a fetch fires.
func (e *Engine) commitSearch(ctx context.Context) {
	e.mu.Lock()
	e.committed = e.filters.Search
	token := e.beginFetch()
	term := e.committed
	e.mu.Unlock()

	e.fetch(ctx, token, term)
}

// beginFetch issues a token for a new fetch. Callers hold e.mu.
func (e *Engine) beginFetch() uint64 {
	e.seq++
	return e.seq
}

// fetch performs the backend call for a token and applies the result.
func (e *Engine) fetch(ctx context.Context, token uint64, term string) {
	var items []models.Product
	var err error
	if trimmed := strings.TrimSpace(term); trimmed != "" {
		items, err = e.backend.SearchProducts(ctx, trimmed)
	} else {
		items, err = e.backend.ListProducts(ctx)
	}
	e.apply(token, items, err)
}

// apply installs a fetch result unless a newer one already landed.
func (e *Engine) apply(token uint64, items []models.Product, err error) {
	e.mu.Lock()
	if token <= e.applied {
		e.mu.Unlock()
		return // stale response
	}
	e.applied = token

	if err != nil {
		e.base = nil
		e.visible = nil
		e.loadErr = LoadFailedMessage
		e.mu.Unlock()
		e.onChange()
		return
	}

	e.base = items
	e.loadErr = ""
	e.refilterLocked()
	e.mu.Unlock()
	e.onChange()
}

// refilterLocked recomputes the visible list from base and the current
// category/featured predicates. Callers hold e.mu.
func (e *Engine) refilterLocked() {
	out := make([]models.Product, 0, len(e.base))

	var categoryID int64
	var categoryOK bool
	if e.filters.Category != "" {
		categoryID, categoryOK = parseCategoryID(e.filters.Category)
	}

	for _, p := range e.base {
		if e.filters.Category != "" {
			if !categoryOK || p.CategoryID != categoryID {
				continue
			}
		}
		switch e.filters.Featured {
		case "true":
			if !p.Featured {
				continue
			}
		case "false":
			if p.Featured {
				continue
			}
		}
		out = append(out, p)
	}
	e.visible = out
}

// ToggleFeatured flips a product's featured flag via a partial update. On
// success the local entry is mutated in place with no refetch; on failure
// local state is untouched and the error is returned for an alert.
func (e *Engine) ToggleFeatured(ctx context.Context, id int64) error {
	e.mu.Lock()
	var current *models.Product
	for i := range e.base {
		if e.base[i].ID == id {
			current = &e.base[i]
			break
		}
	}
	if current == nil {
		e.mu.Unlock()
		return fmt.Errorf("toggle featured: product %d not in list", id)
	}
	next := !current.Featured
	e.mu.Unlock()

	if err := e.backend.UpdateFeatured(ctx, id, next); err != nil {
		return fmt.Errorf("toggle featured: %w", err)
	}

	e.mu.Lock()
	for i := range e.base {
		if e.base[i].ID == id {
			e.base[i].Featured = next
		}
	}
	e.refilterLocked()
	e.mu.Unlock()
	e.onChange()
	return nil
}

// Delete removes one product after user confirmation. A declined
// confirmation is a no-op. On success the entry leaves the local list;
// on failure the list is unchanged and the error is returned for an alert.
func (e *Engine) Delete(ctx context.Context, id int64) error {
	if !e.confirm("Are you sure you want to delete this product?") {
		return nil
	}

	if err := e.backend.DeleteProduct(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	e.mu.Lock()
	kept := e.base[:0]
	for _, p := range e.base {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	e.base = kept
	delete(e.selected, id)
	e.refilterLocked()
	e.mu.Unlock()
	e.onChange()
	return nil
}

// ToggleSelect flips a row's membership in the bulk selection.
func (e *Engine) ToggleSelect(id int64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.selected[id] {
		delete(e.selected, id)
	} else {
		e.selected[id] = true
	}
}

// Selection returns the selected product IDs in visible-list order.
func (e *Engine) Selection() []int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]int64, 0, len(e.selected))
	for _, p := range e.visible {
		if e.selected[p.ID] {
			out = append(out, p.ID)
		}
	}
	return out
}

// BulkAction applies one operation to a set of products after
// confirmation. The batch is treated as atomic: on success the whole list
// is refetched and the selection cleared; on failure nothing changes.
func (e *Engine) BulkAction(ctx context.Context, op models.BulkOperation, ids []int64) error {
	if !op.Valid() {
		return fmt.Errorf("bulk action: unknown operation %q", op)
	}
	if len(ids) == 0 {
		return nil
	}
	if !e.confirm(fmt.Sprintf("Are you sure you want to %s %d products?", op, len(ids))) {
		return nil
	}

	if err := e.backend.BulkProducts(ctx, op, ids); err != nil {
		return fmt.Errorf("bulk action %s: %w", op, err)
	}

	e.mu.Lock()
	e.selected = map[int64]bool{}
	e.mu.Unlock()

	e.Refresh(ctx)
	return nil
}

// parseCategoryID parses the category filter's string value. A value that
// is not a number matches no products.
func parseCategoryID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	return id, err == nil
}
