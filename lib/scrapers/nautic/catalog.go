package nautic

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"
)

type CatalogOptions struct {
	// maximum age before the cached catalog is due for a refresh,
	// defaults to 15 minutes
	StalenessThreshold time.Duration
	// how many catalog pages a refresh walks at most, defaults to 6
	MaxPages int
	// page size handed back by Search, defaults to 24
	PageSize int
	// overrides the page fetcher, used by tests to count and fail calls
	Fetch func(ctx context.Context, page int) ([]Product, error)
}

// Catalog is a long-lived in-memory product catalog warmed by a
// background walk of the upstream listing pages. It is scoped to one
// process; there is no cross-process coordination because staleness
// tolerance, not strict exclusivity, is the actual requirement.
type Catalog struct {
	opts  CatalogOptions
	fetch func(ctx context.Context, page int) ([]Product, error)
	now   func() time.Time

	mu         sync.Mutex
	products   []Product
	updatedAt  time.Time
	refreshing bool
}

func NewCatalog(client *Client, opts CatalogOptions) *Catalog {
	if opts.StalenessThreshold == 0 {
		opts.StalenessThreshold = time.Minute * 15
	}
	if opts.MaxPages == 0 {
		opts.MaxPages = 6
	}
	if opts.PageSize == 0 {
		opts.PageSize = 24
	}
	fetch := opts.Fetch
	if fetch == nil {
		fetch = client.fetchCatalogPage
	}
	return &Catalog{
		opts:  opts,
		fetch: fetch,
		now:   time.Now,
	}
}

// SetClock replaces the time source, for tests.
func (c *Catalog) SetClock(now func() time.Time) {
	c.now = now
}

// MaybeWarm kicks off a background refresh when the catalog has gone
// stale and none is already in flight. It never blocks the caller and
// refresh failures never propagate to it. At most one refresh runs at a
// time; a second trigger while one is in flight is a no-op.
func (c *Catalog) MaybeWarm(ctx context.Context) {
	c.mu.Lock()
	stale := c.now().Sub(c.updatedAt) > c.opts.StalenessThreshold
	if !stale || c.refreshing {
		c.mu.Unlock()
		return
	}
	c.refreshing = true
	c.mu.Unlock()

	// detached from the triggering request's cancellation
	go c.refresh(context.WithoutCancel(ctx))
}

// Warm refreshes synchronously, used by the operator cli. Returns false
// when a refresh was already in flight.
func (c *Catalog) Warm(ctx context.Context) bool {
	c.mu.Lock()
	if c.refreshing {
		c.mu.Unlock()
		return false
	}
	c.refreshing = true
	c.mu.Unlock()

	c.refresh(ctx)
	return true
}

func (c *Catalog) refresh(ctx context.Context) {
	ctx, span := tracer.Start(ctx, "catalog:refresh")
	defer span.End()

	// the flag must clear on every exit path, panics included,
	// otherwise the catalog wedges in the refreshing state forever
	defer func() {
		if r := recover(); r != nil {
			slog.ErrorContext(ctx, "catalog refresh panicked", "panic", r)
		}
		c.mu.Lock()
		c.refreshing = false
		c.mu.Unlock()
	}()

	for page := 1; page <= c.opts.MaxPages; page++ {
		products, err := c.fetch(ctx, page)
		if err != nil {
			slog.WarnContext(ctx, "catalog page fetch failed", "page", page, "err", err)
			continue
		}
		if len(products) == 0 {
			// an empty page means the end of the catalog was reached
			break
		}
		c.merge(products)
	}
}

func (c *Catalog) merge(products []Product) {
	c.mu.Lock()
	defer c.mu.Unlock()

	merged := make([]Product, 0, len(c.products)+len(products))
	merged = append(merged, c.products...)
	merged = append(merged, products...)
	c.products = DedupeProducts(merged)
	c.updatedAt = c.now()
}

// Search filters and paginates the cached catalog. It reads only the
// in-memory set: a cold cache or an empty query yields nothing, and it
// never blocks on or triggers a fetch itself.
func (c *Catalog) Search(q string, page int) []Product {
	trimmed := strings.TrimSpace(q)
	if trimmed == "" {
		return nil
	}

	c.mu.Lock()
	products := c.products
	c.mu.Unlock()
	if len(products) == 0 {
		return nil
	}

	return Paginate(FilterProducts(products, trimmed), page, c.opts.PageSize)
}

// Snapshot returns the cached products and the time of the last merge.
func (c *Catalog) Snapshot() ([]Product, time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.products, c.updatedAt
}
