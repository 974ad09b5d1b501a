package products

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"yachtdrop-backend/lib/ratelimit"
	"yachtdrop-backend/lib/scrapers/nautic"
	"yachtdrop-backend/lib/telemetry"
	"yachtdrop-backend/lib/ttlcache"

	"go.opentelemetry.io/otel/attribute"
)

var tracer = telemetry.Tracer("yachtdrop.services.products")

var ErrRateLimited = fmt.Errorf("rate limit exceeded")
var ErrUnavailable = fmt.Errorf("product source unavailable")

// Ingestor is the live fetch path.
type Ingestor interface {
	Ingest(ctx context.Context, query string, page int) []nautic.Product
}

// CatalogSearcher is the warm-cache path, decoupled from live fetches.
type CatalogSearcher interface {
	MaybeWarm(ctx context.Context)
	Search(q string, page int) []nautic.Product
}

type Options struct {
	// response cache ttl, defaults to 10 minutes
	CacheTtl time.Duration
	// fixed-window admissions per client+query, defaults to 20
	RateLimit int
	// window length, defaults to one minute
	RateWindow time.Duration
}

type Service struct {
	scraper Ingestor
	catalog CatalogSearcher
	cache   *ttlcache.Cache[[]nautic.Product]
	limiter *ratelimit.Limiter
}

func NewService(scraper Ingestor, catalog CatalogSearcher, opts Options) *Service {
	if opts.CacheTtl == 0 {
		opts.CacheTtl = time.Minute * 10
	}
	if opts.RateLimit == 0 {
		opts.RateLimit = 20
	}
	if opts.RateWindow == 0 {
		opts.RateWindow = time.Minute
	}
	return &Service{
		scraper: scraper,
		catalog: catalog,
		cache:   ttlcache.New[[]nautic.Product](opts.CacheTtl),
		limiter: ratelimit.NewLimiter(opts.RateLimit, opts.RateWindow),
	}
}

// Result distinguishes the three serving outcomes: a fresh ingestion, a
// cache hit, and a degraded response (a previously cached value served
// after a fresh ingestion failure).
type Result struct {
	Products []nautic.Product
	Cached   bool
	Degraded bool
}

// GetProducts serves a product listing for a query. clientKey identifies
// the caller for rate limiting; the limiter key is its conjunction with
// the query, so distinct searches from one client count separately.
func (s *Service) GetProducts(ctx context.Context, clientKey, q string, page int) (Result, error) {
	ctx, span := tracer.Start(ctx, "GetProducts")
	defer span.End()

	q = strings.TrimSpace(q)
	if page < 1 {
		page = 1
	}
	span.SetAttributes(attribute.String("query", q), attribute.Int("page", page))

	if !s.limiter.Allow(clientKey + ":" + q) {
		return Result{}, ErrRateLimited
	}

	// keep the catalog warm off the request path; failures in there
	// never reach this request
	s.catalog.MaybeWarm(ctx)

	cacheKey := q + ":" + strconv.Itoa(page)
	if cached, ok := s.cache.Get(cacheKey); ok {
		return Result{Products: cached, Cached: true}, nil
	}

	products, err := s.ingest(ctx, q, page)
	if err != nil {
		slog.ErrorContext(ctx, "ingestion failed", "query", q, "page", page, "err", err)
		if fallback, ok := s.cache.Get(cacheKey); ok {
			return Result{Products: fallback, Cached: true, Degraded: true}, nil
		}
		return Result{}, ErrUnavailable
	}

	s.cache.Set(cacheKey, products)
	return Result{Products: products}, nil
}

// ingest converts a panicking scraper into an error; Ingest absorbs all
// expected failures itself, so this is the guard of last resort that
// keeps the degraded-response path reachable.
func (s *Service) ingest(ctx context.Context, q string, page int) (products []nautic.Product, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("ingest panicked: %v", r)
		}
	}()
	return s.scraper.Ingest(ctx, q, page), nil
}

// SearchCatalog reads only the in-memory warm catalog; it returns
// nothing when the cache is cold or the query is empty, and triggers an
// opportunistic warm-up on each call.
func (s *Service) SearchCatalog(ctx context.Context, q string, page int) []nautic.Product {
	s.catalog.MaybeWarm(ctx)
	return s.catalog.Search(q, page)
}
