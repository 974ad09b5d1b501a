package nautic

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/attribute"
)

// Base is the origin of the upstream storefront. It exposes no
// structured api, everything below scrapes its html.
const Base = "https://www.nautichandler.com"

// UserAgent identifies outbound requests to the upstream site.
const UserAgent = "YachtDropBot/1.0 (+https://yachtdrop.local)"

type ClientOptions struct {
	// overrides Base, used by tests to point at a fixture server
	BaseUrl string
	// per-request timeout, defaults to 15s so a slow upstream cannot
	// pin a caller for the whole candidate list
	Timeout time.Duration
}

type Client struct {
	base *url.URL
	http *resty.Client
}

func NewClient(opts ClientOptions) (*Client, error) {
	baseUrl := opts.BaseUrl
	if baseUrl == "" {
		baseUrl = Base
	}
	base, err := url.Parse(strings.TrimSuffix(baseUrl, "/"))
	if err != nil {
		return nil, err
	}

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = time.Second * 15
	}

	client := resty.New()
	client.SetHeader("user-agent", UserAgent)
	client.SetTimeout(timeout)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	return &Client{
		base: base,
		http: client,
	}, nil
}

// Ingest fetches and extracts products for a query. It never fails from
// the caller's perspective: every transport error, bad status and empty
// extraction is absorbed by falling through to the next candidate url.
// When every candidate is exhausted, a non-empty query resolves to an
// explicit empty result while the unfiltered browse view gets
// synthesized placeholders so it never appears structurally broken.
func (c *Client) Ingest(ctx context.Context, query string, page int) []Product {
	ctx, span := tracer.Start(ctx, "Ingest")
	defer span.End()
	span.SetAttributes(
		attribute.String("query", query),
		attribute.Int("page", page),
	)

	trimmed := strings.TrimSpace(query)
	for _, link := range c.CandidateURLs(trimmed, page) {
		// caller cancellation stops the candidate walk
		if ctx.Err() != nil {
			break
		}

		res, err := c.http.R().SetContext(ctx).Get(link)
		if err != nil {
			slog.WarnContext(ctx, "fetch failed", "url", link, "err", err)
			continue
		}
		if !res.IsSuccess() {
			slog.WarnContext(ctx, "non-2xx response", "url", link, "status", res.StatusCode())
			continue
		}

		products := c.ExtractProducts(string(res.Body()))
		if len(products) == 0 {
			slog.DebugContext(ctx, "parsed zero products", "url", link)
			continue
		}

		if trimmed != "" {
			return FilterProducts(products, trimmed)
		}
		return products
	}

	if trimmed != "" {
		return []Product{}
	}
	return c.fallbackProducts(trimmed)
}

// fallbackProducts synthesizes the two documented placeholder records
// served when the live source is entirely unavailable on the unfiltered
// default view.
func (c *Client) fallbackProducts(q string) []Product {
	term := strings.TrimSpace(q)
	if term == "" {
		term = "nautic"
	}
	base := c.base.String()
	return []Product{
		NormalizeProduct(ProductInput{
			Name:             "Live source unavailable - " + term + " #1",
			ShortDescription: "Placeholder generated while source is unavailable. Retry shortly.",
			Price:            29.9,
			Currency:         "EUR",
			ImageUrl:         "https://images.unsplash.com/photo-1540946485063-a40da27545f8?auto=format&fit=crop&w=800&q=60",
			ProductUrl:       base,
		}),
		NormalizeProduct(ProductInput{
			Name:             "Live source unavailable - " + term + " #2",
			ShortDescription: "Fallback item; API remains operational for UX validation.",
			Price:            18.5,
			Currency:         "EUR",
			ImageUrl:         "https://images.unsplash.com/photo-1518606370713-65b54e676f3f?auto=format&fit=crop&w=800&q=60",
			ProductUrl:       base,
		}),
	}
}

// fetchCatalogPage fetches one page of the default catalog listing. An
// error means the page could not be fetched; a nil error with zero
// products means the page parsed fine but holds no listings.
func (c *Client) fetchCatalogPage(ctx context.Context, page int) ([]Product, error) {
	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("page", strconv.Itoa(page)).
		Get(c.base.String() + "/")
	if err != nil {
		return nil, err
	}
	if !res.IsSuccess() {
		return nil, fmt.Errorf("%s: status %d", res.Request.URL, res.StatusCode())
	}
	return c.ExtractProducts(string(res.Body())), nil
}
