package nautic

import (
	"fmt"
	"net/url"
	"strings"
)

// CandidateURLs returns the ordered list of urls to attempt for a query,
// most specific routing convention first, the site root as a last
// resort. The upstream storefront answers searches on several paths
// depending on language and theme version, so each one is tried in turn
// rather than retrying a single endpoint.
func (c *Client) CandidateURLs(q string, page int) []string {
	base := c.base.String()
	trimmed := strings.TrimSpace(q)
	if trimmed == "" {
		return []string{base + "/"}
	}

	encoded := url.QueryEscape(trimmed)
	if page < 1 {
		page = 1
	}
	return []string{
		fmt.Sprintf("%s/recherche?controller=search&s=%s&page=%d", base, encoded, page),
		fmt.Sprintf("%s/search?controller=search&s=%s&page=%d", base, encoded, page),
		fmt.Sprintf("%s/fr/recherche?controller=search&s=%s&page=%d", base, encoded, page),
		base + "/",
	}
}

// resolveURL turns relative and protocol-relative urls from scraped
// markup into absolute ones against the site origin.
func (c *Client) resolveURL(raw string) string {
	if raw == "" {
		return ""
	}
	if strings.HasPrefix(raw, "http") {
		return raw
	}
	if strings.HasPrefix(raw, "//") {
		return "https:" + raw
	}
	if !strings.HasPrefix(raw, "/") {
		raw = "/" + raw
	}
	return c.base.String() + raw
}
