package nautic

import (
	"log/slog"
	"strings"

	"yachtdrop-backend/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
	"github.com/tidwall/gjson"
)

// A strategy turns a parsed document into candidate products. Strategies
// are ordered most specific markup first; the first one yielding at
// least one record wins and later ones are never consulted, since mixing
// strategies over the same page risks duplicate or inconsistent records.
type strategy struct {
	name    string
	extract func(c *Client, doc *goquery.Document) []Product
}

var strategies = []strategy{
	{name: ".product-miniature", extract: cardStrategy(".product-miniature")},
	{name: ".product", extract: cardStrategy(".product")},
	{name: ".js-product-miniature", extract: cardStrategy(".js-product-miniature")},
	{name: "[data-id-product]", extract: cardStrategy("[data-id-product]")},
	{name: "json-ld", extract: jsonLdStrategy},
}

// ExtractProducts runs the selector cascade over a raw html document.
func (c *Client) ExtractProducts(raw string) []Product {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		slog.Warn("failed to parse html document", "err", err)
		return nil
	}

	for _, s := range strategies {
		products := s.extract(c, doc)
		if len(products) > 0 {
			return products
		}
	}
	return nil
}

const (
	nameSelectors  = ".product-title, .h3.product-title, .product-name, [itemprop='name']"
	priceSelectors = ".price, .product-price-and-shipping .price, [itemprop='price']"
	descSelectors  = ".product-description-short, .product-desc"
)

var linkSelectors = []string{".product-title a", "a.thumbnail", "a"}

func cardStrategy(cardSelector string) func(c *Client, doc *goquery.Document) []Product {
	return func(c *Client, doc *goquery.Document) []Product {
		var products []Product
		doc.Find(cardSelector).Each(func(_ int, card *goquery.Selection) {
			name := htmlutil.CleanText(card.Find(nameSelectors).First())
			priceText := htmlutil.CleanText(card.Find(priceSelectors).First())
			desc := htmlutil.CleanText(card.Find(descSelectors).First())
			link := pickFirstAttr(card, linkSelectors, "href")
			image := pickImageUrl(card)

			// a card with none of these is markup noise, not a listing
			if name == "" && priceText == "" && link == "" {
				return
			}

			parsed := ParsePrice(priceText)
			products = append(products, NormalizeProduct(ProductInput{
				Name:             name,
				ShortDescription: desc,
				ImageUrl:         c.resolveURL(image),
				ProductUrl:       c.resolveURL(link),
				Price:            parsed.Price,
				Currency:         parsed.Currency,
			}))
		})
		return products
	}
}

func pickFirstAttr(root *goquery.Selection, selectors []string, attr string) string {
	for _, selector := range selectors {
		value := root.Find(selector).First().AttrOr(attr, "")
		if value != "" {
			return value
		}
	}
	return ""
}

// The upstream lazy-loads product images, so the eager src attribute is
// frequently a transparent placeholder; lazy-load attributes and the
// first srcset candidate are preferred over it.
func pickImageUrl(root *goquery.Selection) string {
	img := root.Find("img").First()
	if len(img.Nodes) == 0 {
		return ""
	}
	candidates := []string{
		img.AttrOr("data-src", ""),
		img.AttrOr("data-original", ""),
		img.AttrOr("data-lazy", ""),
		htmlutil.FirstFromSrcset(img.AttrOr("data-srcset", "")),
		htmlutil.FirstFromSrcset(img.AttrOr("srcset", "")),
		img.AttrOr("src", ""),
	}
	for _, candidate := range candidates {
		if candidate != "" {
			return candidate
		}
	}
	return ""
}

// jsonLdStrategy reads application/ld+json blocks, which some theme
// versions emit even when the card markup defeats every css strategy.
func jsonLdStrategy(c *Client, doc *goquery.Document) []Product {
	var products []Product
	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, script *goquery.Selection) {
		raw := strings.TrimSpace(script.Text())
		if !gjson.Valid(raw) {
			return
		}
		for _, node := range productNodes(gjson.Parse(raw)) {
			offers := node.Get("offers")
			price := offers.Get("price").Float()
			currency := offers.Get("priceCurrency").String()

			image := node.Get("image")
			if image.IsArray() {
				image = image.Get("0")
			}

			name := node.Get("name").String()
			link := node.Get("url").String()
			if name == "" && link == "" {
				continue
			}

			products = append(products, NormalizeProduct(ProductInput{
				Name:             name,
				ShortDescription: node.Get("description").String(),
				ImageUrl:         c.resolveURL(image.String()),
				ProductUrl:       c.resolveURL(link),
				Price:            price,
				Currency:         currency,
			}))
		}
	})
	return products
}

// productNodes walks a json-ld document for Product nodes, looking
// through top-level arrays, @graph and ItemList wrappers.
func productNodes(root gjson.Result) []gjson.Result {
	var nodes []gjson.Result
	var walk func(node gjson.Result)
	walk = func(node gjson.Result) {
		if node.IsArray() {
			node.ForEach(func(_, element gjson.Result) bool {
				walk(element)
				return true
			})
			return
		}
		if !node.IsObject() {
			return
		}
		if strings.EqualFold(node.Get("@type").String(), "Product") {
			nodes = append(nodes, node)
			return
		}
		walk(node.Get("@graph"))
		node.Get("itemListElement").ForEach(func(_, element gjson.Result) bool {
			if item := element.Get("item"); item.Exists() {
				walk(item)
			} else {
				walk(element)
			}
			return true
		})
	}
	walk(root)
	return nodes
}
