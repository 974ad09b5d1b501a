package nautic

import (
	"crypto/sha1"
	"encoding/hex"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/mazen160/go-random"
)

// Product is the canonical record served to callers, every field is
// populated (see NormalizeProduct for the defaults).
type Product struct {
	Id               string  `json:"id"`
	Name             string  `json:"name"`
	Price            float64 `json:"price"`
	Currency         string  `json:"currency"`
	ImageUrl         string  `json:"imageUrl"`
	ShortDescription string  `json:"shortDescription"`
	ProductUrl       string  `json:"productUrl"`
	Category         *string `json:"category"`
	Availability     *string `json:"availability"`
}

// ProductInput is the partial field set produced by extraction, zero
// values mean "absent".
type ProductInput struct {
	Id               string
	Name             string
	Price            float64
	Currency         string
	ImageUrl         string
	ShortDescription string
	ProductUrl       string
	Category         *string
	Availability     *string
}

const (
	defaultName     = "Produit sans nom"
	defaultCurrency = "EUR"
	defaultImageUrl = "https://images.unsplash.com/photo-1567899378494-47b22a2ae96a?auto=format&fit=crop&w=800&q=60"
	defaultUrl      = Base + "/"
)

var priceRegex = regexp.MustCompile(`([€$£])?(\d+[.,]?\d*)`)
var whitespaceRegex = regexp.MustCompile(`\s+`)

type ParsedPrice struct {
	Price    float64
	Currency string
}

// ParsePrice pulls the first currency symbol and numeric run out of raw
// scraped price text. A decimal comma is treated as a decimal point;
// thousands separators are not disambiguated, so "1.234,56" parses as
// 1.234. Anything unparsable degrades to {0, EUR} rather than failing
// the record.
func ParsePrice(raw string) ParsedPrice {
	cleaned := whitespaceRegex.ReplaceAllString(raw, "")
	match := priceRegex.FindStringSubmatch(cleaned)
	if match == nil {
		return ParsedPrice{Price: 0, Currency: defaultCurrency}
	}

	price, err := strconv.ParseFloat(strings.Replace(match[2], ",", ".", 1), 64)
	if err != nil {
		price = 0
	}

	currency := defaultCurrency
	switch match[1] {
	case "$":
		currency = "USD"
	case "£":
		currency = "GBP"
	}
	return ParsedPrice{Price: price, Currency: currency}
}

// NormalizeProduct completes a partial record into a Product with every
// field defaulted. The id is a deterministic function of
// (productUrl, name, price, currency) so that re-extractions of the
// same listing dedupe against each other; a fully empty identity key
// gets a random seed instead so the record stays well-formed without
// colliding with other empty-key records.
func NormalizeProduct(input ProductInput) Product {
	id := input.Id
	if id == "" {
		id = "nh_" + shortHash(identityKey(input))
	}

	product := Product{
		Id:               id,
		Name:             strings.TrimSpace(input.Name),
		Price:            input.Price,
		Currency:         input.Currency,
		ImageUrl:         input.ImageUrl,
		ShortDescription: strings.TrimSpace(input.ShortDescription),
		ProductUrl:       input.ProductUrl,
		Category:         input.Category,
		Availability:     input.Availability,
	}
	if product.Name == "" {
		product.Name = defaultName
	}
	if product.Price < 0 {
		product.Price = 0
	}
	if product.Currency == "" {
		product.Currency = defaultCurrency
	}
	if product.ImageUrl == "" {
		product.ImageUrl = defaultImageUrl
	}
	if product.ProductUrl == "" {
		product.ProductUrl = defaultUrl
	}
	return product
}

func identityKey(input ProductInput) string {
	if input.ProductUrl == "" && input.Name == "" &&
		input.Currency == "" && input.Price == 0 {
		seed, err := random.String(16)
		if err != nil {
			seed = strconv.FormatInt(time.Now().UnixNano(), 10)
		}
		return seed
	}
	return strings.Join([]string{
		input.ProductUrl,
		input.Name,
		strconv.FormatFloat(input.Price, 'f', -1, 64),
		input.Currency,
	}, "|")
}

func shortHash(source string) string {
	sum := sha1.Sum([]byte(source))
	return hex.EncodeToString(sum[:])[:8]
}
