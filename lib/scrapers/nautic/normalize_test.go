package nautic

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestParsePrice(t *testing.T) {
	testCases := []struct {
		raw    string
		expect ParsedPrice
	}{
		{raw: "29,90 €", expect: ParsedPrice{Price: 29.9, Currency: "EUR"}},
		{raw: "€ 12.50", expect: ParsedPrice{Price: 12.5, Currency: "EUR"}},
		{raw: "$15.00", expect: ParsedPrice{Price: 15, Currency: "USD"}},
		{raw: "£7", expect: ParsedPrice{Price: 7, Currency: "GBP"}},
		{raw: "  42  ", expect: ParsedPrice{Price: 42, Currency: "EUR"}},
		{raw: "", expect: ParsedPrice{Price: 0, Currency: "EUR"}},
		{raw: "prix sur demande", expect: ParsedPrice{Price: 0, Currency: "EUR"}},
		// ambiguous thousands separator, kept as the first numeric run
		{raw: "1.234,56 €", expect: ParsedPrice{Price: 1.234, Currency: "EUR"}},
	}

	for _, test := range testCases {
		got := ParsePrice(test.raw)
		require.Equal(t, test.expect, got, "raw: %q", test.raw)
	}
}

func TestNormalizeProductDefaults(t *testing.T) {
	product := NormalizeProduct(ProductInput{})

	require.True(t, strings.HasPrefix(product.Id, "nh_"))
	require.Len(t, product.Id, len("nh_")+8)
	require.Equal(t, "Produit sans nom", product.Name)
	require.Equal(t, float64(0), product.Price)
	require.Equal(t, "EUR", product.Currency)
	require.NotEmpty(t, product.ImageUrl)
	require.Equal(t, "", product.ShortDescription)
	require.Equal(t, Base+"/", product.ProductUrl)
	require.Nil(t, product.Category)
	require.Nil(t, product.Availability)
}

func TestNormalizeProductKeepsFields(t *testing.T) {
	category := "deck"
	input := ProductInput{
		Name:             "  Anchor chain 10mm  ",
		Price:            129.99,
		Currency:         "USD",
		ImageUrl:         "https://cdn.example.com/chain.jpg",
		ShortDescription: " galvanized steel ",
		ProductUrl:       "https://www.nautichandler.com/p/chain",
		Category:         &category,
	}

	product := NormalizeProduct(input)
	require.Equal(t, "Anchor chain 10mm", product.Name)
	require.Equal(t, 129.99, product.Price)
	require.Equal(t, "USD", product.Currency)
	require.Equal(t, "galvanized steel", product.ShortDescription)
	require.Equal(t, &category, product.Category)
}

func TestIdentityStability(t *testing.T) {
	input := ProductInput{
		Name:       "Anchor chain",
		Price:      29.9,
		Currency:   "EUR",
		ProductUrl: "https://www.nautichandler.com/p/chain",
	}

	first := NormalizeProduct(input)
	second := NormalizeProduct(input)
	require.Equal(t, first.Id, second.Id)
	require.Empty(t, cmp.Diff(first, second))

	variants := []ProductInput{
		{Name: "Anchor rope", Price: 29.9, Currency: "EUR", ProductUrl: input.ProductUrl},
		{Name: input.Name, Price: 30.9, Currency: "EUR", ProductUrl: input.ProductUrl},
		{Name: input.Name, Price: 29.9, Currency: "USD", ProductUrl: input.ProductUrl},
		{Name: input.Name, Price: 29.9, Currency: "EUR", ProductUrl: "https://www.nautichandler.com/p/rope"},
	}
	for _, variant := range variants {
		require.NotEqual(t, first.Id, NormalizeProduct(variant).Id)
	}
}

func TestEmptyIdentityKeyIsRandomized(t *testing.T) {
	first := NormalizeProduct(ProductInput{})
	second := NormalizeProduct(ProductInput{})

	// empty records stay well-formed but never dedupe against each other
	require.True(t, strings.HasPrefix(first.Id, "nh_"))
	require.NotEqual(t, first.Id, second.Id)
}

func TestExplicitIdWins(t *testing.T) {
	product := NormalizeProduct(ProductInput{Id: "nh_deadbeef", Name: "x"})
	require.Equal(t, "nh_deadbeef", product.Id)
}
