package nautic

import (
	"strings"
)

// FilterProducts keeps the records whose name+description contains every
// whitespace-separated term of the query as a case-insensitive
// substring. An empty query matches everything.
func FilterProducts(products []Product, q string) []Product {
	terms := strings.Fields(strings.ToLower(q))
	if len(terms) == 0 {
		return products
	}

	var matched []Product
	for _, product := range products {
		haystack := strings.ToLower(product.Name + " " + product.ShortDescription)
		ok := true
		for _, term := range terms {
			if !strings.Contains(haystack, term) {
				ok = false
				break
			}
		}
		if ok {
			matched = append(matched, product)
		}
	}
	return matched
}

// DedupeProducts drops later records sharing a productUrl (falling back
// to id when the url is empty) with an earlier one, preserving order.
func DedupeProducts(products []Product) []Product {
	seen := map[string]bool{}
	var unique []Product
	for _, product := range products {
		key := product.ProductUrl
		if key == "" {
			key = product.Id
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, product)
	}
	return unique
}

// Paginate slices out the 1-indexed page of the given size.
func Paginate(products []Product, page, pageSize int) []Product {
	if page < 1 {
		page = 1
	}
	start := (page - 1) * pageSize
	if start >= len(products) {
		return nil
	}
	end := start + pageSize
	if end > len(products) {
		end = len(products)
	}
	return products[start:end]
}
