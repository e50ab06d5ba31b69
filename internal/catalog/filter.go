package catalog

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Filter sort keys, mirroring the storefront sort selector.
const (
	FilterSortNewest    = "newest"
	FilterSortPriceLow  = "price-low"
	FilterSortPriceHigh = "price-high"
	FilterSortNameAsc   = "name"
)

// Price buckets accepted by Criteria.Price. "all" (or empty) disables the filter.
const (
	PriceAll      = "all"
	PriceUnder50  = "0-50"
	Price50To100  = "50-100"
	Price100To200 = "100-200"
	PriceOver200  = "200+"
)

// Criteria describes one run of the filter/sort pipeline. Filters compose
// with logical AND; the sort is applied last.
type Criteria struct {
	Query string // case-insensitive substring over name and brand
	Brand string // exact brand, or "all"/empty for any
	Price string // price bucket, or "all"/empty for any
	Sort  string // one of the FilterSort constants; default newest-first
}

// Apply runs the pipeline over products and returns a new, ordered slice.
// The input is never mutated, equal sort keys keep their input order, and
// re-running with the same inputs yields the same output.
func Apply(products []Product, c Criteria) []Product {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if matchesQuery(p, c.Query) && matchesBrand(p, c.Brand) && matchesPrice(p, c.Price) {
			out = append(out, p)
		}
	}
	sortProducts(out, c.Sort)
	return out
}

func matchesQuery(p Product, q string) bool {
	q = strings.TrimSpace(q)
	if q == "" {
		return true
	}
	q = strings.ToLower(q)
	return strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Brand), q)
}

func matchesBrand(p Product, brand string) bool {
	if brand == "" || brand == "all" {
		return true
	}
	return p.Brand == brand
}

var (
	price50  = decimal.NewFromInt(50)
	price100 = decimal.NewFromInt(100)
	price200 = decimal.NewFromInt(200)
)

func matchesPrice(p Product, bucket string) bool {
	switch bucket {
	case "", PriceAll:
		return true
	case PriceUnder50:
		return p.Price.LessThanOrEqual(price50)
	case Price50To100:
		return p.Price.GreaterThan(price50) && p.Price.LessThanOrEqual(price100)
	case Price100To200:
		return p.Price.GreaterThan(price100) && p.Price.LessThanOrEqual(price200)
	case PriceOver200:
		return p.Price.GreaterThan(price200)
	default:
		// unknown bucket filters nothing out
		return true
	}
}

func sortProducts(products []Product, key string) {
	switch key {
	case FilterSortPriceLow:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price.LessThan(products[j].Price)
		})
	case FilterSortPriceHigh:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price.GreaterThan(products[j].Price)
		})
	case FilterSortNameAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Name < products[j].Name
		})
	default: // newest first
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].CreatedAt.After(products[j].CreatedAt)
		})
	}
}
