package services

import (
	"strings"

	"stock-order-service/internal/models"
)

// matchKey is the composite join key between an order line and a catalog
// product: the exact SKU plus the brand name folded for case and surrounding
// whitespace. Brand folding matches the resolver's lookup policy so the two
// stages cannot disagree about whether a brand "exists".
type matchKey struct {
	sku   string
	brand string
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Match joins order lines against the catalog on (SKU, brand name) and
// partitions them into matched and unmatched sets. The partition is total:
// every order line lands in exactly one output, and both outputs are always
// valid (possibly empty) slices.
//
// Catalog entries lacking a supplier code or brand name are not candidates.
func Match(catalogProducts []models.CatalogProduct, order []models.OrderLine) ([]models.MatchedLine, []models.OrderLine) {
	candidates := make(map[matchKey]models.CatalogProduct, len(catalogProducts))
	for _, p := range catalogProducts {
		if p.SupplierCode == "" || p.BrandName() == "" {
			continue
		}
		key := matchKey{sku: p.SupplierCode, brand: normalizeName(p.BrandName())}
		if _, exists := candidates[key]; !exists {
			candidates[key] = p
		}
	}

	matched := make([]models.MatchedLine, 0, len(order))
	unmatched := make([]models.OrderLine, 0)
	for _, line := range order {
		key := matchKey{sku: line.SKU, brand: normalizeName(line.BrandName)}
		if p, ok := candidates[key]; ok {
			matched = append(matched, models.MatchedLine{Product: p, Line: line})
		} else {
			unmatched = append(unmatched, line)
		}
	}
	return matched, unmatched
}
