package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"stock-order-service/internal/models"
)

func TestMergeUsesOrderQuantityForMatchedLines(t *testing.T) {
	matched := []models.MatchedLine{
		{
			Product: catalogProduct("p1", "ABC1", "Acme"),
			Line:    models.OrderLine{SKU: "ABC1", BrandName: "Acme", Quantity: 7, WholesalePrice: "$14.70"},
		},
	}

	out := NewReconciler(nil).Merge(matched, nil)

	assert.Len(t, out, 1)
	// The order line's quantity wins, never the catalog's unrelated
	// inventory count
	assert.Equal(t, 7, out[0].Quantity)
	assert.Equal(t, "p1", out[0].ProductID)
	assert.Equal(t, 14.70, out[0].UnitCost)
}

func TestMergeDefaultsQuantityToOne(t *testing.T) {
	matched := []models.MatchedLine{
		{
			Product: catalogProduct("p1", "ABC1", "Acme"),
			Line:    models.OrderLine{SKU: "ABC1", BrandName: "Acme", WholesalePrice: "$5.00"},
		},
	}
	created := []models.ReconciledLine{
		{ProductID: "p2", SupplierCode: "XYZ9", UnitCost: 3.50},
	}

	out := NewReconciler(nil).Merge(matched, created)

	assert.Len(t, out, 2)
	assert.Equal(t, 1, out[0].Quantity)
	assert.Equal(t, 1, out[1].Quantity)
}

func TestMergeDropsRowsWithoutProductID(t *testing.T) {
	matched := []models.MatchedLine{
		{Product: models.CatalogProduct{SupplierCode: "ABC1"}, Line: models.OrderLine{SKU: "ABC1"}},
	}
	created := []models.ReconciledLine{
		{SupplierCode: "XYZ9", Quantity: 2},
		{ProductID: "p3", SupplierCode: "XYZ8", Quantity: 2, UnitCost: 1.00},
	}

	out := NewReconciler(nil).Merge(matched, created)

	assert.Len(t, out, 1)
	assert.Equal(t, "p3", out[0].ProductID)
}

func TestMergeCleansMatchedCostLeniently(t *testing.T) {
	matched := []models.MatchedLine{
		{
			Product: catalogProduct("p1", "ABC1", "Acme"),
			Line:    models.OrderLine{SKU: "ABC1", Quantity: 2, WholesalePrice: "garbage"},
		},
	}

	out := NewReconciler(nil).Merge(matched, nil)

	// The matched path degrades an unparseable price to zero instead of
	// failing the line
	assert.Len(t, out, 1)
	assert.Equal(t, 0.0, out[0].UnitCost)
}
