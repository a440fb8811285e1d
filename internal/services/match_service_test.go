package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"stock-order-service/internal/models"
)

func catalogProduct(id, sku, brand string) models.CatalogProduct {
	p := models.CatalogProduct{ID: id, SupplierCode: sku}
	if brand != "" {
		p.Brand = &models.EntityRef{ID: "b-" + brand, Name: brand}
	}
	return p
}

func TestMatchPartitionsEveryLineExactlyOnce(t *testing.T) {
	catalogProducts := []models.CatalogProduct{
		catalogProduct("p1", "ABC1", "Acme"),
		catalogProduct("p2", "ABC2", "Acme"),
	}
	order := []models.OrderLine{
		{SKU: "ABC1", BrandName: "Acme", Quantity: 3},
		{SKU: "ABC2", BrandName: "Acme", Quantity: 1},
		{SKU: "XYZ9", BrandName: "Acme", Quantity: 2},
	}

	matched, unmatched := Match(catalogProducts, order)

	assert.Len(t, matched, 2)
	assert.Len(t, unmatched, 1)
	assert.Equal(t, len(order), len(matched)+len(unmatched))

	// Matched lines keep their originating order line
	assert.Equal(t, "p1", matched[0].Product.ID)
	assert.Equal(t, 3, matched[0].Line.Quantity)
	assert.Equal(t, "XYZ9", unmatched[0].SKU)
}

func TestMatchRequiresBothSKUAndBrand(t *testing.T) {
	catalogProducts := []models.CatalogProduct{
		catalogProduct("p1", "ABC1", "Acme"),
	}
	order := []models.OrderLine{
		{SKU: "ABC1", BrandName: "OtherBrand"},
	}

	matched, unmatched := Match(catalogProducts, order)
	assert.Empty(t, matched)
	assert.Len(t, unmatched, 1)
}

func TestMatchBrandIsCaseInsensitive(t *testing.T) {
	catalogProducts := []models.CatalogProduct{
		catalogProduct("p1", "ABC1", "Acme"),
	}
	order := []models.OrderLine{
		{SKU: "ABC1", BrandName: "  ACME  "},
	}

	matched, unmatched := Match(catalogProducts, order)
	assert.Len(t, matched, 1)
	assert.Empty(t, unmatched)
}

func TestMatchSKUIsExact(t *testing.T) {
	catalogProducts := []models.CatalogProduct{
		catalogProduct("p1", "ABC1", "Acme"),
	}
	order := []models.OrderLine{
		{SKU: "abc1", BrandName: "Acme"},
	}

	matched, unmatched := Match(catalogProducts, order)
	assert.Empty(t, matched)
	assert.Len(t, unmatched, 1)
}

func TestMatchSkipsCatalogRowsMissingKeyFields(t *testing.T) {
	catalogProducts := []models.CatalogProduct{
		catalogProduct("p1", "", "Acme"),  // no supplier code
		catalogProduct("p2", "ABC1", ""),  // no brand
		{ID: "p3", SupplierCode: "ABC1"},  // nil brand ref
	}
	order := []models.OrderLine{
		{SKU: "ABC1", BrandName: "Acme"},
	}

	matched, unmatched := Match(catalogProducts, order)
	assert.Empty(t, matched)
	assert.Len(t, unmatched, 1)
}

func TestMatchEmptyInputsReturnValidSlices(t *testing.T) {
	matched, unmatched := Match(nil, nil)
	assert.NotNil(t, matched)
	assert.NotNil(t, unmatched)
	assert.Empty(t, matched)
	assert.Empty(t, unmatched)
}
