package services

import (
	"context"

	"stock-order-service/internal/clients/catalog"
	"stock-order-service/internal/models"
)

// CatalogReader is the read side of the POS catalog consumed by the pipeline
type CatalogReader interface {
	FetchAllProducts(ctx context.Context) ([]models.CatalogProduct, error)
	FetchAllSuppliers(ctx context.Context) ([]models.Supplier, error)
	FetchAllBrands(ctx context.Context) ([]models.Brand, error)
}

// CatalogWriter is the write side of the POS catalog. In dry-run mode the
// real writer is swapped for a simulator; reads always go to the real client.
type CatalogWriter interface {
	CreateSupplier(ctx context.Context, name, description string) (string, error)
	CreateBrand(ctx context.Context, name string) (string, error)
	CreateProduct(ctx context.Context, payload catalog.ProductCreate) (string, error)
	CreateStockOrder(ctx context.Context, payload catalog.StockOrderCreate) (*models.StockOrder, error)
	AddStockOrderLine(ctx context.Context, stockOrderID string, line models.StockOrderLine) error
}

// RunStore persists import-run history. The pipeline tolerates a nil store:
// history is operational convenience, not part of the reconciliation contract.
type RunStore interface {
	Create(ctx context.Context, run *models.ImportRun) error
	Update(ctx context.Context, run *models.ImportRun) error
}
