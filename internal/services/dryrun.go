package services

import (
	"context"

	"github.com/sirupsen/logrus"

	"stock-order-service/internal/clients/catalog"
	"stock-order-service/internal/models"
)

// Simulated identifiers returned by the dry-run writer. Product ids embed the
// supplier code so a dry run's summary is traceable back to order lines.
const (
	simulatedSupplierID   = "simulated-supplier-id"
	simulatedBrandID      = "simulated-brand-id"
	simulatedStockOrderID = "simulated-stock-order-id"
	simulatedProductIDFmt = "dry_"
)

// DryRunWriter is a CatalogWriter that performs no network mutations. Every
// create is logged and answered with a fabricated identifier so the rest of
// the pipeline runs unchanged. Reads are not intercepted; dry runs see the
// real catalog.
type DryRunWriter struct {
	log *logrus.Logger
}

// NewDryRunWriter creates a writer that simulates all mutations
func NewDryRunWriter(log *logrus.Logger) *DryRunWriter {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &DryRunWriter{log: log}
}

// CreateSupplier simulates supplier creation
func (w *DryRunWriter) CreateSupplier(ctx context.Context, name, description string) (string, error) {
	w.log.WithField("supplier", name).Info("[DRY RUN] Would create supplier")
	return simulatedSupplierID, nil
}

// CreateBrand simulates brand creation
func (w *DryRunWriter) CreateBrand(ctx context.Context, name string) (string, error) {
	w.log.WithField("brand", name).Info("[DRY RUN] Would create brand")
	return simulatedBrandID, nil
}

// CreateProduct simulates product creation
func (w *DryRunWriter) CreateProduct(ctx context.Context, payload catalog.ProductCreate) (string, error) {
	w.log.WithFields(logrus.Fields{
		"product": payload.Name,
		"sku":     payload.SupplierCode,
	}).Info("[DRY RUN] Would create product")
	return simulatedProductIDFmt + payload.SupplierCode, nil
}

// CreateStockOrder simulates stock-order shell creation
func (w *DryRunWriter) CreateStockOrder(ctx context.Context, payload catalog.StockOrderCreate) (*models.StockOrder, error) {
	w.log.WithFields(logrus.Fields{
		"name":   payload.Name,
		"outlet": payload.OutletID,
	}).Info("[DRY RUN] Would create stock order")
	return &models.StockOrder{
		ID:         simulatedStockOrderID,
		Name:       payload.Name,
		OutletID:   payload.OutletID,
		SupplierID: payload.SupplierID,
		Type:       payload.Type,
		Status:     payload.Status,
	}, nil
}

// AddStockOrderLine simulates posting a line item
func (w *DryRunWriter) AddStockOrderLine(ctx context.Context, stockOrderID string, line models.StockOrderLine) error {
	w.log.WithFields(logrus.Fields{
		"stockOrderId": stockOrderID,
		"productId":    line.ProductID,
		"count":        line.Count,
	}).Info("[DRY RUN] Would add line to stock order")
	return nil
}
