package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"stock-order-service/internal/clients/catalog"
	"stock-order-service/internal/models"
)

// StockOrderService creates the stock-order shell and submits its line items
type StockOrderService struct {
	writer     CatalogWriter
	namePrefix string
	log        *logrus.Logger
}

// NewStockOrderService creates a new stock order service
func NewStockOrderService(writer CatalogWriter, namePrefix string, log *logrus.Logger) *StockOrderService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &StockOrderService{
		writer:     writer,
		namePrefix: namePrefix,
		log:        log,
	}
}

// CreateShell creates an empty stock order scoped to an outlet and supplier.
// The order opens in OPEN status; line items are appended afterwards and are
// not atomic with shell creation.
func (s *StockOrderService) CreateShell(ctx context.Context, outletID, supplierID, brandName string) (*models.StockOrder, error) {
	payload := catalog.StockOrderCreate{
		Name:       fmt.Sprintf("%s - %s", s.namePrefix, brandName),
		OutletID:   outletID,
		Type:       "SUPPLIER",
		Status:     "OPEN",
		SupplierID: supplierID,
	}
	order, err := s.writer.CreateStockOrder(ctx, payload)
	if err != nil {
		return nil, err
	}
	return order, nil
}

// AddLines posts reconciled lines to the stock order one at a time; there is
// no batch endpoint. A failed line is logged and excluded from the added set,
// never aborting the remaining lines. The requested/added count mismatch is
// the caller's partial-submission signal.
func (s *StockOrderService) AddLines(ctx context.Context, stockOrderID string, lines []models.ReconciledLine) ([]models.StockOrderLine, []models.LineError) {
	added := make([]models.StockOrderLine, 0, len(lines))
	var failed []models.LineError

	for _, line := range lines {
		item := models.StockOrderLine{
			ProductID: line.ProductID,
			Count:     line.Quantity,
			Cost:      line.UnitCost,
		}
		if err := s.writer.AddStockOrderLine(ctx, stockOrderID, item); err != nil {
			s.log.WithError(err).WithField("productId", line.ProductID).Error("Failed to add line to stock order")
			failed = append(failed, models.LineError{
				ProductID: line.ProductID,
				SKU:       line.SupplierCode,
				Code:      models.ErrCodeLineRejected,
				Message:   err.Error(),
			})
			continue
		}
		added = append(added, item)
	}

	s.log.WithFields(logrus.Fields{
		"stockOrderId": stockOrderID,
		"added":        len(added),
		"failed":       len(failed),
	}).Info("Stock order lines submitted")
	return added, failed
}
