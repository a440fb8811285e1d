package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"stock-order-service/internal/clients/catalog"
	"stock-order-service/internal/models"
)

// CreationService creates catalog products for order lines that matched
// nothing. The whole unmatched set shares one brand (single supplier per run),
// so supplier and brand resolution happens once up front.
type CreationService struct {
	writer   CatalogWriter
	resolver *EntityResolver
	outletID string
	log      *logrus.Logger
}

// NewCreationService creates a new creation service
func NewCreationService(writer CatalogWriter, resolver *EntityResolver, outletID string, log *logrus.Logger) *CreationService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &CreationService{
		writer:   writer,
		resolver: resolver,
		outletID: outletID,
		log:      log,
	}
}

// CreateMissing creates one catalog product per unmatched line and returns
// the reconciled lines for the products that were created, plus per-line
// errors for the ones that were not. A failed line never aborts the batch;
// partial success is expected and reported in the run summary.
//
// If supplier or brand resolution fails, every line fails closed: no product
// is ever submitted with a missing supplier or brand id.
func (s *CreationService) CreateMissing(ctx context.Context, brandName string, unmatched []models.OrderLine) ([]models.ReconciledLine, []models.LineError) {
	if len(unmatched) == 0 {
		s.log.Info("No missing products to create")
		return []models.ReconciledLine{}, nil
	}

	supplierID, err := s.resolver.ResolveSupplier(ctx, brandName)
	if err == nil && supplierID == "" {
		err = fmt.Errorf("supplier %q resolved to an empty id", brandName)
	}
	var brandID string
	if err == nil {
		brandID, err = s.resolver.ResolveBrand(ctx, brandName)
		if err == nil && brandID == "" {
			err = fmt.Errorf("brand %q resolved to an empty id", brandName)
		}
	}
	if err != nil {
		s.log.WithError(err).Error("Supplier/brand resolution failed, skipping all product creation")
		errs := make([]models.LineError, 0, len(unmatched))
		for _, line := range unmatched {
			errs = append(errs, models.LineError{
				Row:     line.Row,
				SKU:     line.SKU,
				Code:    models.ErrCodeMissingEntity,
				Message: err.Error(),
			})
		}
		return []models.ReconciledLine{}, errs
	}

	created := make([]models.ReconciledLine, 0, len(unmatched))
	var lineErrs []models.LineError
	for _, line := range unmatched {
		supplyPrice, err := ParsePrice(line.WholesalePrice)
		if err != nil {
			lineErrs = append(lineErrs, models.LineError{
				Row:     line.Row,
				SKU:     line.SKU,
				Code:    models.ErrCodePriceParse,
				Message: fmt.Sprintf("wholesale price: %v", err),
			})
			continue
		}
		retailPrice, err := ParsePrice(line.RetailPrice)
		if err != nil {
			lineErrs = append(lineErrs, models.LineError{
				Row:     line.Row,
				SKU:     line.SKU,
				Code:    models.ErrCodePriceParse,
				Message: fmt.Sprintf("retail price: %v", err),
			})
			continue
		}

		payload := catalog.ProductCreate{
			Name:              line.ProductName,
			SupplierCode:      line.SKU,
			SupplyPrice:       supplyPrice,
			PriceExcludingTax: retailPrice,
			CustomSKU:         true,
			Type:              "standard",
			SupplierID:        supplierID,
			BrandID:           brandID,
			Inventory: []catalog.InventoryCreate{
				{CurrentAmount: 0, OutletID: s.outletID},
			},
		}

		productID, err := s.writer.CreateProduct(ctx, payload)
		if err != nil {
			s.log.WithError(err).WithField("sku", line.SKU).Error("Product creation failed, continuing with remaining lines")
			lineErrs = append(lineErrs, models.LineError{
				Row:     line.Row,
				SKU:     line.SKU,
				Code:    models.ErrCodeCreateFailed,
				Message: err.Error(),
			})
			continue
		}

		created = append(created, models.ReconciledLine{
			ProductID:    productID,
			SupplierCode: line.SKU,
			Quantity:     line.Quantity,
			UnitCost:     supplyPrice,
			BrandName:    line.BrandName,
		})
	}
	return created, lineErrs
}
