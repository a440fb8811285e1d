package handlers

import (
	"context"
	"encoding/csv"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"stock-order-service/internal/clients/catalog"
	"stock-order-service/internal/models"
)

// CatalogReader is the slice of the catalog client the handler needs
type CatalogReader interface {
	FetchAllProducts(ctx context.Context) ([]models.CatalogProduct, error)
	FetchAllInventory(ctx context.Context) ([]models.InventoryRecord, error)
}

// CatalogHandler exposes read-only catalog snapshots
type CatalogHandler struct {
	reader CatalogReader
	log    *logrus.Logger
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(reader CatalogReader, log *logrus.Logger) *CatalogHandler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &CatalogHandler{reader: reader, log: log}
}

// ExportProducts streams the full product catalog as CSV
// GET /api/v1/catalog/products/export
func (h *CatalogHandler) ExportProducts(c *gin.Context) {
	products, err := h.reader.FetchAllProducts(c.Request.Context())
	if err != nil {
		if !errors.Is(err, catalog.ErrPartialFetch) {
			c.JSON(http.StatusBadGateway, models.ErrorResponse{
				Success: false,
				Error:   models.Error{Code: "FETCH_FAILED", Message: err.Error()},
			})
			return
		}
		// Partial snapshots are still useful; flag them for the caller
		h.log.WithError(err).Warn("Exporting partial product snapshot")
		c.Header("X-Partial-Result", "true")
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment; filename=catalog_products.csv")

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write([]string{"id", "name", "supplier_code", "brand_name", "supply_price", "price_excluding_tax"})
	for _, p := range products {
		writer.Write([]string{
			p.ID,
			p.Name,
			p.SupplierCode,
			p.BrandName(),
			strconv.FormatFloat(p.SupplyPrice, 'f', -1, 64),
			strconv.FormatFloat(p.PriceExcludingTax, 'f', -1, 64),
		})
	}
}

// GetInventory returns all inventory levels
// GET /api/v1/catalog/inventory
func (h *CatalogHandler) GetInventory(c *gin.Context) {
	inventory, err := h.reader.FetchAllInventory(c.Request.Context())
	if err != nil {
		if !errors.Is(err, catalog.ErrPartialFetch) {
			c.JSON(http.StatusBadGateway, models.ErrorResponse{
				Success: false,
				Error:   models.Error{Code: "FETCH_FAILED", Message: err.Error()},
			})
			return
		}
		h.log.WithError(err).Warn("Returning partial inventory snapshot")
		c.Header("X-Partial-Result", "true")
	}

	c.JSON(http.StatusOK, models.SuccessResponse{
		Success: true,
		Data:    inventory,
	})
}
