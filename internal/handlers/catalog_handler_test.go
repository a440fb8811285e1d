package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"stock-order-service/internal/clients/catalog"
	"stock-order-service/internal/models"
)

type MockCatalogReader struct {
	mock.Mock
}

var _ CatalogReader = (*MockCatalogReader)(nil)

func (m *MockCatalogReader) FetchAllProducts(ctx context.Context) ([]models.CatalogProduct, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CatalogProduct), args.Error(1)
}

func (m *MockCatalogReader) FetchAllInventory(ctx context.Context) ([]models.InventoryRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.InventoryRecord), args.Error(1)
}

func newCatalogRouter(reader CatalogReader) *gin.Engine {
	gin.SetMode(gin.TestMode)
	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)
	handler := NewCatalogHandler(reader, log)

	router := gin.New()
	router.GET("/api/v1/catalog/products/export", handler.ExportProducts)
	router.GET("/api/v1/catalog/inventory", handler.GetInventory)
	return router
}

func TestExportProductsWritesCSV(t *testing.T) {
	reader := new(MockCatalogReader)
	reader.On("FetchAllProducts", mock.Anything).Return([]models.CatalogProduct{
		{
			ID:                "p1",
			Name:              "Candle",
			SupplierCode:      "ABC1",
			SupplyPrice:       14.70,
			PriceExcludingTax: 29.40,
			Brand:             &models.EntityRef{ID: "br-1", Name: "Acme"},
		},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/products/export", nil)
	w := httptest.NewRecorder()
	newCatalogRouter(reader).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Empty(t, w.Header().Get("X-Partial-Result"))

	body := w.Body.String()
	lines := strings.Split(strings.TrimSpace(body), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "id,name,supplier_code,brand_name,supply_price,price_excluding_tax", lines[0])
	assert.Equal(t, "p1,Candle,ABC1,Acme,14.7,29.4", lines[1])
}

func TestExportProductsFlagsPartialSnapshot(t *testing.T) {
	reader := new(MockCatalogReader)
	partial := fmt.Errorf("GET /products: status 502: %w", catalog.ErrPartialFetch)
	reader.On("FetchAllProducts", mock.Anything).Return([]models.CatalogProduct{
		{ID: "p1", Name: "Candle", SupplierCode: "ABC1"},
	}, partial)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/products/export", nil)
	w := httptest.NewRecorder()
	newCatalogRouter(reader).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "true", w.Header().Get("X-Partial-Result"))
	assert.Contains(t, w.Body.String(), "p1")
}

func TestExportProductsFailsOnHardError(t *testing.T) {
	reader := new(MockCatalogReader)
	reader.On("FetchAllProducts", mock.Anything).Return(nil, errors.New("connection refused"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/products/export", nil)
	w := httptest.NewRecorder()
	newCatalogRouter(reader).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "FETCH_FAILED")
}

func TestGetInventoryReturnsLevels(t *testing.T) {
	reader := new(MockCatalogReader)
	reader.On("FetchAllInventory", mock.Anything).Return([]models.InventoryRecord{
		{ID: "inv-1", ProductID: "p1", OutletID: "outlet-1", CurrentAmount: 12},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/inventory", nil)
	w := httptest.NewRecorder()
	newCatalogRouter(reader).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"product_id":"p1"`)
}
