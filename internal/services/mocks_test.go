package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"stock-order-service/internal/clients/catalog"
	"stock-order-service/internal/models"
)

// MockCatalogReader is a mock implementation of CatalogReader
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

func (m *MockCatalogReader) FetchAllSuppliers(ctx context.Context) ([]models.Supplier, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Supplier), args.Error(1)
}

func (m *MockCatalogReader) FetchAllBrands(ctx context.Context) ([]models.Brand, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Brand), args.Error(1)
}

// MockCatalogWriter is a mock implementation of CatalogWriter
type MockCatalogWriter struct {
	mock.Mock
}

var _ CatalogWriter = (*MockCatalogWriter)(nil)

func (m *MockCatalogWriter) CreateSupplier(ctx context.Context, name, description string) (string, error) {
	args := m.Called(ctx, name, description)
	return args.String(0), args.Error(1)
}

func (m *MockCatalogWriter) CreateBrand(ctx context.Context, name string) (string, error) {
	args := m.Called(ctx, name)
	return args.String(0), args.Error(1)
}

func (m *MockCatalogWriter) CreateProduct(ctx context.Context, payload catalog.ProductCreate) (string, error) {
	args := m.Called(ctx, payload)
	return args.String(0), args.Error(1)
}

func (m *MockCatalogWriter) CreateStockOrder(ctx context.Context, payload catalog.StockOrderCreate) (*models.StockOrder, error) {
	args := m.Called(ctx, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StockOrder), args.Error(1)
}

func (m *MockCatalogWriter) AddStockOrderLine(ctx context.Context, stockOrderID string, line models.StockOrderLine) error {
	args := m.Called(ctx, stockOrderID, line)
	return args.Error(0)
}

// MockRunStore is a mock implementation of RunStore
type MockRunStore struct {
	mock.Mock
}

var _ RunStore = (*MockRunStore)(nil)

func (m *MockRunStore) Create(ctx context.Context, run *models.ImportRun) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

func (m *MockRunStore) Update(ctx context.Context, run *models.ImportRun) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}
