package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"stock-order-service/internal/models"
)

func TestResolveSupplierReturnsExistingWithoutCreating(t *testing.T) {
	reader := new(MockCatalogReader)
	writer := new(MockCatalogWriter)
	reader.On("FetchAllSuppliers", mock.Anything).Return([]models.Supplier{
		{ID: "sup-1", Name: "Acme"},
	}, nil).Once()

	r := NewEntityResolver(reader, writer, nil)

	// Any case/whitespace variant of an existing name resolves to the same
	// id and issues zero create calls
	for _, name := range []string{"Acme", "acme", " ACME "} {
		id, err := r.ResolveSupplier(context.Background(), name)
		assert.NoError(t, err)
		assert.Equal(t, "sup-1", id)
	}

	writer.AssertNotCalled(t, "CreateSupplier", mock.Anything, mock.Anything, mock.Anything)
	// The per-run cache means the collection was fetched exactly once
	reader.AssertNumberOfCalls(t, "FetchAllSuppliers", 1)
}

func TestResolveSupplierCreatesOnMiss(t *testing.T) {
	reader := new(MockCatalogReader)
	writer := new(MockCatalogWriter)
	reader.On("FetchAllSuppliers", mock.Anything).Return([]models.Supplier{}, nil).Once()
	writer.On("CreateSupplier", mock.Anything, "NewCo", "").Return("sup-9", nil).Once()

	r := NewEntityResolver(reader, writer, nil)

	id, err := r.ResolveSupplier(context.Background(), "NewCo")
	assert.NoError(t, err)
	assert.Equal(t, "sup-9", id)

	// Second resolution hits the cache: no fetch, no second create
	id, err = r.ResolveSupplier(context.Background(), "newco")
	assert.NoError(t, err)
	assert.Equal(t, "sup-9", id)

	reader.AssertNumberOfCalls(t, "FetchAllSuppliers", 1)
	writer.AssertNumberOfCalls(t, "CreateSupplier", 1)
}

func TestResolveBrandCreatesOnMiss(t *testing.T) {
	reader := new(MockCatalogReader)
	writer := new(MockCatalogWriter)
	reader.On("FetchAllBrands", mock.Anything).Return([]models.Brand{
		{ID: "br-1", Name: "Acme"},
	}, nil).Once()
	writer.On("CreateBrand", mock.Anything, "NewCo").Return("br-9", nil).Once()

	r := NewEntityResolver(reader, writer, nil)

	id, err := r.ResolveBrand(context.Background(), "NewCo")
	assert.NoError(t, err)
	assert.Equal(t, "br-9", id)
}

func TestResolveFailsClosedOnFetchError(t *testing.T) {
	reader := new(MockCatalogReader)
	writer := new(MockCatalogWriter)
	reader.On("FetchAllSuppliers", mock.Anything).Return(nil, errors.New("status 503"))

	r := NewEntityResolver(reader, writer, nil)

	id, err := r.ResolveSupplier(context.Background(), "Acme")
	assert.Error(t, err)
	assert.Empty(t, id)

	// A partial listing must never lead to a blind create
	writer.AssertNotCalled(t, "CreateSupplier", mock.Anything, mock.Anything, mock.Anything)
}

func TestResolveFailsOnCreateError(t *testing.T) {
	reader := new(MockCatalogReader)
	writer := new(MockCatalogWriter)
	reader.On("FetchAllSuppliers", mock.Anything).Return([]models.Supplier{}, nil)
	writer.On("CreateSupplier", mock.Anything, "NewCo", "").Return("", errors.New("status 500"))

	r := NewEntityResolver(reader, writer, nil)

	id, err := r.ResolveSupplier(context.Background(), "NewCo")
	assert.Error(t, err)
	assert.Empty(t, id)
}

func TestResolveRejectsEmptyName(t *testing.T) {
	r := NewEntityResolver(new(MockCatalogReader), new(MockCatalogWriter), nil)

	_, err := r.ResolveSupplier(context.Background(), "   ")
	assert.Error(t, err)
}
