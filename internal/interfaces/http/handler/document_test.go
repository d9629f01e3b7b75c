package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	billingapp "github.com/revenda/backend/internal/application/billing"
	"github.com/revenda/backend/internal/domain/billing"
	"github.com/revenda/backend/internal/domain/inventory"
	"github.com/revenda/backend/internal/domain/shared"
	"github.com/revenda/backend/internal/interfaces/http/dto"
)

// MockDocumentRepository implements billing.DocumentRepository for testing
type MockDocumentRepository struct {
	mock.Mock
}

func (m *MockDocumentRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Document, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Document), args.Error(1)
}

func (m *MockDocumentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]billing.Document, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.Document), args.Error(1)
}

func (m *MockDocumentRepository) FindByKind(ctx context.Context, kind billing.DocumentKind, filter shared.Filter) ([]billing.Document, error) {
	args := m.Called(ctx, kind, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.Document), args.Error(1)
}

func (m *MockDocumentRepository) FindFinalsByItem(ctx context.Context, itemID uuid.UUID) ([]billing.Document, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.Document), args.Error(1)
}

func (m *MockDocumentRepository) NextNumber(ctx context.Context, kind billing.DocumentKind) (int64, error) {
	args := m.Called(ctx, kind)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDocumentRepository) SumPayableByKind(ctx context.Context, kind billing.DocumentKind) (decimal.Decimal, error) {
	args := m.Called(ctx, kind)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockDocumentRepository) Save(ctx context.Context, doc *billing.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockDocumentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDocumentRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockInventoryItemRepository implements inventory.InventoryItemRepository for testing
type MockInventoryItemRepository struct {
	mock.Mock
}

func (m *MockInventoryItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.InventoryItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.InventoryItem), args.Error(1)
}

func (m *MockInventoryItemRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.InventoryItem, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.InventoryItem), args.Error(1)
}

func (m *MockInventoryItemRepository) FindAvailable(ctx context.Context, includeID *uuid.UUID) ([]inventory.InventoryItem, error) {
	args := m.Called(ctx, includeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.InventoryItem), args.Error(1)
}

func (m *MockInventoryItemRepository) Save(ctx context.Context, item *inventory.InventoryItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockInventoryItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockInventoryItemRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func setupDocumentHandler(t *testing.T) (*gin.Engine, *MockDocumentRepository, *MockInventoryItemRepository) {
	docRepo := new(MockDocumentRepository)
	itemRepo := new(MockInventoryItemRepository)
	service := billingapp.NewDocumentService(docRepo, itemRepo)
	handler := NewDocumentHandler(service)

	engine := gin.New()
	handler.RegisterRoutes(engine.Group("/api/v1"))
	return engine, docRepo, itemRepo
}

func newCatalogItem(t *testing.T, reserved bool) *inventory.InventoryItem {
	item, err := inventory.NewInventoryItem("smartphone", "Apple", "iPhone 15", "256GB", "Black", inventory.ConditionNew, decimal.NewFromInt(90000))
	require.NoError(t, err)
	item.ClearDomainEvents()
	if reserved {
		item.Reserve()
		item.ClearDomainEvents()
	}
	return item
}

func issueBody(itemID uuid.UUID, isFinal bool) []byte {
	body, _ := json.Marshal(map[string]any{
		"customer_name": "Maria dos Santos",
		"item_id":       itemID.String(),
		"contract_type": "TWO_INSTALLMENTS",
		"base_price":    100000,
		"discount":      0,
		"is_final":      isFinal,
	})
	return body
}

func TestDocumentHandler_Issue(t *testing.T) {
	t.Run("issues a proforma", func(t *testing.T) {
		engine, docRepo, itemRepo := setupDocumentHandler(t)

		item := newCatalogItem(t, false)
		itemRepo.On("FindByID", mock.Anything, item.ID).Return(item, nil)
		docRepo.On("NextNumber", mock.Anything, billing.KindProforma).Return(int64(1), nil)
		docRepo.On("Save", mock.Anything, mock.AnythingOfType("*billing.Document")).Return(nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/api/v1/documents", bytes.NewReader(issueBody(item.ID, false)))
		req.Header.Set("Content-Type", "application/json")
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
	})

	t.Run("rejects missing customer name", func(t *testing.T) {
		engine, _, _ := setupDocumentHandler(t)

		body, _ := json.Marshal(map[string]any{
			"item_id":       uuid.New().String(),
			"contract_type": "ORDER",
			"base_price":    100000,
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/api/v1/documents", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects unknown contract type", func(t *testing.T) {
		engine, _, _ := setupDocumentHandler(t)

		body, _ := json.Marshal(map[string]any{
			"customer_name": "Maria dos Santos",
			"item_id":       uuid.New().String(),
			"contract_type": "YEARLY",
			"base_price":    100000,
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/api/v1/documents", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("returns conflict for reserved item on final", func(t *testing.T) {
		engine, _, itemRepo := setupDocumentHandler(t)

		item := newCatalogItem(t, true)
		itemRepo.On("FindByID", mock.Anything, item.ID).Return(item, nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/api/v1/documents", bytes.NewReader(issueBody(item.ID, true)))
		req.Header.Set("Content-Type", "application/json")
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeItemReserved, resp.Error.Code)
	})
}

func TestDocumentHandler_GetByID(t *testing.T) {
	t.Run("returns not found for missing document", func(t *testing.T) {
		engine, docRepo, _ := setupDocumentHandler(t)

		documentID := uuid.New()
		docRepo.On("FindByID", mock.Anything, documentID).Return(nil, shared.ErrNotFound)

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/documents/"+documentID.String(), nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("rejects malformed document id", func(t *testing.T) {
		engine, _, _ := setupDocumentHandler(t)

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/documents/not-a-uuid", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestDocumentHandler_List(t *testing.T) {
	t.Run("rejects unknown kind filter", func(t *testing.T) {
		engine, _, _ := setupDocumentHandler(t)

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/documents?kind=RECEIPT", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("filters by kind", func(t *testing.T) {
		engine, docRepo, _ := setupDocumentHandler(t)

		docRepo.On("FindByKind", mock.Anything, billing.KindProforma, mock.Anything).Return([]billing.Document{}, nil)
		docRepo.On("Count", mock.Anything, mock.Anything).Return(int64(0), nil)

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/documents?kind=PROFORMA", nil))

		assert.Equal(t, http.StatusOK, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotNil(t, resp.Meta)
		assert.Equal(t, int64(0), resp.Meta.Total)
	})
}

func TestDocumentHandler_Delete(t *testing.T) {
	engine, docRepo, itemRepo := setupDocumentHandler(t)

	item := newCatalogItem(t, true)
	final, err := billing.NewDocument(billing.KindFinal, 1,
		billing.CustomerInfo{Name: "Maria dos Santos"}, item.ID,
		billing.ProductSnapshot{Brand: "Apple", Model: "iPhone 15"},
		billing.ContractOrder, decimal.NewFromInt(1000), decimal.Zero)
	require.NoError(t, err)

	docRepo.On("FindByID", mock.Anything, final.ID).Return(final, nil)
	docRepo.On("Delete", mock.Anything, final.ID).Return(nil)
	docRepo.On("FindFinalsByItem", mock.Anything, item.ID).Return([]billing.Document{}, nil)
	itemRepo.On("FindByID", mock.Anything, item.ID).Return(item, nil)
	itemRepo.On("Save", mock.Anything, item).Return(nil)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest("DELETE", "/api/v1/documents/"+final.ID.String(), nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.False(t, item.Reserved)
}
