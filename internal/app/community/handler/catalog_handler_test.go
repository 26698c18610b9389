package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"septemberplums/internal/app/community/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) GetProducts(ctx context.Context, limit, skip string) (map[string]any, error) {
	args := m.Called(ctx, limit, skip)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]any), args.Error(1)
}

func (m *MockCatalogService) GetProduct(ctx context.Context, productID string) (map[string]any, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]any), args.Error(1)
}

func (m *MockCatalogService) SearchProducts(ctx context.Context, query string) (map[string]any, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]any), args.Error(1)
}

func newCatalogTestRouter(catalogService *MockCatalogService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewCatalogHandler(catalogService)

	router := gin.New()
	products := router.Group("/api/products")
	products.GET("", h.GetProducts)
	products.GET("/search", h.SearchProducts)
	products.GET("/:product_id", h.GetProduct)
	return router
}

func TestGetProducts_DefaultPagination(t *testing.T) {
	catalogService := new(MockCatalogService)
	payload := map[string]any{"products": []any{}, "total": float64(0)}
	catalogService.On("GetProducts", mock.Anything, "20", "0").Return(payload, nil)

	router := newCatalogTestRouter(catalogService)

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	catalogService.AssertExpectations(t)
}

func TestGetProducts_PaginationPassthrough(t *testing.T) {
	catalogService := new(MockCatalogService)
	payload := map[string]any{"products": []any{}}
	catalogService.On("GetProducts", mock.Anything, "5", "10").Return(payload, nil)

	router := newCatalogTestRouter(catalogService)

	req := httptest.NewRequest(http.MethodGet, "/api/products?limit=5&skip=10", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	catalogService.AssertExpectations(t)
}

func TestGetProduct_Success(t *testing.T) {
	catalogService := new(MockCatalogService)
	payload := map[string]any{
		"id":                       float64(1),
		"title":                    "Test Product",
		"community_comments_count": float64(3),
	}
	catalogService.On("GetProduct", mock.Anything, "1").Return(payload, nil)

	router := newCatalogTestRouter(catalogService)

	req := httptest.NewRequest(http.MethodGet, "/api/products/1", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Test Product", body["title"])
	assert.Equal(t, float64(3), body["community_comments_count"])
}

func TestGetProduct_NotFound(t *testing.T) {
	catalogService := new(MockCatalogService)
	catalogService.On("GetProduct", mock.Anything, "999").Return(nil, service.ErrProductNotFound)

	router := newCatalogTestRouter(catalogService)

	req := httptest.NewRequest(http.MethodGet, "/api/products/999", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Product not found")
}

func TestGetProduct_UpstreamErrorPassthrough(t *testing.T) {
	catalogService := new(MockCatalogService)
	catalogService.On("GetProduct", mock.Anything, "1").Return(nil, errors.New("upstream catalog returned status 503"))

	router := newCatalogTestRouter(catalogService)

	req := httptest.NewRequest(http.MethodGet, "/api/products/1", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "upstream catalog returned status 503")
}

func TestSearchProducts_Success(t *testing.T) {
	catalogService := new(MockCatalogService)
	payload := map[string]any{"products": []any{}}
	catalogService.On("SearchProducts", mock.Anything, "phone").Return(payload, nil)

	router := newCatalogTestRouter(catalogService)

	req := httptest.NewRequest(http.MethodGet, "/api/products/search?q=phone", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	catalogService.AssertExpectations(t)
}
