package handler

import (
	"context"
	"errors"
	"net/http"

	"septemberplums/internal/app/community/service"

	"github.com/gin-gonic/gin"
)

type CatalogServiceInterface interface {
	GetProducts(ctx context.Context, limit, skip string) (map[string]any, error)
	GetProduct(ctx context.Context, productID string) (map[string]any, error)
	SearchProducts(ctx context.Context, query string) (map[string]any, error)
}

type CatalogHandler struct {
	catalogService CatalogServiceInterface
}

func NewCatalogHandler(catalogService CatalogServiceInterface) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
	}
}

func (h *CatalogHandler) GetProducts(c *gin.Context) {
	limit := c.DefaultQuery("limit", "20")
	skip := c.DefaultQuery("skip", "0")

	payload, err := h.catalogService.GetProducts(c.Request.Context(), limit, skip)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, payload)
}

func (h *CatalogHandler) GetProduct(c *gin.Context) {
	productID := c.Param("product_id")

	payload, err := h.catalogService.GetProduct(c.Request.Context(), productID)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, payload)
}

func (h *CatalogHandler) SearchProducts(c *gin.Context) {
	query := c.Query("q")

	payload, err := h.catalogService.SearchProducts(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, payload)
}
