package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"septemberplums/pkg/metrics"
)

var (
	// ErrProductNotFound - внешний каталог ответил 404 на запрос товара
	ErrProductNotFound = errors.New("product not found")
)

const serviceName = "community-service"

// CatalogClient - клиент внешнего каталога товаров
// Вызовы синхронные и блокируют обработку запроса до ответа внешнего
// сервиса; повторы и таймауты намеренно не применяются - ошибка сразу
// всплывает как ответ 500
type CatalogClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewCatalogClient создает клиент каталога с базовым URL из конфигурации
func NewCatalogClient(baseURL string) *CatalogClient {
	return &CatalogClient{
		baseURL:    baseURL,
		httpClient: &http.Client{},
	}
}

// GetProducts получает страницу списка товаров
// limit и skip передаются во внешний каталог как есть
func (c *CatalogClient) GetProducts(ctx context.Context, limit, skip string) (map[string]any, error) {
	params := url.Values{}
	params.Set("limit", limit)
	params.Set("skip", skip)

	return c.doGet(ctx, "products_list", c.baseURL+"/products?"+params.Encode())
}

// GetProduct получает один товар по ID
func (c *CatalogClient) GetProduct(ctx context.Context, id string) (map[string]any, error) {
	return c.doGet(ctx, "product", c.baseURL+"/products/"+url.PathEscape(id))
}

// SearchProducts выполняет поиск товаров по строке запроса
func (c *CatalogClient) SearchProducts(ctx context.Context, query string) (map[string]any, error) {
	params := url.Values{}
	params.Set("q", query)

	return c.doGet(ctx, "products_search", c.baseURL+"/products/search?"+params.Encode())
}

func (c *CatalogClient) doGet(ctx context.Context, endpoint, rawURL string) (map[string]any, error) {
	timer := metrics.NewUpstreamTimer(serviceName, endpoint)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create catalog request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		timer.Error()
		return nil, fmt.Errorf("failed to fetch from catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		timer.Success(strconv.Itoa(resp.StatusCode))
		return nil, ErrProductNotFound
	}

	if resp.StatusCode != http.StatusOK {
		timer.Error()
		return nil, fmt.Errorf("upstream catalog returned status %d", resp.StatusCode)
	}

	var payload map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		timer.Error()
		return nil, fmt.Errorf("failed to decode catalog response: %w", err)
	}

	timer.Success(strconv.Itoa(resp.StatusCode))
	return payload, nil
}
