package infrastructure

import "context"

// MessagePublisher интерфейс для отправки сообщений в очередь (Kafka)
// Используется для dependency injection и упрощения тестирования
type MessagePublisher interface {
	PublishMessage(ctx context.Context, key string, value []byte) error
	Close() error
}

// CatalogFetcher интерфейс клиента внешнего каталога товаров
// Все вызовы синхронные и блокируют обработку запроса до ответа или ошибки;
// политика повторов и таймаутов намеренно не применяется
type CatalogFetcher interface {
	GetProducts(ctx context.Context, limit, skip string) (map[string]any, error)
	GetProduct(ctx context.Context, id string) (map[string]any, error)
	SearchProducts(ctx context.Context, query string) (map[string]any, error)
}
