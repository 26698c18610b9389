package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"septemberplums/pkg/metrics"

	"github.com/redis/go-redis/v9"
)

const catalogCachePrefix = "catalog"

type catalogCache struct {
	client *redis.Client
}

// NewCatalogCache создает кеш сырых ответов внешнего каталога поверх Redis
// Кешируется только необогащенный payload: обогащение (голоса, счетчики,
// фильтрация скрытых отзывов) выполняется на каждый запрос, чтобы данные
// сообщества никогда не устаревали вместе с кешем
func NewCatalogCache(addr, password string, db int) (CatalogCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &catalogCache{client: client}, nil
}

// NewCatalogCacheWithClient создает кеш поверх готового клиента (для тестов)
func NewCatalogCacheWithClient(client *redis.Client) CatalogCache {
	return &catalogCache{client: client}
}

// GetPayload получает закешированный ответ каталога
// Возвращает nil без ошибки при промахе кеша
func (c *catalogCache) GetPayload(ctx context.Context, key string) (map[string]any, error) {
	timer := metrics.NewRedisTimer(serviceName, metrics.RedisOpGet)
	defer timer.ObserveDuration()

	data, err := c.client.Get(ctx, c.cacheKey(key)).Bytes()
	if err != nil {
		if err == redis.Nil {
			metrics.RecordCacheMiss(serviceName, catalogCachePrefix)
			return nil, nil
		}
		metrics.RecordRedisError(serviceName, metrics.RedisOpGet)
		return nil, fmt.Errorf("failed to get catalog payload from cache: %w", err)
	}

	var payload map[string]any
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal catalog payload: %w", err)
	}

	metrics.RecordCacheHit(serviceName, catalogCachePrefix)
	return payload, nil
}

// SetPayload сохраняет сырой ответ каталога с TTL
func (c *catalogCache) SetPayload(ctx context.Context, key string, payload map[string]any, ttl time.Duration) error {
	timer := metrics.NewRedisTimer(serviceName, metrics.RedisOpSet)
	defer timer.ObserveDuration()

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal catalog payload: %w", err)
	}

	if err := c.client.Set(ctx, c.cacheKey(key), data, ttl).Err(); err != nil {
		metrics.RecordRedisError(serviceName, metrics.RedisOpSet)
		return fmt.Errorf("failed to set catalog payload in cache: %w", err)
	}

	return nil
}

func (c *catalogCache) Close() error {
	return c.client.Close()
}

func (c *catalogCache) cacheKey(key string) string {
	return catalogCachePrefix + ":" + key
}
