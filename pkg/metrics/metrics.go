package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// =============================================================================
// HTTP Метрики
// =============================================================================

// HttpRequestsTotal - счётчик всех HTTP запросов
// Labels: service, method, path, status
// Пример запроса PromQL: rate(http_requests_total{service="community"}[5m])
var HttpRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	},
	[]string{"service", "method", "path", "status"},
)

// HttpRequestDuration - гистограмма времени ответа
// Пример: histogram_quantile(0.95, rate(http_request_duration_seconds_bucket[5m]))
var HttpRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name: "http_request_duration_seconds",
		Help: "Duration of HTTP requests in seconds",
		// Бакеты от 1ms до 10s
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	},
	[]string{"service", "method", "path"},
)

// HttpRequestsInFlight - текущее количество обрабатываемых запросов
var HttpRequestsInFlight = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "http_requests_in_flight",
		Help: "Current number of HTTP requests being processed",
	},
	[]string{"service"},
)

// =============================================================================
// MongoDB Метрики
// =============================================================================

// MongoOperationDuration - время выполнения операций MongoDB
var MongoOperationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "mongo_operation_duration_seconds",
		Help:    "Duration of MongoDB operations in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	},
	[]string{"service", "operation", "collection"},
)

// MongoErrors - счётчик ошибок MongoDB
var MongoErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "mongo_errors_total",
		Help: "Total number of MongoDB errors",
	},
	[]string{"service", "operation"},
)

// =============================================================================
// Redis Метрики
// =============================================================================

// RedisCacheHits - попадания в кеш
var RedisCacheHits = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "redis_cache_hits_total",
		Help: "Total number of Redis cache hits",
	},
	[]string{"service", "key_prefix"},
)

// RedisCacheMisses - промахи кеша
var RedisCacheMisses = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "redis_cache_misses_total",
		Help: "Total number of Redis cache misses",
	},
	[]string{"service", "key_prefix"},
)

// RedisOperationDuration - время операций Redis
var RedisOperationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "redis_operation_duration_seconds",
		Help:    "Duration of Redis operations in seconds",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
	},
	[]string{"service", "operation"}, // operation: get, set, del, etc.
)

// RedisErrors - ошибки Redis
var RedisErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "redis_errors_total",
		Help: "Total number of Redis errors",
	},
	[]string{"service", "operation"},
)

// =============================================================================
// Kafka Метрики
// =============================================================================

// KafkaMessagesProduced - отправленные сообщения
var KafkaMessagesProduced = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kafka_messages_produced_total",
		Help: "Total number of Kafka messages produced",
	},
	[]string{"service", "topic"},
)

// KafkaProduceDuration - время отправки сообщения
var KafkaProduceDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "kafka_produce_duration_seconds",
		Help:    "Duration of Kafka produce operations",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	},
	[]string{"service", "topic"},
)

// KafkaErrors - ошибки Kafka
var KafkaErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kafka_errors_total",
		Help: "Total number of Kafka errors",
	},
	[]string{"service", "topic", "operation"}, // operation: produce
)

// =============================================================================
// Upstream Catalog Метрики
// =============================================================================

// UpstreamRequestsTotal - запросы к внешнему каталогу
var UpstreamRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "upstream_catalog_requests_total",
		Help: "Total number of requests to the upstream catalog",
	},
	[]string{"service", "endpoint", "status"},
)

// UpstreamRequestDuration - время ответа внешнего каталога
var UpstreamRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "upstream_catalog_request_duration_seconds",
		Help:    "Duration of upstream catalog requests in seconds",
		Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	},
	[]string{"service", "endpoint"},
)

// UpstreamErrors - ошибки при обращении к внешнему каталогу
var UpstreamErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "upstream_catalog_errors_total",
		Help: "Total number of upstream catalog errors",
	},
	[]string{"service", "endpoint"},
)

// =============================================================================
// Business Метрики (специфичные для Septemberplums)
// =============================================================================

// CommentsCreated - созданные комментарии
var CommentsCreated = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "community_comments_created_total",
		Help: "Total number of community comments created",
	},
)

// VotesCast - голоса по действиям
var VotesCast = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "community_votes_cast_total",
		Help: "Total number of votes cast",
	},
	[]string{"action", "content_type"}, // action: added, updated, removed
)

// FlagsFiled - поданные жалобы
var FlagsFiled = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "community_flags_filed_total",
		Help: "Total number of content flags filed",
	},
	[]string{"content_type"},
)

// FlagsResolved - разрешённые жалобы по действиям модератора
var FlagsResolved = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "community_flags_resolved_total",
		Help: "Total number of flags resolved by moderators",
	},
	[]string{"action"}, // remove_content, redact_content, resolve_only
)

// ReviewsHidden - скрытые отзывы внешнего каталога
var ReviewsHidden = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "community_reviews_hidden_total",
		Help: "Total number of upstream reviews hidden by moderators",
	},
)
