package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config содержит все настройки приложения Community Service
// Включает конфигурацию для HTTP сервера, MongoDB, Redis, Kafka,
// внешнего каталога и сессионных токенов
type Config struct {
	Server     ServerConfig
	MongoDB    MongoDBConfig
	Redis      RedisConfig
	Kafka      KafkaConfig
	Catalog    CatalogConfig
	Session    SessionConfig
	Moderation ModerationConfig
}

// ServerConfig - настройки HTTP сервера
type ServerConfig struct {
	Host string // Адрес хоста (по умолчанию 0.0.0.0)
	Port string // Порт сервера (по умолчанию 8000)
}

// MongoDBConfig - настройки подключения к MongoDB
// Используется для хранения комментариев, голосов, жалоб и скрытых отзывов
type MongoDBConfig struct {
	URI      string // URI подключения (mongodb://host:port)
	Database string // Имя базы данных
}

// RedisConfig - настройки подключения к Redis для кеширования
// Используется для кеширования сырых ответов внешнего каталога
type RedisConfig struct {
	Host     string // Хост Redis
	Port     string // Порт Redis
	Password string // Пароль Redis (опционально)
	DB       int    // Номер БД Redis (0-15)
}

// KafkaConfig - настройки Kafka для отправки событий
// События отправляются при создании комментариев и действиях модерации
type KafkaConfig struct {
	Brokers []string // Список брокеров Kafka (формат: host:port)
	Topic   string   // Топик для событий COMMENT_CREATED, MODERATION_ACTION, REVIEW_HIDDEN
}

// CatalogConfig - настройки внешнего каталога товаров
type CatalogConfig struct {
	BaseURL  string        // Базовый URL каталога
	CacheTTL time.Duration // Время жизни кеша сырых ответов каталога
}

// SessionConfig - настройки проверки сессионных JWT токенов
// Токены выпускает внешний сервис аутентификации
type SessionConfig struct {
	Secret string // Секретный ключ для проверки токенов
}

// ModerationConfig - настройки модерации
type ModerationConfig struct {
	Emails []string // Список email-адресов модераторов
}

// Load загружает конфигурацию из переменных окружения
// Возвращает ошибку, если не удалось распарсить значения
func Load() (*Config, error) {
	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB value: %w", err)
	}

	cacheTTL, err := time.ParseDuration(getEnv("CATALOG_CACHE_TTL", "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid CATALOG_CACHE_TTL value: %w", err)
	}

	return &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnv("SERVER_PORT", "8000"),
		},
		MongoDB: MongoDBConfig{
			URI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
			Database: getEnv("MONGO_DATABASE", "community_service"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Kafka: KafkaConfig{
			Brokers: []string{getEnv("KAFKA_BROKERS", "localhost:9092")},
			Topic:   getEnv("KAFKA_TOPIC", "community_events"),
		},
		Catalog: CatalogConfig{
			BaseURL:  getEnv("CATALOG_BASE_URL", "https://dummyjson.com"),
			CacheTTL: cacheTTL,
		},
		Session: SessionConfig{
			// Секрет должен совпадать с сервисом, выпускающим токены
			Secret: getEnv("SESSION_SECRET", "your-secret-key-change-this-in-production"),
		},
		Moderation: ModerationConfig{
			Emails: strings.Split(getEnv("MODERATOR_EMAILS", "moderator@hw3.com,admin@hw3.com"), ","),
		},
	}, nil
}

// Address возвращает адрес сервера в формате host:port для HTTP сервера
func (c *ServerConfig) Address() string {
	return c.Host + ":" + c.Port
}

// Address возвращает адрес Redis в формате host:port для подключения
func (c *RedisConfig) Address() string {
	return c.Host + ":" + c.Port
}

// getEnv получает значение переменной окружения или возвращает значение по умолчанию
// Используется для гибкой конфигурации через environment variables
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
