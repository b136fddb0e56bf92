package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config содержит все настройки приложения Scoring Worker Service
// Включает конфигурацию для PostgreSQL, MongoDB, Redis, Kafka и модели оценки
type Config struct {
	Database     DatabaseConfig
	MongoDB      MongoDBConfig
	Redis        RedisConfig
	Kafka        KafkaConfig
	Scorer       ScorerConfig
	CronSchedule CronScheduleConfig
}

// DatabaseConfig - настройки подключения к PostgreSQL Places Service
// Используется для записи пересчитанного рейтинга мест
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string // База мест (places_service)
	SSLMode  string
}

// MongoDBConfig - настройки подключения к MongoDB с комментариями
type MongoDBConfig struct {
	URI      string
	Database string
}

// RedisConfig - настройки подключения к Redis
// Используется для кеширования оценок отдельных комментариев с TTL
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration // TTL для кешированных оценок комментариев
}

// KafkaConfig - настройки Kafka для подписки на события
// Слушает топик comment_events для обработки COMMENT_CREATED
type KafkaConfig struct {
	Brokers  []string
	Topic    string
	GroupID  string
	MinBytes int
	MaxBytes int
}

// ScorerConfig - настройки внешней модели оценки текста
type ScorerConfig struct {
	APIURL     string // Базовый URL модели (эндпоинт /predict)
	TimeoutSec int    // Таймаут одного вызова в секундах
}

// CronScheduleConfig - настройки расписания cron задач
type CronScheduleConfig struct {
	RescoreAll string // Расписание полного пересчёта рейтингов
}

// Load загружает конфигурацию из переменных окружения
func Load() (*Config, error) {
	// TTL для оценок комментариев (по умолчанию 24 часа):
	// текст комментария неизменяем, оценка протухает только вместе с моделью
	ttlHours := getEnvInt("REDIS_SCORES_TTL_HOURS", 24)

	return &Config{
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5434"), // Порт PostgreSQL для Places Service
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "places_service"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		MongoDB: MongoDBConfig{
			URI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
			Database: getEnv("MONGO_DB", "comments_service"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 1), // Отдельная БД для оценок комментариев
			TTL:      time.Duration(ttlHours) * time.Hour,
		},
		Kafka: KafkaConfig{
			Brokers:  []string{getEnv("KAFKA_BROKERS", "localhost:9092")},
			Topic:    getEnv("KAFKA_TOPIC", "comment_events"),
			GroupID:  getEnv("KAFKA_GROUP_ID", "scoring-worker-group"),
			MinBytes: getEnvInt("KAFKA_MIN_BYTES", 1),
			MaxBytes: getEnvInt("KAFKA_MAX_BYTES", 10e6),
		},
		Scorer: ScorerConfig{
			APIURL:     getEnv("SCORER_API_URL", "http://localhost:5000"),
			TimeoutSec: getEnvInt("SCORER_TIMEOUT_SEC", 10),
		},
		CronSchedule: CronScheduleConfig{
			// По умолчанию полный пересчёт раз в час
			RescoreAll: getEnv("CRON_RESCORE_ALL", "0 0 * * * *"),
		},
	}, nil
}

// DSN возвращает строку подключения к PostgreSQL в формате libpq
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// Address возвращает адрес Redis в формате host:port
func (c *RedisConfig) Address() string {
	return c.Host + ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
