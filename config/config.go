package config

import (
	"context"
	"database/sql"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
)

const OrdersTopic = "orders"

type Config struct {
	Port        string
	DatabaseURL string
	RedisAddr   string
	KafkaBroker string
	QRBaseURL   string

	MenuCacheTTL time.Duration
	OrderTimeout time.Duration

	TrustClientPrice  bool
	StrictReadyUpdate bool
}

func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		Port:              getEnv("PORT", "10000"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		KafkaBroker:       os.Getenv("KAFKA_BROKER"),
		QRBaseURL:         getEnv("QR_BASE_URL", "http://localhost"),
		MenuCacheTTL:      5 * time.Minute,
		OrderTimeout:      10 * time.Second,
		TrustClientPrice:  getEnvBool("ORDER_TRUST_CLIENT_PRICE", true),
		StrictReadyUpdate: getEnvBool("STRICT_READY_UPDATE", false),
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "host=" + getEnv("DB_HOST", "localhost") +
			" port=" + getEnv("DB_PORT", "5432") +
			" user=" + getEnv("DB_USER", "postgres") +
			" password=" + os.Getenv("DB_PASSWORD") +
			" dbname=" + getEnv("DB_NAME", "thunder") +
			" sslmode=disable"
	}

	if host := os.Getenv("REDIS_HOST"); host != "" {
		cfg.RedisAddr = host + ":" + getEnv("REDIS_PORT", "6379")
	}

	return cfg
}

func MustInitPostgres(cfg *Config) *sql.DB {
	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err = db.Ping(); err != nil {
		log.Fatal("Failed to ping database:", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	return db
}

// MustInitRedis returns nil when no Redis host is configured; the menu cache
// is optional.
func MustInitRedis(cfg *Config) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	return client
}

// NewKafkaWriter returns nil when no broker is configured; order events are
// optional.
func NewKafkaWriter(cfg *Config) *kafka.Writer {
	if cfg.KafkaBroker == "" {
		return nil
	}
	return &kafka.Writer{
		Addr:     kafka.TCP(cfg.KafkaBroker),
		Topic:    OrdersTopic,
		Balancer: &kafka.LeastBytes{},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return parsed
}
