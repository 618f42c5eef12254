package config

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

type Postgres struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
}

func (p Postgres) DSN() string {
	return "host=" + p.Host + " port=" + p.Port + " user=" + p.User +
		" password=" + p.Password + " dbname=" + p.Name + " sslmode=disable"
}

type Config struct {
	HTTPAddr          string
	StorageDriver     string
	Postgres          Postgres
	RedisHost         string
	RedisPort         string
	KafkaBroker       string
	OrderEventsTopic  string
	OrderCacheTTL     time.Duration
	DeliverySurcharge decimal.Decimal
	PublicBaseURL     string
}

// RedisAddr is empty when Redis is not configured.
func (c Config) RedisAddr() string {
	if c.RedisHost == "" {
		return ""
	}
	port := c.RedisPort
	if port == "" {
		port = "6379"
	}
	return c.RedisHost + ":" + port
}

func Load() (Config, error) {
	cfg := Config{
		HTTPAddr:      getEnv("HTTP_ADDR", ":8081"),
		StorageDriver: getEnv("STORAGE_DRIVER", StorageDriverPostgres),
		Postgres: Postgres{
			Host:     os.Getenv("DB_HOST"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     os.Getenv("DB_NAME"),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
		},
		RedisHost:        os.Getenv("REDIS_HOST"),
		RedisPort:        os.Getenv("REDIS_PORT"),
		KafkaBroker:      os.Getenv("KAFKA_BROKER"),
		OrderEventsTopic: getEnv("ORDER_EVENTS_TOPIC", "orders"),
		PublicBaseURL:    getEnv("PUBLIC_BASE_URL", "http://localhost"),
	}

	switch cfg.StorageDriver {
	case StorageDriverPostgres, StorageDriverMemory:
	default:
		return Config{}, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}

	ttl, err := time.ParseDuration(getEnv("ORDER_CACHE_TTL", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse ORDER_CACHE_TTL: %w", err)
	}
	cfg.OrderCacheTTL = ttl

	surcharge, err := decimal.NewFromString(getEnv("DELIVERY_SURCHARGE", "30"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DELIVERY_SURCHARGE: %w", err)
	}
	if surcharge.IsNegative() {
		return Config{}, fmt.Errorf("DELIVERY_SURCHARGE must not be negative, got %s", surcharge)
	}
	cfg.DeliverySurcharge = surcharge

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func MustInitPostgres(p Postgres) *sql.DB {
	db, err := sql.Open("postgres", p.DSN())
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

func MustInitRedis(addr string) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	return client
}

func NewKafkaWriter(broker, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(broker),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
}
