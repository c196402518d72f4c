package config

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"jollof-hub/logger"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
)

const OrdersTopic = "orders"

type Settings struct {
	StorefrontAddr string
	DashboardAddr  string
	GatewayAddr    string

	StorefrontSvcURL string
	DashboardSvcURL  string
	StaticDir        string

	PublicBaseURL  string
	AllowedOrigins []string
	OrdersTopic    string
	Timezone       string

	JWTSecret    string
	AdminKeyHash string

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	EmailFrom    string
	ContactInbox string

	NotifyTimeout time.Duration
	CacheTTL      time.Duration
}

// Load reads .env when present and falls back to defaults for everything
// except secrets.
func Load(log *logger.Logger) Settings {
	if log == nil {
		log = logger.Discard()
	}
	_ = godotenv.Load()

	s := Settings{
		StorefrontAddr:   getEnv("STOREFRONT_ADDR", ":8081"),
		DashboardAddr:    getEnv("DASHBOARD_ADDR", ":8082"),
		GatewayAddr:      getEnv("GATEWAY_ADDR", ":8080"),
		StorefrontSvcURL: getEnv("STOREFRONT_SVC_URL", "http://localhost:8081"),
		DashboardSvcURL:  getEnv("DASHBOARD_SVC_URL", "http://localhost:8082"),
		StaticDir:        os.Getenv("STATIC_DIR"),
		PublicBaseURL:    getEnv("PUBLIC_BASE_URL", "http://localhost:3000"),
		AllowedOrigins:   splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:3001")),
		OrdersTopic:      getEnv("KAFKA_ORDERS_TOPIC", OrdersTopic),
		Timezone:         getEnv("RESTAURANT_TIMEZONE", "Africa/Accra"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		AdminKeyHash:     os.Getenv("ADMIN_KEY_HASH"),
		SMTPHost:         os.Getenv("EMAIL_SERVER_HOST"),
		SMTPPort:         getInt("EMAIL_SERVER_PORT", 465),
		SMTPUser:         os.Getenv("EMAIL_SERVER_USER"),
		SMTPPassword:     os.Getenv("EMAIL_SERVER_PASSWORD"),
		EmailFrom:        os.Getenv("EMAIL_FROM"),
		ContactInbox:     os.Getenv("CONTACT_INBOX"),
		NotifyTimeout:    getDuration("NOTIFY_TIMEOUT", 10*time.Second),
		CacheTTL:         getDuration("CACHE_TTL", time.Minute),
	}

	ctx := context.Background()
	log.Info(ctx, "config", "configuration loaded",
		slog.String("storefront_addr", s.StorefrontAddr),
		slog.String("dashboard_addr", s.DashboardAddr),
		slog.String("gateway_addr", s.GatewayAddr),
		slog.String("orders_topic", s.OrdersTopic),
		slog.Duration("notify_timeout", s.NotifyTimeout))
	if _, err := time.LoadLocation(s.Timezone); err != nil {
		log.Warn(ctx, "config", "unknown RESTAURANT_TIMEZONE, using UTC", slog.String("timezone", s.Timezone))
	}
	return s
}

// Location resolves the restaurant timezone, UTC when unknown.
func (s Settings) Location() *time.Location {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func MustInitPostgres(log *logger.Logger) *sql.DB {
	connStr := os.Getenv("DATABASE_URL")
	if connStr == "" {
		connStr = "host=" + os.Getenv("DB_HOST") + " port=" + os.Getenv("DB_PORT") +
			" user=" + os.Getenv("DB_USER") + " password=" + os.Getenv("DB_PASSWORD") +
			" dbname=" + os.Getenv("DB_NAME") + " sslmode=disable"
	}

	ctx := context.Background()
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		log.Error(ctx, "db_connect", "failed to connect to database", err)
		os.Exit(1)
	}

	if err = db.PingContext(ctx); err != nil {
		log.Error(ctx, "db_connect", "failed to ping database", err)
		os.Exit(1)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	return db
}

func MustInitRedis(log *logger.Logger) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: getEnv("REDIS_HOST", "localhost") + ":" + getEnv("REDIS_PORT", "6379"),
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Error(ctx, "redis_connect", "failed to connect to Redis", err)
		os.Exit(1)
	}

	return client
}

func NewKafkaReader(topic, groupID string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{getEnv("KAFKA_BROKER", "localhost:9092")},
		Topic:   topic,
		GroupID: groupID,
	})
}

func NewKafkaWriter(topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(getEnv("KAFKA_BROKER", "localhost:9092")),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return v
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil || v <= 0 {
		return defaultValue
	}
	return v
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
