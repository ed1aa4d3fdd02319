package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServicePort         string
	MetricsPort         string
	Environment         string
	JWTSecret           string
	MongoDBConfig       MongoDBConfig
	RedisConfig         RedisConfig
	KafkaConfig         KafkaConfig
	ElasticsearchConfig ElasticsearchConfig
	TracingConfig       TracingConfig
	CacheConfig         CacheConfig
	SMTPConfig          SMTPConfig
	JobConfig           JobConfig
}

func CreateNewConfig() *Config {
	godotenv.Load(".env")

	conf := Config{
		ServicePort: getEnv("SERVICE_PORT", "8080"),
		MetricsPort: getEnv("METRICS_PORT", "8081"),
		Environment: getEnv("ENVIRONMENT", "development"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		MongoDBConfig: MongoDBConfig{
			URI:    os.Getenv("DB_URI"),
			DBHost: getEnv("DB_HOST", "localhost"),
			DBPort: getEnv("DB_PORT", "27017"),
			DBName: getEnv("DB_NAME", "mountain_pos"),
		},
		RedisConfig: RedisConfig{
			Address:  os.Getenv("REDIS_ADDRESS"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		KafkaConfig: KafkaConfig{
			BrokerAddress:   os.Getenv("BROKER_ADDRESS"),
			BrokerTopic:     getEnv("BROKER_TOPIC", "catalog-events"),
			BrokerPartition: getEnvInt("BROKER_PARTITION", 0),
		},
		ElasticsearchConfig: ElasticsearchConfig{
			DBHost: os.Getenv("ELASTIC_SEARCH_HOST"),
			Index:  getEnv("ELASTIC_SEARCH_INDEX", "products"),
		},
		TracingConfig: TracingConfig{
			CollectorHost: os.Getenv("COLLECTOR_HOST"),
			ServiceName:   getEnv("SERVICE_NAME", "mountain-pos"),
		},
		CacheConfig: CacheConfig{
			Driver:     getEnv("CACHE_DRIVER", "memory"),
			TTL:        getEnvSeconds("CACHE_TTL_SECONDS", 5*time.Second),
			ListingTTL: getEnvSeconds("CACHE_LISTING_TTL_SECONDS", 60*time.Second),
			CartTTL:    getEnvSeconds("CART_TTL_SECONDS", 24*time.Hour),
		},
		SMTPConfig: SMTPConfig{
			Host:       os.Getenv("SMTP_HOST"),
			Port:       getEnvInt("SMTP_PORT", 587),
			Sender:     os.Getenv("SMTP_SENDER"),
			Password:   os.Getenv("SMTP_PASSWORD"),
			AdminEmail: os.Getenv("ADMIN_EMAIL"),
		},
		JobConfig: JobConfig{
			LowStockInterval:   getEnvSeconds("LOW_STOCK_INTERVAL_SECONDS", time.Hour),
			CacheSweepInterval: getEnvSeconds("CACHE_SWEEP_INTERVAL_SECONDS", time.Minute),
		},
	}

	return &conf
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return value
}

func getEnvSeconds(key string, fallback time.Duration) time.Duration {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil || value < 0 {
		return fallback
	}
	return time.Duration(value) * time.Second
}
