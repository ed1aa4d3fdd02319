package config

import "time"

type MongoDBConfig struct {
	URI    string
	DBHost string
	DBPort string
	DBName string
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

type KafkaConfig struct {
	BrokerAddress   string
	BrokerTopic     string
	BrokerPartition int
}

type ElasticsearchConfig struct {
	DBHost string
	Index  string
}

type TracingConfig struct {
	CollectorHost string
	ServiceName   string
}

// CacheConfig controls the query cache. Driver is either "memory" or "redis".
type CacheConfig struct {
	Driver     string
	TTL        time.Duration
	ListingTTL time.Duration
	CartTTL    time.Duration
}

type SMTPConfig struct {
	Host       string
	Port       int
	Sender     string
	Password   string
	AdminEmail string
}

type JobConfig struct {
	LowStockInterval   time.Duration
	CacheSweepInterval time.Duration
}

func (c MongoDBConfig) ConnectionURI() string {
	if c.URI != "" {
		return c.URI
	}
	return "mongodb://" + c.DBHost + ":" + c.DBPort
}

func (c SMTPConfig) Enabled() bool {
	return c.Host != "" && c.Sender != "" && c.AdminEmail != ""
}
