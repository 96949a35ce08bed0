package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"
)

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int
}

type KafkaConfig struct {
	Brokers       []string
	Topic         string
	RequestTopic  string
	ConsumerGroup string
	TLS           bool
	SASLEnabled   bool
	SASLMechanism string
	SASLUsername  string
	SASLPassword  string
}

type RedisConfig struct {
	Addr         string
	Password     string
	DB           int
	RateCacheTTL time.Duration
}

type LogConfig struct {
	Level  string
	Format string
}

type AuthConfig struct {
	Issuer        string
	Secret        string
	PublicKeyPEM  string
	PublicKeyFile string
}

type TLSConfig struct {
	CertFile     string
	KeyFile      string
	ClientCAFile string
}

type Config struct {
	GRPCPort       int
	HTTPPort       int
	DB             DatabaseConfig
	Kafka          KafkaConfig
	Redis          RedisConfig
	Log            LogConfig
	Auth           AuthConfig
	TLS            TLSConfig
	OTLPEndpoint   string
	MigrationsPath string
	GRPCReflection bool
	ServiceName    string

	// BusinessTimezone is the IANA zone loan timestamps are read in.
	BusinessTimezone string
}

// Validate reports settings the service cannot start without.
func (c Config) Validate() error {
	if c.DB.Password == "" {
		return fmt.Errorf("DB_PASSWORD environment variable is required")
	}
	if len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("KAFKA_BROKERS environment variable is required")
	}
	if c.Auth.Secret == "" && c.Auth.PublicKeyPEM == "" && c.Auth.PublicKeyFile == "" {
		return fmt.Errorf("one of JWT_SECRET, JWT_PUBLIC_KEY or JWT_PUBLIC_KEY_FILE is required")
	}
	if (c.TLS.CertFile == "") != (c.TLS.KeyFile == "") {
		return fmt.Errorf("GRPC_TLS_CERT_FILE and GRPC_TLS_KEY_FILE must be set together")
	}
	if c.Kafka.SASLEnabled && c.Kafka.SASLUsername == "" {
		return fmt.Errorf("KAFKA_SASL_USERNAME is required when KAFKA_SASL_ENABLED is true")
	}
	switch strings.ToUpper(c.Kafka.SASLMechanism) {
	case "", "PLAIN", "SCRAM-SHA-256", "SCRAM-SHA-512":
	default:
		return fmt.Errorf("KAFKA_SASL_MECHANISM %q is not one of PLAIN, SCRAM-SHA-256, SCRAM-SHA-512", c.Kafka.SASLMechanism)
	}
	if c.TLS.ClientCAFile != "" && c.TLS.CertFile == "" {
		return fmt.Errorf("GRPC_TLS_CLIENT_CA_FILE requires GRPC_TLS_CERT_FILE and GRPC_TLS_KEY_FILE")
	}
	if _, err := c.BusinessLocation(); err != nil {
		return err
	}
	return nil
}

// BusinessLocation loads BusinessTimezone.
func (c Config) BusinessLocation() (*time.Location, error) {
	loc, err := time.LoadLocation(c.BusinessTimezone)
	if err != nil {
		return nil, fmt.Errorf("BUSINESS_TIMEZONE %q: %w", c.BusinessTimezone, err)
	}
	return loc, nil
}

func Load() Config {
	return Config{
		GRPCPort: getEnvInt("GRPC_PORT", 9091),
		HTTPPort: getEnvInt("HTTP_PORT", 8091),
		DB: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "bib"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "bib_channeling"),
			SSLMode:  getEnv("DB_SSLMODE", "require"),
			MaxConns: getEnvInt("DB_MAX_CONNS", 10),
		},
		Kafka: KafkaConfig{
			Brokers:       getEnvList("KAFKA_BROKERS", "localhost:9092"),
			Topic:         getEnv("KAFKA_TOPIC", "channeling-events"),
			RequestTopic:  getEnv("KAFKA_REQUEST_TOPIC", "channeling-schedule-requests"),
			ConsumerGroup: getEnv("KAFKA_CONSUMER_GROUP", "channeling-service"),
			TLS:           getEnvBool("KAFKA_TLS", false),
			SASLEnabled:   getEnvBool("KAFKA_SASL_ENABLED", false),
			SASLMechanism: strings.ToUpper(getEnv("KAFKA_SASL_MECHANISM", "PLAIN")),
			SASLUsername:  getEnv("KAFKA_SASL_USERNAME", ""),
			SASLPassword:  getEnv("KAFKA_SASL_PASSWORD", ""),
		},
		Redis: RedisConfig{
			Addr:         getEnv("REDIS_ADDR", "localhost:6379"),
			Password:     getEnv("REDIS_PASSWORD", ""),
			DB:           getEnvInt("REDIS_DB", 0),
			RateCacheTTL: getEnvDuration("RATE_CONFIG_CACHE_TTL", 5*time.Minute),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Auth: AuthConfig{
			Issuer:        getEnv("JWT_ISSUER", "bib-gateway"),
			Secret:        getEnv("JWT_SECRET", ""),
			PublicKeyPEM:  getEnv("JWT_PUBLIC_KEY", ""),
			PublicKeyFile: getEnv("JWT_PUBLIC_KEY_FILE", ""),
		},
		TLS: TLSConfig{
			CertFile:     getEnv("GRPC_TLS_CERT_FILE", ""),
			KeyFile:      getEnv("GRPC_TLS_KEY_FILE", ""),
			ClientCAFile: getEnv("GRPC_TLS_CLIENT_CA_FILE", ""),
		},
		OTLPEndpoint:   getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "file://internal/infrastructure/persistence/postgres/migrations"),
		GRPCReflection: getEnvBool("GRPC_REFLECTION", false),
		ServiceName:    "channeling-service",

		BusinessTimezone: getEnv("BUSINESS_TIMEZONE", "Asia/Jakarta"),
	}
}

func (c Config) GRPCAddr() string {
	return fmt.Sprintf(":%d", c.GRPCPort)
}

func (c Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

// getEnvList splits a comma-separated value, dropping empty items.
func getEnvList(key, fallback string) []string {
	var out []string
	for _, item := range strings.Split(getEnv(key, fallback), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
