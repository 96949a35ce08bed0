package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, 9091, cfg.GRPCPort)
	assert.Equal(t, ":8091", cfg.HTTPAddr())
	assert.Equal(t, "bib_channeling", cfg.DB.Name)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "channeling-events", cfg.Kafka.Topic)
	assert.Equal(t, "channeling-schedule-requests", cfg.Kafka.RequestTopic)
	assert.Equal(t, "channeling-service", cfg.Kafka.ConsumerGroup)
	assert.Equal(t, 5*time.Minute, cfg.Redis.RateCacheTTL)
	assert.False(t, cfg.GRPCReflection)
	assert.False(t, cfg.Kafka.TLS)
	assert.False(t, cfg.Kafka.SASLEnabled)
	assert.Equal(t, "PLAIN", cfg.Kafka.SASLMechanism)
	assert.Equal(t, "Asia/Jakarta", cfg.BusinessTimezone)
}

func TestLoad_KafkaSecurity(t *testing.T) {
	t.Setenv("KAFKA_TLS", "true")
	t.Setenv("KAFKA_SASL_ENABLED", "1")
	t.Setenv("KAFKA_SASL_MECHANISM", "scram-sha-512")
	t.Setenv("KAFKA_SASL_USERNAME", "channeling")
	t.Setenv("KAFKA_SASL_PASSWORD", "s3cret")

	cfg := Load()

	assert.True(t, cfg.Kafka.TLS)
	assert.True(t, cfg.Kafka.SASLEnabled)
	assert.Equal(t, "SCRAM-SHA-512", cfg.Kafka.SASLMechanism)
	assert.Equal(t, "channeling", cfg.Kafka.SASLUsername)
	assert.Equal(t, "s3cret", cfg.Kafka.SASLPassword)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("GRPC_PORT", "7000")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("RATE_CONFIG_CACHE_TTL", "30s")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("GRPC_REFLECTION", "true")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := Load()

	assert.Equal(t, ":7000", cfg.GRPCAddr())
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 30*time.Second, cfg.Redis.RateCacheTTL)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.True(t, cfg.GRPCReflection)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_IgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("HTTP_PORT", "eighty")
	t.Setenv("RATE_CONFIG_CACHE_TTL", "soon")

	cfg := Load()

	assert.Equal(t, 8091, cfg.HTTPPort)
	assert.Equal(t, 5*time.Minute, cfg.Redis.RateCacheTTL)
}

func TestLoad_MalformedBoolUsesDefault(t *testing.T) {
	t.Setenv("KAFKA_TLS", "maybe")

	assert.False(t, Load().Kafka.TLS)
}

func TestConfig_Validate(t *testing.T) {
	valid := func() Config {
		cfg := Load()
		cfg.DB.Password = "secret"
		cfg.Auth.Secret = "jwt-secret"
		return cfg
	}

	t.Run("accepts a complete config", func(t *testing.T) {
		require.NoError(t, valid().Validate())
	})

	t.Run("requires a database password", func(t *testing.T) {
		cfg := valid()
		cfg.DB.Password = ""
		assert.ErrorContains(t, cfg.Validate(), "DB_PASSWORD")
	})

	t.Run("requires a token verification key", func(t *testing.T) {
		cfg := valid()
		cfg.Auth.Secret = ""
		assert.ErrorContains(t, cfg.Validate(), "JWT_SECRET")
	})

	t.Run("requires both TLS files", func(t *testing.T) {
		cfg := valid()
		cfg.TLS.CertFile = "/etc/tls/server.pem"
		assert.ErrorContains(t, cfg.Validate(), "GRPC_TLS_KEY_FILE")
	})

	t.Run("client CA needs a server certificate", func(t *testing.T) {
		cfg := valid()
		cfg.TLS.ClientCAFile = "/etc/tls/ca.pem"
		assert.ErrorContains(t, cfg.Validate(), "GRPC_TLS_CLIENT_CA_FILE")
	})

	t.Run("SASL needs a username", func(t *testing.T) {
		cfg := valid()
		cfg.Kafka.SASLEnabled = true
		assert.ErrorContains(t, cfg.Validate(), "KAFKA_SASL_USERNAME")

		cfg.Kafka.SASLUsername = "channeling"
		require.NoError(t, cfg.Validate())
	})

	t.Run("rejects an unknown SASL mechanism", func(t *testing.T) {
		cfg := valid()
		cfg.Kafka.SASLMechanism = "GSSAPI"
		assert.ErrorContains(t, cfg.Validate(), "KAFKA_SASL_MECHANISM")
	})

	t.Run("rejects an unknown business timezone", func(t *testing.T) {
		cfg := valid()
		cfg.BusinessTimezone = "Mars/Olympus_Mons"
		assert.ErrorContains(t, cfg.Validate(), "BUSINESS_TIMEZONE")
	})
}

func TestConfig_BusinessLocation(t *testing.T) {
	cfg := Load()

	loc, err := cfg.BusinessLocation()
	require.NoError(t, err)

	// 20:00 UTC is the next morning in Jakarta (UTC+7).
	local := time.Date(2024, 1, 9, 20, 0, 0, 0, time.UTC).In(loc)
	assert.Equal(t, 10, local.Day())
}
