package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("SECRET_KEY", "")
	t.Setenv("BCRYPT_LOG_ROUNDS", "")
	t.Setenv("TOKEN_TTL_DAYS", "")
	t.Setenv("KAFKA_BROKERS", "")

	cfg := Load()
	require.Equal(t, EnvDevelopment, cfg.Env)
	require.Equal(t, 4, cfg.BcryptCost)
	require.Equal(t, 10000, cfg.TokenTTLDays)
	require.Equal(t, []byte(devSecret), cfg.SecretKey)
	require.Equal(t, "/api/v1", cfg.APIRoot)
	require.Nil(t, cfg.KafkaBrokers)
}

func TestLoadProduction(t *testing.T) {
	t.Setenv("APP_ENV", "Production")
	t.Setenv("SECRET_KEY", "")
	t.Setenv("BCRYPT_LOG_ROUNDS", "")

	cfg := Load()
	require.True(t, cfg.IsProduction())
	require.Equal(t, 13, cfg.BcryptCost)
	require.Empty(t, cfg.SecretKey)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SECRET_KEY", "s3cret")
	t.Setenv("BCRYPT_LOG_ROUNDS", "6")
	t.Setenv("TOKEN_TTL_DAYS", "not-a-number")
	t.Setenv("KAFKA_BROKERS", "kafka:9092, ,kafka2:9092")

	cfg := Load()
	require.Equal(t, []byte("s3cret"), cfg.SecretKey)
	require.Equal(t, 6, cfg.BcryptCost)
	require.Equal(t, 10000, cfg.TokenTTLDays)
	require.Equal(t, []string{"kafka:9092", "kafka2:9092"}, cfg.KafkaBrokers)
}
