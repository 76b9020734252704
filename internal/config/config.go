package config

import (
	"os"
	"strconv"
	"strings"
)

const (
	EnvProduction  = "production"
	EnvDevelopment = "development"
	EnvTesting     = "testing"

	devSecret = "my_precious"
)

type Config struct {
	Env string

	ServerAddr string
	APIRoot    string

	DBDialect   string
	DBSQLDriver string
	DatabaseURL string

	SecretKey    []byte
	BcryptCost   int
	TokenTTLDays int

	LogLevel string

	KafkaBrokers []string

	ESURL          string
	ESUser         string
	ESPassword     string
	ESStationIndex string

	CORSAllowedOrigins []string

	AdminEmail    string
	AdminPassword string

	SkanetrafikenURL string
}

// Load reads the process environment once. Call godotenv.Load before it
// when a .env file should be honoured.
func Load() Config {
	env := strings.ToLower(EnvDefault("APP_ENV", EnvDevelopment))

	bcryptDefault := 4
	if env == EnvProduction {
		bcryptDefault = 13
	}

	secret := os.Getenv("SECRET_KEY")
	if secret == "" && env != EnvProduction {
		secret = devSecret
	}

	return Config{
		Env: env,

		ServerAddr: EnvDefault("SERVER_ADDR", ":8080"),
		APIRoot:    EnvDefault("APPLICATION_ROOT", "/api/v1"),

		DBDialect:   strings.ToLower(EnvDefault("DB_DIALECT", "postgres")),
		DBSQLDriver: strings.ToLower(EnvDefault("DB_SQL_DRIVER", "pgx")),
		DatabaseURL: os.Getenv("DATABASE_URL"),

		SecretKey:    []byte(secret),
		BcryptCost:   EnvIntDefault("BCRYPT_LOG_ROUNDS", bcryptDefault),
		TokenTTLDays: EnvIntDefault("TOKEN_TTL_DAYS", 10000),

		LogLevel: EnvDefault("LOG_LEVEL", "info"),

		KafkaBrokers: CSV(os.Getenv("KAFKA_BROKERS")),

		ESURL:          os.Getenv("ES_URL"),
		ESUser:         os.Getenv("ES_USER"),
		ESPassword:     os.Getenv("ES_PASSWORD"),
		ESStationIndex: EnvDefault("ES_STATION_INDEX", "stations"),

		CORSAllowedOrigins: CSV(EnvDefault("CORS_ALLOWED_ORIGINS", "*")),

		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),

		SkanetrafikenURL: EnvDefault("SKANETRAFIKEN_URL", "https://www.skanetrafiken.se/handlers/LocationSearch.ashx"),
	}
}

func (c Config) IsProduction() bool {
	return c.Env == EnvProduction
}

func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func EnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
