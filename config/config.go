package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"hotel-pms/utils"
)

const (
	StoreMySQL  = "mysql"
	StoreMemory = "memory"
)

type Config struct {
	Port        string
	AppEnv      string
	StoreDriver string
	DB          DBConfig

	JWTSecret      string
	AccessTokenTTL time.Duration

	Redis     RedisConfig
	RateLimit RateLimitConfig

	// AMQPURL empty disables event publishing.
	AMQPURL        string
	EventsExchange string

	LogLevel    string
	LogFormat   string
	CORSOrigins string
}

type DBConfig struct {
	DSN             string
	Name            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type RateLimitConfig struct {
	Enabled        bool
	Capacity       int
	RefillTokens   int
	RefillInterval time.Duration
	TTL            time.Duration
	KeyStrategy    string
	Prefix         string
}

// devJWTSecret is only accepted when APP_ENV=dev.
const devJWTSecret = "dev-only-secret"

// Load reads the environment. Call godotenv.Load first if a .env file should count.
func Load() (Config, error) {
	cfg := Config{
		Port:           utils.EnvOrDefault("PORT", "8080"),
		AppEnv:         strings.ToLower(utils.EnvOrDefault("APP_ENV", "dev")),
		StoreDriver:    strings.ToLower(utils.EnvOrDefault("STORE_DRIVER", StoreMySQL)),
		JWTSecret:      utils.EnvOrDefault("JWT_SECRET", ""),
		AccessTokenTTL: utils.EnvDuration("ACCESS_TOKEN_TTL", 8*time.Hour),
		Redis: RedisConfig{
			Addr:     utils.EnvOrDefault("REDIS_ADDR", ""),
			Password: utils.EnvOrDefault("REDIS_PASSWORD", ""),
			DB:       utils.EnvInt("REDIS_DB", 0),
		},
		RateLimit:      loadRateLimit(),
		AMQPURL:        utils.EnvOrDefault("AMQP_URL", ""),
		EventsExchange: utils.EnvOrDefault("EVENTS_EXCHANGE", "hotel.events"),
		LogLevel:       utils.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:      utils.EnvOrDefault("LOG_FORMAT", "json"),
		CORSOrigins:    utils.EnvOrDefault("CORS_ORIGINS", ""),
	}

	switch cfg.StoreDriver {
	case StoreMySQL:
		dsn, name, err := resolveMySQLDSN()
		if err != nil {
			return cfg, fmt.Errorf("database url: %w", err)
		}
		cfg.DB = DBConfig{
			DSN:             dsn,
			Name:            name,
			MaxOpenConns:    utils.EnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    utils.EnvInt("DB_MAX_IDLE_CONNS", 25),
			ConnMaxLifetime: utils.EnvDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		}
	case StoreMemory:
	default:
		return cfg, fmt.Errorf("STORE_DRIVER must be %s or %s, got %q", StoreMySQL, StoreMemory, cfg.StoreDriver)
	}

	if cfg.JWTSecret == "" {
		if !cfg.IsDev() {
			return cfg, errors.New("JWT_SECRET is required outside APP_ENV=dev")
		}
		cfg.JWTSecret = devJWTSecret
	}
	return cfg, nil
}

func (c Config) IsDev() bool { return c.AppEnv == "dev" }

func loadRateLimit() RateLimitConfig {
	rl := RateLimitConfig{
		Enabled:        utils.EnvBool("RATE_LIMIT_ENABLED", true),
		Capacity:       utils.EnvInt("RATE_LIMIT_CAPACITY", 60),
		RefillTokens:   utils.EnvInt("RATE_LIMIT_REFILL_TOKENS", 1),
		RefillInterval: utils.EnvDuration("RATE_LIMIT_REFILL_INTERVAL", time.Second),
		TTL:            utils.EnvDuration("RATE_LIMIT_TTL", 10*time.Minute),
		KeyStrategy:    utils.EnvOrDefault("RATE_LIMIT_KEY_STRATEGY", "ip_user"),
		Prefix:         utils.EnvOrDefault("RATE_LIMIT_PREFIX", "rl"),
	}
	if rl.Capacity < 1 {
		rl.Capacity = 1
	}
	if rl.RefillTokens < 0 {
		rl.RefillTokens = 0
	}
	if rl.TTL < time.Second {
		rl.TTL = time.Second
	}
	return rl
}
