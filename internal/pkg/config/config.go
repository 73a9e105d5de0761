package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,       default=8080"`
	Env       string `env:"ENV,        default=development"`
	LogLevel  string `env:"LOG_LEVEL,  default=info"`
	LogPretty bool   `env:"LOG_PRETTY, default=false"`

	Auth    AuthConfig
	Session SessionConfig
	Mongo   MongoConfig
	Redis   RedisConfig
	Journal JournalConfig
}

type AuthConfig struct {
	// Delay is the simulated network latency of the login endpoint.
	Delay time.Duration `env:"AUTH_DELAY,       default=1s"`
	// HashCost is the bcrypt cost used when hashing the built-in user list.
	HashCost int `env:"AUTH_HASH_COST, default=10"`
}

type SessionConfig struct {
	Secret      string        `env:"SESSION_SECRET"`
	TTL         time.Duration `env:"SESSION_TTL,          default=12h"`
	RememberTTL time.Duration `env:"SESSION_REMEMBER_TTL, default=720h"`
	CookieName  string        `env:"SESSION_COOKIE,       default=portal_session"`
	Secure      bool          `env:"SESSION_SECURE,       default=false"`
}

// MongoConfig: an empty URI disables MongoDB; credentials then come from the
// built-in list and attempts go to the log.
type MongoConfig struct {
	URI      string `env:"MONGO_URI"`
	Database string `env:"MONGO_DB, default=profile_portal"`
}

// RedisConfig: an empty address disables server-side session revocation.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB, default=0"`
}

type JournalConfig struct {
	Workers int `env:"JOURNAL_WORKERS, default=4"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	return &cfg, nil
}

// MustLoad is Load for process startup.
func MustLoad() *Config {
	cfg, err := Load(context.Background())
	if err != nil {
		panic(err)
	}
	return cfg
}

// IsProduction reports whether ENV names a production deployment.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
