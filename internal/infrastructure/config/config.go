package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Auth     AuthConfig
	DB       DBConfig
	Redis    RedisConfig
	RabbitMQ RabbitMQConfig
	Admin    AdminConfig
}

type AuthConfig struct {
	JWTSecret  string        `env:"JWT_SECRET, required"`
	JWTTTL     time.Duration `env:"JWT_EXPIRES_IN, default=24h"`
	BcryptCost int           `env:"BCRYPT_COST, default=10"`
}

type DBConfig struct {
	Host           string        `env:"DB_HOST,            default=localhost"`
	Port           int           `env:"DB_PORT,            default=5432"`
	Name           string        `env:"DB_NAME,            default=vetclinic"`
	User           string        `env:"DB_USER,            default=postgres"`
	Password       string        `env:"DB_PASSWORD"`
	SSLMode        string        `env:"DB_SSLMODE,         default=disable"`
	ConnectRetries int           `env:"DB_CONNECT_RETRIES, default=5"`
	ConnectDelay   time.Duration `env:"DB_CONNECT_DELAY,   default=5s"`
}

// DSN renders the libpq keyword/value connection string.
func (c DBConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// RedisConfig enables the role cache when Addr is set.
type RedisConfig struct {
	Addr    string        `env:"REDIS_ADDR"`
	DB      int           `env:"REDIS_DB,       default=0"`
	RoleTTL time.Duration `env:"ROLE_CACHE_TTL, default=10m"`
}

// RabbitMQConfig enables user-created notifications when URL is set.
type RabbitMQConfig struct {
	URL     string `env:"RABBITMQ_URL"`
	Queue   string `env:"RABBITMQ_QUEUE, default=user_registered"`
	Workers int    `env:"NOTIFY_WORKERS, default=2"`
}

// AdminConfig describes the optional bootstrap administrator.
type AdminConfig struct {
	Email    string `env:"ADMIN_EMAIL"`
	Password string `env:"ADMIN_PASSWORD"`
}

// IsDevelopment reports whether human-friendly output should be used.
func (c *Config) IsDevelopment() bool { return c.Env == "development" }

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom reads configuration from an arbitrary lookuper.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
