package config

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

// AppConfig holds every setting the API reads from the environment.
type AppConfig struct {
	AppEnv string `envconfig:"APP_ENV" default:"development"`
	Port   string `envconfig:"PORT" default:"8081"`

	DatabaseURL string `envconfig:"DATABASE_URL"`
	DBHost      string `envconfig:"DB_HOST" default:"localhost"`
	DBPort      string `envconfig:"DB_PORT" default:"5432"`
	DBUser      string `envconfig:"DB_USER" default:"postgres"`
	DBPassword  string `envconfig:"DB_PASSWORD"`
	DBName      string `envconfig:"DB_NAME" default:"draymodas"`
	DBMaxConns  int32  `envconfig:"DB_MAX_CONNS" default:"10"`

	RedisURL string `envconfig:"REDIS_URL"`

	JWTSecret string        `envconfig:"JWT_SECRET" required:"true"`
	JWTTTL    time.Duration `envconfig:"JWT_TTL" default:"24h"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	CatalogCache     string        `envconfig:"CATALOG_CACHE" default:"memory"`
	CatalogCacheTTL  time.Duration `envconfig:"CATALOG_CACHE_TTL" default:"30s"`
	CatalogCacheSize int           `envconfig:"CATALOG_CACHE_SIZE" default:"512"`
	CatalogPerPage   int           `envconfig:"CATALOG_PER_PAGE" default:"20"`

	CORSOrigins    []string `envconfig:"CORS_ORIGINS" default:"http://localhost:3000,http://localhost:3001"`
	AdminRateLimit int      `envconfig:"ADMIN_RATE_LIMIT" default:"100"`
}

// IsProduction reports whether APP_ENV is production.
func (c *AppConfig) IsProduction() bool {
	return c.AppEnv == "production"
}

// PostgresURL returns DATABASE_URL, or a local URL built from the DB_* keys.
func (c *AppConfig) PostgresURL() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}

var (
	appConfig AppConfig
	loadErr   error
	once      sync.Once
)

// Load reads .env (when present) and the process environment. Safe to call repeatedly.
func Load() (*AppConfig, error) {
	once.Do(func() {
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			logrus.Warnf("Error loading .env file (but continuing): %v", err)
		}
		loadErr = envconfig.Process("", &appConfig)
	})
	if loadErr != nil {
		return nil, fmt.Errorf("failed to process configuration: %w", loadErr)
	}
	return &appConfig, nil
}

// Get returns the loaded configuration. Load must have succeeded first.
func Get() *AppConfig {
	return &appConfig
}

// WithTimeout returns a context with a 10s timeout
func WithTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}

func WithCustomTimeout(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}

// WithRequestTimeout bounds a request context with the default 10s timeout.
func WithRequestTimeout(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, 10*time.Second)
}
