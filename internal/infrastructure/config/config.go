package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,       default=8080"`
	Env       string `env:"ENV,        default=development"`
	JWTSecret string `env:"JWT_SECRET, default=dev-only-secret"`
	APIKey    string `env:"API_KEY"`
	LogLevel  string `env:"LOG_LEVEL,  default=info"`
	// LogFile, when set, receives the request log instead of stdout.
	LogFile string `env:"LOG_FILE"`
	// LoginRPS bounds login attempts per client IP (token bucket).
	LoginRPS   float64 `env:"LOGIN_RPS,   default=5"`
	LoginBurst int     `env:"LOGIN_BURST, default=10"`

	Redis RedisConfig
}

// RedisConfig is optional: an empty Addr keeps revocation in process memory.
type RedisConfig struct {
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

// IsProduction reports whether error responses should omit internal detail.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
