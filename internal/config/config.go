package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

const (
	TokenStorePostgres = "postgres"
	TokenStoreRedis    = "redis"
)

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort               string   `env:"HTTP_PORT" envDefault:"8080"`
	AppEnv                 string   `env:"APP_ENV" envDefault:"production"`
	DatabaseURL            string   `env:"DATABASE_URL,required,notEmpty"`
	DBMaxConns             int32    `env:"DB_MAX_CONNS" envDefault:"10"`
	JWTSecret              string   `env:"JWT_SECRET,required,notEmpty"`
	JWTTTLMinutes          int      `env:"JWT_TTL_MINUTES" envDefault:"0"`
	BcryptCost             int      `env:"BCRYPT_COST" envDefault:"10"`
	RedisAddr              string   `env:"REDIS_ADDR"`
	RedisPassword          string   `env:"REDIS_PASSWORD"`
	RedisDB                int      `env:"REDIS_DB" envDefault:"0"`
	TokenStore             string   `env:"TOKEN_STORE" envDefault:"postgres"`
	LoginRateWindowMinutes int      `env:"LOGIN_RATE_WINDOW_MINUTES" envDefault:"10"`
	LoginRateMax           int      `env:"LOGIN_RATE_MAX" envDefault:"0"`
	ShutdownTimeoutSeconds int      `env:"SHUTDOWN_TIMEOUT_SECONDS" envDefault:"10"`
	CORSAllowedOrigins     []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.TokenStore {
	case TokenStorePostgres:
	case TokenStoreRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("TOKEN_STORE=redis requires REDIS_ADDR")
		}
	default:
		return fmt.Errorf("unknown TOKEN_STORE %q", c.TokenStore)
	}
	if c.JWTTTLMinutes < 0 {
		return fmt.Errorf("JWT_TTL_MINUTES must not be negative")
	}
	return nil
}

// JWTTTL devuelve 0 cuando los tokens no deben llevar expiracion.
func (c *Config) JWTTTL() time.Duration {
	return time.Duration(c.JWTTTLMinutes) * time.Minute
}

func (c *Config) LoginRateWindow() time.Duration {
	return time.Duration(c.LoginRateWindowMinutes) * time.Minute
}

func (c *Config) ShutdownTimeout() time.Duration {
	if c.ShutdownTimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}
