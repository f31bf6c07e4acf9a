package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	DBHost     string `envconfig:"DB_HOST" required:"true"`
	DBUser     string `envconfig:"DB_USER"`
	DBPassword string `envconfig:"DB_PASSWORD"`
	DBName     string `envconfig:"DB_NAME"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBSSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`

	AppPort string `envconfig:"APP_PORT" default:"8080"`
	AppEnv  string `envconfig:"APP_ENV" default:"development"`

	JWTSecret string `envconfig:"JWT_SECRET" required:"true"`

	// Single-currency deployment; amounts are integers in minor units.
	Currency     string `envconfig:"CURRENCY" default:"THB"`
	ShippingFee  int64  `envconfig:"SHIPPING_FEE" default:"0"`
	FlatDiscount int64  `envconfig:"FLAT_DISCOUNT" default:"0"`

	CORSOrigins  []string `envconfig:"CORS_ORIGINS" default:"http://localhost:5173"`
	TxMaxRetries uint64   `envconfig:"TX_MAX_RETRIES" default:"3"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("load config: JWT_SECRET must not be empty")
	}
	if cfg.ShippingFee < 0 || cfg.FlatDiscount < 0 {
		return nil, fmt.Errorf("load config: SHIPPING_FEE and FLAT_DISCOUNT must be non-negative")
	}

	return &cfg, nil
}
