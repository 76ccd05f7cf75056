package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env       string `yaml:"env" env:"APP_ENV" env-default:"local"`
	HTTP      `yaml:"http"`
	Postgres  `yaml:"postgres"`
	Stripe    `yaml:"stripe"`
	App       `yaml:"app"`
	Auth      `yaml:"auth"`
	Blob      `yaml:"blob"`
	RateLimit `yaml:"rate_limit"`
}

type HTTP struct {
	Addr                    string        `yaml:"addr" env:"HTTP_ADDR" env-default:":8080"`
	ReadHeaderTimeout       time.Duration `yaml:"read_header_timeout" env-default:"5s"`
	ReadTimeout             time.Duration `yaml:"read_timeout" env-default:"30s"`
	WriteTimeout            time.Duration `yaml:"write_timeout" env-default:"30s"`
	IdleTimeout             time.Duration `yaml:"idle_timeout" env-default:"60s"`
	GracefulShutdownTimeout time.Duration `yaml:"graceful_shutdown_timeout" env-default:"15s"`
}

type Postgres struct {
	DSN               string        `yaml:"dsn" env:"DATABASE_URL" env-required:"true"`
	MaxConns          int32         `yaml:"max_conns" env-default:"10"`
	RetryConnAttempts uint          `yaml:"retry_conn_attempts" env-default:"5"`
	RetryConnDelay    time.Duration `yaml:"retry_conn_delay" env-default:"1s"`
	RetryConnMaxDelay time.Duration `yaml:"retry_conn_max_delay" env-default:"10s"`
}

// Stripe credentials are optional at startup: without SecretKey checkout fails
// with a configuration error, without WebhookSecret every delivery is rejected.
type Stripe struct {
	SecretKey         string `yaml:"secret_key" env:"STRIPE_SECRET_KEY"`
	WebhookSecret     string `yaml:"webhook_secret" env:"STRIPE_WEBHOOK_SECRET"`
	Currency          string `yaml:"currency" env:"STRIPE_CURRENCY" env-default:"BRL"`
	MaxNetworkRetries int64  `yaml:"max_network_retries" env-default:"2"`
}

type App struct {
	BaseURL   string `yaml:"base_url" env:"APP_BASE_URL" env-required:"true"`
	LoginPath string `yaml:"login_path" env:"APP_LOGIN_PATH" env-default:"/login"`
}

type Auth struct {
	JWTSecret string `yaml:"jwt_secret" env:"AUTH_JWT_SECRET" env-required:"true"`
	Issuer    string `yaml:"issuer" env:"AUTH_ISSUER"`
}

type Blob struct {
	Dir           string `yaml:"dir" env:"BLOB_DIR" env-default:"./data/files"`
	PublicBaseURL string `yaml:"public_base_url" env:"BLOB_PUBLIC_BASE_URL"`
	MaxUploadSize int64  `yaml:"max_upload_size" env:"BLOB_MAX_UPLOAD_SIZE" env-default:"4718592"`
}

type RateLimit struct {
	WebhookRPS   float64 `yaml:"webhook_rps" env:"WEBHOOK_RPS" env-default:"50"`
	WebhookBurst int     `yaml:"webhook_burst" env:"WEBHOOK_BURST" env-default:"100"`
}

// Load reads the YAML file named by CONFIG_PATH when it is set, otherwise
// the environment only. Environment variables override file values.
func Load() (Config, error) {
	var cfg Config

	if configPath := os.Getenv("CONFIG_PATH"); configPath != "" {
		if _, err := os.Stat(configPath); err != nil {
			return cfg, fmt.Errorf("os.Stat[%s]: %w", configPath, err)
		}

		if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
			return cfg, fmt.Errorf("cleanenv.ReadConfig: %w", err)
		}
	} else {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return cfg, fmt.Errorf("cleanenv.ReadEnv: %w", err)
		}
	}

	if cfg.Blob.PublicBaseURL == "" {
		cfg.Blob.PublicBaseURL = cfg.App.BaseURL
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("cfg.Validate: %w", err)
	}

	return cfg, nil
}

func (c Config) Validate() error {
	switch {
	case c.Postgres.DSN == "":
		return errors.New("postgres.dsn is required")
	case c.App.BaseURL == "":
		return errors.New("app.base_url is required")
	case c.Auth.JWTSecret == "":
		return errors.New("auth.jwt_secret is required")
	}

	if c.Blob.MaxUploadSize <= 0 {
		return errors.New("blob.max_upload_size must be positive")
	}

	if c.RateLimit.WebhookRPS <= 0 || c.RateLimit.WebhookBurst <= 0 {
		return errors.New("rate_limit values must be positive")
	}

	return nil
}

// Usage describes the supported environment variables.
func Usage() string {
	var cfg Config

	desc, err := cleanenv.GetDescription(&cfg, nil)
	if err != nil {
		return err.Error()
	}
	return desc
}
