package config

import (
	"context"
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// App holds core runtime configuration shared across services.
type App struct {
	Name                    string        `env:"APP_NAME" envDefault:"jedi-path-quiz"`
	Env                     string        `env:"APP_ENV" envDefault:"development"`
	HTTPAddr                string        `env:"HTTP_ADDR" envDefault:"0.0.0.0:8080"`
	SiteURL                 string        `env:"SITE_URL" envDefault:"http://localhost:3000"`
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_SECONDS" envDefault:"20s"`

	Redis       Redis
	AI          AI
	Payment     Payment
	Entitlement Entitlement
	CORS        CORS
}

// Redis holds session/profile store configuration. An empty Addr means
// the server runs with the in-process store instead.
type Redis struct {
	Addr     string `env:"REDIS_ADDR"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
	PoolSize int    `env:"REDIS_POOL_SIZE" envDefault:"20"`
}

// AI configures the hosted text-generation service. An empty APIKey
// disables the remote path; profiles then come from the local fallback.
type AI struct {
	APIKey      string        `env:"OPENAI_API_KEY"`
	BaseURL     string        `env:"OPENAI_BASE_URL" envDefault:"https://api.openai.com"`
	Model       string        `env:"OPENAI_MODEL" envDefault:"gpt-4o"`
	HTTPTimeout time.Duration `env:"OPENAI_HTTP_TIMEOUT" envDefault:"30s"`
}

// Payment holds checkout and webhook configuration. An empty SecretKey
// puts the payment flow in disabled mode.
type Payment struct {
	SecretKey      string `env:"STRIPE_SECRET_KEY"`
	PublishableKey string `env:"STRIPE_PUBLISHABLE_KEY"`
	WebhookSecret  string `env:"STRIPE_WEBHOOK_SECRET"`
	PriceCents     int64  `env:"PRICE_CENTS" envDefault:"497"`
}

// Entitlement stores the signing secret and lifetime for the
// server-verifiable paid-access token.
type Entitlement struct {
	Secret string        `env:"ENTITLEMENT_SECRET,notEmpty"`
	TTL    time.Duration `env:"ENTITLEMENT_TTL" envDefault:"168h"`
}

// CORS holds Cross-Origin Resource Sharing configuration.
type CORS struct {
	AllowedOrigins   []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000,http://127.0.0.1:3000"`
	AllowedMethods   []string `env:"CORS_ALLOWED_METHODS" envSeparator:"," envDefault:"GET,POST,OPTIONS"`
	AllowedHeaders   []string `env:"CORS_ALLOWED_HEADERS" envSeparator:"," envDefault:"Content-Type,Stripe-Signature"`
	AllowCredentials bool     `env:"CORS_ALLOW_CREDENTIALS" envDefault:"true"`
	MaxAge           int      `env:"CORS_MAX_AGE" envDefault:"3600"`
}

// Load parses environment variables into App config. Only the
// entitlement secret is mandatory; the Redis, AI and payment settings
// may stay unset, which selects their documented disabled modes.
func Load(ctx context.Context) (*App, error) {
	cfg := &App{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
