package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"tokenwatch/pkg/errors"
)

type Config struct {
	App           AppConfig
	Telegram      TelegramConfig
	DexScreener   DexScreenerConfig
	PriceFeed     PriceFeedConfig
	Watch         WatchConfig
	Metrics       MetricsConfig
	ErrorTracking ErrorTrackingConfig
}

type AppConfig struct {
	Name     string `envconfig:"APP_NAME" default:"tokenwatch"`
	Env      string `envconfig:"APP_ENV" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	Debug    bool   `envconfig:"DEBUG" default:"false"`
}

type TelegramConfig struct {
	BotToken       string        `envconfig:"TELEGRAM_BOT_TOKEN" required:"true"`
	HTTPTimeout    time.Duration `envconfig:"TELEGRAM_HTTP_TIMEOUT" default:"30s"`
	RateLimitBurst int           `envconfig:"TELEGRAM_RATE_LIMIT_BURST" default:"30"`
	RateLimitRate  int           `envconfig:"TELEGRAM_RATE_LIMIT_RATE" default:"20"`
}

type DexScreenerConfig struct {
	BaseURL string        `envconfig:"DEXSCREENER_BASE_URL" default:"https://api.dexscreener.com"`
	Timeout time.Duration `envconfig:"DEXSCREENER_TIMEOUT" default:"10s"`
}

type PriceFeedConfig struct {
	BaseURL string        `envconfig:"PRICEFEED_BASE_URL" default:"https://api.coingecko.com"`
	Timeout time.Duration `envconfig:"PRICEFEED_TIMEOUT" default:"10s"`
}

// WatchConfig tunes the token watch engine.
// DetectDelay is the UX pause between the buy-links reply and the first
// market data fetch; zero disables it. RegistryTTL bounds watch entry
// lifetime; zero keeps entries for the life of the process.
type WatchConfig struct {
	DetectDelay time.Duration `envconfig:"WATCH_DETECT_DELAY" default:"2s"`
	RegistryTTL time.Duration `envconfig:"WATCH_REGISTRY_TTL" default:"0"`
}

type MetricsConfig struct {
	Enabled    bool   `envconfig:"METRICS_ENABLED" default:"true"`
	ListenAddr string `envconfig:"METRICS_LISTEN_ADDR" default:":9090"`
}

type ErrorTrackingConfig struct {
	Enabled     bool   `envconfig:"ERROR_TRACKING_ENABLED" default:"true"`
	SentryDSN   string `envconfig:"SENTRY_DSN"`
	Environment string `envconfig:"SENTRY_ENVIRONMENT" default:"production"`
}

// Load reads configuration from environment variables
// It first tries to load .env file (useful for local development)
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if not exists)
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to process env config")
	}

	return &cfg, nil
}
