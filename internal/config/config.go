package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const defaultTimeout = 30 * time.Second

// Config holds all application configuration
type Config struct {
	Port                int     `env:"PORT" envDefault:"5000"`
	LogLevel            string  `env:"LOG_LEVEL" envDefault:"info"`
	RequestTimeout      int     `env:"REQUEST_TIMEOUT" envDefault:"30"` // seconds
	HistoryPeriod       string  `env:"HISTORY_PERIOD" envDefault:"3mo"`
	SMAPeriod           int     `env:"SMA_PERIOD" envDefault:"20"`
	RSIPeriod           int     `env:"RSI_PERIOD" envDefault:"14"`
	ChartPoints         int     `env:"CHART_POINTS" envDefault:"30"`
	ForecastHorizonDays int     `env:"FORECAST_HORIZON_DAYS" envDefault:"7"`
	NewsLimit           int     `env:"NEWS_LIMIT" envDefault:"3"`
	NewsRequestsPerSec  float64 `env:"NEWS_REQUESTS_PER_SEC" envDefault:"2"`
	MaxRetries          int     `env:"MAX_RETRIES" envDefault:"0"`
	ExportPrefix        string  `env:"EXPORT_PREFIX" envDefault:"kalilfin"`
	TelegramBotToken    string  `env:"TELEGRAM_BOT_TOKEN" envDefault:""`
}

// Default returns the configuration used when no environment is set
func Default() *Config {
	return &Config{
		Port:                5000,
		LogLevel:            "info",
		RequestTimeout:      30,
		HistoryPeriod:       "3mo",
		SMAPeriod:           20,
		RSIPeriod:           14,
		ChartPoints:         30,
		ForecastHorizonDays: 7,
		NewsLimit:           3,
		NewsRequestsPerSec:  2,
		MaxRetries:          0,
		ExportPrefix:        "kalilfin",
	}
}

// Timeout returns the per-call timeout for external requests.
// A non-positive RequestTimeout means the 30s default.
func (c *Config) Timeout() time.Duration {
	if c.RequestTimeout <= 0 {
		return defaultTimeout
	}
	return time.Duration(c.RequestTimeout) * time.Second
}

// Load initializes configuration from environment variables
func Load() (*Config, error) {
	// Load environment variables from .env file if present
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg(".env file not found, relying on actual environment variables")
	}

	return FromEnv(), nil
}

// FromEnv reads the configuration from the process environment only
func FromEnv() *Config {
	d := Default()

	var cfg Config
	cfg.Port = getEnvIntWithDefault("PORT", d.Port)
	cfg.LogLevel = getEnvWithDefault("LOG_LEVEL", d.LogLevel)
	cfg.RequestTimeout = getEnvIntWithDefault("REQUEST_TIMEOUT", d.RequestTimeout)
	cfg.HistoryPeriod = getEnvWithDefault("HISTORY_PERIOD", d.HistoryPeriod)
	cfg.SMAPeriod = getEnvIntWithDefault("SMA_PERIOD", d.SMAPeriod)
	cfg.RSIPeriod = getEnvIntWithDefault("RSI_PERIOD", d.RSIPeriod)
	cfg.ChartPoints = getEnvIntWithDefault("CHART_POINTS", d.ChartPoints)
	cfg.ForecastHorizonDays = getEnvIntWithDefault("FORECAST_HORIZON_DAYS", d.ForecastHorizonDays)
	cfg.NewsLimit = getEnvIntWithDefault("NEWS_LIMIT", d.NewsLimit)
	cfg.NewsRequestsPerSec = getEnvFloatWithDefault("NEWS_REQUESTS_PER_SEC", d.NewsRequestsPerSec)
	cfg.MaxRetries = getEnvIntWithDefault("MAX_RETRIES", d.MaxRetries)
	cfg.ExportPrefix = getEnvWithDefault("EXPORT_PREFIX", d.ExportPrefix)
	cfg.TelegramBotToken = os.Getenv("TELEGRAM_BOT_TOKEN")

	return &cfg
}

// Helper functions for environment variable handling
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntWithDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatWithDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
