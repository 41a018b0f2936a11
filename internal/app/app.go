package app

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/kalilfin/internal/analysis/prediction"
	"github.com/Alias1177/kalilfin/internal/analyze"
	"github.com/Alias1177/kalilfin/internal/api/yahoo"
	"github.com/Alias1177/kalilfin/internal/config"
	"github.com/Alias1177/kalilfin/internal/news"
	"github.com/Alias1177/kalilfin/internal/portfolio"
	"github.com/Alias1177/kalilfin/internal/tips"
)

// SetupLogging configures the global console logger
func SetupLogging(logLevel string) {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	log.Logger = log.Output(output)

	level, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log.Logger = log.Logger.Level(level)
}

// PrintConfig outputs the current configuration
func PrintConfig(cfg *config.Config) {
	log.Info().
		Int("Port", cfg.Port).
		Int("RequestTimeout", cfg.RequestTimeout).
		Str("HistoryPeriod", cfg.HistoryPeriod).
		Int("SMAPeriod", cfg.SMAPeriod).
		Int("RSIPeriod", cfg.RSIPeriod).
		Int("ChartPoints", cfg.ChartPoints).
		Int("ForecastHorizonDays", cfg.ForecastHorizonDays).
		Int("NewsLimit", cfg.NewsLimit).
		Int("MaxRetries", cfg.MaxRetries).
		Bool("TelegramEnabled", cfg.TelegramBotToken != "").
		Msg("Configuration loaded")
}

// NewAggregator wires the market data and forecast sources
func NewAggregator(cfg *config.Config) *analyze.Aggregator {
	market := yahoo.NewClient(yahoo.ClientOptions{
		HistoryPeriod:  cfg.HistoryPeriod,
		RequestTimeout: cfg.Timeout(),
	})
	return analyze.NewAggregator(market, prediction.NewEngine(cfg.ForecastHorizonDays), cfg)
}

// NewService builds the dashboard core around a fresh in-memory store
func NewService(cfg *config.Config) *analyze.Service {
	newsClient := news.NewClient(news.ClientOptions{
		RequestTimeout: cfg.Timeout(),
		RequestsPerSec: cfg.NewsRequestsPerSec,
		MaxRetries:     cfg.MaxRetries,
	})
	return analyze.NewService(NewAggregator(cfg), portfolio.NewStore(), newsClient, tips.NewDefault(), cfg)
}
