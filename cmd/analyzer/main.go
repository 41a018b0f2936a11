package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/Alias1177/kalilfin/internal/app"
	"github.com/Alias1177/kalilfin/internal/config"
	"github.com/Alias1177/kalilfin/models"
)

// analyzer aggregates the tickers given as arguments and prints the records as JSON
func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: analyzer TICKER [TICKER...]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	app.SetupLogging(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	aggregator := app.NewAggregator(cfg)

	records := make([]*models.TickerRecord, 0, len(os.Args)-1)
	failed := 0
	for _, ticker := range os.Args[1:] {
		record, err := aggregator.Add(ctx, ticker)
		if err != nil {
			var aggErr *models.AggregationError
			if errors.As(err, &aggErr) {
				log.Error().Err(aggErr.Cause).Str("ticker", aggErr.Ticker).Msg("Invalid ticker")
			} else {
				log.Error().Err(err).Str("ticker", ticker).Msg("Invalid ticker")
			}
			failed++
			continue
		}
		records = append(records, record)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		log.Fatal().Err(err).Msg("Failed to encode records")
	}

	if failed > 0 {
		os.Exit(1)
	}
}
