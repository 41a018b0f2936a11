package analyze

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/Alias1177/kalilfin/internal/calculate"
	"github.com/Alias1177/kalilfin/internal/config"
	"github.com/Alias1177/kalilfin/internal/eco"
	"github.com/Alias1177/kalilfin/models"
)

// Forecaster predicts a future close from a dated history
type Forecaster interface {
	Forecast(ctx context.Context, history []models.Bar) (float64, error)
}

// Aggregator builds one enriched record per ticker from the market data,
// indicator, forecast and eco sources. It never touches the portfolio store.
type Aggregator struct {
	market     models.MarketDataClient
	forecaster Forecaster
	cfg        *config.Config
	logger     zerolog.Logger
}

// NewAggregator creates a new ticker aggregator
func NewAggregator(market models.MarketDataClient, forecaster Forecaster, cfg *config.Config) *Aggregator {
	return &Aggregator{
		market:     market,
		forecaster: forecaster,
		cfg:        cfg,
		logger:     log.With().Str("component", "aggregator").Logger(),
	}
}

// NormalizeTicker trims and upper-cases user input
func NormalizeTicker(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// Add fetches and derives everything for one ticker.
// Any failure is returned as *models.AggregationError and no record is produced.
func (a *Aggregator) Add(ctx context.Context, raw string) (*models.TickerRecord, error) {
	ticker := NormalizeTicker(raw)
	if ticker == "" {
		return nil, &models.AggregationError{Ticker: raw, Cause: fmt.Errorf("%w: empty ticker", models.ErrDataUnavailable)}
	}

	fail := func(stage string, err error) (*models.TickerRecord, error) {
		a.logger.Warn().Err(err).Str("ticker", ticker).Str("stage", stage).Msg("Aggregation failed")
		return nil, &models.AggregationError{Ticker: ticker, Cause: err}
	}

	// 1) Market data
	quote, err := a.market.Fetch(ctx, ticker)
	if err != nil {
		return fail("market_data", err)
	}

	// 2) Indicators
	closes := quote.Closes()
	indicators, err := calculate.CalculateAll(closes, a.cfg)
	if err != nil {
		return fail("indicators", err)
	}

	// 3) Forecast
	fctx, cancel := context.WithTimeout(ctx, a.cfg.Timeout())
	defer cancel()
	prediction, err := a.forecaster.Forecast(fctx, quote.History)
	if err != nil {
		return fail("forecast", err)
	}

	// 4) Eco score
	score := eco.Lookup(ticker)

	name := quote.Name
	if name == "" {
		name = ticker
	}

	record := &models.TickerRecord{
		Ticker:     ticker,
		Name:       name,
		Price:      round2(quote.CurrentPrice),
		Volume:     quote.Volume,
		ChangePct:  round2(indicators.ChangePct),
		SMA20:      round2(indicators.SMA),
		RSI:        round2(indicators.RSI),
		Decision:   calculate.Decide(quote.CurrentPrice, indicators.SMA),
		ChartData:  calculate.LastN(closes, a.cfg.ChartPoints),
		Prediction: round2(prediction),
		EcoScore:   score,
	}

	a.logger.Info().
		Str("ticker", ticker).
		Float64("price", record.Price).
		Float64("sma_20", record.SMA20).
		Float64("rsi", record.RSI).
		Str("decision", string(record.Decision)).
		Float64("prediction", record.Prediction).
		Msg("Aggregated ticker")

	return record, nil
}

func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
