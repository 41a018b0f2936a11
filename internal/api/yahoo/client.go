package yahoo

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	ymodels "github.com/wnjoon/go-yfinance/pkg/models"
	"github.com/wnjoon/go-yfinance/pkg/ticker"

	"github.com/Alias1177/kalilfin/models"
)

// snapshot is the raw provider answer before normalization
type snapshot struct {
	LongName     string
	ShortName    string
	MarketPrice  float64
	MarketVolume int64
	Bars         []models.Bar
}

type loader func(symbol, period string) (*snapshot, error)

// Client is the Yahoo Finance market data client
type Client struct {
	period  string
	timeout time.Duration
	load    loader
	logger  zerolog.Logger
}

// ClientOptions holds options for creating a new Yahoo client
type ClientOptions struct {
	HistoryPeriod  string // Yahoo period string, e.g. "3mo"
	RequestTimeout time.Duration
}

// NewClient creates a new Yahoo Finance client backed by go-yfinance
func NewClient(options ClientOptions) *Client {
	if options.HistoryPeriod == "" {
		options.HistoryPeriod = "3mo"
	}
	if options.RequestTimeout == 0 {
		options.RequestTimeout = 30 * time.Second
	}

	return &Client{
		period:  options.HistoryPeriod,
		timeout: options.RequestTimeout,
		load:    loadFromYahoo,
		logger:  log.With().Str("component", "yahoo_client").Logger(),
	}
}

// Fetch returns the quote and daily history for one ticker.
// Every failure is reported as models.ErrDataUnavailable.
func (c *Client) Fetch(ctx context.Context, symbol string) (*models.Quote, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, fmt.Errorf("%w: empty ticker", models.ErrDataUnavailable)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	type result struct {
		snap *snapshot
		err  error
	}
	// go-yfinance has no context support, so the call is abandoned on timeout
	done := make(chan result, 1)
	go func() {
		snap, err := c.load(symbol, c.period)
		done <- result{snap, err}
	}()

	var res result
	select {
	case <-ctx.Done():
		c.logger.Warn().Str("ticker", symbol).Dur("timeout", c.timeout).Msg("Market data request timed out")
		return nil, fmt.Errorf("%w: %s: %v", models.ErrDataUnavailable, symbol, ctx.Err())
	case res = <-done:
	}

	if res.err != nil {
		c.logger.Debug().Err(res.err).Str("ticker", symbol).Msg("Market data request failed")
		return nil, fmt.Errorf("%w: %s: %v", models.ErrDataUnavailable, symbol, res.err)
	}

	quote, err := normalize(symbol, res.snap)
	if err != nil {
		return nil, err
	}

	c.logger.Debug().Str("ticker", symbol).Int("bars", len(quote.History)).Float64("price", quote.CurrentPrice).Msg("Fetched quote")
	return quote, nil
}

// normalize turns a provider snapshot into a models.Quote
func normalize(symbol string, snap *snapshot) (*models.Quote, error) {
	if snap == nil {
		return nil, fmt.Errorf("%w: %s: no data", models.ErrDataUnavailable, symbol)
	}

	bars := make([]models.Bar, 0, len(snap.Bars))
	for _, b := range snap.Bars {
		if b.Close > 0 {
			bars = append(bars, b)
		}
	}

	// Sort bars by date (oldest first for proper calculations)
	sort.SliceStable(bars, func(i, j int) bool {
		return bars[i].Date.Before(bars[j].Date)
	})

	// A repeated timestamp keeps the bar delivered last
	deduped := bars[:0]
	for _, b := range bars {
		if n := len(deduped); n > 0 && deduped[n-1].Date.Equal(b.Date) {
			deduped[n-1] = b
			continue
		}
		deduped = append(deduped, b)
	}
	bars = deduped

	if len(bars) < 2 {
		return nil, fmt.Errorf("%w: %s: %d price points", models.ErrDataUnavailable, symbol, len(bars))
	}

	last := bars[len(bars)-1]

	price := snap.MarketPrice
	if price <= 0 {
		price = last.Close
	}

	volume := snap.MarketVolume
	if volume <= 0 {
		volume = last.Volume
	}

	name := snap.LongName
	if name == "" {
		name = snap.ShortName
	}
	if name == "" {
		name = symbol
	}

	return &models.Quote{
		Ticker:       symbol,
		Name:         name,
		CurrentPrice: price,
		Volume:       volume,
		History:      bars,
	}, nil
}

func loadFromYahoo(symbol, period string) (*snapshot, error) {
	t, err := ticker.New(symbol)
	if err != nil {
		return nil, fmt.Errorf("failed to create ticker: %w", err)
	}
	defer t.Close()

	params := ymodels.HistoryParams{
		Period:     period,
		Interval:   "1d",
		AutoAdjust: true,
	}

	history, err := t.History(params)
	if err != nil {
		return nil, fmt.Errorf("failed to get historical prices: %w", err)
	}

	snap := &snapshot{Bars: make([]models.Bar, 0, len(history))}
	for _, bar := range history {
		snap.Bars = append(snap.Bars, models.Bar{
			Date:   bar.Date,
			Close:  bar.Close,
			Volume: int64(bar.Volume),
		})
	}

	// Quote and info are optional; history alone is enough to build a record
	if quote, err := t.Quote(); err == nil && quote != nil {
		snap.MarketPrice = quote.RegularMarketPrice
		snap.MarketVolume = int64(quote.RegularMarketVolume)
	}
	if info, err := t.Info(); err == nil && info != nil {
		snap.LongName = info.LongName
		snap.ShortName = info.ShortName
	}

	return snap, nil
}
