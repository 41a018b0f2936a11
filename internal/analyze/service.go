package analyze

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/kalilfin/internal/config"
	"github.com/Alias1177/kalilfin/internal/export"
	"github.com/Alias1177/kalilfin/internal/portfolio"
	"github.com/Alias1177/kalilfin/models"
)

const timestampLayout = "2006-01-02 15:04:05"

// NewsFetcher returns headlines for a ticker and has no failure mode
type NewsFetcher interface {
	FetchHeadlines(ctx context.Context, ticker string, limit int) []models.NewsItem
}

// TipSource supplies one financial tip per call
type TipSource interface {
	NextTip() string
}

// Service is the dashboard core used by the web server and the bot
type Service struct {
	aggregator *Aggregator
	store      *portfolio.Store
	news       NewsFetcher
	tips       TipSource
	cfg        *config.Config
	now        func() time.Time
	logger     zerolog.Logger
}

// NewService wires the aggregator to the store it owns records in
func NewService(aggregator *Aggregator, store *portfolio.Store, news NewsFetcher, tips TipSource, cfg *config.Config) *Service {
	return &Service{
		aggregator: aggregator,
		store:      store,
		news:       news,
		tips:       tips,
		cfg:        cfg,
		now:        time.Now,
		logger:     log.With().Str("component", "service").Logger(),
	}
}

// AddTicker aggregates a ticker and stores the record on success.
// On failure the store is left untouched.
func (s *Service) AddTicker(ctx context.Context, raw string) (*models.TickerRecord, error) {
	record, err := s.aggregator.Add(ctx, raw)
	if err != nil {
		return nil, err
	}
	s.store.Set(record.Ticker, *record)
	return record, nil
}

// RemoveTicker drops a ticker from the portfolio; unknown tickers are ignored
func (s *Service) RemoveTicker(ticker string) {
	s.store.Remove(NormalizeTicker(ticker))
}

// Record returns the stored record for ticker
func (s *Service) Record(ticker string) (models.TickerRecord, bool) {
	return s.store.Get(NormalizeTicker(ticker))
}

// News fetches fresh headlines for ticker
func (s *Service) News(ctx context.Context, ticker string) []models.NewsItem {
	return s.news.FetchHeadlines(ctx, NormalizeTicker(ticker), s.cfg.NewsLimit)
}

// Tip returns a random financial tip
func (s *Service) Tip() string {
	return s.tips.NextTip()
}

// View assembles the portfolio page: sorted records, fresh news per ticker and a tip.
// News is fetched concurrently and never cached.
func (s *Service) View(ctx context.Context, errMsg string) *models.PortfolioView {
	tickers := s.store.Tickers()
	all := s.store.GetAll()

	view := &models.PortfolioView{
		Records:   make([]models.TickerRecord, 0, len(tickers)),
		News:      make(map[string][]models.NewsItem, len(tickers)),
		Tip:       s.tips.NextTip(),
		Error:     errMsg,
		Timestamp: s.now().Format(timestampLayout),
	}

	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, t := range tickers {
		record, ok := all[t]
		if !ok {
			continue
		}
		view.Records = append(view.Records, record)

		wg.Add(1)
		go func(ticker string) {
			defer wg.Done()
			items := s.news.FetchHeadlines(ctx, ticker, s.cfg.NewsLimit)
			mu.Lock()
			view.News[ticker] = items
			mu.Unlock()
		}(t)
	}
	wg.Wait()

	return view
}

// Export serializes the whole portfolio to CSV with its download name
func (s *Service) Export() (string, []byte, error) {
	data, err := export.ToCSV(s.store.GetAll())
	if err != nil {
		if !errors.Is(err, models.ErrEmptyPortfolio) {
			s.logger.Error().Err(err).Msg("Export failed")
		}
		return "", nil, err
	}
	return export.Filename(s.cfg.ExportPrefix, s.now()), data, nil
}
