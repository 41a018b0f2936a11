package news

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpClient "github.com/Alias1177/kalilfin/internal/platform/http"
	"github.com/Alias1177/kalilfin/models"
)

const (
	defaultBaseURL = "https://www.google.com"
	resultSelector = "div.BNeawe a"
	userAgent      = "Mozilla/5.0"
)

// Client scrapes recent headlines for a ticker from a news search page
type Client struct {
	baseURL    string
	httpClient *httpClient.Client
	timeout    time.Duration
	logger     zerolog.Logger
}

// ClientOptions holds options for creating a news client
type ClientOptions struct {
	BaseURL        string
	RequestTimeout time.Duration
	RequestsPerSec float64
	MaxRetries     int
}

// NewClient creates a new news client
func NewClient(options ClientOptions) *Client {
	if options.BaseURL == "" {
		options.BaseURL = defaultBaseURL
	}
	if options.RequestTimeout == 0 {
		options.RequestTimeout = 30 * time.Second
	}

	return &Client{
		baseURL: strings.TrimRight(options.BaseURL, "/"),
		httpClient: httpClient.NewClient(httpClient.ClientOptions{
			Timeout:        options.RequestTimeout,
			RequestsPerSec: options.RequestsPerSec,
			MaxRetries:     options.MaxRetries,
		}),
		timeout: options.RequestTimeout,
		logger:  log.With().Str("component", "news_client").Logger(),
	}
}

// FetchHeadlines returns at most limit headlines for the ticker.
// It never fails: any problem yields an empty slice.
func (c *Client) FetchHeadlines(ctx context.Context, ticker string, limit int) []models.NewsItem {
	items, err := c.fetch(ctx, ticker, limit)
	if err != nil {
		c.logger.Debug().Err(err).Str("ticker", ticker).Msg("News lookup failed")
		return []models.NewsItem{}
	}
	return items
}

func (c *Client) fetch(ctx context.Context, ticker string, limit int) ([]models.NewsItem, error) {
	ticker = strings.TrimSpace(ticker)
	if ticker == "" || limit <= 0 {
		return []models.NewsItem{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	query := url.Values{}
	query.Set("q", ticker+" stock news")
	query.Set("tbm", "nws")
	searchURL := fmt.Sprintf("%s/search?%s", c.baseURL, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.DoRequest(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	return ParseHeadlines(doc, limit), nil
}

// ParseHeadlines extracts up to limit result cards from a search result page
func ParseHeadlines(doc *goquery.Document, limit int) []models.NewsItem {
	if limit <= 0 {
		return []models.NewsItem{}
	}
	items := make([]models.NewsItem, 0, limit)
	doc.Find(resultSelector).EachWithBreak(func(i int, s *goquery.Selection) bool {
		title := strings.TrimSpace(s.Text())
		href, ok := s.Attr("href")
		if title == "" || !ok || href == "" {
			return true
		}
		items = append(items, models.NewsItem{Title: title, Link: unwrapLink(href)})
		return len(items) < limit
	})
	return items
}

// unwrapLink turns Google's "/url?q=<target>&..." redirects into the target URL
func unwrapLink(href string) string {
	if !strings.HasPrefix(href, "/url?") {
		return href
	}
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if target := u.Query().Get("q"); target != "" {
		return target
	}
	return href
}
