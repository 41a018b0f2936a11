package models

import (
	"time"
)

// Decision is the trade signal derived from price versus the moving average
type Decision string

const (
	DecisionBuy  Decision = "Buy"
	DecisionSell Decision = "Sell"
	DecisionHold Decision = "Hold"
)

// Bar represents a single daily price bar
type Bar struct {
	Date   time.Time `json:"date"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume,omitempty"`
}

// Quote is what the market data provider returns for one ticker
type Quote struct {
	Ticker       string
	Name         string
	CurrentPrice float64
	Volume       int64
	History      []Bar // oldest first
}

// Closes returns the closing prices of the history, oldest first
func (q *Quote) Closes() []float64 {
	closes := make([]float64, len(q.History))
	for i, b := range q.History {
		closes[i] = b.Close
	}
	return closes
}

// Indicators holds the derived technical indicators for one ticker
type Indicators struct {
	SMA       float64 `json:"sma_20"`
	RSI       float64 `json:"rsi"`
	ChangePct float64 `json:"change_pct"`
}

// EcoScore is a synthetic environmental-impact rating
type EcoScore struct {
	Score  int     `json:"score"`
	Carbon float64 `json:"carbon"`
}

// TickerRecord is the enriched record kept in the portfolio
type TickerRecord struct {
	Ticker     string    `json:"ticker"`
	Name       string    `json:"name"`
	Price      float64   `json:"price"`
	Volume     int64     `json:"volume"`
	ChangePct  float64   `json:"change_pct"`
	SMA20      float64   `json:"sma_20"`
	RSI        float64   `json:"rsi"`
	Decision   Decision  `json:"decision"`
	ChartData  []float64 `json:"chart_data"`
	Prediction float64   `json:"prediction"`
	EcoScore   EcoScore  `json:"eco_score"`
}

// NewsItem is a single scraped headline
type NewsItem struct {
	Title string `json:"title"`
	Link  string `json:"link"`
}

// PortfolioView is everything a portfolio page render needs
type PortfolioView struct {
	Records   []TickerRecord        `json:"portfolio"`
	News      map[string][]NewsItem `json:"news"`
	Tip       string                `json:"ai_tip"`
	Error     string                `json:"error,omitempty"`
	Timestamp string                `json:"timestamp"`
}
