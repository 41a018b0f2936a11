package models

import (
	"errors"
	"fmt"
)

var (
	// ErrDataUnavailable is returned when market data cannot be fetched or parsed
	ErrDataUnavailable = errors.New("market data unavailable")
	// ErrInsufficientHistory is returned when a series is too short for a derived metric
	ErrInsufficientHistory = errors.New("insufficient price history")
	// ErrForecast is returned when the forecast model cannot be fitted or evaluated
	ErrForecast = errors.New("forecast failed")
	// ErrEmptyPortfolio is returned when exporting a portfolio with no records
	ErrEmptyPortfolio = errors.New("portfolio is empty")
)

// AggregationError reports that building the record for a ticker failed
type AggregationError struct {
	Ticker string
	Cause  error
}

func (e *AggregationError) Error() string {
	return fmt.Sprintf("aggregating %s: %v", e.Ticker, e.Cause)
}

func (e *AggregationError) Unwrap() error {
	return e.Cause
}
