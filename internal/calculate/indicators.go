package calculate

import (
	"github.com/Alias1177/kalilfin/internal/config"
	"github.com/Alias1177/kalilfin/models"
)

// CalculateAll computes every indicator the portfolio record needs.
// Short series fail with models.ErrInsufficientHistory instead of yielding NaN.
func CalculateAll(closes []float64, cfg *config.Config) (*models.Indicators, error) {
	change, err := ChangePct(closes)
	if err != nil {
		return nil, err
	}

	sma, err := SMA(closes, cfg.SMAPeriod)
	if err != nil {
		return nil, err
	}

	rsi, err := RSI(closes, cfg.RSIPeriod)
	if err != nil {
		return nil, err
	}

	return &models.Indicators{
		SMA:       sma,
		RSI:       rsi,
		ChangePct: change,
	}, nil
}

// LastN returns at most n trailing values, oldest first
func LastN(values []float64, n int) []float64 {
	if n <= 0 {
		return []float64{}
	}
	if len(values) > n {
		values = values[len(values)-n:]
	}
	out := make([]float64, len(values))
	copy(out, values)
	return out
}
