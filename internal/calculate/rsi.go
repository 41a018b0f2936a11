package calculate

import (
	"fmt"
	"math"

	"github.com/markcheno/go-talib"

	"github.com/Alias1177/kalilfin/models"
)

// RSI returns the Wilder relative strength index of the series, in [0, 100]
func RSI(closes []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, fmt.Errorf("rsi period must be positive, got %d", period)
	}
	if len(closes) < period+1 {
		return 0, fmt.Errorf("%w: rsi(%d) needs %d closes, got %d",
			models.ErrInsufficientHistory, period, period+1, len(closes))
	}

	rsi := talib.Rsi(closes, period)
	last := rsi[len(rsi)-1]
	if math.IsNaN(last) {
		return 0, fmt.Errorf("%w: rsi(%d) is not defined", models.ErrInsufficientHistory, period)
	}

	return math.Max(0, math.Min(100, last)), nil
}
