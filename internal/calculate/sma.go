package calculate

import (
	"fmt"
	"math"

	"github.com/markcheno/go-talib"

	"github.com/Alias1177/kalilfin/models"
)

// SMA returns the simple moving average of the last window closes
func SMA(closes []float64, window int) (float64, error) {
	if window <= 0 {
		return 0, fmt.Errorf("sma window must be positive, got %d", window)
	}
	if len(closes) < window {
		return 0, fmt.Errorf("%w: sma(%d) needs %d closes, got %d",
			models.ErrInsufficientHistory, window, window, len(closes))
	}

	sma := talib.Sma(closes, window)
	last := sma[len(sma)-1]
	if math.IsNaN(last) || math.IsInf(last, 0) {
		return 0, fmt.Errorf("%w: sma(%d) is not finite", models.ErrInsufficientHistory, window)
	}

	return last, nil
}
