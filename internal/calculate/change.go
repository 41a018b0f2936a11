package calculate

import (
	"fmt"

	"github.com/Alias1177/kalilfin/models"
)

// ChangePct returns the percent change of the last close over the previous one
func ChangePct(closes []float64) (float64, error) {
	if len(closes) < 2 {
		return 0, fmt.Errorf("%w: change needs 2 closes, got %d", models.ErrInsufficientHistory, len(closes))
	}

	prev := closes[len(closes)-2]
	last := closes[len(closes)-1]
	if prev == 0 {
		return 0, fmt.Errorf("%w: previous close is zero", models.ErrDataUnavailable)
	}

	return (last - prev) / prev * 100, nil
}

// Decide compares the price with its moving average.
// Below the average is a Buy, above is a Sell, exact equality is a Hold.
func Decide(price, sma float64) models.Decision {
	switch {
	case price < sma:
		return models.DecisionBuy
	case price > sma:
		return models.DecisionSell
	default:
		return models.DecisionHold
	}
}
