package eco

import (
	"strings"

	"github.com/Alias1177/kalilfin/models"
)

// DefaultScore is returned for tickers without a rating
var DefaultScore = models.EcoScore{Score: 50, Carbon: 5000}

var scores = map[string]models.EcoScore{
	"AAPL": {Score: 75, Carbon: 4500},
	"MSFT": {Score: 80, Carbon: 3800},
	"TSLA": {Score: 95, Carbon: 2000},
}

// Lookup returns the eco score of a ticker, or DefaultScore when unknown
func Lookup(ticker string) models.EcoScore {
	if s, ok := scores[strings.ToUpper(strings.TrimSpace(ticker))]; ok {
		return s
	}
	return DefaultScore
}
