package eco

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Alias1177/kalilfin/models"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		ticker string
		want   models.EcoScore
	}{
		{"AAPL", models.EcoScore{Score: 75, Carbon: 4500}},
		{"msft", models.EcoScore{Score: 80, Carbon: 3800}},
		{" TSLA ", models.EcoScore{Score: 95, Carbon: 2000}},
		{"ZZZZ", models.EcoScore{Score: 50, Carbon: 5000}},
		{"", models.EcoScore{Score: 50, Carbon: 5000}},
	}

	for _, tt := range tests {
		t.Run(tt.ticker, func(t *testing.T) {
			assert.Equal(t, tt.want, Lookup(tt.ticker))
		})
	}
}
