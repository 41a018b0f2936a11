package calculate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alias1177/kalilfin/internal/config"
	"github.com/Alias1177/kalilfin/models"
)

func series(n int, f func(i int) float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = f(i)
	}
	return out
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func TestSMA(t *testing.T) {
	zigzag := series(45, func(i int) float64 { return 100 + float64(i%7)*1.5 - float64(i%3) })

	tests := []struct {
		name    string
		closes  []float64
		window  int
		want    float64
		wantErr error
	}{
		{"exact window", series(20, func(i int) float64 { return float64(i + 1) }), 20, 10.5, nil},
		{"uses last window only", series(30, func(i int) float64 { return float64(i) }), 20, 19.5, nil},
		{"zigzag", zigzag, 20, mean(zigzag[len(zigzag)-20:]), nil},
		{"too short", series(19, func(i int) float64 { return 1 }), 20, 0, models.ErrInsufficientHistory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SMA(tt.closes, tt.window)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestRSI(t *testing.T) {
	tests := []struct {
		name   string
		closes []float64
		check  func(t *testing.T, rsi float64)
	}{
		{
			name:   "only gains",
			closes: series(30, func(i int) float64 { return 100 + float64(i) }),
			check:  func(t *testing.T, rsi float64) { assert.InDelta(t, 100, rsi, 1e-9) },
		},
		{
			name:   "only losses",
			closes: series(30, func(i int) float64 { return 200 - float64(i) }),
			check:  func(t *testing.T, rsi float64) { assert.InDelta(t, 0, rsi, 1e-9) },
		},
		{
			name:   "alternating is balanced",
			closes: series(31, func(i int) float64 { return 100 + float64(i%2) }),
			check: func(t *testing.T, rsi float64) {
				assert.Greater(t, rsi, 40.0)
				assert.Less(t, rsi, 60.0)
			},
		},
		{
			name:   "minimum length",
			closes: series(15, func(i int) float64 { return 50 + float64(i%4) }),
			check: func(t *testing.T, rsi float64) {
				assert.GreaterOrEqual(t, rsi, 0.0)
				assert.LessOrEqual(t, rsi, 100.0)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rsi, err := RSI(tt.closes, 14)
			require.NoError(t, err)
			tt.check(t, rsi)
		})
	}

	_, err := RSI(series(14, func(i int) float64 { return 1 }), 14)
	assert.ErrorIs(t, err, models.ErrInsufficientHistory)
}

func TestChangePct(t *testing.T) {
	got, err := ChangePct([]float64{119, 120})
	require.NoError(t, err)
	assert.InDelta(t, 0.8403, got, 1e-4)

	got, err = ChangePct([]float64{50, 100, 90})
	require.NoError(t, err)
	assert.InDelta(t, -10, got, 1e-9)

	_, err = ChangePct([]float64{100})
	assert.ErrorIs(t, err, models.ErrInsufficientHistory)

	_, err = ChangePct([]float64{0, 10})
	assert.ErrorIs(t, err, models.ErrDataUnavailable)
}

func TestDecide(t *testing.T) {
	tests := []struct {
		name       string
		price, sma float64
		want       models.Decision
	}{
		{"below average", 99.99, 100, models.DecisionBuy},
		{"above average", 100.01, 100, models.DecisionSell},
		{"exactly equal", 100, 100, models.DecisionHold},
		{"equal mean of series", mean([]float64{1, 2, 3}), 2, models.DecisionHold},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(tt.price, tt.sma))
		})
	}
}

func TestCalculateAll(t *testing.T) {
	cfg := config.Default()

	// 100, 101, ..., 120
	closes := series(21, func(i int) float64 { return 100 + float64(i) })
	ind, err := CalculateAll(closes, cfg)
	require.NoError(t, err)
	assert.InDelta(t, 110.5, ind.SMA, 1e-9)
	assert.InDelta(t, (120.0-119.0)/119.0*100, ind.ChangePct, 1e-9)
	assert.InDelta(t, 100, ind.RSI, 1e-9)
	assert.Equal(t, models.DecisionSell, Decide(120, ind.SMA))

	_, err = CalculateAll(closes[:10], cfg)
	assert.ErrorIs(t, err, models.ErrInsufficientHistory)
}

func TestLastN(t *testing.T) {
	values := series(40, func(i int) float64 { return float64(i) })

	got := LastN(values, 30)
	assert.Len(t, got, 30)
	assert.Equal(t, 10.0, got[0])
	assert.Equal(t, 39.0, got[29])

	got[0] = -1
	assert.Equal(t, 10.0, values[10])

	assert.Equal(t, []float64{0, 1}, LastN(values[:2], 30))
	assert.Empty(t, LastN(values, 0))
}
