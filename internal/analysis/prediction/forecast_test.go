package prediction

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alias1177/kalilfin/models"
)

var start = time.Date(2021, 1, 4, 0, 0, 0, 0, time.UTC)

func daily(n int, f func(t float64) float64) []models.Bar {
	out := make([]models.Bar, n)
	for i := range out {
		out[i] = models.Bar{Date: start.AddDate(0, 0, i), Close: f(float64(i))}
	}
	return out
}

func TestForecast(t *testing.T) {
	seasonalTruth := func(t float64) float64 {
		return 100 + 0.01*t + 5*math.Sin(2*math.Pi*t/365.25)
	}

	tests := []struct {
		name    string
		history []models.Bar
		horizon int
		want    float64
		delta   float64
	}{
		{
			name:    "linear trend is extrapolated",
			history: daily(30, func(t float64) float64 { return 100 + t }),
			horizon: 7,
			want:    136,
			delta:   0.01,
		},
		{
			name:    "flat series stays flat",
			history: daily(60, func(float64) float64 { return 42.5 }),
			horizon: 7,
			want:    42.5,
			delta:   0.01,
		},
		{
			name:    "yearly seasonality over three years",
			history: daily(3*365, seasonalTruth),
			horizon: 7,
			want:    seasonalTruth(3*365 - 1 + 7),
			delta:   0.05,
		},
		{
			name:    "persistence below minimum fit length",
			history: daily(5, func(t float64) float64 { return 10 + t*3 }),
			horizon: 7,
			want:    22,
			delta:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewEngine(tt.horizon).Forecast(context.Background(), tt.history)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, tt.delta)
			assert.Equal(t, got, math.Round(got*100)/100)
		})
	}
}

func TestForecastIsDeterministic(t *testing.T) {
	history := daily(90, func(t float64) float64 { return 50 + math.Sin(t/3)*4 + t*0.2 })
	e := NewEngine(7)

	a, err := e.Forecast(context.Background(), history)
	require.NoError(t, err)
	b, err := e.Forecast(context.Background(), history)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestForecastErrors(t *testing.T) {
	unordered := daily(20, func(t float64) float64 { return t + 1 })
	unordered[5].Date = unordered[4].Date

	notFinite := daily(20, func(t float64) float64 { return t + 1 })
	notFinite[3].Close = math.NaN()

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	tests := []struct {
		name    string
		ctx     context.Context
		history []models.Bar
	}{
		{"empty", context.Background(), nil},
		{"single point", context.Background(), daily(1, func(float64) float64 { return 1 })},
		{"duplicate dates", context.Background(), unordered},
		{"NaN close", context.Background(), notFinite},
		{"cancelled context", cancelled, daily(30, func(t float64) float64 { return t })},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewEngine(7).Forecast(tt.ctx, tt.history)
			assert.ErrorIs(t, err, models.ErrForecast)
		})
	}
}
