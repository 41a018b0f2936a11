package prediction

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/mat"

	"github.com/Alias1177/kalilfin/models"
)

const (
	// MinFitPoints is the shortest history a model is fitted to.
	// Shorter histories get a persistence forecast.
	MinFitPoints = 10
	// yearly seasonality is only fitted over at least two full cycles
	minSeasonalSpanDays = 2 * daysPerYear
	daysPerYear         = 365.25
	fourierOrder        = 3
	ridgePenalty        = 1e-9
)

// Engine fits an additive trend + yearly seasonality model to daily closes
type Engine struct {
	horizonDays int
	logger      zerolog.Logger
}

// NewEngine creates a forecast engine predicting horizonDays past the last close
func NewEngine(horizonDays int) *Engine {
	if horizonDays <= 0 {
		horizonDays = 7
	}
	return &Engine{
		horizonDays: horizonDays,
		logger:      log.With().Str("component", "forecast").Logger(),
	}
}

// Forecast returns the predicted close horizonDays after the last observation,
// rounded to 2 decimals. Failures wrap models.ErrForecast.
func (e *Engine) Forecast(ctx context.Context, history []models.Bar) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("%w: %v", models.ErrForecast, err)
	}
	if len(history) < 2 {
		return 0, fmt.Errorf("%w: need at least 2 points, got %d", models.ErrForecast, len(history))
	}

	for i, b := range history {
		if math.IsNaN(b.Close) || math.IsInf(b.Close, 0) {
			return 0, fmt.Errorf("%w: close at %d is not finite", models.ErrForecast, i)
		}
		if i > 0 && !b.Date.After(history[i-1].Date) {
			return 0, fmt.Errorf("%w: dates are not strictly increasing at %d", models.ErrForecast, i)
		}
	}

	last := history[len(history)-1]
	if len(history) < MinFitPoints {
		e.logger.Debug().Int("points", len(history)).Msg("History too short to fit, using persistence forecast")
		return round2(last.Close), nil
	}

	first := history[0].Date
	span := days(first, last.Date)
	seasonal := span >= minSeasonalSpanDays

	n := len(history)
	p := 2
	if seasonal {
		p += 2 * fourierOrder
	}

	// y is scaled by its largest magnitude to keep the normal equations well conditioned
	scale := 0.0
	for _, b := range history {
		scale = math.Max(scale, math.Abs(b.Close))
	}
	if scale == 0 {
		return 0, nil
	}

	x := mat.NewDense(n, p, nil)
	y := mat.NewVecDense(n, nil)
	for i, b := range history {
		t := days(first, b.Date)
		x.SetRow(i, features(t, span, seasonal))
		y.SetVec(i, b.Close/scale)
	}

	var xtx mat.Dense
	xtx.Mul(x.T(), x)
	// Intercept is not penalized
	for j := 1; j < p; j++ {
		xtx.Set(j, j, xtx.At(j, j)+ridgePenalty*float64(n))
	}

	var xty mat.VecDense
	xty.MulVec(x.T(), y)

	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("%w: %v", models.ErrForecast, err)
	}

	var beta mat.VecDense
	if err := beta.SolveVec(&xtx, &xty); err != nil {
		return 0, fmt.Errorf("%w: solving model: %v", models.ErrForecast, err)
	}

	target := days(first, last.Date) + float64(e.horizonDays)
	yhat := mat.Dot(mat.NewVecDense(p, features(target, span, seasonal)), &beta) * scale
	if math.IsNaN(yhat) || math.IsInf(yhat, 0) {
		return 0, fmt.Errorf("%w: prediction is not finite", models.ErrForecast)
	}

	e.logger.Debug().
		Int("points", n).
		Bool("seasonal", seasonal).
		Float64("yhat", yhat).
		Msg("Fitted forecast model")

	return round2(yhat), nil
}

// features builds the design row for t days after the first observation
func features(t, span float64, seasonal bool) []float64 {
	row := []float64{1, t / span}
	if seasonal {
		for k := 1; k <= fourierOrder; k++ {
			angle := 2 * math.Pi * float64(k) * t / daysPerYear
			row = append(row, math.Sin(angle), math.Cos(angle))
		}
	}
	return row
}

func days(from, to time.Time) float64 {
	return to.Sub(from).Hours() / 24
}

func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
