package chart

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/Alias1177/kalilfin/models"
)

// RenderPriceChart renders the record's recent closes as a PNG line chart,
// with its 20-day SMA drawn as a dashed reference line.
func RenderPriceChart(record models.TickerRecord) ([]byte, error) {
	points := record.ChartData
	if len(points) < 2 {
		return nil, fmt.Errorf("need at least 2 data points, got %d", len(points))
	}

	xValues := make([]float64, len(points))
	smaY := make([]float64, len(points))
	for i := range points {
		xValues[i] = float64(i + 1)
		smaY[i] = record.SMA20
	}

	closeSeries := chart.ContinuousSeries{
		Name: "Close",
		Style: chart.Style{
			StrokeColor: drawing.ColorFromHex("2563eb"),
			StrokeWidth: 2.5,
		},
		XValues: xValues,
		YValues: points,
	}

	smaSeries := chart.ContinuousSeries{
		Name: "SMA 20",
		Style: chart.Style{
			StrokeColor:     drawing.ColorFromHex("9ca3af"),
			StrokeWidth:     1.5,
			StrokeDashArray: []float64{5.0, 3.0},
		},
		XValues: xValues,
		YValues: smaY,
	}

	graph := chart.Chart{
		Title:  fmt.Sprintf("%s (%s)", record.Ticker, record.Decision),
		Width:  640,
		Height: 320,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f", f)
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("$%.2f", f)
				}
				return ""
			},
		},
		Series: []chart.Series{closeSeries, smaSeries},
	}

	graph.Elements = []chart.Renderable{
		chart.LegendLeft(&graph),
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}
	return buf.Bytes(), nil
}
