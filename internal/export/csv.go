package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Alias1177/kalilfin/models"
)

// Header lists the CSV columns, one per TickerRecord field
var Header = []string{
	"ticker",
	"name",
	"price",
	"volume",
	"change_pct",
	"sma_20",
	"rsi",
	"decision",
	"chart_data",
	"prediction",
	"eco_score",
}

// ToCSV serializes the records, one row per ticker in ticker order.
// Compound fields (chart_data, eco_score) are JSON-encoded cells.
func ToCSV(records map[string]models.TickerRecord) ([]byte, error) {
	if len(records) == 0 {
		return nil, models.ErrEmptyPortfolio
	}

	tickers := make([]string, 0, len(records))
	for t := range records {
		tickers = append(tickers, t)
	}
	sort.Strings(tickers)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(Header); err != nil {
		return nil, fmt.Errorf("writing header: %w", err)
	}

	for _, t := range tickers {
		row, err := encodeRow(records[t])
		if err != nil {
			return nil, fmt.Errorf("encoding %s: %w", t, err)
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("writing %s: %w", t, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flushing csv: %w", err)
	}
	return buf.Bytes(), nil
}

func encodeRow(r models.TickerRecord) ([]string, error) {
	chart := r.ChartData
	if chart == nil {
		chart = []float64{}
	}
	chartJSON, err := json.Marshal(chart)
	if err != nil {
		return nil, err
	}
	ecoJSON, err := json.Marshal(r.EcoScore)
	if err != nil {
		return nil, err
	}

	return []string{
		r.Ticker,
		r.Name,
		num(r.Price),
		strconv.FormatInt(r.Volume, 10),
		num(r.ChangePct),
		num(r.SMA20),
		num(r.RSI),
		string(r.Decision),
		string(chartJSON),
		num(r.Prediction),
		string(ecoJSON),
	}, nil
}

func num(v float64) string {
	return decimal.NewFromFloat(v).String()
}

// Filename returns the download name for an export taken at now
func Filename(prefix string, now time.Time) string {
	return fmt.Sprintf("%s_portfolio_%s.csv", prefix, now.Format("20060102_150405"))
}
