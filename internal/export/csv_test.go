package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alias1177/kalilfin/models"
)

func parseRecords(t *testing.T, data []byte) map[string]models.TickerRecord {
	t.Helper()
	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.NotEmpty(t, rows)
	require.Equal(t, Header, rows[0])

	parseFloat := func(s string) float64 {
		v, err := strconv.ParseFloat(s, 64)
		require.NoError(t, err)
		return v
	}

	out := map[string]models.TickerRecord{}
	for _, row := range rows[1:] {
		require.Len(t, row, len(Header))
		volume, err := strconv.ParseInt(row[3], 10, 64)
		require.NoError(t, err)

		var chart []float64
		require.NoError(t, json.Unmarshal([]byte(row[8]), &chart))
		var eco models.EcoScore
		require.NoError(t, json.Unmarshal([]byte(row[10]), &eco))

		out[row[0]] = models.TickerRecord{
			Ticker:     row[0],
			Name:       row[1],
			Price:      parseFloat(row[2]),
			Volume:     volume,
			ChangePct:  parseFloat(row[4]),
			SMA20:      parseFloat(row[5]),
			RSI:        parseFloat(row[6]),
			Decision:   models.Decision(row[7]),
			ChartData:  chart,
			Prediction: parseFloat(row[9]),
			EcoScore:   eco,
		}
	}
	return out
}

func TestToCSVRoundTrip(t *testing.T) {
	records := map[string]models.TickerRecord{
		"MSFT": {
			Ticker: "MSFT", Name: "Microsoft Corporation", Price: 415.26, Volume: 18234567,
			ChangePct: -0.37, SMA20: 420.11, RSI: 44.9, Decision: models.DecisionBuy,
			ChartData: []float64{410.1, 412.333333, 415.26}, Prediction: 417.02,
			EcoScore: models.EcoScore{Score: 80, Carbon: 3800},
		},
		"AAPL": {
			Ticker: "AAPL", Name: `Apple, Inc. "Cupertino"`, Price: 120, Volume: 0,
			ChangePct: 0.84, SMA20: 110.5, RSI: 100, Decision: models.DecisionSell,
			ChartData: []float64{0.1 + 0.2, 119, 120}, Prediction: 136,
			EcoScore: models.EcoScore{Score: 75, Carbon: 4500},
		},
		"ZZZZ": {
			Ticker: "ZZZZ", Name: "ZZZZ", Price: 1, Decision: models.DecisionHold,
			EcoScore: models.EcoScore{Score: 50, Carbon: 5000},
		},
	}

	data, err := ToCSV(records)
	require.NoError(t, err)

	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, len(records)+1)
	assert.Equal(t, "AAPL", rows[1][0])
	assert.Equal(t, "MSFT", rows[2][0])

	got := parseRecords(t, data)
	zzzz := records["ZZZZ"]
	zzzz.ChartData = []float64{}
	records["ZZZZ"] = zzzz
	assert.Equal(t, records, got)
}

func TestToCSVEmpty(t *testing.T) {
	_, err := ToCSV(nil)
	assert.ErrorIs(t, err, models.ErrEmptyPortfolio)

	_, err = ToCSV(map[string]models.TickerRecord{})
	assert.ErrorIs(t, err, models.ErrEmptyPortfolio)
}

func TestFilename(t *testing.T) {
	now := time.Date(2024, 3, 9, 7, 5, 1, 0, time.UTC)
	assert.Equal(t, "kalilfin_portfolio_20240309_070501.csv", Filename("kalilfin", now))
}
