package portfolio

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alias1177/kalilfin/models"
)

func record(ticker string, price float64) models.TickerRecord {
	return models.TickerRecord{Ticker: ticker, Name: ticker, Price: price, ChartData: []float64{price}}
}

func TestSetGetRemove(t *testing.T) {
	s := NewStore()
	s.Set("AAPL", record("AAPL", 120))

	got, ok := s.Get("aapl")
	require.True(t, ok)
	assert.Equal(t, 120.0, got.Price)

	s.Set("AAPL", record("AAPL", 125))
	got, _ = s.Get("AAPL")
	assert.Equal(t, 125.0, got.Price)
	assert.Equal(t, 1, s.Len())

	s.Remove("AAPL")
	_, ok = s.Get("AAPL")
	assert.False(t, ok)
}

func TestRemoveAbsentIsNoop(t *testing.T) {
	s := NewStore()
	s.Set("MSFT", record("MSFT", 300))

	assert.NotPanics(t, func() {
		s.Remove("ZZZZ")
		s.Remove("ZZZZ")
	})
	assert.Equal(t, []string{"MSFT"}, s.Tickers())
}

func TestGetAllIsSnapshot(t *testing.T) {
	s := NewStore()
	s.Set("TSLA", record("TSLA", 200))

	all := s.GetAll()
	all["TSLA"].ChartData[0] = -1
	delete(all, "TSLA")

	got, ok := s.Get("TSLA")
	require.True(t, ok)
	assert.Equal(t, []float64{200}, got.ChartData)
}

func TestConcurrentSet(t *testing.T) {
	s := NewStore()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ticker := fmt.Sprintf("T%02d", i)
			s.Set(ticker, record(ticker, float64(i)))
			_ = s.GetAll()
			if i%5 == 0 {
				s.Remove(ticker)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 40, s.Len())
	tickers := s.Tickers()
	assert.IsIncreasing(t, tickers)
}
