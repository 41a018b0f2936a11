package portfolio

import (
	"sort"
	"strings"
	"sync"

	"github.com/Alias1177/kalilfin/models"
)

// Store is the in-memory ticker -> record mapping of one process.
// Nothing is persisted; the store starts empty on every start.
type Store struct {
	mu      sync.RWMutex
	records map[string]models.TickerRecord
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{records: make(map[string]models.TickerRecord)}
}

func key(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}

// Set inserts or fully replaces the record for ticker
func (s *Store) Set(ticker string, record models.TickerRecord) {
	record.ChartData = append([]float64(nil), record.ChartData...)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[key(ticker)] = record
}

// Remove deletes the record for ticker; absent tickers are ignored
func (s *Store) Remove(ticker string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, key(ticker))
}

// Get returns the record for ticker
func (s *Store) Get(ticker string) (models.TickerRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.records[key(ticker)]
	if ok {
		r.ChartData = append([]float64(nil), r.ChartData...)
	}
	return r, ok
}

// GetAll returns a snapshot copy of every record
func (s *Store) GetAll() map[string]models.TickerRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]models.TickerRecord, len(s.records))
	for k, r := range s.records {
		r.ChartData = append([]float64(nil), r.ChartData...)
		out[k] = r
	}
	return out
}

// Tickers returns the stored tickers in sorted order
func (s *Store) Tickers() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.records))
	for k := range s.records {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of stored records
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
