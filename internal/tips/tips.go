package tips

import (
	"math/rand"
	"sync"
	"time"
)

// Tips is the fixed list of financial tips shown on the dashboard
var Tips = []string{
	"Save 10% of your income monthly for a rainy day!",
	"Consider diversifying with international stocks.",
	"Check your portfolio’s eco-impact weekly.",
}

// Provider picks a random tip. Safe for concurrent use.
type Provider struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewProvider creates a provider drawing from rnd
func NewProvider(rnd *rand.Rand) *Provider {
	return &Provider{rnd: rnd}
}

// NewSeeded creates a provider with a deterministic sequence
func NewSeeded(seed int64) *Provider {
	return NewProvider(rand.New(rand.NewSource(seed)))
}

// NewDefault creates a provider seeded from the clock
func NewDefault() *Provider {
	return NewSeeded(time.Now().UnixNano())
}

// NextTip returns one of Tips, chosen uniformly
func (p *Provider) NextTip() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Tips[p.rnd.Intn(len(Tips))]
}
