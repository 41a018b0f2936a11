package tips

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextTipIsDeterministicForSeed(t *testing.T) {
	a, b := NewSeeded(42), NewSeeded(42)
	for i := 0; i < 20; i++ {
		assert.Equal(t, a.NextTip(), b.NextTip())
	}
}

func TestNextTipCoversList(t *testing.T) {
	p := NewSeeded(7)
	seen := map[string]int{}
	for i := 0; i < 300; i++ {
		tip := p.NextTip()
		assert.Contains(t, Tips, tip)
		seen[tip]++
	}
	assert.Len(t, seen, len(Tips))
}
