package cost

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCost(t *testing.T) {
	p := Pricing{InputPerMillion: 0.40, OutputPerMillion: 1.60}

	assert.InDelta(t, 0.00088, Cost(1000, 300, p), 1e-12)
	assert.Equal(t, 0.0, Cost(0, 0, p))
	assert.InDelta(t, 2.0, Cost(1_000_000, 1_000_000, p), 1e-12)
}

func TestCost_Idempotent(t *testing.T) {
	p := Pricing{InputPerMillion: 0.30, OutputPerMillion: 2.50}
	first := Cost(1234, 567, p)
	second := Cost(1234, 567, p)
	assert.Equal(t, first, second)
	assert.Equal(t, first, p.Cost(1234, 567))
}

func TestLookup(t *testing.T) {
	p, ok := Lookup("gpt-4.1-mini")
	assert.True(t, ok)
	assert.Equal(t, Pricing{InputPerMillion: 0.40, OutputPerMillion: 1.60}, p)

	_, ok = Lookup("unknown-model")
	assert.False(t, ok)
}

func TestLedger_Monotonic(t *testing.T) {
	var l Ledger
	prev := l.Total()
	for _, amount := range []float64{0.001, 0, 0.25, 0.0003} {
		next := l.Add(amount)
		if next < prev {
			t.Fatalf("expected non-decreasing total, got %f after %f", next, prev)
		}
		prev = next
	}
	assert.Equal(t, 4, l.Calls())
	assert.InDelta(t, 0.2513, l.Total(), 1e-12)
}
