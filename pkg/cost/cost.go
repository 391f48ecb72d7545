// Package cost converts token usage into monetary cost.
package cost

import "sync"

const perMillion = 1_000_000

// Pricing is a model's rate pair in currency units per million tokens.
type Pricing struct {
	InputPerMillion  float64 `json:"input_per_million" mapstructure:"input_per_million"`
	OutputPerMillion float64 `json:"output_per_million" mapstructure:"output_per_million"`
}

// Cost returns the price of one call. Token counts are trusted to be non-negative.
func Cost(tokensIn, tokensOut int, p Pricing) float64 {
	return (float64(tokensIn)*p.InputPerMillion + float64(tokensOut)*p.OutputPerMillion) / perMillion
}

// Cost is the method form of the package-level Cost.
func (p Pricing) Cost(tokensIn, tokensOut int) float64 {
	return Cost(tokensIn, tokensOut, p)
}

// Default pricing for the models the CLI knows out of the box.
var knownPricing = map[string]Pricing{
	"gpt-4.1-mini":     {InputPerMillion: 0.40, OutputPerMillion: 1.60},
	"gpt-4.1":          {InputPerMillion: 2.00, OutputPerMillion: 8.00},
	"gemini-2.5-flash": {InputPerMillion: 0.30, OutputPerMillion: 2.50},
	"gemini-2.5-pro":   {InputPerMillion: 1.25, OutputPerMillion: 10.00},
}

// Lookup returns the built-in pricing for model.
func Lookup(model string) (Pricing, bool) {
	p, ok := knownPricing[model]
	return p, ok
}

// Ledger accumulates per-call amounts for one session.
type Ledger struct {
	mu    sync.Mutex
	total float64
	calls int
}

// Add records one call's cost and returns the new total.
func (l *Ledger) Add(amount float64) float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.total += amount
	l.calls++
	return l.total
}

// Total returns the accumulated amount.
func (l *Ledger) Total() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.total
}

// Calls returns how many amounts were added.
func (l *Ledger) Calls() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.calls
}
