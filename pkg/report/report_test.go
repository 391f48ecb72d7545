package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cpunion/claim-debate/pkg/types"
	"github.com/cpunion/claim-debate/pkg/verdict"
)

func TestStats(t *testing.T) {
	st := types.Statement{Latency: 1234 * time.Millisecond, TokensUsed: 456, Cost: 0.000123}
	assert.Equal(t, "[1.23s | 456 tokens | $0.000123]", Stats(st))
}

func TestPrinter_Progress(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.Header("X occurred in March 2020.", "X occurred in April 2020.")
	p.Round("ROUND 5: CRITIC FINAL")
	p.Statement(types.Statement{
		Role:       types.RoleCritic,
		Label:      "Critic Final",
		Text:       "The month is wrong.",
		Latency:    500 * time.Millisecond,
		TokensUsed: 10,
		Cost:       0.00001,
	})
	p.Statement(types.Statement{Role: types.RoleVerifier, Text: "Checked."})

	out := buf.String()
	assert.Contains(t, out, "X occurred in March 2020.")
	assert.Contains(t, out, "X occurred in April 2020.")
	assert.Contains(t, out, "=== ROUND 5: CRITIC FINAL ===")
	assert.Contains(t, out, "[Critic Final]:")
	assert.Contains(t, out, "The month is wrong.")
	assert.Contains(t, out, "[0.50s | 10 tokens | $0.000010]")
	assert.Contains(t, out, "[Verifier]:")
}

func TestPrinter_Verdict(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	v := verdict.Verdict{
		FactualCorrectness: verdict.Score{Value: 90, Explanation: "Right event."},
		TemporalAccuracy:   verdict.Score{Value: 10},
		Completeness:       verdict.Score{Value: -1},
		Overall:            verdict.Mutation,
		Confidence:         75,
		Summary:            "Wrong month.",
	}
	p.Verdict(&types.Result{TotalCost: 0.0042}, v)

	out := buf.String()
	assert.Contains(t, out, "MUTATION")
	assert.Contains(t, out, "90%")
	assert.Contains(t, out, "Right event.")
	assert.Contains(t, out, "n/a")
	assert.Contains(t, out, "Wrong month.")
	assert.Contains(t, out, "Total cost: $0.004200")
}

func TestPrinter_Persona(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).Persona(types.RoleMediator, "  Find common ground.\n")

	out := buf.String()
	assert.Contains(t, out, "Mediator (mediator)")
	assert.Contains(t, out, "Find common ground.\n")
}

func TestPrinter_ParsedVerdictProblems(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).ParsedVerdict(verdict.Parse("no layout here"))

	out := buf.String()
	assert.Contains(t, out, "UNPARSEABLE")
	assert.Contains(t, out, "OVERALL VERDICT: missing")
}

func TestPrinter_Error(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).Error(errors.New("boom"))
	assert.Contains(t, buf.String(), "Debate aborted: boom")
}

func TestWriteJSON(t *testing.T) {
	res := &types.Result{
		SessionID: "s-1",
		Fact:      "f",
		Claim:     "c",
		Transcript: types.Transcript{
			{Role: types.RoleCritic, Text: "no", Cost: 0.5},
		},
		Verdict:   "OVERALL VERDICT: MUTATION",
		TotalCost: 0.5,
	}
	v := verdict.Verdict{Overall: verdict.Mutation, Confidence: 60}

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, res, v))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "s-1", got["session_id"])
	assert.Equal(t, 0.5, got["total_cost"])
	assert.Len(t, got["transcript"], 1)

	parsed, ok := got["parsed_verdict"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "MUTATION", parsed["overall"])
}
