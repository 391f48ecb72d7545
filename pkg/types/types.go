// Package types defines core types for the claim debate pipeline.
package types

import (
	"fmt"
	"strings"
	"time"
)

// Role identifies one of the fixed debate personas.
type Role string

const (
	RoleCritic      Role = "critic"      // Attacks the claim
	RoleDefender    Role = "defender"    // Protects the claim
	RoleVerifier    Role = "verifier"    // Neutral fact-checker
	RoleMediator    Role = "mediator"    // Finds common ground
	RoleAdjudicator Role = "adjudicator" // Delivers the final verdict
)

// AllRoles lists every role in speaking order of first appearance.
func AllRoles() []Role {
	return []Role{RoleCritic, RoleDefender, RoleVerifier, RoleMediator, RoleAdjudicator}
}

// Valid reports whether r is one of the declared roles.
func (r Role) Valid() bool {
	switch r {
	case RoleCritic, RoleDefender, RoleVerifier, RoleMediator, RoleAdjudicator:
		return true
	}
	return false
}

// DisplayName returns the capitalized persona name used in prompts and transcripts.
func (r Role) DisplayName() string {
	switch r {
	case RoleCritic:
		return "Critic"
	case RoleDefender:
		return "Defender"
	case RoleVerifier:
		return "Verifier"
	case RoleMediator:
		return "Mediator"
	case RoleAdjudicator:
		return "Adjudicator"
	}
	return string(r)
}

// Speaker is the author of one conversation turn sent to the generation service.
type Speaker string

const (
	SpeakerUser      Speaker = "user"
	SpeakerAssistant Speaker = "assistant"
)

// Turn is one entry of the conversation passed alongside a system instruction.
type Turn struct {
	Speaker Speaker `json:"speaker"`
	Text    string  `json:"text"`
}

// UserTurn is shorthand for a user-authored turn.
func UserTurn(text string) Turn {
	return Turn{Speaker: SpeakerUser, Text: text}
}

// Statement is the output of exactly one invocation. It is never mutated after creation.
type Statement struct {
	Role         Role          `json:"role"`
	Label        string        `json:"label"` // e.g. "Critic Final"
	Text         string        `json:"text"`
	Latency      time.Duration `json:"latency"`
	InputTokens  int           `json:"input_tokens"`
	OutputTokens int           `json:"output_tokens"`
	TokensUsed   int           `json:"tokens_used"`
	Cost         float64       `json:"cost"`
}

// Tag renders the statement as a transcript line, e.g. "[Critic]: ...".
func (s Statement) Tag() string {
	label := s.Label
	if label == "" {
		label = s.Role.DisplayName()
	}
	return fmt.Sprintf("[%s]: %s", label, s.Text)
}

// Transcript is the chronological record of statements in one debate.
type Transcript []Statement

// Lines returns the role-tagged transcript strings.
func (t Transcript) Lines() []string {
	lines := make([]string, 0, len(t))
	for _, s := range t {
		lines = append(lines, s.Tag())
	}
	return lines
}

// String joins the tagged lines with newlines.
func (t Transcript) String() string {
	return strings.Join(t.Lines(), "\n")
}

// Last returns the most recent statement spoken by role.
func (t Transcript) Last(role Role) (Statement, bool) {
	for i := len(t) - 1; i >= 0; i-- {
		if t[i].Role == role {
			return t[i], true
		}
	}
	return Statement{}, false
}

// TotalCost sums the individually computed costs.
func (t Transcript) TotalCost() float64 {
	var total float64
	for _, s := range t {
		total += s.Cost
	}
	return total
}

// Result is what a completed debate hands back to its caller.
type Result struct {
	SessionID  string     `json:"session_id"`
	Fact       string     `json:"fact"`
	Claim      string     `json:"claim"`
	Transcript Transcript `json:"transcript"`
	Verdict    string     `json:"verdict"` // raw adjudicator text
	TotalCost  float64    `json:"total_cost"`
}

// TranscriptLines returns the role-tagged transcript strings.
func (r *Result) TranscriptLines() []string {
	return r.Transcript.Lines()
}
