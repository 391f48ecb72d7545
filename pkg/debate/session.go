package debate

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/cpunion/claim-debate/pkg/cost"
	"github.com/cpunion/claim-debate/pkg/types"
)

var (
	// ErrIncomplete indicates the session has no verdict yet.
	ErrIncomplete = errors.New("debate: session has no verdict")
	// ErrSessionStarted indicates a session was handed to Run a second time.
	ErrSessionStarted = errors.New("debate: session already started")
	// ErrSessionClosed indicates a statement was appended after the verdict.
	ErrSessionClosed = errors.New("debate: session already finalized")
)

// Session is the state of one debate. It has a single writer, the
// orchestrator, and is not safe for concurrent mutation.
type Session struct {
	ID        string
	Fact      string
	Claim     string
	StartedAt time.Time

	transcript types.Transcript
	ledger     cost.Ledger
	final      bool
}

// NewSession starts an empty debate over one fact/claim pair.
func NewSession(fact, claim string) *Session {
	return &Session{
		ID:        uuid.NewString(),
		Fact:      fact,
		Claim:     claim,
		StartedAt: time.Now(),
	}
}

// Transcript returns a copy of the statements appended so far.
func (s *Session) Transcript() types.Transcript {
	out := make(types.Transcript, len(s.transcript))
	copy(out, s.transcript)
	return out
}

// Len returns the number of statements appended so far.
func (s *Session) Len() int {
	return len(s.transcript)
}

// TotalCost returns the accumulated cost of every appended statement.
func (s *Session) TotalCost() float64 {
	return s.ledger.Total()
}

// Final reports whether the adjudicator's statement has been appended.
func (s *Session) Final() bool {
	return s.final
}

// append records a statement. The adjudicator's statement finalizes the session.
func (s *Session) append(st types.Statement) error {
	if s.final {
		return ErrSessionClosed
	}
	s.transcript = append(s.transcript, st)
	s.ledger.Add(st.Cost)
	if st.Role == types.RoleAdjudicator {
		s.final = true
	}
	return nil
}

// Result returns the completed debate. It fails until the verdict exists.
func (s *Session) Result() (*types.Result, error) {
	if !s.final {
		return nil, fmt.Errorf("%w (%d statements)", ErrIncomplete, len(s.transcript))
	}
	verdict, _ := s.transcript.Last(types.RoleAdjudicator)
	return &types.Result{
		SessionID:  s.ID,
		Fact:       s.Fact,
		Claim:      s.Claim,
		Transcript: s.Transcript(),
		Verdict:    verdict.Text,
		TotalCost:  s.ledger.Total(),
	}, nil
}
