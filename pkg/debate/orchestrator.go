// Package debate drives the claim-faithfulness debate.
//
// An Orchestrator walks a fixed plan of rounds. For each round it builds the
// speaker's conversation from the fact, the claim and the transcript so far,
// invokes the generation service once, and appends the resulting Statement.
// Rounds run strictly in order because each one reads the text of the
// previous ones. The first failed invocation aborts the whole debate; there
// is no retry and no partial result.
package debate

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/cpunion/claim-debate/pkg/roles"
	"github.com/cpunion/claim-debate/pkg/types"
)

// Invoker performs one generation call on behalf of a role.
type Invoker interface {
	Invoke(ctx context.Context, role types.Role, label, instruction string, turns []types.Turn) (*types.Statement, error)
}

// AbortError reports the step at which a debate stopped.
type AbortError struct {
	Step      int // 1-based plan index
	StepName  string
	Role      types.Role
	Completed int // statements appended before the failure
	Err       error
}

func (e *AbortError) Error() string {
	return fmt.Sprintf("debate: aborted at step %d (%s, %s) after %d statements: %v", e.Step, e.StepName, e.Role, e.Completed, e.Err)
}

func (e *AbortError) Unwrap() error {
	return e.Err
}

// Options configures an Orchestrator.
type Options struct {
	Plan   []Round     // defaults to DefaultPlan()
	Logger EventLogger // optional
	Model  string      // recorded in events

	// OnRound is called before each invocation; OnStatement after each append.
	OnRound     func(step int, r Round)
	OnStatement func(step int, r Round, st types.Statement)
}

// Orchestrator runs debates. It holds no per-debate state and may be reused
// for several sessions one after another.
type Orchestrator struct {
	invoker     Invoker
	roles       *roles.Registry
	plan        []Round
	logger      EventLogger
	model       string
	onRound     func(int, Round)
	onStatement func(int, Round, types.Statement)
}

// NewOrchestrator validates the plan and returns a ready orchestrator.
func NewOrchestrator(invoker Invoker, registry *roles.Registry, opts Options) (*Orchestrator, error) {
	if invoker == nil {
		return nil, fmt.Errorf("debate: nil invoker")
	}
	if registry == nil {
		registry = roles.Default()
	}
	plan := opts.Plan
	if plan == nil {
		plan = DefaultPlan()
	}
	if err := ValidatePlan(plan); err != nil {
		return nil, err
	}
	for _, r := range plan {
		if _, err := registry.InstructionFor(r.Role); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPlan, err)
		}
	}

	return &Orchestrator{
		invoker:     invoker,
		roles:       registry,
		plan:        plan,
		logger:      opts.Logger,
		model:       opts.Model,
		onRound:     opts.OnRound,
		onStatement: opts.OnStatement,
	}, nil
}

// Plan returns the rounds this orchestrator runs.
func (o *Orchestrator) Plan() []Round {
	out := make([]Round, len(o.plan))
	copy(out, o.plan)
	return out
}

// Debate runs a new session over fact and claim.
func (o *Orchestrator) Debate(ctx context.Context, fact, claim string) (*types.Result, error) {
	return o.Run(ctx, NewSession(fact, claim))
}

// Run drives sess through every round of the plan. On failure the session
// keeps the statements completed so far, but no Result is returned.
func (o *Orchestrator) Run(ctx context.Context, sess *Session) (*types.Result, error) {
	if sess.Len() > 0 || sess.Final() {
		return nil, ErrSessionStarted
	}

	log.Printf("[debate %s] starting %d rounds", sess.ID, len(o.plan))
	for i, r := range o.plan {
		step := i + 1
		if o.onRound != nil {
			o.onRound(step, r)
		}

		st, prompt, err := o.runRound(ctx, sess, r)
		if err != nil {
			abort := &AbortError{Step: step, StepName: r.Step, Role: r.Role, Completed: sess.Len(), Err: err}
			o.logEvent(sess, step, r, prompt, nil, abort)
			log.Printf("[debate %s] %v", sess.ID, abort)
			return nil, abort
		}

		if err := sess.append(*st); err != nil {
			return nil, &AbortError{Step: step, StepName: r.Step, Role: r.Role, Completed: sess.Len(), Err: err}
		}
		o.logEvent(sess, step, r, prompt, st, nil)
		if o.onStatement != nil {
			o.onStatement(step, r, *st)
		}
	}

	res, err := sess.Result()
	if err != nil {
		return nil, err
	}
	log.Printf("[debate %s] complete: %d statements, total cost $%.6f", sess.ID, len(res.Transcript), res.TotalCost)
	return res, nil
}

func (o *Orchestrator) runRound(ctx context.Context, sess *Session, r Round) (*types.Statement, string, error) {
	turns, err := r.Build(sess.Fact, sess.Claim, sess.Transcript())
	if err != nil {
		return nil, "", err
	}
	prompt := ""
	if len(turns) > 0 {
		prompt = turns[len(turns)-1].Text
	}

	instruction, err := o.roles.InstructionFor(r.Role)
	if err != nil {
		return nil, prompt, err
	}

	st, err := o.invoker.Invoke(ctx, r.Role, r.Label, instruction, turns)
	if err != nil {
		return nil, prompt, err
	}
	if st.Role != r.Role {
		return nil, prompt, fmt.Errorf("debate: invoker attributed statement to %s, expected %s", st.Role, r.Role)
	}
	if st.Label == "" {
		st.Label = r.Label
	}
	return st, prompt, nil
}

func (o *Orchestrator) logEvent(sess *Session, step int, r Round, prompt string, st *types.Statement, runErr error) {
	if o.logger == nil {
		return
	}
	ev := StatementEvent{
		Timestamp: time.Now(),
		SessionID: sess.ID,
		Step:      step,
		StepName:  r.Step,
		Role:      string(r.Role),
		Label:     r.Label,
		Model:     o.model,
		Prompt:    prompt,
		TotalCost: sess.TotalCost(),
	}
	if st != nil {
		ev.Response = st.Text
		ev.LatencyMs = st.Latency.Milliseconds()
		ev.InputTokens = st.InputTokens
		ev.OutputTokens = st.OutputTokens
		ev.TotalTokens = st.TokensUsed
		ev.Cost = st.Cost
	}
	if runErr != nil {
		ev.Error = runErr.Error()
	}
	if err := o.logger.LogEvent(ev); err != nil {
		log.Printf("[debate %s] event log write failed: %v", sess.ID, err)
	}
}
