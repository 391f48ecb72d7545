package debate

import (
	"errors"
	"fmt"

	"github.com/cpunion/claim-debate/pkg/types"
)

// ErrInvalidPlan indicates a plan the orchestrator refuses to run.
var ErrInvalidPlan = errors.New("debate: invalid plan")

// Round is one step of the debate: who speaks and what they see.
type Round struct {
	Step  string // stable identifier, e.g. "critic-final"
	Title string // console heading
	Role  types.Role
	Label string // transcript tag
	Build ContextBuilder
}

// DefaultPlan returns the fixed seven-statement debate: four argumentative
// rounds, two final statements answering the mediator, then the verdict.
func DefaultPlan() []Round {
	return []Round{
		{
			Step:  "opening",
			Title: "ROUND 1: CRITIC OPENING",
			Role:  types.RoleCritic,
			Label: "Critic",
			Build: Opening("Critic, present your case against this claim."),
		},
		{
			Step:  "rebuttal",
			Title: "ROUND 2: DEFENDER RESPONSE",
			Role:  types.RoleDefender,
			Label: "Defender",
			Build: DebateSoFar(1, "Defender, respond to these attacks."),
		},
		{
			Step:  "verification",
			Title: "ROUND 3: FACT-CHECKER INTERVENTION",
			Role:  types.RoleVerifier,
			Label: "Verifier",
			Build: DebateSoFar(2, "Fact-Checker, clarify what can actually be verified. Who is misrepresenting the evidence?"),
		},
		{
			Step:  "synthesis",
			Title: "ROUND 4: MEDIATOR SYNTHESIS",
			Role:  types.RoleMediator,
			Label: "Mediator",
			Build: DebateSoFar(3, "Mediator, identify the common ground. What do both sides agree on? What is the core remaining dispute?\n"+
				"Propose a resolution that both sides could accept."),
		},
		{
			Step:  "critic-final",
			Title: "ROUND 5: CRITIC FINAL",
			Role:  types.RoleCritic,
			Label: "Critic Final",
			Build: MediatorResponse("Critic, do you accept this resolution? If not, what is the ONE most critical issue that cannot be compromised?\n" +
				"Keep it to 2-3 sentences."),
		},
		{
			Step:  "defender-final",
			Title: "ROUND 5: DEFENDER FINAL",
			Role:  types.RoleDefender,
			Label: "Defender Final",
			Build: MediatorResponse("Defender, do you accept this resolution? Make your final case for why the claim should be considered faithful.\n" +
				"Keep it to 2-3 sentences."),
		},
		{
			Step:  "adjudication",
			Title: "JURY DELIBERATION",
			Role:  types.RoleAdjudicator,
			Label: "Adjudicator",
			Build: Adjudication(),
		},
	}
}

// ValidatePlan checks that a plan is runnable. It must be non-empty, use only
// declared roles, and end with exactly one adjudication step.
func ValidatePlan(plan []Round) error {
	if len(plan) == 0 {
		return fmt.Errorf("%w: empty", ErrInvalidPlan)
	}
	for i, r := range plan {
		if !r.Role.Valid() {
			return fmt.Errorf("%w: step %d has unknown role %q", ErrInvalidPlan, i+1, r.Role)
		}
		if r.Build == nil {
			return fmt.Errorf("%w: step %d (%s) has no context builder", ErrInvalidPlan, i+1, r.Step)
		}
		last := i == len(plan)-1
		if r.Role == types.RoleAdjudicator && !last {
			return fmt.Errorf("%w: adjudication at step %d is not terminal", ErrInvalidPlan, i+1)
		}
		if last && r.Role != types.RoleAdjudicator {
			return fmt.Errorf("%w: last step must be the adjudicator, got %s", ErrInvalidPlan, r.Role)
		}
	}
	return nil
}
