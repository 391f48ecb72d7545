package debate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cpunion/claim-debate/pkg/types"
)

// ErrMissingContext indicates a builder needed a prior statement that the
// transcript does not contain.
var ErrMissingContext = errors.New("debate: transcript lacks required statement")

// ContextBuilder turns the debate so far into the conversation for one round.
// Builders are pure: they embed fact, claim and prior statement text verbatim
// and never shorten or rewrite it.
type ContextBuilder func(fact, claim string, prior types.Transcript) ([]types.Turn, error)

// framing renders the fact/claim header shared by every round.
func framing(fact, claim string) string {
	return fmt.Sprintf("FACT (Source of Truth): \n\"%s\"\n\nCLAIM (To Be Verified): \n\"%s\"", fact, claim)
}

func openingContext(fact, claim string) string {
	return framing(fact, claim) + "\n\nEvaluate whether the CLAIM faithfully represents the FACT."
}

func speakerName(s types.Statement) string {
	if s.Role == types.RoleVerifier {
		return "Fact-Checker"
	}
	return s.Role.DisplayName()
}

// Opening builds a round that sees only the fact and claim.
func Opening(cue string) ContextBuilder {
	return func(fact, claim string, _ types.Transcript) ([]types.Turn, error) {
		return []types.Turn{types.UserTurn(openingContext(fact, claim) + "\n\n" + cue)}, nil
	}
}

// DebateSoFar builds a round that sees the first n statements of the
// transcript. A single prior statement is quoted as an argument to answer.
func DebateSoFar(n int, cue string) ContextBuilder {
	return func(fact, claim string, prior types.Transcript) ([]types.Turn, error) {
		if len(prior) < n {
			return nil, fmt.Errorf("%w: need %d prior statements, have %d", ErrMissingContext, n, len(prior))
		}

		var sb strings.Builder
		sb.WriteString(openingContext(fact, claim))
		sb.WriteString("\n\n")
		if n == 1 {
			fmt.Fprintf(&sb, "The %s argues:\n%s\n\n", speakerName(prior[0]), prior[0].Text)
		} else {
			sb.WriteString("DEBATE SO FAR:\n")
			for _, s := range prior[:n] {
				fmt.Fprintf(&sb, "%s: %s\n", speakerName(s), s.Text)
			}
			sb.WriteString("\n")
		}
		sb.WriteString(cue)
		return []types.Turn{types.UserTurn(sb.String())}, nil
	}
}

// MediatorResponse builds a final-statement round scoped to the mediator's
// latest proposal. Earlier statements are deliberately left out.
func MediatorResponse(cue string) ContextBuilder {
	return func(fact, claim string, prior types.Transcript) ([]types.Turn, error) {
		med, ok := prior.Last(types.RoleMediator)
		if !ok {
			return nil, fmt.Errorf("%w: no mediator statement", ErrMissingContext)
		}
		text := fmt.Sprintf("%s\n\nThe Mediator proposes: %s\n\n%s", openingContext(fact, claim), med.Text, cue)
		return []types.Turn{types.UserTurn(text)}, nil
	}
}

// Adjudication builds the verdict round: the full transcript plus the
// mediator's proposal repeated as an anchor.
func Adjudication() ContextBuilder {
	return func(fact, claim string, prior types.Transcript) ([]types.Turn, error) {
		med, ok := prior.Last(types.RoleMediator)
		if !ok {
			return nil, fmt.Errorf("%w: no mediator statement", ErrMissingContext)
		}

		var sb strings.Builder
		sb.WriteString(framing(fact, claim))
		sb.WriteString("\n\nCOMPLETE DEBATE TRANSCRIPT:\n")
		sb.WriteString(prior.String())
		sb.WriteString("\n\nThe Mediator's proposed resolution was:\n")
		sb.WriteString(med.Text)
		sb.WriteString("\n\nBased on the full debate, especially the Mediator's synthesis and whether the parties accepted it, deliver your verdict on:\n")
		sb.WriteString("FACTUAL CORRECTNESS, TEMPORAL ACCURACY, and COMPLETENESS.")
		return []types.Turn{types.UserTurn(sb.String())}, nil
	}
}
