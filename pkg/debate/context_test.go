package debate

import (
	"errors"
	"strings"
	"testing"

	"github.com/cpunion/claim-debate/pkg/types"
)

const (
	testFact  = "X occurred in March 2020."
	testClaim = "X occurred in April 2020."
)

func sampleTranscript() types.Transcript {
	return types.Transcript{
		{Role: types.RoleCritic, Label: "Critic", Text: "CRITIC-OPENING: the month is wrong."},
		{Role: types.RoleDefender, Label: "Defender", Text: "DEFENDER-REBUTTAL: one month is a simplification."},
		{Role: types.RoleVerifier, Label: "Verifier", Text: "VERIFIER-CHECK: March is not April."},
		{Role: types.RoleMediator, Label: "Mediator", Text: "MEDIATOR-PROPOSAL: partially faithful, date wrong."},
	}
}

func promptOf(t *testing.T, turns []types.Turn, err error) string {
	t.Helper()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(turns) != 1 || turns[0].Speaker != types.SpeakerUser {
		t.Fatalf("expected one user turn, got %+v", turns)
	}
	return turns[0].Text
}

func TestOpening_OnlyFactAndClaim(t *testing.T) {
	prompt := promptOf(t, Opening("Critic, go.")(testFact, testClaim, sampleTranscript()))

	for _, want := range []string{testFact, testClaim, "Critic, go."} {
		if !strings.Contains(prompt, want) {
			t.Errorf("expected prompt to contain %q", want)
		}
	}
	for _, s := range sampleTranscript() {
		if strings.Contains(prompt, s.Text) {
			t.Errorf("opening must not contain %q", s.Text)
		}
	}
}

func TestDebateSoFar_EmbedsPrefix(t *testing.T) {
	tr := sampleTranscript()

	rebuttal := promptOf(t, DebateSoFar(1, "respond")(testFact, testClaim, tr[:1]))
	if !strings.Contains(rebuttal, "The Critic argues:\n"+tr[0].Text) {
		t.Errorf("expected quoted critic argument, got %q", rebuttal)
	}

	synthesis := promptOf(t, DebateSoFar(3, "synthesize")(testFact, testClaim, tr[:3]))
	for _, s := range tr[:3] {
		if !strings.Contains(synthesis, s.Text) {
			t.Errorf("expected synthesis prompt to contain %q verbatim", s.Text)
		}
	}
	if !strings.Contains(synthesis, "Fact-Checker: "+tr[2].Text) {
		t.Error("expected verifier to be introduced as Fact-Checker")
	}
}

func TestDebateSoFar_MissingContext(t *testing.T) {
	_, err := DebateSoFar(3, "x")(testFact, testClaim, sampleTranscript()[:2])
	if !errors.Is(err, ErrMissingContext) {
		t.Fatalf("expected ErrMissingContext, got %v", err)
	}
}

func TestMediatorResponse_ScopedToMediator(t *testing.T) {
	tr := sampleTranscript()
	prompt := promptOf(t, MediatorResponse("accept?")(testFact, testClaim, tr))

	if !strings.Contains(prompt, "The Mediator proposes: "+tr[3].Text) {
		t.Errorf("expected mediator proposal, got %q", prompt)
	}
	for _, s := range tr[:3] {
		if strings.Contains(prompt, s.Text) {
			t.Errorf("final statement context must not contain %q", s.Text)
		}
	}
	if !strings.Contains(prompt, testFact) || !strings.Contains(prompt, testClaim) {
		t.Error("expected fact and claim verbatim")
	}

	if _, err := MediatorResponse("x")(testFact, testClaim, tr[:3]); !errors.Is(err, ErrMissingContext) {
		t.Errorf("expected ErrMissingContext without mediator, got %v", err)
	}
}

func TestAdjudication_FullTranscriptAndAnchor(t *testing.T) {
	tr := append(sampleTranscript(),
		types.Statement{Role: types.RoleCritic, Label: "Critic Final", Text: "CRITIC-FINAL: reject."},
		types.Statement{Role: types.RoleDefender, Label: "Defender Final", Text: "DEFENDER-FINAL: accept."},
	)
	prompt := promptOf(t, Adjudication()(testFact, testClaim, tr))

	for _, line := range tr.Lines() {
		if !strings.Contains(prompt, line) {
			t.Errorf("expected transcript line %q", line)
		}
	}
	if strings.Count(prompt, tr[3].Text) != 2 {
		t.Errorf("expected mediator text twice (transcript + anchor), got %d", strings.Count(prompt, tr[3].Text))
	}
}
