package llm

import (
	"context"
	"errors"
	"iter"
	"sync"
	"testing"
	"time"

	ailibmodel "github.com/cpunion/ailib/adk/model"
	adkmodel "google.golang.org/adk/model"
	"google.golang.org/genai"

	"github.com/cpunion/claim-debate/pkg/cost"
	"github.com/cpunion/claim-debate/pkg/types"
)

type recordingModel struct {
	mu       sync.Mutex
	resp     *adkmodel.LLMResponse
	err      error
	requests []*adkmodel.LLMRequest
}

func (m *recordingModel) Name() string {
	return "recording"
}

func (m *recordingModel) GenerateContent(ctx context.Context, req *adkmodel.LLMRequest, stream bool) iter.Seq2[*adkmodel.LLMResponse, error] {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()

	return func(yield func(*adkmodel.LLMResponse, error) bool) {
		yield(m.resp, m.err)
	}
}

func textResponse(text string, in, out int32) *adkmodel.LLMResponse {
	return &adkmodel.LLMResponse{
		Content: &genai.Content{
			Role:  "model",
			Parts: []*genai.Part{{Text: text}},
		},
		UsageMetadata: &genai.GenerateContentResponseUsageMetadata{
			PromptTokenCount:     in,
			CandidatesTokenCount: out,
			TotalTokenCount:      in + out,
		},
	}
}

func TestClient_InvokeWithMockLLM(t *testing.T) {
	mock := ailibmodel.NewMockLLM(&adkmodel.LLMResponse{
		Content: &genai.Content{
			Role:  "model",
			Parts: []*genai.Part{{Text: "The dates do not match."}},
		},
		UsageMetadata: &genai.GenerateContentResponseUsageMetadata{
			PromptTokenCount:     1000,
			CandidatesTokenCount: 250,
			TotalTokenCount:      1250,
		},
	})
	pricing := cost.Pricing{InputPerMillion: 0.40, OutputPerMillion: 1.60}
	client := NewClient(mock, pricing)

	st, err := client.Invoke(context.Background(), types.RoleCritic, "Critic", "be harsh", []types.Turn{types.UserTurn("FACT ... CLAIM ...")})
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if st.Role != types.RoleCritic {
		t.Fatalf("expected role critic, got %s", st.Role)
	}
	if st.Text != "The dates do not match." {
		t.Fatalf("unexpected text %q", st.Text)
	}
	if st.InputTokens != 1000 || st.OutputTokens != 250 || st.TokensUsed != 1250 {
		t.Fatalf("expected tokens 1000/250/1250, got %d/%d/%d", st.InputTokens, st.OutputTokens, st.TokensUsed)
	}
	if want := cost.Cost(1000, 250, pricing); st.Cost != want {
		t.Fatalf("expected cost %f, got %f", want, st.Cost)
	}
}

func TestClient_BuildsRequest(t *testing.T) {
	m := &recordingModel{resp: textResponse("ok", 10, 5)}
	client := NewClient(m, cost.Pricing{})

	turns := []types.Turn{
		types.UserTurn("first"),
		{Speaker: types.SpeakerAssistant, Text: "reply"},
		types.UserTurn("second"),
	}
	if _, err := client.Invoke(context.Background(), types.RoleMediator, "Mediator", "find common ground", turns); err != nil {
		t.Fatalf("Invoke: %v", err)
	}

	if len(m.requests) != 1 {
		t.Fatalf("expected 1 request, got %d", len(m.requests))
	}
	req := m.requests[0]
	if req.Model != "recording" {
		t.Errorf("expected model name recording, got %q", req.Model)
	}
	if got := joinParts(req.Config.SystemInstruction); got != "find common ground" {
		t.Errorf("expected system instruction, got %q", got)
	}
	if len(req.Contents) != 3 {
		t.Fatalf("expected 3 contents, got %d", len(req.Contents))
	}
	wantRoles := []string{"user", "model", "user"}
	for i, c := range req.Contents {
		if c.Role != wantRoles[i] {
			t.Errorf("content %d: expected role %s, got %s", i, wantRoles[i], c.Role)
		}
	}
}

func TestClient_MeasuresLatency(t *testing.T) {
	m := &recordingModel{resp: textResponse("ok", 1, 1)}
	client := NewClient(m, cost.Pricing{})

	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	calls := 0
	client.now = func() time.Time {
		calls++
		return base.Add(time.Duration(calls-1) * 1500 * time.Millisecond)
	}

	st, err := client.Invoke(context.Background(), types.RoleVerifier, "", "x", []types.Turn{types.UserTurn("y")})
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if st.Latency != 1500*time.Millisecond {
		t.Fatalf("expected latency 1.5s, got %s", st.Latency)
	}
}

func TestClient_Failures(t *testing.T) {
	serviceDown := errors.New("503 service unavailable")

	tests := []struct {
		name  string
		model *recordingModel
		turns []types.Turn
		want  error
	}{
		{
			name:  "service error",
			model: &recordingModel{err: serviceDown},
			turns: []types.Turn{types.UserTurn("q")},
			want:  serviceDown,
		},
		{
			name: "missing usage",
			model: &recordingModel{resp: &adkmodel.LLMResponse{
				Content: &genai.Content{Role: "model", Parts: []*genai.Part{{Text: "hi"}}},
			}},
			turns: []types.Turn{types.UserTurn("q")},
			want:  ErrMissingUsage,
		},
		{
			name:  "empty text",
			model: &recordingModel{resp: textResponse("  ", 3, 0)},
			turns: []types.Turn{types.UserTurn("q")},
			want:  ErrEmptyResponse,
		},
		{
			name:  "conversation ends with assistant",
			model: &recordingModel{resp: textResponse("ok", 1, 1)},
			turns: []types.Turn{{Speaker: types.SpeakerAssistant, Text: "a"}},
			want:  ErrBadConversation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := NewClient(tt.model, cost.Pricing{})
			st, err := client.Invoke(context.Background(), types.RoleDefender, "", "x", tt.turns)
			if st != nil {
				t.Fatalf("expected nil statement, got %+v", st)
			}
			var invErr *InvocationError
			if !errors.As(err, &invErr) {
				t.Fatalf("expected *InvocationError, got %T (%v)", err, err)
			}
			if invErr.Role != types.RoleDefender {
				t.Errorf("expected role defender, got %s", invErr.Role)
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v in chain, got %v", tt.want, err)
			}
		})
	}
}
