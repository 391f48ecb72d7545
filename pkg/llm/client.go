package llm

import (
	"context"
	"log"
	"strings"
	"time"

	"google.golang.org/adk/model"
	"google.golang.org/genai"

	"github.com/cpunion/claim-debate/pkg/cost"
	"github.com/cpunion/claim-debate/pkg/types"
)

// Client performs one metered generation call per Invoke.
type Client struct {
	llm     model.LLM
	pricing cost.Pricing
	now     func() time.Time
}

// NewClient wraps a backend with the pricing used to cost each call.
func NewClient(llm model.LLM, pricing cost.Pricing) *Client {
	return &Client{
		llm:     llm,
		pricing: pricing,
		now:     time.Now,
	}
}

// Model returns the backend model name.
func (c *Client) Model() string {
	return c.llm.Name()
}

// Pricing returns the rate pair applied to every call.
func (c *Client) Pricing() cost.Pricing {
	return c.pricing
}

// Invoke sends the instruction and turns to the backend and returns the
// resulting Statement. The cost is computed from this call's usage only.
func (c *Client) Invoke(ctx context.Context, role types.Role, label, instruction string, turns []types.Turn) (*types.Statement, error) {
	if len(turns) == 0 || turns[len(turns)-1].Speaker != types.SpeakerUser {
		return nil, c.fail(role, ErrBadConversation)
	}

	req := &model.LLMRequest{
		Model:    c.llm.Name(),
		Contents: toContents(turns),
		Config: &genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{
				Parts: []*genai.Part{{Text: instruction}},
			},
		},
	}

	log.Printf("[%s] Generating response...", role.DisplayName())
	start := c.now()

	var sb strings.Builder
	var usage *genai.GenerateContentResponseUsageMetadata
	for resp, err := range c.llm.GenerateContent(ctx, req, false) {
		if err != nil {
			return nil, c.fail(role, err)
		}
		if resp == nil {
			continue
		}
		if resp.Content != nil {
			for _, part := range resp.Content.Parts {
				if part != nil && part.Text != "" {
					sb.WriteString(part.Text)
				}
			}
		}
		if resp.UsageMetadata != nil {
			usage = resp.UsageMetadata
		}
	}
	latency := c.now().Sub(start)

	text := sb.String()
	if strings.TrimSpace(text) == "" {
		return nil, c.fail(role, ErrEmptyResponse)
	}
	if usage == nil {
		return nil, c.fail(role, ErrMissingUsage)
	}

	in := int(usage.PromptTokenCount)
	out := int(usage.CandidatesTokenCount)
	total := int(usage.TotalTokenCount)
	if total == 0 {
		total = in + out
	}

	st := &types.Statement{
		Role:         role,
		Label:        label,
		Text:         text,
		Latency:      latency,
		InputTokens:  in,
		OutputTokens: out,
		TokensUsed:   total,
		Cost:         cost.Cost(in, out, c.pricing),
	}
	log.Printf("[%s] Response generated (%d chars, %d tokens)", role.DisplayName(), len(text), total)
	return st, nil
}

func (c *Client) fail(role types.Role, err error) error {
	return &InvocationError{Op: "invoke", Role: role, Model: c.llm.Name(), Err: err}
}

func toContents(turns []types.Turn) []*genai.Content {
	contents := make([]*genai.Content, 0, len(turns))
	for _, t := range turns {
		role := "user"
		if t.Speaker == types.SpeakerAssistant {
			role = "model"
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: t.Text}},
		})
	}
	return contents
}
