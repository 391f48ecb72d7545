package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"net/http"
	"strings"
	"time"

	"google.golang.org/adk/model"
	"google.golang.org/genai"
)

const defaultOpenAIBaseURL = "https://api.openai.com/v1"

// OpenAIConfig configures an OpenAI-compatible Chat Completions backend.
type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// OpenAIModel implements model.LLM on top of the Chat Completions API.
type OpenAIModel struct {
	apiKey  string
	baseURL string
	model   string
	http    *http.Client
}

var _ model.LLM = (*OpenAIModel)(nil)

// NewOpenAIModel creates an OpenAI-compatible model.
func NewOpenAIModel(cfg OpenAIConfig) (*OpenAIModel, error) {
	if cfg.APIKey == "" {
		return nil, &InvocationError{Op: "configure", Model: cfg.Model, Err: ErrMissingCredential}
	}
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaultOpenAIBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	return &OpenAIModel{
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   cfg.Model,
		http:    &http.Client{Timeout: timeout},
	}, nil
}

// Name returns the model name.
func (m *OpenAIModel) Name() string {
	return m.model
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Usage *chatUsage `json:"usage"`
}

// GenerateContent issues one non-streaming chat completion. Streaming is not
// supported; the stream flag is ignored.
func (m *OpenAIModel) GenerateContent(ctx context.Context, req *model.LLMRequest, stream bool) iter.Seq2[*model.LLMResponse, error] {
	return func(yield func(*model.LLMResponse, error) bool) {
		resp, err := m.complete(ctx, req)
		yield(resp, err)
	}
}

func (m *OpenAIModel) complete(ctx context.Context, req *model.LLMRequest) (*model.LLMResponse, error) {
	name := m.model
	if req.Model != "" {
		name = req.Model
	}
	body := chatRequest{Model: name, Messages: toChatMessages(req)}

	raw, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+"/chat/completions", bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+m.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := m.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("openai request failed: %w", err)
	}
	defer resp.Body.Close()

	respRaw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("openai http %d: %s", resp.StatusCode, string(respRaw))
	}

	var decoded chatResponse
	if err := json.Unmarshal(respRaw, &decoded); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	if len(decoded.Choices) == 0 {
		return nil, fmt.Errorf("openai response missing choices: %w", ErrEmptyResponse)
	}

	out := &model.LLMResponse{
		Content: &genai.Content{
			Role:  "model",
			Parts: []*genai.Part{{Text: decoded.Choices[0].Message.Content}},
		},
	}
	if u := decoded.Usage; u != nil {
		out.UsageMetadata = &genai.GenerateContentResponseUsageMetadata{
			PromptTokenCount:     int32(u.PromptTokens),
			CandidatesTokenCount: int32(u.CompletionTokens),
			TotalTokenCount:      int32(u.TotalTokens),
		}
	}
	return out, nil
}

// toChatMessages flattens the system instruction and contents into chat messages.
func toChatMessages(req *model.LLMRequest) []chatMessage {
	msgs := make([]chatMessage, 0, len(req.Contents)+1)
	if req.Config != nil && req.Config.SystemInstruction != nil {
		if text := joinParts(req.Config.SystemInstruction); text != "" {
			msgs = append(msgs, chatMessage{Role: "system", Content: text})
		}
	}
	for _, c := range req.Contents {
		if c == nil {
			continue
		}
		role := "user"
		if c.Role == "model" {
			role = "assistant"
		}
		msgs = append(msgs, chatMessage{Role: role, Content: joinParts(c)})
	}
	return msgs
}

func joinParts(c *genai.Content) string {
	var sb strings.Builder
	for _, part := range c.Parts {
		if part != nil && part.Text != "" {
			sb.WriteString(part.Text)
		}
	}
	return sb.String()
}
