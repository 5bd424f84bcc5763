package ai

import (
	"context"
	"encoding/json"
	"net/http"
)

const (
	ProviderOpenAI = "openai"

	openAIEnvKey  = "OPENAI_API_KEY"
	openAIBaseURL = "https://api.openai.com/v1"
)

// OpenAIClient streams chat completions from OpenAI's
// /v1/chat/completions endpoint using bearer authentication.
type OpenAIClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewOpenAIClient resolves the OPENAI_API_KEY credential and returns a
// client, or a ConfigError when the variable is unset.
func NewOpenAIClient() (*OpenAIClient, error) {
	apiKey, err := requireEnv(openAIEnvKey)
	if err != nil {
		return nil, err
	}
	return &OpenAIClient{
		apiKey:  apiKey,
		baseURL: openAIBaseURL,
		client:  newHTTPClient(),
	}, nil
}

func (c *OpenAIClient) Name() string { return ProviderOpenAI }

// Stream starts a streaming chat completion. The request body always sets
// stream=true; the caller consumes deltas from the returned EventStream.
func (c *OpenAIClient) Stream(ctx context.Context, req ProviderRequest) (EventStream, error) {
	headers := map[string]string{
		"Authorization": "Bearer " + c.apiKey,
	}
	resp, err := postStream(ctx, c.client, ProviderOpenAI, c.baseURL+"/chat/completions", openAIRequestFrom(req), headers)
	if err != nil {
		return nil, err
	}
	return newStream(resp.Body, openAIFrame), nil
}

// openAIChatRequest is the wire shape of a chat completions request.
type openAIChatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature float64   `json:"temperature,omitempty"`
	Stream      bool      `json:"stream"`
}

// openAIRequestFrom translates a generic request into OpenAI's shape: the
// system prompt, when present, becomes the first messages entry with role
// "system"; remaining messages pass through unchanged.
func openAIRequestFrom(req ProviderRequest) openAIChatRequest {
	messages := make([]Message, 0, len(req.Messages)+1)
	if req.System != "" {
		messages = append(messages, Message{Role: RoleSystem, Content: req.System})
	}
	messages = append(messages, req.Messages...)

	return openAIChatRequest{
		Model:       req.Model,
		Messages:    messages,
		MaxTokens:   max(req.MaxTokens, 0),
		Temperature: max(req.Temperature, 0),
		Stream:      true,
	}
}

type openAIStreamChunk struct {
	Choices []openAIStreamChoice `json:"choices"`
}

type openAIStreamChoice struct {
	Delta openAIDelta `json:"delta"`
}

type openAIDelta struct {
	Content string `json:"content"`
}

// openAIFrame interprets one data payload from an OpenAI stream. The literal
// [DONE] sentinel terminates the stream; unparseable payloads (heartbeats,
// unknown shapes) are skipped.
func openAIFrame(payload string) (StreamEvent, bool, bool) {
	if payload == "[DONE]" {
		return StreamEvent{}, false, true
	}

	var chunk openAIStreamChunk
	if err := json.Unmarshal([]byte(payload), &chunk); err != nil {
		return StreamEvent{}, false, false
	}
	if len(chunk.Choices) == 0 || chunk.Choices[0].Delta.Content == "" {
		return StreamEvent{}, false, false
	}
	return StreamEvent{Type: EventDelta, Text: chunk.Choices[0].Delta.Content}, true, false
}
