package ai

import (
	"context"
	"encoding/json"
	"net/http"
)

const (
	ProviderAnthropic = "anthropic"

	anthropicEnvKey  = "ANTHROPIC_API_KEY"
	anthropicBaseURL = "https://api.anthropic.com/v1"
	anthropicVersion = "2023-06-01"

	// anthropicDefaultMaxTokens is applied when the request leaves
	// MaxTokens unset; the Messages API requires the field.
	anthropicDefaultMaxTokens = 256
)

// AnthropicClient streams messages from Anthropic's /v1/messages endpoint,
// authenticating with the x-api-key header plus the anthropic-version
// header.
type AnthropicClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewAnthropicClient resolves the ANTHROPIC_API_KEY credential and returns
// a client, or a ConfigError when the variable is unset.
func NewAnthropicClient() (*AnthropicClient, error) {
	apiKey, err := requireEnv(anthropicEnvKey)
	if err != nil {
		return nil, err
	}
	return &AnthropicClient{
		apiKey:  apiKey,
		baseURL: anthropicBaseURL,
		client:  newHTTPClient(),
	}, nil
}

func (c *AnthropicClient) Name() string { return ProviderAnthropic }

// Stream starts a streaming message exchange (stream=true always).
func (c *AnthropicClient) Stream(ctx context.Context, req ProviderRequest) (EventStream, error) {
	headers := map[string]string{
		"x-api-key":         c.apiKey,
		"anthropic-version": anthropicVersion,
	}
	resp, err := postStream(ctx, c.client, ProviderAnthropic, c.baseURL+"/messages", anthropicRequestFrom(req), headers)
	if err != nil {
		return nil, err
	}
	return newStream(resp.Body, anthropicFrame), nil
}

// anthropicMessageRequest is the wire shape of a Messages API request. The
// system prompt lives in its own top-level field and is never merged into
// the messages array.
type anthropicMessageRequest struct {
	Model       string    `json:"model"`
	MaxTokens   int       `json:"max_tokens"`
	Messages    []Message `json:"messages"`
	System      string    `json:"system,omitempty"`
	Temperature float64   `json:"temperature,omitempty"`
	Stream      bool      `json:"stream"`
}

func anthropicRequestFrom(req ProviderRequest) anthropicMessageRequest {
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = anthropicDefaultMaxTokens
	}
	return anthropicMessageRequest{
		Model:       req.Model,
		MaxTokens:   maxTokens,
		Messages:    req.Messages,
		System:      req.System,
		Temperature: max(req.Temperature, 0),
		Stream:      true,
	}
}

type anthropicStreamEvent struct {
	Type  string          `json:"type"`
	Delta *anthropicDelta `json:"delta"`
}

type anthropicDelta struct {
	Text string `json:"text"`
}

// anthropicFrame interprets one data payload from an Anthropic stream,
// keyed on the "type" discriminant. Lifecycle events other than
// content_block_delta and message_stop carry nothing we render and are
// ignored, as are unparseable payloads.
func anthropicFrame(payload string) (StreamEvent, bool, bool) {
	var event anthropicStreamEvent
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		return StreamEvent{}, false, false
	}

	switch event.Type {
	case "content_block_delta":
		if event.Delta != nil && event.Delta.Text != "" {
			return StreamEvent{Type: EventDelta, Text: event.Delta.Text}, true, false
		}
	case "message_stop":
		return StreamEvent{}, false, true
	}
	return StreamEvent{}, false, false
}
