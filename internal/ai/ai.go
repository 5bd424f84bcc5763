// Package ai provides the streaming client abstraction for AI providers.
// It translates a generic conversation into each provider's wire format,
// decodes the SSE response body into typed events, and exposes everything
// behind the Provider interface so callers never see provider JSON.
package ai

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// Roles used in conversation messages.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single entry in a conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ProviderRequest is the provider-neutral description of one streaming
// exchange. It is built per turn and discarded after the call returns.
//
// MaxTokens and Temperature are optional; zero means unset and lets each
// translator apply its own default. Negative values are clamped to unset.
type ProviderRequest struct {
	Model       string
	System      string
	Messages    []Message
	MaxTokens   int
	Temperature float64
}

// EventType discriminates StreamEvent variants.
type EventType int

const (
	// EventStart is emitted once, before any deltas, as soon as the
	// provider responds with a success status.
	EventStart EventType = iota
	// EventDelta carries one incremental text fragment.
	EventDelta
	// EventDone terminates the stream. Exactly one is emitted; nothing
	// follows it.
	EventDone
)

func (t EventType) String() string {
	switch t {
	case EventStart:
		return "start"
	case EventDelta:
		return "delta"
	case EventDone:
		return "done"
	}
	return fmt.Sprintf("event(%d)", int(t))
}

// StreamEvent is one typed event decoded from a provider byte stream.
type StreamEvent struct {
	Type EventType
	Text string // set for EventDelta only
}

// EventStream is a lazy sequence of StreamEvents backed by one in-flight
// HTTP response. Recv returns events in arrival order and io.EOF after the
// terminal Done event. Close releases the underlying response body; it is
// safe to call more than once.
type EventStream interface {
	Recv() (StreamEvent, error)
	Close() error
}

// Provider is the uniform entry point for one AI provider variant.
type Provider interface {
	// Name returns the canonical provider name ("openai", "anthropic").
	Name() string

	// Stream starts a streaming exchange for the request. A non-nil error
	// means no events were produced; otherwise the returned stream yields
	// Start, zero or more Deltas, and exactly one Done.
	Stream(ctx context.Context, req ProviderRequest) (EventStream, error)
}

// NewProvider resolves a provider name to a concrete client. The client
// holds its credential, resolved from the provider's environment variable;
// a missing credential fails here, before any network call.
func NewProvider(name string) (Provider, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case ProviderOpenAI:
		return NewOpenAIClient()
	case ProviderAnthropic:
		return NewAnthropicClient()
	default:
		return nil, fmt.Errorf("unknown provider: %s (supported: %s, %s)", name, ProviderOpenAI, ProviderAnthropic)
	}
}

// requireEnv reads a required environment variable, failing with a
// ConfigError when it is unset or blank.
func requireEnv(key string) (string, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return "", &ConfigError{Var: key}
	}
	return value, nil
}
