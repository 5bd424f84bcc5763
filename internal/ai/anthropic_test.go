package ai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnthropicRequestShape(t *testing.T) {
	req := anthropicRequestFrom(ProviderRequest{
		Model:       "claude-3-5-haiku-latest",
		System:      "Be brief.",
		Messages:    []Message{{Role: RoleUser, Content: "hi"}},
		MaxTokens:   512,
		Temperature: 0.2,
	})

	// The system prompt stays out of the messages array.
	assert.Equal(t, "Be brief.", req.System)
	require.Len(t, req.Messages, 1)
	assert.Equal(t, RoleUser, req.Messages[0].Role)
	assert.Equal(t, 512, req.MaxTokens)
	assert.True(t, req.Stream)
}

func TestAnthropicRequestDefaultMaxTokens(t *testing.T) {
	for _, maxTokens := range []int{0, -1} {
		req := anthropicRequestFrom(ProviderRequest{Model: "m", MaxTokens: maxTokens})
		assert.Equal(t, anthropicDefaultMaxTokens, req.MaxTokens)
	}
}

func TestAnthropicStream(t *testing.T) {
	transcript := "data: {\"type\":\"message_start\"}\n\n" +
		"data: {\"type\":\"content_block_delta\",\"delta\":{\"type\":\"text_delta\",\"text\":\"Hello\"}}\n\n" +
		"data: {\"type\":\"message_stop\"}\n\n"

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/messages", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("x-api-key"))
		assert.Equal(t, anthropicVersion, r.Header.Get("anthropic-version"))
		assert.Empty(t, r.Header.Get("Authorization"))

		var body anthropicMessageRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.True(t, body.Stream)
		assert.NotZero(t, body.MaxTokens)

		w.Header().Set("Content-Type", "text/event-stream")
		io.WriteString(w, transcript)
	}))
	defer server.Close()

	client := &AnthropicClient{apiKey: "secret", baseURL: server.URL, client: newHTTPClient()}
	stream, err := client.Stream(context.Background(), ProviderRequest{
		Model:    "claude-3-5-haiku-latest",
		Messages: []Message{{Role: RoleUser, Content: "hi"}},
	})
	require.NoError(t, err)

	events := collect(t, stream)
	require.NotEmpty(t, events)
	assert.Equal(t, EventStart, events[0].Type)
	assert.Equal(t, "Hello", deltaText(events))
	assert.Equal(t, EventDone, events[len(events)-1].Type)
}

func TestAnthropicStreamTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"type":"error","error":{"type":"authentication_error"}}`)
	}))
	defer server.Close()

	client := &AnthropicClient{apiKey: "bad", baseURL: server.URL, client: newHTTPClient()}
	_, err := client.Stream(context.Background(), ProviderRequest{Model: "m"})

	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, ProviderAnthropic, transportErr.Provider)
	assert.Equal(t, http.StatusUnauthorized, transportErr.Status)
	assert.Contains(t, transportErr.Body, "authentication_error")
}

func TestTransportErrorEmptyBody(t *testing.T) {
	err := &TransportError{Provider: ProviderAnthropic, Status: http.StatusBadGateway}
	assert.Contains(t, err.Error(), http.StatusText(http.StatusBadGateway))
}
