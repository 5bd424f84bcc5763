package chat

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biblec/biblec/internal/ai"
)

// fakeStream replays a scripted event sequence, optionally failing with err
// after the scripted events are drained.
type fakeStream struct {
	events []ai.StreamEvent
	err    error
	closed bool
}

func (f *fakeStream) Recv() (ai.StreamEvent, error) {
	if len(f.events) == 0 {
		if f.err != nil {
			return ai.StreamEvent{}, f.err
		}
		return ai.StreamEvent{}, io.EOF
	}
	event := f.events[0]
	f.events = f.events[1:]
	return event, nil
}

func (f *fakeStream) Close() error {
	f.closed = true
	return nil
}

// fakeProvider returns one scripted stream per Stream call and records the
// requests it saw.
type fakeProvider struct {
	name     string
	streams  []*fakeStream
	requests []ai.ProviderRequest
	err      error
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Stream(_ context.Context, req ai.ProviderRequest) (ai.EventStream, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	if len(f.streams) == 0 {
		panic("fakeProvider ran out of scripted streams")
	}
	s := f.streams[0]
	f.streams = f.streams[1:]
	return s, nil
}

// recordSink records everything the session shows.
type recordSink struct {
	deltas  []string
	turns   []string
	notices []string
}

func (r *recordSink) Prompt()            {}
func (r *recordSink) Thinking()          {}
func (r *recordSink) Delta(text string)  { r.deltas = append(r.deltas, text) }
func (r *recordSink) Turn(full string)   { r.turns = append(r.turns, full) }
func (r *recordSink) Notice(text string) { r.notices = append(r.notices, text) }
func (r *recordSink) lastNotice() string { return r.notices[len(r.notices)-1] }

func textStream(parts ...string) *fakeStream {
	events := []ai.StreamEvent{{Type: ai.EventStart}}
	for _, part := range parts {
		events = append(events, ai.StreamEvent{Type: ai.EventDelta, Text: part})
	}
	return &fakeStream{events: append(events, ai.StreamEvent{Type: ai.EventDone})}
}

func newTestSession(sink Sink, provider *fakeProvider) *Session {
	return NewSession("In the beginning", sink, Options{
		Provider: provider.name,
		Model:    "test-model",
		Resolve: func(name string) (ai.Provider, error) {
			if name != provider.name {
				return nil, fmt.Errorf("unknown provider: %s", name)
			}
			return provider, nil
		},
	})
}

func TestSessionSeedsPinnedPassage(t *testing.T) {
	sink := &recordSink{}
	s := newTestSession(sink, &fakeProvider{name: "openai"})

	history := s.History()
	require.Len(t, history, 1)
	assert.Equal(t, ai.RoleUser, history[0].Role)
	assert.Equal(t, "Passage:\nIn the beginning", history[0].Content)
	assert.Equal(t, Idle, s.State())
	assert.Len(t, s.ID(), 8)
}

func TestSessionSeedOverride(t *testing.T) {
	sink := &recordSink{}
	provider := &fakeProvider{name: "openai"}
	s := NewSession("In the beginning", sink, Options{
		Provider: provider.name,
		Seed:     "Study this passage closely:\nIn the beginning",
		Resolve:  func(string) (ai.Provider, error) { return provider, nil },
	})

	history := s.History()
	require.Len(t, history, 1)
	assert.Equal(t, "Study this passage closely:\nIn the beginning", history[0].Content)

	// The override is the pinned prefix; /reset keeps it.
	s.HandleLine(context.Background(), "/reset")
	history = s.History()
	require.Len(t, history, 1)
	assert.Equal(t, "Study this passage closely:\nIn the beginning", history[0].Content)
}

func TestSessionTurnAppendsHistory(t *testing.T) {
	sink := &recordSink{}
	provider := &fakeProvider{name: "openai", streams: []*fakeStream{textStream("Hello", ", world")}}
	s := newTestSession(sink, provider)

	s.HandleLine(context.Background(), "what does this mean?")

	history := s.History()
	require.Len(t, history, 3)
	assert.Equal(t, "what does this mean?", history[1].Content)
	assert.Equal(t, ai.RoleAssistant, history[2].Role)
	assert.Equal(t, "Hello, world", history[2].Content)
	assert.Equal(t, []string{"Hello", ", world"}, sink.deltas)
	assert.Equal(t, []string{"Hello, world"}, sink.turns)
	assert.Equal(t, Idle, s.State())

	// The request carried the pinned passage plus the new message.
	require.Len(t, provider.requests, 1)
	req := provider.requests[0]
	assert.Equal(t, "test-model", req.Model)
	assert.Equal(t, DefaultSystemPrompt, req.System)
	require.Len(t, req.Messages, 2)
	assert.Equal(t, "Passage:\nIn the beginning", req.Messages[0].Content)
}

func TestSessionRetentionKeepsPinnedPrefix(t *testing.T) {
	sink := &recordSink{}
	provider := &fakeProvider{name: "openai"}
	for i := 0; i < 20; i++ {
		provider.streams = append(provider.streams, textStream(fmt.Sprintf("reply %d", i)))
	}
	s := newTestSession(sink, provider)

	for i := 0; i < 20; i++ {
		s.HandleLine(context.Background(), fmt.Sprintf("question %d", i))
	}

	// 1 pinned message plus the 16 most recent, oldest evicted first.
	history := s.History()
	require.Len(t, history, 1+DefaultMaxRecent)
	assert.Equal(t, "Passage:\nIn the beginning", history[0].Content)
	assert.Equal(t, "question 12", history[1].Content)
	assert.Equal(t, "reply 19", history[len(history)-1].Content)

	for i := 1; i < len(history); i += 2 {
		assert.Equal(t, ai.RoleUser, history[i].Role)
		assert.Equal(t, ai.RoleAssistant, history[i+1].Role)
	}
}

func TestSessionBlankLineIsNoOp(t *testing.T) {
	sink := &recordSink{}
	s := newTestSession(sink, &fakeProvider{name: "openai"})

	s.HandleLine(context.Background(), "")
	s.HandleLine(context.Background(), "   ")

	assert.Len(t, s.History(), 1)
	assert.Empty(t, sink.notices)
}

func TestSessionExitCommands(t *testing.T) {
	for _, command := range []string{"/exit", "/quit"} {
		sink := &recordSink{}
		s := newTestSession(sink, &fakeProvider{name: "openai"})

		s.HandleLine(context.Background(), command)
		assert.Equal(t, Terminated, s.State(), command)

		// Input after termination is ignored.
		s.HandleLine(context.Background(), "hello?")
		assert.Len(t, s.History(), 1, command)
	}
}

func TestSessionResetIdempotent(t *testing.T) {
	sink := &recordSink{}
	provider := &fakeProvider{name: "openai", streams: []*fakeStream{textStream("answer")}}
	s := newTestSession(sink, provider)

	s.HandleLine(context.Background(), "a question")
	require.Len(t, s.History(), 3)

	s.HandleLine(context.Background(), "/reset")
	history := s.History()
	require.Len(t, history, 1)
	assert.Equal(t, "Passage:\nIn the beginning", history[0].Content)
	assert.Equal(t, "(chat reset)", sink.lastNotice())

	s.HandleLine(context.Background(), "/reset")
	assert.Len(t, s.History(), 1)
	assert.Equal(t, Idle, s.State())
}

func TestSessionModelCommand(t *testing.T) {
	sink := &recordSink{}
	s := newTestSession(sink, &fakeProvider{name: "openai"})

	s.HandleLine(context.Background(), "/model")
	assert.Contains(t, sink.notices[0], "test-model")

	s.HandleLine(context.Background(), "/model gpt-4o")
	assert.Equal(t, "gpt-4o", s.Model())
}

func TestSessionProviderSwitch(t *testing.T) {
	sink := &recordSink{}
	openai := &fakeProvider{name: "openai"}
	anthropic := &fakeProvider{name: "anthropic", streams: []*fakeStream{textStream("switched")}}
	s := NewSession("passage", sink, Options{
		Provider: "openai",
		Model:    "m",
		Resolve: func(name string) (ai.Provider, error) {
			switch name {
			case "openai":
				return openai, nil
			case "anthropic":
				return anthropic, nil
			}
			return nil, fmt.Errorf("unknown provider: %s", name)
		},
	})

	s.HandleLine(context.Background(), "/provider anthropic")
	assert.Equal(t, "anthropic", s.Provider())

	// Subsequent turns go to the new provider.
	s.HandleLine(context.Background(), "hello")
	assert.Empty(t, openai.requests)
	require.Len(t, anthropic.requests, 1)
}

func TestSessionProviderSwitchFailureKeepsCurrent(t *testing.T) {
	sink := &recordSink{}
	s := newTestSession(sink, &fakeProvider{name: "openai"})

	s.HandleLine(context.Background(), "/provider gemini")
	assert.Equal(t, "openai", s.Provider())
	assert.Contains(t, sink.lastNotice(), "unknown provider")
}

func TestSessionUnknownCommand(t *testing.T) {
	sink := &recordSink{}
	s := newTestSession(sink, &fakeProvider{name: "openai"})

	s.HandleLine(context.Background(), "/bogus now")
	assert.Contains(t, sink.lastNotice(), "/bogus")
	assert.Len(t, s.History(), 1)
}

func TestSessionMidStreamErrorDiscardsPartial(t *testing.T) {
	sink := &recordSink{}
	failing := &fakeStream{
		events: []ai.StreamEvent{
			{Type: ai.EventStart},
			{Type: ai.EventDelta, Text: "Once upon a"},
		},
		err: errors.New("connection reset"),
	}
	provider := &fakeProvider{name: "openai", streams: []*fakeStream{failing}}
	s := newTestSession(sink, provider)
	before := s.History()

	s.HandleLine(context.Background(), "tell me a story")

	// The partial "Once upon a" was shown but never stored, and the
	// history is exactly what it was before the failed turn.
	assert.Equal(t, before, s.History())
	assert.Equal(t, []string{"Once upon a"}, sink.deltas)
	assert.Empty(t, sink.turns)
	assert.Contains(t, sink.lastNotice(), "connection reset")
	assert.Equal(t, Idle, s.State())
	assert.True(t, failing.closed)
}

func TestSessionResolveFailureDropsUserMessage(t *testing.T) {
	sink := &recordSink{}
	s := NewSession("passage", sink, Options{
		Provider: "openai",
		Resolve: func(string) (ai.Provider, error) {
			return nil, &ai.ConfigError{Var: "OPENAI_API_KEY"}
		},
	})

	s.HandleLine(context.Background(), "hello")

	assert.Len(t, s.History(), 1)
	assert.Contains(t, sink.lastNotice(), "OPENAI_API_KEY")
	assert.Equal(t, Idle, s.State())
}

func TestSessionEmptyResponseNotStored(t *testing.T) {
	sink := &recordSink{}
	provider := &fakeProvider{name: "openai", streams: []*fakeStream{textStream()}}
	s := newTestSession(sink, provider)

	s.HandleLine(context.Background(), "hello")

	history := s.History()
	require.Len(t, history, 2)
	assert.Equal(t, ai.RoleUser, history[1].Role)
	assert.Equal(t, []string{""}, sink.turns)
}

func TestRunDrivesSessionToTermination(t *testing.T) {
	sink := &recordSink{}
	provider := &fakeProvider{name: "openai", streams: []*fakeStream{textStream("hi there")}}
	s := newTestSession(sink, provider)

	input := strings.NewReader("hello\n/exit\n")
	require.NoError(t, Run(context.Background(), s, input))

	assert.Equal(t, Terminated, s.State())
	assert.Equal(t, []string{"hi there"}, sink.turns)
}

func TestRunStopsOnEOF(t *testing.T) {
	sink := &recordSink{}
	s := newTestSession(sink, &fakeProvider{name: "openai"})

	require.NoError(t, Run(context.Background(), s, strings.NewReader("")))
	assert.Equal(t, Idle, s.State())
}

func TestAskReturnsAccumulatedText(t *testing.T) {
	sink := &recordSink{}
	provider := &fakeProvider{name: "openai", streams: []*fakeStream{textStream("a ", "reflection")}}

	full, err := Ask(context.Background(), sink, Options{
		Provider: "openai",
		Model:    "m",
		Resolve:  func(string) (ai.Provider, error) { return provider, nil },
	}, "reflect on this")

	require.NoError(t, err)
	assert.Equal(t, "a reflection", full)
	require.Len(t, provider.requests, 1)
	require.Len(t, provider.requests[0].Messages, 1)
	assert.Equal(t, "reflect on this", provider.requests[0].Messages[0].Content)
}

func TestAskPropagatesStreamError(t *testing.T) {
	sink := &recordSink{}
	provider := &fakeProvider{name: "openai", err: &ai.TransportError{Provider: "openai", Status: 500}}

	_, err := Ask(context.Background(), sink, Options{
		Provider: "openai",
		Resolve:  func(string) (ai.Provider, error) { return provider, nil },
	}, "hello")

	var transportErr *ai.TransportError
	require.ErrorAs(t, err, &transportErr)
}
