// Package chat owns interactive conversation state: history with a pinned
// passage prefix, bounded retention, in-band control commands, and turn
// sequencing over a streaming provider.
package chat

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/biblec/biblec/internal/ai"
)

// State is the session lifecycle state.
type State int

const (
	// Idle means the session is waiting for user input.
	Idle State = iota
	// AwaitingResponse means a streaming request is in flight.
	AwaitingResponse
	// Terminated means the session has ended; no further turns run.
	Terminated
)

// Sink receives everything the session wants shown. Delta text is printed
// immediately as it streams; Turn gets the full accumulated response at turn
// end for optional structured re-rendering; Notice prints one diagnostic or
// informational line; Prompt marks that the session is ready for input;
// Thinking signals a request is in flight until output arrives.
type Sink interface {
	Prompt()
	Thinking()
	Delta(text string)
	Turn(full string)
	Notice(text string)
}

// Resolver maps a provider name to a client. It exists so tests can run
// sessions against fake providers; the default is ai.NewProvider.
type Resolver func(name string) (ai.Provider, error)

// DefaultSystemPrompt frames the assistant for passage conversations.
const DefaultSystemPrompt = "You are a thoughtful Bible assistant. Use the passage context in the conversation. Format your responses with markdown when helpful."

// DefaultMaxRecent bounds how many messages are kept after the base prefix.
const DefaultMaxRecent = 16

// Options configures a new session.
type Options struct {
	Provider    string
	Model       string
	MaxTokens   int
	Temperature float64
	System      string // defaults to DefaultSystemPrompt
	Seed        string // overrides the default "Passage:\n"+passage base message
	MaxRecent   int    // defaults to DefaultMaxRecent
	Resolve     Resolver
}

// Session is one interactive conversation. It is not safe for concurrent
// use; the command loop is its sole owner and turns run strictly
// sequentially, so no locking is needed.
type Session struct {
	id    string
	state State

	provider    string
	model       string
	maxTokens   int
	temperature float64
	system      string

	history   []ai.Message
	base      int // history[:base] is the immutable pinned prefix
	maxRecent int

	resolve Resolver
	sink    Sink
}

// NewSession seeds a session with a single base user message carrying the
// passage text, or Options.Seed when a prompt template shapes it. That
// message is pinned: retention and /reset never touch it.
func NewSession(passage string, sink Sink, opts Options) *Session {
	if opts.System == "" {
		opts.System = DefaultSystemPrompt
	}
	if opts.Seed == "" {
		opts.Seed = "Passage:\n" + passage
	}
	if opts.MaxRecent <= 0 {
		opts.MaxRecent = DefaultMaxRecent
	}
	if opts.Resolve == nil {
		opts.Resolve = ai.NewProvider
	}
	return &Session{
		id:          uuid.New().String(),
		state:       Idle,
		provider:    strings.ToLower(opts.Provider),
		model:       opts.Model,
		maxTokens:   opts.MaxTokens,
		temperature: opts.Temperature,
		system:      opts.System,
		history:     []ai.Message{{Role: ai.RoleUser, Content: opts.Seed}},
		base:        1,
		maxRecent:   opts.MaxRecent,
		resolve:     opts.Resolve,
		sink:        sink,
	}
}

// ID returns the session identifier (shortened for display).
func (s *Session) ID() string {
	if len(s.id) >= 8 {
		return s.id[:8]
	}
	return s.id
}

// State returns the current lifecycle state.
func (s *Session) State() State { return s.state }

// Provider returns the currently selected provider name.
func (s *Session) Provider() string { return s.provider }

// Model returns the currently selected model name.
func (s *Session) Model() string { return s.model }

// History returns a copy of the conversation history.
func (s *Session) History() []ai.Message {
	return slices.Clone(s.history)
}

// HandleLine processes one line of interactive input: a control command
// (reserved "/" prefix), a blank no-op, or an ordinary message that starts
// a streamed turn.
func (s *Session) HandleLine(ctx context.Context, line string) {
	if s.state == Terminated {
		return
	}

	line = strings.TrimSpace(line)
	if line == "" {
		return
	}
	if strings.HasPrefix(line, "/") {
		s.handleCommand(line)
		return
	}
	s.runTurn(ctx, line)
}

func (s *Session) handleCommand(line string) {
	fields := strings.Fields(line)
	arg := strings.TrimSpace(strings.TrimPrefix(line, fields[0]))

	switch fields[0] {
	case "/exit", "/quit":
		s.state = Terminated

	case "/reset":
		s.history = s.history[:s.base]
		s.sink.Notice("(chat reset)")

	case "/help":
		s.printHelp()

	case "/model":
		if arg == "" {
			s.sink.Notice("Current model: " + s.model)
			s.sink.Notice("Usage: /model <name>")
			return
		}
		s.model = arg
		s.sink.Notice("Model set to " + s.model)

	case "/provider":
		if arg == "" {
			s.sink.Notice("Current provider: " + s.provider)
			s.sink.Notice("Usage: /provider <openai|anthropic>")
			return
		}
		name := strings.ToLower(arg)
		// Resolving validates both the name and its credential; a failure
		// leaves the previous selection active.
		if _, err := s.resolve(name); err != nil {
			s.sink.Notice("Error: " + err.Error())
			return
		}
		s.provider = name
		s.sink.Notice("Provider set to " + s.provider)

	default:
		s.sink.Notice(fmt.Sprintf("Unknown command: %s (/help for commands)", fields[0]))
	}
}

func (s *Session) printHelp() {
	s.sink.Notice("Commands:")
	s.sink.Notice("  /help     Show this help")
	s.sink.Notice("  /model    Show or change the model")
	s.sink.Notice("  /provider Show or change the provider")
	s.sink.Notice("  /reset    Clear conversation history")
	s.sink.Notice("  /exit     Quit chat")
}

// runTurn appends the user message, streams the assistant response, and
// appends the accumulated text on success. A failed turn restores the
// history it started with: no partial response, no dangling user message.
func (s *Session) runTurn(ctx context.Context, line string) {
	restore := slices.Clone(s.history)
	s.history = append(s.history, ai.Message{Role: ai.RoleUser, Content: line})
	s.trimHistory()

	s.state = AwaitingResponse
	defer func() { s.state = Idle }()

	provider, err := s.resolve(s.provider)
	if err != nil {
		s.history = restore
		s.sink.Notice("Error: " + err.Error())
		return
	}

	req := ai.ProviderRequest{
		Model:       s.model,
		System:      s.system,
		Messages:    slices.Clone(s.history),
		MaxTokens:   s.maxTokens,
		Temperature: s.temperature,
	}

	s.sink.Thinking()
	stream, err := provider.Stream(ctx, req)
	if err != nil {
		s.history = restore
		s.sink.Notice("Error: " + err.Error())
		return
	}
	defer stream.Close()

	var response strings.Builder
	for {
		event, err := stream.Recv()
		if err == io.EOF {
			break
		}
		if err != nil {
			s.history = restore
			s.sink.Notice("Error: " + err.Error())
			return
		}
		switch event.Type {
		case ai.EventDelta:
			s.sink.Delta(event.Text)
			response.WriteString(event.Text)
		case ai.EventStart, ai.EventDone:
		}
	}

	full := response.String()
	if full != "" {
		s.history = append(s.history, ai.Message{Role: ai.RoleAssistant, Content: full})
		s.trimHistory()
	}
	s.sink.Turn(full)
}

// trimHistory evicts the oldest messages after the base prefix until at
// most maxRecent remain. The prefix itself is never evicted.
func (s *Session) trimHistory() {
	if len(s.history) <= s.base+s.maxRecent {
		return
	}
	keepFrom := len(s.history) - s.maxRecent
	s.history = append(s.history[:s.base], s.history[keepFrom:]...)
}
