package chat

import (
	"bufio"
	"context"
	"io"
	"strings"

	"github.com/biblec/biblec/internal/ai"
)

// maxInputLine bounds one line of interactive input.
const maxInputLine = 1024 * 1024

// Run drives the session from a line-oriented input source until the
// session terminates or the input ends. Input comes from an io.Reader so
// entire sessions can run in-process under test.
func Run(ctx context.Context, session *Session, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxInputLine)

	for session.State() != Terminated {
		session.sink.Prompt()
		if !scanner.Scan() {
			break
		}
		session.HandleLine(ctx, scanner.Text())
	}
	return scanner.Err()
}

// Ask streams a single response to one prompt over the same pipeline the
// interactive session uses, and returns the accumulated text. Used by the
// non-chat ai command.
func Ask(ctx context.Context, sink Sink, opts Options, prompt string) (string, error) {
	resolve := opts.Resolve
	if resolve == nil {
		resolve = ai.NewProvider
	}
	provider, err := resolve(strings.ToLower(opts.Provider))
	if err != nil {
		return "", err
	}

	system := opts.System
	if system == "" {
		system = DefaultSystemPrompt
	}
	req := ai.ProviderRequest{
		Model:       opts.Model,
		System:      system,
		Messages:    []ai.Message{{Role: ai.RoleUser, Content: prompt}},
		MaxTokens:   opts.MaxTokens,
		Temperature: opts.Temperature,
	}

	sink.Thinking()
	stream, err := provider.Stream(ctx, req)
	if err != nil {
		return "", err
	}
	defer stream.Close()

	var response strings.Builder
	for {
		event, err := stream.Recv()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		if event.Type == ai.EventDelta {
			sink.Delta(event.Text)
			response.WriteString(event.Text)
		}
	}

	full := response.String()
	sink.Turn(full)
	return full, nil
}
