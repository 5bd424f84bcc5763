package ai

import (
	"fmt"
	"net/http"
	"strings"
)

// ConfigError reports a missing credential. It is raised before any network
// call and aborts only the operation that needed the credential.
type ConfigError struct {
	Var string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("missing required environment variable: %s", e.Var)
}

// maxErrorBodySnippet caps how much of an error response body is carried in
// a TransportError.
const maxErrorBodySnippet = 2048

// TransportError reports a non-success HTTP status from a provider. It
// carries the status code and a snippet of the response body; it aborts only
// the current turn.
type TransportError struct {
	Provider string
	Status   int
	Body     string
}

func (e *TransportError) Error() string {
	body := strings.TrimSpace(e.Body)
	if len(body) > maxErrorBodySnippet {
		body = body[:maxErrorBodySnippet]
	}
	if body == "" {
		body = http.StatusText(e.Status)
	}
	return fmt.Sprintf("%s request failed with status %d: %s", e.Provider, e.Status, body)
}
