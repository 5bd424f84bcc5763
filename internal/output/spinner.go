package output

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 80 * time.Millisecond

// Spinner is the "Thinking..." indicator shown on stderr while a request is
// in flight. Start and Stop are idempotent; Stop clears the line.
type Spinner struct {
	style   lipgloss.Style
	enabled bool

	mu      sync.Mutex
	running bool
	stop    chan struct{}
	done    chan struct{}
}

func newSpinner(style lipgloss.Style, enabled bool) *Spinner {
	return &Spinner{style: style, enabled: enabled}
}

// Start begins animating. Disabled spinners (plain mode) do nothing.
func (s *Spinner) Start() {
	if !s.enabled {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.running = true
	s.stop = make(chan struct{})
	s.done = make(chan struct{})

	go func(stop, done chan struct{}) {
		defer close(done)
		ticker := time.NewTicker(spinnerInterval)
		defer ticker.Stop()

		frame := 0
		for {
			select {
			case <-stop:
				fmt.Fprint(os.Stderr, "\r\033[K")
				return
			case <-ticker.C:
				text := spinnerFrames[frame%len(spinnerFrames)] + " Thinking..."
				fmt.Fprint(os.Stderr, "\r"+s.style.Render(text))
				frame++
			}
		}
	}(s.stop, s.done)
}

// Stop halts the animation and clears the indicator line.
func (s *Spinner) Stop() {
	if !s.enabled {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	close(s.stop)
	<-s.done
	s.running = false
}
