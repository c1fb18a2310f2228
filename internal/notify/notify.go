// Package notify surfaces transient, non-fatal events to the user. Failures
// reported here never interrupt the session; prior view state stays intact.
package notify

import (
	"fmt"
	"io"
	"sync"
)

// Notifier receives one-line success and failure notices.
type Notifier interface {
	Success(format string, args ...any)
	Failure(format string, args ...any)
}

// Terminal writes notices to a terminal stream.
type Terminal struct {
	Out io.Writer
}

func NewTerminal(out io.Writer) *Terminal { return &Terminal{Out: out} }

func (t *Terminal) Success(format string, args ...any) {
	fmt.Fprintf(t.Out, "✔ %s\n", fmt.Sprintf(format, args...))
}

func (t *Terminal) Failure(format string, args ...any) {
	fmt.Fprintf(t.Out, "✖ %s\n", fmt.Sprintf(format, args...))
}

// Memory collects notices for inspection in tests.
type Memory struct {
	mu        sync.Mutex
	Successes []string
	Failures  []string
}

func (m *Memory) Success(format string, args ...any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Successes = append(m.Successes, fmt.Sprintf(format, args...))
}

func (m *Memory) Failure(format string, args ...any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Failures = append(m.Failures, fmt.Sprintf(format, args...))
}
