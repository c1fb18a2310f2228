// Package chart owns the visualization handles. A handle holds at most one
// live rendered instance; Replace builds the new one and releases the prior
// instance internally, so create and destroy are never exposed separately.
package chart

import (
	"io"
	"sync"
	"time"
)

// instance is one rendered chart frame.
type instance struct {
	frame   string
	drawnAt time.Time
}

// Handle is the owned resource behind one chart slot.
type Handle struct {
	mu      sync.Mutex
	name    string
	out     io.Writer
	current *instance
}

// NewHandle creates an empty handle writing frames to out.
func NewHandle(name string, out io.Writer) *Handle {
	return &Handle{name: name, out: out}
}

// Replace swaps in a freshly rendered frame, discarding the prior instance.
func (h *Handle) Replace(frame string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.current = nil
	h.current = &instance{frame: frame, drawnAt: time.Now()}
	if h.out != nil {
		io.WriteString(h.out, frame)
	}
}

// Clear releases the current instance without drawing a replacement.
func (h *Handle) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.current = nil
}

// Live reports whether the handle currently owns a rendered instance.
func (h *Handle) Live() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current != nil
}

// Frame returns the currently owned frame, if any.
func (h *Handle) Frame() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.current == nil {
		return "", false
	}
	return h.current.frame, true
}
