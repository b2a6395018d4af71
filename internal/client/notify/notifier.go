// Package notify delivers transient, non-blocking user notifications — the
// terminal analogue of a toast. Messages inform and never interrupt a flow.
package notify

import (
	"fmt"
	"io"
	"sync"
)

// Notifier receives transient user-facing messages.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// Writer prints notifications to an io.Writer, one line each.
// Safe for use from concurrent goroutines.
type Writer struct {
	mu sync.Mutex
	w  io.Writer
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (n *Writer) Success(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintf(n.w, "✔ %s\n", msg)
}

func (n *Writer) Error(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintf(n.w, "✘ %s\n", msg)
}

// Discard swallows all notifications. Useful in tests and for callers that
// surface outcomes themselves.
type Discard struct{}

func (Discard) Success(string) {}
func (Discard) Error(string)   {}
