// Package progress provides thread-safe progress fan-out for pipeline
// stages. Stages publish events; the TUI and verbose CLI subscribe.
package progress

import (
	"sync"
	"time"
)

// Phase represents the current phase of a run
type Phase string

const (
	PhaseCleaning   Phase = "cleaning"
	PhaseScanning   Phase = "scanning"
	PhaseOrganizing Phase = "organizing"
	PhaseComplete   Phase = "complete"
	PhaseError      Phase = "error"
)

// Event is a single progress update from a pipeline stage
type Event struct {
	Phase     Phase
	Message   string
	Path      string // file the stage is working on, if any
	Processed int    // files handled so far in this phase
	Bytes     int64  // bytes handled so far in this phase
	Err       error
	Time      time.Time
}

// Reporter provides thread-safe progress reporting to multiple listeners
type Reporter struct {
	mu        sync.RWMutex
	last      *Event
	listeners []chan Event
}

// NewReporter creates a new progress reporter
func NewReporter() *Reporter {
	return &Reporter{
		listeners: make([]chan Event, 0),
	}
}

// Subscribe returns a channel that receives progress events
func (r *Reporter) Subscribe() <-chan Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	ch := make(chan Event, 64)
	r.listeners = append(r.listeners, ch)
	return ch
}

// Unsubscribe closes and removes a listener channel
func (r *Reporter) Unsubscribe(ch <-chan Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, listener := range r.listeners {
		if listener == ch {
			close(listener)
			r.listeners = append(r.listeners[:i], r.listeners[i+1:]...)
			return
		}
	}
}

// Publish records an event and notifies all listeners without blocking
func (r *Reporter) Publish(ev Event) {
	if ev.Time.IsZero() {
		ev.Time = time.Now()
	}

	r.mu.Lock()
	r.last = &ev
	listeners := make([]chan Event, len(r.listeners))
	copy(listeners, r.listeners)
	r.mu.Unlock()

	for _, listener := range listeners {
		select {
		case listener <- ev:
		default:
			// Skip if channel is full
		}
	}
}

// Last returns the most recent event, or nil if none has been published
func (r *Reporter) Last() *Event {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.last
}

// Close closes all listener channels
func (r *Reporter) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, listener := range r.listeners {
		close(listener)
	}
	r.listeners = nil
}
