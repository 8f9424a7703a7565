package sessionkit

import (
	"context"
	"encoding/json"
	"io"
	"sync"
	"time"
)

// Session lifecycle event types.
const (
	EventLoginSuccess    = "login_success"
	EventLoginFailure    = "login_failure"
	EventRegisterSuccess = "register_success"
	EventRegisterFailure = "register_failure"
	EventRefreshSuccess  = "refresh_success"
	EventRefreshFailure  = "refresh_failure"
	EventLogout          = "logout"
	EventTokensCleared   = "tokens_cleared"
)

// SessionEvent is emitted on every flow outcome when events are enabled.
type SessionEvent struct {
	Timestamp time.Time         `json:"timestamp"`
	EventType string            `json:"event_type"`
	UserID    string            `json:"user_id,omitempty"`
	Email     string            `json:"email,omitempty"`
	Success   bool              `json:"success"`
	Error     string            `json:"error,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// EventSink receives session events from the async dispatcher. Emit must
// be safe for concurrent use.
type EventSink interface {
	Emit(ctx context.Context, event SessionEvent)
}

// NoOpSink discards every event.
type NoOpSink struct{}

// Emit implements [EventSink].
func (NoOpSink) Emit(context.Context, SessionEvent) {}

// ChannelSink forwards events to a buffered channel for consumption by the
// caller's own goroutine.
type ChannelSink struct {
	events chan SessionEvent
}

// NewChannelSink returns a sink with the given buffer.
func NewChannelSink(buffer int) *ChannelSink {
	if buffer <= 0 {
		buffer = 1
	}
	return &ChannelSink{
		events: make(chan SessionEvent, buffer),
	}
}

// Emit implements [EventSink].
func (s *ChannelSink) Emit(ctx context.Context, event SessionEvent) {
	select {
	case s.events <- event:
	case <-ctx.Done():
	}
}

// Events exposes the receive side of the sink.
func (s *ChannelSink) Events() <-chan SessionEvent {
	return s.events
}

// JSONWriterSink writes one JSON document per event, newline-delimited.
type JSONWriterSink struct {
	writer io.Writer
	mu     sync.Mutex
}

// NewJSONWriterSink returns a sink writing to w.
func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return &JSONWriterSink{
		writer: w,
	}
}

// Emit implements [EventSink]. Encoding failures are dropped silently; an
// event sink must never disturb the flow that emitted it.
func (s *JSONWriterSink) Emit(ctx context.Context, event SessionEvent) {
	if s == nil || s.writer == nil {
		return
	}
	data, err := json.Marshal(event)
	if err != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, _ = s.writer.Write(data)
	_, _ = s.writer.Write([]byte("\n"))
}
