package sessionkit

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestChannelSinkReceivesFlowEvents(t *testing.T) {
	sink := NewChannelSink(16)
	s, err := New().
		WithBaseURL("http://127.0.0.1:1"). // nothing listens here
		WithEventSink(sink).
		Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	result := s.Login(context.Background(), "a@b.com", "x")
	if result.Success {
		t.Fatal("login succeeded against an unreachable host")
	}
	s.Close() // drains the dispatcher

	select {
	case event := <-sink.Events():
		if event.EventType != EventLoginFailure {
			t.Fatalf("event type = %q", event.EventType)
		}
		if event.Email != "a@b.com" || event.Error != msgNetworkError {
			t.Fatalf("unexpected event: %+v", event)
		}
		if event.Timestamp.IsZero() {
			t.Fatal("event missing timestamp")
		}
	case <-time.After(time.Second):
		t.Fatal("no event delivered")
	}
}

func TestDispatcherDropsWhenFull(t *testing.T) {
	block := make(chan struct{})
	sink := blockingSink{block: block}
	d := newEventDispatcher(EventConfig{Enabled: true, BufferSize: 1, DropIfFull: true}, sink)
	defer func() {
		close(block)
		d.close()
	}()

	// One event occupies the sink, one fills the buffer, the rest drop.
	for i := 0; i < 10; i++ {
		d.emit(context.Background(), SessionEvent{EventType: EventLogout})
	}

	deadline := time.After(time.Second)
	for d.droppedCount() == 0 {
		select {
		case <-deadline:
			t.Fatal("no events dropped with a full buffer")
		default:
			time.Sleep(time.Millisecond)
		}
	}
}

type blockingSink struct {
	block chan struct{}
}

func (s blockingSink) Emit(ctx context.Context, event SessionEvent) {
	<-s.block
}

func TestJSONWriterSink(t *testing.T) {
	var buf bytes.Buffer
	sink := NewJSONWriterSink(&buf)

	sink.Emit(context.Background(), SessionEvent{
		Timestamp: time.Now(),
		EventType: EventRefreshFailure,
		Error:     "refresh rejected",
	})

	var decoded SessionEvent
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decode emitted line: %v", err)
	}
	if decoded.EventType != EventRefreshFailure || decoded.Error != "refresh rejected" {
		t.Fatalf("decoded = %+v", decoded)
	}
}

func TestRefreshFailureEmitsEvents(t *testing.T) {
	sink := NewChannelSink(16)
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(backend.Close)

	s, err := New().
		WithBaseURL(backend.URL).
		WithEventSink(sink).
		Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	seedPair(t, s, makeToken(t, "7", "a@b.com", "USER", time.Now().Add(-time.Minute), true), "r1")

	if s.Refresh(context.Background()) {
		t.Fatal("refresh succeeded against a rejecting backend")
	}
	s.Close()

	var types []string
	for {
		select {
		case event := <-sink.Events():
			types = append(types, event.EventType)
			continue
		default:
		}
		break
	}

	var sawCleared, sawFailure bool
	for _, typ := range types {
		switch typ {
		case EventTokensCleared:
			sawCleared = true
		case EventRefreshFailure:
			sawFailure = true
		}
	}
	if !sawCleared || !sawFailure {
		t.Fatalf("events = %v, want tokens_cleared and refresh_failure", types)
	}
}
