package sessionkit

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/ledgerfront/sessionkit/internal/wire"
	"github.com/ledgerfront/sessionkit/jwt"
	"github.com/ledgerfront/sessionkit/tokenstore"
)

// Session owns the access/refresh token pair and every operation on it.
// Construct through [Builder.Build]; the zero value is not usable.
//
// All token state lives behind the configured [tokenstore.Store]; the
// refresh flag and waiter queue are process-local and guarded by mu. No
// caller may touch the storage keys directly, or the pairing and
// serialization invariants no longer hold.
type Session struct {
	cfg     Config
	store   tokenstore.Store
	api     *wire.Client
	log     zerolog.Logger
	metrics *Metrics
	events  *eventDispatcher

	mu         sync.Mutex
	refreshing bool
	waiters    []chan bool
}

// Close shuts down the event dispatcher, draining queued events. The
// Session itself stays usable; only event delivery stops.
func (s *Session) Close() {
	s.events.close()
}

// EventsDropped reports how many session events were discarded because the
// dispatch buffer was full.
func (s *Session) EventsDropped() uint64 {
	return s.events.droppedCount()
}

// MetricsSnapshot copies the session's counters.
func (s *Session) MetricsSnapshot() MetricsSnapshot {
	return s.metrics.Snapshot()
}

func (s *Session) metricInc(id MetricID) {
	s.metrics.Inc(id)
}

// loadPair reads the stored pair, failing closed to an empty pair on store
// errors so inspection callers never see an error where a boolean is due.
func (s *Session) loadPair(ctx context.Context) tokenstore.Pair {
	pair, err := s.store.Load(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("token store load failed")
		return tokenstore.Pair{}
	}
	return pair
}

// clearTokens removes both tokens and emits the cleared event. Store
// failures are logged, not propagated: a clear that cannot reach its
// backend still leaves the in-flight flow reporting "no session".
func (s *Session) clearTokens(ctx context.Context) {
	if err := s.store.Clear(ctx); err != nil {
		s.log.Warn().Err(err).Msg("token store clear failed")
	}
	s.emitEvent(ctx, SessionEvent{
		EventType: EventTokensCleared,
		Success:   true,
	})
}

func (s *Session) emitEvent(ctx context.Context, event SessionEvent) {
	if s.events == nil {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	s.events.emit(ctx, event)
}

// identityFromToken decodes the access token into an Identity, counting
// decode failures. Returns nil on any malformed token.
func (s *Session) identityFromToken(token string) *Identity {
	if token == "" {
		return nil
	}
	claims := jwt.Decode(token)
	if claims == nil {
		s.metricInc(MetricDecodeFailure)
		return nil
	}
	return &Identity{
		ID:    claims.Subject,
		Email: claims.Email,
		Role:  ParseRole(claims.Role),
	}
}
