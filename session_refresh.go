package sessionkit

import (
	"context"

	"github.com/ledgerfront/sessionkit/tokenstore"
)

// EnsureValidToken guarantees a usable access token before a business
// request. It returns true without I/O when the stored token is not
// expiring, false when no refresh token exists, and otherwise delegates
// to [Session.Refresh].
func (s *Session) EnsureValidToken(ctx context.Context) bool {
	if !s.IsExpiringSoon(ctx) {
		return true
	}
	if s.loadPair(ctx).RefreshToken == "" {
		return false
	}
	return s.Refresh(ctx)
}

// Refresh exchanges the refresh token for a new pair. Concurrent callers
// collapse into one network round trip: while a refresh is in flight,
// every additional caller waits for it and adopts its outcome instead of
// issuing a duplicate request.
//
// On any failure (no refresh token, non-2xx, transport error, unusable
// body) both stored tokens are cleared and false is returned. A waiter
// whose ctx is canceled returns false early; the in-flight refresh still
// settles its channel, so nothing leaks and no waiter resolves twice.
func (s *Session) Refresh(ctx context.Context) bool {
	s.mu.Lock()
	if s.refreshing {
		waiter := make(chan bool, 1)
		s.waiters = append(s.waiters, waiter)
		s.mu.Unlock()

		s.metricInc(MetricRefreshCoalesced)
		select {
		case ok := <-waiter:
			return ok
		case <-ctx.Done():
			return false
		}
	}
	s.refreshing = true
	s.mu.Unlock()

	ok := false
	// The settle must run no matter how doRefresh exits, or the state
	// machine would stay in Refreshing forever and every future caller
	// would queue behind a request that no longer exists.
	defer func() {
		s.mu.Lock()
		waiters := s.waiters
		s.waiters = nil
		s.refreshing = false
		s.mu.Unlock()

		for _, w := range waiters {
			w <- ok
		}
	}()

	ok = s.doRefresh(ctx)
	return ok
}

// doRefresh performs the single network round trip. The refresh token
// travels in a dedicated header per the backend contract, never in the
// body.
func (s *Session) doRefresh(ctx context.Context) bool {
	pair := s.loadPair(ctx)
	if pair.RefreshToken == "" {
		return false
	}

	resp, err := s.api.Post(ctx, s.cfg.Endpoints.RefreshPath, nil, map[string]string{
		s.cfg.Refresh.HeaderName: pair.RefreshToken,
	})
	if err != nil {
		s.log.Warn().Err(err).Msg("refresh transport failure")
		return s.refreshFailed(ctx, "transport error")
	}
	if !resp.Success() {
		s.log.Warn().Int("status", resp.StatusCode).Msg("refresh rejected")
		return s.refreshFailed(ctx, "refresh rejected")
	}

	var next tokenstore.Pair
	if err := resp.DecodeJSON(&next); err != nil {
		s.log.Warn().Err(err).Msg("refresh response unusable")
		return s.refreshFailed(ctx, "unusable response")
	}
	if next.AccessToken == "" || next.RefreshToken == "" {
		return s.refreshFailed(ctx, "incomplete token pair")
	}

	if err := s.store.Save(ctx, next); err != nil {
		s.log.Error().Err(err).Msg("refresh pair persist failed")
		return s.refreshFailed(ctx, "store failure")
	}

	s.metricInc(MetricRefreshSuccess)
	s.emitEvent(ctx, SessionEvent{
		EventType: EventRefreshSuccess,
		Success:   true,
	})
	s.log.Debug().Msg("token pair refreshed")
	return true
}

// refreshFailed downgrades the session to logged-out: tokens cleared,
// outcome false. Reacting (redirect to login, etc.) is the caller's job.
func (s *Session) refreshFailed(ctx context.Context, reason string) bool {
	s.metricInc(MetricRefreshFailure)
	s.clearTokens(ctx)
	s.emitEvent(ctx, SessionEvent{
		EventType: EventRefreshFailure,
		Success:   false,
		Error:     reason,
	})
	return false
}
