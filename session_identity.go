package sessionkit

import (
	"context"
	"time"

	"github.com/ledgerfront/sessionkit/jwt"
)

// Identity derives the current identity from the stored access token's
// claims. Returns nil when no token is stored or its claims cannot be
// decoded; it never returns an error or panics.
func (s *Session) Identity(ctx context.Context) *Identity {
	pair := s.loadPair(ctx)
	return s.identityFromToken(pair.AccessToken)
}

// Role returns the current identity's role, or RoleGuest without one.
func (s *Session) Role(ctx context.Context) Role {
	id := s.Identity(ctx)
	if id == nil {
		return RoleGuest
	}
	return id.Role
}

// CanWrite reports whether the current role may perform mutating
// operations (USER or ADMIN).
func (s *Session) CanWrite(ctx context.Context) bool {
	return s.Role(ctx).CanWrite()
}

// IsAdmin reports whether the current role is ADMIN.
func (s *Session) IsAdmin(ctx context.Context) bool {
	return s.Role(ctx) == RoleAdmin
}

// IsAuthenticated reports whether an access token is stored. It does not
// check expiry; use [Session.EnsureValidToken] before issuing requests.
func (s *Session) IsAuthenticated(ctx context.Context) bool {
	return s.loadPair(ctx).AccessToken != ""
}

// IsExpiringSoon reports whether the access token is within the
// configured threshold of its expiry. Any uncertainty resolves to true:
// a missing token, undecodable claims, or an absent exp claim all count
// as expiring.
func (s *Session) IsExpiringSoon(ctx context.Context) bool {
	return s.expiringWithin(ctx, s.cfg.Refresh.Threshold)
}

// IsExpired reports whether the access token is past its expiry, with the
// same conservative treatment of uncertainty as IsExpiringSoon.
func (s *Session) IsExpired(ctx context.Context) bool {
	return s.expiringWithin(ctx, 0)
}

func (s *Session) expiringWithin(ctx context.Context, threshold time.Duration) bool {
	pair := s.loadPair(ctx)
	if pair.AccessToken == "" {
		return true
	}
	claims := jwt.Decode(pair.AccessToken)
	if claims == nil {
		s.metricInc(MetricDecodeFailure)
		return true
	}
	exp, ok := claims.ExpiresUnix()
	if !ok {
		return true
	}
	return time.Now().Unix() >= exp-int64(threshold/time.Second)
}

// Token returns a bearer token that is valid for at least the configured
// refresh threshold, refreshing first when needed. ErrNoSession when no
// valid session can be established.
func (s *Session) Token(ctx context.Context) (string, error) {
	if !s.EnsureValidToken(ctx) {
		return "", ErrNoSession
	}
	pair := s.loadPair(ctx)
	if pair.AccessToken == "" {
		return "", ErrNoSession
	}
	return pair.AccessToken, nil
}
