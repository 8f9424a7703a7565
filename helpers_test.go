package sessionkit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"

	"github.com/ledgerfront/sessionkit/jwt"
	"github.com/ledgerfront/sessionkit/tokenstore"
)

// makeToken signs a throwaway HS256 token. Sessions never verify
// signatures, so the key is irrelevant; only the claims payload matters.
func makeToken(t *testing.T, sub, email, role string, exp time.Time, withExp bool) string {
	t.Helper()

	claims := jwt.Claims{
		Email: email,
		Role:  role,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject: sub,
		},
	}
	if withExp {
		claims.ExpiresAt = jwtlib.NewNumericDate(exp)
	}
	token, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	if err != nil {
		t.Fatalf("sign test token: %v", err)
	}
	return token
}

func newTestSession(t *testing.T, baseURL string) *Session {
	t.Helper()

	s, err := New().WithBaseURL(baseURL).Build()
	if err != nil {
		t.Fatalf("build session: %v", err)
	}
	t.Cleanup(s.Close)
	return s
}

func newTestBackend(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Session) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv, newTestSession(t, srv.URL)
}

func seedPair(t *testing.T, s *Session, access, refresh string) {
	t.Helper()

	err := s.store.Save(context.Background(), tokenstore.Pair{
		AccessToken:  access,
		RefreshToken: refresh,
	})
	if err != nil {
		t.Fatalf("seed token pair: %v", err)
	}
}

func storedPair(t *testing.T, s *Session) tokenstore.Pair {
	t.Helper()

	pair, err := s.store.Load(context.Background())
	if err != nil {
		t.Fatalf("load token pair: %v", err)
	}
	return pair
}
