package sessionkit

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ledgerfront/sessionkit/tokenstore"
)

func TestLoginSuccess(t *testing.T) {
	access := makeToken(t, "7", "a@b.com", "USER", time.Now().Add(time.Hour), true)
	_, s := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" || r.Method != http.MethodPost {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode login body: %v", err)
		}
		if req.Email != "a@b.com" || req.Password != "x" {
			t.Errorf("unexpected credentials: %+v", req)
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(tokenstore.Pair{AccessToken: access, RefreshToken: "R1"})
	})

	result := s.Login(context.Background(), "a@b.com", "x")
	if !result.Success {
		t.Fatalf("login failed: %+v", result)
	}
	if result.User == nil || result.User.ID != "7" || result.User.Email != "a@b.com" || result.User.Role != RoleUser {
		t.Fatalf("unexpected user: %+v", result.User)
	}
	got := storedPair(t, s)
	if got.AccessToken != access || got.RefreshToken != "R1" {
		t.Fatalf("stored pair = %+v", got)
	}
}

func TestLoginFailureClassification(t *testing.T) {
	cases := []struct {
		name      string
		status    int
		body      string
		wantError string
	}{
		{"bad credentials", http.StatusUnauthorized, "", msgInvalidCredentials},
		{"disabled account", http.StatusForbidden, "", msgAccountDisabled},
		{"server error with message", http.StatusInternalServerError, `{"message":"maintenance window"}`, "maintenance window"},
		{"server error without message", http.StatusBadGateway, "", msgLoginFailed},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, s := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				if tc.body != "" {
					_, _ = w.Write([]byte(tc.body))
				}
			})

			result := s.Login(context.Background(), "a@b.com", "x")
			if result.Success {
				t.Fatal("login reported success on a failure status")
			}
			if result.Error != tc.wantError {
				t.Fatalf("Error = %q, want %q", result.Error, tc.wantError)
			}
			if got := storedPair(t, s); !got.IsZero() {
				t.Fatalf("tokens stored after failed login: %+v", got)
			}
		})
	}
}

func TestLoginValidationErrors(t *testing.T) {
	_, s := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"validationErrors":{"email":["must be a valid email"]}}`))
	})

	result := s.Login(context.Background(), "nonsense", "x")
	if result.Success {
		t.Fatal("login reported success on 400")
	}
	if result.Error != msgValidationFailed {
		t.Fatalf("Error = %q, want %q", result.Error, msgValidationFailed)
	}
	if got := result.ValidationErrors["email"]; len(got) != 1 || got[0] != "must be a valid email" {
		t.Fatalf("ValidationErrors = %+v", result.ValidationErrors)
	}
}

func TestLoginNetworkError(t *testing.T) {
	srv, s := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {})
	srv.Close()

	result := s.Login(context.Background(), "a@b.com", "x")
	if result.Success || result.Error != msgNetworkError {
		t.Fatalf("result = %+v, want network error", result)
	}
}

func TestRegisterRequires201(t *testing.T) {
	access := makeToken(t, "9", "new@b.com", "USER", time.Now().Add(time.Hour), true)
	var status atomic.Int64
	_, s := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/register" {
			t.Errorf("unexpected request to %s", r.URL.Path)
		}
		w.WriteHeader(int(status.Load()))
		_ = json.NewEncoder(w).Encode(tokenstore.Pair{AccessToken: access, RefreshToken: "R1"})
	})

	// A plain 200 is not a register success.
	status.Store(http.StatusOK)
	if result := s.Register(context.Background(), "new@b.com", "x"); result.Success {
		t.Fatal("register accepted a non-201 success status")
	}
	if got := storedPair(t, s); !got.IsZero() {
		t.Fatalf("tokens stored after rejected register: %+v", got)
	}

	status.Store(http.StatusCreated)
	result := s.Register(context.Background(), "new@b.com", "x")
	if !result.Success {
		t.Fatalf("register failed: %+v", result)
	}
	if result.User == nil || result.User.ID != "9" {
		t.Fatalf("unexpected user: %+v", result.User)
	}
	if got := storedPair(t, s); got.AccessToken != access || got.RefreshToken != "R1" {
		t.Fatalf("stored pair = %+v", got)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	cases := []struct {
		name      string
		body      string
		wantError string
	}{
		{"server message preferred", `{"message":"that email is taken"}`, "that email is taken"},
		{"fallback message", "", msgEmailTaken},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, s := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusConflict)
				if tc.body != "" {
					_, _ = w.Write([]byte(tc.body))
				}
			})

			result := s.Register(context.Background(), "a@b.com", "x")
			if result.Success || result.Error != tc.wantError {
				t.Fatalf("result = %+v, want error %q", result, tc.wantError)
			}
		})
	}
}

func TestRegisterValidationErrors(t *testing.T) {
	_, s := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"errors":{"password":["too short"]}}`))
	})

	result := s.Register(context.Background(), "a@b.com", "x")
	if result.Success || result.Error != msgValidationFailed {
		t.Fatalf("result = %+v", result)
	}
	if got := result.ValidationErrors["password"]; len(got) != 1 || got[0] != "too short" {
		t.Fatalf("ValidationErrors = %+v", result.ValidationErrors)
	}
}

func TestLoginSuccessWithoutPairDegrades(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"accessToken":"only-half"}`))
	}))
	t.Cleanup(srv.Close)

	sink := NewChannelSink(4)
	s, err := New().WithBaseURL(srv.URL).WithEventSink(sink).Build()
	if err != nil {
		t.Fatalf("build session: %v", err)
	}
	t.Cleanup(s.Close)

	result := s.Login(context.Background(), "a@b.com", "x")
	if result.Success {
		t.Fatal("login succeeded without a complete token pair")
	}
	if got := storedPair(t, s); !got.IsZero() {
		t.Fatalf("partial pair cached: %+v", got)
	}

	// The degrade path must look like any other failure to observers.
	snap := s.MetricsSnapshot()
	if snap.Counters[MetricLoginFailure] != 1 {
		t.Fatalf("login failure counter = %d, want 1", snap.Counters[MetricLoginFailure])
	}
	if snap.Counters[MetricLoginSuccess] != 0 {
		t.Fatalf("login success counter = %d, want 0", snap.Counters[MetricLoginSuccess])
	}
	select {
	case event := <-sink.Events():
		if event.EventType != EventLoginFailure {
			t.Fatalf("event type = %q, want %q", event.EventType, EventLoginFailure)
		}
		if event.Error != "Login failed" {
			t.Fatalf("event error = %q, want %q", event.Error, "Login failed")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no failure event emitted for a degraded login")
	}
}

func TestRegisterStoreFailureDegrades(t *testing.T) {
	access := makeToken(t, "7", "a@b.com", "USER", time.Now().Add(time.Hour), true)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(tokenstore.Pair{AccessToken: access, RefreshToken: "R1"})
	}))
	t.Cleanup(srv.Close)

	s, err := New().WithBaseURL(srv.URL).WithStore(failingStore{}).Build()
	if err != nil {
		t.Fatalf("build session: %v", err)
	}
	t.Cleanup(s.Close)

	result := s.Register(context.Background(), "a@b.com", "x")
	if result.Success {
		t.Fatal("register succeeded despite a failing store")
	}
	if result.Error != "Registration failed" {
		t.Fatalf("error = %q, want %q", result.Error, "Registration failed")
	}
	snap := s.MetricsSnapshot()
	if snap.Counters[MetricRegisterFailure] != 1 {
		t.Fatalf("register failure counter = %d, want 1", snap.Counters[MetricRegisterFailure])
	}
	if snap.Counters[MetricRegisterSuccess] != 0 {
		t.Fatalf("register success counter = %d, want 0", snap.Counters[MetricRegisterSuccess])
	}
}

// failingStore rejects every operation, standing in for a dead backend.
type failingStore struct{}

func (failingStore) Load(context.Context) (tokenstore.Pair, error) {
	return tokenstore.Pair{}, errStoreDown
}

func (failingStore) Save(context.Context, tokenstore.Pair) error { return errStoreDown }

func (failingStore) Clear(context.Context) error { return errStoreDown }

var errStoreDown = errors.New("store down")

func TestLogoutClearsAndRevokes(t *testing.T) {
	var revoked atomic.Value
	_, s := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/logout" {
			t.Errorf("unexpected request to %s", r.URL.Path)
		}
		revoked.Store(r.Header.Get("Authorization"))
	})
	seedPair(t, s, "a1", "r1")

	s.Logout(context.Background())

	if got := storedPair(t, s); !got.IsZero() {
		t.Fatalf("logout left tokens behind: %+v", got)
	}
	if got, _ := revoked.Load().(string); got != "Bearer a1" {
		t.Fatalf("revoke Authorization = %q", got)
	}
}

func TestLogoutSwallowsRevokeFailure(t *testing.T) {
	srv, s := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {})
	srv.Close() // revoke endpoint unreachable
	seedPair(t, s, "a1", "r1")

	s.Logout(context.Background()) // must not panic

	if got := storedPair(t, s); !got.IsZero() {
		t.Fatalf("logout left tokens behind: %+v", got)
	}
}

func TestLogoutWithoutSessionSkipsRevoke(t *testing.T) {
	s := unusedBackend(t)
	s.Logout(context.Background())
}
