package sessionkit

import "net/http"

// Transport is an http.RoundTripper that establishes a valid session
// before every request and injects the bearer token. It is the client-side
// analog of a server auth middleware: business callers use a plain
// *http.Client and never touch tokens themselves.
//
//	client := &http.Client{Transport: sessionkit.NewTransport(session, nil)}
type Transport struct {
	session *Session
	base    http.RoundTripper
}

// NewTransport wraps base (http.DefaultTransport when nil) with bearer
// injection from the given session.
func NewTransport(session *Session, base http.RoundTripper) *Transport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &Transport{session: session, base: base}
}

// RoundTrip implements http.RoundTripper. It fails with ErrNoSession when
// no valid token can be established, before any network I/O on the
// wrapped request.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.session == nil {
		return nil, ErrSessionNotReady
	}
	token, err := t.session.Token(req.Context())
	if err != nil {
		return nil, err
	}

	// Per the RoundTripper contract the original request is not mutated.
	clone := req.Clone(req.Context())
	clone.Header.Set("Authorization", "Bearer "+token)
	return t.base.RoundTrip(clone)
}
