// Package sessionkit provides a client-side session manager for JWT-based
// back-office APIs: an access/refresh token pair with pluggable storage,
// claims-derived identity and role checks, coalesced token refresh, and
// login/register/logout flows with structured error classification.
//
// The package is designed for concurrent callers: Session methods are safe
// to call from multiple goroutines after initialization through
// [Builder.Build].
//
// # Architecture boundaries
//
// sessionkit is the public surface. It exposes [Session], [Builder],
// [Config], the [tokenstore.Store] contract, and value types (Identity,
// FlowResult, MetricsSnapshot, SessionEvent). HTTP plumbing lives under
// internal/ and is never exported; store implementations live under
// tokenstore/ and only ever touch tokens as a pair.
//
// # What this package must NOT do
//
//   - Verify token signatures. Claims are decoded for display and
//     permission gating only; the backend is the sole trust boundary.
//   - Retry failed flows. Every flow reports one outcome; retry policy
//     belongs to the caller.
//   - Navigate or render. A failed refresh downgrades the session to
//     logged-out and nothing more; reacting to that is the caller's job.
//
// # Concurrency contract
//
// Refresh is serialized process-wide: while one refresh request is in
// flight, every concurrent Refresh or EnsureValidToken call waits for that
// request and adopts its outcome. No caller ever triggers a duplicate
// refresh round trip.
package sessionkit
