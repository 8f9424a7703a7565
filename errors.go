package sessionkit

import "errors"

var (
	// ErrNoSession is returned when a valid bearer token cannot be
	// established (no tokens stored, or refresh failed).
	ErrNoSession = errors.New("no active session")
	// ErrSessionNotReady is returned by methods called on a Session that
	// was not produced by Builder.Build.
	ErrSessionNotReady = errors.New("session not ready")
	// ErrStoreUnavailable wraps token store failures.
	ErrStoreUnavailable = errors.New("token store unavailable")
)

// User-facing flow messages. These are stable strings that UI layers render
// verbatim; changing them is a breaking change.
const (
	msgInvalidCredentials = "Invalid email or password"
	msgAccountDisabled    = "Your account has been disabled"
	msgValidationFailed   = "Validation failed"
	msgLoginFailed        = "Login failed"
	msgRegistrationFailed = "Registration failed"
	msgEmailTaken         = "Email already registered"
	msgNetworkError       = "Network error. Please check your connection."
)
