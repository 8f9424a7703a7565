package sessionkit

import "strings"

// Role is the closed permission enumeration derived from the access token's
// role claim. RoleGuest is the absence-of-session default used by permission
// checks, never a value this package writes into a token.
type Role uint8

const (
	// RoleGuest is the fallback role for missing, undecodable, or
	// unrecognized role claims.
	RoleGuest Role = iota
	// RoleUser is a regular authenticated user with write access.
	RoleUser
	// RoleAdmin is an administrative user.
	RoleAdmin
)

// ParseRole maps a backend role claim onto the closed enumeration.
// Unknown values fall back to RoleGuest, as does a literal "GUEST" claim,
// so permission checks never have to special-case raw strings.
func ParseRole(s string) Role {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "USER":
		return RoleUser
	case "ADMIN":
		return RoleAdmin
	default:
		return RoleGuest
	}
}

// String returns the canonical backend spelling of the role.
func (r Role) String() string {
	switch r {
	case RoleUser:
		return "USER"
	case RoleAdmin:
		return "ADMIN"
	default:
		return "GUEST"
	}
}

// CanWrite reports whether the role may perform mutating operations.
func (r Role) CanWrite() bool {
	return r == RoleUser || r == RoleAdmin
}

// Identity is the caller-visible view of the current session, derived on
// demand from the access token's claims. It is never persisted.
type Identity struct {
	ID    string
	Email string
	Role  Role
}

// ValidationErrors carries per-field messages from a 400 response.
type ValidationErrors map[string][]string

// FlowResult is the structured outcome of Login and Register. Flows never
// panic and never return Go errors for auth rejections; callers branch on
// Success and display Error verbatim.
type FlowResult struct {
	Success          bool
	User             *Identity
	Error            string
	ValidationErrors ValidationErrors
}
