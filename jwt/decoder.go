package jwt

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the decoded payload of an access token. Unknown claims are
// ignored; missing claims stay at their zero value and are interpreted
// conservatively by callers (a missing exp means "treat as expired").
type Claims struct {
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// ExpiresUnix returns the exp claim as epoch seconds. ok is false when the
// token carries no expiry.
func (c *Claims) ExpiresUnix() (int64, bool) {
	if c == nil || c.ExpiresAt == nil {
		return 0, false
	}
	return c.ExpiresAt.Unix(), true
}

var parser = jwt.NewParser()

// Decode splits and base64url-decodes the token's claims segment without
// verifying the signature. It returns nil on any malformed input: empty
// string, wrong segment count, invalid base64, invalid JSON, or claim
// values of the wrong type. It never panics.
func Decode(token string) *Claims {
	if token == "" {
		return nil
	}
	claims := &Claims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil
	}
	return claims
}
