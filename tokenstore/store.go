package tokenstore

import "context"

// Storage field names. Fixed, well-known keys: absence of either means
// "no session".
const (
	KeyAccessToken  = "accessToken"
	KeyRefreshToken = "refreshToken"
)

// Pair is the unit of session persistence.
type Pair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// IsZero reports whether neither token is present.
func (p Pair) IsZero() bool {
	return p.AccessToken == "" && p.RefreshToken == ""
}

// Store is the durable key-value storage owned by the session manager.
// No other component is permitted to read or write the token keys
// directly; the pairing invariant depends on it.
type Store interface {
	// Load returns the stored pair, or a zero Pair when no session is
	// persisted. An error means the backing store itself failed.
	Load(ctx context.Context) (Pair, error)
	// Save replaces the stored pair wholesale.
	Save(ctx context.Context, pair Pair) error
	// Clear deletes both tokens. Clearing an empty store is not an error.
	Clear(ctx context.Context) error
}
