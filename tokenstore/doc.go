// Package tokenstore persists the session's access/refresh token pair.
//
// The pair is the unit of storage: every implementation writes both tokens
// in one operation and clears both in one operation, so a reader can never
// observe an access token without its paired refresh token. Absence of a
// pair is not an error; Load reports it as a zero Pair.
package tokenstore
