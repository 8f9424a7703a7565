// Package jwt decodes access-token claims for display and permission
// gating. It never verifies signatures; the backend is the sole trust
// boundary, and every malformed input fails closed to a nil result.
package jwt
