// Package wire is the HTTP plumbing shared by every session flow: JSON
// request encoding, per-call request IDs, and a response shape that keeps
// HTTP-level failures as data. Only transport-level failures (no response
// at all) surface as Go errors.
package wire
