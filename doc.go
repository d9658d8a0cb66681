// Package authgate implements a session-credential engine: JWT access tokens,
// opaque single-use rotating refresh tokens stored in Redis, and password
// verification against a pluggable user store.
//
// The package is designed for concurrent server workloads: Engine methods are
// safe to call from multiple goroutines after initialization through
// [Builder.Build].
//
// # Architecture boundaries
//
// authgate is the public surface. It exposes [Engine], [Builder], [Config],
// the [UserStore] integration interface, and value types ([TokenPair],
// [Identity], [MetricsSnapshot]). Token signing lives in jwt/, password
// hashing in password/, refresh-token persistence in refreshtoken/, and HTTP
// adapters in middleware/ and httpapi/.
//
// # Credential model
//
// Access tokens are stateless and short-lived; validity is signature plus
// expiry, with no store lookup and no revocation list. Refresh tokens are
// opaque identifiers mapped to a user id in Redis under a fixed TTL, and are
// consumed atomically on rotation: a refresh token moves from valid to
// consumed exactly once and is never revived.
package authgate
