// Package jwt manages access-token issuance and verification with a fixed
// time-to-live and strict validation semantics.
//
// Tokens carry a user id and email claim on top of the registered claim set.
// Verification treats a bad signature and an expired token identically from
// the caller's perspective: both come back as an error, and callers are
// expected to map any failure to a single unauthorized outcome.
package jwt
