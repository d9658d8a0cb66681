// Package refreshtoken provides Redis-backed persistence for opaque,
// single-use refresh tokens.
//
// Each token is a key "refresh:<id>" holding the owning user's id with a
// fixed TTL. Expiry is enforced by Redis; the store never distinguishes an
// expired token from one that never existed, so both redeem paths fail the
// same way.
//
// # Single-use guarantee
//
// Consume is a single GETDEL round-trip. When two rotations race on the same
// token, Redis serializes the commands and exactly one caller sees the
// value; the other observes a missing key. There is no get-then-delete
// window.
//
// # Architecture boundaries
//
// This package owns Redis key layout and commands for refresh tokens. It
// does NOT mint token ids, verify users, or issue access tokens; those
// belong to the engine.
package refreshtoken
