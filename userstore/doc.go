// Package userstore provides ready-made authgate.UserStore implementations:
// an in-memory store for tests and local development, and a PostgreSQL store
// over pgx for production use.
//
// Both map their failure modes onto the authgate sentinels: missing lookups
// return authgate.ErrUserNotFound and duplicate creates return
// authgate.ErrEmailExists, so the engine behaves identically regardless of
// backend.
package userstore
