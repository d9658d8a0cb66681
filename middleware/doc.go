// Package middleware exposes the HTTP bearer-validation adapter built on top
// of authgate Engine validation.
//
// [Guard] reads the Authorization header, calls Engine.Validate, and injects
// the decoded identity into the request context for downstream handlers via
// [IdentityFromContext]. Requests without a valid bearer token are rejected
// with 401 before reaching the wrapped handler.
//
// # Architecture boundaries
//
// This package translates HTTP semantics into Engine calls. It does NOT
// implement token parsing or session logic itself.
package middleware
