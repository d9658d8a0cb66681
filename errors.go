package authgate

import "errors"

var (
	// ErrUnauthorized is returned by bearer validation when the presented
	// access token is missing, malformed, tampered with, or expired. The
	// cases are not distinguished.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidCredentials is returned by Login for both an unknown email
	// and a password mismatch, so callers cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrEmailExists is returned by Register when the user store already
	// holds an account with the given email.
	ErrEmailExists = errors.New("email already exists")
	// ErrUserNotFound is returned when a refresh token resolves to a user id
	// that no longer exists in the user store.
	ErrUserNotFound = errors.New("user not found")
	// ErrRefreshInvalid is returned by Refresh for tokens that are unknown,
	// expired, or already consumed. The store cannot tell these apart.
	ErrRefreshInvalid = errors.New("invalid refresh token")
	// ErrRefreshMissing is returned by Logout when no refresh token was
	// supplied.
	ErrRefreshMissing = errors.New("refresh token is required")
	// ErrTokenInvalid is returned by Validate for any access token the
	// signer rejects.
	ErrTokenInvalid = errors.New("invalid token")
	// ErrEngineNotReady is returned when an Engine method is called on an
	// engine that was not fully built.
	ErrEngineNotReady = errors.New("engine not initialized")
)
