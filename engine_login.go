package authgate

import (
	"context"
	"errors"
)

// Login verifies the credentials and issues a fresh token pair: a signed
// access token plus an opaque refresh token stored under the configured TTL.
//
// An unknown email and a wrong password both fail with the same
// [ErrInvalidCredentials] value so the response does not reveal which check
// failed.
func (e *Engine) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	if !e.ready() {
		return nil, ErrEngineNotReady
	}

	user, err := e.users.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, ErrUserNotFound) {
			return nil, err
		}
		e.metrics.Inc(MetricLoginFailure)
		e.emitAudit(ctx, EventLoginFailure, false, "", ErrInvalidCredentials, map[string]string{
			"email":  email,
			"reason": "user_not_found",
		})
		return nil, ErrInvalidCredentials
	}

	ok, err := e.hasher.Verify(password, user.PasswordHash)
	password = ""
	if err != nil || !ok {
		if err != nil {
			e.warnf("login: stored digest for %s is malformed", user.ID)
		}
		e.metrics.Inc(MetricLoginFailure)
		e.emitAudit(ctx, EventLoginFailure, false, user.ID, ErrInvalidCredentials, map[string]string{
			"email":  email,
			"reason": "password_mismatch",
		})
		return nil, ErrInvalidCredentials
	}

	pair, err := e.issueTokenPair(ctx, user)
	if err != nil {
		e.metrics.Inc(MetricLoginFailure)
		e.emitAudit(ctx, EventLoginFailure, false, user.ID, err, map[string]string{
			"email":  email,
			"reason": "issue_failed",
		})
		return nil, err
	}

	e.metrics.Inc(MetricLoginSuccess)
	e.emitAudit(ctx, EventLoginSuccess, true, user.ID, nil, map[string]string{
		"email": email,
	})
	return pair, nil
}

// issueTokenPair mints an access token for user and persists a brand-new
// refresh token id. Shared by Login and Refresh.
func (e *Engine) issueTokenPair(ctx context.Context, user UserRecord) (*TokenPair, error) {
	access, err := e.signer.CreateAccess(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	refresh := newRefreshTokenID()
	if err := e.tokens.Save(ctx, refresh, user.ID, e.config.Refresh.TTL); err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}
