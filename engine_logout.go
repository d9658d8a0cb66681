package authgate

import "context"

// Logout revokes a refresh token. Deletion is unconditional and idempotent:
// revoking an unknown, expired, or already-revoked token still succeeds, and
// no store entry remains afterward. Fails only with [ErrRefreshMissing] when
// the token is empty.
//
// Logout does not invalidate the paired access token; it stays usable until
// its own expiry.
func (e *Engine) Logout(ctx context.Context, refreshToken string) error {
	if !e.ready() {
		return ErrEngineNotReady
	}
	if refreshToken == "" {
		return ErrRefreshMissing
	}

	if err := e.tokens.Delete(ctx, refreshToken); err != nil {
		return err
	}

	e.metrics.Inc(MetricLogout)
	e.emitAudit(ctx, EventLogout, true, "", nil, nil)
	return nil
}
