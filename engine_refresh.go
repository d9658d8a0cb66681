package authgate

import (
	"context"
	"errors"

	"github.com/tolgauslu/authgate/refreshtoken"
)

// Refresh redeems a refresh token for a new token pair and invalidates the
// old token.
//
// The old entry is consumed atomically with the lookup: once Refresh has
// seen a token, that token is gone, even when the subsequent user load
// fails. A consumed token can never be redeemed again and the operation is
// not resumable; callers that hit [ErrUserNotFound] must log in again.
// Under concurrent redemption of the same token exactly one caller wins;
// the rest fail with [ErrRefreshInvalid].
func (e *Engine) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	if !e.ready() {
		return nil, ErrEngineNotReady
	}
	if refreshToken == "" {
		e.metrics.Inc(MetricRefreshFailure)
		return nil, ErrRefreshInvalid
	}

	userID, err := e.tokens.Consume(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, refreshtoken.ErrTokenNotFound) {
			e.metrics.Inc(MetricRefreshFailure)
			e.emitAudit(ctx, EventRefreshFailure, false, "", ErrRefreshInvalid, map[string]string{
				"reason": "token_not_found",
			})
			return nil, ErrRefreshInvalid
		}
		return nil, err
	}

	user, err := e.users.FindByID(ctx, userID)
	if err != nil {
		// The old token is already consumed and stays that way.
		if errors.Is(err, ErrUserNotFound) {
			e.metrics.Inc(MetricRefreshFailure)
			e.emitAudit(ctx, EventRefreshFailure, false, userID, ErrUserNotFound, map[string]string{
				"reason": "user_missing",
			})
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	pair, err := e.issueTokenPair(ctx, user)
	if err != nil {
		e.metrics.Inc(MetricRefreshFailure)
		e.emitAudit(ctx, EventRefreshFailure, false, user.ID, err, map[string]string{
			"reason": "issue_failed",
		})
		return nil, err
	}

	e.metrics.Inc(MetricRefreshSuccess)
	e.emitAudit(ctx, EventRefreshSuccess, true, user.ID, nil, nil)
	return pair, nil
}
