package authgate

import "context"

// Validate verifies a bearer access token and returns the identity it
// carries. Purely stateless: signature and expiry only, no store lookup.
//
// Every failure mode (malformed, tampered, expired) collapses into
// [ErrTokenInvalid]; callers must not branch on why a token was rejected.
func (e *Engine) Validate(_ context.Context, accessToken string) (*Identity, error) {
	if !e.ready() {
		return nil, ErrEngineNotReady
	}
	if accessToken == "" {
		e.metrics.Inc(MetricValidateFailure)
		return nil, ErrTokenInvalid
	}

	claims, err := e.signer.ParseAccess(accessToken)
	if err != nil {
		e.metrics.Inc(MetricValidateFailure)
		return nil, ErrTokenInvalid
	}

	e.metrics.Inc(MetricValidateSuccess)
	return &Identity{
		UserID: claims.UID,
		Email:  claims.Email,
	}, nil
}
