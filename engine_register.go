package authgate

import (
	"context"
	"errors"
)

// Register hashes the password and creates a new user record. Fails with
// [ErrEmailExists] when the store already holds the email, and
// [ErrInvalidCredentials] when email or password is empty.
func (e *Engine) Register(ctx context.Context, email, password string) (*RegisterResult, error) {
	if !e.ready() {
		return nil, ErrEngineNotReady
	}
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	// Cheap duplicate check before paying for the hash. The store's own
	// uniqueness constraint still backstops the race with a concurrent
	// Register on the same email.
	if _, err := e.users.FindByEmail(ctx, email); err == nil {
		e.metrics.Inc(MetricRegisterDuplicate)
		e.emitAudit(ctx, EventRegisterFailure, false, "", ErrEmailExists, map[string]string{
			"email": email,
		})
		return nil, ErrEmailExists
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	digest, err := e.hasher.Hash(password)
	if err != nil {
		e.emitAudit(ctx, EventRegisterFailure, false, "", err, map[string]string{
			"email":  email,
			"reason": "hash_failed",
		})
		return nil, err
	}
	password = ""

	created, err := e.users.Create(ctx, email, digest)
	if err != nil {
		if errors.Is(err, ErrEmailExists) {
			e.metrics.Inc(MetricRegisterDuplicate)
			e.emitAudit(ctx, EventRegisterFailure, false, "", ErrEmailExists, map[string]string{
				"email": email,
			})
			return nil, ErrEmailExists
		}
		e.emitAudit(ctx, EventRegisterFailure, false, "", err, map[string]string{
			"email":  email,
			"reason": "store_create_failed",
		})
		return nil, err
	}

	e.metrics.Inc(MetricRegisterSuccess)
	e.emitAudit(ctx, EventRegisterSuccess, true, created.ID, nil, map[string]string{
		"email": email,
	})
	return &RegisterResult{UserID: created.ID}, nil
}
