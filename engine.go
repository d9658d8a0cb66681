package authgate

import (
	"context"
	"log"

	"github.com/google/uuid"

	"github.com/tolgauslu/authgate/jwt"
	"github.com/tolgauslu/authgate/password"
	"github.com/tolgauslu/authgate/refreshtoken"
)

// Engine orchestrates registration, login, refresh rotation, logout, and
// bearer validation. All collaborators are supplied at construction through
// [Builder]; there is no ambient lookup and no mutable global state.
//
// Engine methods are safe for concurrent use. The engine holds no in-process
// locks: per-token consistency is delegated to the refresh-token store's
// atomic consume.
type Engine struct {
	config  Config
	users   UserStore
	tokens  *refreshtoken.Store
	hasher  *password.Hasher
	signer  *jwt.Manager
	metrics *Metrics
	audit   *auditDispatcher
	logger  *log.Logger
}

// Close flushes and stops the audit dispatcher. Safe on a nil engine.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	e.audit.close()
}

// ready reports whether the engine was fully built. Methods on a zero Engine
// fail with [ErrEngineNotReady] instead of panicking.
func (e *Engine) ready() bool {
	return e != nil && e.users != nil && e.tokens != nil && e.hasher != nil && e.signer != nil
}

// MetricsSnapshot returns a point-in-time copy of the engine counters.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	if e == nil {
		return MetricsSnapshot{}
	}
	return e.metrics.Snapshot()
}

// AuditDropped reports audit events lost to dispatcher backpressure.
func (e *Engine) AuditDropped() uint64 {
	if e == nil {
		return 0
	}
	return e.audit.droppedCount()
}

// Healthy reports whether the refresh-token store is reachable.
func (e *Engine) Healthy(ctx context.Context) bool {
	if !e.ready() {
		return false
	}
	return e.tokens.Ping(ctx) == nil
}

// newRefreshTokenID returns a fresh opaque token identifier. UUIDv4 gives
// 122 bits of randomness; collisions are negligible at any realistic scale.
func newRefreshTokenID() string {
	return uuid.NewString()
}

func (e *Engine) emitAudit(ctx context.Context, eventType string, success bool, userID string, cause error, meta map[string]string) {
	if e.audit == nil {
		return
	}
	event := AuditEvent{
		EventType: eventType,
		UserID:    userID,
		IP:        clientIPFromContext(ctx),
		Success:   success,
		Metadata:  meta,
	}
	if cause != nil {
		event.Error = cause.Error()
	}
	e.audit.emit(ctx, event)
}

func (e *Engine) warnf(format string, args ...any) {
	if e == nil || e.logger == nil {
		return
	}
	e.logger.Printf("authgate: "+format, args...)
}
