package authgate

import "context"

// UserRecord is the account record exchanged with a [UserStore]. The engine
// never mutates records after creation and never reads or writes plaintext
// passwords.
type UserRecord struct {
	ID           string
	Email        string
	PasswordHash string
}

// UserStore is the interface callers implement to integrate authgate with
// their user database. Implementations must return [ErrUserNotFound] for
// missing lookups and [ErrEmailExists] for duplicate creates; any other
// error is treated as an infrastructure failure and propagated unchanged.
//
// Emails are matched exactly as stored; uniqueness is the store's job.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (UserRecord, error)
	FindByID(ctx context.Context, id string) (UserRecord, error)
	Create(ctx context.Context, email, passwordHash string) (UserRecord, error)
}

// TokenPair is returned by [Engine.Login] and [Engine.Refresh].
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// RegisterResult is returned by [Engine.Register].
type RegisterResult struct {
	UserID string
}

// Identity is the decoded access-token claim set returned by
// [Engine.Validate] and attached to request contexts by middleware.Guard.
type Identity struct {
	UserID string
	Email  string
}
