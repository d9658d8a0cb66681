package authgate

import (
	"context"
	"errors"
	"testing"
)

func loginPair(t *testing.T, engine *Engine, email, password string) *TokenPair {
	t.Helper()

	ctx := context.Background()
	if _, err := engine.Register(ctx, email, password); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	pair, err := engine.Login(ctx, email, password)
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	return pair
}

func TestRefreshRotatesToken(t *testing.T) {
	engine, _ := newTestEngine(t, testEngineConfig())
	ctx := context.Background()

	pair := loginPair(t, engine, "alice@example.com", "pa55word!")

	rotated, err := engine.Refresh(ctx, pair.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	if rotated.RefreshToken == pair.RefreshToken {
		t.Fatal("expected a fresh refresh token")
	}
	if rotated.AccessToken == "" {
		t.Fatal("expected a new access token")
	}

	// The previous token is consumed.
	if _, err := engine.Refresh(ctx, pair.RefreshToken); !errors.Is(err, ErrRefreshInvalid) {
		t.Fatalf("expected ErrRefreshInvalid for consumed token, got %v", err)
	}

	// The rotated token still works.
	if _, err := engine.Refresh(ctx, rotated.RefreshToken); err != nil {
		t.Fatalf("Refresh of rotated token failed: %v", err)
	}
}

func TestRefreshUnknownToken(t *testing.T) {
	engine, _ := newTestEngine(t, testEngineConfig())
	ctx := context.Background()

	if _, err := engine.Refresh(ctx, "never-issued"); !errors.Is(err, ErrRefreshInvalid) {
		t.Fatalf("expected ErrRefreshInvalid, got %v", err)
	}
	if _, err := engine.Refresh(ctx, ""); !errors.Is(err, ErrRefreshInvalid) {
		t.Fatalf("expected ErrRefreshInvalid for empty token, got %v", err)
	}
}

func TestRefreshAfterUserDeleted(t *testing.T) {
	engine, users := newTestEngine(t, testEngineConfig())
	ctx := context.Background()

	pair := loginPair(t, engine, "bob@example.com", "pa55word!")

	identity, err := engine.Validate(ctx, pair.AccessToken)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	users.delete(identity.UserID)

	if _, err := engine.Refresh(ctx, pair.RefreshToken); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	// The token was consumed before the user lookup; a retry cannot revive it.
	if _, err := engine.Refresh(ctx, pair.RefreshToken); !errors.Is(err, ErrRefreshInvalid) {
		t.Fatalf("expected ErrRefreshInvalid on retry, got %v", err)
	}
}

func TestLogoutInvalidatesRefreshToken(t *testing.T) {
	engine, _ := newTestEngine(t, testEngineConfig())
	ctx := context.Background()

	pair := loginPair(t, engine, "carol@example.com", "pa55word!")

	if err := engine.Logout(ctx, pair.RefreshToken); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}

	if _, err := engine.Refresh(ctx, pair.RefreshToken); !errors.Is(err, ErrRefreshInvalid) {
		t.Fatalf("expected ErrRefreshInvalid after logout, got %v", err)
	}

	// The access token stays valid until it expires.
	if _, err := engine.Validate(ctx, pair.AccessToken); err != nil {
		t.Fatalf("Validate after logout failed: %v", err)
	}
}

func TestLogoutIsIdempotent(t *testing.T) {
	engine, _ := newTestEngine(t, testEngineConfig())
	ctx := context.Background()

	pair := loginPair(t, engine, "dave@example.com", "pa55word!")

	if err := engine.Logout(ctx, pair.RefreshToken); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
	if err := engine.Logout(ctx, pair.RefreshToken); err != nil {
		t.Fatalf("second Logout failed: %v", err)
	}
	if err := engine.Logout(ctx, "never-issued"); err != nil {
		t.Fatalf("Logout of unknown token failed: %v", err)
	}
}

func TestLogoutRequiresToken(t *testing.T) {
	engine, _ := newTestEngine(t, testEngineConfig())

	if err := engine.Logout(context.Background(), ""); !errors.Is(err, ErrRefreshMissing) {
		t.Fatalf("expected ErrRefreshMissing, got %v", err)
	}
}

func TestConcurrentSessionsAreIndependent(t *testing.T) {
	engine, _ := newTestEngine(t, testEngineConfig())
	ctx := context.Background()

	if _, err := engine.Register(ctx, "eve@example.com", "pa55word!"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	first, err := engine.Login(ctx, "eve@example.com", "pa55word!")
	if err != nil {
		t.Fatalf("first Login failed: %v", err)
	}
	second, err := engine.Login(ctx, "eve@example.com", "pa55word!")
	if err != nil {
		t.Fatalf("second Login failed: %v", err)
	}
	if first.RefreshToken == second.RefreshToken {
		t.Fatal("expected distinct refresh tokens per login")
	}

	if err := engine.Logout(ctx, first.RefreshToken); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}

	// The other session is untouched.
	if _, err := engine.Refresh(ctx, second.RefreshToken); err != nil {
		t.Fatalf("Refresh of independent session failed: %v", err)
	}
}
