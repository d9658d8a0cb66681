package authgate

import (
	"context"
	"errors"
	"sync"
	"testing"
)

// Concurrent redemptions of the same refresh token must resolve to exactly
// one winner; every loser sees ErrRefreshInvalid.
func TestConcurrentRefreshSingleWinner(t *testing.T) {
	engine, _ := newTestEngine(t, testEngineConfig())
	ctx := context.Background()

	pair := loginPair(t, engine, "alice@example.com", "pa55word!")

	const attempts = 16

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		winners  int
		rejected int
	)

	wg.Add(attempts)
	for i := 0; i < attempts; i++ {
		go func() {
			defer wg.Done()

			_, err := engine.Refresh(ctx, pair.RefreshToken)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				winners++
			case errors.Is(err, ErrRefreshInvalid):
				rejected++
			default:
				t.Errorf("unexpected refresh error: %v", err)
			}
		}()
	}
	wg.Wait()

	if winners != 1 {
		t.Fatalf("expected exactly one winner, got %d", winners)
	}
	if rejected != attempts-1 {
		t.Fatalf("expected %d rejections, got %d", attempts-1, rejected)
	}
}
