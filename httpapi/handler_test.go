package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/tolgauslu/authgate"
	"github.com/tolgauslu/authgate/userstore"
)

func newTestAPI(t *testing.T) *API {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis.Run failed: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	cfg := authgate.DefaultConfig()
	cfg.JWT.Secret = []byte("test-secret-at-least-32-bytes-long")
	cfg.Password = authgate.PasswordConfig{
		Memory:      8 * 1024,
		Time:        1,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   32,
	}
	cfg.Audit.Enabled = false

	engine, err := authgate.New().
		WithConfig(cfg).
		WithRedis(client).
		WithUserStore(userstore.NewMemory()).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(engine.Close)

	return New(engine, "test")
}

func postJSON(t *testing.T, handler http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(dst); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func registerAndLogin(t *testing.T, handler http.Handler, email, password string) tokenPairResponse {
	t.Helper()

	rec := postJSON(t, handler, "/auth/register", map[string]string{
		"email": email, "password": password,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = postJSON(t, handler, "/auth/login", map[string]string{
		"email": email, "password": password,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("login: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var pair tokenPairResponse
	decodeBody(t, rec, &pair)
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatalf("incomplete token pair: %+v", pair)
	}
	return pair
}

func TestRegisterLoginProfileFlow(t *testing.T) {
	api := newTestAPI(t)
	handler := api.Handler()

	pair := registerAndLogin(t, handler, "alice@example.com", "pa55word!")

	req := httptest.NewRequest(http.MethodGet, "/auth/profile", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("profile: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var profile profileResponse
	decodeBody(t, rec, &profile)
	if profile.Email != "alice@example.com" || profile.UserID == "" {
		t.Fatalf("unexpected profile: %+v", profile)
	}
}

func TestRegisterDuplicateEmailReturns400(t *testing.T) {
	api := newTestAPI(t)
	handler := api.Handler()

	body := map[string]string{"email": "bob@example.com", "password": "pa55word!"}
	if rec := postJSON(t, handler, "/auth/register", body); rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	rec := postJSON(t, handler, "/auth/register", body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var payload map[string]string
	decodeBody(t, rec, &payload)
	if payload["error"] != authgate.ErrEmailExists.Error() {
		t.Fatalf("unexpected error payload: %v", payload)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	api := newTestAPI(t)
	handler := api.Handler()

	registerAndLogin(t, handler, "carol@example.com", "right-password")

	wrongPassword := postJSON(t, handler, "/auth/login", map[string]string{
		"email": "carol@example.com", "password": "wrong-password",
	})
	unknownEmail := postJSON(t, handler, "/auth/login", map[string]string{
		"email": "ghost@example.com", "password": "any-password",
	})

	if wrongPassword.Code != http.StatusBadRequest || unknownEmail.Code != http.StatusBadRequest {
		t.Fatalf("expected 400/400, got %d/%d", wrongPassword.Code, unknownEmail.Code)
	}
	// Same payload either way.
	if wrongPassword.Body.String() != unknownEmail.Body.String() {
		t.Fatal("login failures must not reveal which check failed")
	}
}

func TestRefreshRotationOverHTTP(t *testing.T) {
	api := newTestAPI(t)
	handler := api.Handler()

	pair := registerAndLogin(t, handler, "dave@example.com", "pa55word!")

	rec := postJSON(t, handler, "/auth/refresh", map[string]string{
		"refreshToken": pair.RefreshToken,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("refresh: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var rotated tokenPairResponse
	decodeBody(t, rec, &rotated)
	if rotated.RefreshToken == pair.RefreshToken {
		t.Fatal("expected a fresh refresh token")
	}

	// Replaying the consumed token fails.
	rec = postJSON(t, handler, "/auth/refresh", map[string]string{
		"refreshToken": pair.RefreshToken,
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for consumed token, got %d", rec.Code)
	}
}

func TestLogoutOverHTTP(t *testing.T) {
	api := newTestAPI(t)
	handler := api.Handler()

	pair := registerAndLogin(t, handler, "eve@example.com", "pa55word!")

	rec := postJSON(t, handler, "/auth/logout", map[string]string{
		"refreshToken": pair.RefreshToken,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("logout: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	// The refresh token is dead; the access token still passes the guard.
	rec = postJSON(t, handler, "/auth/refresh", map[string]string{
		"refreshToken": pair.RefreshToken,
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 after logout, got %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/auth/profile", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	profileRec := httptest.NewRecorder()
	handler.ServeHTTP(profileRec, req)
	if profileRec.Code != http.StatusOK {
		t.Fatalf("expected access token to outlive logout, got %d", profileRec.Code)
	}

	// Logout without a token is a client error.
	rec = postJSON(t, handler, "/auth/logout", map[string]string{})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing token, got %d", rec.Code)
	}
}

func TestProfileRequiresToken(t *testing.T) {
	api := newTestAPI(t)
	handler := api.Handler()

	req := httptest.NewRequest(http.MethodGet, "/auth/profile", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestMethodAndBodyValidation(t *testing.T) {
	api := newTestAPI(t)
	handler := api.Handler()

	req := httptest.NewRequest(http.MethodGet, "/auth/login", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader("not json"))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(""))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty body, got %d", rec.Code)
	}
}

func TestHealthzAndMetrics(t *testing.T) {
	api := newTestAPI(t)
	handler := api.Handler()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("healthz: expected 200, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics: expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "http_requests_total") {
		t.Fatal("expected http_requests_total in metrics output")
	}
	if !strings.Contains(rec.Body.String(), "authgate_audit_dropped_total") {
		t.Fatal("expected engine counters in metrics output")
	}
}

func TestUnknownRouteIs404(t *testing.T) {
	api := newTestAPI(t)
	handler := api.Handler()

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
