package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/tolgauslu/authgate"
	"github.com/tolgauslu/authgate/middleware"
)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerResponse struct {
	Message string `json:"message"`
	UserID  string `json:"userId"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenPairResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type logoutRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type profileResponse struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

func (a *API) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}

	var req registerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := a.engine.Register(r.Context(), strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		a.writeEngineError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, registerResponse{
		Message: "user registered",
		UserID:  result.UserID,
	})
}

func (a *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}

	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	pair, err := a.engine.Login(r.Context(), strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		a.writeEngineError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, tokenPairResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

func (a *API) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}

	var req refreshRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	pair, err := a.engine.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		a.writeEngineError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, tokenPairResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

func (a *API) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}

	var req logoutRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := a.engine.Logout(r.Context(), req.RefreshToken); err != nil {
		a.writeEngineError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"message": "logged out"})
}

func (a *API) handleProfile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}

	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, authgate.ErrUnauthorized.Error())
		return
	}

	writeJSON(w, http.StatusOK, profileResponse{
		UserID: identity.UserID,
		Email:  identity.Email,
	})
}

func (a *API) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if !a.engine.Healthy(r.Context()) {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status": "not_ready",
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"service": "authgate",
		"version": a.version,
	})
}

// writeEngineError maps engine sentinels to status codes. Anything not in
// the taxonomy is an infrastructure failure and stays opaque to the client.
func (a *API) writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, authgate.ErrEmailExists),
		errors.Is(err, authgate.ErrInvalidCredentials),
		errors.Is(err, authgate.ErrRefreshInvalid),
		errors.Is(err, authgate.ErrRefreshMissing),
		errors.Is(err, authgate.ErrUserNotFound):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, authgate.ErrTokenInvalid), errors.Is(err, authgate.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
