package httpx

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	domainauth "github.com/plantflix/marketplace/internal/domain/auth"
	"github.com/plantflix/marketplace/internal/domain/model"
	"github.com/plantflix/marketplace/internal/service"
)

// AuthHandlers provides HTTP handlers for signup, login, logout, and the
// current-session endpoint.
type AuthHandlers struct {
	Svc          AuthServiceInterface
	CookieDomain string
	CookieSecure bool
	Logger       *slog.Logger
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// Signup handles POST /api/auth/signup.
func (h *AuthHandlers) Signup(w http.ResponseWriter, r *http.Request) {
	var req model.SignupRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_body", Err: err})
		return
	}

	result, err := h.Svc.Signup(r.Context(), &req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	h.setSessionCookies(w, result.Session)
	WriteJSON(w, http.StatusCreated, loginResponse(result))
}

// Login handles POST /api/auth/login.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_body", Err: err})
		return
	}

	result, err := h.Svc.Login(r.Context(), &req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	h.setSessionCookies(w, result.Session)
	WriteJSON(w, http.StatusOK, loginResponse(result))
}

// Logout handles POST /api/auth/logout. It is idempotent: a missing or
// stale cookie still clears client state and returns 204.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		if logoutErr := h.Svc.Logout(r.Context(), cookie.Value); logoutErr != nil {
			h.logger().WarnContext(r.Context(), "logout failed", "error", logoutErr)
		}
	}
	h.clearSessionCookies(w)
	w.WriteHeader(http.StatusNoContent)
}

// Me handles GET /api/auth/me, returning the current session.
func (h *AuthHandlers) Me(w http.ResponseWriter, r *http.Request) {
	sess, ok := getSessionFromRequest(r, h.Svc)
	if !ok {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "unauthorized",
			Err:     errors.New("not logged in"),
		})
		return
	}
	WriteJSON(w, http.StatusOK, sess)
}

type authResponse struct {
	User    *model.User        `json:"user"`
	Session domainauth.Session `json:"session"`
}

func loginResponse(result *service.LoginResult) authResponse {
	return authResponse{User: result.User, Session: result.Session}
}

func (h *AuthHandlers) setSessionCookies(w http.ResponseWriter, sess domainauth.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    sess.ID,
		Path:     "/",
		Domain:   h.CookieDomain,
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		Secure:   h.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	// Role cookie is a UI hint; deliberately not HttpOnly.
	http.SetCookie(w, &http.Cookie{
		Name:     RoleCookieName,
		Value:    string(sess.Role),
		Path:     "/",
		Domain:   h.CookieDomain,
		Expires:  sess.ExpiresAt,
		Secure:   h.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandlers) clearSessionCookies(w http.ResponseWriter) {
	for _, name := range []string{SessionCookieName, RoleCookieName} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			Domain:   h.CookieDomain,
			Expires:  time.Unix(0, 0),
			MaxAge:   -1,
			HttpOnly: name == SessionCookieName,
			Secure:   h.CookieSecure,
			SameSite: http.SameSiteLaxMode,
		})
	}
}
