package httpx

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/plantflix/marketplace/internal/domain/auth"
	"github.com/plantflix/marketplace/internal/domain/model"
	apperrors "github.com/plantflix/marketplace/internal/errors"
	"github.com/plantflix/marketplace/internal/service"
)

func testLoginResult() *service.LoginResult {
	return &service.LoginResult{
		User: &model.User{ID: "u1", Name: "Rosa", Email: "rosa@example.com"},
		Session: domainauth.Session{
			ID:        "sess-1",
			UserID:    "u1",
			Role:      domainauth.RoleUser,
			ExpiresAt: time.Now().Add(time.Hour),
		},
	}
}

func findCookie(t *testing.T, rec *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestAuthHandlers_LoginSetsCookies(t *testing.T) {
	auth := &fakeAuthService{
		loginFn: func(req *model.LoginRequest) (*service.LoginResult, error) {
			require.Equal(t, "rosa@example.com", req.Email)
			return testLoginResult(), nil
		},
	}
	h := &AuthHandlers{Svc: auth}

	body := strings.NewReader(`{"email":"rosa@example.com","password":"secret-pass"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", body)
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	sessionCookie := findCookie(t, rec, SessionCookieName)
	require.NotNil(t, sessionCookie)
	assert.Equal(t, "sess-1", sessionCookie.Value)
	assert.True(t, sessionCookie.HttpOnly)

	roleCookie := findCookie(t, rec, RoleCookieName)
	require.NotNil(t, roleCookie)
	assert.Equal(t, "user", roleCookie.Value)
	assert.False(t, roleCookie.HttpOnly)
}

func TestAuthHandlers_LoginBadCredentials(t *testing.T) {
	h := &AuthHandlers{Svc: &fakeAuthService{}}

	body := strings.NewReader(`{"email":"rosa@example.com","password":"wrong"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", body)
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, rec.Result().Cookies())
}

func TestAuthHandlers_LoginRejectsUnknownFields(t *testing.T) {
	h := &AuthHandlers{Svc: &fakeAuthService{}}

	body := strings.NewReader(`{"email":"a@b.c","password":"x","extra":true}`)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", body)
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthHandlers_SignupValidationError(t *testing.T) {
	auth := &fakeAuthService{
		signupFn: func(*model.SignupRequest) (*service.LoginResult, error) {
			return nil, apperrors.Validation("password must be at least 8 characters")
		},
	}
	h := &AuthHandlers{Svc: auth}

	body := strings.NewReader(`{"name":"Rosa","email":"rosa@example.com","password":"short"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", body)
	rec := httptest.NewRecorder()
	h.Signup(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "at least 8 characters")
}

func TestAuthHandlers_LogoutClearsCookies(t *testing.T) {
	auth := &fakeAuthService{sessions: map[string]domainauth.Session{
		"sess-1": {ID: "sess-1", UserID: "u1"},
	}}
	h := &AuthHandlers{Svc: auth}

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "sess-1"})
	rec := httptest.NewRecorder()
	h.Logout(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, []string{"sess-1"}, auth.loggedOut)

	sessionCookie := findCookie(t, rec, SessionCookieName)
	require.NotNil(t, sessionCookie)
	assert.Empty(t, sessionCookie.Value)
	assert.Negative(t, sessionCookie.MaxAge)
}

func TestAuthHandlers_Me(t *testing.T) {
	auth := &fakeAuthService{sessions: map[string]domainauth.Session{
		"sess-1": {ID: "sess-1", UserID: "u1", Role: domainauth.RoleNurseryAdmin},
	}}
	h := &AuthHandlers{Svc: auth}

	t.Run("with session", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "sess-1"})
		rec := httptest.NewRecorder()
		h.Me(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "nurseryadmin")
	})

	t.Run("without session", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
		rec := httptest.NewRecorder()
		h.Me(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
