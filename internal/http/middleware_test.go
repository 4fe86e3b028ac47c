package httpx

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/plantflix/marketplace/internal/domain/auth"
)

func okHandler(t *testing.T, wantRole domainauth.Role) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, ok := GetSessionFromContext(r.Context())
		require.True(t, ok)
		assert.Equal(t, wantRole, sess.Role)
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireAuth(t *testing.T) {
	auth := &fakeAuthService{sessions: map[string]domainauth.Session{
		"sess-1": {ID: "sess-1", UserID: "u1", Role: domainauth.RoleUser},
	}}

	t.Run("valid session passes and lands in context", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "sess-1"})
		rec := httptest.NewRecorder()
		RequireAuth(auth)(okHandler(t, domainauth.RoleUser)).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing cookie rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
		rec := httptest.NewRecorder()
		RequireAuth(auth)(okHandler(t, "")).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("stale session rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "gone"})
		rec := httptest.NewRecorder()
		RequireAuth(auth)(okHandler(t, "")).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRequireRole(t *testing.T) {
	auth := &fakeAuthService{sessions: map[string]domainauth.Session{
		"admin": {ID: "admin", UserID: "u1", Role: domainauth.RoleSuperAdmin},
		"buyer": {ID: "buyer", UserID: "u2", Role: domainauth.RoleUser},
	}}
	mw := RequireRole(auth, domainauth.RoleNurseryAdmin, domainauth.RoleSuperAdmin)

	t.Run("allowed role", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/products", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "admin"})
		rec := httptest.NewRecorder()
		mw(okHandler(t, domainauth.RoleSuperAdmin)).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("wrong role", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/products", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "buyer"})
		rec := httptest.NewRecorder()
		mw(okHandler(t, "")).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("no session", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/products", nil)
		rec := httptest.NewRecorder()
		mw(okHandler(t, "")).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestOptionalAuth(t *testing.T) {
	auth := &fakeAuthService{sessions: map[string]domainauth.Session{
		"sess-1": {ID: "sess-1", UserID: "u1", Role: domainauth.RoleUser},
	}}

	var sawSession bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, sawSession = GetSessionFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	t.Run("anonymous passes through", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
		rec := httptest.NewRecorder()
		OptionalAuth(auth)(next).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.False(t, sawSession)
	})

	t.Run("session lands in context", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "sess-1"})
		rec := httptest.NewRecorder()
		OptionalAuth(auth)(next).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, sawSession)
	})
}

func TestRecoverTurnsPanicsInto500s(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := Recover(logger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "internal server error")
}

func TestLoggingPreservesStatus(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := Logging(logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodGet, "/anything", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusTeapot, rec.Code)
}
