package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	domainauth "github.com/plantflix/marketplace/internal/domain/auth"
	"github.com/plantflix/marketplace/internal/domain/model"
	"github.com/plantflix/marketplace/internal/service"
)

// AuthServiceInterface is the slice of the auth service the HTTP layer uses.
type AuthServiceInterface interface {
	Signup(ctx context.Context, req *model.SignupRequest) (*service.LoginResult, error)
	Login(ctx context.Context, req *model.LoginRequest) (*service.LoginResult, error)
	Logout(ctx context.Context, sessionID string) error
	GetSession(ctx context.Context, sessionID string) (domainauth.Session, error)
}

// respWriter captures the status code for request logging.
type respWriter struct {
	http.ResponseWriter
	status int
}

func (w *respWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Logging logs each request with method, path, status, and duration.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := &respWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rw, r)
			logger.InfoContext(r.Context(), "http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rw.status,
				"duration_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}

// Recover converts panics into 500s and logs the stack.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.ErrorContext(r.Context(), "panic recovered",
						"panic", rec,
						"path", r.URL.Path,
						"stack", string(debug.Stack()),
					)
					WriteError(w, ErrorParams{
						Code:    http.StatusInternalServerError,
						ErrCode: "internal",
						Err:     errors.New("internal server error"),
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// getSessionFromRequest resolves the session cookie against the auth
// service. A missing cookie or an invalid session both return false.
func getSessionFromRequest(r *http.Request, auth AuthServiceInterface) (domainauth.Session, bool) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return domainauth.Session{}, false
	}
	sess, err := auth.GetSession(r.Context(), cookie.Value)
	if err != nil {
		return domainauth.Session{}, false
	}
	return sess, true
}

// RequireAuth rejects requests without a valid session and stores the
// session in the request context for handlers downstream.
func RequireAuth(auth AuthServiceInterface) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, ok := getSessionFromRequest(r, auth)
			if !ok {
				WriteError(w, ErrorParams{
					Code:    http.StatusUnauthorized,
					ErrCode: "unauthorized",
					Err:     errors.New("authentication required"),
				})
				return
			}
			next.ServeHTTP(w, r.WithContext(SetSessionInContext(r.Context(), sess)))
		})
	}
}

// RequireRole is RequireAuth plus a role check.
func RequireRole(auth AuthServiceInterface, roles ...domainauth.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, ok := getSessionFromRequest(r, auth)
			if !ok {
				WriteError(w, ErrorParams{
					Code:    http.StatusUnauthorized,
					ErrCode: "unauthorized",
					Err:     errors.New("authentication required"),
				})
				return
			}
			allowed := false
			for _, role := range roles {
				if sess.Role == role {
					allowed = true
					break
				}
			}
			if !allowed {
				WriteError(w, ErrorParams{
					Code:    http.StatusForbidden,
					ErrCode: "forbidden",
					Err:     errors.New("insufficient role"),
				})
				return
			}
			next.ServeHTTP(w, r.WithContext(SetSessionInContext(r.Context(), sess)))
		})
	}
}

// OptionalAuth stores the session in the context when one is present but
// never rejects the request.
func OptionalAuth(auth AuthServiceInterface) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if sess, ok := getSessionFromRequest(r, auth); ok {
				r = r.WithContext(SetSessionInContext(r.Context(), sess))
			}
			next.ServeHTTP(w, r)
		})
	}
}
