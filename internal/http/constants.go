package httpx

// Cookie names shared by the auth handlers and the route gate. The session
// cookie is HttpOnly; the role cookie is a UI hint readable by the frontend
// and is never trusted for API authorization.
const (
	SessionCookieName = "app_session"
	RoleCookieName    = "role"
)

// Pagination defaults for list endpoints.
const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

// MaxUploadBytes caps product image uploads.
const MaxUploadBytes = 5 << 20
