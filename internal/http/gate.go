package httpx

import (
	"net/http"
	"strings"

	domainauth "github.com/plantflix/marketplace/internal/domain/auth"
)

// Decision is the outcome of routing a page request through the gate. An
// empty Redirect lets the request through.
type Decision struct {
	Redirect string
}

// Pass reports whether the request should be served as-is.
func (d Decision) Pass() bool { return d.Redirect == "" }

// bypassPrefixes are paths the gate never touches: assets, the JSON API
// (which carries its own middleware), health, and payment webhooks.
var bypassPrefixes = []string{"/static/", "/api/", "/healthz", "/webhooks/"}

// authPages are the login/signup pages; a logged-in visitor is bounced to
// their role's home instead of seeing them again.
var authPages = []string{"/login", "/signup"}

// gatedArea pairs a path prefix with the roles allowed inside it. An empty
// Roles slice means any authenticated visitor.
type gatedArea struct {
	Prefix string
	Roles  []domainauth.Role
}

var gatedAreas = []gatedArea{
	{Prefix: "/superadmin", Roles: []domainauth.Role{domainauth.RoleSuperAdmin}},
	{Prefix: "/nurseryadmin", Roles: []domainauth.Role{domainauth.RoleNurseryAdmin}},
	{Prefix: "/user"},
	{Prefix: "/dashboard"},
}

// pathWithin reports whether path is prefix itself or nested under it.
func pathWithin(path, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

// RouteDecision classifies a page request and decides whether to serve or
// redirect it. It is pure and total: every (path, session, role) combination
// yields a decision, and unknown paths pass through so a gate bug can never
// take the storefront down.
func RouteDecision(path string, hasSession bool, role domainauth.Role) Decision {
	for _, p := range bypassPrefixes {
		if strings.HasPrefix(path, p) || path == strings.TrimSuffix(p, "/") {
			return Decision{}
		}
	}

	for _, p := range authPages {
		if pathWithin(path, p) {
			if hasSession {
				return Decision{Redirect: role.Home()}
			}
			return Decision{}
		}
	}

	for _, area := range gatedAreas {
		if !pathWithin(path, area.Prefix) {
			continue
		}
		if !hasSession {
			return Decision{Redirect: "/login"}
		}
		// A session with no recognizable role re-authenticates, even in
		// areas open to every role.
		if !role.Valid() {
			return Decision{Redirect: "/login"}
		}
		if len(area.Roles) == 0 {
			return Decision{}
		}
		for _, allowed := range area.Roles {
			if role == allowed {
				return Decision{}
			}
		}
		// A wrong role goes to its own area.
		return Decision{Redirect: role.Home()}
	}

	// Public storefront pages and anything unrecognized pass through.
	return Decision{}
}

// Gate is the page-routing middleware. It resolves the visitor's session
// from cookies, applies RouteDecision, and issues 303 redirects. With no
// validator wired the role cookie serves as a hint so page navigation still
// works; API authorization never trusts it.
func Gate(auth AuthServiceInterface) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hasSession, role := gateIdentity(r, auth)
			if d := RouteDecision(r.URL.Path, hasSession, role); !d.Pass() {
				http.Redirect(w, r, d.Redirect, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func gateIdentity(r *http.Request, auth AuthServiceInterface) (bool, domainauth.Role) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return false, ""
	}
	if auth == nil {
		return true, roleCookieHint(r)
	}
	sess, err := auth.GetSession(r.Context(), cookie.Value)
	if err != nil {
		return false, ""
	}
	return true, sess.Role
}

func roleCookieHint(r *http.Request) domainauth.Role {
	cookie, err := r.Cookie(RoleCookieName)
	if err != nil {
		return ""
	}
	role, _ := domainauth.ParseRole(cookie.Value)
	return role
}
