package httpx

import (
	"log/slog"
	"net/http"

	domainauth "github.com/plantflix/marketplace/internal/domain/auth"
	"github.com/plantflix/marketplace/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Auth      AuthServiceInterface
	Users     *service.UserService
	Catalog   *service.CatalogService
	Cart      *service.CartService
	Orders    *service.OrderService
	Nurseries *service.NurseryService
	Settings  *service.SettingsService
	Contact   *service.ContactService

	CookieDomain string
	CookieSecure bool
	Logger       *slog.Logger
}

// NewRouter creates and configures the HTTP router. Page navigation flows
// through the route gate; the JSON API enforces auth per-route.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	authHandlers := &AuthHandlers{
		Svc:          services.Auth,
		CookieDomain: services.CookieDomain,
		CookieSecure: services.CookieSecure,
		Logger:       services.Logger,
	}

	registerAuthRoutes(mux, authHandlers)
	registerProductRoutes(mux, &ProductHandlers{Svc: services.Catalog}, services.Auth)
	registerCartRoutes(mux, &CartHandlers{Svc: services.Cart}, services.Auth)
	registerOrderRoutes(mux, &OrderHandlers{Svc: services.Orders}, services.Auth)
	registerNurseryRoutes(mux, &NurseryHandlers{Svc: services.Nurseries}, services.Auth)
	registerUserRoutes(mux, &UserHandlers{Svc: services.Users}, services.Auth)
	registerSettingsRoutes(mux, &SettingsHandlers{Svc: services.Settings}, services.Auth)
	registerContactRoutes(mux, &ContactHandlers{Svc: services.Contact}, services.Auth)

	admin := RequireRole(services.Auth, domainauth.RoleNurseryAdmin, domainauth.RoleSuperAdmin)
	statsHandlers := &StatsHandlers{Orders: services.Orders}
	mux.Handle("GET /api/stats/sales", admin(http.HandlerFunc(statsHandlers.Sales)))

	webhookHandlers := &WebhookHandlers{Orders: services.Orders, Logger: services.Logger}
	mux.Handle("POST /webhooks/stripe", http.HandlerFunc(webhookHandlers.Stripe))

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	return Gate(services.Auth)(mux)
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers) {
	mux.Handle("POST /api/auth/signup", http.HandlerFunc(h.Signup))
	mux.Handle("POST /api/auth/login", http.HandlerFunc(h.Login))
	mux.Handle("POST /api/auth/logout", http.HandlerFunc(h.Logout))
	mux.Handle("GET /api/auth/me", http.HandlerFunc(h.Me))
}

func registerProductRoutes(mux *http.ServeMux, h *ProductHandlers, auth AuthServiceInterface) {
	seller := RequireRole(auth, domainauth.RoleNurseryAdmin, domainauth.RoleSuperAdmin)

	mux.Handle("GET /api/products", OptionalAuth(auth)(http.HandlerFunc(h.List)))
	mux.Handle("GET /api/products/{id}", http.HandlerFunc(h.Get))
	mux.Handle("POST /api/products", seller(http.HandlerFunc(h.Create)))
	mux.Handle("PATCH /api/products/{id}", seller(http.HandlerFunc(h.Update)))
	mux.Handle("DELETE /api/products/{id}", seller(http.HandlerFunc(h.Delete)))
	mux.Handle("POST /api/products/{id}/image", seller(http.HandlerFunc(h.UploadImage)))
}

func registerCartRoutes(mux *http.ServeMux, h *CartHandlers, auth AuthServiceInterface) {
	authed := RequireAuth(auth)

	mux.Handle("GET /api/cart", authed(http.HandlerFunc(h.Get)))
	mux.Handle("DELETE /api/cart", authed(http.HandlerFunc(h.Clear)))
	mux.Handle("POST /api/cart/items", authed(http.HandlerFunc(h.Add)))
	mux.Handle("PATCH /api/cart/items/{id}", authed(http.HandlerFunc(h.UpdateQuantity)))
	mux.Handle("DELETE /api/cart/items/{id}", authed(http.HandlerFunc(h.Remove)))
}

func registerOrderRoutes(mux *http.ServeMux, h *OrderHandlers, auth AuthServiceInterface) {
	authed := RequireAuth(auth)

	mux.Handle("POST /api/orders/checkout", authed(http.HandlerFunc(h.Checkout)))
	mux.Handle("GET /api/orders", authed(http.HandlerFunc(h.List)))
	mux.Handle("GET /api/orders/{id}", authed(http.HandlerFunc(h.Get)))
	mux.Handle("PATCH /api/orders/{id}/status", authed(http.HandlerFunc(h.UpdateStatus)))
}

func registerNurseryRoutes(mux *http.ServeMux, h *NurseryHandlers, auth AuthServiceInterface) {
	authed := RequireAuth(auth)
	superAdmin := RequireRole(auth, domainauth.RoleSuperAdmin)

	mux.Handle("GET /api/nurseries", OptionalAuth(auth)(http.HandlerFunc(h.List)))
	mux.Handle("GET /api/nurseries/mine", authed(http.HandlerFunc(h.GetOwn)))
	mux.Handle("GET /api/nurseries/{id}", http.HandlerFunc(h.Get))
	mux.Handle("POST /api/nurseries", authed(http.HandlerFunc(h.Register)))
	mux.Handle("PATCH /api/nurseries/{id}", authed(http.HandlerFunc(h.Update)))
	mux.Handle("DELETE /api/nurseries/{id}", superAdmin(http.HandlerFunc(h.Delete)))
}

func registerUserRoutes(mux *http.ServeMux, h *UserHandlers, auth AuthServiceInterface) {
	authed := RequireAuth(auth)
	superAdmin := RequireRole(auth, domainauth.RoleSuperAdmin)

	mux.Handle("GET /api/users/me", authed(http.HandlerFunc(h.Profile)))
	mux.Handle("PATCH /api/users/me", authed(http.HandlerFunc(h.UpdateProfile)))
	mux.Handle("GET /api/users", superAdmin(http.HandlerFunc(h.List)))
	mux.Handle("PATCH /api/users/{id}/role", superAdmin(http.HandlerFunc(h.UpdateRole)))
	mux.Handle("DELETE /api/users/{id}", superAdmin(http.HandlerFunc(h.Delete)))
}

func registerSettingsRoutes(mux *http.ServeMux, h *SettingsHandlers, auth AuthServiceInterface) {
	superAdmin := RequireRole(auth, domainauth.RoleSuperAdmin)

	mux.Handle("GET /api/settings/commission", superAdmin(http.HandlerFunc(h.Get)))
	mux.Handle("PUT /api/settings/commission", superAdmin(http.HandlerFunc(h.Update)))
}

func registerContactRoutes(mux *http.ServeMux, h *ContactHandlers, auth AuthServiceInterface) {
	superAdmin := RequireRole(auth, domainauth.RoleSuperAdmin)

	mux.Handle("POST /api/contact", http.HandlerFunc(h.Submit))
	mux.Handle("GET /api/contact", superAdmin(http.HandlerFunc(h.List)))
	mux.Handle("PATCH /api/contact/{id}/status", superAdmin(http.HandlerFunc(h.UpdateStatus)))
}
