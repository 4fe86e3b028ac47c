package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/plantflix/marketplace/config"
	bcryptadapter "github.com/plantflix/marketplace/internal/adapters/bcrypt"
	redisadapter "github.com/plantflix/marketplace/internal/adapters/redis"
	s3adapter "github.com/plantflix/marketplace/internal/adapters/s3"
	stripeadapter "github.com/plantflix/marketplace/internal/adapters/stripe"
	"github.com/plantflix/marketplace/internal/data"
	"github.com/plantflix/marketplace/internal/service"
)

// ServiceDeps groups the infrastructure handles needed to build services.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// ServiceContainer holds the fully wired application services.
type ServiceContainer struct {
	Auth      *service.AuthService
	Users     *service.UserService
	Catalog   *service.CatalogService
	Cart      *service.CartService
	Orders    *service.OrderService
	Nurseries *service.NurseryService
	Settings  *service.SettingsService
	Contact   *service.ContactService
}

// NewServices wires repositories, adapters, and services.
func NewServices(ctx context.Context, deps *ServiceDeps) (*ServiceContainer, error) {
	cfg := deps.Config
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	// Repositories
	users := data.NewUserRepo(deps.DB)
	nurseries := data.NewNurseryRepo(deps.DB)
	products := data.NewProductRepo(deps.DB)
	cart := data.NewCartRepo(deps.DB)
	orders := data.NewOrderRepo(deps.DB)
	settings := data.NewSettingsRepo(deps.DB)
	contacts := data.NewContactRepo(deps.DB)

	// Adapters
	sessions := redisadapter.NewSessionStore(deps.RedisClient)
	hasher := bcryptadapter.NewHasher(cfg.Auth.BcryptCost)

	images, err := s3adapter.New(ctx, s3adapter.Config{
		Bucket:        cfg.Storage.Bucket,
		Endpoint:      cfg.Storage.Endpoint,
		Region:        cfg.Storage.Region,
		AccessKey:     cfg.Storage.AccessKey,
		SecretKey:     cfg.Storage.SecretKey,
		PublicBaseURL: cfg.Storage.PublicBaseURL,
	})
	if err != nil {
		return nil, fmt.Errorf("init object store: %w", err)
	}

	payments, err := stripeadapter.New(stripeadapter.Config{
		SecretKey:     cfg.Stripe.SecretKey,
		WebhookSecret: cfg.Stripe.WebhookSecret,
		Currency:      cfg.Stripe.Currency,
	})
	if err != nil {
		return nil, fmt.Errorf("init payment gateway: %w", err)
	}

	baseURL := strings.TrimRight(cfg.HTTP.BaseURL, "/")

	return &ServiceContainer{
		Auth: service.NewAuthService(service.AuthServiceOptions{
			Users:      users,
			Sessions:   sessions,
			Hasher:     hasher,
			SessionTTL: cfg.Auth.SessionTTL,
		}),
		Users: service.NewUserService(service.UserServiceOptions{Users: users}),
		Catalog: service.NewCatalogService(service.CatalogServiceOptions{
			Products:  products,
			Nurseries: nurseries,
			Images:    images,
		}),
		Cart: service.NewCartService(service.CartServiceOptions{
			Cart:     cart,
			Products: products,
		}),
		Orders: service.NewOrderService(service.OrderServiceOptions{
			DB:         deps.DB,
			Orders:     orders,
			Settings:   settings,
			Nurseries:  nurseries,
			Payments:   payments,
			SuccessURL: baseURL + "/user/orders?payment=success",
			CancelURL:  baseURL + "/user/cart?payment=cancelled",
			Logger:     logger,
		}),
		Nurseries: service.NewNurseryService(service.NurseryServiceOptions{
			Nurseries: nurseries,
			Users:     users,
		}),
		Settings: service.NewSettingsService(service.SettingsServiceOptions{Settings: settings}),
		Contact:  service.NewContactService(service.ContactServiceOptions{Contacts: contacts}),
	}, nil
}
