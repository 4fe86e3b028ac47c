package core

import (
	"context"

	domainauth "github.com/plantflix/marketplace/internal/domain/auth"
	"github.com/plantflix/marketplace/internal/domain/model"
)

// This file contains repository interface definitions (ports in hexagonal architecture).
// These interfaces define the contracts between the service layer and data layer.
// Service implementations should depend on these interfaces, not concrete implementations.

// UserRepository defines the interface for user account data operations.
type UserRepository interface {
	Create(ctx context.Context, req *model.SignupRequest, passwordHash string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context, opts model.UsersListOptions) ([]*model.User, error)
	UpdateProfile(ctx context.Context, id string, req model.UpdateProfileRequest) (*model.User, error)
	UpdateRole(ctx context.Context, id string, role domainauth.Role) (*model.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	Delete(ctx context.Context, id string) (bool, error)
}

// NurseryRepository defines the interface for nursery storefront data operations.
type NurseryRepository interface {
	Create(ctx context.Context, ownerID string, req *model.CreateNurseryRequest) (*model.Nursery, error)
	GetByID(ctx context.Context, id string) (*model.Nursery, error)
	GetByOwner(ctx context.Context, ownerID string) (*model.Nursery, error)
	List(ctx context.Context, limit, offset int, onlyApproved bool) ([]*model.Nursery, error)
	Update(ctx context.Context, id string, req model.UpdateNurseryRequest) (*model.Nursery, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// ProductRepository defines the interface for catalog data operations.
type ProductRepository interface {
	Create(ctx context.Context, req *model.CreateProductRequest) (*model.Product, error)
	GetByID(ctx context.Context, id string) (*model.Product, error)
	List(ctx context.Context, opts model.ProductsListOptions) ([]*model.Product, error)
	Update(ctx context.Context, id string, req model.UpdateProductRequest) (*model.Product, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// CartRepository defines the interface for shopper cart data operations.
type CartRepository interface {
	Add(ctx context.Context, userID string, req *model.AddCartItemRequest) (*model.CartItem, error)
	UpdateQuantity(ctx context.Context, userID, itemID string, req model.UpdateCartItemRequest) (*model.CartItem, error)
	Remove(ctx context.Context, userID, itemID string) (bool, error)
	Clear(ctx context.Context, userID string) error
	Lines(ctx context.Context, userID string) ([]model.CartLine, error)
}

// OrderRepository defines the interface for order data operations.
// Creation happens inside the checkout transaction, not through this interface.
type OrderRepository interface {
	GetByID(ctx context.Context, id string) (*model.Order, error)
	ListByStripeSession(ctx context.Context, sessionID string) ([]*model.Order, error)
	Items(ctx context.Context, orderID string) ([]model.OrderItem, error)
	List(ctx context.Context, opts model.OrdersListOptions) ([]*model.Order, error)
	UpdateStatus(ctx context.Context, id string, status model.OrderStatus) (*model.Order, error)
	AttachStripeSession(ctx context.Context, orderID, sessionID string) error
	MarkPaid(ctx context.Context, stripeSessionID string) ([]*model.Order, error)
	SalesStats(ctx context.Context, nurseryID *string) (*model.SalesStats, error)
}

// SettingsRepository defines the interface for commission settings.
type SettingsRepository interface {
	Get(ctx context.Context) (*model.CommissionSettings, error)
	Update(ctx context.Context, req model.UpdateCommissionRequest, updatedBy string) (*model.CommissionSettings, error)
}

// ContactRepository defines the interface for contact submission data operations.
type ContactRepository interface {
	Create(ctx context.Context, req *model.CreateContactRequest) (*model.ContactSubmission, error)
	List(ctx context.Context, limit, offset int) ([]*model.ContactSubmission, error)
	UpdateStatus(ctx context.Context, id string, status model.ContactStatus) (*model.ContactSubmission, error)
}
