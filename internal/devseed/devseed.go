// Package devseed populates a development database with a super admin,
// an approved nursery, and a small catalog so the storefront is usable
// immediately after `make dev`. It is never run in production.
package devseed

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	bcryptadapter "github.com/plantflix/marketplace/internal/adapters/bcrypt"
	"github.com/plantflix/marketplace/internal/data"
	domainauth "github.com/plantflix/marketplace/internal/domain/auth"
	"github.com/plantflix/marketplace/internal/domain/model"
	apperrors "github.com/plantflix/marketplace/internal/errors"
	"github.com/plantflix/marketplace/internal/ports"
)

// Services bundles the dependencies needed for development seeding.
type Services struct {
	DB        *sql.DB
	users     *data.UserRepo
	nurseries *data.NurseryRepo
	products  *data.ProductRepo
	hasher    ports.PasswordHasher
}

// NewServices constructs the repositories needed for seeding.
func NewServices(db *sql.DB) Services {
	return Services{
		DB:        db,
		users:     data.NewUserRepo(db),
		nurseries: data.NewNurseryRepo(db),
		products:  data.NewProductRepo(db),
		// MinCost keeps repeated dev restarts fast.
		hasher: bcryptadapter.NewHasher(4),
	}
}

// Run executes the development seeding workflow. It is idempotent: existing
// rows are left untouched.
func Run(ctx context.Context, svcs Services, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	if _, err := seedUser(ctx, svcs, seedUserSpec{
		Name:     "Plantflix Admin",
		Email:    "admin@plantflix.local",
		Password: "admin-password",
		Role:     domainauth.RoleSuperAdmin,
	}, logger); err != nil {
		return err
	}

	owner, err := seedUser(ctx, svcs, seedUserSpec{
		Name:     "Rosa Verde",
		Email:    "rosa@plantflix.local",
		Password: "owner-password",
		Role:     domainauth.RoleNurseryAdmin,
	}, logger)
	if err != nil {
		return err
	}

	if _, err := seedUser(ctx, svcs, seedUserSpec{
		Name:     "Sam Shopper",
		Email:    "sam@plantflix.local",
		Password: "shopper-password",
		Role:     domainauth.RoleUser,
	}, logger); err != nil {
		return err
	}

	nursery, err := seedNursery(ctx, svcs, owner.ID, logger)
	if err != nil {
		return err
	}

	return seedProducts(ctx, svcs, nursery.ID, logger)
}

type seedUserSpec struct {
	Name     string
	Email    string
	Password string
	Role     domainauth.Role
}

func seedUser(ctx context.Context, svcs Services, spec seedUserSpec, logger *slog.Logger) (*model.User, error) {
	if existing, err := svcs.users.GetByEmail(ctx, spec.Email); err == nil {
		return existing, nil
	} else if !apperrors.IsNotFound(err) {
		return nil, fmt.Errorf("look up seed user %s: %w", spec.Email, err)
	}

	hash, err := svcs.hasher.Hash(spec.Password)
	if err != nil {
		return nil, fmt.Errorf("hash seed password: %w", err)
	}

	user, err := svcs.users.Create(ctx, &model.SignupRequest{
		Name:     spec.Name,
		Email:    spec.Email,
		Password: spec.Password,
	}, hash)
	if err != nil {
		return nil, fmt.Errorf("create seed user %s: %w", spec.Email, err)
	}

	if spec.Role != domainauth.RoleUser {
		user, err = svcs.users.UpdateRole(ctx, user.ID, spec.Role)
		if err != nil {
			return nil, fmt.Errorf("promote seed user %s: %w", spec.Email, err)
		}
	}

	logger.InfoContext(ctx, "seeded user", "email", spec.Email, "role", user.Role)
	return user, nil
}

func seedNursery(ctx context.Context, svcs Services, ownerID string, logger *slog.Logger) (*model.Nursery, error) {
	if existing, err := svcs.nurseries.GetByOwner(ctx, ownerID); err == nil {
		return existing, nil
	} else if !apperrors.IsNotFound(err) {
		return nil, fmt.Errorf("look up seed nursery: %w", err)
	}

	nursery, err := svcs.nurseries.Create(ctx, ownerID, &model.CreateNurseryRequest{
		Name:        "Green Thumb Gardens",
		Description: "Family-run nursery specializing in indoor tropicals.",
		Address:     "12 Garden Lane, Pune",
		Phone:       "+91 98765 43210",
	})
	if err != nil {
		return nil, fmt.Errorf("create seed nursery: %w", err)
	}

	approved := model.NurseryStatusApproved
	nursery, err = svcs.nurseries.Update(ctx, nursery.ID, model.UpdateNurseryRequest{Status: &approved})
	if err != nil {
		return nil, fmt.Errorf("approve seed nursery: %w", err)
	}

	logger.InfoContext(ctx, "seeded nursery", "name", nursery.Name)
	return nursery, nil
}

func seedProducts(ctx context.Context, svcs Services, nurseryID string, logger *slog.Logger) error {
	nid := nurseryID
	existing, err := svcs.products.List(ctx, model.ProductsListOptions{NurseryID: &nid, Limit: 1})
	if err != nil {
		return fmt.Errorf("check seed products: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	seeds := []model.CreateProductRequest{
		{
			Name:             "Snake Plant",
			Description:      "Nearly indestructible air purifier.",
			Category:         "indoor",
			PriceMinor:       29900,
			Stock:            25,
			CareInstructions: "Water every 2-3 weeks; tolerates low light.",
			ClimateZone:      "tropical",
			Season:           "all",
			SKU:              "GTG-SNAKE-01",
		},
		{
			Name:             "Monstera Deliciosa",
			Description:      "Split-leaf statement plant.",
			Category:         "indoor",
			PriceMinor:       89900,
			Stock:            10,
			CareInstructions: "Bright indirect light; weekly watering.",
			ClimateZone:      "tropical",
			Season:           "all",
			SKU:              "GTG-MONST-01",
		},
		{
			Name:        "Marigold Seedlings (6-pack)",
			Description: "Hardy bloomers for beds and borders.",
			Category:    "outdoor",
			PriceMinor:  9900,
			Stock:       60,
			Season:      "summer",
			SKU:         "GTG-MARIG-01",
		},
	}

	for i := range seeds {
		seeds[i].NurseryID = nurseryID
		if _, err := svcs.products.Create(ctx, &seeds[i]); err != nil {
			return fmt.Errorf("create seed product %s: %w", seeds[i].Name, err)
		}
	}

	logger.InfoContext(ctx, "seeded products", "count", len(seeds))
	return nil
}
