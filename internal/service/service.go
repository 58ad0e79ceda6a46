package service

import (
	"context"

	"b1-flyer/internal/model"
)

// AuthService defines account and token operations.
type AuthService interface {
	// Register creates an account and returns a signed token for it.
	Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error)

	// Login verifies credentials, records the login time and returns a token.
	Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error)

	// Profile retrieves the account of userID.
	Profile(ctx context.Context, userID string) (*model.User, error)

	// UpdateProfile applies a partial name update.
	UpdateProfile(ctx context.Context, userID string, req *model.UpdateProfileRequest) (*model.User, error)

	// Authenticate resolves a bearer token to the identity of an existing user.
	Authenticate(ctx context.Context, token string) (*model.Identity, error)
}

// ProductService defines operations for product management. Every call is
// scoped to the products of ownerID.
type ProductService interface {
	// Create adds a product, rejecting barcodes the owner already uses.
	Create(ctx context.Context, ownerID string, req *model.CreateProductRequest) (*model.Product, error)

	// GetAll retrieves the owner's products with pagination.
	GetAll(ctx context.Context, ownerID string, limit, offset int) ([]model.Product, error)

	// GetByID retrieves a single product by ID.
	GetByID(ctx context.Context, ownerID, id string) (*model.Product, error)

	// Update applies a partial update to a product.
	Update(ctx context.Context, ownerID, id string, req *model.UpdateProductRequest) (*model.Product, error)

	// Delete removes a product. Flyers keep their snapshots of it.
	Delete(ctx context.Context, ownerID, id string) error

	// Search finds products whose name, description or barcode contain query.
	Search(ctx context.Context, ownerID, query string, limit int) ([]model.Product, error)
}

// FlyerService defines operations for flyer management. Every call is scoped
// to the flyers of ownerID.
type FlyerService interface {
	// Create builds a flyer, capturing snapshots of the listed products.
	Create(ctx context.Context, ownerID string, req *model.CreateFlyerRequest) (*model.Flyer, error)

	// GetAll retrieves the owner's flyers.
	GetAll(ctx context.Context, ownerID string, filter model.FlyerFilter) ([]model.Flyer, error)

	// GetByID retrieves a single flyer by ID.
	GetByID(ctx context.Context, ownerID, id string) (*model.Flyer, error)

	// Update applies a partial update. Snapshots are re-captured only when the
	// request carries a product list.
	Update(ctx context.Context, ownerID, id string, req *model.UpdateFlyerRequest) (*model.Flyer, error)

	// Delete removes a flyer.
	Delete(ctx context.Context, ownerID, id string) error

	// Duplicate copies a flyer, snapshots included, into a new draft.
	Duplicate(ctx context.Context, ownerID, id string) (*model.Flyer, error)
}
