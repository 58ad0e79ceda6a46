package repository

import (
	"context"

	"b1-flyer/internal/model"
)

// UserRepository defines the interface for user data access operations.
type UserRepository interface {
	// Create inserts a new user. Returns model.ErrEmailTaken if the email is in use.
	Create(ctx context.Context, user *model.User) error

	// GetByID retrieves a user by ID. Returns nil if the user does not exist.
	GetByID(ctx context.Context, id string) (*model.User, error)

	// GetByEmail retrieves a user by email. Returns nil if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*model.User, error)

	// Update persists the mutable profile fields and last login time.
	Update(ctx context.Context, user *model.User) error
}

// ProductRepository defines the interface for product data access operations.
// Every operation is restricted to products owned by ownerID.
type ProductRepository interface {
	// Create inserts a new product. Returns model.ErrDuplicateBarcode when the
	// owner already has a product with the same barcode.
	Create(ctx context.Context, product *model.Product) error

	// GetAll retrieves the owner's products, newest first, with pagination support.
	GetAll(ctx context.Context, ownerID string, limit, offset int) ([]model.Product, error)

	// GetByID retrieves a single product. Returns nil if it does not exist or
	// belongs to another user.
	GetByID(ctx context.Context, ownerID, id string) (*model.Product, error)

	// GetByIDs retrieves the owner's products whose IDs are in ids with a single
	// query. Unknown and foreign IDs are skipped; result order is unspecified.
	GetByIDs(ctx context.Context, ownerID string, ids []string) ([]model.Product, error)

	// Update replaces a product's fields. Returns model.ErrProductNotFound if no
	// product matched.
	Update(ctx context.Context, product *model.Product) error

	// Delete removes a product. Returns model.ErrProductNotFound if no product matched.
	Delete(ctx context.Context, ownerID, id string) error

	// Search performs a case-insensitive substring match on name, description
	// and barcode, newest first.
	Search(ctx context.Context, ownerID, query string, limit int) ([]model.Product, error)

	// BarcodeExists reports whether another of the owner's products, other than
	// excludeID, already uses barcode.
	BarcodeExists(ctx context.Context, ownerID, barcode, excludeID string) (bool, error)
}

// FlyerRepository defines the interface for flyer data access operations.
// Every operation is restricted to flyers owned by ownerID.
type FlyerRepository interface {
	// Create inserts a new flyer.
	Create(ctx context.Context, flyer *model.Flyer) error

	// GetAll retrieves the owner's flyers, newest first.
	GetAll(ctx context.Context, ownerID string, filter model.FlyerFilter) ([]model.Flyer, error)

	// GetByID retrieves a single flyer. Returns nil if it does not exist or
	// belongs to another user.
	GetByID(ctx context.Context, ownerID, id string) (*model.Flyer, error)

	// Update replaces a flyer document. Returns model.ErrFlyerNotFound if no flyer matched.
	Update(ctx context.Context, flyer *model.Flyer) error

	// Delete removes a flyer. Returns model.ErrFlyerNotFound if no flyer matched.
	Delete(ctx context.Context, ownerID, id string) error
}

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Store bundles the repositories of one persistence backend.
type Store struct {
	Users    UserRepository
	Products ProductRepository
	Flyers   FlyerRepository
	Pinger   Pinger
}
