package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"b1-flyer/internal/model"
	"b1-flyer/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// productService implements ProductService.
type productService struct {
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(productRepo repository.ProductRepository, logger zerolog.Logger) ProductService {
	return &productService{
		productRepo: productRepo,
		logger:      logger.With().Str("service", "product").Logger(),
	}
}

// Create adds a product to the owner's catalogue.
func (s *productService) Create(ctx context.Context, ownerID string, req *model.CreateProductRequest) (*model.Product, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Description = strings.TrimSpace(req.Description)
	req.Barcode = strings.TrimSpace(req.Barcode)
	req.Category = strings.TrimSpace(req.Category)

	if err := validateRequest(req); err != nil {
		return nil, err
	}

	if err := s.checkBarcode(ctx, ownerID, req.Barcode, ""); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	product := &model.Product{
		ID:          uuid.NewString(),
		UserID:      ownerID,
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
		Barcode:     req.Barcode,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, s.storeError(err, "failed to create product")
	}

	s.logger.Info().
		Str("user_id", ownerID).
		Str("product_id", product.ID).
		Msg("product created")

	return product, nil
}

// GetAll retrieves the owner's products with pagination.
func (s *productService) GetAll(ctx context.Context, ownerID string, limit, offset int) ([]model.Product, error) {
	limit = normalizeLimit(limit)
	if offset < 0 {
		offset = 0
	}

	products, err := s.productRepo.GetAll(ctx, ownerID, limit, offset)
	if err != nil {
		s.logger.Error().Err(err).
			Int("limit", limit).
			Int("offset", offset).
			Msg("failed to get all products")
		return nil, fmt.Errorf("failed to get products: %w", err)
	}

	s.logger.Debug().
		Int("count", len(products)).
		Int("limit", limit).
		Int("offset", offset).
		Msg("retrieved products")

	return products, nil
}

// GetByID retrieves a single product by ID.
func (s *productService) GetByID(ctx context.Context, ownerID, id string) (*model.Product, error) {
	if id == "" {
		s.logger.Warn().Msg("product ID is empty")
		return nil, model.ErrProductNotFound
	}

	product, err := s.productRepo.GetByID(ctx, ownerID, id)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id).Msg("failed to get product by ID")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	if product == nil {
		s.logger.Debug().Str("product_id", id).Msg("product not found")
		return nil, model.ErrProductNotFound
	}

	return product, nil
}

// Update applies the present fields of req to the product.
func (s *productService) Update(ctx context.Context, ownerID, id string, req *model.UpdateProductRequest) (*model.Product, error) {
	trimPtr(req.Name)
	trimPtr(req.Description)
	trimPtr(req.Barcode)
	trimPtr(req.Category)

	if err := validateRequest(req); err != nil {
		return nil, err
	}

	product, err := s.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if req.Barcode != nil && *req.Barcode != product.Barcode {
		if err := s.checkBarcode(ctx, ownerID, *req.Barcode, id); err != nil {
			return nil, err
		}
	}

	req.Apply(product)
	product.UpdatedAt = time.Now().UTC()

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, s.storeError(err, "failed to update product")
	}

	s.logger.Info().
		Str("user_id", ownerID).
		Str("product_id", id).
		Msg("product updated")

	return product, nil
}

// Delete removes a product.
func (s *productService) Delete(ctx context.Context, ownerID, id string) error {
	if err := s.productRepo.Delete(ctx, ownerID, id); err != nil {
		return s.storeError(err, "failed to delete product")
	}

	s.logger.Info().
		Str("user_id", ownerID).
		Str("product_id", id).
		Msg("product deleted")
	return nil
}

// Search finds the owner's products matching query.
func (s *productService) Search(ctx context.Context, ownerID, query string, limit int) ([]model.Product, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, model.NewValidationError("search query is required")
	}

	products, err := s.productRepo.Search(ctx, ownerID, query, normalizeLimit(limit))
	if err != nil {
		s.logger.Error().Err(err).Str("query", query).Msg("failed to search products")
		return nil, fmt.Errorf("failed to search products: %w", err)
	}

	s.logger.Debug().
		Str("query", query).
		Int("count", len(products)).
		Msg("searched products")

	return products, nil
}

// checkBarcode rejects a non-empty barcode already used by another of the
// owner's products.
func (s *productService) checkBarcode(ctx context.Context, ownerID, barcode, excludeID string) error {
	if barcode == "" {
		return nil
	}

	exists, err := s.productRepo.BarcodeExists(ctx, ownerID, barcode, excludeID)
	if err != nil {
		s.logger.Error().Err(err).Str("barcode", barcode).Msg("failed to check barcode")
		return fmt.Errorf("failed to check barcode: %w", err)
	}
	if exists {
		s.logger.Debug().
			Str("user_id", ownerID).
			Str("barcode", barcode).
			Msg("barcode already in use")
		return model.ErrDuplicateBarcode
	}
	return nil
}

// storeError passes domain errors through and wraps everything else.
func (s *productService) storeError(err error, msg string) error {
	var de *model.DomainError
	if errors.As(err, &de) {
		return err
	}
	s.logger.Error().Err(err).Msg(msg)
	return fmt.Errorf("%s: %w", msg, err)
}

func trimPtr(p *string) {
	if p != nil {
		*p = strings.TrimSpace(*p)
	}
}
