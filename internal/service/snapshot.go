package service

import (
	"context"
	"fmt"

	"b1-flyer/internal/model"
	"b1-flyer/internal/repository"

	"github.com/rs/zerolog"
)

// SnapshotResolver turns a list of product IDs into the snapshots embedded in
// a flyer.
type SnapshotResolver struct {
	products repository.ProductRepository
	logger   zerolog.Logger
}

// NewSnapshotResolver creates a resolver reading from products.
func NewSnapshotResolver(products repository.ProductRepository, logger zerolog.Logger) *SnapshotResolver {
	return &SnapshotResolver{
		products: products,
		logger:   logger.With().Str("service", "snapshot").Logger(),
	}
}

// Resolve loads the owner's products named by productIDs in one query and
// returns a snapshot for each one found, in input order. IDs that are unknown
// or owned by another user are dropped. Repeated IDs keep their first
// position. DisplayOrder is the position in the output unless overridden.
func (r *SnapshotResolver) Resolve(
	ctx context.Context,
	ownerID string,
	productIDs []string,
	overrides map[string]model.DisplayOverride,
) ([]model.ProductSnapshot, error) {
	if len(productIDs) == 0 {
		return []model.ProductSnapshot{}, nil
	}

	ids := make([]string, 0, len(productIDs))
	seen := make(map[string]struct{}, len(productIDs))
	for _, id := range productIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	for id, o := range overrides {
		if o.DisplayPrice != nil && *o.DisplayPrice < 0 {
			return nil, model.NewValidationError(fmt.Sprintf("displayPrice for product %s must be 0 or greater", id))
		}
		if o.DisplayOrder != nil && *o.DisplayOrder < 0 {
			return nil, model.NewValidationError(fmt.Sprintf("displayOrder for product %s must be 0 or greater", id))
		}
	}

	found, err := r.products.GetByIDs(ctx, ownerID, ids)
	if err != nil {
		r.logger.Error().Err(err).
			Str("user_id", ownerID).
			Int("requested", len(ids)).
			Msg("failed to load products for snapshots")
		return nil, fmt.Errorf("failed to resolve products: %w", err)
	}

	byID := make(map[string]model.Product, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}

	snapshots := make([]model.ProductSnapshot, 0, len(byID))
	for _, id := range ids {
		p, ok := byID[id]
		if !ok {
			continue
		}

		s := model.ProductSnapshot{
			ProductID:    p.ID,
			Name:         p.Name,
			Price:        p.Price,
			Barcode:      p.Barcode,
			Description:  p.Description,
			Category:     p.Category,
			ImageURL:     p.ImageURL,
			DisplayOrder: len(snapshots),
		}
		if o, ok := overrides[id]; ok {
			if o.DisplayName != nil {
				name := *o.DisplayName
				s.DisplayName = &name
			}
			if o.DisplayPrice != nil {
				price := *o.DisplayPrice
				s.DisplayPrice = &price
			}
			if o.DisplayOrder != nil {
				s.DisplayOrder = *o.DisplayOrder
			}
		}
		snapshots = append(snapshots, s)
	}

	if dropped := len(ids) - len(snapshots); dropped > 0 {
		r.logger.Debug().
			Str("user_id", ownerID).
			Int("dropped", dropped).
			Msg("skipped unknown or foreign product IDs")
	}

	return snapshots, nil
}

// cloneSnapshots returns a deep copy of snapshots.
func cloneSnapshots(snapshots []model.ProductSnapshot) []model.ProductSnapshot {
	out := make([]model.ProductSnapshot, len(snapshots))
	for i, s := range snapshots {
		if s.DisplayName != nil {
			name := *s.DisplayName
			s.DisplayName = &name
		}
		if s.DisplayPrice != nil {
			price := *s.DisplayPrice
			s.DisplayPrice = &price
		}
		out[i] = s
	}
	return out
}
