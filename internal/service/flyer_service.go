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

const copySuffix = " - Copy"

// flyerService implements FlyerService.
type flyerService struct {
	flyerRepo repository.FlyerRepository
	resolver  *SnapshotResolver
	logger    zerolog.Logger
}

// NewFlyerService creates a new flyer service.
func NewFlyerService(
	flyerRepo repository.FlyerRepository,
	resolver *SnapshotResolver,
	logger zerolog.Logger,
) FlyerService {
	return &flyerService{
		flyerRepo: flyerRepo,
		resolver:  resolver,
		logger:    logger.With().Str("service", "flyer").Logger(),
	}
}

// Create builds a flyer from the request, capturing product snapshots.
func (s *flyerService) Create(ctx context.Context, ownerID string, req *model.CreateFlyerRequest) (*model.Flyer, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)

	if err := validateRequest(req); err != nil {
		return nil, err
	}

	snapshots, err := s.resolver.Resolve(ctx, ownerID, req.Products, req.ProductOverrides)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	flyer := &model.Flyer{
		ID:          uuid.NewString(),
		UserID:      ownerID,
		Title:       req.Title,
		Description: req.Description,
		Template:    req.Template,
		Layout:      model.DefaultLayout(),
		Products:    snapshots,
		Status:      req.Status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if flyer.Template == "" {
		flyer.Template = model.TemplateModern
	}
	if flyer.Status == "" {
		flyer.Status = model.StatusDraft
	}
	if req.Layout != nil {
		flyer.Layout = req.Layout.WithDefaults()
	}
	if req.BusinessInfo != nil {
		flyer.BusinessInfo = *req.BusinessInfo
	}
	markPublished(flyer, now)

	if err := s.flyerRepo.Create(ctx, flyer); err != nil {
		return nil, s.storeError(err, "failed to create flyer")
	}

	s.logger.Info().
		Str("user_id", ownerID).
		Str("flyer_id", flyer.ID).
		Int("requested", len(req.Products)).
		Int("snapshots", len(snapshots)).
		Msg("flyer created")

	return flyer, nil
}

// GetAll retrieves the owner's flyers.
func (s *flyerService) GetAll(ctx context.Context, ownerID string, filter model.FlyerFilter) ([]model.Flyer, error) {
	if filter.Status != "" && !validStatus(filter.Status) {
		return nil, model.NewValidationError("status must be one of: draft published archived")
	}
	filter.Limit = normalizeLimit(filter.Limit)
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	flyers, err := s.flyerRepo.GetAll(ctx, ownerID, filter)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", ownerID).Msg("failed to get all flyers")
		return nil, fmt.Errorf("failed to get flyers: %w", err)
	}

	s.logger.Debug().
		Int("count", len(flyers)).
		Str("status", filter.Status).
		Msg("retrieved flyers")

	return flyers, nil
}

// GetByID retrieves a single flyer by ID.
func (s *flyerService) GetByID(ctx context.Context, ownerID, id string) (*model.Flyer, error) {
	if id == "" {
		return nil, model.ErrFlyerNotFound
	}

	flyer, err := s.flyerRepo.GetByID(ctx, ownerID, id)
	if err != nil {
		s.logger.Error().Err(err).Str("flyer_id", id).Msg("failed to get flyer by ID")
		return nil, fmt.Errorf("failed to get flyer: %w", err)
	}

	if flyer == nil {
		s.logger.Debug().Str("flyer_id", id).Msg("flyer not found")
		return nil, model.ErrFlyerNotFound
	}

	return flyer, nil
}

// Update applies the present fields of req. A present product list, even an
// empty one, replaces every snapshot; an absent one leaves them untouched.
func (s *flyerService) Update(ctx context.Context, ownerID, id string, req *model.UpdateFlyerRequest) (*model.Flyer, error) {
	trimPtr(req.Title)
	trimPtr(req.Description)

	if err := validateRequest(req); err != nil {
		return nil, err
	}

	flyer, err := s.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		flyer.Title = *req.Title
	}
	if req.Description != nil {
		flyer.Description = *req.Description
	}
	if req.Template != nil {
		flyer.Template = *req.Template
	}
	if req.Layout != nil {
		flyer.Layout = req.Layout.WithDefaults()
	}
	if req.BusinessInfo != nil {
		flyer.BusinessInfo = *req.BusinessInfo
	}
	if req.Status != nil {
		flyer.Status = *req.Status
	}
	if req.Products != nil {
		snapshots, err := s.resolver.Resolve(ctx, ownerID, *req.Products, req.ProductOverrides)
		if err != nil {
			return nil, err
		}
		flyer.Products = snapshots
	}

	now := time.Now().UTC()
	markPublished(flyer, now)
	flyer.UpdatedAt = now

	if err := s.flyerRepo.Update(ctx, flyer); err != nil {
		return nil, s.storeError(err, "failed to update flyer")
	}

	s.logger.Info().
		Str("user_id", ownerID).
		Str("flyer_id", id).
		Bool("resnapshot", req.Products != nil).
		Msg("flyer updated")

	return flyer, nil
}

// Delete removes a flyer.
func (s *flyerService) Delete(ctx context.Context, ownerID, id string) error {
	if err := s.flyerRepo.Delete(ctx, ownerID, id); err != nil {
		return s.storeError(err, "failed to delete flyer")
	}

	s.logger.Info().
		Str("user_id", ownerID).
		Str("flyer_id", id).
		Msg("flyer deleted")
	return nil
}

// Duplicate copies a flyer into a new draft. Snapshots are copied verbatim,
// never re-resolved.
func (s *flyerService) Duplicate(ctx context.Context, ownerID, id string) (*model.Flyer, error) {
	original, err := s.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	flyer := &model.Flyer{
		ID:           uuid.NewString(),
		UserID:       ownerID,
		Title:        original.Title + copySuffix,
		Description:  original.Description,
		Template:     original.Template,
		Layout:       original.Layout,
		BusinessInfo: original.BusinessInfo,
		Products:     cloneSnapshots(original.Products),
		Status:       model.StatusDraft,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.flyerRepo.Create(ctx, flyer); err != nil {
		return nil, s.storeError(err, "failed to duplicate flyer")
	}

	s.logger.Info().
		Str("user_id", ownerID).
		Str("source_id", id).
		Str("flyer_id", flyer.ID).
		Msg("flyer duplicated")

	return flyer, nil
}

func (s *flyerService) storeError(err error, msg string) error {
	var de *model.DomainError
	if errors.As(err, &de) {
		return err
	}
	s.logger.Error().Err(err).Msg(msg)
	return fmt.Errorf("%s: %w", msg, err)
}

// markPublished stamps PublishedAt the first time a flyer is published.
func markPublished(flyer *model.Flyer, now time.Time) {
	if flyer.Status == model.StatusPublished && flyer.PublishedAt == nil {
		flyer.PublishedAt = &now
	}
}

func validStatus(status string) bool {
	switch status {
	case model.StatusDraft, model.StatusPublished, model.StatusArchived:
		return true
	}
	return false
}
