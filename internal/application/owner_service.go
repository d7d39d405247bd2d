package application

import (
	"context"

	"github.com/oksasatya/store-rating-platform/internal/domain/entity"
	"github.com/oksasatya/store-rating-platform/internal/domain/repository"
	"github.com/oksasatya/store-rating-platform/pkg/apperr"
)

// OwnerService covers the store-owner dashboard. Every operation is scoped
// to the owner taken from the authenticated identity; an owner can never
// read another owner's stores.
type OwnerService struct {
	Stores  repository.StoreRepository
	Ratings repository.RatingRepository
}

func NewOwnerService(stores repository.StoreRepository, ratings repository.RatingRepository) *OwnerService {
	return &OwnerService{Stores: stores, Ratings: ratings}
}

func (s *OwnerService) ownsAnyStore(ctx context.Context, ownerID string) error {
	stores, err := s.Stores.ListByOwner(ctx, ownerID)
	if err != nil {
		return apperr.Internal("Failed to fetch stores.", err)
	}
	if len(stores) == 0 {
		return apperr.NotFound("No stores found for this owner.")
	}
	return nil
}

// Raters lists everyone who rated the owner's stores, with rater identity.
func (s *OwnerService) Raters(ctx context.Context, ownerID string) ([]entity.StoreRater, error) {
	if err := s.ownsAnyStore(ctx, ownerID); err != nil {
		return nil, err
	}
	raters, err := s.Ratings.RatersByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperr.Internal("Failed to fetch ratings.", err)
	}
	return raters, nil
}

// Stats returns one aggregate per owned store. Averages are never blended
// across stores into a single number.
func (s *OwnerService) Stats(ctx context.Context, ownerID string) ([]entity.StoreStats, error) {
	if err := s.ownsAnyStore(ctx, ownerID); err != nil {
		return nil, err
	}
	stats, err := s.Ratings.StatsByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperr.Internal("Failed to fetch store stats.", err)
	}
	return stats, nil
}
