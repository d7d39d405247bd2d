package repository

import (
	"context"

	"github.com/oksasatya/store-rating-platform/internal/domain/entity"
)

// RatingRepository defines rating persistence and aggregation operations.
type RatingRepository interface {
	// Upsert inserts or updates the rating for (userID, storeID) atomically
	// and reports whether a new row was created.
	Upsert(ctx context.Context, userID, storeID string, rating int) (created bool, err error)
	// StatsByOwner returns one aggregate record per store owned by ownerID,
	// never a merged average across stores.
	StatsByOwner(ctx context.Context, ownerID string) ([]entity.StoreStats, error)
	// RatersByOwner lists every rating of the owner's stores together with
	// the rater's identity fields.
	RatersByOwner(ctx context.Context, ownerID string) ([]entity.StoreRater, error)
	// AverageByOwner is the average rating across all of an owner's stores,
	// nil when none of them has a rating.
	AverageByOwner(ctx context.Context, ownerID string) (*float64, error)
	Count(ctx context.Context) (int64, error)
}
