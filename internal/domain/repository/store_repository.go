package repository

import (
	"context"

	"github.com/oksasatya/store-rating-platform/internal/domain/entity"
)

// StoreFilter narrows admin store listings; all fields are substring matches.
type StoreFilter struct {
	Name    string
	Email   string
	Address string
	Page    int
	Limit   int
}

// ListingSort is the client-selectable ordering of the user store listing.
// The zero value orders by creation time, most recent first.
type ListingSort struct {
	ByRating  bool
	Ascending bool
}

// StoreRepository defines store persistence operations.
type StoreRepository interface {
	Create(ctx context.Context, s *entity.Store) error
	GetByID(ctx context.Context, id string) (*entity.Store, error)
	List(ctx context.Context, f StoreFilter) ([]entity.Store, int64, error)
	ListByOwner(ctx context.Context, ownerID string) ([]entity.Store, error)
	// ListWithUserRating joins every store with its overall average and the
	// given user's own rating (nil when the user has not rated it).
	ListWithUserRating(ctx context.Context, userID string, sort ListingSort) ([]entity.StoreListing, error)
	// Search matches the query as a substring of name or address.
	Search(ctx context.Context, query string) ([]entity.Store, error)
	SetLogoURL(ctx context.Context, id, logoURL string) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}
