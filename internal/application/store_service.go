package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/store-rating-platform/internal/domain/entity"
	"github.com/oksasatya/store-rating-platform/internal/domain/repository"
	"github.com/oksasatya/store-rating-platform/internal/infrastructure/postgres"
	"github.com/oksasatya/store-rating-platform/pkg/apperr"
	"github.com/oksasatya/store-rating-platform/pkg/validation"
)

// StoreService covers the user-facing store operations: the personalized
// listing, rating submission, and search.
type StoreService struct {
	Stores  repository.StoreRepository
	Ratings repository.RatingRepository
	Indexer *StoreIndexer
	Logger  *logrus.Logger
}

func NewStoreService(stores repository.StoreRepository, ratings repository.RatingRepository, indexer *StoreIndexer, logger *logrus.Logger) *StoreService {
	return &StoreService{Stores: stores, Ratings: ratings, Indexer: indexer, Logger: logger}
}

// ParseListingSort maps the sort/order query params onto a ListingSort.
// Anything other than sort=rating keeps the default creation-time order.
func ParseListingSort(sortBy, order string) repository.ListingSort {
	if sortBy != "rating" {
		return repository.ListingSort{}
	}
	return repository.ListingSort{ByRating: true, Ascending: order == "asc"}
}

// ListStores returns every store with its overall average and the caller's
// own rating.
func (s *StoreService) ListStores(ctx context.Context, userID string, sort repository.ListingSort) ([]entity.StoreListing, error) {
	listings, err := s.Stores.ListWithUserRating(ctx, userID, sort)
	if err != nil {
		return nil, apperr.Internal("Failed to fetch stores.", err)
	}
	return listings, nil
}

// SubmitRating upserts the caller's rating for a store. The user identity
// comes from the authenticated context, never from the request body. The
// returned flag reports whether a new rating was created.
func (s *StoreService) SubmitRating(ctx context.Context, userID, storeID string, rating int) (bool, error) {
	if reason, ok := validation.Rating(rating); !ok {
		return false, apperr.Validation([]string{reason})
	}
	if _, err := s.Stores.GetByID(ctx, storeID); err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			return false, apperr.NotFound("Store not found.")
		}
		return false, apperr.Internal("Failed to submit rating.", err)
	}
	created, err := s.Ratings.Upsert(ctx, userID, storeID, rating)
	if err != nil {
		return false, apperr.Internal("Failed to submit rating.", err)
	}
	return created, nil
}

// SearchStores matches the query against store names and addresses. When
// the Elasticsearch index is available it answers; otherwise the database
// serves the substring match directly.
func (s *StoreService) SearchStores(ctx context.Context, query string) ([]entity.Store, error) {
	if query == "" {
		return nil, apperr.Validation([]string{"Search query required."})
	}

	if hits, ok := s.Indexer.Search(ctx, query, 20); ok {
		stores := make([]entity.Store, 0, len(hits))
		for _, h := range hits {
			stores = append(stores, entity.Store{
				ID:      asString(h["id"]),
				Name:    asString(h["name"]),
				Email:   asString(h["email"]),
				Address: asString(h["address"]),
			})
		}
		return stores, nil
	}

	stores, err := s.Stores.Search(ctx, query)
	if err != nil {
		return nil, apperr.Internal("Failed to search stores.", err)
	}
	return stores, nil
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}
