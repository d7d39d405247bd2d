package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/store-rating-platform/internal/domain/entity"
	"github.com/oksasatya/store-rating-platform/internal/domain/repository"
)

type RatingRepository struct {
	pool *pgxpool.Pool
}

func NewRatingRepository(pool *pgxpool.Pool) *RatingRepository {
	return &RatingRepository{pool: pool}
}

// Upsert relies on the (user_id, store_id) unique constraint so a race
// between two submissions for the same pair leaves exactly one row.
// xmax = 0 holds only for freshly inserted rows.
func (r *RatingRepository) Upsert(ctx context.Context, userID, storeID string, rating int) (bool, error) {
	var created bool
	err := r.pool.QueryRow(ctx, `
		INSERT INTO ratings (user_id, store_id, rating)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, store_id)
		DO UPDATE SET rating = EXCLUDED.rating, updated_at = now()
		RETURNING (xmax = 0)
	`, userID, storeID, rating).Scan(&created)
	return created, err
}

func (r *RatingRepository) StatsByOwner(ctx context.Context, ownerID string) ([]entity.StoreStats, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT s.id, s.name, AVG(r.rating)::float8, COUNT(r.id)
		FROM stores s
		LEFT JOIN ratings r ON r.store_id = s.id
		WHERE s.owner_id = $1
		GROUP BY s.id, s.name, s.created_at
		ORDER BY s.created_at DESC
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []entity.StoreStats
	for rows.Next() {
		var s entity.StoreStats
		if err := rows.Scan(&s.StoreID, &s.StoreName, &s.Average, &s.Count); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

func (r *RatingRepository) RatersByOwner(ctx context.Context, ownerID string) ([]entity.StoreRater, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT r.user_id, u.name, u.email, u.address, r.store_id, s.name, r.rating, r.created_at
		FROM ratings r
		JOIN stores s ON s.id = r.store_id
		JOIN users u ON u.id = r.user_id
		WHERE s.owner_id = $1
		ORDER BY r.created_at DESC
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var raters []entity.StoreRater
	for rows.Next() {
		var sr entity.StoreRater
		if err := rows.Scan(&sr.UserID, &sr.UserName, &sr.UserEmail, &sr.UserAddress,
			&sr.StoreID, &sr.StoreName, &sr.Rating, &sr.CreatedAt); err != nil {
			return nil, err
		}
		raters = append(raters, sr)
	}
	return raters, rows.Err()
}

func (r *RatingRepository) AverageByOwner(ctx context.Context, ownerID string) (*float64, error) {
	var avg *float64
	err := r.pool.QueryRow(ctx, `
		SELECT AVG(r.rating)::float8
		FROM ratings r
		JOIN stores s ON s.id = r.store_id
		WHERE s.owner_id = $1
	`, ownerID).Scan(&avg)
	return avg, err
}

func (r *RatingRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM ratings`).Scan(&n)
	return n, err
}

var _ repository.RatingRepository = (*RatingRepository)(nil)
