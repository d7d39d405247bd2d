package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/store-rating-platform/internal/domain/entity"
	"github.com/oksasatya/store-rating-platform/internal/domain/repository"
)

type StoreRepository struct {
	pool *pgxpool.Pool
}

func NewStoreRepository(pool *pgxpool.Pool) *StoreRepository {
	return &StoreRepository{pool: pool}
}

const storeColumns = `id, name, email, address, logo_url, owner_id, created_at, updated_at`

func scanStore(row pgx.Row) (*entity.Store, error) {
	s := &entity.Store{}
	if err := row.Scan(&s.ID, &s.Name, &s.Email, &s.Address, &s.LogoURL, &s.OwnerID,
		&s.CreatedAt, &s.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

func (r *StoreRepository) Create(ctx context.Context, s *entity.Store) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO stores (name, email, address, owner_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, s.Name, s.Email, s.Address, s.OwnerID)
	return row.Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
}

func (r *StoreRepository) GetByID(ctx context.Context, id string) (*entity.Store, error) {
	return scanStore(r.pool.QueryRow(ctx, `
		SELECT `+storeColumns+` FROM stores WHERE id = $1
	`, id))
}

func (r *StoreRepository) List(ctx context.Context, f repository.StoreFilter) ([]entity.Store, int64, error) {
	where := []string{"TRUE"}
	args := []any{}
	for col, val := range map[string]string{"name": f.Name, "email": f.Email, "address": f.Address} {
		if val != "" {
			args = append(args, "%"+val+"%")
			where = append(where, fmt.Sprintf("%s ILIKE $%d", col, len(args)))
		}
	}
	cond := strings.Join(where, " AND ")

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM stores WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	page, limit := normalizePage(f.Page, f.Limit)
	args = append(args, limit, (page-1)*limit)
	rows, err := r.pool.Query(ctx, fmt.Sprintf(`
		SELECT %s FROM stores WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, storeColumns, cond, len(args)-1, len(args)), args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	stores, err := collectStores(rows)
	return stores, total, err
}

func (r *StoreRepository) ListByOwner(ctx context.Context, ownerID string) ([]entity.Store, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+storeColumns+` FROM stores
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectStores(rows)
}

// ListWithUserRating joins every store with its overall average and the
// calling user's own rating in a single query.
func (r *StoreRepository) ListWithUserRating(ctx context.Context, userID string, sort repository.ListingSort) ([]entity.StoreListing, error) {
	order := "s.created_at DESC"
	if sort.ByRating {
		if sort.Ascending {
			order = "AVG(r.rating) ASC NULLS FIRST, s.created_at DESC"
		} else {
			order = "AVG(r.rating) DESC NULLS LAST, s.created_at DESC"
		}
	}

	rows, err := r.pool.Query(ctx, `
		SELECT s.id, s.name, s.email, s.address, s.logo_url, s.owner_id,
		       s.created_at, s.updated_at,
		       AVG(r.rating)::float8, COUNT(r.id), ur.rating
		FROM stores s
		LEFT JOIN ratings r ON r.store_id = s.id
		LEFT JOIN ratings ur ON ur.store_id = s.id AND ur.user_id = $1
		GROUP BY s.id, ur.rating
		ORDER BY `+order, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var listings []entity.StoreListing
	for rows.Next() {
		var l entity.StoreListing
		if err := rows.Scan(&l.ID, &l.Name, &l.Email, &l.Address, &l.LogoURL, &l.OwnerID,
			&l.CreatedAt, &l.UpdatedAt, &l.Average, &l.Count, &l.UserRating); err != nil {
			return nil, err
		}
		listings = append(listings, l)
	}
	return listings, rows.Err()
}

func (r *StoreRepository) Search(ctx context.Context, query string) ([]entity.Store, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+storeColumns+` FROM stores
		WHERE name ILIKE $1 OR address ILIKE $1
		ORDER BY created_at DESC
	`, "%"+query+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectStores(rows)
}

func (r *StoreRepository) SetLogoURL(ctx context.Context, id, logoURL string) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE stores SET logo_url = $1, updated_at = now() WHERE id = $2
	`, logoURL, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *StoreRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM stores WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *StoreRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM stores`).Scan(&n)
	return n, err
}

func collectStores(rows pgx.Rows) ([]entity.Store, error) {
	var stores []entity.Store
	for rows.Next() {
		var s entity.Store
		if err := rows.Scan(&s.ID, &s.Name, &s.Email, &s.Address, &s.LogoURL, &s.OwnerID,
			&s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		stores = append(stores, s)
	}
	return stores, rows.Err()
}

var _ repository.StoreRepository = (*StoreRepository)(nil)
