package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/oksasatya/store-rating-platform/internal/domain/entity"
	"github.com/oksasatya/store-rating-platform/internal/domain/repository"
	"github.com/oksasatya/store-rating-platform/internal/infrastructure/postgres"
)

// In-memory repository fakes. They enforce the same contracts as the
// Postgres implementations: not-found and duplicate-email sentinels, one
// rating per (user, store) pair.

type fakeUserRepo struct {
	users map[string]*entity.User
	seq   int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	for _, ex := range r.users {
		if ex.Email == u.Email {
			return postgres.ErrDuplicateEmail
		}
	}
	r.seq++
	u.ID = fmt.Sprintf("u-%d", r.seq)
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, postgres.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, postgres.ErrNotFound
}

func (r *fakeUserRepo) List(_ context.Context, f repository.UserFilter) ([]entity.User, int64, error) {
	var out []entity.User
	for _, u := range r.users {
		if f.Role != "" && u.Role != f.Role {
			continue
		}
		if f.Name != "" && !strings.Contains(strings.ToLower(u.Name), strings.ToLower(f.Name)) {
			continue
		}
		if f.Email != "" && !strings.Contains(strings.ToLower(u.Email), strings.ToLower(f.Email)) {
			continue
		}
		out = append(out, *u)
	}
	return out, int64(len(out)), nil
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, id, passwordHash string) error {
	u, ok := r.users[id]
	if !ok {
		return postgres.ErrNotFound
	}
	u.Password = passwordHash
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return postgres.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

type fakeStoreRepo struct {
	stores   map[string]*entity.Store
	listings []entity.StoreListing
	lastSort repository.ListingSort
	seq      int
}

func newFakeStoreRepo() *fakeStoreRepo {
	return &fakeStoreRepo{stores: map[string]*entity.Store{}}
}

func (r *fakeStoreRepo) Create(_ context.Context, s *entity.Store) error {
	r.seq++
	s.ID = fmt.Sprintf("s-%d", r.seq)
	cp := *s
	r.stores[s.ID] = &cp
	return nil
}

func (r *fakeStoreRepo) GetByID(_ context.Context, id string) (*entity.Store, error) {
	s, ok := r.stores[id]
	if !ok {
		return nil, postgres.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *fakeStoreRepo) List(_ context.Context, f repository.StoreFilter) ([]entity.Store, int64, error) {
	var out []entity.Store
	for _, s := range r.stores {
		if f.Name != "" && !strings.Contains(strings.ToLower(s.Name), strings.ToLower(f.Name)) {
			continue
		}
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

func (r *fakeStoreRepo) ListByOwner(_ context.Context, ownerID string) ([]entity.Store, error) {
	var out []entity.Store
	for _, s := range r.stores {
		if s.OwnerID == ownerID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeStoreRepo) ListWithUserRating(_ context.Context, _ string, sort repository.ListingSort) ([]entity.StoreListing, error) {
	r.lastSort = sort
	return r.listings, nil
}

func (r *fakeStoreRepo) Search(_ context.Context, query string) ([]entity.Store, error) {
	q := strings.ToLower(query)
	var out []entity.Store
	for _, s := range r.stores {
		if strings.Contains(strings.ToLower(s.Name), q) || strings.Contains(strings.ToLower(s.Address), q) {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *fakeStoreRepo) SetLogoURL(_ context.Context, id, logoURL string) error {
	s, ok := r.stores[id]
	if !ok {
		return postgres.ErrNotFound
	}
	s.LogoURL = logoURL
	return nil
}

func (r *fakeStoreRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.stores[id]; !ok {
		return postgres.ErrNotFound
	}
	delete(r.stores, id)
	return nil
}

func (r *fakeStoreRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.stores)), nil
}

type fakeRatingRepo struct {
	// keyed by userID+"|"+storeID
	ratings map[string]int
	stores  *fakeStoreRepo
}

func newFakeRatingRepo(stores *fakeStoreRepo) *fakeRatingRepo {
	return &fakeRatingRepo{ratings: map[string]int{}, stores: stores}
}

func (r *fakeRatingRepo) Upsert(_ context.Context, userID, storeID string, rating int) (bool, error) {
	key := userID + "|" + storeID
	_, exists := r.ratings[key]
	r.ratings[key] = rating
	return !exists, nil
}

func (r *fakeRatingRepo) forStore(storeID string) (sum, n int) {
	for key, v := range r.ratings {
		if strings.HasSuffix(key, "|"+storeID) {
			sum += v
			n++
		}
	}
	return sum, n
}

func (r *fakeRatingRepo) StatsByOwner(_ context.Context, ownerID string) ([]entity.StoreStats, error) {
	var out []entity.StoreStats
	for _, s := range r.stores.stores {
		if s.OwnerID != ownerID {
			continue
		}
		st := entity.StoreStats{StoreID: s.ID, StoreName: s.Name}
		if sum, n := r.forStore(s.ID); n > 0 {
			avg := float64(sum) / float64(n)
			st.Average = &avg
			st.Count = int64(n)
		}
		out = append(out, st)
	}
	return out, nil
}

func (r *fakeRatingRepo) RatersByOwner(_ context.Context, ownerID string) ([]entity.StoreRater, error) {
	var out []entity.StoreRater
	for key, v := range r.ratings {
		parts := strings.SplitN(key, "|", 2)
		s, ok := r.stores.stores[parts[1]]
		if !ok || s.OwnerID != ownerID {
			continue
		}
		out = append(out, entity.StoreRater{UserID: parts[0], StoreID: s.ID, StoreName: s.Name, Rating: v})
	}
	return out, nil
}

func (r *fakeRatingRepo) AverageByOwner(_ context.Context, ownerID string) (*float64, error) {
	var sum, n int
	for _, s := range r.stores.stores {
		if s.OwnerID != ownerID {
			continue
		}
		ss, sn := r.forStore(s.ID)
		sum += ss
		n += sn
	}
	if n == 0 {
		return nil, nil
	}
	avg := float64(sum) / float64(n)
	return &avg, nil
}

func (r *fakeRatingRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.ratings)), nil
}
