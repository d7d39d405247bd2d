package application

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/store-rating-platform/internal/domain/entity"
	"github.com/oksasatya/store-rating-platform/internal/domain/repository"
	"github.com/oksasatya/store-rating-platform/internal/infrastructure/postgres"
	"github.com/oksasatya/store-rating-platform/pkg/apperr"
	"github.com/oksasatya/store-rating-platform/pkg/helpers"
	"github.com/oksasatya/store-rating-platform/pkg/validation"
)

const dashboardCacheKey = "dashboard:counts"

// AdminService covers admin-only management: user and store creation,
// listings, deletion, and the dashboard counts.
type AdminService struct {
	Users   repository.UserRepository
	Stores  repository.StoreRepository
	Ratings repository.RatingRepository
	Redis   *redis.Client
	GCS     *storage.Client
	Bucket  string
	Indexer *StoreIndexer
	Logger  *logrus.Logger

	DashboardTTL time.Duration
}

func NewAdminService(users repository.UserRepository, stores repository.StoreRepository, ratings repository.RatingRepository,
	rdb *redis.Client, gcs *storage.Client, bucket string, indexer *StoreIndexer, logger *logrus.Logger, dashboardTTL time.Duration) *AdminService {
	return &AdminService{
		Users: users, Stores: stores, Ratings: ratings,
		Redis: rdb, GCS: gcs, Bucket: bucket, Indexer: indexer, Logger: logger,
		DashboardTTL: dashboardTTL,
	}
}

type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Address  string
	Role     string
}

// CreateUser creates a user of any role. Validation mirrors self-service
// registration plus the explicit role rule.
func (s *AdminService) CreateUser(ctx context.Context, in CreateUserInput) (*entity.User, error) {
	var col validation.Collector
	col.Check(validation.Name(in.Name))
	col.Check(validation.Email(in.Email))
	col.Check(validation.Password(in.Password))
	col.Check(validation.Address(in.Address))
	col.Check(validation.Role(in.Role))
	if col.Failed() {
		return nil, apperr.Validation(col.Reasons())
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, apperr.Internal("Failed to create user.", err)
	}
	role, _ := entity.ParseRole(in.Role)
	u := &entity.User{Name: in.Name, Email: in.Email, Password: hash, Address: in.Address, Role: role}
	if err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, postgres.ErrDuplicateEmail) {
			return nil, apperr.Conflict("Email already registered.")
		}
		return nil, apperr.Internal("Failed to create user.", err)
	}
	return u, nil
}

func (s *AdminService) ListUsers(ctx context.Context, f repository.UserFilter) ([]entity.User, int64, error) {
	if f.Role != "" && !f.Role.Valid() {
		return nil, 0, apperr.Validation([]string{"Invalid role."})
	}
	users, total, err := s.Users.List(ctx, f)
	if err != nil {
		return nil, 0, apperr.Internal("Failed to fetch users.", err)
	}
	return users, total, nil
}

// UserDetail is a user plus, for owners, the average rating across all of
// their stores (nil when none of them has been rated).
type UserDetail struct {
	User          *entity.User
	AverageRating *float64
}

func (s *AdminService) GetUserDetail(ctx context.Context, id string) (*UserDetail, error) {
	u, err := s.Users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			return nil, apperr.NotFound("User not found.")
		}
		return nil, apperr.Internal("Failed to fetch user details.", err)
	}
	detail := &UserDetail{User: u}
	if u.Role == entity.RoleOwner {
		avg, err := s.Ratings.AverageByOwner(ctx, u.ID)
		if err != nil {
			return nil, apperr.Internal("Failed to fetch user details.", err)
		}
		detail.AverageRating = avg
	}
	return detail, nil
}

func (s *AdminService) DeleteUser(ctx context.Context, id string) error {
	// Owned stores and authored ratings go with the user via FK cascades.
	if err := s.Users.Delete(ctx, id); err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			return apperr.NotFound("User not found.")
		}
		return apperr.Internal("Failed to delete user.", err)
	}
	s.invalidateDashboard(ctx)
	return nil
}

type CreateStoreInput struct {
	Name    string
	Email   string
	Address string
	OwnerID string
}

// CreateStore creates a store for an owner-role user. A missing or
// wrong-role owner is a validation failure, not a 404; no row is inserted.
func (s *AdminService) CreateStore(ctx context.Context, in CreateStoreInput) (*entity.Store, error) {
	var col validation.Collector
	col.Check(validation.StoreNameRule(in.Name))
	col.Check(validation.Email(in.Email))
	col.Check(validation.Address(in.Address))
	if in.OwnerID == "" {
		col.Add("OwnerId required.")
	}
	if col.Failed() {
		return nil, apperr.Validation(col.Reasons())
	}

	owner, err := s.Users.GetByID(ctx, in.OwnerID)
	if err != nil && !errors.Is(err, postgres.ErrNotFound) {
		return nil, apperr.Internal("Failed to create store.", err)
	}
	if owner == nil || owner.Role != entity.RoleOwner {
		return nil, apperr.Validation([]string{"OwnerId must be a valid owner user."})
	}

	st := &entity.Store{Name: in.Name, Email: in.Email, Address: in.Address, OwnerID: in.OwnerID}
	if err := s.Stores.Create(ctx, st); err != nil {
		return nil, apperr.Internal("Failed to create store.", err)
	}
	s.Indexer.Index(ctx, st)
	s.invalidateDashboard(ctx)
	return st, nil
}

func (s *AdminService) ListStores(ctx context.Context, f repository.StoreFilter) ([]entity.Store, int64, error) {
	stores, total, err := s.Stores.List(ctx, f)
	if err != nil {
		return nil, 0, apperr.Internal("Failed to fetch stores.", err)
	}
	return stores, total, nil
}

func (s *AdminService) DeleteStore(ctx context.Context, id string) error {
	if err := s.Stores.Delete(ctx, id); err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			return apperr.NotFound("Store not found.")
		}
		return apperr.Internal("Failed to delete store.", err)
	}
	s.Indexer.Remove(ctx, id)
	s.invalidateDashboard(ctx)
	return nil
}

// UploadStoreLogo stores the image in GCS and records its public URL.
func (s *AdminService) UploadStoreLogo(ctx context.Context, storeID string, r io.Reader, filename, contentType string) (string, error) {
	if s.GCS == nil || s.Bucket == "" {
		return "", apperr.New(apperr.KindInternal, "Logo storage is not configured.")
	}
	st, err := s.Stores.GetByID(ctx, storeID)
	if err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			return "", apperr.NotFound("Store not found.")
		}
		return "", apperr.Internal("Failed to upload logo.", err)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("store-logos", st.ID, uuid.NewString()+ext))
	url, err := helpers.UploadObject(ctx, s.GCS, s.Bucket, objectPath, contentType, r)
	if err != nil {
		return "", apperr.Internal("Failed to upload logo.", err)
	}
	if err := s.Stores.SetLogoURL(ctx, st.ID, url); err != nil {
		return "", apperr.Internal("Failed to upload logo.", err)
	}
	return url, nil
}

// DashboardCounts is the admin dashboard rollup.
type DashboardCounts struct {
	Users   int64 `json:"users"`
	Stores  int64 `json:"stores"`
	Ratings int64 `json:"ratings"`
}

// Dashboard returns entity counts, served from a short-lived Redis cache
// when available. Briefly stale counts are acceptable.
func (s *AdminService) Dashboard(ctx context.Context) (*DashboardCounts, error) {
	if s.Redis != nil {
		var cached DashboardCounts
		if ok, err := helpers.RedisGetJSON(ctx, s.Redis, dashboardCacheKey, &cached); err == nil && ok {
			return &cached, nil
		}
	}

	var counts DashboardCounts
	var err error
	if counts.Users, err = s.Users.Count(ctx); err != nil {
		return nil, apperr.Internal("Failed to fetch dashboard stats.", err)
	}
	if counts.Stores, err = s.Stores.Count(ctx); err != nil {
		return nil, apperr.Internal("Failed to fetch dashboard stats.", err)
	}
	if counts.Ratings, err = s.Ratings.Count(ctx); err != nil {
		return nil, apperr.Internal("Failed to fetch dashboard stats.", err)
	}

	if s.Redis != nil {
		ttl := s.DashboardTTL
		if ttl <= 0 {
			ttl = 30 * time.Second
		}
		if err := helpers.RedisSetJSON(ctx, s.Redis, dashboardCacheKey, counts, ttl); err != nil && s.Logger != nil {
			s.Logger.WithError(err).Warn("dashboard cache write failed")
		}
	}
	return &counts, nil
}

func (s *AdminService) invalidateDashboard(ctx context.Context) {
	if s.Redis == nil {
		return
	}
	if err := helpers.RedisDel(ctx, s.Redis, dashboardCacheKey); err != nil && s.Logger != nil {
		s.Logger.WithError(err).Warn("dashboard cache invalidate failed")
	}
}
