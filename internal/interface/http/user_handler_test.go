package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/store-rating-platform/internal/application"
	"github.com/oksasatya/store-rating-platform/internal/domain/entity"
	"github.com/oksasatya/store-rating-platform/internal/domain/repository"
	"github.com/oksasatya/store-rating-platform/internal/infrastructure/postgres"
	"github.com/oksasatya/store-rating-platform/internal/interface/middleware"
	"github.com/oksasatya/store-rating-platform/pkg/helpers"
	"github.com/oksasatya/store-rating-platform/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubStoreRepo knows a single store; everything else is unused by the
// rating flow.
type stubStoreRepo struct {
	store entity.Store
}

func (r *stubStoreRepo) Create(context.Context, *entity.Store) error { return nil }
func (r *stubStoreRepo) GetByID(_ context.Context, id string) (*entity.Store, error) {
	if id != r.store.ID {
		return nil, postgres.ErrNotFound
	}
	cp := r.store
	return &cp, nil
}
func (r *stubStoreRepo) List(context.Context, repository.StoreFilter) ([]entity.Store, int64, error) {
	return nil, 0, nil
}
func (r *stubStoreRepo) ListByOwner(context.Context, string) ([]entity.Store, error) {
	return nil, nil
}
func (r *stubStoreRepo) ListWithUserRating(context.Context, string, repository.ListingSort) ([]entity.StoreListing, error) {
	return nil, nil
}
func (r *stubStoreRepo) Search(context.Context, string) ([]entity.Store, error) { return nil, nil }
func (r *stubStoreRepo) SetLogoURL(context.Context, string, string) error       { return nil }
func (r *stubStoreRepo) Delete(context.Context, string) error                   { return nil }
func (r *stubStoreRepo) Count(context.Context) (int64, error)                   { return 0, nil }

type stubRatingRepo struct {
	ratings map[string]int
}

func (r *stubRatingRepo) Upsert(_ context.Context, userID, storeID string, rating int) (bool, error) {
	if r.ratings == nil {
		r.ratings = map[string]int{}
	}
	key := userID + "|" + storeID
	_, exists := r.ratings[key]
	r.ratings[key] = rating
	return !exists, nil
}
func (r *stubRatingRepo) StatsByOwner(context.Context, string) ([]entity.StoreStats, error) {
	return nil, nil
}
func (r *stubRatingRepo) RatersByOwner(context.Context, string) ([]entity.StoreRater, error) {
	return nil, nil
}
func (r *stubRatingRepo) AverageByOwner(context.Context, string) (*float64, error) {
	return nil, nil
}
func (r *stubRatingRepo) Count(context.Context) (int64, error) { return 0, nil }

func newRateRouter(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	jwt := helpers.NewJWTManager("test-secret", time.Hour)
	svc := application.NewStoreService(
		&stubStoreRepo{store: entity.Store{ID: "s-1", Name: "Corner Shop"}},
		&stubRatingRepo{}, nil, nil,
	)
	h := NewUserHandler(svc, nil)

	r := gin.New()
	grp := r.Group("/api/user", middleware.Auth(jwt))
	grp.POST("/stores/:id/rate", h.Rate)

	token, _, err := jwt.IssueToken(entity.Identity{UserID: "u-1", Role: entity.RoleUser})
	require.NoError(t, err)
	return r, token
}

func postRating(r *gin.Engine, token, storeID, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/user/stores/"+storeID+"/rate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRate_SubmitThenUpdate(t *testing.T) {
	r, token := newRateRouter(t)

	w := postRating(r, token, "s-1", `{"rating":4}`)
	assert.Equal(t, http.StatusOK, w.Code)
	var env response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, "Rating submitted.", env.Message)

	w = postRating(r, token, "s-1", `{"rating":2}`)
	assert.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, "Rating updated.", env.Message)
}

func TestRate_UnknownStore(t *testing.T) {
	r, token := newRateRouter(t)

	w := postRating(r, token, "missing", `{"rating":4}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	var env response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, "Store not found.", env.Message)
}

func TestRate_OutOfRange(t *testing.T) {
	r, token := newRateRouter(t)

	w := postRating(r, token, "s-1", `{"rating":6}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var env response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Contains(t, env.Errors, "Rating must be between 1 and 5.")
}

func TestRate_RequiresToken(t *testing.T) {
	r, _ := newRateRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/user/stores/s-1/rate", strings.NewReader(`{"rating":4}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
