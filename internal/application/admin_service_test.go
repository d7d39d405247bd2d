package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/store-rating-platform/internal/domain/entity"
	"github.com/oksasatya/store-rating-platform/internal/domain/repository"
	"github.com/oksasatya/store-rating-platform/pkg/apperr"
	"github.com/oksasatya/store-rating-platform/pkg/helpers"
)

type adminFixture struct {
	users   *fakeUserRepo
	stores  *fakeStoreRepo
	ratings *fakeRatingRepo
	svc     *AdminService
}

func newAdminFixture() *adminFixture {
	users := newFakeUserRepo()
	stores := newFakeStoreRepo()
	ratings := newFakeRatingRepo(stores)
	svc := NewAdminService(users, stores, ratings, nil, nil, "", nil, nil, 0)
	return &adminFixture{users: users, stores: stores, ratings: ratings, svc: svc}
}

func (f *adminFixture) addUser(t *testing.T, name, email string, role entity.Role) *entity.User {
	t.Helper()
	hash, err := helpers.HashPassword("Passw0rd!")
	require.NoError(t, err)
	u := &entity.User{Name: name, Email: email, Password: hash, Role: role}
	require.NoError(t, f.users.Create(context.Background(), u))
	return u
}

func TestAdminCreateUser_AnyRole(t *testing.T) {
	f := newAdminFixture()

	u, err := f.svc.CreateUser(context.Background(), CreateUserInput{
		Name:     "Olivia Katherine Shopkeeper",
		Email:    "olivia@example.com",
		Password: "Passw0rd!",
		Role:     "owner",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleOwner, u.Role)
}

func TestAdminCreateUser_InvalidRole(t *testing.T) {
	f := newAdminFixture()

	_, err := f.svc.CreateUser(context.Background(), CreateUserInput{
		Name:     "Olivia Katherine Shopkeeper",
		Email:    "olivia@example.com",
		Password: "Passw0rd!",
		Role:     "superadmin",
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	assert.Contains(t, apperr.AsError(err).Reasons, "Invalid role.")
}

func TestAdminListUsers_RoleFilter(t *testing.T) {
	f := newAdminFixture()
	f.addUser(t, "Alice Wonderland Accounts", "alice@example.com", entity.RoleUser)
	f.addUser(t, "Bob The Beverage Merchant", "bob@example.com", entity.RoleOwner)

	users, total, err := f.svc.ListUsers(context.Background(), repository.UserFilter{Role: entity.RoleOwner})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, users, 1)
	assert.Equal(t, "bob@example.com", users[0].Email)
}

func TestAdminListUsers_InvalidRoleFilter(t *testing.T) {
	f := newAdminFixture()

	_, _, err := f.svc.ListUsers(context.Background(), repository.UserFilter{Role: "wizard"})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestAdminGetUserDetail_OwnerIncludesAverage(t *testing.T) {
	f := newAdminFixture()
	owner := f.addUser(t, "Bob The Beverage Merchant", "bob@example.com", entity.RoleOwner)

	st := &entity.Store{Name: "Bob's Beverages", Email: "shop@example.com", OwnerID: owner.ID}
	require.NoError(t, f.stores.Create(context.Background(), st))
	_, err := f.ratings.Upsert(context.Background(), "u-rater", st.ID, 4)
	require.NoError(t, err)

	detail, err := f.svc.GetUserDetail(context.Background(), owner.ID)
	require.NoError(t, err)
	require.NotNil(t, detail.AverageRating)
	assert.InDelta(t, 4.0, *detail.AverageRating, 0.001)
}

func TestAdminGetUserDetail_OwnerWithoutRatings(t *testing.T) {
	f := newAdminFixture()
	owner := f.addUser(t, "Bob The Beverage Merchant", "bob@example.com", entity.RoleOwner)

	detail, err := f.svc.GetUserDetail(context.Background(), owner.ID)
	require.NoError(t, err)
	assert.Nil(t, detail.AverageRating, "no ratings means nil average, never zero")
}

func TestAdminGetUserDetail_NotFound(t *testing.T) {
	f := newAdminFixture()

	_, err := f.svc.GetUserDetail(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestAdminCreateStore_Success(t *testing.T) {
	f := newAdminFixture()
	owner := f.addUser(t, "Bob The Beverage Merchant", "bob@example.com", entity.RoleOwner)

	st, err := f.svc.CreateStore(context.Background(), CreateStoreInput{
		Name:    "Bob's Beverages",
		Email:   "shop@example.com",
		Address: "1 Market Square",
		OwnerID: owner.ID,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, st.ID)
	assert.Equal(t, owner.ID, st.OwnerID)
}

func TestAdminCreateStore_OwnerMustHaveOwnerRole(t *testing.T) {
	f := newAdminFixture()
	plain := f.addUser(t, "Alice Wonderland Accounts", "alice@example.com", entity.RoleUser)

	_, err := f.svc.CreateStore(context.Background(), CreateStoreInput{
		Name:    "Alice's Attic",
		Email:   "attic@example.com",
		OwnerID: plain.ID,
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	assert.Contains(t, apperr.AsError(err).Reasons, "OwnerId must be a valid owner user.")
	assert.Empty(t, f.stores.stores, "no store row on validation failure")
}

func TestAdminCreateStore_MissingOwner(t *testing.T) {
	f := newAdminFixture()

	_, err := f.svc.CreateStore(context.Background(), CreateStoreInput{
		Name:    "Ghost Grocery",
		Email:   "ghost@example.com",
		OwnerID: "nonexistent",
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestAdminDeleteUser_NotFound(t *testing.T) {
	f := newAdminFixture()

	err := f.svc.DeleteUser(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestAdminDeleteStore(t *testing.T) {
	f := newAdminFixture()
	owner := f.addUser(t, "Bob The Beverage Merchant", "bob@example.com", entity.RoleOwner)
	st := &entity.Store{Name: "Bob's Beverages", OwnerID: owner.ID}
	require.NoError(t, f.stores.Create(context.Background(), st))

	require.NoError(t, f.svc.DeleteStore(context.Background(), st.ID))
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(f.svc.DeleteStore(context.Background(), st.ID)))
}

func TestAdminDashboard_Counts(t *testing.T) {
	f := newAdminFixture()
	owner := f.addUser(t, "Bob The Beverage Merchant", "bob@example.com", entity.RoleOwner)
	f.addUser(t, "Alice Wonderland Accounts", "alice@example.com", entity.RoleUser)
	st := &entity.Store{Name: "Bob's Beverages", OwnerID: owner.ID}
	require.NoError(t, f.stores.Create(context.Background(), st))
	_, err := f.ratings.Upsert(context.Background(), "u-1", st.ID, 5)
	require.NoError(t, err)

	counts, err := f.svc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 2, counts.Users)
	assert.EqualValues(t, 1, counts.Stores)
	assert.EqualValues(t, 1, counts.Ratings)
}

func TestAdminUploadStoreLogo_Unconfigured(t *testing.T) {
	f := newAdminFixture()

	_, err := f.svc.UploadStoreLogo(context.Background(), "s-1", nil, "logo.png", "image/png")
	require.Error(t, err)
	assert.Equal(t, apperr.KindInternal, apperr.KindOf(err))
}
