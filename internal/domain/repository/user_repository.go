package repository

import (
	"context"

	"github.com/oksasatya/store-rating-platform/internal/domain/entity"
)

// UserFilter narrows admin user listings. Name and Email are substring
// matches; Role is exact.
type UserFilter struct {
	Name  string
	Email string
	Role  entity.Role
	Page  int
	Limit int
}

// UserRepository defines user persistence operations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	List(ctx context.Context, f UserFilter) ([]entity.User, int64, error)
	// UpdatePassword writes a new password hash; the only path that touches
	// the stored credential.
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}
