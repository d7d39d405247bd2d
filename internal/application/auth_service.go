package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/store-rating-platform/internal/domain/entity"
	"github.com/oksasatya/store-rating-platform/internal/domain/repository"
	"github.com/oksasatya/store-rating-platform/internal/infrastructure/postgres"
	"github.com/oksasatya/store-rating-platform/pkg/apperr"
	"github.com/oksasatya/store-rating-platform/pkg/helpers"
	"github.com/oksasatya/store-rating-platform/pkg/mailer"
	"github.com/oksasatya/store-rating-platform/pkg/validation"
)

// AuthService covers registration, login, and password changes.
type AuthService struct {
	Users  repository.UserRepository
	JWT    *helpers.JWTManager
	Rabbit *helpers.RabbitPublisher
	Logger *logrus.Logger
}

func NewAuthService(users repository.UserRepository, jwt *helpers.JWTManager, rabbit *helpers.RabbitPublisher, logger *logrus.Logger) *AuthService {
	return &AuthService{Users: users, JWT: jwt, Rabbit: rabbit, Logger: logger}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Address  string
}

// Register creates a self-service account with role "user". Every violated
// validation rule is reported, not just the first.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	var col validation.Collector
	col.Check(validation.Name(in.Name))
	col.Check(validation.Email(in.Email))
	col.Check(validation.Password(in.Password))
	col.Check(validation.Address(in.Address))
	if col.Failed() {
		return nil, apperr.Validation(col.Reasons())
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, apperr.Internal("Registration failed.", err)
	}

	u := &entity.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: hash,
		Address:  in.Address,
		Role:     entity.RoleUser,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, postgres.ErrDuplicateEmail) {
			return nil, apperr.Conflict("Email already registered.")
		}
		return nil, apperr.Internal("Registration failed.", err)
	}

	s.publishWelcomeEmail(ctx, u)
	return u, nil
}

// publishWelcomeEmail queues a welcome email job; delivery is handled by the
// email worker and never blocks or fails the registration.
func (s *AuthService) publishWelcomeEmail(ctx context.Context, u *entity.User) {
	if s.Rabbit == nil {
		return
	}
	job := mailer.EmailJob{
		To:       u.Email,
		Template: mailer.TemplateWelcome,
		Data:     map[string]any{"Name": u.Name},
	}
	if err := s.Rabbit.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("email", u.Email).Warn("welcome email publish failed")
	}
}

type LoginResult struct {
	User      *entity.User
	Token     string
	ExpiresAt time.Time
}

// Login verifies credentials and issues a bearer token carrying id and role.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			return nil, apperr.Unauthenticated("Invalid credentials.")
		}
		return nil, apperr.Internal("Login failed.", err)
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, apperr.Unauthenticated("Invalid credentials.")
	}
	token, exp, err := s.JWT.IssueToken(entity.Identity{UserID: u.ID, Role: u.Role})
	if err != nil {
		return nil, apperr.Internal("Login failed.", err)
	}
	return &LoginResult{User: u, Token: token, ExpiresAt: exp}, nil
}

// ChangePassword verifies the old password and re-hashes the new one exactly
// once. There is no generic save path that could skip or double-hash.
func (s *AuthService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error {
	var col validation.Collector
	if oldPassword == "" {
		col.Add("Old and new passwords are required.")
	}
	col.Check(validation.Password(newPassword))
	if col.Failed() {
		return apperr.Validation(col.Reasons())
	}

	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			return apperr.NotFound("User not found.")
		}
		return apperr.Internal("Password update failed.", err)
	}
	if !helpers.CompareHashAndPassword(u.Password, oldPassword) {
		return apperr.Unauthenticated("Old password is incorrect.")
	}

	hash, err := helpers.HashPassword(newPassword)
	if err != nil {
		return apperr.Internal("Password update failed.", err)
	}
	if err := s.Users.UpdatePassword(ctx, userID, hash); err != nil {
		return apperr.Internal("Password update failed.", err)
	}
	return nil
}
