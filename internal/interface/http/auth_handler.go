package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/store-rating-platform/internal/application"
	"github.com/oksasatya/store-rating-platform/internal/interface/middleware"
	"github.com/oksasatya/store-rating-platform/pkg/response"
	"github.com/oksasatya/store-rating-platform/pkg/validation"
)

type AuthHandler struct {
	Svc    *application.AuthService
	Logger *logrus.Logger
}

func NewAuthHandler(svc *application.AuthService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Address  string `json:"address"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// Register creates a self-service account; the role is always "user".
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, validation.BindingReasons(err))
		return
	}
	_, err := h.Svc.Register(c.Request.Context(), application.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Address:  req.Address,
	})
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{}, "User registered successfully.")
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, validation.BindingReasons(err))
		return
	}
	res, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"token":     res.Token,
		"expiresAt": res.ExpiresAt,
		"user": gin.H{
			"id":      res.User.ID,
			"name":    res.User.Name,
			"email":   res.User.Email,
			"address": res.User.Address,
			"role":    res.User.Role,
		},
	}, "Success")
}

// ChangePassword updates the caller's own password. The target user comes
// from the token, never from the payload.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		response.Abort(c, http.StatusUnauthorized, "No token provided.")
		return
	}
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, validation.BindingReasons(err))
		return
	}
	if err := h.Svc.ChangePassword(c.Request.Context(), id.UserID, req.OldPassword, req.NewPassword); err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{}, "Password updated successfully.")
}

// Logout acknowledges the logout; tokens are stateless so the client simply
// discards its copy.
func (h *AuthHandler) Logout(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{}, "Logged out successfully.")
}
