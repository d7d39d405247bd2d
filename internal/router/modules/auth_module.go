package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/store-rating-platform/internal/container"
	handlers "github.com/oksasatya/store-rating-platform/internal/interface/http"
	"github.com/oksasatya/store-rating-platform/internal/interface/middleware"
	"github.com/oksasatya/store-rating-platform/pkg/helpers"
)

// AuthModule registers registration, login, and the authenticated account
// routes under /api/auth.
type AuthModule struct {
	Handler *handlers.AuthHandler
	JWT     *helpers.JWTManager
}

func NewAuthModule(h *handlers.AuthHandler, jwt *helpers.JWTManager) *AuthModule {
	return &AuthModule{Handler: h, JWT: jwt}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	registerLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), nil)

	rg.POST("/auth/register", registerLimiter, m.Handler.Register)
	rg.POST("/auth/login", loginLimiter, m.Handler.Login)

	auth := rg.Group("/auth")
	auth.Use(middleware.Auth(m.JWT))
	{
		auth.PUT("/password", m.Handler.ChangePassword)
		auth.POST("/logout", m.Handler.Logout)
	}
}
