package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/store-rating-platform/internal/container"
	handlers "github.com/oksasatya/store-rating-platform/internal/interface/http"
	"github.com/oksasatya/store-rating-platform/internal/interface/middleware"
	"github.com/oksasatya/store-rating-platform/pkg/helpers"
)

// UserModule registers the authenticated store browsing and rating routes
// under /api/user. Any valid identity may use them regardless of role.
type UserModule struct {
	Handler *handlers.UserHandler
	JWT     *helpers.JWTManager
}

func NewUserModule(h *handlers.UserHandler, jwt *helpers.JWTManager) *UserModule {
	return &UserModule{Handler: h, JWT: jwt}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	user := rg.Group("/user")
	user.Use(middleware.Auth(m.JWT))
	user.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUser(), middleware.AllowPrivateIP()))
	{
		user.GET("/stores", m.Handler.ListStores)
		user.GET("/stores/search", m.Handler.Search)
		user.POST("/stores/:id/rate", m.Handler.Rate)
	}
}
