package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/store-rating-platform/internal/domain/entity"
	handlers "github.com/oksasatya/store-rating-platform/internal/interface/http"
	"github.com/oksasatya/store-rating-platform/internal/interface/middleware"
	"github.com/oksasatya/store-rating-platform/pkg/helpers"
)

// OwnerModule registers the store-owner dashboard routes under
// /api/store-owner. Owner role only.
type OwnerModule struct {
	Handler *handlers.OwnerHandler
	JWT     *helpers.JWTManager
}

func NewOwnerModule(h *handlers.OwnerHandler, jwt *helpers.JWTManager) *OwnerModule {
	return &OwnerModule{Handler: h, JWT: jwt}
}

func (m *OwnerModule) Register(rg *gin.RouterGroup) {
	owner := rg.Group("/store-owner")
	owner.Use(middleware.Auth(m.JWT), middleware.RequireRole(entity.RoleOwner))
	{
		owner.GET("/ratings", m.Handler.Ratings)
		owner.GET("/stats", m.Handler.Stats)
	}
}
