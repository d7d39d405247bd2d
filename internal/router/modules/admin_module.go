package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/store-rating-platform/internal/domain/entity"
	handlers "github.com/oksasatya/store-rating-platform/internal/interface/http"
	"github.com/oksasatya/store-rating-platform/internal/interface/middleware"
	"github.com/oksasatya/store-rating-platform/pkg/helpers"
)

// AdminModule registers the admin-only management routes under /api/admin.
type AdminModule struct {
	Handler *handlers.AdminHandler
	JWT     *helpers.JWTManager
}

func NewAdminModule(h *handlers.AdminHandler, jwt *helpers.JWTManager) *AdminModule {
	return &AdminModule{Handler: h, JWT: jwt}
}

func (m *AdminModule) Register(rg *gin.RouterGroup) {
	admin := rg.Group("/admin")
	admin.Use(middleware.Auth(m.JWT), middleware.RequireRole(entity.RoleAdmin))
	{
		admin.POST("/users", m.Handler.CreateUser)
		admin.GET("/users", m.Handler.ListUsers)
		admin.GET("/users/:id", m.Handler.GetUser)
		admin.DELETE("/users/:id", m.Handler.DeleteUser)

		admin.POST("/stores", m.Handler.CreateStore)
		admin.GET("/stores", m.Handler.ListStores)
		admin.DELETE("/stores/:id", m.Handler.DeleteStore)
		admin.POST("/stores/:id/logo", m.Handler.UploadStoreLogo)

		admin.GET("/dashboard", m.Handler.Dashboard)
	}
}
