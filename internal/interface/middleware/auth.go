package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/store-rating-platform/internal/domain/entity"
	"github.com/oksasatya/store-rating-platform/pkg/helpers"
	"github.com/oksasatya/store-rating-platform/pkg/response"
)

const CtxIdentityKey = "identity"

// Auth validates the Authorization bearer token and injects the identity
// (user id + role) into the Gin context. A missing, malformed, or expired
// token fails with 401; role checks happen separately in RequireRole.
func Auth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			response.Abort(c, http.StatusUnauthorized, "No token provided.")
			return
		}
		token := strings.TrimPrefix(header, "Bearer ")
		id, err := jwt.ValidateToken(token)
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, "Invalid or expired token.")
			return
		}
		c.Set(CtxIdentityKey, id)
		c.Next()
	}
}

// IdentityFrom reads the authenticated identity set by Auth. Handlers use
// this exclusively; caller identity never comes from request bodies.
func IdentityFrom(c *gin.Context) (entity.Identity, bool) {
	v, ok := c.Get(CtxIdentityKey)
	if !ok {
		return entity.Identity{}, false
	}
	id, ok := v.(entity.Identity)
	return id, ok
}

// RequireRole rejects authenticated identities whose role is not in the
// allowed set. Wrong role on a valid token is 403, distinct from the 401
// produced by Auth.
func RequireRole(roles ...entity.Role) gin.HandlerFunc {
	allowed := make(map[entity.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		id, ok := IdentityFrom(c)
		if !ok {
			response.Abort(c, http.StatusUnauthorized, "No token provided.")
			return
		}
		if _, ok := allowed[id.Role]; !ok {
			response.Abort(c, http.StatusForbidden, "Forbidden: insufficient role.")
			return
		}
		c.Next()
	}
}
