package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/store-rating-platform/internal/domain/entity"
	"github.com/oksasatya/store-rating-platform/pkg/helpers"
	"github.com/oksasatya/store-rating-platform/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newAuthRouter(jwt *helpers.JWTManager, roles ...entity.Role) *gin.Engine {
	r := gin.New()
	mws := []gin.HandlerFunc{Auth(jwt)}
	if len(roles) > 0 {
		mws = append(mws, RequireRole(roles...))
	}
	grp := r.Group("/", mws...)
	grp.GET("/me", func(c *gin.Context) {
		id, _ := IdentityFrom(c)
		c.JSON(http.StatusOK, gin.H{"userId": id.UserID, "role": id.Role})
	})
	return r
}

func doGet(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuth_MissingToken(t *testing.T) {
	r := newAuthRouter(helpers.NewJWTManager("test-secret", time.Hour))

	w := doGet(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var env response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.False(t, env.Success)
	assert.Equal(t, "No token provided.", env.Message)
}

func TestAuth_MalformedHeader(t *testing.T) {
	r := newAuthRouter(helpers.NewJWTManager("test-secret", time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Token abc")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_InvalidToken(t *testing.T) {
	r := newAuthRouter(helpers.NewJWTManager("test-secret", time.Hour))

	w := doGet(r, "garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var env response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, "Invalid or expired token.", env.Message)
}

func TestAuth_ValidTokenInjectsIdentity(t *testing.T) {
	jwt := helpers.NewJWTManager("test-secret", time.Hour)
	r := newAuthRouter(jwt)

	token, _, err := jwt.IssueToken(entity.Identity{UserID: "u-1", Role: entity.RoleUser})
	require.NoError(t, err)

	w := doGet(r, token)
	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "u-1", body["userId"])
	assert.Equal(t, "user", body["role"])
}

func TestRequireRole_WrongRoleIs403Not401(t *testing.T) {
	jwt := helpers.NewJWTManager("test-secret", time.Hour)
	r := newAuthRouter(jwt, entity.RoleAdmin)

	token, _, err := jwt.IssueToken(entity.Identity{UserID: "u-1", Role: entity.RoleUser})
	require.NoError(t, err)

	w := doGet(r, token)
	assert.Equal(t, http.StatusForbidden, w.Code)

	var env response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, "Forbidden: insufficient role.", env.Message)
}

func TestRequireRole_AllowedRole(t *testing.T) {
	jwt := helpers.NewJWTManager("test-secret", time.Hour)
	r := newAuthRouter(jwt, entity.RoleOwner)

	token, _, err := jwt.IssueToken(entity.Identity{UserID: "u-9", Role: entity.RoleOwner})
	require.NoError(t, err)

	w := doGet(r, token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRole_NoTokenAtAll(t *testing.T) {
	jwt := helpers.NewJWTManager("test-secret", time.Hour)
	r := newAuthRouter(jwt, entity.RoleAdmin)

	w := doGet(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
