package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/store-rating-platform/internal/application"
	"github.com/oksasatya/store-rating-platform/internal/domain/entity"
	"github.com/oksasatya/store-rating-platform/internal/domain/repository"
	"github.com/oksasatya/store-rating-platform/pkg/response"
	"github.com/oksasatya/store-rating-platform/pkg/validation"
)

type AdminHandler struct {
	Svc    *application.AdminService
	Logger *logrus.Logger
}

func NewAdminHandler(svc *application.AdminService, logger *logrus.Logger) *AdminHandler {
	return &AdminHandler{Svc: svc, Logger: logger}
}

type createUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Address  string `json:"address"`
	Role     string `json:"role"`
}

type createStoreRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
	OwnerID string `json:"ownerId"`
}

func pageParams(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	return page, limit
}

func (h *AdminHandler) CreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, validation.BindingReasons(err))
		return
	}
	_, err := h.Svc.CreateUser(c.Request.Context(), application.CreateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Address:  req.Address,
		Role:     req.Role,
	})
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{}, "User created.")
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	page, limit := pageParams(c)
	users, total, err := h.Svc.ListUsers(c.Request.Context(), repository.UserFilter{
		Name:  c.Query("name"),
		Email: c.Query("email"),
		Role:  entity.Role(c.Query("role")),
		Page:  page,
		Limit: limit,
	})
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	views := make([]gin.H, 0, len(users))
	for i := range users {
		views = append(views, userView(&users[i]))
	}
	response.Success(c, http.StatusOK, gin.H{
		"total": total,
		"page":  page,
		"users": views,
	}, "Success")
}

// GetUser returns one user; for owners the payload includes the average
// rating across all of their stores.
func (h *AdminHandler) GetUser(c *gin.Context) {
	detail, err := h.Svc.GetUserDetail(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	view := userView(detail.User)
	if detail.User.Role == entity.RoleOwner {
		view["rating"] = formatAverage(detail.AverageRating)
	}
	response.Success(c, http.StatusOK, view, "Success")
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	if err := h.Svc.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{}, "User deleted.")
}

func (h *AdminHandler) CreateStore(c *gin.Context) {
	var req createStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, validation.BindingReasons(err))
		return
	}
	_, err := h.Svc.CreateStore(c.Request.Context(), application.CreateStoreInput{
		Name:    req.Name,
		Email:   req.Email,
		Address: req.Address,
		OwnerID: req.OwnerID,
	})
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{}, "Store created.")
}

func (h *AdminHandler) ListStores(c *gin.Context) {
	page, limit := pageParams(c)
	stores, total, err := h.Svc.ListStores(c.Request.Context(), repository.StoreFilter{
		Name:    c.Query("name"),
		Email:   c.Query("email"),
		Address: c.Query("address"),
		Page:    page,
		Limit:   limit,
	})
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"total":  total,
		"page":   page,
		"stores": storeViews(stores),
	}, "Success")
}

func (h *AdminHandler) DeleteStore(c *gin.Context) {
	if err := h.Svc.DeleteStore(c.Request.Context(), c.Param("id")); err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{}, "Store deleted.")
}

// UploadStoreLogo accepts a multipart "logo" file and stores it in GCS.
func (h *AdminHandler) UploadStoreLogo(c *gin.Context) {
	fh, err := c.FormFile("logo")
	if err != nil {
		response.ValidationError(c, []string{"Logo file required."})
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Failed to read logo file.", nil)
		return
	}
	defer func() { _ = f.Close() }()

	url, err := h.Svc.UploadStoreLogo(c.Request.Context(), c.Param("id"), f,
		fh.Filename, fh.Header.Get("Content-Type"))
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"logoUrl": url}, "Logo uploaded.")
}

func (h *AdminHandler) Dashboard(c *gin.Context) {
	counts, err := h.Svc.Dashboard(c.Request.Context())
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, counts, "Success")
}
