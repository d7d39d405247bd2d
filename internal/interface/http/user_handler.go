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

type UserHandler struct {
	Svc    *application.StoreService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.StoreService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type rateRequest struct {
	Rating int `json:"rating"`
}

// ListStores returns every store with the overall average and the caller's
// own rating. sort=rating with order=asc|desc overrides the default
// newest-first ordering.
func (h *UserHandler) ListStores(c *gin.Context) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		response.Abort(c, http.StatusUnauthorized, "No token provided.")
		return
	}
	sort := application.ParseListingSort(c.Query("sort"), c.Query("order"))
	listings, err := h.Svc.ListStores(c.Request.Context(), id.UserID, sort)
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	views := make([]gin.H, 0, len(listings))
	for i := range listings {
		views = append(views, listingView(&listings[i]))
	}
	response.Success(c, http.StatusOK, views, "Success")
}

// Rate upserts the caller's rating for the store in the URL. The user comes
// from the token and the store from the path; the body carries only the
// rating value.
func (h *UserHandler) Rate(c *gin.Context) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		response.Abort(c, http.StatusUnauthorized, "No token provided.")
		return
	}
	var req rateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, validation.BindingReasons(err))
		return
	}
	created, err := h.Svc.SubmitRating(c.Request.Context(), id.UserID, c.Param("id"), req.Rating)
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	msg := "Rating updated."
	if created {
		msg = "Rating submitted."
	}
	response.Success(c, http.StatusOK, gin.H{"created": created}, msg)
}

func (h *UserHandler) Search(c *gin.Context) {
	stores, err := h.Svc.SearchStores(c.Request.Context(), c.Query("q"))
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, storeViews(stores), "Success")
}
