package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/store-rating-platform/internal/application"
	"github.com/oksasatya/store-rating-platform/internal/interface/middleware"
	"github.com/oksasatya/store-rating-platform/pkg/response"
)

type OwnerHandler struct {
	Svc    *application.OwnerService
	Logger *logrus.Logger
}

func NewOwnerHandler(svc *application.OwnerService, logger *logrus.Logger) *OwnerHandler {
	return &OwnerHandler{Svc: svc, Logger: logger}
}

// Ratings lists the raters of the owner's stores. The owner is always the
// authenticated caller; there is no way to query another owner's stores.
func (h *OwnerHandler) Ratings(c *gin.Context) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		response.Abort(c, http.StatusUnauthorized, "No token provided.")
		return
	}
	raters, err := h.Svc.Raters(c.Request.Context(), id.UserID)
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	views := make([]gin.H, 0, len(raters))
	for i := range raters {
		views = append(views, raterView(&raters[i]))
	}
	response.Success(c, http.StatusOK, views, "Success")
}

// Stats returns the per-store average and count for each owned store.
func (h *OwnerHandler) Stats(c *gin.Context) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		response.Abort(c, http.StatusUnauthorized, "No token provided.")
		return
	}
	stats, err := h.Svc.Stats(c.Request.Context(), id.UserID)
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	views := make([]gin.H, 0, len(stats))
	for i := range stats {
		views = append(views, statsView(&stats[i]))
	}
	response.Success(c, http.StatusOK, views, "Success")
}
