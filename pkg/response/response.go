package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/store-rating-platform/pkg/apperr"
)

// Envelope is the uniform JSON shape wrapping every response:
// {success, message, data?, error?} with errors[] for validation failures.
type Envelope struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Data    any      `json:"data,omitempty"`
	Error   any      `json:"error,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

func Success(c *gin.Context, status int, data any, message string) {
	if status == 0 {
		status = http.StatusOK
	}
	c.JSON(status, Envelope{Success: true, Message: message, Data: data})
}

func Error(c *gin.Context, status int, message string, err any) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	c.JSON(status, Envelope{Success: false, Message: message, Error: err})
}

func ValidationError(c *gin.Context, reasons []string) {
	c.JSON(http.StatusBadRequest, Envelope{
		Success: false,
		Message: "Validation Error",
		Errors:  reasons,
	})
}

// FromError maps an application error onto the envelope. Internal failures
// keep a generic message for the caller; detail goes to the log only.
func FromError(c *gin.Context, logger *logrus.Logger, err error) {
	ae := apperr.AsError(err)
	if ae.Kind == apperr.KindValidation {
		ValidationError(c, ae.Reasons)
		return
	}
	if ae.Kind == apperr.KindInternal {
		if logger != nil {
			logger.WithFields(logrus.Fields{
				"request_id": c.GetString("request_id"),
				"path":       c.FullPath(),
			}).WithError(err).Error("request failed")
		}
		Error(c, http.StatusInternalServerError, "Internal Server Error", nil)
		return
	}
	Error(c, ae.Kind.HTTPStatus(), ae.Message, nil)
}

// Abort writes an error envelope and stops the handler chain. For use in
// middleware where later handlers must not run.
func Abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, Envelope{Success: false, Message: message})
}
