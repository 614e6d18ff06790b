package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/IkingariSolorzano/gymcredit-be/apperrors"
)

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Code    apperrors.ErrorCode `json:"code"`
	Message string              `json:"message"`
}

func Error(c *gin.Context, status int, code apperrors.ErrorCode, message string) {
	c.JSON(status, ErrorBody{Code: code, Message: message})
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, apperrors.ErrCodeValidation, message)
}

func Unauthorized(c *gin.Context) {
	Error(c, http.StatusUnauthorized, apperrors.ErrCodeUnauthorized, "Unauthorized")
}

func Forbidden(c *gin.Context) {
	Error(c, http.StatusForbidden, apperrors.ErrCodeForbidden, "Forbidden")
}

// FromError writes err as a JSON error. Anything that is not an *AppError is
// treated as an internal error. 5xx causes are logged, never sent.
func FromError(c *gin.Context, log logrus.FieldLogger, err error) {
	appErr, ok := apperrors.As(err)
	if !ok {
		appErr = apperrors.Internal(err)
	}
	if appErr.Status >= http.StatusInternalServerError {
		entry := log.WithField("path", c.FullPath())
		if rid, exists := c.Get("request_id"); exists {
			entry = entry.WithField("requestId", rid)
		}
		entry.WithError(appErr.Err).Error(appErr.Message)
	}
	Error(c, appErr.Status, appErr.Code, appErr.Message)
}
