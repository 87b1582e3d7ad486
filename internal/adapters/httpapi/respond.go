package httpapi

import (
	"errors"

	apperrors "gavel-auction-service/internal/errors"

	"github.com/gin-gonic/gin"
)

// respondError maps an error to the wire format. Classified errors carry
// their own status and code; anything else is reported as internal without
// leaking the underlying cause.
func respondError(c *gin.Context, err error) {
	status := apperrors.StatusCode(err)
	code := apperrors.ErrorCode(err)

	message := "internal server error"
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Kind != apperrors.KindInternal {
		message = appErr.Message
	}

	c.AbortWithStatusJSON(status, gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

func respondJSON(c *gin.Context, status int, payload interface{}) {
	c.JSON(status, payload)
}

func invalidPayload(c *gin.Context, err error) {
	respondError(c, apperrors.NewBadRequestError("INVALID_PAYLOAD", "request body is malformed: "+err.Error()))
}

func invalidIDParam(c *gin.Context, name string) {
	respondError(c, apperrors.NewBadRequestError("INVALID_ID", name+" must be a valid UUID"))
}
