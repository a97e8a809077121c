package response

import (
	"github.com/gin-gonic/gin"
	domainerrors "customer-onboarding.backend/internal/domain/errors"
)

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Error sends an error response. Unclassified errors become 500 with the
// underlying message echoed to the caller.
func Error(c *gin.Context, err error) {
	appErr, ok := err.(*domainerrors.AppError)
	if !ok {
		appErr = domainerrors.InternalError(err)
	}

	c.JSON(appErr.Code, gin.H{
		"error": appErr.Message,
	})
}
