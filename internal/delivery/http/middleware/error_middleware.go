package middleware

import (
	"errors"
	"net/http"

	"go-staffing-backend/internal/delivery/http/response"
	"go-staffing-backend/pkg/apperror"
	"go-staffing-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ErrorHandler translates errors appended to the gin context into the JSON
// envelope. Typed workflow failures carry their own HTTP status; anything
// else is logged server-side and reported as a generic 500 so internal
// details never reach clients.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err
			var appErr *apperror.AppError
			if errors.As(err, &appErr) {
				if appErr.Code >= http.StatusInternalServerError {
					logger.Log.Error("request failed", "path", c.FullPath(), "error", appErr.Unwrap())
				}
				response.Error(c, appErr.Code, appErr.Message, nil)
			} else {
				logger.Log.Error("unhandled error", "path", c.FullPath(), "error", err)
				response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
			}
		}
	}
}
