package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"library-backend/internal/shared/response"
	"library-backend/pkg/logger"
)

// Recovery converts a handler panic into the standard error envelope
// instead of a dropped connection.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Error("panic recovered", fmt.Errorf("request %s: %v", c.GetString("request_id"), rec))
				response.ErrorResponse(c, http.StatusInternalServerError, "Internal error", "Internal server error")
				c.Abort()
			}
		}()

		c.Next()
	}
}
