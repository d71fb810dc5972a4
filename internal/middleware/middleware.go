package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/sembesalum/tu-chat-api/internal/pkg/helpers"
)

// BaseURL stores the request's scheme and host so services can render
// absolute media URLs.
func BaseURL() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := helpers.WithBaseURL(c.Request.Context(), helpers.RequestBaseURL(c.Request))
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
