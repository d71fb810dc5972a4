package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sembesalum/tu-chat-api/internal/pkg/apperrors"
)

const uploadLimitKey = "uploadLimit"

// ErrBodyTooLarge is returned for requests over the configured body cap
var ErrBodyTooLarge = apperrors.NewPayloadTooLargeError("Request body too large")

// BodyLimit caps request bodies at maxBytes. A declared Content-Length over
// the cap is rejected up front; other bodies fail on the first read past it.
// Zero disables the cap.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxBytes <= 0 {
			c.Next()
			return
		}
		if c.Request.ContentLength > maxBytes {
			HandleAPIError(c, ErrBodyTooLarge)
			c.Abort()
			return
		}
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Set(uploadLimitKey, maxBytes)
		c.Next()
	}
}

// UploadLimit returns the cap set by BodyLimit, or 0 when none applies
func UploadLimit(c *gin.Context) int64 {
	return c.GetInt64(uploadLimitKey)
}

// IsBodyTooLarge reports whether err came from reading past the body cap
func IsBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}
