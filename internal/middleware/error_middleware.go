package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sembesalum/tu-chat-api/internal/app/models/dto"
	"github.com/sembesalum/tu-chat-api/internal/app/models/dto/enums"
	"github.com/sembesalum/tu-chat-api/internal/pkg/apperrors"
	"github.com/sembesalum/tu-chat-api/internal/pkg/logger"
)

type errorKind struct {
	target  error
	status  int
	code    enums.ErrorCode
	message string
}

// Checked in order; the first kind err wraps decides the response.
var errorKinds = []errorKind{
	{apperrors.ErrValidationFailed, http.StatusBadRequest, enums.ErrorCodeValidationFailed, "Validation failed"},
	{apperrors.ErrPayloadTooLarge, http.StatusRequestEntityTooLarge, enums.ErrorCodePayloadTooLarge, "Request body too large"},
	{apperrors.ErrResourceNotFound, http.StatusNotFound, enums.ErrorCodeResourceNotFound, "Resource not found"},
	{apperrors.ErrConflict, http.StatusConflict, enums.ErrorCodeConflict, "Resource already exists"},
	{apperrors.ErrPermissionDenied, http.StatusForbidden, enums.ErrorCodeForbidden, "Permission denied"},
	{apperrors.ErrInvalidCredentials, http.StatusUnauthorized, enums.ErrorCodeInvalidCredentials, "Invalid credentials"},
	{apperrors.ErrTokenExpired, http.StatusUnauthorized, enums.ErrorCodeExpiredToken, "Token expired"},
	{apperrors.ErrTokenNotFound, http.StatusUnauthorized, enums.ErrorCodeTokenNotFound, "Token not found"},
	{apperrors.ErrTokenInvalid, http.StatusUnauthorized, enums.ErrorCodeInvalidToken, "Invalid token"},
	{apperrors.ErrUnauthorized, http.StatusUnauthorized, enums.ErrorCodeUnauthorized, "Authentication required"},
}

// HandleAPIError writes the error response for err
func HandleAPIError(c *gin.Context, err error) {
	for _, k := range errorKinds {
		if !errors.Is(err, k.target) {
			continue
		}
		message := apperrors.Message(err)
		if message == "" {
			message = k.message
		}
		resp := dto.NewErrorResponse(k.code, message)
		var ce *apperrors.CustomError
		if errors.As(err, &ce) && ce.Details != nil {
			resp = resp.WithDetails(ce.Details)
		}
		c.JSON(k.status, resp)
		return
	}

	logger.Error().Err(err).
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Msg("Unhandled error")
	c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(enums.ErrorCodeInternalServer, "Internal server error"))
}

// Recovery turns panics into the standard 500 response
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error().Interface("panic", recovered).Str("path", c.Request.URL.Path).Msg("Recovered from panic")
		c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponse(enums.ErrorCodeInternalServer, "Internal server error"))
	})
}

// NoRoute answers unknown paths with the standard 404 body
func NoRoute(c *gin.Context) {
	c.JSON(http.StatusNotFound, dto.NewErrorResponse(enums.ErrorCodeResourceNotFound, "Not found"))
}
