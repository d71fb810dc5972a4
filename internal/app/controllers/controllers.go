// Package controllers handles HTTP request handling
package controllers

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sembesalum/tu-chat-api/internal/app/models/dto"
	"github.com/sembesalum/tu-chat-api/internal/middleware"
	"github.com/sembesalum/tu-chat-api/internal/pkg/apperrors"
)

// optionalFile returns the uploaded part named field, or nil when the request
// carries none. Parts over the upload limit are rejected.
func optionalFile(ctx *gin.Context, field string) (*multipart.FileHeader, error) {
	fh, err := ctx.FormFile(field)
	switch {
	case err == nil:
		if limit := middleware.UploadLimit(ctx); limit > 0 && fh.Size > limit {
			return nil, apperrors.NewPayloadTooLargeError("File " + field + " exceeds the upload limit")
		}
		return fh, nil
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		return nil, nil
	case middleware.IsBodyTooLarge(err):
		return nil, middleware.ErrBodyTooLarge
	default:
		return nil, apperrors.NewBadRequestError("Invalid upload in field " + field)
	}
}

// callerID returns the authenticated user; routes using it sit behind JWTAuth
func callerID(ctx *gin.Context) (int64, bool) {
	id, ok := middleware.CurrentUserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.NewUnauthorizedError("Authentication credentials were not provided."))
	}
	return id, ok
}

func respondOK(ctx *gin.Context, data interface{}, message string) {
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(data, message))
}

func respondCreated(ctx *gin.Context, data interface{}, message string) {
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(data, message))
}

// bindOptional binds the request body into obj; an empty body leaves obj untouched
func bindOptional(ctx *gin.Context, obj interface{}) error {
	if err := ctx.ShouldBind(obj); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
