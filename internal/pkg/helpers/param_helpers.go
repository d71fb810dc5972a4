package helpers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sembesalum/tu-chat-api/internal/pkg/apperrors"
)

// ParseIDParam reads a positive integer path parameter.
func ParseIDParam(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewBadRequestError(fmt.Sprintf("Invalid %s", name))
	}
	return id, nil
}

// OptionalInt64Query reads an optional positive integer query parameter. A
// missing or empty value yields nil.
func OptionalInt64Query(c *gin.Context, name string) (*int64, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, apperrors.NewBadRequestError(fmt.Sprintf("Invalid %s", name))
	}
	return &id, nil
}

// RequiredInt64Query reads a mandatory positive integer query parameter.
func RequiredInt64Query(c *gin.Context, name string) (int64, error) {
	id, err := OptionalInt64Query(c, name)
	if err != nil {
		return 0, err
	}
	if id == nil {
		return 0, apperrors.NewBadRequestError(fmt.Sprintf("%s is required", name))
	}
	return *id, nil
}
