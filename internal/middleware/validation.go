package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/sembesalum/tu-chat-api/internal/app/models/dto"
	"github.com/sembesalum/tu-chat-api/internal/app/models/dto/enums"
)

// HandleValidationError converts a binding error into the 400 response body.
// Only the first field error is reported.
func HandleValidationError(err error) *dto.ErrorResponse {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = formatValidationError(fe)
		}
		return dto.NewErrorResponse(enums.ErrorCodeValidationFailed, formatValidationError(verrs[0])).WithDetails(fields)
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	var numErr *strconv.NumError
	switch {
	case errors.As(err, &syntaxErr):
		return dto.NewErrorResponse(enums.ErrorCodeBadRequest, "Malformed JSON body")
	case errors.As(err, &typeErr):
		return dto.NewErrorResponse(enums.ErrorCodeValidationFailed, fmt.Sprintf("%s has the wrong type", typeErr.Field))
	case errors.As(err, &numErr):
		return dto.NewErrorResponse(enums.ErrorCodeValidationFailed, fmt.Sprintf("%q is not a valid number", numErr.Num))
	default:
		return dto.NewErrorResponse(enums.ErrorCodeBadRequest, "Invalid request format")
	}
}

// AbortWithValidationError writes the 400 response for a binding error.
// Bodies cut off by BodyLimit get 413 instead.
func AbortWithValidationError(c *gin.Context, err error) {
	if IsBodyTooLarge(err) {
		HandleAPIError(c, ErrBodyTooLarge)
		c.Abort()
		return
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, HandleValidationError(err))
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "gte":
		return e.Field() + " must be greater than or equal to " + e.Param()
	case "email":
		return e.Field() + " must be a valid email address"
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	case "datetime":
		return e.Field() + " must be a date formatted as YYYY-MM-DD"
	case "clock":
		return e.Field() + " must be a time formatted as HH:MM"
	case "username":
		return e.Field() + " may only contain letters, digits and @.+-_"
	case "phone":
		return e.Field() + " must be a valid phone number"
	case "material_type":
		return "Invalid material type"
	case "product_category":
		return "Invalid product category"
	case "interaction_policy":
		return e.Field() + " must be everyone or admins_only"
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}
