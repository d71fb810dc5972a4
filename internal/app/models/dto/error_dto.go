package dto

import (
	"time"

	"github.com/sembesalum/tu-chat-api/internal/app/models/dto/enums"
)

// ErrorResponse represents the standard error response structure
type ErrorResponse struct {
	Success   bool            `json:"success" example:"false"`
	Error     string          `json:"error" example:"Invalid credentials"`
	Code      enums.ErrorCode `json:"code" example:"AUTH_001"`
	Details   interface{}     `json:"details,omitempty"`
	Timestamp time.Time       `json:"timestamp" example:"2025-04-23T12:01:05.123Z"`
}

// NewErrorResponse creates a standard error response
func NewErrorResponse(code enums.ErrorCode, message string) *ErrorResponse {
	return &ErrorResponse{
		Success:   false,
		Error:     message,
		Code:      code,
		Timestamp: time.Now(),
	}
}

// WithDetails adds additional details to the error
func (e *ErrorResponse) WithDetails(details interface{}) *ErrorResponse {
	e.Details = details
	return e
}
