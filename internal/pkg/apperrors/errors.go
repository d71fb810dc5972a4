package apperrors

import "errors"

// Error kinds. Every error returned by a service wraps exactly one of these.
var (
	ErrResourceNotFound = errors.New("resource not found")
	ErrConflict         = errors.New("conflict")
	ErrValidationFailed = errors.New("validation failed")
	ErrPermissionDenied = errors.New("permission denied")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrPayloadTooLarge  = errors.New("payload too large")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenNotFound      = errors.New("token not found")
)

// Domain errors
var (
	ErrUserNotFound         = NewResourceNotFoundError("User not found")
	ErrUsernameExists       = NewConflictError("Username already exists")
	ErrEmailExists          = NewConflictError("Email already exists")
	ErrInvalidUniversity    = NewResourceNotFoundError("Invalid university selection")
	ErrInvalidCampus        = NewResourceNotFoundError("Invalid campus selection")
	ErrInvalidCourse        = NewResourceNotFoundError("Invalid course selection")
	ErrOTPAlreadyUsed       = NewConflictError("OTP has already been used")
	ErrOTPInvalid           = NewBadRequestError("Invalid email or OTP")
	ErrOTPExpired           = NewBadRequestError("OTP has expired")
	ErrOTPNotVerified       = NewBadRequestError("OTP has not been verified")
	ErrNoMessages           = NewResourceNotFoundError("No messages found")
	ErrActingForAnotherUser = NewForbiddenError("You cannot act on behalf of another user")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrPermissionDenied,
		Message: message,
	}
}

// NewBadRequestError creates a new custom error for validation failures with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}
}

// NewPayloadTooLargeError creates a new custom error for oversized request bodies
func NewPayloadTooLargeError(message string) error {
	return &CustomError{
		Err:     ErrPayloadTooLarge,
		Message: message,
	}
}

// NewUnauthorizedError creates a new custom error for authentication failures with a message
func NewUnauthorizedError(message string) error {
	return &CustomError{
		Err:     ErrUnauthorized,
		Message: message,
	}
}

// Is returns whether err matches target or any of errList.
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// Message returns the client-facing message carried by err, or "" when err
// carries none.
func Message(err error) string {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce.Message
	}
	return ""
}
