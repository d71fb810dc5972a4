package enums

// ErrorCode is the machine-readable code carried in every error body.
type ErrorCode string

// Authentication
const (
	ErrorCodeInvalidCredentials ErrorCode = "AUTH_001"
	ErrorCodeInvalidToken       ErrorCode = "AUTH_005"
	ErrorCodeExpiredToken       ErrorCode = "AUTH_006"
	ErrorCodeTokenNotFound      ErrorCode = "AUTH_007"
	ErrorCodeUnauthorized       ErrorCode = "AUTH_008"
	ErrorCodeForbidden          ErrorCode = "FORBIDDEN"
)

// Resources and input
const (
	ErrorCodeResourceNotFound ErrorCode = "RES_001"
	ErrorCodeConflict         ErrorCode = "RES_004"
	ErrorCodeValidationFailed ErrorCode = "VAL_001"
	ErrorCodePayloadTooLarge  ErrorCode = "VAL_002"
	ErrorCodeBadRequest       ErrorCode = "BAD_REQUEST"
	ErrorCodeTooManyRequests  ErrorCode = "RATE_001"
)

const ErrorCodeInternalServer ErrorCode = "SRV_001"
