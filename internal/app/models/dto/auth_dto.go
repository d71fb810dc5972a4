package dto

// RegisterRequest represents a registration under the directory hierarchy.
// The three names are resolved scoped to their parent.
type RegisterRequest struct {
	UniversityName string `json:"university_name" binding:"required" example:"University of Dar es Salaam"`
	CampusName     string `json:"campus_name" binding:"required" example:"Mwalimu Nyerere"`
	CourseName     string `json:"course_name" binding:"required" example:"Computer Science"`
	Username       string `json:"username" binding:"required,max=150,username" example:"alice"`
	Email          string `json:"email" binding:"required,email,max=254" example:"alice@udsm.ac.tz"`
	Password       string `json:"password" binding:"required,min=8" example:"s3cret-pass"`
	PhoneNumber    string `json:"phone_number" binding:"omitempty,phone" example:"+255712345678"`
}

// RegisterResponse is returned with 201 after a successful registration
type RegisterResponse struct {
	Token  string `json:"token"`
	Email  string `json:"email"`
	UserID int64  `json:"user_id"`
}

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued token and the caller's profile
type LoginResponse struct {
	UserID  int64           `json:"user_id"`
	Token   string          `json:"token"`
	Profile ProfileResponse `json:"profile"`
}

// TokenInfoResponse describes the owner of a valid token
type TokenInfoResponse struct {
	UserID   int64  `json:"user_id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

// RequestOTPRequest starts a password reset
type RequestOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// VerifyOTPRequest confirms a password reset code
type VerifyOTPRequest struct {
	Email   string `json:"email" binding:"required,email"`
	OTPCode string `json:"otp_code" binding:"required,len=6,numeric" example:"482913"`
}

// ResetPasswordRequest sets a new password once the OTP is verified
type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}
