package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/sembesalum/tu-chat-api/internal/app/models/dto"
	"github.com/sembesalum/tu-chat-api/internal/app/services"
	"github.com/sembesalum/tu-chat-api/internal/middleware"
)

// AuthController handles authentication related operations
type AuthController struct {
	authService services.AuthService
	logger      zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService services.AuthService, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		logger:      logger,
	}
}

// Register handles user registration
// @Summary Register a new user
// @Description Creates a user with a profile under the named university, campus and course, and returns a token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Registration data"
// @Success 201 {object} dto.SuccessResponse{data=dto.RegisterResponse} "User registered"
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Failure 404 {object} dto.ErrorResponse "Unknown university, campus or course"
// @Failure 409 {object} dto.ErrorResponse "Username or email already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /register/ [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid registration request payload")
		middleware.AbortWithValidationError(ctx, err)
		return
	}

	resp, err := c.authService.Register(ctx.Request.Context(), &req)
	if err != nil {
		c.logger.Warn().Err(err).Str("email", req.Email).Msg("Registration failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondCreated(ctx, resp, "User registered successfully")
}

// Login handles user login
// @Summary User login
// @Description Authenticates with email and password and returns a token with the user's profile
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.SuccessResponse{data=dto.LoginResponse} "Login successful"
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 429 {object} dto.ErrorResponse "Too many requests"
// @Router /login/ [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithValidationError(ctx, err)
		return
	}

	resp, err := c.authService.Login(ctx.Request.Context(), &req)
	if err != nil {
		c.logger.Warn().Err(err).Str("email", req.Email).Msg("Login failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondOK(ctx, resp, "Login successful")
}

// Logout revokes the token the request was made with
// @Summary Logout
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.SuccessResponse "Logged out"
// @Failure 401 {object} dto.ErrorResponse "Not authenticated"
// @Router /logout/ [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	if err := c.authService.Logout(ctx.Request.Context(), middleware.CurrentTokenID(ctx)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, nil, "Logged out successfully")
}

// ValidateToken describes the owner of the presented token
// @Summary Validate token
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.SuccessResponse{data=dto.TokenInfoResponse} "Token is valid"
// @Failure 401 {object} dto.ErrorResponse "Invalid token"
// @Router /validate-token/ [get]
func (c *AuthController) ValidateToken(ctx *gin.Context) {
	userID, authenticated := callerID(ctx)
	if !authenticated {
		return
	}
	info, err := c.authService.TokenInfo(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, info, "Token is valid")
}

// RequestOTP emails a password reset code
// @Summary Request password reset OTP
// @Tags password-reset
// @Accept json
// @Produce json
// @Param request body dto.RequestOTPRequest true "Account email"
// @Success 200 {object} dto.SuccessResponse "OTP sent"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 500 {object} dto.ErrorResponse "Email delivery failed"
// @Router /password-reset/request-otp/ [post]
func (c *AuthController) RequestOTP(ctx *gin.Context) {
	var req dto.RequestOTPRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithValidationError(ctx, err)
		return
	}
	if err := c.authService.RequestPasswordReset(ctx.Request.Context(), &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, nil, "OTP sent to your email.")
}

// VerifyOTP confirms a password reset code
// @Summary Verify password reset OTP
// @Tags password-reset
// @Accept json
// @Produce json
// @Param request body dto.VerifyOTPRequest true "Email and code"
// @Success 200 {object} dto.SuccessResponse "OTP verified"
// @Failure 400 {object} dto.ErrorResponse "Invalid or expired OTP"
// @Failure 409 {object} dto.ErrorResponse "OTP already used"
// @Router /password-reset/verify-otp/ [post]
func (c *AuthController) VerifyOTP(ctx *gin.Context) {
	var req dto.VerifyOTPRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithValidationError(ctx, err)
		return
	}
	if err := c.authService.VerifyOTP(ctx.Request.Context(), &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, nil, "OTP verified successfully.")
}

// ResetPassword sets a new password after OTP verification
// @Summary Reset password
// @Tags password-reset
// @Accept json
// @Produce json
// @Param request body dto.ResetPasswordRequest true "Email and new password"
// @Success 200 {object} dto.SuccessResponse "Password reset"
// @Failure 400 {object} dto.ErrorResponse "OTP not verified"
// @Router /password-reset/reset-password/ [post]
func (c *AuthController) ResetPassword(ctx *gin.Context) {
	var req dto.ResetPasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithValidationError(ctx, err)
		return
	}
	if err := c.authService.ResetPassword(ctx.Request.Context(), &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	c.logger.Info().Str("email", req.Email).Msg("Password reset completed")
	respondOK(ctx, nil, "Password reset successfully.")
}
