package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/sembesalum/tu-chat-api/internal/app/models/dto"
	"github.com/sembesalum/tu-chat-api/internal/app/services"
	"github.com/sembesalum/tu-chat-api/internal/middleware"
	"github.com/sembesalum/tu-chat-api/internal/pkg/helpers"
)

// UserController handles profiles and the user listing
type UserController struct {
	profileService services.ProfileService
	logger         zerolog.Logger
}

// NewUserController creates a new user controller
func NewUserController(profileService services.ProfileService, logger zerolog.Logger) *UserController {
	return &UserController{
		profileService: profileService,
		logger:         logger,
	}
}

// GetOwnProfile returns the caller's profile
// @Summary Get own profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.SuccessResponse{data=dto.ProfileResponse} "Profile"
// @Failure 401 {object} dto.ErrorResponse "Not authenticated"
// @Router /profile/ [get]
func (c *UserController) GetOwnProfile(ctx *gin.Context) {
	userID, authenticated := callerID(ctx)
	if !authenticated {
		return
	}
	profile, err := c.profileService.GetProfile(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, profile, "")
}

// GetProfile retrieves a user's profile by user ID
// @Summary Get user profile
// @Tags users
// @Produce json
// @Param user_id path int true "User ID"
// @Success 200 {object} dto.SuccessResponse{data=dto.ProfileResponse} "Profile"
// @Failure 404 {object} dto.ErrorResponse "Profile not found"
// @Router /user-profile/{user_id}/ [get]
func (c *UserController) GetProfile(ctx *gin.Context) {
	userID, err := helpers.ParseIDParam(ctx, "user_id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	profile, err := c.profileService.GetProfile(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, profile, "")
}

// UpdateProfile changes the caller's username, phone number or picture
// @Summary Update profile
// @Tags users
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param user_id path int true "User ID"
// @Param username formData string false "New username"
// @Param phone_number formData string false "New phone number"
// @Param profile_picture formData file false "New profile picture"
// @Success 200 {object} dto.SuccessResponse{data=dto.ProfileResponse} "Updated profile"
// @Failure 400 {object} dto.ErrorResponse "Invalid data"
// @Failure 403 {object} dto.ErrorResponse "Not your profile"
// @Failure 409 {object} dto.ErrorResponse "Username taken"
// @Router /update-profile/{user_id}/ [put]
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	caller, authenticated := callerID(ctx)
	if !authenticated {
		return
	}
	userID, err := helpers.ParseIDParam(ctx, "user_id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.UpdateProfileRequest
	if err := ctx.ShouldBind(&req); err != nil {
		middleware.AbortWithValidationError(ctx, err)
		return
	}
	picture, err := optionalFile(ctx, "profile_picture")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	profile, err := c.profileService.UpdateProfile(ctx.Request.Context(), caller, userID, &req, picture)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, profile, "Profile updated successfully")
}

// ListUsers lists every user
// @Summary List users
// @Tags users
// @Produce json
// @Success 200 {object} dto.SuccessResponse{data=[]dto.UserSummaryResponse} "Users"
// @Router /users/ [get]
func (c *UserController) ListUsers(ctx *gin.Context) {
	users, err := c.profileService.ListUsers(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, users, "")
}
