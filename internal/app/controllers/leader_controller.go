package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/sembesalum/tu-chat-api/internal/app/models/dto"
	"github.com/sembesalum/tu-chat-api/internal/app/services"
	"github.com/sembesalum/tu-chat-api/internal/middleware"
	"github.com/sembesalum/tu-chat-api/internal/pkg/helpers"
)

// LeaderController handles student leaders
type LeaderController struct {
	leaderService services.LeaderService
}

// NewLeaderController creates a new LeaderController
func NewLeaderController(leaderService services.LeaderService) *LeaderController {
	return &LeaderController{leaderService: leaderService}
}

// CreateLeader adds a leader to a campus
// @Summary Add a leader
// @Tags leaders
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param university_id formData int true "University ID"
// @Param campus_id formData int true "Campus ID"
// @Param names formData string true "Names"
// @Param title formData string true "Title"
// @Param image formData file false "Photo"
// @Success 201 {object} dto.SuccessResponse{data=dto.LeaderResponse} "Leader created"
// @Failure 400 {object} dto.ErrorResponse "Invalid data"
// @Router /leaders/add/ [post]
func (c *LeaderController) CreateLeader(ctx *gin.Context) {
	var req dto.CreateLeaderRequest
	if err := ctx.ShouldBind(&req); err != nil {
		middleware.AbortWithValidationError(ctx, err)
		return
	}
	image, err := optionalFile(ctx, "image")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	leader, err := c.leaderService.CreateLeader(ctx.Request.Context(), &req, image)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondCreated(ctx, leader, "Leader created successfully")
}

// ListLeaders lists the leaders of a campus
// @Summary List leaders
// @Tags leaders
// @Produce json
// @Param university_id path int true "University ID"
// @Param campus_id path int true "Campus ID"
// @Success 200 {object} dto.SuccessResponse{data=[]dto.LeaderResponse} "Leaders"
// @Failure 404 {object} dto.ErrorResponse "No leaders found"
// @Router /leaders/{university_id}/{campus_id}/ [get]
func (c *LeaderController) ListLeaders(ctx *gin.Context) {
	universityID, err := helpers.ParseIDParam(ctx, "university_id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	campusID, err := helpers.ParseIDParam(ctx, "campus_id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	leaders, err := c.leaderService.ListLeaders(ctx.Request.Context(), universityID, campusID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, leaders, "")
}
