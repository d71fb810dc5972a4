package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/sembesalum/tu-chat-api/internal/app/models/dto"
	"github.com/sembesalum/tu-chat-api/internal/app/services"
	"github.com/sembesalum/tu-chat-api/internal/middleware"
	"github.com/sembesalum/tu-chat-api/internal/pkg/helpers"
)

// CommunityController handles communities, groups and group membership
type CommunityController struct {
	communityService services.CommunityService
	logger           zerolog.Logger
}

// NewCommunityController creates a new CommunityController
func NewCommunityController(communityService services.CommunityService, logger zerolog.Logger) *CommunityController {
	return &CommunityController{
		communityService: communityService,
		logger:           logger,
	}
}

// CreateCommunity creates a community administered by the caller
// @Summary Create a community
// @Tags communities
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCommunityRequest true "Community"
// @Success 201 {object} dto.SuccessResponse{data=dto.CommunityResponse} "Community created"
// @Failure 400 {object} dto.ErrorResponse "Invalid data"
// @Router /communities/create/ [post]
func (c *CommunityController) CreateCommunity(ctx *gin.Context) {
	userID, authenticated := callerID(ctx)
	if !authenticated {
		return
	}
	var req dto.CreateCommunityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithValidationError(ctx, err)
		return
	}

	community, err := c.communityService.CreateCommunity(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondCreated(ctx, community, "Community created successfully")
}

// ListCommunities lists all communities
// @Summary List communities
// @Tags communities
// @Produce json
// @Success 200 {object} dto.SuccessResponse{data=[]dto.CommunityResponse} "Communities"
// @Router /communities/ [get]
func (c *CommunityController) ListCommunities(ctx *gin.Context) {
	communities, err := c.communityService.ListCommunities(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, communities, "")
}

// CreateGroup creates a group inside a community; the caller becomes its admin
// @Summary Create a group
// @Tags groups
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param community formData int true "Community ID"
// @Param name formData string true "Name"
// @Param description formData string false "Description"
// @Param interaction_policy formData string false "Who may post" Enums(everyone, admins_only)
// @Param profile_picture formData file false "Group picture"
// @Success 201 {object} dto.SuccessResponse{data=dto.GroupResponse} "Group created"
// @Failure 400 {object} dto.ErrorResponse "Invalid data"
// @Failure 404 {object} dto.ErrorResponse "Community not found"
// @Router /groups/create/ [post]
func (c *CommunityController) CreateGroup(ctx *gin.Context) {
	userID, authenticated := callerID(ctx)
	if !authenticated {
		return
	}
	var req dto.CreateGroupRequest
	if err := ctx.ShouldBind(&req); err != nil {
		middleware.AbortWithValidationError(ctx, err)
		return
	}
	picture, err := optionalFile(ctx, "profile_picture")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	group, err := c.communityService.CreateGroup(ctx.Request.Context(), userID, &req, picture)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondCreated(ctx, group, "Group created successfully")
}

// ListGroups lists groups, optionally of one community
// @Summary List groups
// @Tags groups
// @Produce json
// @Param community_id path int false "Community ID"
// @Success 200 {object} dto.SuccessResponse{data=[]dto.GroupResponse} "Groups"
// @Router /groups/ [get]
// @Router /communities/{community_id}/groups/ [get]
func (c *CommunityController) ListGroups(ctx *gin.Context) {
	communityID, err := idFilter(ctx, "community_id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	groups, err := c.communityService.ListGroups(ctx.Request.Context(), communityID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, groups, "")
}

// ToggleFollow follows the group, or unfollows it when already following
// @Summary Toggle group follow
// @Tags groups
// @Accept json
// @Produce json
// @Param group_id path int true "Group ID"
// @Param request body dto.FollowRequest false "Follower, when not authenticated"
// @Success 200 {object} dto.SuccessResponse{data=dto.FollowResponse} "Follow state"
// @Failure 403 {object} dto.ErrorResponse "Acting for another user"
// @Failure 404 {object} dto.ErrorResponse "Group not found"
// @Router /groups/{group_id}/follow/ [post]
func (c *CommunityController) ToggleFollow(ctx *gin.Context) {
	groupID, err := helpers.ParseIDParam(ctx, "group_id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	var req dto.FollowRequest
	if err := bindOptional(ctx, &req); err != nil {
		middleware.AbortWithValidationError(ctx, err)
		return
	}
	userID, err := middleware.ActingUserID(ctx, req.UserID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	state, err := c.communityService.ToggleFollow(ctx.Request.Context(), userID, groupID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, state, state.Message)
}

// JoinGroup makes the caller a member of the group
// @Summary Join a group
// @Tags groups
// @Produce json
// @Security BearerAuth
// @Param group_id path int true "Group ID"
// @Success 201 {object} dto.SuccessResponse{data=dto.MembershipResponse} "Joined"
// @Failure 404 {object} dto.ErrorResponse "Group not found"
// @Failure 409 {object} dto.ErrorResponse "Already a member"
// @Router /groups/join/{group_id}/ [post]
func (c *CommunityController) JoinGroup(ctx *gin.Context) {
	userID, authenticated := callerID(ctx)
	if !authenticated {
		return
	}
	groupID, err := helpers.ParseIDParam(ctx, "group_id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	membership, err := c.communityService.JoinGroup(ctx.Request.Context(), userID, groupID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondCreated(ctx, membership, "Joined group successfully")
}

// LeaveGroup removes the caller from the group
// @Summary Leave a group
// @Tags groups
// @Produce json
// @Security BearerAuth
// @Param group_id path int true "Group ID"
// @Success 200 {object} dto.SuccessResponse "Left"
// @Failure 404 {object} dto.ErrorResponse "Not a member"
// @Router /groups/leave/{group_id}/ [delete]
func (c *CommunityController) LeaveGroup(ctx *gin.Context) {
	userID, authenticated := callerID(ctx)
	if !authenticated {
		return
	}
	groupID, err := helpers.ParseIDParam(ctx, "group_id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if err := c.communityService.LeaveGroup(ctx.Request.Context(), userID, groupID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, nil, "Left group successfully")
}

// PromoteUser makes a member an admin of the group
// @Summary Promote a member
// @Tags groups
// @Produce json
// @Security BearerAuth
// @Param user_id path int true "User ID"
// @Param group_id path int true "Group ID"
// @Success 200 {object} dto.SuccessResponse{data=dto.MembershipResponse} "Promoted"
// @Failure 403 {object} dto.ErrorResponse "Caller is not a group admin"
// @Failure 404 {object} dto.ErrorResponse "Membership not found"
// @Router /groups/promote/{user_id}/{group_id}/ [put]
func (c *CommunityController) PromoteUser(ctx *gin.Context) {
	caller, authenticated := callerID(ctx)
	if !authenticated {
		return
	}
	userID, err := helpers.ParseIDParam(ctx, "user_id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	groupID, err := helpers.ParseIDParam(ctx, "group_id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	membership, err := c.communityService.PromoteUser(ctx.Request.Context(), caller, userID, groupID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	c.logger.Info().Int64("groupID", groupID).Int64("userID", userID).Msg("Member promoted")
	respondOK(ctx, membership, "User promoted to admin")
}
