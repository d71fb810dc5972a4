package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/sembesalum/tu-chat-api/internal/app/models/dto"
	"github.com/sembesalum/tu-chat-api/internal/app/services"
	"github.com/sembesalum/tu-chat-api/internal/middleware"
	"github.com/sembesalum/tu-chat-api/internal/pkg/helpers"
)

// ChatController handles group messages, direct messages and blocking
type ChatController struct {
	chatService services.ChatService
	logger      zerolog.Logger
}

// NewChatController creates a new ChatController
func NewChatController(chatService services.ChatService, logger zerolog.Logger) *ChatController {
	return &ChatController{
		chatService: chatService,
		logger:      logger,
	}
}

// SendGroupMessage posts a message to a group the sender follows
// @Summary Send a group message
// @Tags messages
// @Accept json
// @Produce json
// @Param group_id path int true "Group ID"
// @Param request body dto.SendGroupMessageRequest true "Message"
// @Success 201 {object} dto.SuccessResponse{data=dto.GroupMessageResponse} "Message sent"
// @Failure 400 {object} dto.ErrorResponse "Missing content or username"
// @Failure 403 {object} dto.ErrorResponse "Not a follower, or the group is admins only"
// @Failure 404 {object} dto.ErrorResponse "Group not found"
// @Router /groups/{group_id}/messages/send/ [post]
func (c *ChatController) SendGroupMessage(ctx *gin.Context) {
	groupID, err := helpers.ParseIDParam(ctx, "group_id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	var req dto.SendGroupMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithValidationError(ctx, err)
		return
	}
	senderID, err := middleware.ActingUserID(ctx, req.UserID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	message, err := c.chatService.SendGroupMessage(ctx.Request.Context(), groupID, senderID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondCreated(ctx, message, "")
}

// ListGroupMessages lists a group's messages, oldest first
// @Summary List group messages
// @Tags messages
// @Produce json
// @Param group_id path int true "Group ID"
// @Success 200 {object} dto.SuccessResponse{data=[]dto.GroupMessageResponse} "Messages"
// @Failure 404 {object} dto.ErrorResponse "Group not found"
// @Router /groups/{group_id}/messages/ [get]
func (c *ChatController) ListGroupMessages(ctx *gin.Context) {
	groupID, err := helpers.ParseIDParam(ctx, "group_id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	messages, err := c.chatService.ListGroupMessages(ctx.Request.Context(), groupID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, messages, "")
}

// MarkMessageAsRead flags a group message as read
// @Summary Mark group message read
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Param message_id path int true "Message ID"
// @Success 200 {object} dto.SuccessResponse "Marked as read"
// @Failure 404 {object} dto.ErrorResponse "Message not found"
// @Router /messages/mark-as-read/{message_id}/ [put]
func (c *ChatController) MarkMessageAsRead(ctx *gin.Context) {
	messageID, err := helpers.ParseIDParam(ctx, "message_id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if err := c.chatService.MarkMessageAsRead(ctx.Request.Context(), messageID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, nil, "Message marked as read")
}

// SendDirectMessage sends a private message from user_id to the recipient
// @Summary Send a direct message
// @Tags messages
// @Accept json
// @Produce json
// @Param user_id path int true "Sender ID"
// @Param request body dto.SendDirectMessageRequest true "Message"
// @Success 201 {object} dto.SuccessResponse{data=dto.DirectMessageResponse} "Message sent"
// @Failure 400 {object} dto.ErrorResponse "Missing recipient or content"
// @Failure 403 {object} dto.ErrorResponse "Blocked"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /messages/send-direct/{user_id}/ [post]
func (c *ChatController) SendDirectMessage(ctx *gin.Context) {
	claimed, err := helpers.ParseIDParam(ctx, "user_id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	senderID, err := middleware.ActingUserID(ctx, &claimed)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	var req dto.SendDirectMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithValidationError(ctx, err)
		return
	}

	message, err := c.chatService.SendDirectMessage(ctx.Request.Context(), senderID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondCreated(ctx, message, "")
}

// GetDirectMessages returns the conversation between sender_id and recipient
// @Summary Get a direct message thread
// @Tags messages
// @Produce json
// @Param recipient path int true "Recipient ID"
// @Param sender_id query int true "Sender ID"
// @Success 200 {object} dto.SuccessResponse{data=[]dto.DirectMessageResponse} "Messages"
// @Failure 400 {object} dto.ErrorResponse "sender_id missing"
// @Failure 404 {object} dto.ErrorResponse "No messages found"
// @Router /messages/get-sms/{recipient}/ [get]
func (c *ChatController) GetDirectMessages(ctx *gin.Context) {
	recipientID, err := helpers.ParseIDParam(ctx, "recipient")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	senderID, err := helpers.RequiredInt64Query(ctx, "sender_id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	messages, err := c.chatService.GetDirectMessages(ctx.Request.Context(), senderID, recipientID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, messages, "")
}

// ListChatPartners lists everyone user_id has exchanged messages with
// @Summary List chat partners
// @Tags messages
// @Produce json
// @Param user_id path int true "User ID"
// @Success 200 {object} dto.SuccessResponse{data=dto.ChatUsersResponse} "Chat partners"
// @Router /messages/chat-users/{user_id}/ [get]
func (c *ChatController) ListChatPartners(ctx *gin.Context) {
	userID, err := helpers.ParseIDParam(ctx, "user_id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	partners, err := c.chatService.ListChatPartners(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, partners, "")
}

// DeleteDirectMessage deletes a message sent or received by user_id
// @Summary Delete a direct message
// @Tags messages
// @Produce json
// @Param message_id path int true "Message ID"
// @Param user_id query int true "Acting user ID"
// @Success 200 {object} dto.SuccessResponse "Message deleted"
// @Failure 403 {object} dto.ErrorResponse "Not part of the conversation"
// @Failure 404 {object} dto.ErrorResponse "Message not found"
// @Router /messages/{message_id}/ [delete]
func (c *ChatController) DeleteDirectMessage(ctx *gin.Context) {
	messageID, err := helpers.ParseIDParam(ctx, "message_id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	claimed, err := helpers.RequiredInt64Query(ctx, "user_id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	userID, err := middleware.ActingUserID(ctx, &claimed)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.chatService.DeleteDirectMessage(ctx.Request.Context(), messageID, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, nil, "Message deleted successfully")
}

// BlockUser blocks another user for the caller
// @Summary Block a user
// @Tags blocking
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BlockRequest true "User to block"
// @Success 200 {object} dto.SuccessResponse "Blocked"
// @Failure 400 {object} dto.ErrorResponse "Cannot block yourself"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /block/ [post]
func (c *ChatController) BlockUser(ctx *gin.Context) {
	blockerID, req, ok := c.bindBlock(ctx)
	if !ok {
		return
	}
	message, err := c.chatService.Block(ctx.Request.Context(), blockerID, req.UserID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, nil, message)
}

// UnblockUser removes a block
// @Summary Unblock a user
// @Tags blocking
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BlockRequest true "User to unblock"
// @Success 200 {object} dto.SuccessResponse "Unblocked"
// @Failure 404 {object} dto.ErrorResponse "User is not blocked"
// @Router /unblock/ [post]
func (c *ChatController) UnblockUser(ctx *gin.Context) {
	blockerID, req, ok := c.bindBlock(ctx)
	if !ok {
		return
	}
	if err := c.chatService.Unblock(ctx.Request.Context(), blockerID, req.UserID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, nil, "User unblocked successfully.")
}

// BlockStatus reports whether the caller blocks the given user
// @Summary Check block status
// @Tags blocking
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BlockRequest true "User to check"
// @Success 200 {object} dto.SuccessResponse{data=dto.BlockStatusResponse} "Block status"
// @Router /block/status/ [post]
func (c *ChatController) BlockStatus(ctx *gin.Context) {
	blockerID, req, ok := c.bindBlock(ctx)
	if !ok {
		return
	}
	blocked, err := c.chatService.IsBlocked(ctx.Request.Context(), blockerID, req.UserID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, dto.BlockStatusResponse{Blocked: blocked}, "")
}

func (c *ChatController) bindBlock(ctx *gin.Context) (int64, *dto.BlockRequest, bool) {
	blockerID, authenticated := callerID(ctx)
	if !authenticated {
		return 0, nil, false
	}
	var req dto.BlockRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithValidationError(ctx, err)
		return 0, nil, false
	}
	return blockerID, &req, true
}
