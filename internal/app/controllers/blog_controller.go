package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/sembesalum/tu-chat-api/internal/app/models/dto"
	"github.com/sembesalum/tu-chat-api/internal/app/services"
	"github.com/sembesalum/tu-chat-api/internal/middleware"
	"github.com/sembesalum/tu-chat-api/internal/pkg/helpers"
)

// BlogController handles blogs, their comment threads and likes
type BlogController struct {
	blogService services.BlogService
	logger      zerolog.Logger
}

// NewBlogController creates a new BlogController
func NewBlogController(blogService services.BlogService, logger zerolog.Logger) *BlogController {
	return &BlogController{
		blogService: blogService,
		logger:      logger,
	}
}

// CreateBlog publishes a blog post authored by the caller
// @Summary Create a blog
// @Tags blogs
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param university_id formData int false "University ID"
// @Param title formData string true "Title"
// @Param content formData string true "Content"
// @Param date formData string false "Date (YYYY-MM-DD), defaults to today"
// @Param is_breaking_news formData bool false "Breaking news"
// @Param image formData file false "Image"
// @Success 201 {object} dto.SuccessResponse{data=dto.BlogResponse} "Blog created"
// @Failure 400 {object} dto.ErrorResponse "Invalid data"
// @Router /blogs/ [post]
func (c *BlogController) CreateBlog(ctx *gin.Context) {
	userID, authenticated := callerID(ctx)
	if !authenticated {
		return
	}

	var req dto.CreateBlogRequest
	if err := ctx.ShouldBind(&req); err != nil {
		middleware.AbortWithValidationError(ctx, err)
		return
	}
	image, err := optionalFile(ctx, "image")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	blog, err := c.blogService.CreateBlog(ctx.Request.Context(), userID, &req, image)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondCreated(ctx, blog, "Blog created successfully")
}

// ListBlogs lists regular blog posts
// @Summary List blogs
// @Tags blogs
// @Produce json
// @Param university_id path int false "University ID"
// @Success 200 {object} dto.SuccessResponse{data=[]dto.BlogResponse} "Blogs"
// @Router /blogs/ [get]
// @Router /blogs/{university_id} [get]
func (c *BlogController) ListBlogs(ctx *gin.Context) {
	universityID, err := idFilter(ctx, "university_id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	blogs, err := c.blogService.ListBlogs(ctx.Request.Context(), universityID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, blogs, "")
}

// ListBreakingNews lists breaking news posts
// @Summary List breaking news
// @Tags blogs
// @Produce json
// @Param university_id query int false "University ID"
// @Success 200 {object} dto.SuccessResponse{data=[]dto.BlogResponse} "Breaking news"
// @Router /blogs/breaking/ [get]
func (c *BlogController) ListBreakingNews(ctx *gin.Context) {
	universityID, err := helpers.OptionalInt64Query(ctx, "university_id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	blogs, err := c.blogService.ListBreakingNews(ctx.Request.Context(), universityID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, blogs, "")
}

// ListComments lists the top level comments of a blog
// @Summary List blog comments
// @Tags comments
// @Produce json
// @Param blog_id path int true "Blog ID"
// @Success 200 {object} dto.SuccessResponse{data=[]dto.CommentResponse} "Comments"
// @Failure 404 {object} dto.ErrorResponse "Blog not found"
// @Router /blog/{blog_id}/comments/ [get]
func (c *BlogController) ListComments(ctx *gin.Context) {
	blogID, err := helpers.ParseIDParam(ctx, "blog_id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	comments, err := c.blogService.ListComments(ctx.Request.Context(), blogID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, comments, "")
}

// CreateComment comments on a blog, anonymously when no token is sent
// @Summary Comment on a blog
// @Tags comments
// @Accept json
// @Produce json
// @Param blog_id path int true "Blog ID"
// @Param request body dto.CreateCommentRequest true "Comment"
// @Success 201 {object} dto.SuccessResponse{data=dto.CommentResponse} "Comment created"
// @Failure 400 {object} dto.ErrorResponse "Invalid data"
// @Failure 404 {object} dto.ErrorResponse "Blog not found"
// @Router /blog/{blog_id}/comments/ [post]
func (c *BlogController) CreateComment(ctx *gin.Context) {
	blogID, err := helpers.ParseIDParam(ctx, "blog_id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	var req dto.CreateCommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithValidationError(ctx, err)
		return
	}

	comment, err := c.blogService.CreateComment(ctx.Request.Context(), blogID, commenter(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondCreated(ctx, comment, "")
}

// ListReplies lists the replies to a comment
// @Summary List replies
// @Tags comments
// @Produce json
// @Param comment_id path int true "Comment ID"
// @Success 200 {object} dto.SuccessResponse{data=[]dto.CommentResponse} "Replies"
// @Failure 404 {object} dto.ErrorResponse "Comment not found"
// @Router /comments/{comment_id}/replies/ [get]
func (c *BlogController) ListReplies(ctx *gin.Context) {
	commentID, err := helpers.ParseIDParam(ctx, "comment_id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	replies, err := c.blogService.ListReplies(ctx.Request.Context(), commentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, replies, "")
}

// Reply answers a comment
// @Summary Reply to a comment
// @Tags comments
// @Accept json
// @Produce json
// @Param comment_id path int true "Comment ID"
// @Param request body dto.CreateCommentRequest true "Reply"
// @Success 201 {object} dto.SuccessResponse{data=dto.CommentResponse} "Reply created"
// @Failure 404 {object} dto.ErrorResponse "Comment not found"
// @Router /comments/{comment_id}/replies/ [post]
func (c *BlogController) Reply(ctx *gin.Context) {
	commentID, err := helpers.ParseIDParam(ctx, "comment_id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	var req dto.CreateCommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithValidationError(ctx, err)
		return
	}

	reply, err := c.blogService.Reply(ctx.Request.Context(), commentID, commenter(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondCreated(ctx, reply, "")
}

// ToggleLike likes or unlikes a comment
// @Summary Toggle comment like
// @Tags comments
// @Produce json
// @Security BearerAuth
// @Param comment_id path int true "Comment ID"
// @Success 200 {object} dto.SuccessResponse{data=dto.LikeToggleResponse} "New like state"
// @Failure 404 {object} dto.ErrorResponse "Comment not found"
// @Router /comments/{comment_id}/like/ [post]
func (c *BlogController) ToggleLike(ctx *gin.Context) {
	userID, authenticated := callerID(ctx)
	if !authenticated {
		return
	}
	commentID, err := helpers.ParseIDParam(ctx, "comment_id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	result, err := c.blogService.ToggleLike(ctx.Request.Context(), commentID, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, result, "")
}

// DeleteComment deletes the caller's comment with its replies
// @Summary Delete a comment
// @Tags comments
// @Produce json
// @Security BearerAuth
// @Param comment_id path int true "Comment ID"
// @Success 200 {object} dto.SuccessResponse "Comment deleted"
// @Failure 403 {object} dto.ErrorResponse "Not the author"
// @Failure 404 {object} dto.ErrorResponse "Comment not found"
// @Router /comments/{comment_id}/ [delete]
func (c *BlogController) DeleteComment(ctx *gin.Context) {
	userID, authenticated := callerID(ctx)
	if !authenticated {
		return
	}
	commentID, err := helpers.ParseIDParam(ctx, "comment_id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if err := c.blogService.DeleteComment(ctx.Request.Context(), commentID, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	c.logger.Info().Int64("commentID", commentID).Int64("userID", userID).Msg("Comment deleted")
	respondOK(ctx, nil, "Comment deleted successfully")
}

// commenter is the authenticated caller, or nil for anonymous comments
func commenter(ctx *gin.Context) *int64 {
	if id, ok := middleware.CurrentUserID(ctx); ok {
		return &id
	}
	return nil
}
