package services

import (
	"context"
	"mime/multipart"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/sembesalum/tu-chat-api/internal/app/models"
	"github.com/sembesalum/tu-chat-api/internal/app/models/dto"
	"github.com/sembesalum/tu-chat-api/internal/app/repositories"
	"github.com/sembesalum/tu-chat-api/internal/pkg/apperrors"
	"github.com/sembesalum/tu-chat-api/internal/pkg/filestorage"
	"github.com/sembesalum/tu-chat-api/internal/pkg/helpers"
)

// Like toggle outcomes
const (
	LikeActionLiked   = "liked"
	LikeActionUnliked = "unliked"
)

// BlogService handles blog posts and their comment threads
type BlogService interface {
	CreateBlog(ctx context.Context, authorID int64, req *dto.CreateBlogRequest, image *multipart.FileHeader) (*dto.BlogResponse, error)
	ListBlogs(ctx context.Context, universityID *int64) ([]dto.BlogResponse, error)
	ListBreakingNews(ctx context.Context, universityID *int64) ([]dto.BlogResponse, error)

	ListComments(ctx context.Context, blogID int64) ([]dto.CommentResponse, error)
	CreateComment(ctx context.Context, blogID int64, userID *int64, req *dto.CreateCommentRequest) (*dto.CommentResponse, error)
	ListReplies(ctx context.Context, commentID int64) ([]dto.CommentResponse, error)
	Reply(ctx context.Context, commentID int64, userID *int64, req *dto.CreateCommentRequest) (*dto.CommentResponse, error)
	ToggleLike(ctx context.Context, commentID, userID int64) (*dto.LikeToggleResponse, error)
	DeleteComment(ctx context.Context, commentID, userID int64) error
}

type blogServiceImpl struct {
	blogRepo      BlogRepository
	commentRepo   CommentRepository
	directoryRepo DirectoryRepository
	storage       filestorage.FileStorage
	now           func() time.Time
	logger        zerolog.Logger
}

// NewBlogService creates a new BlogService
func NewBlogService(
	blogRepo BlogRepository,
	commentRepo CommentRepository,
	directoryRepo DirectoryRepository,
	storage filestorage.FileStorage,
	logger zerolog.Logger,
) BlogService {
	return &blogServiceImpl{
		blogRepo:      blogRepo,
		commentRepo:   commentRepo,
		directoryRepo: directoryRepo,
		storage:       storage,
		now:           time.Now,
		logger:        logger,
	}
}

func (s *blogServiceImpl) toResponse(ctx context.Context, b *models.Blog) dto.BlogResponse {
	return dto.BlogResponse{
		ID:             b.ID,
		Title:          b.Title,
		Content:        b.Content,
		Date:           b.Date.Format(dateLayout),
		ImageURL:       mediaURL(ctx, s.storage, b.Image),
		IsBreakingNews: b.IsBreakingNews,
		UniversityID:   b.UniversityID,
		AuthorID:       b.AuthorID,
		Author:         b.AuthorUsername,
	}
}

func commentResponse(c *models.BlogComment) dto.CommentResponse {
	return dto.CommentResponse{
		ID:            c.ID,
		Blog:          c.BlogID,
		User:          c.UserID,
		Username:      c.Username,
		ParentComment: c.ParentID,
		Content:       c.Content,
		CreatedAt:     c.CreatedAt,
		TotalLikes:    c.TotalLikes,
		ReplyCount:    c.ReplyCount,
	}
}

func commentResponses(comments []models.BlogComment) []dto.CommentResponse {
	resp := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		resp = append(resp, commentResponse(&comments[i]))
	}
	return resp
}

// CreateBlog publishes a post. The date defaults to today.
func (s *blogServiceImpl) CreateBlog(ctx context.Context, authorID int64, req *dto.CreateBlogRequest, image *multipart.FileHeader) (*dto.BlogResponse, error) {
	date := s.now()
	if req.Date != "" {
		d, err := helpers.ParseDate(req.Date)
		if err != nil {
			return nil, apperrors.NewBadRequestError("Invalid date, expected YYYY-MM-DD")
		}
		date = d
	}
	if req.UniversityID != nil {
		exists, err := s.directoryRepo.UniversityExists(ctx, *req.UniversityID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, apperrors.ErrInvalidUniversity
		}
	}

	stored, err := saveOptional(s.storage, image, filestorage.DirBlogs)
	if err != nil {
		return nil, err
	}

	b := &models.Blog{
		AuthorID:       authorID,
		UniversityID:   req.UniversityID,
		Title:          req.Title,
		Content:        req.Content,
		Date:           date,
		Image:          stored,
		IsBreakingNews: req.IsBreakingNews,
	}
	if err := s.blogRepo.Create(ctx, b); err != nil {
		discard(s.storage, stored)
		return nil, err
	}

	created, err := s.blogRepo.GetByID(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Int64("blogID", b.ID).Int64("authorID", authorID).Bool("breaking", b.IsBreakingNews).Msg("Blog created")
	resp := s.toResponse(ctx, created)
	return &resp, nil
}

func (s *blogServiceImpl) list(ctx context.Context, f repositories.BlogFilter) ([]dto.BlogResponse, error) {
	blogs, err := s.blogRepo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.BlogResponse, 0, len(blogs))
	for i := range blogs {
		resp = append(resp, s.toResponse(ctx, &blogs[i]))
	}
	return resp, nil
}

// ListBlogs returns the ordinary feed. Breaking news is never part of it.
func (s *blogServiceImpl) ListBlogs(ctx context.Context, universityID *int64) ([]dto.BlogResponse, error) {
	return s.list(ctx, repositories.BlogFilter{UniversityID: universityID})
}

// ListBreakingNews returns the breaking news feed
func (s *blogServiceImpl) ListBreakingNews(ctx context.Context, universityID *int64) ([]dto.BlogResponse, error) {
	return s.list(ctx, repositories.BlogFilter{UniversityID: universityID, BreakingNews: true})
}

// ListComments returns the top level comments of a blog
func (s *blogServiceImpl) ListComments(ctx context.Context, blogID int64) ([]dto.CommentResponse, error) {
	if _, err := s.blogRepo.GetByID(ctx, blogID); err != nil {
		return nil, err
	}
	comments, err := s.commentRepo.ListByBlog(ctx, blogID)
	if err != nil {
		return nil, err
	}
	return commentResponses(comments), nil
}

func (s *blogServiceImpl) addComment(ctx context.Context, c *models.BlogComment) (*dto.CommentResponse, error) {
	c.Content = strings.TrimSpace(c.Content)
	if c.Content == "" {
		return nil, apperrors.NewBadRequestError("Content is required")
	}
	if err := s.commentRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	created, err := s.commentRepo.GetByID(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	resp := commentResponse(created)
	return &resp, nil
}

// CreateComment adds a top level comment. userID is nil for anonymous comments.
func (s *blogServiceImpl) CreateComment(ctx context.Context, blogID int64, userID *int64, req *dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	if _, err := s.blogRepo.GetByID(ctx, blogID); err != nil {
		return nil, err
	}
	return s.addComment(ctx, &models.BlogComment{BlogID: blogID, UserID: userID, Content: req.Content})
}

// ListReplies returns the direct replies to a comment
func (s *blogServiceImpl) ListReplies(ctx context.Context, commentID int64) ([]dto.CommentResponse, error) {
	if _, err := s.commentRepo.GetByID(ctx, commentID); err != nil {
		return nil, err
	}
	replies, err := s.commentRepo.ListReplies(ctx, commentID)
	if err != nil {
		return nil, err
	}
	return commentResponses(replies), nil
}

// Reply answers a comment; the reply belongs to the parent's blog
func (s *blogServiceImpl) Reply(ctx context.Context, commentID int64, userID *int64, req *dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	parent, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	return s.addComment(ctx, &models.BlogComment{
		BlogID:   parent.BlogID,
		UserID:   userID,
		ParentID: &parent.ID,
		Content:  req.Content,
	})
}

// ToggleLike likes the comment for userID, or removes an existing like
func (s *blogServiceImpl) ToggleLike(ctx context.Context, commentID, userID int64) (*dto.LikeToggleResponse, error) {
	if _, err := s.commentRepo.GetByID(ctx, commentID); err != nil {
		return nil, err
	}
	liked, total, err := s.commentRepo.ToggleLike(ctx, commentID, userID)
	if err != nil {
		return nil, err
	}
	action := LikeActionUnliked
	if liked {
		action = LikeActionLiked
	}
	return &dto.LikeToggleResponse{Action: action, TotalLikes: total}, nil
}

// DeleteComment removes a comment written by userID together with its replies
func (s *blogServiceImpl) DeleteComment(ctx context.Context, commentID, userID int64) error {
	c, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if c.UserID == nil || *c.UserID != userID {
		return apperrors.NewForbiddenError("You can only delete your own comments")
	}
	return s.commentRepo.Delete(ctx, commentID)
}
