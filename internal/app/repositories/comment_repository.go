package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sembesalum/tu-chat-api/internal/app/models"
	"github.com/sembesalum/tu-chat-api/internal/pkg/apperrors"
	"github.com/sembesalum/tu-chat-api/internal/pkg/logger"
)

// ErrCommentNotFound is returned for unknown comment ids
var ErrCommentNotFound = apperrors.NewResourceNotFoundError("Comment not found")

// CommentRepository handles blog comments and their likes
type CommentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{
		db: db,
		sb: newBuilder(),
	}
}

// Create inserts a comment or, with ParentID set, a reply
func (r *CommentRepository) Create(ctx context.Context, c *models.BlogComment) error {
	sql, args, err := r.sb.Insert("blog_comments").
		Columns("blog_id", "user_id", "parent_id", "content").
		Values(c.BlogID, c.UserID, c.ParentID, c.Content).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create comment query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&c.ID, &c.CreatedAt); err != nil {
		logger.Error().Err(err).Msg("Error executing create comment query")
		return mapReferenceError(err, "Blog not found")
	}
	return nil
}

func (r *CommentRepository) selectQuery() squirrel.SelectBuilder {
	return r.sb.Select(
		"c.id", "c.blog_id", "c.user_id", "c.parent_id", "c.content", "c.created_at", "u.username",
		"(SELECT COUNT(*) FROM blog_comment_likes l WHERE l.comment_id = c.id)",
		"(SELECT COUNT(*) FROM blog_comments r WHERE r.parent_id = c.id)",
	).
		From("blog_comments c").
		LeftJoin("users u ON u.id = c.user_id")
}

func scanComment(row pgx.Row) (models.BlogComment, error) {
	var c models.BlogComment
	err := row.Scan(&c.ID, &c.BlogID, &c.UserID, &c.ParentID, &c.Content, &c.CreatedAt,
		&c.Username, &c.TotalLikes, &c.ReplyCount)
	return c, err
}

func (r *CommentRepository) list(ctx context.Context, where squirrel.Sqlizer) ([]models.BlogComment, error) {
	sql, args, err := r.selectQuery().Where(where).OrderBy("c.created_at", "c.id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list comments query: %w", err)
	}
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing comments: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.BlogComment, error) {
		return scanComment(row)
	})
}

// ListByBlog returns the top level comments of a blog, oldest first
func (r *CommentRepository) ListByBlog(ctx context.Context, blogID int64) ([]models.BlogComment, error) {
	return r.list(ctx, squirrel.Eq{"c.blog_id": blogID, "c.parent_id": nil})
}

// ListReplies returns the direct replies to a comment
func (r *CommentRepository) ListReplies(ctx context.Context, parentID int64) ([]models.BlogComment, error) {
	return r.list(ctx, squirrel.Eq{"c.parent_id": parentID})
}

// GetByID returns a comment
func (r *CommentRepository) GetByID(ctx context.Context, id int64) (*models.BlogComment, error) {
	sql, args, err := r.selectQuery().Where(squirrel.Eq{"c.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get comment query: %w", err)
	}
	c, err := scanComment(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCommentNotFound
		}
		return nil, fmt.Errorf("error retrieving comment: %w", err)
	}
	return &c, nil
}

// Delete removes a comment together with its replies and likes
func (r *CommentRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("blog_comments").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete comment query: %w", err)
	}
	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting comment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrCommentNotFound
	}
	return nil
}

// ToggleLike likes or unlikes a comment for the user and returns the new
// state together with the like count.
func (r *CommentRepository) ToggleLike(ctx context.Context, commentID, userID int64) (bool, int, error) {
	liked, err := toggle(ctx, r.db, r.sb, "blog_comment_likes", squirrel.Eq{"comment_id": commentID, "user_id": userID})
	if err != nil {
		return false, 0, mapReferenceError(err, "Comment not found")
	}

	var total int
	err = r.db.QueryRow(ctx, "SELECT COUNT(*) FROM blog_comment_likes WHERE comment_id = $1", commentID).Scan(&total)
	if err != nil {
		return false, 0, fmt.Errorf("error counting likes: %w", err)
	}
	return liked, total, nil
}
