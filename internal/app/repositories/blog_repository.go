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

// BlogFilter selects a blog feed
type BlogFilter struct {
	UniversityID *int64
	BreakingNews bool
}

// BlogRepository handles blog posts
type BlogRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewBlogRepository creates a new BlogRepository
func NewBlogRepository(db *pgxpool.Pool) *BlogRepository {
	return &BlogRepository{
		db: db,
		sb: newBuilder(),
	}
}

// Create inserts a blog post
func (r *BlogRepository) Create(ctx context.Context, b *models.Blog) error {
	sql, args, err := r.sb.Insert("blogs").
		Columns("author_id", "university_id", "title", "content", "date", "image", "is_breaking_news").
		Values(b.AuthorID, b.UniversityID, b.Title, b.Content, b.Date, b.Image, b.IsBreakingNews).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create blog query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&b.ID, &b.CreatedAt); err != nil {
		logger.Error().Err(err).Msg("Error executing create blog query")
		return mapReferenceError(err, "Invalid university")
	}
	return nil
}

func (r *BlogRepository) selectQuery() squirrel.SelectBuilder {
	return r.sb.Select(
		"b.id", "b.author_id", "b.university_id", "b.title", "b.content", "b.date",
		"b.image", "b.is_breaking_news", "b.created_at", "u.username",
	).
		From("blogs b").
		Join("users u ON u.id = b.author_id")
}

func scanBlog(row pgx.Row) (models.Blog, error) {
	var b models.Blog
	err := row.Scan(&b.ID, &b.AuthorID, &b.UniversityID, &b.Title, &b.Content, &b.Date,
		&b.Image, &b.IsBreakingNews, &b.CreatedAt, &b.AuthorUsername)
	return b, err
}

// listQuery keeps breaking news and ordinary posts in separate feeds
func (r *BlogRepository) listQuery(f BlogFilter) squirrel.SelectBuilder {
	q := r.selectQuery().
		Where(squirrel.Eq{"b.is_breaking_news": f.BreakingNews}).
		OrderBy("b.date DESC", "b.id DESC")
	if f.UniversityID != nil {
		q = q.Where(squirrel.Eq{"b.university_id": *f.UniversityID})
	}
	return q
}

// List returns one feed of blog posts, newest first
func (r *BlogRepository) List(ctx context.Context, f BlogFilter) ([]models.Blog, error) {
	sql, args, err := r.listQuery(f).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list blogs query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing blogs")
		return nil, fmt.Errorf("error listing blogs: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Blog, error) {
		return scanBlog(row)
	})
}

// GetByID returns a blog post
func (r *BlogRepository) GetByID(ctx context.Context, id int64) (*models.Blog, error) {
	sql, args, err := r.selectQuery().Where(squirrel.Eq{"b.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get blog query: %w", err)
	}

	b, err := scanBlog(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewResourceNotFoundError("Blog not found")
		}
		return nil, fmt.Errorf("error retrieving blog: %w", err)
	}
	return &b, nil
}
