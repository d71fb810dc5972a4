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

// ErrCommunityNotFound is returned for unknown community ids
var ErrCommunityNotFound = apperrors.NewResourceNotFoundError("Community not found")

// CommunityRepository handles database operations for communities
type CommunityRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCommunityRepository creates a new CommunityRepository
func NewCommunityRepository(db *pgxpool.Pool) *CommunityRepository {
	return &CommunityRepository{
		db: db,
		sb: newBuilder(),
	}
}

// Create inserts a community
func (r *CommunityRepository) Create(ctx context.Context, c *models.Community) error {
	sql, args, err := r.sb.Insert("communities").
		Columns("name", "description", "admin_id").
		Values(c.Name, c.Description, c.AdminID).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create community query: %w", err)
	}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&c.ID, &c.CreatedAt); err != nil {
		logger.Error().Err(err).Msg("Error executing create community query")
		return mapReferenceError(err, "User not found")
	}
	return nil
}

// List returns every community
func (r *CommunityRepository) List(ctx context.Context) ([]models.Community, error) {
	sql, args, err := r.sb.Select("id", "name", "description", "admin_id", "created_at").
		From("communities").OrderBy("id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list communities query: %w", err)
	}
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing communities: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Community, error) {
		var c models.Community
		err := row.Scan(&c.ID, &c.Name, &c.Description, &c.AdminID, &c.CreatedAt)
		return c, err
	})
}

// GetByID retrieves a community by ID
func (r *CommunityRepository) GetByID(ctx context.Context, id int64) (*models.Community, error) {
	sql, args, err := r.sb.Select("id", "name", "description", "admin_id", "created_at").
		From("communities").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get community query: %w", err)
	}
	var c models.Community
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&c.ID, &c.Name, &c.Description, &c.AdminID, &c.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCommunityNotFound
		}
		return nil, fmt.Errorf("error retrieving community: %w", err)
	}
	return &c, nil
}
