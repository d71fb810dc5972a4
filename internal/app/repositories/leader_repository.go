package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sembesalum/tu-chat-api/internal/app/models"
)

// LeaderRepository handles student leaders
type LeaderRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewLeaderRepository creates a new LeaderRepository
func NewLeaderRepository(db *pgxpool.Pool) *LeaderRepository {
	return &LeaderRepository{
		db: db,
		sb: newBuilder(),
	}
}

// Create inserts a leader
func (r *LeaderRepository) Create(ctx context.Context, l *models.Leader) error {
	sql, args, err := r.sb.Insert("leaders").
		Columns("university_id", "campus_id", "names", "title", "image").
		Values(l.UniversityID, l.CampusID, l.Names, l.Title, l.Image).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create leader query: %w", err)
	}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&l.ID, &l.CreatedAt); err != nil {
		return mapReferenceError(err, "Invalid university or campus")
	}
	return nil
}

// List returns the leaders of a campus
func (r *LeaderRepository) List(ctx context.Context, universityID, campusID int64) ([]models.Leader, error) {
	sql, args, err := r.sb.Select("id", "university_id", "campus_id", "names", "title", "image", "created_at").
		From("leaders").
		Where(squirrel.Eq{"university_id": universityID, "campus_id": campusID}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list leaders query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing leaders: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Leader, error) {
		var l models.Leader
		err := row.Scan(&l.ID, &l.UniversityID, &l.CampusID, &l.Names, &l.Title, &l.Image, &l.CreatedAt)
		return l, err
	})
}
