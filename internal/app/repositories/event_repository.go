package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sembesalum/tu-chat-api/internal/app/models"
	"github.com/sembesalum/tu-chat-api/internal/pkg/logger"
)

// EventRepository handles university events
type EventRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewEventRepository creates a new EventRepository
func NewEventRepository(db *pgxpool.Pool) *EventRepository {
	return &EventRepository{
		db: db,
		sb: newBuilder(),
	}
}

// Create inserts an event. Time is an HH:MM[:SS] string.
func (r *EventRepository) Create(ctx context.Context, e *models.Event) error {
	sql, args, err := r.sb.Insert("events").
		Columns("user_id", "university_id", "title", "description", "time", "date", "image", "is_breaking_news").
		Values(e.UserID, e.UniversityID, e.Title, e.Description, squirrel.Expr("?::text::time", e.Time),
			e.Date, e.Image, e.IsBreakingNews).
		Suffix("RETURNING id, time::text, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create event query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&e.ID, &e.Time, &e.CreatedAt); err != nil {
		logger.Error().Err(err).Msg("Error executing create event query")
		return mapReferenceError(err, "Invalid university")
	}
	return nil
}

func (r *EventRepository) listQuery(universityID *int64) squirrel.SelectBuilder {
	q := r.sb.Select(
		"e.id", "e.user_id", "e.university_id", "e.title", "e.description", "e.time::text",
		"e.date", "e.image", "e.is_breaking_news", "e.created_at", "u.username",
	).
		From("events e").
		LeftJoin("users u ON u.id = e.user_id").
		OrderBy("e.date DESC", "e.time DESC", "e.id DESC")
	if universityID != nil {
		q = q.Where(squirrel.Eq{"e.university_id": *universityID})
	}
	return q
}

// List returns events, optionally of one university, most recent first
func (r *EventRepository) List(ctx context.Context, universityID *int64) ([]models.Event, error) {
	sql, args, err := r.listQuery(universityID).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list events query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing events")
		return nil, fmt.Errorf("error listing events: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Event, error) {
		var e models.Event
		err := row.Scan(&e.ID, &e.UserID, &e.UniversityID, &e.Title, &e.Description, &e.Time,
			&e.Date, &e.Image, &e.IsBreakingNews, &e.CreatedAt, &e.Username)
		return e, err
	})
}
