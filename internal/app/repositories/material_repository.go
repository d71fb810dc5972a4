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

// MaterialFilter scopes a material listing to a course
type MaterialFilter struct {
	UniversityID int64
	CampusID     int64
	CourseID     int64
	MaterialType *models.MaterialType
}

// MaterialRepository handles study materials
type MaterialRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewMaterialRepository creates a new MaterialRepository
func NewMaterialRepository(db *pgxpool.Pool) *MaterialRepository {
	return &MaterialRepository{
		db: db,
		sb: newBuilder(),
	}
}

// Create inserts a material and fills in its id and timestamp
func (r *MaterialRepository) Create(ctx context.Context, m *models.Material) error {
	sql, args, err := r.sb.Insert("materials").
		Columns("university_id", "campus_id", "course_id", "material_type", "title", "subtitle", "file").
		Values(m.UniversityID, m.CampusID, m.CourseID, m.MaterialType, m.Title, m.Subtitle, m.File).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create material query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&m.ID, &m.CreatedAt); err != nil {
		logger.Error().Err(err).Msg("Error executing create material query")
		return mapReferenceError(err, "Invalid university, campus or course")
	}
	return nil
}

func (r *MaterialRepository) listQuery(f MaterialFilter) squirrel.SelectBuilder {
	q := r.sb.Select("id", "university_id", "campus_id", "course_id", "material_type", "title", "subtitle", "file", "created_at").
		From("materials").
		Where(squirrel.Eq{"university_id": f.UniversityID, "campus_id": f.CampusID, "course_id": f.CourseID}).
		OrderBy("created_at DESC", "id DESC")
	if f.MaterialType != nil {
		q = q.Where(squirrel.Eq{"material_type": *f.MaterialType})
	}
	return q
}

// List returns the materials of a course, newest first
func (r *MaterialRepository) List(ctx context.Context, f MaterialFilter) ([]models.Material, error) {
	sql, args, err := r.listQuery(f).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list materials query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing materials")
		return nil, fmt.Errorf("error listing materials: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Material, error) {
		var m models.Material
		err := row.Scan(&m.ID, &m.UniversityID, &m.CampusID, &m.CourseID, &m.MaterialType,
			&m.Title, &m.Subtitle, &m.File, &m.CreatedAt)
		return m, err
	})
}
