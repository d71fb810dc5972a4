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

// DirectoryRepository handles the university, campus and course tables
type DirectoryRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewDirectoryRepository creates a new DirectoryRepository
func NewDirectoryRepository(db *pgxpool.Pool) *DirectoryRepository {
	return &DirectoryRepository{
		db: db,
		sb: newBuilder(),
	}
}

// ListUniversities returns every university ordered by id
func (r *DirectoryRepository) ListUniversities(ctx context.Context) ([]models.University, error) {
	sql, args, err := r.sb.Select("id", "name").From("universities").OrderBy("id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list universities query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing universities")
		return nil, fmt.Errorf("error listing universities: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.University, error) {
		var u models.University
		err := row.Scan(&u.ID, &u.Name)
		return u, err
	})
}

func (r *DirectoryRepository) campusQuery(universityID *int64) squirrel.SelectBuilder {
	q := r.sb.Select("c.id", "c.university_id", "c.name", "u.name").
		From("campuses c").
		Join("universities u ON u.id = c.university_id").
		OrderBy("c.id")
	if universityID != nil {
		q = q.Where(squirrel.Eq{"c.university_id": *universityID})
	}
	return q
}

// ListCampuses returns campuses, optionally only those of one university
func (r *DirectoryRepository) ListCampuses(ctx context.Context, universityID *int64) ([]models.Campus, error) {
	sql, args, err := r.campusQuery(universityID).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list campuses query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing campuses")
		return nil, fmt.Errorf("error listing campuses: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Campus, error) {
		var c models.Campus
		err := row.Scan(&c.ID, &c.UniversityID, &c.Name, &c.UniversityName)
		return c, err
	})
}

func (r *DirectoryRepository) courseQuery(campusID, universityID *int64) squirrel.SelectBuilder {
	q := r.sb.Select("co.id", "co.university_id", "co.campus_id", "co.name", "u.name", "ca.name").
		From("courses co").
		Join("universities u ON u.id = co.university_id").
		Join("campuses ca ON ca.id = co.campus_id").
		OrderBy("co.id")
	if campusID != nil {
		q = q.Where(squirrel.Eq{"co.campus_id": *campusID})
	}
	if universityID != nil {
		q = q.Where(squirrel.Eq{"co.university_id": *universityID})
	}
	return q
}

// ListCourses returns courses filtered by campus and/or university
func (r *DirectoryRepository) ListCourses(ctx context.Context, campusID, universityID *int64) ([]models.Course, error) {
	sql, args, err := r.courseQuery(campusID, universityID).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list courses query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing courses")
		return nil, fmt.Errorf("error listing courses: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Course, error) {
		var c models.Course
		err := row.Scan(&c.ID, &c.UniversityID, &c.CampusID, &c.Name, &c.UniversityName, &c.CampusName)
		return c, err
	})
}

func (r *DirectoryRepository) findID(ctx context.Context, table string, where squirrel.Eq, notFound error) (int64, error) {
	sql, args, err := r.sb.Select("id").From(table).Where(where).OrderBy("id").Limit(1).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build %s lookup query: %w", table, err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, notFound
		}
		logger.Error().Err(err).Str("table", table).Msg("Error looking up directory row")
		return 0, fmt.Errorf("error looking up %s: %w", table, err)
	}
	return id, nil
}

// FindUniversityIDByName resolves a university by exact name
func (r *DirectoryRepository) FindUniversityIDByName(ctx context.Context, name string) (int64, error) {
	return r.findID(ctx, "universities", squirrel.Eq{"name": name}, apperrors.ErrInvalidUniversity)
}

// FindCampusIDByName resolves a campus by exact name within a university
func (r *DirectoryRepository) FindCampusIDByName(ctx context.Context, universityID int64, name string) (int64, error) {
	return r.findID(ctx, "campuses", squirrel.Eq{"university_id": universityID, "name": name}, apperrors.ErrInvalidCampus)
}

// FindCourseIDByName resolves a course by exact name within a campus
func (r *DirectoryRepository) FindCourseIDByName(ctx context.Context, campusID int64, name string) (int64, error) {
	return r.findID(ctx, "courses", squirrel.Eq{"campus_id": campusID, "name": name}, apperrors.ErrInvalidCourse)
}

// CampusBelongsTo reports whether campusID is a campus of universityID
func (r *DirectoryRepository) CampusBelongsTo(ctx context.Context, campusID, universityID int64) (bool, error) {
	_, err := r.findID(ctx, "campuses", squirrel.Eq{"id": campusID, "university_id": universityID}, apperrors.ErrInvalidCampus)
	if errors.Is(err, apperrors.ErrInvalidCampus) {
		return false, nil
	}
	return err == nil, err
}

// CourseBelongsTo reports whether courseID is a course of campusID
func (r *DirectoryRepository) CourseBelongsTo(ctx context.Context, courseID, campusID int64) (bool, error) {
	_, err := r.findID(ctx, "courses", squirrel.Eq{"id": courseID, "campus_id": campusID}, apperrors.ErrInvalidCourse)
	if errors.Is(err, apperrors.ErrInvalidCourse) {
		return false, nil
	}
	return err == nil, err
}

// UniversityExists reports whether the university exists
func (r *DirectoryRepository) UniversityExists(ctx context.Context, id int64) (bool, error) {
	_, err := r.findID(ctx, "universities", squirrel.Eq{"id": id}, apperrors.ErrInvalidUniversity)
	if errors.Is(err, apperrors.ErrInvalidUniversity) {
		return false, nil
	}
	return err == nil, err
}

// ensure returns the id of the row matching where, inserting it when missing
func (r *DirectoryRepository) ensure(ctx context.Context, table string, where squirrel.Eq) (int64, error) {
	id, err := r.findID(ctx, table, where, apperrors.ErrResourceNotFound)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, apperrors.ErrResourceNotFound) {
		return 0, err
	}

	cols := sortedKeys(where)
	vals := make([]interface{}, len(cols))
	for i, c := range cols {
		vals[i] = where[c]
	}
	sql, args, err := r.sb.Insert(table).Columns(cols...).Values(vals...).Suffix("RETURNING id").ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build %s insert: %w", table, err)
	}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("error inserting into %s: %w", table, err)
	}
	return id, nil
}

// EnsureUniversity returns the id of the named university, creating it if needed
func (r *DirectoryRepository) EnsureUniversity(ctx context.Context, name string) (int64, error) {
	return r.ensure(ctx, "universities", squirrel.Eq{"name": name})
}

// EnsureCampus returns the id of the named campus, creating it if needed
func (r *DirectoryRepository) EnsureCampus(ctx context.Context, universityID int64, name string) (int64, error) {
	return r.ensure(ctx, "campuses", squirrel.Eq{"university_id": universityID, "name": name})
}

// EnsureCourse returns the id of the named course, creating it if needed
func (r *DirectoryRepository) EnsureCourse(ctx context.Context, universityID, campusID int64, name string) (int64, error) {
	return r.ensure(ctx, "courses", squirrel.Eq{"university_id": universityID, "campus_id": campusID, "name": name})
}

// CountUniversities returns the number of universities
func (r *DirectoryRepository) CountUniversities(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM universities").Scan(&n); err != nil {
		return 0, fmt.Errorf("error counting universities: %w", err)
	}
	return n, nil
}
