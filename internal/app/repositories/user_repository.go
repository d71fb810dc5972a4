package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sembesalum/tu-chat-api/internal/app/models"
	"github.com/sembesalum/tu-chat-api/internal/db"
	"github.com/sembesalum/tu-chat-api/internal/pkg/apperrors"
	"github.com/sembesalum/tu-chat-api/internal/pkg/dberrors"
	"github.com/sembesalum/tu-chat-api/internal/pkg/logger"
)

// Unique constraints on the users table
const (
	usernameConstraint = "users_username_key"
	emailConstraint    = "users_email_key"
)

// UserRepository handles users and their profiles
type UserRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		db: db,
		sb: newBuilder(),
	}
}

// mapUserWriteError turns unique violations into their conflict errors
func mapUserWriteError(err error) error {
	switch {
	case dberrors.IsDuplicateConstraintError(err, usernameConstraint):
		return apperrors.ErrUsernameExists
	case dberrors.IsDuplicateConstraintError(err, emailConstraint):
		return apperrors.ErrEmailExists
	case dberrors.IsForeignKeyViolation(err):
		return apperrors.NewResourceNotFoundError("Referenced directory entry not found")
	}
	return err
}

// CreateUserWithProfile inserts the user and its profile in one transaction
// and returns the new user id.
func (r *UserRepository) CreateUserWithProfile(ctx context.Context, user *models.User, profile *models.Profile) (int64, error) {
	userSQL, userArgs, err := r.sb.Insert("users").
		Columns("username", "email", "password", "is_active").
		Values(user.Username, user.Email, user.Password, true).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create user query: %w", err)
	}

	err = db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, userSQL, userArgs...).Scan(&user.ID, &user.CreatedAt); err != nil {
			return mapUserWriteError(err)
		}

		profileSQL, profileArgs, err := r.sb.Insert("profiles").
			Columns("user_id", "university_id", "campus_id", "course_id", "phone_number", "profile_picture").
			Values(user.ID, profile.UniversityID, profile.CampusID, profile.CourseID, profile.PhoneNumber, profile.ProfilePicture).
			Suffix("RETURNING id").
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build create profile query: %w", err)
		}
		if err := tx.QueryRow(ctx, profileSQL, profileArgs...).Scan(&profile.ID); err != nil {
			return mapUserWriteError(err)
		}
		profile.UserID = user.ID
		return nil
	})
	if err != nil {
		if !apperrors.Is(err, apperrors.ErrConflict, apperrors.ErrResourceNotFound) {
			logger.Error().Err(err).Str("email", user.Email).Msg("Error creating user with profile")
		}
		return 0, err
	}

	user.IsActive = true
	return user.ID, nil
}

func (r *UserRepository) getUser(ctx context.Context, where squirrel.Eq) (*models.User, error) {
	sql, args, err := r.sb.Select("id", "username", "email", "password", "is_active", "created_at").
		From("users").Where(where).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get user query: %w", err)
	}

	var u models.User
	err = r.db.QueryRow(ctx, sql, args...).Scan(&u.ID, &u.Username, &u.Email, &u.Password, &u.IsActive, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Msg("Error scanning user row")
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}
	return &u, nil
}

// GetUserByEmail retrieves a user by email
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getUser(ctx, squirrel.Eq{"email": email})
}

// GetUserByID retrieves a user by ID
func (r *UserRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return r.getUser(ctx, squirrel.Eq{"id": id})
}

// ListUsers returns the id and username of every user
func (r *UserRepository) ListUsers(ctx context.Context) ([]models.UserSummary, error) {
	sql, args, err := r.sb.Select("id", "username").From("users").OrderBy("id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list users query: %w", err)
	}
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.UserSummary, error) {
		var u models.UserSummary
		err := row.Scan(&u.ID, &u.Username)
		return u, err
	})
}

func (r *UserRepository) profileQuery() squirrel.SelectBuilder {
	return r.sb.Select(
		"p.id", "p.user_id", "p.phone_number", "p.profile_picture",
		"p.university_id", "p.campus_id", "p.course_id",
		"u.username", "u.email", "un.name", "ca.name", "co.name",
	).
		From("profiles p").
		Join("users u ON u.id = p.user_id").
		Join("universities un ON un.id = p.university_id").
		Join("campuses ca ON ca.id = p.campus_id").
		Join("courses co ON co.id = p.course_id")
}

// GetProfileByUserID returns the profile of a user joined with its directory names
func (r *UserRepository) GetProfileByUserID(ctx context.Context, userID int64) (*models.Profile, error) {
	sql, args, err := r.profileQuery().Where(squirrel.Eq{"p.user_id": userID}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get profile query: %w", err)
	}

	var p models.Profile
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&p.ID, &p.UserID, &p.PhoneNumber, &p.ProfilePicture,
		&p.UniversityID, &p.CampusID, &p.CourseID,
		&p.Username, &p.Email, &p.UniversityName, &p.CampusName, &p.CourseName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewResourceNotFoundError("Profile not found")
		}
		logger.Error().Err(err).Int64("userID", userID).Msg("Error scanning profile row")
		return nil, fmt.Errorf("error retrieving profile: %w", err)
	}
	return &p, nil
}

// ProfileUpdate lists the profile attributes to change; nil fields are kept
type ProfileUpdate struct {
	Username       *string
	PhoneNumber    *string
	ProfilePicture *string
}

// UpdateProfile applies update to the user's profile in one transaction
func (r *UserRepository) UpdateProfile(ctx context.Context, userID int64, update ProfileUpdate) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if update.Username != nil {
			sql, args, err := r.sb.Update("users").Set("username", *update.Username).
				Where(squirrel.Eq{"id": userID}).ToSql()
			if err != nil {
				return fmt.Errorf("failed to build update username query: %w", err)
			}
			if _, err := tx.Exec(ctx, sql, args...); err != nil {
				return mapUserWriteError(err)
			}
		}

		set := map[string]interface{}{}
		if update.PhoneNumber != nil {
			set["phone_number"] = *update.PhoneNumber
		}
		if update.ProfilePicture != nil {
			set["profile_picture"] = *update.ProfilePicture
		}
		if len(set) == 0 {
			return nil
		}

		sql, args, err := r.sb.Update("profiles").SetMap(set).Where(squirrel.Eq{"user_id": userID}).ToSql()
		if err != nil {
			return fmt.Errorf("failed to build update profile query: %w", err)
		}
		tag, err := tx.Exec(ctx, sql, args...)
		if err != nil {
			return fmt.Errorf("error updating profile: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.NewResourceNotFoundError("User profile not found")
		}
		return nil
	})
}

// UpdatePassword stores a new password hash
func (r *UserRepository) UpdatePassword(ctx context.Context, userID int64, hash string) error {
	sql, args, err := r.sb.Update("users").Set("password", hash).Where(squirrel.Eq{"id": userID}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update password query: %w", err)
	}
	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}
