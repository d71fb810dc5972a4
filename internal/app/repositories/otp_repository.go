package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sembesalum/tu-chat-api/internal/app/models"
	"github.com/sembesalum/tu-chat-api/internal/db"
	"github.com/sembesalum/tu-chat-api/internal/pkg/apperrors"
)

// OTPRepository manages password reset codes, one per user
type OTPRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewOTPRepository creates a new OTPRepository
func NewOTPRepository(db *pgxpool.Pool) *OTPRepository {
	return &OTPRepository{
		db: db,
		sb: newBuilder(),
	}
}

func (r *OTPRepository) upsertQuery(userID int64, code string) (string, []interface{}, error) {
	return r.sb.Insert("otps").
		Columns("user_id", "code", "verified", "created_at").
		Values(userID, code, false, squirrel.Expr("NOW()")).
		Suffix("ON CONFLICT (user_id) DO UPDATE SET code = EXCLUDED.code, verified = FALSE, created_at = EXCLUDED.created_at").
		ToSql()
}

// Upsert replaces the user's code and clears its verified flag
func (r *OTPRepository) Upsert(ctx context.Context, userID int64, code string) error {
	sql, args, err := r.upsertQuery(userID, code)
	if err != nil {
		return fmt.Errorf("failed to build upsert otp query: %w", err)
	}
	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error storing otp: %w", err)
	}
	return nil
}

// Get returns the user's current code
func (r *OTPRepository) Get(ctx context.Context, userID int64) (*models.OTP, error) {
	sql, args, err := r.sb.Select("user_id", "code", "verified", "created_at").
		From("otps").Where(squirrel.Eq{"user_id": userID}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get otp query: %w", err)
	}

	var o models.OTP
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&o.UserID, &o.Code, &o.Verified, &o.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrOTPInvalid
		}
		return nil, fmt.Errorf("error retrieving otp: %w", err)
	}
	return &o, nil
}

// MarkVerified flips the verified flag of a matching unverified code. It
// reports false when the code was already verified by someone else.
func (r *OTPRepository) MarkVerified(ctx context.Context, userID int64, code string) (bool, error) {
	sql, args, err := r.sb.Update("otps").Set("verified", true).
		Where(squirrel.Eq{"user_id": userID, "code": code, "verified": false}).ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build verify otp query: %w", err)
	}
	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return false, fmt.Errorf("error verifying otp: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// ConsumeAndSetPassword deletes the user's verified code, stores the new
// password hash and revokes every issued token, atomically.
func (r *OTPRepository) ConsumeAndSetPassword(ctx context.Context, userID int64, passwordHash string) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		sql, args, err := r.sb.Delete("otps").
			Where(squirrel.Eq{"user_id": userID, "verified": true}).ToSql()
		if err != nil {
			return fmt.Errorf("failed to build consume otp query: %w", err)
		}
		tag, err := tx.Exec(ctx, sql, args...)
		if err != nil {
			return fmt.Errorf("error consuming otp: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.ErrOTPNotVerified
		}

		sql, args, err = r.sb.Update("users").Set("password", passwordHash).
			Where(squirrel.Eq{"id": userID}).ToSql()
		if err != nil {
			return fmt.Errorf("failed to build update password query: %w", err)
		}
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return fmt.Errorf("error updating password: %w", err)
		}

		sql, args, err = r.sb.Delete("auth_tokens").Where(squirrel.Eq{"user_id": userID}).ToSql()
		if err != nil {
			return fmt.Errorf("failed to build revoke tokens query: %w", err)
		}
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return fmt.Errorf("error revoking tokens: %w", err)
		}
		return nil
	})
}

// DeleteOlderThan removes codes created before cutoff
func (r *OTPRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	sql, args, err := r.sb.Delete("otps").Where(squirrel.Lt{"created_at": cutoff}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build purge otp query: %w", err)
	}
	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("error purging otps: %w", err)
	}
	return tag.RowsAffected(), nil
}
