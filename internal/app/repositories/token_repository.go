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
	"github.com/sembesalum/tu-chat-api/internal/pkg/apperrors"
	"github.com/sembesalum/tu-chat-api/internal/pkg/logger"
)

// TokenRepository stores issued bearer tokens so they can be revoked
type TokenRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewTokenRepository creates a new TokenRepository
func NewTokenRepository(db *pgxpool.Pool) *TokenRepository {
	return &TokenRepository{
		db: db,
		sb: newBuilder(),
	}
}

// CreateToken records an issued token. A nil expiresAt never expires.
func (r *TokenRepository) CreateToken(ctx context.Context, tokenID string, userID int64, expiresAt *time.Time) error {
	sql, args, err := r.sb.Insert("auth_tokens").
		Columns("token_id", "user_id", "expires_at").
		Values(tokenID, userID, expiresAt).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create token SQL")
		return fmt.Errorf("failed to build create token query: %w", err)
	}

	if _, err = r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error executing create token query")
		return fmt.Errorf("error creating token: %w", err)
	}
	return nil
}

// GetToken returns the stored token, or ErrTokenNotFound once revoked
func (r *TokenRepository) GetToken(ctx context.Context, tokenID string) (*models.AuthToken, error) {
	sql, args, err := r.sb.Select("token_id", "user_id", "expires_at", "created_at").
		From("auth_tokens").
		Where(squirrel.Eq{"token_id": tokenID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get token query: %w", err)
	}

	var t models.AuthToken
	err = r.db.QueryRow(ctx, sql, args...).Scan(&t.TokenID, &t.UserID, &t.ExpiresAt, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTokenNotFound
		}
		logger.Error().Err(err).Msg("Error scanning token row")
		return nil, fmt.Errorf("error retrieving token: %w", err)
	}
	return &t, nil
}

// DeleteToken revokes a single token
func (r *TokenRepository) DeleteToken(ctx context.Context, tokenID string) error {
	sql, args, err := r.sb.Delete("auth_tokens").Where(squirrel.Eq{"token_id": tokenID}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete token query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing delete token query")
		return fmt.Errorf("error deleting token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrTokenNotFound
	}
	return nil
}

// DeleteExpired removes tokens whose expiry lies before now
func (r *TokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	sql, args, err := r.sb.Delete("auth_tokens").
		Where(squirrel.And{squirrel.NotEq{"expires_at": nil}, squirrel.Lt{"expires_at": now}}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build purge tokens query: %w", err)
	}
	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("error purging tokens: %w", err)
	}
	return tag.RowsAffected(), nil
}
