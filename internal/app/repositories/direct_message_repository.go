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
	"github.com/sembesalum/tu-chat-api/internal/pkg/logger"
)

// ErrDirectMessageNotFound is returned for unknown message ids
var ErrDirectMessageNotFound = apperrors.NewResourceNotFoundError("Message not found")

// DirectMessageRepository handles direct messages and block edges
type DirectMessageRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewDirectMessageRepository creates a new DirectMessageRepository
func NewDirectMessageRepository(db *pgxpool.Pool) *DirectMessageRepository {
	return &DirectMessageRepository{
		db: db,
		sb: newBuilder(),
	}
}

// between matches messages exchanged in either direction by a and b.
// alias qualifies the columns when the table is aliased.
func between(alias string, a, b int64) squirrel.Or {
	sender, recipient := "sender_id", "recipient_id"
	if alias != "" {
		sender, recipient = alias+"."+sender, alias+"."+recipient
	}
	return squirrel.Or{
		squirrel.And{squirrel.Eq{sender: a, recipient: b}},
		squirrel.And{squirrel.Eq{sender: b, recipient: a}},
	}
}

// Create inserts a message
func (r *DirectMessageRepository) Create(ctx context.Context, m *models.DirectMessage) error {
	sql, args, err := r.sb.Insert("direct_messages").
		Columns("sender_id", "recipient_id", "content").
		Values(m.SenderID, m.RecipientID, m.Content).
		Suffix("RETURNING id, timestamp").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create direct message query: %w", err)
	}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&m.ID, &m.Timestamp); err != nil {
		logger.Error().Err(err).Msg("Error executing create direct message query")
		return mapReferenceError(err, "User not found")
	}
	return nil
}

func (r *DirectMessageRepository) selectQuery() squirrel.SelectBuilder {
	return r.sb.Select(
		"m.id", "m.sender_id", "m.recipient_id", "m.content", "m.timestamp", "s.username", "rc.username",
	).
		From("direct_messages m").
		Join("users s ON s.id = m.sender_id").
		Join("users rc ON rc.id = m.recipient_id")
}

func scanDirectMessage(row pgx.Row) (models.DirectMessage, error) {
	var m models.DirectMessage
	err := row.Scan(&m.ID, &m.SenderID, &m.RecipientID, &m.Content, &m.Timestamp, &m.SenderUsername, &m.RecipientUsername)
	return m, err
}

func (r *DirectMessageRepository) threadQuery(a, b int64) squirrel.SelectBuilder {
	return r.selectQuery().
		Where(between("m", a, b)).
		OrderBy("m.timestamp", "m.id")
}

// Thread returns the messages between a and b in both directions, oldest first
func (r *DirectMessageRepository) Thread(ctx context.Context, a, b int64) ([]models.DirectMessage, error) {
	sql, args, err := r.threadQuery(a, b).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build thread query: %w", err)
	}
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing thread: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.DirectMessage, error) {
		return scanDirectMessage(row)
	})
}

func (r *DirectMessageRepository) partnersQuery(userID int64) squirrel.SelectBuilder {
	counterparts := r.sb.Select().
		Column(squirrel.Expr("CASE WHEN sender_id = ? THEN recipient_id ELSE sender_id END AS partner_id", userID)).
		From("direct_messages").
		Where(squirrel.Or{squirrel.Eq{"sender_id": userID}, squirrel.Eq{"recipient_id": userID}})

	return r.sb.Select("DISTINCT u.id", "u.username").
		FromSelect(counterparts, "p").
		Join("users u ON u.id = p.partner_id").
		OrderBy("u.id")
}

// ChatPartners returns the distinct users that a user has exchanged messages with
func (r *DirectMessageRepository) ChatPartners(ctx context.Context, userID int64) ([]models.ChatPartner, error) {
	sql, args, err := r.partnersQuery(userID).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build chat partners query: %w", err)
	}
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing chat partners: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.ChatPartner, error) {
		var p models.ChatPartner
		err := row.Scan(&p.UserID, &p.Username)
		return p, err
	})
}

// GetByID returns a message
func (r *DirectMessageRepository) GetByID(ctx context.Context, id int64) (*models.DirectMessage, error) {
	sql, args, err := r.selectQuery().Where(squirrel.Eq{"m.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get direct message query: %w", err)
	}
	m, err := scanDirectMessage(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDirectMessageNotFound
		}
		return nil, fmt.Errorf("error retrieving direct message: %w", err)
	}
	return &m, nil
}

// Delete removes a message
func (r *DirectMessageRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("direct_messages").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete direct message query: %w", err)
	}
	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error deleting direct message: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrDirectMessageNotFound
	}
	return nil
}

// Block records that blocker blocks blocked. A new block also deletes every
// message between the pair. It reports whether the block is new.
func (r *DirectMessageRepository) Block(ctx context.Context, blockerID, blockedID int64) (bool, error) {
	insSQL, insArgs, err := r.sb.Insert("blocked_users").
		Columns("blocker_id", "blocked_id").
		Values(blockerID, blockedID).
		Suffix("ON CONFLICT (blocker_id, blocked_id) DO NOTHING").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build block query: %w", err)
	}
	delSQL, delArgs, err := r.sb.Delete("direct_messages").Where(between("", blockerID, blockedID)).ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build purge thread query: %w", err)
	}

	created := false
	err = db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, insSQL, insArgs...)
		if err != nil {
			return mapReferenceError(err, "User not found")
		}
		if tag.RowsAffected() == 0 {
			return nil
		}
		created = true
		_, err = tx.Exec(ctx, delSQL, delArgs...)
		return err
	})
	return created, err
}

// Unblock removes the block edge and reports whether one existed
func (r *DirectMessageRepository) Unblock(ctx context.Context, blockerID, blockedID int64) (bool, error) {
	sql, args, err := r.sb.Delete("blocked_users").
		Where(squirrel.Eq{"blocker_id": blockerID, "blocked_id": blockedID}).ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build unblock query: %w", err)
	}
	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return false, fmt.Errorf("error unblocking user: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// IsBlocked reports whether blocker blocks blocked
func (r *DirectMessageRepository) IsBlocked(ctx context.Context, blockerID, blockedID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM blocked_users WHERE blocker_id = $1 AND blocked_id = $2)",
		blockerID, blockedID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking block: %w", err)
	}
	return exists, nil
}
