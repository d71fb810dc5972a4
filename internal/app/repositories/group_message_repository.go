package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sembesalum/tu-chat-api/internal/app/models"
	"github.com/sembesalum/tu-chat-api/internal/pkg/apperrors"
)

// GroupMessageRepository handles database operations for group messages
type GroupMessageRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewGroupMessageRepository creates a new GroupMessageRepository
func NewGroupMessageRepository(db *pgxpool.Pool) *GroupMessageRepository {
	return &GroupMessageRepository{
		db: db,
		sb: newBuilder(),
	}
}

// Create inserts a message and fills in its id and server timestamp
func (r *GroupMessageRepository) Create(ctx context.Context, m *models.GroupMessage) error {
	sql, args, err := r.sb.Insert("group_messages").
		Columns("group_id", "sender_id", "username", "content").
		Values(m.GroupID, m.SenderID, m.Username, m.Content).
		Suffix("RETURNING id, read, timestamp").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create group message query: %w", err)
	}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&m.ID, &m.Read, &m.Timestamp); err != nil {
		return mapReferenceError(err, "Group not found")
	}
	return nil
}

// ListByGroup returns every message of a group in storage order
func (r *GroupMessageRepository) ListByGroup(ctx context.Context, groupID int64) ([]models.GroupMessage, error) {
	sql, args, err := r.sb.Select("id", "group_id", "sender_id", "username", "content", "read", "timestamp").
		From("group_messages").
		Where(squirrel.Eq{"group_id": groupID}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list group messages query: %w", err)
	}
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing group messages: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.GroupMessage, error) {
		var m models.GroupMessage
		err := row.Scan(&m.ID, &m.GroupID, &m.SenderID, &m.Username, &m.Content, &m.Read, &m.Timestamp)
		return m, err
	})
}

// MarkRead sets the read flag of a message
func (r *GroupMessageRepository) MarkRead(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Update("group_messages").Set("read", true).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build mark read query: %w", err)
	}
	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error marking message as read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewResourceNotFoundError("Message not found")
	}
	return nil
}
