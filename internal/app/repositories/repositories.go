package repositories

import (
	"context"
	"fmt"
	"sort"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sembesalum/tu-chat-api/internal/db"
	"github.com/sembesalum/tu-chat-api/internal/pkg/apperrors"
	"github.com/sembesalum/tu-chat-api/internal/pkg/dberrors"
)

// Repositories holds all the repository instances
type Repositories struct {
	DirectoryRepository     *DirectoryRepository
	UserRepository          *UserRepository
	TokenRepository         *TokenRepository
	OTPRepository           *OTPRepository
	MaterialRepository      *MaterialRepository
	EventRepository         *EventRepository
	BlogRepository          *BlogRepository
	CommentRepository       *CommentRepository
	LeaderRepository        *LeaderRepository
	NotificationRepository  *NotificationRepository
	CommunityRepository     *CommunityRepository
	GroupRepository         *GroupRepository
	GroupMessageRepository  *GroupMessageRepository
	DirectMessageRepository *DirectMessageRepository
	ProductRepository       *ProductRepository
}

// NewRepositories initializes all repositories
func NewRepositories(pool *pgxpool.Pool) *Repositories {
	return &Repositories{
		DirectoryRepository:     NewDirectoryRepository(pool),
		UserRepository:          NewUserRepository(pool),
		TokenRepository:         NewTokenRepository(pool),
		OTPRepository:           NewOTPRepository(pool),
		MaterialRepository:      NewMaterialRepository(pool),
		EventRepository:         NewEventRepository(pool),
		BlogRepository:          NewBlogRepository(pool),
		CommentRepository:       NewCommentRepository(pool),
		LeaderRepository:        NewLeaderRepository(pool),
		NotificationRepository:  NewNotificationRepository(pool),
		CommunityRepository:     NewCommunityRepository(pool),
		GroupRepository:         NewGroupRepository(pool),
		GroupMessageRepository:  NewGroupMessageRepository(pool),
		DirectMessageRepository: NewDirectMessageRepository(pool),
		ProductRepository:       NewProductRepository(pool),
	}
}

func newBuilder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// toggle deletes the row matching key and, when nothing was deleted, inserts
// it. The insert tolerates a concurrent insert of the same key. It reports
// whether the row exists afterwards.
func toggle(ctx context.Context, pool db.Beginner, sb squirrel.StatementBuilderType, table string, key squirrel.Eq) (bool, error) {
	delSQL, delArgs, insSQL, insArgs, err := toggleQueries(sb, table, key)
	if err != nil {
		return false, fmt.Errorf("failed to build toggle query: %w", err)
	}

	present := false
	err = db.WithTransaction(ctx, pool, func(ctx context.Context, tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, delSQL, delArgs...)
		if err != nil {
			return err
		}
		if tag.RowsAffected() > 0 {
			return nil
		}
		if _, err := tx.Exec(ctx, insSQL, insArgs...); err != nil {
			return err
		}
		present = true
		return nil
	})
	return present, err
}

func toggleQueries(sb squirrel.StatementBuilderType, table string, key squirrel.Eq) (string, []interface{}, string, []interface{}, error) {
	delSQL, delArgs, err := sb.Delete(table).Where(key).ToSql()
	if err != nil {
		return "", nil, "", nil, err
	}

	cols := sortedKeys(key)
	vals := make([]interface{}, len(cols))
	for i, c := range cols {
		vals[i] = key[c]
	}
	insSQL, insArgs, err := sb.Insert(table).Columns(cols...).Values(vals...).
		Suffix("ON CONFLICT DO NOTHING").ToSql()
	if err != nil {
		return "", nil, "", nil, err
	}
	return delSQL, delArgs, insSQL, insArgs, nil
}

func sortedKeys(m squirrel.Eq) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// mapReferenceError turns a foreign key violation into a not found error
// carrying message.
func mapReferenceError(err error, message string) error {
	if dberrors.IsForeignKeyViolation(err) {
		return apperrors.NewResourceNotFoundError(message)
	}
	return err
}
