package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sembesalum/tu-chat-api/internal/app/models"
	"github.com/sembesalum/tu-chat-api/internal/pkg/apperrors"
	"github.com/sembesalum/tu-chat-api/internal/pkg/dberrors"
	"github.com/sembesalum/tu-chat-api/internal/pkg/logger"
)

const membershipConstraint = "group_memberships_user_group_key"

// Group errors
var (
	ErrGroupNotFound    = apperrors.NewResourceNotFoundError("Group not found")
	ErrAlreadyMember    = apperrors.NewConflictError("You are already a member of this group")
	ErrNotMember        = apperrors.NewResourceNotFoundError("You are not a member of this group")
	ErrMembershipAbsent = apperrors.NewResourceNotFoundError("User is not a member of this group")
)

// groupReferenceError maps a foreign key violation on a follower or
// membership row to the missing parent. It returns nil for other errors.
func groupReferenceError(err error) error {
	constraint, ok := dberrors.ForeignKeyConstraint(err)
	if !ok {
		return nil
	}
	if strings.HasSuffix(constraint, "_group_id_fkey") {
		return ErrGroupNotFound
	}
	return apperrors.ErrUserNotFound
}

// GroupRepository handles groups, their followers and their memberships
type GroupRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewGroupRepository creates a new GroupRepository
func NewGroupRepository(db *pgxpool.Pool) *GroupRepository {
	return &GroupRepository{
		db: db,
		sb: newBuilder(),
	}
}

// Create inserts a group
func (r *GroupRepository) Create(ctx context.Context, g *models.Group) error {
	sql, args, err := r.sb.Insert("groups").
		Columns("community_id", "admin_id", "name", "description", "profile_picture", "interaction_policy").
		Values(g.CommunityID, g.AdminID, g.Name, g.Description, g.ProfilePicture, g.InteractionPolicy).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create group query: %w", err)
	}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&g.ID, &g.CreatedAt); err != nil {
		logger.Error().Err(err).Msg("Error executing create group query")
		return mapReferenceError(err, "Community not found")
	}
	return nil
}

func (r *GroupRepository) selectQuery() squirrel.SelectBuilder {
	return r.sb.Select(
		"g.id", "g.community_id", "g.admin_id", "g.name", "g.description", "g.profile_picture",
		"g.interaction_policy", "g.created_at", "u.username",
		"(SELECT COUNT(*) FROM group_followers f WHERE f.group_id = g.id)",
	).
		From("groups g").
		Join("users u ON u.id = g.admin_id")
}

func scanGroup(row pgx.Row) (models.Group, error) {
	var g models.Group
	err := row.Scan(&g.ID, &g.CommunityID, &g.AdminID, &g.Name, &g.Description, &g.ProfilePicture,
		&g.InteractionPolicy, &g.CreatedAt, &g.AdminUsername, &g.FollowerCount)
	return g, err
}

func (r *GroupRepository) listQuery(communityID *int64) squirrel.SelectBuilder {
	q := r.selectQuery().OrderBy("g.id")
	if communityID != nil {
		q = q.Where(squirrel.Eq{"g.community_id": *communityID})
	}
	return q
}

// List returns groups, optionally those of one community
func (r *GroupRepository) List(ctx context.Context, communityID *int64) ([]models.Group, error) {
	sql, args, err := r.listQuery(communityID).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list groups query: %w", err)
	}
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing groups")
		return nil, fmt.Errorf("error listing groups: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Group, error) {
		return scanGroup(row)
	})
}

// GetByID returns a group with its follower count
func (r *GroupRepository) GetByID(ctx context.Context, id int64) (*models.Group, error) {
	sql, args, err := r.selectQuery().Where(squirrel.Eq{"g.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get group query: %w", err)
	}
	g, err := scanGroup(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrGroupNotFound
		}
		return nil, fmt.Errorf("error retrieving group: %w", err)
	}
	return &g, nil
}

// ToggleFollow removes the user's follow of the group if present, otherwise
// adds it, and returns the resulting state.
func (r *GroupRepository) ToggleFollow(ctx context.Context, userID, groupID int64) (*models.FollowState, error) {
	following, err := toggle(ctx, r.db, r.sb, "group_followers", squirrel.Eq{"user_id": userID, "group_id": groupID})
	if err != nil {
		if refErr := groupReferenceError(err); refErr != nil {
			return nil, refErr
		}
		return nil, fmt.Errorf("error toggling follow: %w", err)
	}

	count, err := r.CountFollowers(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return &models.FollowState{IsFollowing: following, FollowerCount: count}, nil
}

// CountFollowers returns the size of the group's follower set
func (r *GroupRepository) CountFollowers(ctx context.Context, groupID int64) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM group_followers WHERE group_id = $1", groupID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("error counting followers: %w", err)
	}
	return n, nil
}

// IsFollower reports whether the user follows the group
func (r *GroupRepository) IsFollower(ctx context.Context, userID, groupID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM group_followers WHERE user_id = $1 AND group_id = $2)",
		userID, groupID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking follower: %w", err)
	}
	return exists, nil
}

// Join creates a membership; a second join of the same pair is a conflict
func (r *GroupRepository) Join(ctx context.Context, userID, groupID int64) (*models.Membership, error) {
	sql, args, err := r.sb.Insert("group_memberships").
		Columns("user_id", "group_id", "is_admin").
		Values(userID, groupID, false).
		Suffix("RETURNING id, is_admin, joined_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build join group query: %w", err)
	}

	m := models.Membership{UserID: userID, GroupID: groupID}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&m.ID, &m.IsAdmin, &m.JoinedAt); err != nil {
		switch {
		case dberrors.IsDuplicateConstraintError(err, membershipConstraint):
			return nil, ErrAlreadyMember
		}
		if refErr := groupReferenceError(err); refErr != nil {
			return nil, refErr
		}
		return nil, fmt.Errorf("error joining group: %w", err)
	}
	return &m, nil
}

// Leave deletes the user's membership of the group
func (r *GroupRepository) Leave(ctx context.Context, userID, groupID int64) error {
	sql, args, err := r.sb.Delete("group_memberships").
		Where(squirrel.Eq{"user_id": userID, "group_id": groupID}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build leave group query: %w", err)
	}
	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error leaving group: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotMember
	}
	return nil
}

// GetMembership returns the user's membership of the group
func (r *GroupRepository) GetMembership(ctx context.Context, userID, groupID int64) (*models.Membership, error) {
	sql, args, err := r.sb.Select("id", "user_id", "group_id", "is_admin", "joined_at").
		From("group_memberships").
		Where(squirrel.Eq{"user_id": userID, "group_id": groupID}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get membership query: %w", err)
	}
	var m models.Membership
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&m.ID, &m.UserID, &m.GroupID, &m.IsAdmin, &m.JoinedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMembershipAbsent
		}
		return nil, fmt.Errorf("error retrieving membership: %w", err)
	}
	return &m, nil
}

// Promote sets the admin flag of an existing membership
func (r *GroupRepository) Promote(ctx context.Context, userID, groupID int64) (*models.Membership, error) {
	sql, args, err := r.sb.Update("group_memberships").Set("is_admin", true).
		Where(squirrel.Eq{"user_id": userID, "group_id": groupID}).
		Suffix("RETURNING id, user_id, group_id, is_admin, joined_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build promote query: %w", err)
	}
	var m models.Membership
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&m.ID, &m.UserID, &m.GroupID, &m.IsAdmin, &m.JoinedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMembershipAbsent
		}
		return nil, fmt.Errorf("error promoting member: %w", err)
	}
	return &m, nil
}
