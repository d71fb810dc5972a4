package repositories

import (
	"errors"
	"fmt"
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sembesalum/tu-chat-api/internal/app/models"
	"github.com/sembesalum/tu-chat-api/internal/pkg/apperrors"
)

func int64Ptr(v int64) *int64 { return &v }

func TestToggleQueries(t *testing.T) {
	delSQL, delArgs, insSQL, insArgs, err := toggleQueries(newBuilder(), "group_followers",
		squirrel.Eq{"user_id": int64(3), "group_id": int64(9)})
	require.NoError(t, err)

	assert.Equal(t, "DELETE FROM group_followers WHERE group_id = $1 AND user_id = $2", delSQL)
	assert.Equal(t, []interface{}{int64(9), int64(3)}, delArgs)
	assert.Equal(t, "INSERT INTO group_followers (group_id,user_id) VALUES ($1,$2) ON CONFLICT DO NOTHING", insSQL)
	assert.Equal(t, []interface{}{int64(9), int64(3)}, insArgs)
}

func TestOTPUpsertResetsVerification(t *testing.T) {
	sql, args, err := NewOTPRepository(nil).upsertQuery(5, "123456")
	require.NoError(t, err)

	assert.Contains(t, sql, "ON CONFLICT (user_id) DO UPDATE")
	assert.Contains(t, sql, "verified = FALSE")
	assert.Equal(t, []interface{}{int64(5), "123456", false}, args)
}

func TestBlogFeedsAreSeparate(t *testing.T) {
	repo := NewBlogRepository(nil)

	sql, args, err := repo.listQuery(BlogFilter{}).ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "b.is_breaking_news = $1")
	assert.Equal(t, []interface{}{false}, args)

	sql, args, err = repo.listQuery(BlogFilter{UniversityID: int64Ptr(2), BreakingNews: true}).ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "b.university_id = $2")
	assert.Contains(t, sql, "ORDER BY b.date DESC, b.id DESC")
	assert.Equal(t, []interface{}{true, int64(2)}, args)
}

func TestMaterialListQuery(t *testing.T) {
	repo := NewMaterialRepository(nil)
	notes := models.MaterialType("notes")

	sql, args, err := repo.listQuery(MaterialFilter{UniversityID: 1, CampusID: 2, CourseID: 3}).ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "campus_id = $1 AND course_id = $2 AND university_id = $3")
	assert.NotContains(t, sql, "material_type =")
	assert.Equal(t, []interface{}{int64(2), int64(3), int64(1)}, args)

	sql, args, err = repo.listQuery(MaterialFilter{UniversityID: 1, CampusID: 2, CourseID: 3, MaterialType: &notes}).ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "material_type = $4")
	assert.Len(t, args, 4)
}

func TestDirectoryFilters(t *testing.T) {
	repo := NewDirectoryRepository(nil)

	sql, args, err := repo.campusQuery(nil).ToSql()
	require.NoError(t, err)
	assert.NotContains(t, sql, "WHERE")
	assert.Empty(t, args)

	sql, args, err = repo.courseQuery(int64Ptr(4), int64Ptr(1)).ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "co.campus_id = $1 AND co.university_id = $2")
	assert.Equal(t, []interface{}{int64(4), int64(1)}, args)
}

func TestGroupListQuery(t *testing.T) {
	repo := NewGroupRepository(nil)

	sql, _, err := repo.listQuery(nil).ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "FROM group_followers f WHERE f.group_id = g.id")
	assert.NotContains(t, sql, "WHERE g.community_id")

	sql, args, err := repo.listQuery(int64Ptr(7)).ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "WHERE g.community_id = $1")
	assert.Equal(t, []interface{}{int64(7)}, args)
}

func TestGroupReferenceError(t *testing.T) {
	missingUser := fmt.Errorf("toggle: %w", &pgconn.PgError{Code: "23503", ConstraintName: "group_followers_user_id_fkey"})
	assert.Equal(t, apperrors.ErrUserNotFound, groupReferenceError(missingUser))
	assert.Equal(t, "User not found", apperrors.Message(groupReferenceError(missingUser)))

	missingGroup := &pgconn.PgError{Code: "23503", ConstraintName: "group_memberships_group_id_fkey"}
	assert.Equal(t, ErrGroupNotFound, groupReferenceError(missingGroup))

	assert.NoError(t, groupReferenceError(errors.New("connection reset")))
}

func TestDirectMessageQueries(t *testing.T) {
	repo := NewDirectMessageRepository(nil)

	sql, args, err := repo.threadQuery(1, 2).ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "(m.recipient_id = $1 AND m.sender_id = $2) OR (m.recipient_id = $3 AND m.sender_id = $4)")
	assert.Contains(t, sql, "ORDER BY m.timestamp, m.id")
	assert.Equal(t, []interface{}{int64(2), int64(1), int64(1), int64(2)}, args)

	sql, args, err = repo.partnersQuery(6).ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "CASE WHEN sender_id = $1")
	assert.Contains(t, sql, "SELECT DISTINCT u.id, u.username FROM (SELECT")
	assert.Equal(t, []interface{}{int64(6), int64(6), int64(6)}, args)

	sql, _, err = newBuilder().Delete("direct_messages").Where(between("", 1, 2)).ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "(recipient_id = $1 AND sender_id = $2) OR (recipient_id = $3 AND sender_id = $4)")
}

func TestProductChanges(t *testing.T) {
	assert.True(t, ProductChanges{}.Empty())

	title := "Calculator"
	sold := true
	img := "products/x.png"
	changes := ProductChanges{Title: &title, IsSold: &sold}
	changes.Images[2] = &img

	sql, args, err := NewProductRepository(nil).updateQuery(11, changes)
	require.NoError(t, err)
	assert.Equal(t, "UPDATE products SET image3 = $1, is_sold = $2, title = $3 WHERE id = $4", sql)
	assert.Equal(t, []interface{}{img, true, title, int64(11)}, args)
}

func TestProductListQuery(t *testing.T) {
	books := models.ProductCategory("books")
	sql, args, err := NewProductRepository(nil).listQuery(&books).ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "p.price::float8")
	assert.Contains(t, sql, "WHERE p.category = $1")
	assert.Equal(t, []interface{}{books}, args)
}
