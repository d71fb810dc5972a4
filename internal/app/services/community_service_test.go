package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sembesalum/tu-chat-api/internal/app/models"
	"github.com/sembesalum/tu-chat-api/internal/app/models/dto"
	"github.com/sembesalum/tu-chat-api/internal/pkg/apperrors"
)

type fakeCommunities struct {
	communities []models.Community
}

func (f *fakeCommunities) Create(_ context.Context, c *models.Community) error {
	c.ID = int64(len(f.communities) + 1)
	f.communities = append(f.communities, *c)
	return nil
}

func (f *fakeCommunities) List(context.Context) ([]models.Community, error) {
	return append([]models.Community{}, f.communities...), nil
}

func (f *fakeCommunities) GetByID(_ context.Context, id int64) (*models.Community, error) {
	for _, c := range f.communities {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, apperrors.NewResourceNotFoundError("Community not found")
}

func newCommunityFixture(t *testing.T) (CommunityService, *fakeGroups, *fakeStorage, int64) {
	t.Helper()
	communities := &fakeCommunities{}
	groups := newFakeGroups()
	storage := &fakeStorage{}
	svc := NewCommunityService(communities, groups, storage, zerolog.Nop())

	c, err := svc.CreateCommunity(context.Background(), 1, &dto.CreateCommunityRequest{Name: "Sports", Description: "All sports"})
	require.NoError(t, err)
	g, err := svc.CreateGroup(context.Background(), 1, &dto.CreateGroupRequest{CommunityID: c.ID, Name: "Football"}, upload("ball.png"))
	require.NoError(t, err)
	return svc, groups, storage, g.ID
}

func TestCreateGroup(t *testing.T) {
	svc, groups, storage, groupID := newCommunityFixture(t)
	ctx := context.Background()

	g := groups.groups[groupID]
	assert.Equal(t, models.PolicyEveryone, g.InteractionPolicy)
	assert.Equal(t, int64(1), g.AdminID)
	assert.Equal(t, []string{"group_pictures/ball.png"}, storage.saved)

	_, err := svc.CreateGroup(ctx, 1, &dto.CreateGroupRequest{CommunityID: 99, Name: "Orphan"}, nil)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)

	list, err := svc.ListGroups(ctx, int64Ptr(1))
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "/media/group_pictures/ball.png", *list[0].ProfilePicture)

	_, err = svc.ListGroups(ctx, int64Ptr(42))
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestToggleFollowTwiceRestoresCount(t *testing.T) {
	svc, _, _, groupID := newCommunityFixture(t)
	ctx := context.Background()

	_, err := svc.ToggleFollow(ctx, 2, groupID)
	require.NoError(t, err)

	followed, err := svc.ToggleFollow(ctx, 9, groupID)
	require.NoError(t, err)
	assert.True(t, followed.IsFollowing)
	assert.Equal(t, 2, followed.FollowerCount)

	unfollowed, err := svc.ToggleFollow(ctx, 9, groupID)
	require.NoError(t, err)
	assert.False(t, unfollowed.IsFollowing)
	assert.Equal(t, 1, unfollowed.FollowerCount)

	_, err = svc.ToggleFollow(ctx, 9, 404)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestMembership(t *testing.T) {
	svc, _, _, groupID := newCommunityFixture(t)
	ctx := context.Background()

	m, err := svc.JoinGroup(ctx, 5, groupID)
	require.NoError(t, err)
	assert.False(t, m.IsAdmin)

	_, err = svc.JoinGroup(ctx, 5, groupID)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	require.NoError(t, svc.LeaveGroup(ctx, 5, groupID))
	assert.ErrorIs(t, svc.LeaveGroup(ctx, 5, groupID), apperrors.ErrResourceNotFound)
}

func TestPromoteUser(t *testing.T) {
	svc, _, _, groupID := newCommunityFixture(t)
	ctx := context.Background()

	_, err := svc.JoinGroup(ctx, 5, groupID)
	require.NoError(t, err)
	_, err = svc.JoinGroup(ctx, 6, groupID)
	require.NoError(t, err)

	_, err = svc.PromoteUser(ctx, 6, 5, groupID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	m, err := svc.PromoteUser(ctx, 1, 5, groupID)
	require.NoError(t, err)
	assert.True(t, m.IsAdmin)

	// A promoted member can promote others.
	m, err = svc.PromoteUser(ctx, 5, 6, groupID)
	require.NoError(t, err)
	assert.True(t, m.IsAdmin)

	_, err = svc.PromoteUser(ctx, 1, 77, groupID)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}
