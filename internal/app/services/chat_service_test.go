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

type chatFixture struct {
	svc      ChatService
	users    *fakeUsers
	groups   *fakeGroups
	direct   *fakeDirectMessages
	alice    *models.User
	bob      *models.User
	carol    *models.User
	groupID  int64
	messages *fakeGroupMessages
}

func newChatFixture(t *testing.T) *chatFixture {
	t.Helper()
	f := &chatFixture{users: newFakeUsers(), groups: newFakeGroups(), messages: &fakeGroupMessages{}}
	f.alice, f.bob, f.carol = f.users.add("alice"), f.users.add("bob"), f.users.add("carol")
	f.direct = newFakeDirectMessages(f.users)

	g := &models.Group{CommunityID: 1, AdminID: f.alice.ID, Name: "Chess", InteractionPolicy: models.PolicyEveryone}
	require.NoError(t, f.groups.Create(context.Background(), g))
	f.groupID = g.ID

	f.svc = NewChatService(f.groups, f.messages, f.direct, f.users, zerolog.Nop())
	return f
}

func TestSendGroupMessageRequiresFollow(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()
	req := &dto.SendGroupMessageRequest{Content: "hello", Username: "bob"}

	_, err := f.svc.SendGroupMessage(ctx, f.groupID, f.bob.ID, req)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	assert.Equal(t, "You must follow this group to send messages.", apperrors.Message(err))

	_, err = f.groups.ToggleFollow(ctx, f.bob.ID, f.groupID)
	require.NoError(t, err)

	msg, err := f.svc.SendGroupMessage(ctx, f.groupID, f.bob.ID, req)
	require.NoError(t, err)
	assert.Equal(t, f.bob.ID, msg.UserID)
	assert.False(t, msg.Read)

	_, err = f.svc.SendGroupMessage(ctx, f.groupID, f.bob.ID, &dto.SendGroupMessageRequest{Content: " ", Username: "bob"})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	list, err := f.svc.ListGroupMessages(ctx, f.groupID)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, f.svc.MarkMessageAsRead(ctx, msg.ID))
	assert.True(t, f.messages.messages[0].Read)
	assert.ErrorIs(t, f.svc.MarkMessageAsRead(ctx, 999), apperrors.ErrResourceNotFound)
}

func TestAdminsOnlyGroup(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()
	f.groups.groups[f.groupID].InteractionPolicy = models.PolicyAdminsOnly

	for _, u := range []*models.User{f.alice, f.bob} {
		_, err := f.groups.ToggleFollow(ctx, u.ID, f.groupID)
		require.NoError(t, err)
	}

	_, err := f.svc.SendGroupMessage(ctx, f.groupID, f.bob.ID, &dto.SendGroupMessageRequest{Content: "hi", Username: "bob"})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	_, err = f.svc.SendGroupMessage(ctx, f.groupID, f.alice.ID, &dto.SendGroupMessageRequest{Content: "hi", Username: "alice"})
	assert.NoError(t, err)
}

func TestDirectMessagesAndBlocking(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	_, err := f.svc.GetDirectMessages(ctx, f.alice.ID, f.bob.ID)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
	assert.Equal(t, "No messages found", apperrors.Message(err))

	_, err = f.svc.SendDirectMessage(ctx, f.alice.ID, &dto.SendDirectMessageRequest{Recipient: f.alice.ID, Content: "me"})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	sent, err := f.svc.SendDirectMessage(ctx, f.alice.ID, &dto.SendDirectMessageRequest{Recipient: f.bob.ID, Content: "hi bob"})
	require.NoError(t, err)
	assert.Equal(t, "alice", sent.SenderUsername)
	assert.Equal(t, "bob", sent.RecipientUsername)

	_, err = f.svc.SendDirectMessage(ctx, f.bob.ID, &dto.SendDirectMessageRequest{Recipient: f.alice.ID, Content: "hi alice"})
	require.NoError(t, err)

	thread, err := f.svc.GetDirectMessages(ctx, f.bob.ID, f.alice.ID)
	require.NoError(t, err)
	require.Len(t, thread, 2)
	assert.Equal(t, "hi bob", thread[0].Content)
	assert.True(t, thread[0].Timestamp.Before(thread[1].Timestamp))

	partners, err := f.svc.ListChatPartners(ctx, f.alice.ID)
	require.NoError(t, err)
	assert.Equal(t, []dto.ChatPartnerResponse{{Recipient: f.bob.ID, Username: "bob"}}, partners.Users)

	// Bob blocks Alice: the thread is purged and neither side can write.
	msg, err := f.svc.Block(ctx, f.bob.ID, f.alice.ID)
	require.NoError(t, err)
	assert.Equal(t, MsgBlocked, msg)
	_, err = f.svc.GetDirectMessages(ctx, f.alice.ID, f.bob.ID)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)

	_, err = f.svc.SendDirectMessage(ctx, f.alice.ID, &dto.SendDirectMessageRequest{Recipient: f.bob.ID, Content: "?"})
	assert.Equal(t, ErrBlockedBy, err)
	_, err = f.svc.SendDirectMessage(ctx, f.bob.ID, &dto.SendDirectMessageRequest{Recipient: f.alice.ID, Content: "?"})
	assert.Equal(t, ErrBlockedTarget, err)

	msg, err = f.svc.Block(ctx, f.bob.ID, f.alice.ID)
	require.NoError(t, err)
	assert.Equal(t, MsgAlreadyBlocked, msg)

	blocked, err := f.svc.IsBlocked(ctx, f.bob.ID, f.alice.ID)
	require.NoError(t, err)
	assert.True(t, blocked)

	require.NoError(t, f.svc.Unblock(ctx, f.bob.ID, f.alice.ID))
	assert.ErrorIs(t, f.svc.Unblock(ctx, f.bob.ID, f.alice.ID), apperrors.ErrResourceNotFound)

	_, err = f.svc.SendDirectMessage(ctx, f.alice.ID, &dto.SendDirectMessageRequest{Recipient: f.bob.ID, Content: "friends again"})
	assert.NoError(t, err)

	_, err = f.svc.Block(ctx, f.bob.ID, f.bob.ID)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestDeleteDirectMessage(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	sent, err := f.svc.SendDirectMessage(ctx, f.alice.ID, &dto.SendDirectMessageRequest{Recipient: f.bob.ID, Content: "secret"})
	require.NoError(t, err)

	err = f.svc.DeleteDirectMessage(ctx, sent.ID, f.carol.ID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	require.NoError(t, f.svc.DeleteDirectMessage(ctx, sent.ID, f.bob.ID))
	assert.ErrorIs(t, f.svc.DeleteDirectMessage(ctx, sent.ID, f.bob.ID), apperrors.ErrResourceNotFound)
}

func TestGetDirectMessagesUnknownUsers(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	_, err := f.svc.GetDirectMessages(ctx, f.alice.ID, 999)
	assert.Equal(t, ErrRecipientMissing, err)
	assert.Equal(t, "Recipient not found.", apperrors.Message(err))

	_, err = f.svc.GetDirectMessages(ctx, 999, f.bob.ID)
	assert.Equal(t, ErrSenderMissing, err)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}
