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

func TestUpdateProfile(t *testing.T) {
	users := newFakeUsers()
	alice := users.add("alice")
	users.add("bob")
	storage := &fakeStorage{}
	svc := NewProfileService(users, storage, zerolog.Nop())
	ctx := context.Background()

	_, err := svc.UpdateProfile(ctx, 2, alice.ID, &dto.UpdateProfileRequest{Username: strPtr("mallory")}, nil)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	_, err = svc.UpdateProfile(ctx, alice.ID, alice.ID, &dto.UpdateProfileRequest{Username: strPtr("bob")}, nil)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	_, err = svc.UpdateProfile(ctx, alice.ID, alice.ID, &dto.UpdateProfileRequest{Username: strPtr("  ")}, nil)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	p, err := svc.UpdateProfile(ctx, alice.ID, alice.ID, &dto.UpdateProfileRequest{
		Username:    strPtr("alice2"),
		PhoneNumber: strPtr("+255700000000"),
	}, upload("me.png"))
	require.NoError(t, err)
	assert.Equal(t, "alice2", p.Username)
	assert.Equal(t, "+255700000000", p.PhoneNumber)
	assert.Equal(t, "/media/profile_pictures/me.png", *p.ProfilePicture)
	assert.Equal(t, "X", p.University)
	assert.Empty(t, storage.deleted)

	_, err = svc.UpdateProfile(ctx, alice.ID, alice.ID, &dto.UpdateProfileRequest{}, upload("new.png"))
	require.NoError(t, err)
	assert.Equal(t, []string{"profile_pictures/me.png"}, storage.deleted)

	list, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, []dto.UserSummaryResponse{{ID: 1, Username: "alice2"}, {ID: 2, Username: "bob"}}, list)

	_, err = svc.GetProfile(ctx, 42)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

type fakeLeaders struct {
	leaders []models.Leader
}

func (f *fakeLeaders) Create(_ context.Context, l *models.Leader) error {
	l.ID = int64(len(f.leaders) + 1)
	f.leaders = append(f.leaders, *l)
	return nil
}

func (f *fakeLeaders) List(_ context.Context, universityID, campusID int64) ([]models.Leader, error) {
	out := []models.Leader{}
	for _, l := range f.leaders {
		if l.UniversityID == universityID && l.CampusID == campusID {
			out = append(out, l)
		}
	}
	return out, nil
}

func TestLeaders(t *testing.T) {
	svc := NewLeaderService(&fakeLeaders{}, newFakeDirectory(), &fakeStorage{}, zerolog.Nop())
	ctx := context.Background()

	_, err := svc.ListLeaders(ctx, 1, 10)
	assert.Equal(t, ErrNoLeaders, err)

	_, err = svc.CreateLeader(ctx, &dto.CreateLeaderRequest{UniversityID: 1, CampusID: 20, Names: "A B", Title: "President"}, nil)
	assert.Equal(t, apperrors.ErrInvalidCampus, err)

	l, err := svc.CreateLeader(ctx, &dto.CreateLeaderRequest{UniversityID: 1, CampusID: 10, Names: "A B", Title: "President"}, upload("ab.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "/media/leaders/ab.jpg", *l.Image)

	list, err := svc.ListLeaders(ctx, 1, 10)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
