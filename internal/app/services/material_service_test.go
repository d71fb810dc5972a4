package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sembesalum/tu-chat-api/internal/app/models"
	"github.com/sembesalum/tu-chat-api/internal/app/models/dto"
	"github.com/sembesalum/tu-chat-api/internal/app/repositories"
	"github.com/sembesalum/tu-chat-api/internal/pkg/apperrors"
)

type fakeMaterials struct {
	materials []models.Material
	last      repositories.MaterialFilter
}

func (f *fakeMaterials) Create(_ context.Context, m *models.Material) error {
	m.ID = int64(len(f.materials) + 1)
	f.materials = append(f.materials, *m)
	return nil
}

func (f *fakeMaterials) List(_ context.Context, filter repositories.MaterialFilter) ([]models.Material, error) {
	f.last = filter
	out := []models.Material{}
	for _, m := range f.materials {
		if m.CourseID == filter.CourseID && (filter.MaterialType == nil || m.MaterialType == *filter.MaterialType) {
			out = append(out, m)
		}
	}
	return out, nil
}

func materialReq(campusID, courseID int64, materialType string) *dto.CreateMaterialRequest {
	return &dto.CreateMaterialRequest{UniversityID: 1, CampusID: campusID, CourseID: courseID, MaterialType: materialType, Title: "Exam 2023"}
}

func TestCreateMaterial(t *testing.T) {
	materials := &fakeMaterials{}
	storage := &fakeStorage{}
	svc := NewMaterialService(materials, newFakeDirectory(), storage, zerolog.Nop())
	ctx := context.Background()

	_, err := svc.CreateMaterial(ctx, materialReq(10, 100, "past_paper"), nil)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = svc.CreateMaterial(ctx, materialReq(10, 100, "poster"), upload("a.pdf"))
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = svc.CreateMaterial(ctx, materialReq(20, 100, "past_paper"), upload("a.pdf"))
	assert.Equal(t, apperrors.ErrInvalidCampus, err)

	_, err = svc.CreateMaterial(ctx, materialReq(10, 101, "past_paper"), upload("a.pdf"))
	assert.Equal(t, apperrors.ErrInvalidCourse, err)
	assert.Empty(t, storage.saved)

	m, err := svc.CreateMaterial(ctx, materialReq(10, 100, "past_paper"), upload("a.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "/media/materials/a.pdf", m.FileURL)
	assert.Equal(t, "Exam 2023", *m.Title)
	assert.Nil(t, m.Subtitle)

	list, err := svc.ListMaterials(ctx, 1, 10, 100, "past_paper")
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, models.MaterialPastPaper, *materials.last.MaterialType)

	list, err = svc.ListMaterials(ctx, 1, 10, 100, "notes")
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = svc.ListMaterials(ctx, 1, 10, 100, "poster")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

type fakeEvents struct {
	events []models.Event
}

func (f *fakeEvents) Create(_ context.Context, e *models.Event) error {
	e.ID = int64(len(f.events) + 1)
	f.events = append(f.events, *e)
	return nil
}

func (f *fakeEvents) List(_ context.Context, universityID *int64) ([]models.Event, error) {
	out := []models.Event{}
	for _, e := range f.events {
		if universityID == nil || e.UniversityID == *universityID {
			out = append(out, e)
		}
	}
	return out, nil
}

func TestCreateEvent(t *testing.T) {
	svc := NewEventService(&fakeEvents{}, newFakeDirectory(), &fakeStorage{}, zerolog.Nop())
	ctx := context.Background()
	req := &dto.CreateEventRequest{UniversityID: 1, Title: "Graduation", Time: "14:30", Date: "2025-11-20"}

	e, err := svc.CreateEvent(ctx, 7, req, upload("grad.png"))
	require.NoError(t, err)
	assert.Equal(t, "2025-11-20", e.Date)
	assert.Equal(t, int64(7), *e.UserID)
	assert.Equal(t, "/media/events/grad.png", *e.ImageURL)

	bad := *req
	bad.UniversityID = 3
	_, err = svc.CreateEvent(ctx, 7, &bad, nil)
	assert.Equal(t, apperrors.ErrInvalidUniversity, err)

	list, err := svc.ListEvents(ctx, int64Ptr(2))
	require.NoError(t, err)
	assert.Empty(t, list)
	list, err = svc.ListEvents(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
