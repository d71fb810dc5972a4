package services

import (
	"context"
	"mime/multipart"

	"github.com/rs/zerolog"

	"github.com/sembesalum/tu-chat-api/internal/app/models"
	"github.com/sembesalum/tu-chat-api/internal/app/models/dto"
	"github.com/sembesalum/tu-chat-api/internal/pkg/apperrors"
	"github.com/sembesalum/tu-chat-api/internal/pkg/filestorage"
	"github.com/sembesalum/tu-chat-api/internal/pkg/helpers"
)

const dateLayout = "2006-01-02"

// EventService handles university events
type EventService interface {
	CreateEvent(ctx context.Context, userID int64, req *dto.CreateEventRequest, image *multipart.FileHeader) (*dto.EventResponse, error)
	ListEvents(ctx context.Context, universityID *int64) ([]dto.EventResponse, error)
}

type eventServiceImpl struct {
	eventRepo     EventRepository
	directoryRepo DirectoryRepository
	storage       filestorage.FileStorage
	logger        zerolog.Logger
}

// NewEventService creates a new EventService
func NewEventService(eventRepo EventRepository, directoryRepo DirectoryRepository, storage filestorage.FileStorage, logger zerolog.Logger) EventService {
	return &eventServiceImpl{
		eventRepo:     eventRepo,
		directoryRepo: directoryRepo,
		storage:       storage,
		logger:        logger,
	}
}

func (s *eventServiceImpl) toResponse(ctx context.Context, e *models.Event) dto.EventResponse {
	return dto.EventResponse{
		ID:             e.ID,
		Title:          e.Title,
		Description:    e.Description,
		Time:           e.Time,
		Date:           e.Date.Format(dateLayout),
		ImageURL:       mediaURL(ctx, s.storage, e.Image),
		IsBreakingNews: e.IsBreakingNews,
		UniversityID:   e.UniversityID,
		User:           e.UserID,
		UserID:         e.UserID,
		Username:       e.Username,
	}
}

// CreateEvent records an event owned by userID
func (s *eventServiceImpl) CreateEvent(ctx context.Context, userID int64, req *dto.CreateEventRequest, image *multipart.FileHeader) (*dto.EventResponse, error) {
	date, err := helpers.ParseDate(req.Date)
	if err != nil {
		return nil, apperrors.NewBadRequestError("Invalid date, expected YYYY-MM-DD")
	}
	exists, err := s.directoryRepo.UniversityExists(ctx, req.UniversityID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.ErrInvalidUniversity
	}

	stored, err := saveOptional(s.storage, image, filestorage.DirEvents)
	if err != nil {
		return nil, err
	}

	e := &models.Event{
		UserID:         &userID,
		UniversityID:   req.UniversityID,
		Title:          req.Title,
		Description:    req.Description,
		Time:           req.Time,
		Date:           date,
		Image:          stored,
		IsBreakingNews: req.IsBreakingNews,
	}
	if err := s.eventRepo.Create(ctx, e); err != nil {
		discard(s.storage, stored)
		return nil, err
	}

	s.logger.Info().Int64("eventID", e.ID).Int64("userID", userID).Msg("Event created")
	resp := s.toResponse(ctx, e)
	return &resp, nil
}

// ListEvents returns events of one university, or all events when universityID is nil
func (s *eventServiceImpl) ListEvents(ctx context.Context, universityID *int64) ([]dto.EventResponse, error) {
	events, err := s.eventRepo.List(ctx, universityID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.EventResponse, 0, len(events))
	for i := range events {
		resp = append(resp, s.toResponse(ctx, &events[i]))
	}
	return resp, nil
}
