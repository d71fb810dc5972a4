package services

import (
	"context"
	"mime/multipart"

	"github.com/rs/zerolog"

	"github.com/sembesalum/tu-chat-api/internal/app/models"
	"github.com/sembesalum/tu-chat-api/internal/app/models/dto"
	"github.com/sembesalum/tu-chat-api/internal/pkg/apperrors"
	"github.com/sembesalum/tu-chat-api/internal/pkg/filestorage"
)

// ErrNoLeaders is returned when a campus lists no leaders
var ErrNoLeaders = apperrors.NewResourceNotFoundError("No leaders found for the specified university and campus.")

// LeaderService handles the student leaders of a campus
type LeaderService interface {
	CreateLeader(ctx context.Context, req *dto.CreateLeaderRequest, image *multipart.FileHeader) (*dto.LeaderResponse, error)
	ListLeaders(ctx context.Context, universityID, campusID int64) ([]dto.LeaderResponse, error)
}

type leaderServiceImpl struct {
	leaderRepo    LeaderRepository
	directoryRepo DirectoryRepository
	storage       filestorage.FileStorage
	logger        zerolog.Logger
}

// NewLeaderService creates a new LeaderService
func NewLeaderService(leaderRepo LeaderRepository, directoryRepo DirectoryRepository, storage filestorage.FileStorage, logger zerolog.Logger) LeaderService {
	return &leaderServiceImpl{
		leaderRepo:    leaderRepo,
		directoryRepo: directoryRepo,
		storage:       storage,
		logger:        logger,
	}
}

func (s *leaderServiceImpl) toResponse(ctx context.Context, l *models.Leader) dto.LeaderResponse {
	return dto.LeaderResponse{
		ID:    l.ID,
		Names: l.Names,
		Title: l.Title,
		Image: mediaURL(ctx, s.storage, l.Image),
	}
}

func (s *leaderServiceImpl) CreateLeader(ctx context.Context, req *dto.CreateLeaderRequest, image *multipart.FileHeader) (*dto.LeaderResponse, error) {
	if err := checkHierarchy(ctx, s.directoryRepo, req.UniversityID, req.CampusID, nil); err != nil {
		return nil, err
	}

	stored, err := saveOptional(s.storage, image, filestorage.DirLeaders)
	if err != nil {
		return nil, err
	}
	l := &models.Leader{
		UniversityID: req.UniversityID,
		CampusID:     req.CampusID,
		Names:        req.Names,
		Title:        req.Title,
		Image:        stored,
	}
	if err := s.leaderRepo.Create(ctx, l); err != nil {
		discard(s.storage, stored)
		return nil, err
	}

	resp := s.toResponse(ctx, l)
	return &resp, nil
}

// ListLeaders returns the leaders of a campus; none is a not found error
func (s *leaderServiceImpl) ListLeaders(ctx context.Context, universityID, campusID int64) ([]dto.LeaderResponse, error) {
	leaders, err := s.leaderRepo.List(ctx, universityID, campusID)
	if err != nil {
		return nil, err
	}
	if len(leaders) == 0 {
		return nil, ErrNoLeaders
	}
	resp := make([]dto.LeaderResponse, 0, len(leaders))
	for i := range leaders {
		resp = append(resp, s.toResponse(ctx, &leaders[i]))
	}
	return resp, nil
}
