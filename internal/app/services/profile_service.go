package services

import (
	"context"
	"mime/multipart"
	"strings"

	"github.com/rs/zerolog"

	"github.com/sembesalum/tu-chat-api/internal/app/models"
	"github.com/sembesalum/tu-chat-api/internal/app/models/dto"
	"github.com/sembesalum/tu-chat-api/internal/app/repositories"
	"github.com/sembesalum/tu-chat-api/internal/pkg/apperrors"
	"github.com/sembesalum/tu-chat-api/internal/pkg/filestorage"
)

// ProfileService defines the operations on user profiles
type ProfileService interface {
	GetProfile(ctx context.Context, userID int64) (*dto.ProfileResponse, error)
	UpdateProfile(ctx context.Context, callerID, userID int64, req *dto.UpdateProfileRequest, picture *multipart.FileHeader) (*dto.ProfileResponse, error)
	ListUsers(ctx context.Context) ([]dto.UserSummaryResponse, error)
}

type profileServiceImpl struct {
	userRepo UserRepository
	storage  filestorage.FileStorage
	logger   zerolog.Logger
}

// NewProfileService creates a new ProfileService
func NewProfileService(userRepo UserRepository, storage filestorage.FileStorage, logger zerolog.Logger) ProfileService {
	return &profileServiceImpl{
		userRepo: userRepo,
		storage:  storage,
		logger:   logger,
	}
}

func (s *profileServiceImpl) toResponse(ctx context.Context, p *models.Profile) *dto.ProfileResponse {
	return &dto.ProfileResponse{
		UserID:         p.UserID,
		Username:       p.Username,
		Email:          p.Email,
		PhoneNumber:    p.PhoneNumber,
		University:     p.UniversityName,
		UniversityID:   p.UniversityID,
		Campus:         p.CampusName,
		CampusID:       p.CampusID,
		Course:         p.CourseName,
		CourseID:       p.CourseID,
		ProfilePicture: mediaURL(ctx, s.storage, p.ProfilePicture),
	}
}

// GetProfile returns the profile of a user
func (s *profileServiceImpl) GetProfile(ctx context.Context, userID int64) (*dto.ProfileResponse, error) {
	p, err := s.userRepo.GetProfileByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.toResponse(ctx, p), nil
}

// UpdateProfile changes the username, phone number and picture of the
// caller's own profile. Directory references are never changed.
func (s *profileServiceImpl) UpdateProfile(ctx context.Context, callerID, userID int64, req *dto.UpdateProfileRequest, picture *multipart.FileHeader) (*dto.ProfileResponse, error) {
	if callerID != userID {
		return nil, apperrors.NewForbiddenError("You can only update your own profile")
	}

	current, err := s.userRepo.GetProfileByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	update := repositories.ProfileUpdate{PhoneNumber: req.PhoneNumber}
	if req.Username != nil {
		name := strings.TrimSpace(*req.Username)
		if name == "" {
			return nil, apperrors.NewBadRequestError("Username cannot be empty")
		}
		update.Username = &name
	}

	update.ProfilePicture, err = saveOptional(s.storage, picture, filestorage.DirProfilePictures)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateProfile(ctx, userID, update); err != nil {
		discard(s.storage, update.ProfilePicture)
		return nil, err
	}
	if update.ProfilePicture != nil {
		discard(s.storage, current.ProfilePicture)
	}

	s.logger.Info().Int64("userID", userID).Msg("Profile updated")
	return s.GetProfile(ctx, userID)
}

// ListUsers returns every user as an id/username pair
func (s *profileServiceImpl) ListUsers(ctx context.Context) ([]dto.UserSummaryResponse, error) {
	users, err := s.userRepo.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.UserSummaryResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, dto.UserSummaryResponse{ID: u.ID, Username: u.Username})
	}
	return resp, nil
}
