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

// MaterialService handles study materials scoped to a course
type MaterialService interface {
	CreateMaterial(ctx context.Context, req *dto.CreateMaterialRequest, file *multipart.FileHeader) (*dto.MaterialResponse, error)
	ListMaterials(ctx context.Context, universityID, campusID, courseID int64, materialType string) ([]dto.MaterialResponse, error)
}

type materialServiceImpl struct {
	materialRepo  MaterialRepository
	directoryRepo DirectoryRepository
	storage       filestorage.FileStorage
	logger        zerolog.Logger
}

// NewMaterialService creates a new MaterialService
func NewMaterialService(materialRepo MaterialRepository, directoryRepo DirectoryRepository, storage filestorage.FileStorage, logger zerolog.Logger) MaterialService {
	return &materialServiceImpl{
		materialRepo:  materialRepo,
		directoryRepo: directoryRepo,
		storage:       storage,
		logger:        logger,
	}
}

func optionalText(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func (s *materialServiceImpl) toResponse(ctx context.Context, m *models.Material) dto.MaterialResponse {
	resp := dto.MaterialResponse{
		ID:           m.ID,
		Title:        m.Title,
		Subtitle:     m.Subtitle,
		MaterialType: string(m.MaterialType),
	}
	if u := mediaURL(ctx, s.storage, &m.File); u != nil {
		resp.FileURL = *u
	}
	return resp
}

// checkHierarchy verifies that the course sits in the campus and the campus in the university
func checkHierarchy(ctx context.Context, repo DirectoryRepository, universityID, campusID int64, courseID *int64) error {
	ok, err := repo.CampusBelongsTo(ctx, campusID, universityID)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.ErrInvalidCampus
	}
	if courseID == nil {
		return nil
	}
	ok, err = repo.CourseBelongsTo(ctx, *courseID, campusID)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.ErrInvalidCourse
	}
	return nil
}

// CreateMaterial stores the uploaded file and records it against the course
func (s *materialServiceImpl) CreateMaterial(ctx context.Context, req *dto.CreateMaterialRequest, file *multipart.FileHeader) (*dto.MaterialResponse, error) {
	if file == nil {
		return nil, apperrors.NewBadRequestError("File is required")
	}
	materialType := models.MaterialType(req.MaterialType)
	if !materialType.Valid() {
		return nil, apperrors.NewBadRequestError("Invalid material type")
	}
	if err := checkHierarchy(ctx, s.directoryRepo, req.UniversityID, req.CampusID, &req.CourseID); err != nil {
		return nil, err
	}

	path, err := s.storage.SaveFileWithPath(file, filestorage.DirMaterials)
	if err != nil {
		return nil, err
	}

	m := &models.Material{
		UniversityID: req.UniversityID,
		CampusID:     req.CampusID,
		CourseID:     req.CourseID,
		MaterialType: materialType,
		Title:        optionalText(req.Title),
		Subtitle:     optionalText(req.Subtitle),
		File:         path,
	}
	if err := s.materialRepo.Create(ctx, m); err != nil {
		discard(s.storage, &path)
		return nil, err
	}

	s.logger.Info().Int64("materialID", m.ID).Int64("courseID", m.CourseID).Msg("Material created")
	resp := s.toResponse(ctx, m)
	return &resp, nil
}

// ListMaterials returns the materials of a course, optionally of one type
func (s *materialServiceImpl) ListMaterials(ctx context.Context, universityID, campusID, courseID int64, materialType string) ([]dto.MaterialResponse, error) {
	filter := repositories.MaterialFilter{UniversityID: universityID, CampusID: campusID, CourseID: courseID}
	if materialType != "" {
		t := models.MaterialType(materialType)
		if !t.Valid() {
			return nil, apperrors.NewBadRequestError("Invalid material type")
		}
		filter.MaterialType = &t
	}

	materials, err := s.materialRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.MaterialResponse, 0, len(materials))
	for i := range materials {
		resp = append(resp, s.toResponse(ctx, &materials[i]))
	}
	return resp, nil
}
