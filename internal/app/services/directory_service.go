package services

import (
	"context"

	"github.com/sembesalum/tu-chat-api/internal/app/models/dto"
)

// DirectoryService lists the university, campus and course hierarchy
type DirectoryService interface {
	ListUniversities(ctx context.Context) ([]dto.UniversityResponse, error)
	ListCampuses(ctx context.Context, universityID *int64) ([]dto.CampusResponse, error)
	ListCourses(ctx context.Context, campusID, universityID *int64) ([]dto.CourseResponse, error)
}

type directoryServiceImpl struct {
	repo DirectoryRepository
}

// NewDirectoryService creates a new DirectoryService
func NewDirectoryService(repo DirectoryRepository) DirectoryService {
	return &directoryServiceImpl{repo: repo}
}

func (s *directoryServiceImpl) ListUniversities(ctx context.Context) ([]dto.UniversityResponse, error) {
	universities, err := s.repo.ListUniversities(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.UniversityResponse, 0, len(universities))
	for _, u := range universities {
		resp = append(resp, dto.UniversityResponse{ID: u.ID, Name: u.Name})
	}
	return resp, nil
}

func (s *directoryServiceImpl) ListCampuses(ctx context.Context, universityID *int64) ([]dto.CampusResponse, error) {
	campuses, err := s.repo.ListCampuses(ctx, universityID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.CampusResponse, 0, len(campuses))
	for _, c := range campuses {
		resp = append(resp, dto.CampusResponse{ID: c.ID, Name: c.Name, University: c.UniversityID})
	}
	return resp, nil
}

func (s *directoryServiceImpl) ListCourses(ctx context.Context, campusID, universityID *int64) ([]dto.CourseResponse, error) {
	courses, err := s.repo.ListCourses(ctx, campusID, universityID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.CourseResponse, 0, len(courses))
	for _, c := range courses {
		resp = append(resp, dto.CourseResponse{ID: c.ID, Name: c.Name, University: c.UniversityName, Campus: c.CampusName})
	}
	return resp, nil
}
