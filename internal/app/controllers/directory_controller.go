package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/sembesalum/tu-chat-api/internal/app/services"
	"github.com/sembesalum/tu-chat-api/internal/middleware"
	"github.com/sembesalum/tu-chat-api/internal/pkg/helpers"
)

// DirectoryController serves universities, campuses and courses
type DirectoryController struct {
	directoryService services.DirectoryService
}

// NewDirectoryController creates a new DirectoryController
func NewDirectoryController(directoryService services.DirectoryService) *DirectoryController {
	return &DirectoryController{directoryService: directoryService}
}

// idFilter reads a filter from the path when the route names it, else from the query
func idFilter(ctx *gin.Context, name string) (*int64, error) {
	if ctx.Param(name) != "" {
		id, err := helpers.ParseIDParam(ctx, name)
		if err != nil {
			return nil, err
		}
		return &id, nil
	}
	return helpers.OptionalInt64Query(ctx, name)
}

// ListUniversities lists all universities
// @Summary List universities
// @Tags directory
// @Produce json
// @Success 200 {object} dto.SuccessResponse{data=[]dto.UniversityResponse} "Universities"
// @Router /universities/ [get]
func (c *DirectoryController) ListUniversities(ctx *gin.Context) {
	universities, err := c.directoryService.ListUniversities(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, universities, "")
}

// ListCampuses lists campuses, optionally of one university
// @Summary List campuses
// @Tags directory
// @Produce json
// @Param university_id query int false "University ID"
// @Success 200 {object} dto.SuccessResponse{data=[]dto.CampusResponse} "Campuses"
// @Failure 400 {object} dto.ErrorResponse "Invalid university_id"
// @Router /campuses/ [get]
// @Router /universities/{university_id}/campuses/ [get]
func (c *DirectoryController) ListCampuses(ctx *gin.Context) {
	universityID, err := idFilter(ctx, "university_id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	campuses, err := c.directoryService.ListCampuses(ctx.Request.Context(), universityID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, campuses, "")
}

// ListCourses lists courses filtered by campus and university
// @Summary List courses
// @Tags directory
// @Produce json
// @Param campus_id query int false "Campus ID"
// @Param university_id query int false "University ID"
// @Success 200 {object} dto.SuccessResponse{data=[]dto.CourseResponse} "Courses"
// @Router /courses/ [get]
// @Router /campuses/{campus_id}/courses/ [get]
func (c *DirectoryController) ListCourses(ctx *gin.Context) {
	campusID, err := idFilter(ctx, "campus_id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	universityID, err := helpers.OptionalInt64Query(ctx, "university_id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	courses, err := c.directoryService.ListCourses(ctx.Request.Context(), campusID, universityID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, courses, "")
}
