package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/sembesalum/tu-chat-api/internal/app/models/dto"
	"github.com/sembesalum/tu-chat-api/internal/app/services"
	"github.com/sembesalum/tu-chat-api/internal/middleware"
	"github.com/sembesalum/tu-chat-api/internal/pkg/apperrors"
	"github.com/sembesalum/tu-chat-api/internal/pkg/helpers"
)

// MaterialController handles study materials
type MaterialController struct {
	materialService services.MaterialService
	logger          zerolog.Logger
}

// NewMaterialController creates a new MaterialController
func NewMaterialController(materialService services.MaterialService, logger zerolog.Logger) *MaterialController {
	return &MaterialController{
		materialService: materialService,
		logger:          logger,
	}
}

// CreateMaterial uploads a material for a course
// @Summary Upload a material
// @Tags materials
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param university_id formData int true "University ID"
// @Param campus_id formData int true "Campus ID"
// @Param course_id formData int true "Course ID"
// @Param material_type formData string true "Material type" Enums(past_paper, notes, test, research, timetable, report)
// @Param title formData string false "Title"
// @Param subtitle formData string false "Subtitle"
// @Param file formData file true "Material file"
// @Success 201 {object} dto.SuccessResponse{data=dto.MaterialResponse} "Material created"
// @Failure 400 {object} dto.ErrorResponse "Invalid data or missing file"
// @Failure 404 {object} dto.ErrorResponse "Campus or course outside the hierarchy"
// @Router /materials/add/ [post]
func (c *MaterialController) CreateMaterial(ctx *gin.Context) {
	var req dto.CreateMaterialRequest
	if err := ctx.ShouldBind(&req); err != nil {
		middleware.AbortWithValidationError(ctx, err)
		return
	}
	file, err := optionalFile(ctx, "file")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if file == nil {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("File is required"))
		return
	}

	material, err := c.materialService.CreateMaterial(ctx.Request.Context(), &req, file)
	if err != nil {
		c.logger.Warn().Err(err).Msg("Failed to create material")
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondCreated(ctx, material, "Material created successfully")
}

// ListMaterials lists the materials of a course
// @Summary List materials
// @Tags materials
// @Produce json
// @Param university_id path int true "University ID"
// @Param campus_id path int true "Campus ID"
// @Param course_id path int true "Course ID"
// @Param material_type path string false "Material type"
// @Success 200 {object} dto.SuccessResponse{data=[]dto.MaterialResponse} "Materials"
// @Failure 400 {object} dto.ErrorResponse "Invalid parameters"
// @Router /materials/{university_id}/{campus_id}/{course_id}/ [get]
// @Router /materials/{university_id}/{campus_id}/{course_id}/{material_type}/ [get]
func (c *MaterialController) ListMaterials(ctx *gin.Context) {
	var ids [3]int64
	for i, name := range []string{"university_id", "campus_id", "course_id"} {
		id, err := helpers.ParseIDParam(ctx, name)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		ids[i] = id
	}

	materials, err := c.materialService.ListMaterials(ctx.Request.Context(), ids[0], ids[1], ids[2], ctx.Param("material_type"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, materials, "")
}
