package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/sembesalum/tu-chat-api/internal/app/models/dto"
	"github.com/sembesalum/tu-chat-api/internal/app/services"
	"github.com/sembesalum/tu-chat-api/internal/middleware"
)

// EventController handles campus events
type EventController struct {
	eventService services.EventService
}

// NewEventController creates a new EventController
func NewEventController(eventService services.EventService) *EventController {
	return &EventController{eventService: eventService}
}

// CreateEvent publishes an event for a university
// @Summary Create an event
// @Tags events
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param university_id formData int true "University ID"
// @Param title formData string true "Title"
// @Param description formData string false "Description"
// @Param time formData string true "Time (HH:MM)"
// @Param date formData string true "Date (YYYY-MM-DD)"
// @Param is_breaking_news formData bool false "Breaking news"
// @Param image formData file false "Image"
// @Success 201 {object} dto.SuccessResponse{data=dto.EventResponse} "Event created"
// @Failure 400 {object} dto.ErrorResponse "Invalid data"
// @Failure 404 {object} dto.ErrorResponse "University not found"
// @Router /events/ [post]
func (c *EventController) CreateEvent(ctx *gin.Context) {
	userID, authenticated := callerID(ctx)
	if !authenticated {
		return
	}

	var req dto.CreateEventRequest
	if err := ctx.ShouldBind(&req); err != nil {
		middleware.AbortWithValidationError(ctx, err)
		return
	}
	image, err := optionalFile(ctx, "image")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	event, err := c.eventService.CreateEvent(ctx.Request.Context(), userID, &req, image)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondCreated(ctx, event, "Event created successfully")
}

// ListEvents lists events, newest date first
// @Summary List events
// @Tags events
// @Produce json
// @Param university_id path int false "University ID"
// @Success 200 {object} dto.SuccessResponse{data=[]dto.EventResponse} "Events"
// @Router /events/ [get]
// @Router /events/{university_id} [get]
func (c *EventController) ListEvents(ctx *gin.Context) {
	universityID, err := idFilter(ctx, "university_id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	events, err := c.eventService.ListEvents(ctx.Request.Context(), universityID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	respondOK(ctx, events, "")
}
