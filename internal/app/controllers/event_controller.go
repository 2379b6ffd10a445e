package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/derin/volunteerhub/internal/app/models/dto"
	"github.com/derin/volunteerhub/internal/app/services"
	"github.com/derin/volunteerhub/internal/middleware"
	"github.com/derin/volunteerhub/internal/pkg/helpers"
)

// EventController handles event catalog and participation operations
type EventController struct {
	eventService         services.EventService
	participationService services.ParticipationService
}

// NewEventController creates a new EventController
func NewEventController(eventService services.EventService, participationService services.ParticipationService) *EventController {
	return &EventController{
		eventService:         eventService,
		participationService: participationService,
	}
}

// parseEventID parses the :id path parameter, writing the 400 on failure
func parseEventID(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid event ID")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// CreateEvent handles event creation
// @Summary Create an event
// @Description Creates an event. Admin only.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateEventRequest true "Event details"
// @Success 201 {object} dto.APIResponse{data=dto.EventResponse} "Event created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 403 {object} dto.ErrorResponse "Not an admin"
// @Router /events [post]
func (c *EventController) CreateEvent(ctx *gin.Context) {
	userID, role, ok := currentUser(ctx)
	if !ok {
		return
	}

	var req dto.CreateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	event, err := c.eventService.CreateEvent(ctx, userID, role, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(event))
}

// GetAllEvents handles retrieving a page of events
// @Summary List events
// @Description Retrieves events with pagination, newest schedule first
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (1-based)" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.EventListResponse} "Events retrieved"
// @Router /events [get]
func (c *EventController) GetAllEvents(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	events, err := c.eventService.ListEvents(ctx, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(events))
}

// GetUpcomingEvents handles retrieving events scheduled from now on
// @Summary List upcoming events
// @Tags events
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.EventResponse} "Events retrieved"
// @Router /events/upcoming [get]
func (c *EventController) GetUpcomingEvents(ctx *gin.Context) {
	events, err := c.eventService.ListUpcoming(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(events))
}

// GetMyEvents handles retrieving the events the caller joined or attended
// @Summary List my events
// @Tags events
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.EventResponse} "Events retrieved"
// @Router /events/mine [get]
func (c *EventController) GetMyEvents(ctx *gin.Context) {
	userID, _, ok := currentUser(ctx)
	if !ok {
		return
	}

	events, err := c.eventService.ListJoinedBy(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(events))
}

// GetEventByID handles retrieving one event
// @Summary Get event by ID
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} dto.APIResponse{data=dto.EventResponse} "Event retrieved"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /events/{id} [get]
func (c *EventController) GetEventByID(ctx *gin.Context) {
	eventID, ok := parseEventID(ctx)
	if !ok {
		return
	}

	event, err := c.eventService.GetEvent(ctx, eventID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(event))
}

// UpdateEvent handles patching an event
// @Summary Update an event
// @Description Applies non-null fields. Allowed for the creator and admins.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param request body dto.UpdateEventRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=dto.EventResponse} "Event updated"
// @Failure 403 {object} dto.ErrorResponse "Not the creator or an admin"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /events/{id} [put]
func (c *EventController) UpdateEvent(ctx *gin.Context) {
	userID, role, ok := currentUser(ctx)
	if !ok {
		return
	}

	eventID, ok := parseEventID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	event, err := c.eventService.UpdateEvent(ctx, eventID, userID, role, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(event))
}

// DeleteEvent handles removing an event and its participations
// @Summary Delete an event
// @Description Removes the event; its participations go with it. Allowed for the creator and admins.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Event deleted"
// @Failure 403 {object} dto.ErrorResponse "Not the creator or an admin"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /events/{id} [delete]
func (c *EventController) DeleteEvent(ctx *gin.Context) {
	userID, role, ok := currentUser(ctx)
	if !ok {
		return
	}

	eventID, ok := parseEventID(ctx)
	if !ok {
		return
	}

	if err := c.eventService.DeleteEvent(ctx, eventID, userID, role); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Event deleted"}))
}

// JoinEvent handles a volunteer joining an event
// @Summary Join an event
// @Description Registers the caller for the event. Joining twice returns 409.
// @Tags events, participations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 201 {object} dto.APIResponse{data=dto.ParticipationResponse} "Joined"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Failure 409 {object} dto.ErrorResponse "Already joined"
// @Router /events/{id}/join [post]
func (c *EventController) JoinEvent(ctx *gin.Context) {
	userID, _, ok := currentUser(ctx)
	if !ok {
		return
	}

	eventID, ok := parseEventID(ctx)
	if !ok {
		return
	}

	participation, err := c.participationService.Join(ctx, eventID, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(participation))
}

// LeaveEvent handles a volunteer leaving an event
// @Summary Leave an event
// @Description Removes the caller's participation record entirely
// @Tags events, participations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Left"
// @Failure 404 {object} dto.ErrorResponse "Participation not found"
// @Router /events/{id}/leave [delete]
func (c *EventController) LeaveEvent(ctx *gin.Context) {
	userID, _, ok := currentUser(ctx)
	if !ok {
		return
	}

	eventID, ok := parseEventID(ctx)
	if !ok {
		return
	}

	if err := c.participationService.Leave(ctx, eventID, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Left event"}))
}

// GetEventParticipants handles listing an event's participations
// @Summary List event participants
// @Tags events, participations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.ParticipationResponse} "Participants retrieved"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /events/{id}/participants [get]
func (c *EventController) GetEventParticipants(ctx *gin.Context) {
	eventID, ok := parseEventID(ctx)
	if !ok {
		return
	}

	participants, err := c.participationService.ListForEvent(ctx, eventID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(participants))
}

// GetEventCounts handles retrieving an event's participation counters
// @Summary Get event participation counts
// @Tags events, participations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} dto.APIResponse{data=dto.EventCountsResponse} "Counts retrieved"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /events/{id}/counts [get]
func (c *EventController) GetEventCounts(ctx *gin.Context) {
	eventID, ok := parseEventID(ctx)
	if !ok {
		return
	}

	counts, err := c.participationService.CountFor(ctx, eventID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(counts))
}

// RecordAttendance handles an admin marking a volunteer attended
// @Summary Record attendance
// @Description Marks a participation attended with served hours. Admin only; negative hours are rejected.
// @Tags events, participations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param volunteerId path int true "Volunteer ID"
// @Param request body dto.RecordAttendanceRequest true "Hours served"
// @Success 200 {object} dto.APIResponse{data=dto.ParticipationResponse} "Attendance recorded"
// @Failure 400 {object} dto.ErrorResponse "Negative hours"
// @Failure 403 {object} dto.ErrorResponse "Not an admin"
// @Failure 404 {object} dto.ErrorResponse "Participation not found"
// @Router /events/{id}/attendance/{volunteerId} [post]
func (c *EventController) RecordAttendance(ctx *gin.Context) {
	_, role, ok := currentUser(ctx)
	if !ok {
		return
	}

	eventID, ok := parseEventID(ctx)
	if !ok {
		return
	}

	volunteerID, err := strconv.ParseInt(ctx.Param("volunteerId"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid volunteer ID")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	var req dto.RecordAttendanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	participation, err := c.participationService.RecordAttendance(ctx, eventID, volunteerID, role, req.Hours)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(participation))
}
