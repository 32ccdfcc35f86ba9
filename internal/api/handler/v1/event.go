package v1

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/eventhub/eventhub-api/internal/api/handler/v1/request"
	"github.com/eventhub/eventhub-api/internal/api/handler/v1/response"
	"github.com/eventhub/eventhub-api/internal/domain"
	"github.com/eventhub/eventhub-api/internal/service"
)

type EventService interface {
	Create(ctx context.Context, organizerID uint, event domain.Event, categoryIDs []uint) (domain.Event, error)
	Update(ctx context.Context, actingUserID uint, event domain.Event, categoryIDs []uint) (domain.Event, error)
	Get(ctx context.Context, eventID, viewerID uint) (service.EventDetail, error)
	List(ctx context.Context, viewerID uint, limit, offset int) ([]domain.Event, int64, error)
	Transition(ctx context.Context, actingUserID, eventID uint, newStatus domain.EventStatus) (domain.Event, error)
	Delete(ctx context.Context, actingUserID, eventID uint) error
	Roster(ctx context.Context, actingUserID, eventID uint, status domain.ParticipationStatus, limit, offset int) ([]domain.EventParticipant, int64, error)
	GetParticipant(ctx context.Context, actingUserID, eventID, participantID uint) (domain.EventParticipant, error)
	Categories(ctx context.Context) ([]domain.EventCategory, error)
}

type EventHandler struct {
	svc EventService
}

func NewEventHandler(svc EventService) *EventHandler {
	return &EventHandler{
		svc: svc,
	}
}

// HandleListEvents godoc
// @Summary      List events visible to the caller
// @Tags         events
// @Produce      json
// @Param        limit    query     int false "page size"
// @Param        offset   query     int false "page offset"
// @Success      200      {object}  response.PaginatedEvents
// @Failure      500      {object}  response.Err
// @Router       /events [get]
// @Security     BearerAuth
func (h *EventHandler) HandleListEvents(ctx *gin.Context) {
	limit, offset := parsePagination(ctx)

	events, total, err := h.svc.List(ctx.Request.Context(), viewerID(ctx), limit, offset)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleListEvents -> h.svc.List", err)

		return
	}

	ctx.JSON(http.StatusOK, response.PaginatedEvents{
		Events: events,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	})
}

// HandleGetEvent godoc
// @Summary      Get one event with the caller's participation context
// @Tags         events
// @Produce      json
// @Param        eventID  path      int true "event ID"
// @Success      200      {object}  service.EventDetail
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID} [get]
// @Security     BearerAuth
func (h *EventHandler) HandleGetEvent(ctx *gin.Context) {
	eventID, respErr := parseIDParam(ctx, "eventID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	detail, err := h.svc.Get(ctx.Request.Context(), eventID, viewerID(ctx))
	if err != nil {
		renderServiceErr(ctx, "v1.HandleGetEvent -> h.svc.Get", err)

		return
	}

	ctx.JSON(http.StatusOK, detail)
}

// HandleCreateEvent godoc
// @Summary      Create a draft event
// @Tags         events
// @Produce      json
// @Param        request  body      request.CreateEventRequest true "request body"
// @Success      201      {object}  domain.Event
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events [post]
// @Security     BearerAuth
func (h *EventHandler) HandleCreateEvent(ctx *gin.Context) {
	userID, respErr := getActingUserID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	var req request.CreateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	event, err := h.svc.Create(ctx.Request.Context(), userID, domain.Event{
		Title:           req.Title,
		Description:     req.Description,
		Location:        req.Location,
		Date:            date,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		MaxParticipants: req.MaxParticipants,
	}, req.CategoryIDs)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleCreateEvent -> h.svc.Create", err)

		return
	}

	ctx.JSON(http.StatusCreated, event)
}

// HandleUpdateEvent godoc
// @Summary      Update an event's details (organizer only)
// @Tags         events
// @Produce      json
// @Param        eventID  path      int true "event ID"
// @Param        request  body      request.UpdateEventRequest true "request body"
// @Success      200      {object}  domain.Event
// @Failure      400      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID} [put]
// @Security     BearerAuth
func (h *EventHandler) HandleUpdateEvent(ctx *gin.Context) {
	userID, respErr := getActingUserID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	eventID, respErr := parseIDParam(ctx, "eventID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	var req request.UpdateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	event, err := h.svc.Update(ctx.Request.Context(), userID, domain.Event{
		ID:              eventID,
		Title:           req.Title,
		Description:     req.Description,
		Location:        req.Location,
		Date:            date,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		MaxParticipants: req.MaxParticipants,
	}, req.CategoryIDs)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleUpdateEvent -> h.svc.Update", err)

		return
	}

	ctx.JSON(http.StatusOK, event)
}

// HandleTransitionEvent godoc
// @Summary      Move an event along its lifecycle (organizer only)
// @Tags         events
// @Produce      json
// @Param        eventID  path      int true "event ID"
// @Param        request  body      request.TransitionEventRequest true "request body"
// @Success      200      {object}  domain.Event
// @Failure      400      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/status [put]
// @Security     BearerAuth
func (h *EventHandler) HandleTransitionEvent(ctx *gin.Context) {
	userID, respErr := getActingUserID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	eventID, respErr := parseIDParam(ctx, "eventID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	var req request.TransitionEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	event, err := h.svc.Transition(ctx.Request.Context(), userID, eventID, domain.EventStatus(req.Status))
	if err != nil {
		renderServiceErr(ctx, "v1.HandleTransitionEvent -> h.svc.Transition", err)

		return
	}

	ctx.JSON(http.StatusOK, event)
}

// HandleDeleteEvent godoc
// @Summary      Soft-delete an event (organizer only)
// @Tags         events
// @Produce      json
// @Param        eventID  path      int true "event ID"
// @Success      204      "no content"
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID} [delete]
// @Security     BearerAuth
func (h *EventHandler) HandleDeleteEvent(ctx *gin.Context) {
	userID, respErr := getActingUserID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	eventID, respErr := parseIDParam(ctx, "eventID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	if err := h.svc.Delete(ctx.Request.Context(), userID, eventID); err != nil {
		renderServiceErr(ctx, "v1.HandleDeleteEvent -> h.svc.Delete", err)

		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleGetRoster godoc
// @Summary      List an event's participants (organizer only)
// @Tags         events,participants
// @Produce      json
// @Param        eventID  path      int    true  "event ID"
// @Param        status   query     string false "filter by participation status"
// @Param        limit    query     int    false "page size"
// @Param        offset   query     int    false "page offset"
// @Success      200      {object}  response.PaginatedParticipants
// @Failure      400      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/participants [get]
// @Security     BearerAuth
func (h *EventHandler) HandleGetRoster(ctx *gin.Context) {
	userID, respErr := getActingUserID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	eventID, respErr := parseIDParam(ctx, "eventID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	limit, offset := parsePagination(ctx)
	status := domain.ParticipationStatus(ctx.Query("status"))

	participants, total, err := h.svc.Roster(ctx.Request.Context(), userID, eventID, status, limit, offset)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleGetRoster -> h.svc.Roster", err)

		return
	}

	ctx.JSON(http.StatusOK, response.PaginatedParticipants{
		Participants: participants,
		Total:        total,
		Limit:        limit,
		Offset:       offset,
	})
}

// HandleGetParticipant godoc
// @Summary      Show a single roster entry (organizer only)
// @Tags         events,participants
// @Produce      json
// @Param        eventID        path      int true "event ID"
// @Param        participantID  path      int true "participant ID"
// @Success      200            {object}  domain.EventParticipant
// @Failure      400            {object}  response.Err
// @Failure      403            {object}  response.Err
// @Failure      404            {object}  response.Err
// @Failure      500            {object}  response.Err
// @Router       /events/{eventID}/participants/{participantID} [get]
// @Security     BearerAuth
func (h *EventHandler) HandleGetParticipant(ctx *gin.Context) {
	userID, respErr := getActingUserID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	eventID, respErr := parseIDParam(ctx, "eventID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	participantID, respErr := parseIDParam(ctx, "participantID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	participant, err := h.svc.GetParticipant(ctx.Request.Context(), userID, eventID, participantID)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleGetParticipant -> h.svc.GetParticipant", err)

		return
	}

	ctx.JSON(http.StatusOK, participant)
}

// HandleListCategories godoc
// @Summary      List event categories
// @Tags         events
// @Produce      json
// @Success      200 {array}  domain.EventCategory
// @Failure      500 {object} response.Err
// @Router       /categories [get]
// @Security     BearerAuth
func (h *EventHandler) HandleListCategories(ctx *gin.Context) {
	categories, err := h.svc.Categories(ctx.Request.Context())
	if err != nil {
		renderServiceErr(ctx, "v1.HandleListCategories -> h.svc.Categories", err)

		return
	}

	ctx.JSON(http.StatusOK, categories)
}
