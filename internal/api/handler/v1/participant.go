package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eventhub/eventhub-api/internal/api/handler/v1/request"
	"github.com/eventhub/eventhub-api/internal/api/handler/v1/response"
	"github.com/eventhub/eventhub-api/internal/domain"
	"github.com/eventhub/eventhub-api/internal/service"
)

type ParticipationService interface {
	Register(ctx context.Context, eventID, userID uint) (domain.EventParticipant, error)
	Cancel(ctx context.Context, eventID, userID uint) (domain.EventParticipant, error)
	SetParticipantStatus(ctx context.Context, eventID, participantID uint, newStatus domain.ParticipationStatus, actingUserID uint) (service.StatusUpdate, error)
}

type ParticipationHandler struct {
	svc ParticipationService
}

func NewParticipationHandler(svc ParticipationService) *ParticipationHandler {
	return &ParticipationHandler{
		svc: svc,
	}
}

// HandleRegister godoc
// @Summary      Register the caller for an event
// @Tags         participants
// @Produce      json
// @Param        eventID  path      int true "event ID"
// @Success      201      {object}  domain.EventParticipant
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/register [post]
// @Security     BearerAuth
func (h *ParticipationHandler) HandleRegister(ctx *gin.Context) {
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

	participant, err := h.svc.Register(ctx.Request.Context(), eventID, userID)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleRegister -> h.svc.Register", err)

		return
	}

	ctx.JSON(http.StatusCreated, participant)
}

// HandleCancel godoc
// @Summary      Cancel the caller's registration
// @Tags         participants
// @Produce      json
// @Param        eventID  path      int true "event ID"
// @Success      200      {object}  domain.EventParticipant
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/register [delete]
// @Security     BearerAuth
func (h *ParticipationHandler) HandleCancel(ctx *gin.Context) {
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

	participant, err := h.svc.Cancel(ctx.Request.Context(), eventID, userID)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleCancel -> h.svc.Cancel", err)

		return
	}

	ctx.JSON(http.StatusOK, participant)
}

// HandleUpdateParticipantStatus godoc
// @Summary      Change a participant's status (organizer only)
// @Tags         participants
// @Produce      json
// @Param        eventID        path      int true "event ID"
// @Param        participantID  path      int true "participant ID"
// @Param        request        body      request.UpdateParticipantStatusRequest true "request body"
// @Success      200            {object}  service.StatusUpdate
// @Failure      400            {object}  response.Err
// @Failure      403            {object}  response.Err
// @Failure      404            {object}  response.Err
// @Failure      409            {object}  response.Err
// @Failure      500            {object}  response.Err
// @Router       /events/{eventID}/participants/{participantID} [put]
// @Security     BearerAuth
func (h *ParticipationHandler) HandleUpdateParticipantStatus(ctx *gin.Context) {
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

	var req request.UpdateParticipantStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	update, err := h.svc.SetParticipantStatus(ctx.Request.Context(), eventID, participantID, domain.ParticipationStatus(req.Status), userID)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleUpdateParticipantStatus -> h.svc.SetParticipantStatus", err)

		return
	}

	ctx.JSON(http.StatusOK, update)
}
