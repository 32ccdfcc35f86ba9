package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eventhub/eventhub-api/internal/api/handler/v1/response"
	"github.com/eventhub/eventhub-api/internal/domain"
	"github.com/eventhub/eventhub-api/internal/service"
)

const defaultUpcomingLimit = 5

type DashboardService interface {
	RegisteredEvents(ctx context.Context, userID uint) ([]domain.Event, error)
	OrganizedEvents(ctx context.Context, userID uint) ([]domain.Event, error)
	UpcomingEvents(ctx context.Context, userID uint, limit int) ([]domain.Event, error)
	GetStatistics(ctx context.Context, userID uint) (service.Statistics, error)
}

type DashboardHandler struct {
	svc DashboardService
}

func NewDashboardHandler(svc DashboardService) *DashboardHandler {
	return &DashboardHandler{
		svc: svc,
	}
}

// HandleRegisteredEvents godoc
// @Summary      List the caller's registered events
// @Tags         dashboard
// @Produce      json
// @Success      200 {array}  domain.Event
// @Failure      401 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /dashboard/registered [get]
// @Security     BearerAuth
func (h *DashboardHandler) HandleRegisteredEvents(ctx *gin.Context) {
	userID, respErr := getActingUserID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	events, err := h.svc.RegisteredEvents(ctx.Request.Context(), userID)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleRegisteredEvents -> h.svc.RegisteredEvents", err)

		return
	}

	ctx.JSON(http.StatusOK, events)
}

// HandleOrganizedEvents godoc
// @Summary      List the caller's organized events
// @Tags         dashboard
// @Produce      json
// @Success      200 {array}  domain.Event
// @Failure      401 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /dashboard/organized [get]
// @Security     BearerAuth
func (h *DashboardHandler) HandleOrganizedEvents(ctx *gin.Context) {
	userID, respErr := getActingUserID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	events, err := h.svc.OrganizedEvents(ctx.Request.Context(), userID)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleOrganizedEvents -> h.svc.OrganizedEvents", err)

		return
	}

	ctx.JSON(http.StatusOK, events)
}

// HandleUpcomingEvents godoc
// @Summary      List the caller's next registered events
// @Tags         dashboard
// @Produce      json
// @Param        limit query    int false "maximum number of events"
// @Success      200   {array}  domain.Event
// @Failure      401   {object} response.Err
// @Failure      500   {object} response.Err
// @Router       /dashboard/upcoming [get]
// @Security     BearerAuth
func (h *DashboardHandler) HandleUpcomingEvents(ctx *gin.Context) {
	userID, respErr := getActingUserID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	limit, _ := parsePagination(ctx)
	if ctx.Query("limit") == "" {
		limit = defaultUpcomingLimit
	}

	events, err := h.svc.UpcomingEvents(ctx.Request.Context(), userID, limit)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleUpcomingEvents -> h.svc.UpcomingEvents", err)

		return
	}

	ctx.JSON(http.StatusOK, events)
}

// HandleStatistics godoc
// @Summary      Get the caller's participation and organizer statistics
// @Tags         dashboard
// @Produce      json
// @Success      200 {object} service.Statistics
// @Failure      401 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /dashboard/statistics [get]
// @Security     BearerAuth
func (h *DashboardHandler) HandleStatistics(ctx *gin.Context) {
	userID, respErr := getActingUserID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	stats, err := h.svc.GetStatistics(ctx.Request.Context(), userID)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleStatistics -> h.svc.GetStatistics", err)

		return
	}

	ctx.JSON(http.StatusOK, stats)
}
