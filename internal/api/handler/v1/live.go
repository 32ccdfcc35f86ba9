package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/eventhub/eventhub-api/internal/api/handler/v1/response"
	"github.com/eventhub/eventhub-api/internal/live"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // TODO: restrict to AllowedCORSDomains once the frontend origin is fixed.
	},
}

type LiveHandler struct {
	svc EventService
	hub *live.Hub
}

func NewLiveHandler(svc EventService, hub *live.Hub) *LiveHandler {
	return &LiveHandler{
		svc: svc,
		hub: hub,
	}
}

// HandleLiveUpdates godoc
// @Summary      Subscribe to an event's live update channel
// @Description  Upgrades to a WebSocket that streams JSON updates (participation changes, status transitions, new comments) for the event.
// @Tags         events,live
// @Produce      json
// @Param        eventID  path      int true "event ID"
// @Success      101      {string}  string "Switching Protocols"
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/live [get]
// @Security     BearerAuth
func (h *LiveHandler) HandleLiveUpdates(ctx *gin.Context) {
	eventID, respErr := parseIDParam(ctx, "eventID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	if _, err := h.svc.Get(ctx.Request.Context(), eventID, viewerID(ctx)); err != nil {
		renderServiceErr(ctx, "v1.HandleLiveUpdates -> h.svc.Get", err)

		return
	}

	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		zap.L().Warn("websocket upgrade failed", zap.Uint("eventID", eventID), zap.Error(err))

		return
	}

	h.hub.Join(eventID, conn)
}
