package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eventhub/eventhub-api/internal/api/handler/v1/response"
	"github.com/eventhub/eventhub-api/internal/domain"
)

type NotificationService interface {
	List(ctx context.Context, userID uint, limit, offset int) ([]domain.Notification, int64, error)
	MarkRead(ctx context.Context, userID, notificationID uint) error
}

type NotificationHandler struct {
	svc NotificationService
}

func NewNotificationHandler(svc NotificationService) *NotificationHandler {
	return &NotificationHandler{
		svc: svc,
	}
}

// HandleListNotifications godoc
// @Summary      List the caller's in-app notifications
// @Tags         notifications
// @Produce      json
// @Param        limit   query    int false "page size"
// @Param        offset  query    int false "page offset"
// @Success      200     {object} response.PaginatedNotifications
// @Failure      401     {object} response.Err
// @Failure      500     {object} response.Err
// @Router       /notifications [get]
// @Security     BearerAuth
func (h *NotificationHandler) HandleListNotifications(ctx *gin.Context) {
	userID, respErr := getActingUserID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	limit, offset := parsePagination(ctx)

	notifications, total, err := h.svc.List(ctx.Request.Context(), userID, limit, offset)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleListNotifications -> h.svc.List", err)

		return
	}

	ctx.JSON(http.StatusOK, response.PaginatedNotifications{
		Notifications: notifications,
		Total:         total,
		Limit:         limit,
		Offset:        offset,
	})
}

// HandleMarkNotificationRead godoc
// @Summary      Mark one of the caller's notifications as read
// @Tags         notifications
// @Produce      json
// @Param        notificationID path int true "notification ID"
// @Success      204 "no content"
// @Failure      401 {object} response.Err
// @Failure      404 {object} response.Err
// @Failure      500 {object} response.Err
// @Router       /notifications/{notificationID}/read [put]
// @Security     BearerAuth
func (h *NotificationHandler) HandleMarkNotificationRead(ctx *gin.Context) {
	userID, respErr := getActingUserID(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	notificationID, respErr := parseIDParam(ctx, "notificationID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	if err := h.svc.MarkRead(ctx.Request.Context(), userID, notificationID); err != nil {
		renderServiceErr(ctx, "v1.HandleMarkNotificationRead -> h.svc.MarkRead", err)

		return
	}

	ctx.Status(http.StatusNoContent)
}
