package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eventhub/eventhub-api/internal/api/handler/v1/request"
	"github.com/eventhub/eventhub-api/internal/api/handler/v1/response"
	"github.com/eventhub/eventhub-api/internal/domain"
)

type CommentService interface {
	Create(ctx context.Context, actingUserID, eventID uint, content string) (domain.EventComment, error)
	Update(ctx context.Context, actingUserID, eventID, commentID uint, content string) (domain.EventComment, error)
	Delete(ctx context.Context, actingUserID, eventID, commentID uint) error
	ListByEvent(ctx context.Context, eventID uint, limit, offset int) ([]domain.EventComment, int64, error)
}

type CommentHandler struct {
	svc CommentService
}

func NewCommentHandler(svc CommentService) *CommentHandler {
	return &CommentHandler{
		svc: svc,
	}
}

// HandleListComments godoc
// @Summary      List an event's comments
// @Tags         comments
// @Produce      json
// @Param        eventID  path      int true "event ID"
// @Param        limit    query     int false "page size"
// @Param        offset   query     int false "page offset"
// @Success      200      {object}  response.PaginatedComments
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/comments [get]
// @Security     BearerAuth
func (h *CommentHandler) HandleListComments(ctx *gin.Context) {
	eventID, respErr := parseIDParam(ctx, "eventID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	limit, offset := parsePagination(ctx)

	comments, total, err := h.svc.ListByEvent(ctx.Request.Context(), eventID, limit, offset)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleListComments -> h.svc.ListByEvent", err)

		return
	}

	ctx.JSON(http.StatusOK, response.PaginatedComments{
		Comments: comments,
		Total:    total,
		Limit:    limit,
		Offset:   offset,
	})
}

// HandleCreateComment godoc
// @Summary      Comment on an event
// @Tags         comments
// @Produce      json
// @Param        eventID  path      int true "event ID"
// @Param        request  body      request.CreateCommentRequest true "request body"
// @Success      201      {object}  domain.EventComment
// @Failure      400      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/comments [post]
// @Security     BearerAuth
func (h *CommentHandler) HandleCreateComment(ctx *gin.Context) {
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

	var req request.CreateCommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	comment, err := h.svc.Create(ctx.Request.Context(), userID, eventID, req.Content)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleCreateComment -> h.svc.Create", err)

		return
	}

	ctx.JSON(http.StatusCreated, comment)
}

// HandleUpdateComment godoc
// @Summary      Edit a comment (author only)
// @Tags         comments
// @Produce      json
// @Param        eventID    path      int true "event ID"
// @Param        commentID  path      int true "comment ID"
// @Param        request    body      request.UpdateCommentRequest true "request body"
// @Success      200        {object}  domain.EventComment
// @Failure      400        {object}  response.Err
// @Failure      403        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /events/{eventID}/comments/{commentID} [put]
// @Security     BearerAuth
func (h *CommentHandler) HandleUpdateComment(ctx *gin.Context) {
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

	commentID, respErr := parseIDParam(ctx, "commentID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	var req request.UpdateCommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	comment, err := h.svc.Update(ctx.Request.Context(), userID, eventID, commentID, req.Content)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleUpdateComment -> h.svc.Update", err)

		return
	}

	ctx.JSON(http.StatusOK, comment)
}

// HandleDeleteComment godoc
// @Summary      Delete a comment (author or organizer)
// @Tags         comments
// @Produce      json
// @Param        eventID    path      int true "event ID"
// @Param        commentID  path      int true "comment ID"
// @Success      204        "no content"
// @Failure      403        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /events/{eventID}/comments/{commentID} [delete]
// @Security     BearerAuth
func (h *CommentHandler) HandleDeleteComment(ctx *gin.Context) {
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

	commentID, respErr := parseIDParam(ctx, "commentID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	if err := h.svc.Delete(ctx.Request.Context(), userID, eventID, commentID); err != nil {
		renderServiceErr(ctx, "v1.HandleDeleteComment -> h.svc.Delete", err)

		return
	}

	ctx.Status(http.StatusNoContent)
}
