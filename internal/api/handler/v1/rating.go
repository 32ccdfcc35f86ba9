package v1

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eventhub/eventhub-api/internal/api/handler/v1/request"
	"github.com/eventhub/eventhub-api/internal/api/handler/v1/response"
	"github.com/eventhub/eventhub-api/internal/domain"
)

type RatingService interface {
	Create(ctx context.Context, actingUserID, eventID uint, rating int, comment string) (domain.EventRating, error)
	Update(ctx context.Context, actingUserID, eventID, ratingID uint, rating int, comment string) (domain.EventRating, error)
	Delete(ctx context.Context, actingUserID, eventID, ratingID uint) error
	ListByEvent(ctx context.Context, eventID uint, limit, offset int) ([]domain.EventRating, int64, error)
}

type RatingHandler struct {
	svc RatingService
}

func NewRatingHandler(svc RatingService) *RatingHandler {
	return &RatingHandler{
		svc: svc,
	}
}

// HandleListRatings godoc
// @Summary      List an event's ratings
// @Tags         ratings
// @Produce      json
// @Param        eventID  path      int true "event ID"
// @Param        limit    query     int false "page size"
// @Param        offset   query     int false "page offset"
// @Success      200      {object}  response.PaginatedRatings
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/ratings [get]
// @Security     BearerAuth
func (h *RatingHandler) HandleListRatings(ctx *gin.Context) {
	eventID, respErr := parseIDParam(ctx, "eventID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	limit, offset := parsePagination(ctx)

	ratings, total, err := h.svc.ListByEvent(ctx.Request.Context(), eventID, limit, offset)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleListRatings -> h.svc.ListByEvent", err)

		return
	}

	ctx.JSON(http.StatusOK, response.PaginatedRatings{
		Ratings: ratings,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
	})
}

// HandleCreateRating godoc
// @Summary      Rate a completed event the caller attended
// @Tags         ratings
// @Produce      json
// @Param        eventID  path      int true "event ID"
// @Param        request  body      request.CreateRatingRequest true "request body"
// @Success      201      {object}  domain.EventRating
// @Failure      400      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/ratings [post]
// @Security     BearerAuth
func (h *RatingHandler) HandleCreateRating(ctx *gin.Context) {
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

	var req request.CreateRatingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	rating, err := h.svc.Create(ctx.Request.Context(), userID, eventID, req.Rating, req.Comment)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleCreateRating -> h.svc.Create", err)

		return
	}

	ctx.JSON(http.StatusCreated, rating)
}

// HandleUpdateRating godoc
// @Summary      Edit a rating (author only)
// @Tags         ratings
// @Produce      json
// @Param        eventID   path      int true "event ID"
// @Param        ratingID  path      int true "rating ID"
// @Param        request   body      request.UpdateRatingRequest true "request body"
// @Success      200       {object}  domain.EventRating
// @Failure      400       {object}  response.Err
// @Failure      403       {object}  response.Err
// @Failure      404       {object}  response.Err
// @Failure      500       {object}  response.Err
// @Router       /events/{eventID}/ratings/{ratingID} [put]
// @Security     BearerAuth
func (h *RatingHandler) HandleUpdateRating(ctx *gin.Context) {
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

	ratingID, respErr := parseIDParam(ctx, "ratingID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	var req request.UpdateRatingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	rating, err := h.svc.Update(ctx.Request.Context(), userID, eventID, ratingID, req.Rating, req.Comment)
	if err != nil {
		renderServiceErr(ctx, "v1.HandleUpdateRating -> h.svc.Update", err)

		return
	}

	ctx.JSON(http.StatusOK, rating)
}

// HandleDeleteRating godoc
// @Summary      Delete a rating (author or organizer)
// @Tags         ratings
// @Produce      json
// @Param        eventID   path      int true "event ID"
// @Param        ratingID  path      int true "rating ID"
// @Success      204       "no content"
// @Failure      403       {object}  response.Err
// @Failure      404       {object}  response.Err
// @Failure      500       {object}  response.Err
// @Router       /events/{eventID}/ratings/{ratingID} [delete]
// @Security     BearerAuth
func (h *RatingHandler) HandleDeleteRating(ctx *gin.Context) {
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

	ratingID, respErr := parseIDParam(ctx, "ratingID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	if err := h.svc.Delete(ctx.Request.Context(), userID, eventID, ratingID); err != nil {
		renderServiceErr(ctx, "v1.HandleDeleteRating -> h.svc.Delete", err)

		return
	}

	ctx.Status(http.StatusNoContent)
}
