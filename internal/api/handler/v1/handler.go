// Package v1 contains the HTTP handlers. Handlers parse and validate input,
// call the services they declare as interfaces, and translate service errors
// into HTTP responses; no business rules live here.
package v1

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/eventhub/eventhub-api/internal/api/handler/v1/response"
	"github.com/eventhub/eventhub-api/internal/api/middleware"
	"github.com/eventhub/eventhub-api/internal/service"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

var errMissingUserID = errors.New("user id not found in request context")

// getActingUserID reads the authenticated user's id stored by the JWT
// middleware.
func getActingUserID(ctx *gin.Context) (uint, *response.Err) {
	v, ok := ctx.Get(middleware.ContextKeyUserID)
	if !ok {
		return 0, response.ErrWrongCredentials(errMissingUserID)
	}

	userID, ok := v.(uint)
	if !ok || userID == 0 {
		return 0, response.ErrWrongCredentials(errMissingUserID)
	}

	return userID, nil
}

// viewerID is getActingUserID for routes that also serve anonymous viewers;
// it returns 0 when no token was presented.
func viewerID(ctx *gin.Context) uint {
	v, ok := ctx.Get(middleware.ContextKeyUserID)
	if !ok {
		return 0
	}

	userID, _ := v.(uint)

	return userID
}

func parseIDParam(ctx *gin.Context, name string) (uint, *response.Err) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, response.ErrBadRequest(errors.New(name + " must be a positive integer"))
	}

	return uint(id), nil
}

// renderServiceErr maps the service error taxonomy onto HTTP statuses.
// Expected conditions come back as bare sentinels; anything else is an
// internal error and gets wrapped with op for the log.
func renderServiceErr(ctx *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, service.ErrEventNotFound),
		errors.Is(err, service.ErrParticipantNotFound),
		errors.Is(err, service.ErrCommentNotFound),
		errors.Is(err, service.ErrRatingNotFound),
		errors.Is(err, service.ErrNotificationNotFound),
		errors.Is(err, service.ErrUserNotFound):
		response.RenderErr(ctx, response.ErrNotFound(err))
	case errors.Is(err, service.ErrEventFull),
		errors.Is(err, service.ErrAlreadyRegistered),
		errors.Is(err, service.ErrAlreadyRated):
		response.RenderErr(ctx, response.ErrConflict(err))
	case errors.Is(err, service.ErrPermissionDenied):
		response.RenderErr(ctx, response.ErrPermissionDenied(err))
	case errors.Is(err, service.ErrEventNotOpen),
		errors.Is(err, service.ErrNotRegistered),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrRatingOutOfRange):
		response.RenderErr(ctx, response.ErrBadRequest(err))
	default:
		response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("%s -> %w", op, err)))
	}
}

func parsePagination(ctx *gin.Context) (limit, offset int) {
	limit, err := strconv.Atoi(ctx.DefaultQuery("limit", strconv.Itoa(defaultPageLimit)))
	if err != nil || limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	offset, err = strconv.Atoi(ctx.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	return limit, offset
}
