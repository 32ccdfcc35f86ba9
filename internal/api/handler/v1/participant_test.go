package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventhub/eventhub-api/internal/api/middleware"
	"github.com/eventhub/eventhub-api/internal/domain"
	"github.com/eventhub/eventhub-api/internal/service"
)

type stubParticipationService struct {
	registerFn  func(ctx context.Context, eventID, userID uint) (domain.EventParticipant, error)
	cancelFn    func(ctx context.Context, eventID, userID uint) (domain.EventParticipant, error)
	setStatusFn func(ctx context.Context, eventID, participantID uint, newStatus domain.ParticipationStatus, actingUserID uint) (service.StatusUpdate, error)
}

func (s *stubParticipationService) Register(ctx context.Context, eventID, userID uint) (domain.EventParticipant, error) {
	return s.registerFn(ctx, eventID, userID)
}

func (s *stubParticipationService) Cancel(ctx context.Context, eventID, userID uint) (domain.EventParticipant, error) {
	return s.cancelFn(ctx, eventID, userID)
}

func (s *stubParticipationService) SetParticipantStatus(ctx context.Context, eventID, participantID uint, newStatus domain.ParticipationStatus, actingUserID uint) (service.StatusUpdate, error) {
	return s.setStatusFn(ctx, eventID, participantID, newStatus, actingUserID)
}

// asUser mimics the JWT middleware by seeding the authenticated user id.
func asUser(userID uint) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if userID != 0 {
			ctx.Set(middleware.ContextKeyUserID, userID)
		}
		ctx.Next()
	}
}

func newParticipationRouter(svc ParticipationService, userID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)

	handler := NewParticipationHandler(svc)
	router := gin.New()
	router.Use(asUser(userID))
	router.POST("/events/:eventID/register", handler.HandleRegister)
	router.DELETE("/events/:eventID/register", handler.HandleCancel)
	router.PUT("/events/:eventID/participants/:participantID", handler.HandleUpdateParticipantStatus)

	return router
}

func TestHandleRegister(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc := &stubParticipationService{
			registerFn: func(_ context.Context, eventID, userID uint) (domain.EventParticipant, error) {
				assert.Equal(t, uint(5), eventID)
				assert.Equal(t, uint(42), userID)
				return domain.EventParticipant{ID: 1, EventID: eventID, UserID: userID, Status: domain.ParticipationPending}, nil
			},
		}
		router := newParticipationRouter(svc, 42)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/events/5/register", nil))

		require.Equal(t, http.StatusCreated, rec.Code)
		var participant domain.EventParticipant
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &participant))
		assert.Equal(t, domain.ParticipationPending, participant.Status)
	})

	t.Run("event full maps to conflict", func(t *testing.T) {
		svc := &stubParticipationService{
			registerFn: func(_ context.Context, _, _ uint) (domain.EventParticipant, error) {
				return domain.EventParticipant{}, service.ErrEventFull
			},
		}
		router := newParticipationRouter(svc, 42)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/events/5/register", nil))

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("unknown event maps to not found", func(t *testing.T) {
		svc := &stubParticipationService{
			registerFn: func(_ context.Context, _, _ uint) (domain.EventParticipant, error) {
				return domain.EventParticipant{}, service.ErrEventNotFound
			},
		}
		router := newParticipationRouter(svc, 42)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/events/5/register", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("no token", func(t *testing.T) {
		router := newParticipationRouter(&stubParticipationService{}, 0)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/events/5/register", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("bad event id", func(t *testing.T) {
		router := newParticipationRouter(&stubParticipationService{}, 42)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/events/abc/register", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandleCancel(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		svc := &stubParticipationService{
			cancelFn: func(_ context.Context, eventID, userID uint) (domain.EventParticipant, error) {
				return domain.EventParticipant{ID: 1, EventID: eventID, UserID: userID, Status: domain.ParticipationCancelled}, nil
			},
		}
		router := newParticipationRouter(svc, 42)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/events/5/register", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var participant domain.EventParticipant
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &participant))
		assert.Equal(t, domain.ParticipationCancelled, participant.Status)
	})

	t.Run("not registered maps to bad request", func(t *testing.T) {
		svc := &stubParticipationService{
			cancelFn: func(_ context.Context, _, _ uint) (domain.EventParticipant, error) {
				return domain.EventParticipant{}, service.ErrNotRegistered
			},
		}
		router := newParticipationRouter(svc, 42)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/events/5/register", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandleUpdateParticipantStatus(t *testing.T) {
	newRequest := func(body string) *http.Request {
		req := httptest.NewRequest(http.MethodPut, "/events/5/participants/10", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		return req
	}

	t.Run("ok", func(t *testing.T) {
		svc := &stubParticipationService{
			setStatusFn: func(_ context.Context, eventID, participantID uint, newStatus domain.ParticipationStatus, actingUserID uint) (service.StatusUpdate, error) {
				assert.Equal(t, uint(5), eventID)
				assert.Equal(t, uint(10), participantID)
				assert.Equal(t, uint(42), actingUserID)
				return service.StatusUpdate{
					Participant: domain.EventParticipant{ID: participantID, EventID: eventID, Status: newStatus},
					OldStatus:   domain.ParticipationPending,
					NewStatus:   newStatus,
				}, nil
			},
		}
		router := newParticipationRouter(svc, 42)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, newRequest(`{"status":"confirmed"}`))

		require.Equal(t, http.StatusOK, rec.Code)
		var update service.StatusUpdate
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &update))
		assert.Equal(t, domain.ParticipationConfirmed, update.NewStatus)
	})

	t.Run("unknown status is rejected before the service", func(t *testing.T) {
		router := newParticipationRouter(&stubParticipationService{}, 42)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, newRequest(`{"status":"vanished"}`))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("non-organizer maps to forbidden", func(t *testing.T) {
		svc := &stubParticipationService{
			setStatusFn: func(_ context.Context, _, _ uint, _ domain.ParticipationStatus, _ uint) (service.StatusUpdate, error) {
				return service.StatusUpdate{}, service.ErrPermissionDenied
			},
		}
		router := newParticipationRouter(svc, 42)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, newRequest(`{"status":"confirmed"}`))

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("full event maps to conflict", func(t *testing.T) {
		svc := &stubParticipationService{
			setStatusFn: func(_ context.Context, _, _ uint, _ domain.ParticipationStatus, _ uint) (service.StatusUpdate, error) {
				return service.StatusUpdate{}, service.ErrEventFull
			},
		}
		router := newParticipationRouter(svc, 42)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, newRequest(`{"status":"confirmed"}`))

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}
