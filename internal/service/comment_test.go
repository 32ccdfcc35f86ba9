package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventhub/eventhub-api/internal/domain"
	"github.com/eventhub/eventhub-api/internal/repository"
)

type memCommentRepo struct {
	nextID uint
	rows   map[uint]domain.EventComment
}

func newMemCommentRepo() *memCommentRepo {
	return &memCommentRepo{rows: make(map[uint]domain.EventComment)}
}

func (r *memCommentRepo) Create(_ context.Context, comment domain.EventComment) (domain.EventComment, error) {
	r.nextID++
	comment.ID = r.nextID
	r.rows[comment.ID] = comment

	return comment, nil
}

func (r *memCommentRepo) FindByID(_ context.Context, eventID, commentID uint) (domain.EventComment, error) {
	comment, ok := r.rows[commentID]
	if !ok || comment.EventID != eventID {
		return domain.EventComment{}, repository.ErrCommentNotFound
	}

	return comment, nil
}

func (r *memCommentRepo) UpdateContent(_ context.Context, comment domain.EventComment) (domain.EventComment, error) {
	existing, ok := r.rows[comment.ID]
	if !ok {
		return domain.EventComment{}, repository.ErrCommentNotFound
	}
	existing.Content = comment.Content
	r.rows[comment.ID] = existing

	return existing, nil
}

func (r *memCommentRepo) Delete(_ context.Context, commentID uint) error {
	delete(r.rows, commentID)

	return nil
}

func (r *memCommentRepo) ListByEvent(_ context.Context, eventID uint, _, _ int) ([]domain.EventComment, int64, error) {
	var matched []domain.EventComment
	for _, c := range r.rows {
		if c.EventID == eventID {
			matched = append(matched, c)
		}
	}

	return matched, int64(len(matched)), nil
}

func newTestCommentService(events ...domain.Event) (*CommentService, *memCommentRepo, *memParticipantRepo, *recordingDispatcher) {
	eventRepo := newMemEventRepo(events...)
	participantRepo := &memParticipantRepo{events: eventRepo}
	commentRepo := newMemCommentRepo()
	dispatcher := &recordingDispatcher{}
	svc := NewCommentService(commentRepo, eventRepo, participantRepo, dispatcher)

	return svc, commentRepo, participantRepo, dispatcher
}

func TestCommentService_Create(t *testing.T) {
	published := domain.Event{ID: 1, OrganizerID: 7, Status: domain.EventStatusPublished}

	t.Run("confirmed participant comments and the room is notified", func(t *testing.T) {
		svc, _, participants, dispatcher := newTestCommentService(published)
		participants.rows = append(participants.rows, domain.EventParticipant{
			ID: 1, EventID: 1, UserID: 42, Status: domain.ParticipationConfirmed,
		})

		comment, err := svc.Create(context.Background(), 42, 1, "See you there!")

		require.NoError(t, err)
		assert.Equal(t, uint(42), comment.UserID)
		require.Len(t, dispatcher.updates, 1)
		assert.Equal(t, "comment_added", dispatcher.updates[0].Type)
	})

	t.Run("organizer comments without a participation row", func(t *testing.T) {
		svc, _, _, _ := newTestCommentService(published)

		_, err := svc.Create(context.Background(), 7, 1, "Doors open at 9.")

		assert.NoError(t, err)
	})

	t.Run("pending participant is denied", func(t *testing.T) {
		svc, _, participants, _ := newTestCommentService(published)
		participants.rows = append(participants.rows, domain.EventParticipant{
			ID: 1, EventID: 1, UserID: 42, Status: domain.ParticipationPending,
		})

		_, err := svc.Create(context.Background(), 42, 1, "hello")

		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("unknown event", func(t *testing.T) {
		svc, _, _, _ := newTestCommentService()

		_, err := svc.Create(context.Background(), 42, 9, "hello")

		assert.ErrorIs(t, err, ErrEventNotFound)
	})
}

func TestCommentService_Update(t *testing.T) {
	published := domain.Event{ID: 1, OrganizerID: 7, Status: domain.EventStatusPublished}
	svc, comments, _, _ := newTestCommentService(published)
	comments.rows[1] = domain.EventComment{ID: 1, EventID: 1, UserID: 42, Content: "original"}

	t.Run("author edits", func(t *testing.T) {
		updated, err := svc.Update(context.Background(), 42, 1, 1, "edited")

		require.NoError(t, err)
		assert.Equal(t, "edited", updated.Content)
	})

	t.Run("organizer cannot edit someone else's comment", func(t *testing.T) {
		_, err := svc.Update(context.Background(), 7, 1, 1, "hijacked")

		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("unknown comment", func(t *testing.T) {
		_, err := svc.Update(context.Background(), 42, 1, 99, "edited")

		assert.ErrorIs(t, err, ErrCommentNotFound)
	})
}

func TestCommentService_Delete(t *testing.T) {
	published := domain.Event{ID: 1, OrganizerID: 7, Status: domain.EventStatusPublished}

	newFixture := func() (*CommentService, *memCommentRepo) {
		svc, comments, _, _ := newTestCommentService(published)
		comments.rows[1] = domain.EventComment{ID: 1, EventID: 1, UserID: 42, Content: "original"}
		return svc, comments
	}

	t.Run("author deletes", func(t *testing.T) {
		svc, comments := newFixture()

		require.NoError(t, svc.Delete(context.Background(), 42, 1, 1))
		assert.Empty(t, comments.rows)
	})

	t.Run("organizer deletes", func(t *testing.T) {
		svc, comments := newFixture()

		require.NoError(t, svc.Delete(context.Background(), 7, 1, 1))
		assert.Empty(t, comments.rows)
	})

	t.Run("third party is denied", func(t *testing.T) {
		svc, _ := newFixture()

		assert.ErrorIs(t, svc.Delete(context.Background(), 99, 1, 1), ErrPermissionDenied)
	})
}
