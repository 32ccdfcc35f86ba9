package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventhub/eventhub-api/internal/domain"
	"github.com/eventhub/eventhub-api/internal/repository"
)

type memRatingRepo struct {
	nextID uint
	rows   map[uint]domain.EventRating
}

func newMemRatingRepo() *memRatingRepo {
	return &memRatingRepo{rows: make(map[uint]domain.EventRating)}
}

func (r *memRatingRepo) Create(_ context.Context, rating domain.EventRating) (domain.EventRating, error) {
	for _, existing := range r.rows {
		if existing.EventID == rating.EventID && existing.UserID == rating.UserID {
			return domain.EventRating{}, repository.ErrAlreadyRated
		}
	}

	r.nextID++
	rating.ID = r.nextID
	r.rows[rating.ID] = rating

	return rating, nil
}

func (r *memRatingRepo) FindByID(_ context.Context, eventID, ratingID uint) (domain.EventRating, error) {
	rating, ok := r.rows[ratingID]
	if !ok || rating.EventID != eventID {
		return domain.EventRating{}, repository.ErrRatingNotFound
	}

	return rating, nil
}

func (r *memRatingRepo) UpdateRating(_ context.Context, rating domain.EventRating) (domain.EventRating, error) {
	existing, ok := r.rows[rating.ID]
	if !ok {
		return domain.EventRating{}, repository.ErrRatingNotFound
	}
	existing.Rating = rating.Rating
	existing.Comment = rating.Comment
	r.rows[rating.ID] = existing

	return existing, nil
}

func (r *memRatingRepo) Delete(_ context.Context, ratingID uint) error {
	delete(r.rows, ratingID)

	return nil
}

func (r *memRatingRepo) ListByEvent(_ context.Context, eventID uint, _, _ int) ([]domain.EventRating, int64, error) {
	var matched []domain.EventRating
	for _, rating := range r.rows {
		if rating.EventID == eventID {
			matched = append(matched, rating)
		}
	}

	return matched, int64(len(matched)), nil
}

func (r *memRatingRepo) AverageForEvent(_ context.Context, eventID uint) (float64, error) {
	var sum, count float64
	for _, rating := range r.rows {
		if rating.EventID == eventID {
			sum += float64(rating.Rating)
			count++
		}
	}
	if count == 0 {
		return 0, nil
	}

	return sum / count, nil
}

func newTestRatingService(events ...domain.Event) (*RatingService, *memRatingRepo, *memParticipantRepo) {
	eventRepo := newMemEventRepo(events...)
	participantRepo := &memParticipantRepo{events: eventRepo}
	ratingRepo := newMemRatingRepo()
	svc := NewRatingService(ratingRepo, eventRepo, participantRepo)

	return svc, ratingRepo, participantRepo
}

func TestRatingService_Create(t *testing.T) {
	completed := domain.Event{ID: 1, OrganizerID: 7, Status: domain.EventStatusCompleted}

	attend := func(participants *memParticipantRepo, userID uint) {
		participants.rows = append(participants.rows, domain.EventParticipant{
			EventID: 1, UserID: userID, Status: domain.ParticipationAttended,
		})
	}

	t.Run("attendee rates a completed event", func(t *testing.T) {
		svc, _, participants := newTestRatingService(completed)
		attend(participants, 42)

		rating, err := svc.Create(context.Background(), 42, 1, 5, "great event")

		require.NoError(t, err)
		assert.Equal(t, 5, rating.Rating)
	})

	t.Run("rating twice conflicts", func(t *testing.T) {
		svc, _, participants := newTestRatingService(completed)
		attend(participants, 42)

		_, err := svc.Create(context.Background(), 42, 1, 5, "")
		require.NoError(t, err)

		_, err = svc.Create(context.Background(), 42, 1, 3, "")
		assert.ErrorIs(t, err, ErrAlreadyRated)
	})

	t.Run("organizer cannot rate their own event", func(t *testing.T) {
		svc, _, participants := newTestRatingService(completed)
		attend(participants, 7)

		_, err := svc.Create(context.Background(), 7, 1, 5, "")

		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("confirmed but not attended is denied", func(t *testing.T) {
		svc, _, participants := newTestRatingService(completed)
		participants.rows = append(participants.rows, domain.EventParticipant{
			EventID: 1, UserID: 42, Status: domain.ParticipationConfirmed,
		})

		_, err := svc.Create(context.Background(), 42, 1, 4, "")

		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("event still running is denied", func(t *testing.T) {
		published := domain.Event{ID: 1, OrganizerID: 7, Status: domain.EventStatusPublished}
		svc, _, participants := newTestRatingService(published)
		attend(participants, 42)

		_, err := svc.Create(context.Background(), 42, 1, 4, "")

		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("rating out of range", func(t *testing.T) {
		svc, _, participants := newTestRatingService(completed)
		attend(participants, 42)

		_, err := svc.Create(context.Background(), 42, 1, 6, "")
		assert.ErrorIs(t, err, ErrRatingOutOfRange)

		_, err = svc.Create(context.Background(), 42, 1, 0, "")
		assert.ErrorIs(t, err, ErrRatingOutOfRange)
	})
}

func TestRatingService_UpdateAndDelete(t *testing.T) {
	completed := domain.Event{ID: 1, OrganizerID: 7, Status: domain.EventStatusCompleted}

	newFixture := func(t *testing.T) (*RatingService, *memRatingRepo) {
		t.Helper()
		svc, ratings, participants := newTestRatingService(completed)
		participants.rows = append(participants.rows, domain.EventParticipant{
			EventID: 1, UserID: 42, Status: domain.ParticipationAttended,
		})
		_, err := svc.Create(context.Background(), 42, 1, 4, "good")
		require.NoError(t, err)
		return svc, ratings
	}

	t.Run("author updates", func(t *testing.T) {
		svc, _ := newFixture(t)

		updated, err := svc.Update(context.Background(), 42, 1, 1, 2, "on reflection")

		require.NoError(t, err)
		assert.Equal(t, 2, updated.Rating)
		assert.Equal(t, "on reflection", updated.Comment)
	})

	t.Run("only the author updates", func(t *testing.T) {
		svc, _ := newFixture(t)

		_, err := svc.Update(context.Background(), 7, 1, 1, 1, "")

		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("author deletes", func(t *testing.T) {
		svc, ratings := newFixture(t)

		require.NoError(t, svc.Delete(context.Background(), 42, 1, 1))
		assert.Empty(t, ratings.rows)
	})

	t.Run("organizer deletes", func(t *testing.T) {
		svc, ratings := newFixture(t)

		require.NoError(t, svc.Delete(context.Background(), 7, 1, 1))
		assert.Empty(t, ratings.rows)
	})

	t.Run("third party cannot delete", func(t *testing.T) {
		svc, _ := newFixture(t)

		assert.ErrorIs(t, svc.Delete(context.Background(), 99, 1, 1), ErrPermissionDenied)
	})
}
