package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/eventhub/eventhub-api/internal/domain"
	"github.com/eventhub/eventhub-api/internal/repository"
)

var (
	ErrRatingNotFound   = repository.ErrRatingNotFound
	ErrAlreadyRated     = repository.ErrAlreadyRated
	ErrRatingOutOfRange = errors.New("rating must be between 1 and 5")
)

type RatingRepo interface {
	Create(ctx context.Context, rating domain.EventRating) (domain.EventRating, error)
	FindByID(ctx context.Context, eventID, ratingID uint) (domain.EventRating, error)
	UpdateRating(ctx context.Context, rating domain.EventRating) (domain.EventRating, error)
	Delete(ctx context.Context, ratingID uint) error
	ListByEvent(ctx context.Context, eventID uint, limit, offset int) ([]domain.EventRating, int64, error)
	AverageForEvent(ctx context.Context, eventID uint) (float64, error)
}

type RatingService struct {
	ratings      RatingRepo
	events       EventRepo
	participants ParticipantRepo
}

func NewRatingService(ratings RatingRepo, events EventRepo, participants ParticipantRepo) *RatingService {
	return &RatingService{
		ratings:      ratings,
		events:       events,
		participants: participants,
	}
}

// Create records the acting user's rating of a completed event they attended.
// The (event, user) uniqueness is enforced by the store; a second rating
// surfaces as ErrAlreadyRated.
func (s *RatingService) Create(ctx context.Context, actingUserID, eventID uint, rating int, comment string) (domain.EventRating, error) {
	if rating < 1 || rating > 5 {
		return domain.EventRating{}, ErrRatingOutOfRange
	}

	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, ErrEventNotFound) {
			return domain.EventRating{}, err
		}
		return domain.EventRating{}, fmt.Errorf("s.events.GetByID -> %w", err)
	}

	participation, err := s.participants.FindByEventAndUser(ctx, eventID, actingUserID)
	if err != nil && !errors.Is(err, ErrParticipantNotFound) {
		return domain.EventRating{}, fmt.Errorf("s.participants.FindByEventAndUser -> %w", err)
	}

	if !CanRate(event, participation, CanEdit(event, actingUserID)) {
		return domain.EventRating{}, ErrPermissionDenied
	}

	created, err := s.ratings.Create(ctx, domain.EventRating{
		EventID: eventID,
		UserID:  actingUserID,
		Rating:  rating,
		Comment: comment,
	})
	if err != nil {
		if errors.Is(err, ErrAlreadyRated) {
			return domain.EventRating{}, err
		}
		return domain.EventRating{}, fmt.Errorf("s.ratings.Create -> %w", err)
	}

	return created, nil
}

// Update is author-only.
func (s *RatingService) Update(ctx context.Context, actingUserID, eventID, ratingID uint, rating int, comment string) (domain.EventRating, error) {
	if rating < 1 || rating > 5 {
		return domain.EventRating{}, ErrRatingOutOfRange
	}

	existing, err := s.ratings.FindByID(ctx, eventID, ratingID)
	if err != nil {
		if errors.Is(err, ErrRatingNotFound) {
			return domain.EventRating{}, err
		}
		return domain.EventRating{}, fmt.Errorf("s.ratings.FindByID -> %w", err)
	}

	if existing.UserID != actingUserID {
		return domain.EventRating{}, ErrPermissionDenied
	}

	existing.Rating = rating
	existing.Comment = comment
	updated, err := s.ratings.UpdateRating(ctx, existing)
	if err != nil {
		return domain.EventRating{}, fmt.Errorf("s.ratings.UpdateRating -> %w", err)
	}

	return updated, nil
}

// Delete is allowed to the author and to the event's organizer.
func (s *RatingService) Delete(ctx context.Context, actingUserID, eventID, ratingID uint) error {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, ErrEventNotFound) {
			return err
		}
		return fmt.Errorf("s.events.GetByID -> %w", err)
	}

	rating, err := s.ratings.FindByID(ctx, eventID, ratingID)
	if err != nil {
		if errors.Is(err, ErrRatingNotFound) {
			return err
		}
		return fmt.Errorf("s.ratings.FindByID -> %w", err)
	}

	if !CanDeleteRating(rating, event, actingUserID) {
		return ErrPermissionDenied
	}

	if err = s.ratings.Delete(ctx, ratingID); err != nil {
		return fmt.Errorf("s.ratings.Delete -> %w", err)
	}

	return nil
}

func (s *RatingService) ListByEvent(ctx context.Context, eventID uint, limit, offset int) ([]domain.EventRating, int64, error) {
	if _, err := s.events.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, ErrEventNotFound) {
			return nil, 0, err
		}
		return nil, 0, fmt.Errorf("s.events.GetByID -> %w", err)
	}

	ratings, total, err := s.ratings.ListByEvent(ctx, eventID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("s.ratings.ListByEvent -> %w", err)
	}

	return ratings, total, nil
}
