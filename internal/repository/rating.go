package repository

import (
	"context"

	"github.com/eventhub/eventhub-api/internal/domain"
	"github.com/eventhub/eventhub-api/internal/repository/dao"
)

type RatingDAO interface {
	Create(ctx context.Context, rating dao.EventRating) (dao.EventRating, error)
	FindByID(ctx context.Context, eventID, ratingID uint) (dao.EventRating, error)
	FindByEventAndUser(ctx context.Context, eventID, userID uint) (dao.EventRating, error)
	Update(ctx context.Context, rating dao.EventRating) (dao.EventRating, error)
	Delete(ctx context.Context, ratingID uint) error
	ListByEvent(ctx context.Context, eventID uint, limit, offset int) ([]dao.EventRating, int64, error)
	AverageForEvent(ctx context.Context, eventID uint) (float64, error)
	AverageForOrganizer(ctx context.Context, organizerID uint) (float64, error)
}

type RatingRepository struct {
	dao RatingDAO
}

func NewRatingRepository(dao RatingDAO) *RatingRepository {
	return &RatingRepository{
		dao: dao,
	}
}

func (r *RatingRepository) Create(ctx context.Context, rating domain.EventRating) (domain.EventRating, error) {
	created, err := r.dao.Create(ctx, dao.EventRating{
		EventID: rating.EventID,
		UserID:  rating.UserID,
		Rating:  rating.Rating,
		Comment: rating.Comment,
	})
	if err != nil {
		return domain.EventRating{}, err
	}

	return ratingDaoToDomain(created), nil
}

func (r *RatingRepository) FindByID(ctx context.Context, eventID, ratingID uint) (domain.EventRating, error) {
	rating, err := r.dao.FindByID(ctx, eventID, ratingID)
	if err != nil {
		return domain.EventRating{}, err
	}

	return ratingDaoToDomain(rating), nil
}

func (r *RatingRepository) UpdateRating(ctx context.Context, rating domain.EventRating) (domain.EventRating, error) {
	existing, err := r.dao.FindByID(ctx, rating.EventID, rating.ID)
	if err != nil {
		return domain.EventRating{}, err
	}

	existing.Rating = rating.Rating
	existing.Comment = rating.Comment
	updated, err := r.dao.Update(ctx, existing)
	if err != nil {
		return domain.EventRating{}, err
	}

	return ratingDaoToDomain(updated), nil
}

func (r *RatingRepository) Delete(ctx context.Context, ratingID uint) error {
	return r.dao.Delete(ctx, ratingID)
}

func (r *RatingRepository) ListByEvent(ctx context.Context, eventID uint, limit, offset int) ([]domain.EventRating, int64, error) {
	ratings, total, err := r.dao.ListByEvent(ctx, eventID, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	result := make([]domain.EventRating, len(ratings))
	for i, rating := range ratings {
		result[i] = ratingDaoToDomain(rating)
	}

	return result, total, nil
}

func (r *RatingRepository) AverageForEvent(ctx context.Context, eventID uint) (float64, error) {
	return r.dao.AverageForEvent(ctx, eventID)
}

func (r *RatingRepository) AverageForOrganizer(ctx context.Context, organizerID uint) (float64, error) {
	return r.dao.AverageForOrganizer(ctx, organizerID)
}
