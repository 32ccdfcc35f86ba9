package dao

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type RatingDAO struct {
	db *gorm.DB
}

func NewRatingDAO(db *gorm.DB) *RatingDAO {
	return &RatingDAO{
		db: db,
	}
}

func (d *RatingDAO) Create(ctx context.Context, rating EventRating) (EventRating, error) {
	if err := d.db.WithContext(ctx).Create(&rating).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return EventRating{}, ErrAlreadyRated
		}

		return EventRating{}, err
	}

	err := d.db.WithContext(ctx).Preload("User").First(&rating, rating.ID).Error

	return rating, err
}

func (d *RatingDAO) FindByID(ctx context.Context, eventID, ratingID uint) (EventRating, error) {
	var rating EventRating
	err := d.db.WithContext(ctx).
		Preload("User").
		Where("event_id = ? AND id = ?", eventID, ratingID).
		First(&rating).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return EventRating{}, ErrRatingNotFound
	}

	return rating, err
}

func (d *RatingDAO) FindByEventAndUser(ctx context.Context, eventID, userID uint) (EventRating, error) {
	var rating EventRating
	err := d.db.WithContext(ctx).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		First(&rating).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return EventRating{}, ErrRatingNotFound
	}

	return rating, err
}

func (d *RatingDAO) Update(ctx context.Context, rating EventRating) (EventRating, error) {
	if err := d.db.WithContext(ctx).Save(&rating).Error; err != nil {
		return EventRating{}, err
	}

	return rating, nil
}

func (d *RatingDAO) Delete(ctx context.Context, ratingID uint) error {
	return d.db.WithContext(ctx).Delete(&EventRating{}, ratingID).Error
}

func (d *RatingDAO) ListByEvent(ctx context.Context, eventID uint, limit, offset int) ([]EventRating, int64, error) {
	query := d.db.WithContext(ctx).Model(&EventRating{}).Where("event_id = ?", eventID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ratings []EventRating
	err := query.
		Preload("User").
		Order("created_at desc").
		Limit(limit).
		Offset(offset).
		Find(&ratings).Error
	if err != nil {
		return nil, 0, err
	}

	return ratings, total, nil
}

func (d *RatingDAO) AverageForEvent(ctx context.Context, eventID uint) (float64, error) {
	var avg *float64
	err := d.db.WithContext(ctx).
		Model(&EventRating{}).
		Where("event_id = ?", eventID).
		Select("AVG(rating)").
		Scan(&avg).Error
	if err != nil || avg == nil {
		return 0, err
	}

	return *avg, nil
}

// AverageForOrganizer averages all ratings across the organizer's events.
func (d *RatingDAO) AverageForOrganizer(ctx context.Context, organizerID uint) (float64, error) {
	var avg *float64
	err := d.db.WithContext(ctx).
		Model(&EventRating{}).
		Joins("JOIN events ON events.id = event_ratings.event_id").
		Where("events.organizer_id = ?", organizerID).
		Select("AVG(event_ratings.rating)").
		Scan(&avg).Error
	if err != nil || avg == nil {
		return 0, err
	}

	return *avg, nil
}
