package dao

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type CommentDAO struct {
	db *gorm.DB
}

func NewCommentDAO(db *gorm.DB) *CommentDAO {
	return &CommentDAO{
		db: db,
	}
}

func (d *CommentDAO) Create(ctx context.Context, comment EventComment) (EventComment, error) {
	if err := d.db.WithContext(ctx).Create(&comment).Error; err != nil {
		return EventComment{}, err
	}

	err := d.db.WithContext(ctx).Preload("User").First(&comment, comment.ID).Error

	return comment, err
}

func (d *CommentDAO) FindByID(ctx context.Context, eventID, commentID uint) (EventComment, error) {
	var comment EventComment
	err := d.db.WithContext(ctx).
		Preload("User").
		Where("event_id = ? AND id = ?", eventID, commentID).
		First(&comment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return EventComment{}, ErrCommentNotFound
	}

	return comment, err
}

func (d *CommentDAO) Update(ctx context.Context, comment EventComment) (EventComment, error) {
	if err := d.db.WithContext(ctx).Save(&comment).Error; err != nil {
		return EventComment{}, err
	}

	return comment, nil
}

func (d *CommentDAO) Delete(ctx context.Context, commentID uint) error {
	return d.db.WithContext(ctx).Delete(&EventComment{}, commentID).Error
}

func (d *CommentDAO) ListByEvent(ctx context.Context, eventID uint, limit, offset int) ([]EventComment, int64, error) {
	query := d.db.WithContext(ctx).Model(&EventComment{}).Where("event_id = ?", eventID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var comments []EventComment
	err := query.
		Preload("User").
		Order("created_at desc").
		Limit(limit).
		Offset(offset).
		Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}

	return comments, total, nil
}
